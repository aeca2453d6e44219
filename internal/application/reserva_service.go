package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/cache"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

// DatosPersona son los datos mínimos de cliente que llegan con una reserva
// o consulta pública. El email es la clave de unicidad de Person.
type DatosPersona struct {
	Name     string
	Surname  string
	Email    string
	Phone    *string
	Location *string
}

type ReservaService struct {
	reservaRepo    domain.ReservaRepository
	habitacionRepo domain.HabitacionRepository
	personRepo     domain.PersonRepository
	validator      *Validator
	cache          cache.RedisCache
}

// NewReservaService crea una nueva instancia del servicio de reservas
func NewReservaService(
	reservaRepo domain.ReservaRepository,
	habitacionRepo domain.HabitacionRepository,
	personRepo domain.PersonRepository,
	c cache.RedisCache,
) *ReservaService {
	return &ReservaService{
		reservaRepo:    reservaRepo,
		habitacionRepo: habitacionRepo,
		personRepo:     personRepo,
		validator:      &Validator{},
		cache:          c,
	}
}

// validarDatosPersona valida los datos de cliente antes de persistirlos.
func (s *ReservaService) validarDatosPersona(datos DatosPersona) error {
	if errs := s.validator.ValidateDatosPersona(datos); len(errs) > 0 {
		return failure.BadRequest(s.validator.FormatValidationErrors(errs))
	}
	return nil
}

// resolverOCrearPersona busca la persona por email y la crea si no existe.
func (s *ReservaService) resolverOCrearPersona(ctx context.Context, datos DatosPersona) (*domain.Person, error) {
	existente, err := s.personRepo.FindByEmail(ctx, datos.Email)
	if err != nil {
		return nil, fmt.Errorf("error al buscar persona: %w", err)
	}
	if existente != nil {
		return existente, nil
	}

	person := &domain.Person{
		Name:     datos.Name,
		Surname:  datos.Surname,
		Email:    datos.Email,
		Phone:    datos.Phone,
		Location: datos.Location,
	}
	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, fmt.Errorf("error al crear persona: %w", err)
	}
	return person, nil
}

func (s *ReservaService) validarRango(rango domain.RangoFechas) error {
	if !rango.Valido() {
		return failure.BadRequest("la fecha de salida debe ser posterior a la fecha de entrada")
	}
	return nil
}

func (s *ReservaService) buscarHabitacionOperativa(ctx context.Context, habitacionID int) (*domain.Habitacion, error) {
	habitacion, err := s.habitacionRepo.GetByID(ctx, habitacionID)
	if err != nil {
		return nil, err
	}
	if habitacion == nil {
		return nil, failure.NotFound(fmt.Sprintf("habitación %d no encontrada", habitacionID))
	}
	if !habitacion.AceptaReservas() {
		return nil, failure.Conflict(fmt.Sprintf("la habitación %s no está abierta para reservas", habitacion.Numero))
	}
	return habitacion, nil
}

// CrearReservaPublica crea una reserva desde el flujo público de la web.
// Entra en PendienteVerificacion sin operador y SIN chequeo de disponibilidad:
// así se comporta el flujo público original y se mantiene a la espera de una
// definición de producto. El camino seguro es CrearReservaDesdeLanding.
func (s *ReservaService) CrearReservaPublica(ctx context.Context, datos DatosPersona, habitacionID int, rango domain.RangoFechas, notas string) (*domain.Reserva, error) {
	if err := s.validarRango(rango); err != nil {
		return nil, err
	}
	if err := s.validarDatosPersona(datos); err != nil {
		return nil, err
	}
	if _, err := s.buscarHabitacionOperativa(ctx, habitacionID); err != nil {
		return nil, err
	}

	person, err := s.resolverOCrearPersona(ctx, datos)
	if err != nil {
		return nil, failure.InternalError(err)
	}

	reserva := &domain.Reserva{
		PersonID:     person.PersonID,
		HabitacionID: habitacionID,
		Rango:        rango,
		Estado:       domain.ReservaPendienteVerificacion,
		Notas:        notas,
	}
	if err := s.reservaRepo.Crear(ctx, reserva); err != nil {
		return nil, failure.InternalError(err)
	}

	log.Info().Int("reserva", reserva.ID).Int("habitacion", habitacionID).
		Msg("reserva pública creada sin chequeo de disponibilidad")
	s.invalidarCachePublica(ctx)
	return reserva, nil
}

// CrearReservaDesdeLanding es la variante del flujo público que SÍ verifica
// disponibilidad contra todos los estados bloqueantes antes de insertar.
func (s *ReservaService) CrearReservaDesdeLanding(ctx context.Context, datos DatosPersona, habitacionID int, rango domain.RangoFechas, notas string) (*domain.Reserva, error) {
	if err := s.validarRango(rango); err != nil {
		return nil, err
	}
	if err := s.validarDatosPersona(datos); err != nil {
		return nil, err
	}
	if _, err := s.buscarHabitacionOperativa(ctx, habitacionID); err != nil {
		return nil, err
	}

	person, err := s.resolverOCrearPersona(ctx, datos)
	if err != nil {
		return nil, failure.InternalError(err)
	}

	reserva := &domain.Reserva{
		PersonID:     person.PersonID,
		HabitacionID: habitacionID,
		Rango:        rango,
		Estado:       domain.ReservaPendienteVerificacion,
		Notas:        notas,
	}
	if err := s.reservaRepo.CrearConChequeo(ctx, reserva, domain.EstadosBloqueantes()); err != nil {
		return nil, err
	}

	s.invalidarCachePublica(ctx)
	return reserva, nil
}

// CrearReservaStaff crea una reserva desde el back-office. Nace Aprobada, con
// el operador como creador y aprobador, y falla con conflicto si alguna reserva
// bloqueante se solapa en la misma habitación.
func (s *ReservaService) CrearReservaStaff(ctx context.Context, actorID int, personID *int, datos *DatosPersona, habitacionID int, rango domain.RangoFechas, notas string) (*domain.Reserva, error) {
	if err := s.validarRango(rango); err != nil {
		return nil, err
	}
	if _, err := s.buscarHabitacionOperativa(ctx, habitacionID); err != nil {
		return nil, err
	}

	var person *domain.Person
	var err error
	switch {
	case personID != nil:
		person, err = s.personRepo.GetByID(ctx, *personID)
		if err != nil {
			return nil, err
		}
		if person == nil {
			return nil, failure.NotFound(fmt.Sprintf("persona %d no encontrada", *personID))
		}
	case datos != nil:
		if err := s.validarDatosPersona(*datos); err != nil {
			return nil, err
		}
		person, err = s.resolverOCrearPersona(ctx, *datos)
		if err != nil {
			return nil, failure.InternalError(err)
		}
	default:
		return nil, failure.BadRequest("debe indicarse una persona existente o sus datos")
	}

	reserva := &domain.Reserva{
		PersonID:     person.PersonID,
		HabitacionID: habitacionID,
		Rango:        rango,
		Estado:       domain.ReservaAprobada,
		Notas:        notas,
		CreadaPor:    &actorID,
		AprobadaPor:  &actorID,
	}
	if err := s.reservaRepo.CrearConChequeo(ctx, reserva, domain.EstadosBloqueantes()); err != nil {
		return nil, err
	}

	s.invalidarCachePublica(ctx)
	return reserva, nil
}

// transicionar carga la reserva, valida la transición contra la máquina de
// estados y delega la escritura guardada al repositorio.
func (s *ReservaService) transicionar(ctx context.Context, actorID, reservaID int, destino domain.EstadoReserva) (*domain.Reserva, error) {
	reserva, err := s.reservaRepo.GetByID(ctx, reservaID)
	if err != nil {
		return nil, err
	}
	if reserva == nil {
		return nil, failure.NotFound(fmt.Sprintf("reserva %d no encontrada", reservaID))
	}

	if !reserva.Estado.PuedeTransicionarA(destino) {
		return nil, failure.Conflict(fmt.Sprintf(
			"transición ilegal: una reserva %s no puede pasar a %s", reserva.Estado, destino))
	}

	if destino == domain.ReservaAprobada {
		// La aprobación re-verifica solapamiento solo contra reservas Aprobadas,
		// excluyéndose a sí misma, dentro de la misma transacción que la escritura.
		if err := s.reservaRepo.AprobarConChequeo(ctx, reservaID, reserva.Estado, actorID); err != nil {
			return nil, err
		}
	} else {
		if err := s.reservaRepo.ActualizarEstado(ctx, reservaID, reserva.Estado, destino, actorID); err != nil {
			return nil, err
		}
	}

	reserva.Estado = destino
	reserva.AprobadaPor = &actorID
	s.invalidarCachePublica(ctx)
	return reserva, nil
}

// Aprobar aprueba una reserva pendiente.
func (s *ReservaService) Aprobar(ctx context.Context, actorID, reservaID int) (*domain.Reserva, error) {
	return s.transicionar(ctx, actorID, reservaID, domain.ReservaAprobada)
}

// ConfirmarIdentidad pasa una reserva de PendienteVerificacion a PendientePago.
func (s *ReservaService) ConfirmarIdentidad(ctx context.Context, actorID, reservaID int) (*domain.Reserva, error) {
	return s.transicionar(ctx, actorID, reservaID, domain.ReservaPendientePago)
}

// Rechazar rechaza una reserva pendiente.
func (s *ReservaService) Rechazar(ctx context.Context, actorID, reservaID int) (*domain.Reserva, error) {
	return s.transicionar(ctx, actorID, reservaID, domain.ReservaRechazada)
}

// Cancelar cancela una reserva pendiente o aprobada.
func (s *ReservaService) Cancelar(ctx context.Context, actorID, reservaID int) (*domain.Reserva, error) {
	return s.transicionar(ctx, actorID, reservaID, domain.ReservaCancelada)
}

// ObtenerPorID obtiene una reserva por su ID.
func (s *ReservaService) ObtenerPorID(ctx context.Context, id int) (*domain.Reserva, error) {
	reserva, err := s.reservaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reserva == nil {
		return nil, failure.NotFound(fmt.Sprintf("reserva %d no encontrada", id))
	}
	return reserva, nil
}

// ListarPorHabitacion obtiene todas las reservas de una habitación.
func (s *ReservaService) ListarPorHabitacion(ctx context.Context, habitacionID int) ([]domain.Reserva, error) {
	return s.reservaRepo.ListByHabitacion(ctx, habitacionID)
}

// VerificarDisponibilidad decide si la franja está libre para la habitación.
// Es el único punto de verdad de solapamiento: lo consumen tanto la UI (para
// mostrar) como los caminos de escritura (para rechazar).
func (s *ReservaService) VerificarDisponibilidad(ctx context.Context, habitacionID int, rango domain.RangoFechas) (bool, error) {
	if err := s.validarRango(rango); err != nil {
		return false, err
	}

	existentes, err := s.reservaRepo.ListByHabitacionYEstados(ctx, habitacionID, domain.EstadosBloqueantes())
	if err != nil {
		return false, err
	}
	return domain.HayDisponibilidad(habitacionID, rango, existentes, domain.EstadosBloqueantes()), nil
}

// OcupadaHoy indica si la habitación tiene una reserva aprobada que cubre hoy.
func (s *ReservaService) OcupadaHoy(ctx context.Context, habitacionID int, hoy time.Time) (bool, error) {
	existentes, err := s.reservaRepo.ListByHabitacionYEstados(ctx, habitacionID, domain.EstadosBloqueantesAprobacion())
	if err != nil {
		return false, err
	}
	libre := domain.HayDisponibilidad(habitacionID, domain.RangoDia(hoy), existentes, domain.EstadosBloqueantesAprobacion())
	return !libre, nil
}

func (s *ReservaService) invalidarCachePublica(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx, "habitaciones:"); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la cache de habitaciones")
	}
}
