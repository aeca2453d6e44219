package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/cache"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

const (
	cacheKeyRooms          = "habitaciones:todas"
	cacheKeyFechasBloquead = "habitaciones:fechas-bloqueadas"
)

// HabitacionEstado es una habitación junto con su estado proyectado a una fecha.
type HabitacionEstado struct {
	Habitacion domain.Habitacion       `json:"habitacion"`
	Estado     domain.EstadoHabitacion `json:"estado"`
}

type HabitacionService struct {
	repo        domain.HabitacionRepository
	reservaRepo domain.ReservaRepository
	cache       cache.RedisCache
	cacheTTL    int
}

func NewHabitacionService(repo domain.HabitacionRepository, reservaRepo domain.ReservaRepository, c cache.RedisCache, cacheTTL int) *HabitacionService {
	return &HabitacionService{
		repo:        repo,
		reservaRepo: reservaRepo,
		cache:       c,
		cacheTTL:    cacheTTL,
	}
}

func (s *HabitacionService) GetAllRooms(ctx context.Context) ([]domain.Habitacion, error) {
	if s.cache != nil {
		var cached []domain.Habitacion
		err := s.cache.Get(ctx, cacheKeyRooms, &cached)
		if err == nil {
			return cached, nil
		}
		// cache.Nil es un miss normal; cualquier otro error merece aviso.
		if !errors.Is(err, cache.Nil) {
			log.Warn().Err(err).Msg("error leyendo cache de habitaciones")
		}
	}

	rooms, err := s.repo.GetAllRooms(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, cacheKeyRooms, rooms, s.cacheTTL); err != nil {
			log.Warn().Err(err).Msg("no se pudo cachear el listado de habitaciones")
		}
	}
	return rooms, nil
}

func (s *HabitacionService) GetByID(ctx context.Context, id int) (*domain.Habitacion, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, failure.NotFound(fmt.Sprintf("habitación %d no encontrada", id))
	}
	return h, nil
}

func (s *HabitacionService) GetAvailableRooms(ctx context.Context, rango domain.RangoFechas) ([]domain.Habitacion, error) {
	if !rango.Valido() {
		return nil, failure.BadRequest("la fecha de salida debe ser posterior a la fecha de entrada")
	}
	return s.repo.GetAvailableRooms(ctx, rango)
}

func (s *HabitacionService) GetFechasBloqueadas(ctx context.Context, desde, hasta time.Time) (*domain.FechasBloqueadas, error) {
	if s.cache != nil {
		key := fmt.Sprintf("%s:%s:%s", cacheKeyFechasBloquead, desde.Format("2006-01-02"), hasta.Format("2006-01-02"))
		var cached domain.FechasBloqueadas
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.Nil) {
			log.Warn().Err(err).Msg("error leyendo cache de fechas bloqueadas")
		}
		fechas, err := s.repo.GetFechasBloqueadas(ctx, desde, hasta)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Save(ctx, key, fechas, s.cacheTTL); err != nil {
			log.Warn().Err(err).Msg("no se pudo cachear fechas bloqueadas")
		}
		return fechas, nil
	}
	return s.repo.GetFechasBloqueadas(ctx, desde, hasta)
}

func (s *HabitacionService) GetDisponibilidadFechas(ctx context.Context, desde, hasta time.Time) ([]domain.DisponibilidadFecha, error) {
	return s.repo.GetDisponibilidadFechas(ctx, desde, hasta)
}

func (s *HabitacionService) GetRoomTypes(ctx context.Context) ([]domain.TipoHabitacion, error) {
	return s.repo.GetRoomTypes(ctx)
}

// EstadoHabitaciones proyecta el estado visible de todas las habitaciones a la
// fecha dada, usando la misma semántica de solapamiento que las escrituras.
func (s *HabitacionService) EstadoHabitaciones(ctx context.Context, fecha time.Time) ([]HabitacionEstado, error) {
	rooms, err := s.repo.GetAllRooms(ctx)
	if err != nil {
		return nil, err
	}
	aprobadas, err := s.reservaRepo.ListAprobadasEnFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}

	estados := make([]HabitacionEstado, len(rooms))
	for i, h := range rooms {
		estados[i] = HabitacionEstado{
			Habitacion: h,
			Estado:     domain.ProyectarEstado(h, aprobadas, fecha),
		}
	}
	return estados, nil
}

// EstadoHabitacion proyecta el estado de una sola habitación a la fecha dada.
func (s *HabitacionService) EstadoHabitacion(ctx context.Context, id int, fecha time.Time) (*HabitacionEstado, error) {
	h, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	aprobadas, err := s.reservaRepo.ListAprobadasEnFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	return &HabitacionEstado{
		Habitacion: *h,
		Estado:     domain.ProyectarEstado(*h, aprobadas, fecha),
	}, nil
}

// Room CRUD (admin)

func (s *HabitacionService) CreateRoom(ctx context.Context, h *domain.Habitacion) error {
	if h.Nombre == "" || h.Numero == "" {
		return failure.BadRequest("nombre y número de habitación son requeridos")
	}
	h.Activa = true
	h.Disponible = true
	if err := s.repo.CreateRoom(ctx, h); err != nil {
		return err
	}
	s.invalidar(ctx)
	return nil
}

func (s *HabitacionService) UpdateRoom(ctx context.Context, h *domain.Habitacion) error {
	existente, err := s.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	if !existente.Activa && !existente.Disponible {
		return failure.Conflict("una habitación eliminada no puede modificarse")
	}
	if err := s.repo.UpdateRoom(ctx, h); err != nil {
		return err
	}
	s.invalidar(ctx)
	return nil
}

// SetDisponible prende o apaga el bloqueo operativo. No toca reservas: el
// acople entre disponibilidad y estado de reservas es manual y explícito.
func (s *HabitacionService) SetDisponible(ctx context.Context, id int, disponible bool) error {
	existente, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !existente.Activa && !existente.Disponible {
		return failure.Conflict("una habitación eliminada no puede reabrirse")
	}
	if err := s.repo.SetDisponible(ctx, id, disponible); err != nil {
		return err
	}
	s.invalidar(ctx)
	return nil
}

// DeleteRoom marca la habitación como eliminada. Es irreversible: queda
// visible en auditorías pero nunca vuelve a aceptar reservas.
func (s *HabitacionService) DeleteRoom(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidar(ctx)
	return nil
}

func (s *HabitacionService) CreateRoomType(ctx context.Context, t *domain.TipoHabitacion) error {
	if t.Titulo == "" || t.Precio <= 0 || t.Capacidad <= 0 {
		return failure.BadRequest("título, precio y capacidad del tipo son requeridos")
	}
	return s.repo.CreateRoomType(ctx, t)
}

func (s *HabitacionService) UpdateRoomType(ctx context.Context, t *domain.TipoHabitacion) error {
	if err := s.repo.UpdateRoomType(ctx, t); err != nil {
		return err
	}
	s.invalidar(ctx)
	return nil
}

func (s *HabitacionService) invalidar(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx, "habitaciones:"); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la cache de habitaciones")
	}
}
