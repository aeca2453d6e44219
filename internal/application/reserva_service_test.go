package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

// fakeReservaRepo reproduce en memoria la semántica del repositorio real:
// CrearConChequeo y AprobarConChequeo son atómicos bajo un mutex, como lo son
// en Postgres bajo el lock de la fila de la habitación.
type fakeReservaRepo struct {
	mu       sync.Mutex
	seq      int
	reservas map[int]*domain.Reserva
}

func newFakeReservaRepo() *fakeReservaRepo {
	return &fakeReservaRepo{reservas: make(map[int]*domain.Reserva)}
}

func (f *fakeReservaRepo) snapshot() []domain.Reserva {
	out := make([]domain.Reserva, 0, len(f.reservas))
	for _, r := range f.reservas {
		out = append(out, *r)
	}
	return out
}

func (f *fakeReservaRepo) GetByID(_ context.Context, id int) (*domain.Reserva, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservas[id]
	if !ok {
		return nil, nil
	}
	copia := *r
	return &copia, nil
}

func (f *fakeReservaRepo) ListByHabitacion(_ context.Context, habitacionID int) ([]domain.Reserva, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Reserva
	for _, r := range f.reservas {
		if r.HabitacionID == habitacionID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReservaRepo) ListByHabitacionYEstados(_ context.Context, habitacionID int, estados []domain.EstadoReserva) ([]domain.Reserva, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	permitido := make(map[domain.EstadoReserva]bool)
	for _, e := range estados {
		permitido[e] = true
	}
	var out []domain.Reserva
	for _, r := range f.reservas {
		if r.HabitacionID == habitacionID && permitido[r.Estado] {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReservaRepo) ListAprobadasEnFecha(_ context.Context, fecha time.Time) ([]domain.Reserva, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Reserva
	for _, r := range f.reservas {
		if r.Estado == domain.ReservaAprobada && r.Rango.Contiene(fecha) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReservaRepo) Crear(_ context.Context, reserva *domain.Reserva) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	reserva.ID = f.seq
	reserva.FechaCreacion = time.Now().UTC()
	copia := *reserva
	f.reservas[reserva.ID] = &copia
	return nil
}

func (f *fakeReservaRepo) CrearConChequeo(_ context.Context, reserva *domain.Reserva, bloqueantes []domain.EstadoReserva) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !domain.HayDisponibilidad(reserva.HabitacionID, reserva.Rango, f.snapshot(), bloqueantes) {
		return failure.Conflict("la habitación ya está reservada para esas fechas")
	}
	f.seq++
	reserva.ID = f.seq
	reserva.FechaCreacion = time.Now().UTC()
	copia := *reserva
	f.reservas[reserva.ID] = &copia
	return nil
}

func (f *fakeReservaRepo) ActualizarEstado(_ context.Context, id int, esperado, nuevo domain.EstadoReserva, actorID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservas[id]
	if !ok || r.Estado != esperado {
		return failure.Conflict(fmt.Sprintf("la reserva %d cambió de estado, volvé a cargarla", id))
	}
	r.Estado = nuevo
	r.AprobadaPor = &actorID
	return nil
}

func (f *fakeReservaRepo) AprobarConChequeo(_ context.Context, id int, esperado domain.EstadoReserva, actorID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservas[id]
	if !ok || r.Estado != esperado {
		return failure.Conflict(fmt.Sprintf("la reserva %d cambió de estado, volvé a cargarla", id))
	}
	if !domain.HayDisponibilidadExcluyendo(r.HabitacionID, r.Rango, f.snapshot(), domain.EstadosBloqueantesAprobacion(), id) {
		return failure.Conflict("la habitación ya tiene una reserva aprobada para esas fechas")
	}
	r.Estado = domain.ReservaAprobada
	r.AprobadaPor = &actorID
	return nil
}

func (f *fakeReservaRepo) CancelarPendientesVencidas(_ context.Context, hoy time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.reservas {
		if r.Estado.EsPendiente() && r.Rango.Inicio.Before(hoy) {
			r.Estado = domain.ReservaCancelada
			n++
		}
	}
	return n, nil
}

type fakeHabitacionRepo struct {
	habitaciones map[int]domain.Habitacion
}

func (f *fakeHabitacionRepo) GetByID(_ context.Context, id int) (*domain.Habitacion, error) {
	h, ok := f.habitaciones[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (f *fakeHabitacionRepo) GetAllRooms(context.Context) ([]domain.Habitacion, error) {
	var out []domain.Habitacion
	for _, h := range f.habitaciones {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHabitacionRepo) GetAvailableRooms(context.Context, domain.RangoFechas) ([]domain.Habitacion, error) {
	return nil, nil
}

func (f *fakeHabitacionRepo) GetFechasBloqueadas(context.Context, time.Time, time.Time) (*domain.FechasBloqueadas, error) {
	return &domain.FechasBloqueadas{}, nil
}

func (f *fakeHabitacionRepo) GetDisponibilidadFechas(context.Context, time.Time, time.Time) ([]domain.DisponibilidadFecha, error) {
	return nil, nil
}

func (f *fakeHabitacionRepo) GetRoomTypes(context.Context) ([]domain.TipoHabitacion, error) {
	return nil, nil
}

func (f *fakeHabitacionRepo) CreateRoom(context.Context, *domain.Habitacion) error      { return nil }
func (f *fakeHabitacionRepo) UpdateRoom(context.Context, *domain.Habitacion) error      { return nil }
func (f *fakeHabitacionRepo) SetDisponible(context.Context, int, bool) error            { return nil }
func (f *fakeHabitacionRepo) SoftDelete(context.Context, int) error                     { return nil }
func (f *fakeHabitacionRepo) CreateRoomType(context.Context, *domain.TipoHabitacion) error { return nil }
func (f *fakeHabitacionRepo) UpdateRoomType(context.Context, *domain.TipoHabitacion) error { return nil }

type fakePersonRepo struct {
	mu       sync.Mutex
	seq      int
	personas map[string]*domain.Person
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{personas: make(map[string]*domain.Person)}
}

func (f *fakePersonRepo) FindByEmail(_ context.Context, email string) (*domain.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.personas[email]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}

func (f *fakePersonRepo) Create(_ context.Context, person *domain.Person) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	person.PersonID = f.seq
	copia := *person
	f.personas[person.Email] = &copia
	return nil
}

func (f *fakePersonRepo) GetByID(_ context.Context, id int) (*domain.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.personas {
		if p.PersonID == id {
			copia := *p
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakePersonRepo) Update(_ context.Context, person *domain.Person) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.personas[person.Email] = person
	return nil
}

func fecha(dia int) time.Time {
	return time.Date(2026, time.March, dia, 0, 0, 0, 0, time.UTC)
}

func rango(inicio, fin int) domain.RangoFechas {
	return domain.RangoFechas{Inicio: fecha(inicio), Fin: fecha(fin)}
}

func datosCliente(email string) DatosPersona {
	return DatosPersona{Name: "Ana", Surname: "García", Email: email}
}

func nuevoServicio() (*ReservaService, *fakeReservaRepo) {
	reservaRepo := newFakeReservaRepo()
	habitacionRepo := &fakeHabitacionRepo{habitaciones: map[int]domain.Habitacion{
		7: {ID: 7, Nombre: "Norte", Numero: "101", Activa: true, Disponible: true},
		8: {ID: 8, Nombre: "Sur", Numero: "102", Activa: true, Disponible: false},
	}}
	return NewReservaService(reservaRepo, habitacionRepo, newFakePersonRepo(), nil), reservaRepo
}

func TestCrearReservaStaffRechazaSolape(t *testing.T) {
	s, repo := nuevoServicio()
	ctx := context.Background()

	// Una pendiente de pago ya bloquea la franja [10, 15)
	pendiente := &domain.Reserva{PersonID: 1, HabitacionID: 7, Rango: rango(10, 15), Estado: domain.ReservaPendientePago}
	require.NoError(t, repo.Crear(ctx, pendiente))

	_, err := s.CrearReservaStaff(ctx, 3, nil, ptrDatos("carla@mail.com"), 7, rango(12, 17), "")
	require.Error(t, err)
	assert.True(t, failure.IsConflict(err))

	// Pegada al checkout sí entra
	reserva, err := s.CrearReservaStaff(ctx, 3, nil, ptrDatos("carla@mail.com"), 7, rango(15, 20), "")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaAprobada, reserva.Estado)
	require.NotNil(t, reserva.CreadaPor)
	require.NotNil(t, reserva.AprobadaPor)
	assert.Equal(t, 3, *reserva.CreadaPor)
	assert.Equal(t, 3, *reserva.AprobadaPor)
}

func ptrDatos(email string) *DatosPersona {
	d := datosCliente(email)
	return &d
}

func TestCrearReservaPublicaNoChequeaDisponibilidad(t *testing.T) {
	s, repo := nuevoServicio()
	ctx := context.Background()

	aprobada := &domain.Reserva{PersonID: 1, HabitacionID: 7, Rango: rango(10, 15), Estado: domain.ReservaAprobada}
	require.NoError(t, repo.Crear(ctx, aprobada))

	// El flujo público inserta aunque la franja esté tomada
	reserva, err := s.CrearReservaPublica(ctx, datosCliente("ana@mail.com"), 7, rango(10, 15), "")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaPendienteVerificacion, reserva.Estado)
	assert.Nil(t, reserva.CreadaPor)
}

func TestCrearReservaDesdeLandingChequea(t *testing.T) {
	s, repo := nuevoServicio()
	ctx := context.Background()

	aprobada := &domain.Reserva{PersonID: 1, HabitacionID: 7, Rango: rango(10, 15), Estado: domain.ReservaAprobada}
	require.NoError(t, repo.Crear(ctx, aprobada))

	_, err := s.CrearReservaDesdeLanding(ctx, datosCliente("ana@mail.com"), 7, rango(10, 15), "")
	require.Error(t, err)
	assert.True(t, failure.IsConflict(err))
}

func TestRangoVacioEsInvalido(t *testing.T) {
	s, _ := nuevoServicio()
	ctx := context.Background()
	vacio := rango(10, 10)

	_, err := s.CrearReservaPublica(ctx, datosCliente("ana@mail.com"), 7, vacio, "")
	assert.Equal(t, 400, failure.GetCode(err))

	_, err = s.CrearReservaDesdeLanding(ctx, datosCliente("ana@mail.com"), 7, vacio, "")
	assert.Equal(t, 400, failure.GetCode(err))

	_, err = s.CrearReservaStaff(ctx, 3, nil, ptrDatos("ana@mail.com"), 7, vacio, "")
	assert.Equal(t, 400, failure.GetCode(err))

	_, err = s.VerificarDisponibilidad(ctx, 7, vacio)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestHabitacionInexistenteOCerrada(t *testing.T) {
	s, _ := nuevoServicio()
	ctx := context.Background()

	_, err := s.CrearReservaPublica(ctx, datosCliente("ana@mail.com"), 99, rango(10, 15), "")
	assert.True(t, failure.IsNotFound(err))

	// La habitación 8 está cerrada operativamente
	_, err = s.CrearReservaPublica(ctx, datosCliente("ana@mail.com"), 8, rango(10, 15), "")
	assert.True(t, failure.IsConflict(err))
}

func TestAprobarSoloUnaDeDosPendientes(t *testing.T) {
	s, repo := nuevoServicio()
	ctx := context.Background()

	// Dos solicitudes pendientes pueden convivir en la misma franja
	primera := &domain.Reserva{PersonID: 1, HabitacionID: 7, Rango: rango(10, 15), Estado: domain.ReservaPendientePago}
	segunda := &domain.Reserva{PersonID: 2, HabitacionID: 7, Rango: rango(12, 17), Estado: domain.ReservaPendientePago}
	require.NoError(t, repo.Crear(ctx, primera))
	require.NoError(t, repo.Crear(ctx, segunda))

	aprobado, err := s.Aprobar(ctx, 3, primera.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaAprobada, aprobado.Estado)

	// La segunda choca con la recién aprobada
	_, err = s.Aprobar(ctx, 3, segunda.ID)
	require.Error(t, err)
	assert.True(t, failure.IsConflict(err))

	quedo, err := s.ObtenerPorID(ctx, segunda.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaPendientePago, quedo.Estado, "la reserva rechazada por conflicto no cambia de estado")
}

func TestAprobarPegadaAlCheckout(t *testing.T) {
	s, repo := nuevoServicio()
	ctx := context.Background()

	aprobada := &domain.Reserva{PersonID: 1, HabitacionID: 7, Rango: rango(10, 15), Estado: domain.ReservaAprobada}
	pendiente := &domain.Reserva{PersonID: 2, HabitacionID: 7, Rango: rango(15, 20), Estado: domain.ReservaPendientePago}
	require.NoError(t, repo.Crear(ctx, aprobada))
	require.NoError(t, repo.Crear(ctx, pendiente))

	reserva, err := s.Aprobar(ctx, 3, pendiente.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaAprobada, reserva.Estado)
}

func TestTransicionIlegal(t *testing.T) {
	s, repo := nuevoServicio()
	ctx := context.Background()

	cancelada := &domain.Reserva{PersonID: 1, HabitacionID: 7, Rango: rango(10, 15), Estado: domain.ReservaCancelada}
	require.NoError(t, repo.Crear(ctx, cancelada))

	_, err := s.Aprobar(ctx, 3, cancelada.ID)
	require.Error(t, err)
	assert.True(t, failure.IsConflict(err))

	_, err = s.Rechazar(ctx, 3, cancelada.ID)
	assert.True(t, failure.IsConflict(err))

	_, err = s.Aprobar(ctx, 3, 999)
	assert.True(t, failure.IsNotFound(err))
}

func TestCreacionConcurrenteMismaFranja(t *testing.T) {
	s, _ := nuevoServicio()
	ctx := context.Background()

	// Dos operadores cargan la misma franja a la vez: exactamente uno gana.
	resultados := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			email := fmt.Sprintf("cliente%d@mail.com", n)
			_, err := s.CrearReservaStaff(ctx, n+1, nil, ptrDatos(email), 7, rango(10, 15), "")
			resultados <- err
		}(i)
	}
	wg.Wait()
	close(resultados)

	exitos, conflictos := 0, 0
	for err := range resultados {
		switch {
		case err == nil:
			exitos++
		case failure.IsConflict(err):
			conflictos++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, exitos)
	assert.Equal(t, 1, conflictos)
}

func TestVerificarDisponibilidad(t *testing.T) {
	s, repo := nuevoServicio()
	ctx := context.Background()

	pendiente := &domain.Reserva{PersonID: 1, HabitacionID: 7, Rango: rango(10, 15), Estado: domain.ReservaPendienteVerificacion}
	require.NoError(t, repo.Crear(ctx, pendiente))

	libre, err := s.VerificarDisponibilidad(ctx, 7, rango(12, 14))
	require.NoError(t, err)
	assert.False(t, libre, "una pendiente de verificación bloquea la franja")

	libre, err = s.VerificarDisponibilidad(ctx, 7, rango(15, 20))
	require.NoError(t, err)
	assert.True(t, libre)
}

func TestOcupadaHoy(t *testing.T) {
	s, repo := nuevoServicio()
	ctx := context.Background()

	aprobada := &domain.Reserva{PersonID: 1, HabitacionID: 7, Rango: rango(10, 15), Estado: domain.ReservaAprobada}
	pendiente := &domain.Reserva{PersonID: 2, HabitacionID: 7, Rango: rango(20, 25), Estado: domain.ReservaPendientePago}
	require.NoError(t, repo.Crear(ctx, aprobada))
	require.NoError(t, repo.Crear(ctx, pendiente))

	ocupada, err := s.OcupadaHoy(ctx, 7, fecha(12))
	require.NoError(t, err)
	assert.True(t, ocupada)

	// El día del checkout ya está libre
	ocupada, err = s.OcupadaHoy(ctx, 7, fecha(15))
	require.NoError(t, err)
	assert.False(t, ocupada)

	// Las pendientes no cuentan como ocupación
	ocupada, err = s.OcupadaHoy(ctx, 7, fecha(22))
	require.NoError(t, err)
	assert.False(t, ocupada)
}

func TestCrearReservaValidaDatosCliente(t *testing.T) {
	s, repo := nuevoServicio()
	ctx := context.Background()

	tel := "12"
	malos := DatosPersona{Name: "A", Surname: "García", Email: "ana@mail.com", Phone: &tel}

	// Los tres caminos de creación rechazan datos de cliente inválidos
	// antes de tocar persistencia.
	_, err := s.CrearReservaDesdeLanding(ctx, malos, 7, rango(10, 15), "")
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "nombre")
	assert.Contains(t, err.Error(), "teléfono")

	_, err = s.CrearReservaPublica(ctx, malos, 7, rango(10, 15), "")
	assert.Equal(t, 400, failure.GetCode(err))

	_, err = s.CrearReservaStaff(ctx, 3, nil, &malos, 7, rango(10, 15), "")
	assert.Equal(t, 400, failure.GetCode(err))

	assert.Empty(t, repo.snapshot(), "una reserva con datos inválidos no se persiste")
}

func TestReusaPersonaPorEmail(t *testing.T) {
	s, _ := nuevoServicio()
	ctx := context.Background()

	primera, err := s.CrearReservaPublica(ctx, datosCliente("ana@mail.com"), 7, rango(10, 12), "")
	require.NoError(t, err)

	segunda, err := s.CrearReservaPublica(ctx, datosCliente("ana@mail.com"), 7, rango(20, 22), "")
	require.NoError(t, err)

	assert.Equal(t, primera.PersonID, segunda.PersonID)
}
