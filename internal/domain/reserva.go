package domain

import (
	"context"
	"time"
)

type EstadoReserva string

const (
	ReservaPendienteVerificacion EstadoReserva = "PendienteVerificacion"
	ReservaPendientePago         EstadoReserva = "PendientePago"
	ReservaAprobada              EstadoReserva = "Aprobada"
	ReservaRechazada             EstadoReserva = "Rechazada"
	ReservaCancelada             EstadoReserva = "Cancelada"
)

// transicionesValidas enumera las transiciones legales del ciclo de vida de una
// reserva. Todo par que no figure acá es ilegal y debe fallar con error explícito.
//
//	PendienteVerificacion -> PendientePago   (staff confirma identidad)
//	PendienteVerificacion -> Aprobada        (staff aprueba)
//	PendienteVerificacion -> Rechazada
//	PendienteVerificacion -> Cancelada
//	PendientePago         -> Aprobada
//	PendientePago         -> Rechazada
//	PendientePago         -> Cancelada
//	Aprobada              -> Cancelada
//
// Rechazada y Cancelada son terminales.
var transicionesValidas = map[EstadoReserva]map[EstadoReserva]bool{
	ReservaPendienteVerificacion: {
		ReservaPendientePago: true,
		ReservaAprobada:      true,
		ReservaRechazada:     true,
		ReservaCancelada:     true,
	},
	ReservaPendientePago: {
		ReservaAprobada:  true,
		ReservaRechazada: true,
		ReservaCancelada: true,
	},
	ReservaAprobada: {
		ReservaCancelada: true,
	},
}

// EsValido indica si el estado es uno de los cinco conocidos.
func (e EstadoReserva) EsValido() bool {
	switch e {
	case ReservaPendienteVerificacion, ReservaPendientePago,
		ReservaAprobada, ReservaRechazada, ReservaCancelada:
		return true
	}
	return false
}

// EsPendiente indica si la reserva todavía espera resolución del staff.
func (e EstadoReserva) EsPendiente() bool {
	return e == ReservaPendienteVerificacion || e == ReservaPendientePago
}

// PuedeTransicionarA valida la transición contra la tabla de transiciones legales.
func (e EstadoReserva) PuedeTransicionarA(destino EstadoReserva) bool {
	return transicionesValidas[e][destino]
}

// EstadosBloqueantes devuelve los estados cuya franja de fechas cuenta contra la
// disponibilidad al momento de CREAR una reserva: una solicitud aún no aprobada
// también reserva el lugar frente a nuevas reservas competidoras.
func EstadosBloqueantes() []EstadoReserva {
	return []EstadoReserva{ReservaPendienteVerificacion, ReservaPendientePago, ReservaAprobada}
}

// EstadosBloqueantesAprobacion devuelve los estados considerados al APROBAR.
// Se reduce a Aprobada a propósito: pueden coexistir varias solicitudes
// pendientes para la misma habitación y fechas; solo una termina aprobada.
func EstadosBloqueantesAprobacion() []EstadoReserva {
	return []EstadoReserva{ReservaAprobada}
}

// Reserva representa una reserva de una habitación para una persona.
// CreadaPor nil significa reserva ingresada online (sin operador).
type Reserva struct {
	ID            int           `json:"id"`
	PersonID      int           `json:"personId"`
	HabitacionID  int           `json:"habitacionId"`
	Rango         RangoFechas   `json:"rango"`
	Estado        EstadoReserva `json:"estado"`
	Notas         string        `json:"notas,omitempty"`
	CreadaPor     *int          `json:"creadaPor,omitempty"`
	AprobadaPor   *int          `json:"aprobadaPor,omitempty"`
	FechaCreacion time.Time     `json:"fechaCreacion"`
}

// ReservaRepository define las operaciones disponibles con las reservas.
type ReservaRepository interface {
	// GetByID obtiene una reserva por su ID.
	GetByID(ctx context.Context, id int) (*Reserva, error)
	// ListByHabitacion obtiene todas las reservas de una habitación.
	ListByHabitacion(ctx context.Context, habitacionID int) ([]Reserva, error)
	// ListByHabitacionYEstados filtra por habitación y conjunto de estados.
	ListByHabitacionYEstados(ctx context.Context, habitacionID int, estados []EstadoReserva) ([]Reserva, error)
	// ListAprobadasEnFecha devuelve las reservas aprobadas cuyo rango contiene la fecha.
	ListAprobadasEnFecha(ctx context.Context, fecha time.Time) ([]Reserva, error)
	// Crear inserta la reserva sin chequeo de disponibilidad.
	Crear(ctx context.Context, reserva *Reserva) error
	// CrearConChequeo inserta la reserva dentro de una transacción que bloquea la
	// fila de la habitación y verifica solapamiento contra los estados bloqueantes.
	// Devuelve error de conflicto si la franja ya está tomada.
	CrearConChequeo(ctx context.Context, reserva *Reserva, bloqueantes []EstadoReserva) error
	// ActualizarEstado cambia el estado solo si el estado actual coincide con
	// esperado (compare-and-set). Cero filas afectadas significa conflicto.
	ActualizarEstado(ctx context.Context, id int, esperado, nuevo EstadoReserva, actorID int) error
	// AprobarConChequeo cambia el estado a Aprobada dentro de una transacción que
	// bloquea la habitación y re-verifica solapamiento contra reservas aprobadas,
	// excluyendo la propia reserva.
	AprobarConChequeo(ctx context.Context, id int, esperado EstadoReserva, actorID int) error
	// CancelarPendientesVencidas cancela reservas pendientes cuyo check-in ya pasó.
	CancelarPendientesVencidas(ctx context.Context, hoy time.Time) (int64, error)
}
