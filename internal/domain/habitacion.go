package domain

import (
	"context"
	"time"
)

// TipoHabitacion represents the room type
type TipoHabitacion struct {
	ID          int     `json:"id"`
	Titulo      string  `json:"titulo"`
	Descripcion string  `json:"descripcion"`
	Capacidad   int     `json:"capacidad"`
	Precio      float64 `json:"precio"`
}

// Habitacion represents a room in the hotel with its type information.
// Activa=false + Disponible=false es el marcador irreversible de "eliminada";
// cualquier otra combinación con un flag apagado significa cerrada operativamente.
type Habitacion struct {
	ID                 int            `json:"id"`
	Nombre             string         `json:"nombre"`
	Numero             string         `json:"numero"`
	Activa             bool           `json:"activa"`
	Disponible         bool           `json:"disponible"`
	DescripcionGeneral string         `json:"descripcionGeneral"`
	TipoHabitacion     TipoHabitacion `json:"tipoHabitacion"`
}

// EstadoHabitacion es el estado derivado de una habitación; nunca se persiste.
type EstadoHabitacion string

const (
	HabitacionLibre     EstadoHabitacion = "Libre"
	HabitacionOcupada   EstadoHabitacion = "Ocupada"
	HabitacionCerrada   EstadoHabitacion = "Cerrada"
	HabitacionEliminada EstadoHabitacion = "Eliminada"
)

// AceptaReservas indica si la habitación puede recibir reservas nuevas.
func (h Habitacion) AceptaReservas() bool {
	return h.Activa && h.Disponible
}

// ProyectarEstado calcula el estado visible de la habitación a una fecha dada,
// en este orden de prioridad:
//  1. !Activa && !Disponible  -> Eliminada (gana incluso con reservas aprobadas hoy)
//  2. un solo flag apagado    -> Cerrada
//  3. reserva aprobada cuyo rango contiene la fecha -> Ocupada
//  4. si no                   -> Libre
func ProyectarEstado(h Habitacion, reservasAprobadas []Reserva, fecha time.Time) EstadoHabitacion {
	if !h.Activa && !h.Disponible {
		return HabitacionEliminada
	}
	if !h.Activa || !h.Disponible {
		return HabitacionCerrada
	}

	dia := NormalizarFecha(fecha)
	for _, r := range reservasAprobadas {
		if r.HabitacionID != h.ID || r.Estado != ReservaAprobada {
			continue
		}
		if r.Rango.Contiene(dia) {
			return HabitacionOcupada
		}
	}
	return HabitacionLibre
}

// FechasBloqueadas representa las fechas donde no hay disponibilidad
type FechasBloqueadas struct {
	FechasNoDisponibles []time.Time `json:"fechasNoDisponibles"`
}

// DisponibilidadFecha representa la disponibilidad de habitaciones para una fecha específica
type DisponibilidadFecha struct {
	Fecha        time.Time `json:"fecha"`
	Disponible   bool      `json:"disponible"`
	Habitaciones int       `json:"habitaciones"`
}

// HabitacionRepository defines the interface for room data operations
type HabitacionRepository interface {
	// GetAllRooms returns all rooms in the system
	GetAllRooms(ctx context.Context) ([]Habitacion, error)
	// GetByID returns a room by its ID
	GetByID(ctx context.Context, id int) (*Habitacion, error)
	// GetAvailableRooms returns rooms that are open and free for the given date range
	GetAvailableRooms(ctx context.Context, rango RangoFechas) ([]Habitacion, error)
	// GetFechasBloqueadas returns dates where there are no rooms available
	GetFechasBloqueadas(ctx context.Context, desde, hasta time.Time) (*FechasBloqueadas, error)
	// GetDisponibilidadFechas returns the availability status for each date in the range
	GetDisponibilidadFechas(ctx context.Context, desde, hasta time.Time) ([]DisponibilidadFecha, error)
	// GetRoomTypes returns all room types in the system
	GetRoomTypes(ctx context.Context) ([]TipoHabitacion, error)
	// CreateRoom crea una habitación nueva
	CreateRoom(ctx context.Context, h *Habitacion) error
	// UpdateRoom actualiza nombre, número, descripción y tipo
	UpdateRoom(ctx context.Context, h *Habitacion) error
	// SetDisponible prende o apaga el bloqueo operativo de la habitación
	SetDisponible(ctx context.Context, id int, disponible bool) error
	// SoftDelete marca la habitación como eliminada (activa=false, disponible=false)
	SoftDelete(ctx context.Context, id int) error
	// CreateRoomType crea un tipo de habitación
	CreateRoomType(ctx context.Context, t *TipoHabitacion) error
	// UpdateRoomType actualiza un tipo de habitación
	UpdateRoomType(ctx context.Context, t *TipoHabitacion) error
}
