package domain

import (
	"context"
	"time"
)

type EstadoConsulta string

const (
	ConsultaPendiente EstadoConsulta = "Pendiente"
	ConsultaResuelta  EstadoConsulta = "Resuelta"
)

// Consulta representa una pregunta de un cliente enviada desde la landing.
// Transiciona una sola vez: Pendiente -> Resuelta, irreversible.
type Consulta struct {
	ID             int            `json:"id"`
	PersonID       int            `json:"personId"`
	Mensaje        string         `json:"mensaje"`
	Estado         EstadoConsulta `json:"estado"`
	ResueltaPor    *int           `json:"resueltaPor,omitempty"`
	FechaEnvio     time.Time      `json:"fechaEnvio"`
	FechaRespuesta *time.Time     `json:"fechaRespuesta,omitempty"`
}

// ConsultaRepository define las operaciones con consultas
type ConsultaRepository interface {
	// Create crea una consulta nueva en estado Pendiente
	Create(ctx context.Context, c *Consulta) error
	// GetByID obtiene una consulta por su ID
	GetByID(ctx context.Context, id int) (*Consulta, error)
	// List devuelve todas las consultas, las pendientes primero
	List(ctx context.Context) ([]Consulta, error)
	// Resolver marca la consulta como resuelta solo si sigue pendiente
	// (compare-and-set); cero filas afectadas significa que ya fue resuelta.
	Resolver(ctx context.Context, id int, operadorID int) error
}
