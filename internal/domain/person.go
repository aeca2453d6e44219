package domain

import (
	"context"
	"time"
)

// Person representa un cliente del hotel. La clave de unicidad es el email:
// una reserva o consulta con un email nuevo crea la persona, de lo contrario
// se reutiliza la existente. Nunca se elimina.
type Person struct {
	PersonID      int       `json:"personId"`
	Name          string    `json:"name"`
	Surname       string    `json:"surname"`
	Email         string    `json:"email"`
	Phone         *string   `json:"phone,omitempty"`    // Puntero para permitir NULL
	Location      *string   `json:"location,omitempty"` // Puntero para permitir NULL
	FechaCreacion time.Time `json:"fechaCreacion"`
}

// PersonRepository define las operaciones con personas
type PersonRepository interface {
	// FindByEmail busca una persona por su email; devuelve nil sin error si no existe
	FindByEmail(ctx context.Context, email string) (*Person, error)
	// Create crea una nueva persona
	Create(ctx context.Context, person *Person) error
	// GetByID obtiene una persona por su ID
	GetByID(ctx context.Context, id int) (*Person, error)
	// Update actualiza los datos de una persona existente
	Update(ctx context.Context, person *Person) error
}
