package domain

import (
	"context"
	"time"
)

type RolOperador string

const (
	RolOperadorFrontDesk RolOperador = "operador"
	RolAdmin             RolOperador = "admin"
)

// EsValido indica si el rol es uno de los conocidos.
func (r RolOperador) EsValido() bool {
	return r == RolOperadorFrontDesk || r == RolAdmin
}

// Operador representa una cuenta de staff. Se desactiva con el flag Activo,
// nunca se borra físicamente.
type Operador struct {
	ID             int         `json:"id"`
	DocumentNumber string      `json:"documentNumber"`
	Nombre         string      `json:"nombre"`
	Email          string      `json:"email"`
	PasswordHash   string      `json:"-"`
	Activo         bool        `json:"activo"`
	Rol            RolOperador `json:"rol"`
	FechaCreacion  time.Time   `json:"fechaCreacion"`
}

// OperadorRepository define las operaciones con cuentas de operador
type OperadorRepository interface {
	// Create crea una cuenta nueva; falla si el email o el documento ya existen
	Create(ctx context.Context, o *Operador) error
	// GetByID obtiene un operador por su ID
	GetByID(ctx context.Context, id int) (*Operador, error)
	// FindByEmail busca por email; devuelve nil sin error si no existe
	FindByEmail(ctx context.Context, email string) (*Operador, error)
	// List devuelve todas las cuentas, activas e inactivas
	List(ctx context.Context) ([]Operador, error)
	// Update actualiza nombre y email
	Update(ctx context.Context, o *Operador) error
	// SetActivo activa o desactiva la cuenta
	SetActivo(ctx context.Context, id int, activo bool) error
}
