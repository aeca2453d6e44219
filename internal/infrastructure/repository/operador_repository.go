package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

type operadorRepository struct {
	db *sql.DB
}

func NewOperadorRepository(db *sql.DB) domain.OperadorRepository {
	return &operadorRepository{db: db}
}

const operadorColumns = `operator_id, document_number, name, email, password_hash, active, role, creation_date`

func scanOperador(row interface{ Scan(...any) error }) (*domain.Operador, error) {
	o := &domain.Operador{}
	err := row.Scan(
		&o.ID,
		&o.DocumentNumber,
		&o.Nombre,
		&o.Email,
		&o.PasswordHash,
		&o.Activo,
		&o.Rol,
		&o.FechaCreacion,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create crea una cuenta nueva; email y documento tienen índices únicos.
func (r *operadorRepository) Create(ctx context.Context, o *domain.Operador) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO operator (document_number, name, email, password_hash, active, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING operator_id, creation_date`,
		o.DocumentNumber, o.Nombre, o.Email, o.PasswordHash, o.Activo, string(o.Rol),
	).Scan(&o.ID, &o.FechaCreacion)

	if err != nil {
		// 23505 = unique_violation
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return failure.Conflict("ya existe un operador con ese email o documento")
		}
		return fmt.Errorf("error al crear operador: %w", err)
	}
	return nil
}

// GetByID obtiene un operador por su ID; devuelve nil sin error si no existe
func (r *operadorRepository) GetByID(ctx context.Context, id int) (*domain.Operador, error) {
	query := `SELECT ` + operadorColumns + ` FROM operator WHERE operator_id = $1`

	o, err := scanOperador(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al obtener operador: %w", err)
	}
	return o, nil
}

// FindByEmail busca por email; devuelve nil sin error si no existe
func (r *operadorRepository) FindByEmail(ctx context.Context, email string) (*domain.Operador, error) {
	query := `SELECT ` + operadorColumns + ` FROM operator WHERE email = $1`

	o, err := scanOperador(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al buscar operador: %w", err)
	}
	return o, nil
}

// List devuelve todas las cuentas, activas e inactivas
func (r *operadorRepository) List(ctx context.Context) ([]domain.Operador, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+operadorColumns+` FROM operator ORDER BY operator_id`)
	if err != nil {
		return nil, fmt.Errorf("error al consultar operadores: %w", err)
	}
	defer rows.Close()

	var operadores []domain.Operador
	for rows.Next() {
		o, err := scanOperador(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear operador: %w", err)
		}
		operadores = append(operadores, *o)
	}
	return operadores, rows.Err()
}

// Update actualiza nombre y email
func (r *operadorRepository) Update(ctx context.Context, o *domain.Operador) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE operator SET name = $1, email = $2 WHERE operator_id = $3`,
		o.Nombre, o.Email, o.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return failure.Conflict("ya existe un operador con ese email")
		}
		return fmt.Errorf("error al actualizar operador: %w", err)
	}
	return requireRow(result, fmt.Sprintf("operador %d no encontrado", o.ID))
}

// SetActivo activa o desactiva la cuenta
func (r *operadorRepository) SetActivo(ctx context.Context, id int, activo bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE operator SET active = $1 WHERE operator_id = $2`, activo, id)
	if err != nil {
		return fmt.Errorf("error al actualizar operador: %w", err)
	}
	return requireRow(result, fmt.Sprintf("operador %d no encontrado", id))
}
