package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

type consultaRepository struct {
	db *sql.DB
}

func NewConsultaRepository(db *sql.DB) domain.ConsultaRepository {
	return &consultaRepository{db: db}
}

const consultaColumns = `inquiry_id, person_id, message, status, resolved_by, sent_date, response_date`

func scanConsulta(row interface{ Scan(...any) error }) (*domain.Consulta, error) {
	c := &domain.Consulta{}
	var resolvedBy sql.NullInt64
	var responseDate sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.PersonID,
		&c.Mensaje,
		&c.Estado,
		&resolvedBy,
		&c.FechaEnvio,
		&responseDate,
	)
	if err != nil {
		return nil, err
	}

	if resolvedBy.Valid {
		v := int(resolvedBy.Int64)
		c.ResueltaPor = &v
	}
	if responseDate.Valid {
		c.FechaRespuesta = &responseDate.Time
	}
	return c, nil
}

// Create crea una consulta nueva en estado Pendiente
func (r *consultaRepository) Create(ctx context.Context, c *domain.Consulta) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO inquiry (person_id, message, status)
		VALUES ($1, $2, $3)
		RETURNING inquiry_id, sent_date`,
		c.PersonID, c.Mensaje, string(domain.ConsultaPendiente),
	).Scan(&c.ID, &c.FechaEnvio)
	if err != nil {
		return fmt.Errorf("error al crear consulta: %w", err)
	}
	c.Estado = domain.ConsultaPendiente
	return nil
}

// GetByID obtiene una consulta por su ID; devuelve nil sin error si no existe
func (r *consultaRepository) GetByID(ctx context.Context, id int) (*domain.Consulta, error) {
	query := `SELECT ` + consultaColumns + ` FROM inquiry WHERE inquiry_id = $1`

	c, err := scanConsulta(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al obtener consulta: %w", err)
	}
	return c, nil
}

// List devuelve todas las consultas, las pendientes primero
func (r *consultaRepository) List(ctx context.Context) ([]domain.Consulta, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+consultaColumns+`
		FROM inquiry
		ORDER BY status = 'Resuelta', sent_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("error al consultar consultas: %w", err)
	}
	defer rows.Close()

	var consultas []domain.Consulta
	for rows.Next() {
		c, err := scanConsulta(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear consulta: %w", err)
		}
		consultas = append(consultas, *c)
	}
	return consultas, rows.Err()
}

// Resolver marca la consulta como resuelta solo si sigue pendiente.
func (r *consultaRepository) Resolver(ctx context.Context, id int, operadorID int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE inquiry
		SET status = $1, resolved_by = $2, response_date = NOW()
		WHERE inquiry_id = $3 AND status = $4`,
		string(domain.ConsultaResuelta), operadorID, id, string(domain.ConsultaPendiente),
	)
	if err != nil {
		return fmt.Errorf("error al resolver consulta: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar resolución: %w", err)
	}
	if rowsAffected == 0 {
		return failure.Conflict(fmt.Sprintf("la consulta %d ya fue resuelta", id))
	}
	return nil
}
