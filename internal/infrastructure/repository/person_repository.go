package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
)

type personRepository struct {
	db *sql.DB
}

// NewPersonRepository crea una nueva instancia del repositorio de personas
func NewPersonRepository(db *sql.DB) domain.PersonRepository {
	return &personRepository{db: db}
}

const personColumns = `person_id, name, surname, email, phone, location, creation_date`

func scanPerson(row interface{ Scan(...any) error }) (*domain.Person, error) {
	person := &domain.Person{}
	var phone, location sql.NullString

	err := row.Scan(
		&person.PersonID,
		&person.Name,
		&person.Surname,
		&person.Email,
		&phone,
		&location,
		&person.FechaCreacion,
	)
	if err != nil {
		return nil, err
	}

	// Convertir sql.NullString a *string
	if phone.Valid {
		person.Phone = &phone.String
	}
	if location.Valid {
		person.Location = &location.String
	}
	return person, nil
}

// FindByEmail busca una persona por su email
func (r *personRepository) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM person WHERE email = $1`

	person, err := scanPerson(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, nil // No existe, devolver nil sin error
	}
	if err != nil {
		return nil, fmt.Errorf("error al buscar persona: %w", err)
	}
	return person, nil
}

// Create crea una nueva persona
func (r *personRepository) Create(ctx context.Context, person *domain.Person) error {
	query := `
		INSERT INTO person (name, surname, email, phone, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING person_id, creation_date`

	var phone, location sql.NullString
	if person.Phone != nil {
		phone = sql.NullString{String: *person.Phone, Valid: true}
	}
	if person.Location != nil {
		location = sql.NullString{String: *person.Location, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		person.Name,
		person.Surname,
		person.Email,
		phone,
		location,
	).Scan(&person.PersonID, &person.FechaCreacion)

	if err != nil {
		return fmt.Errorf("error al crear persona: %w", err)
	}
	return nil
}

// GetByID obtiene una persona por su ID; devuelve nil sin error si no existe
func (r *personRepository) GetByID(ctx context.Context, id int) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM person WHERE person_id = $1`

	person, err := scanPerson(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al obtener persona: %w", err)
	}
	return person, nil
}

// Update actualiza los datos de una persona existente
func (r *personRepository) Update(ctx context.Context, person *domain.Person) error {
	var phone, location sql.NullString
	if person.Phone != nil {
		phone = sql.NullString{String: *person.Phone, Valid: true}
	}
	if person.Location != nil {
		location = sql.NullString{String: *person.Location, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE person
		SET name = $1, surname = $2, email = $3, phone = $4, location = $5
		WHERE person_id = $6`,
		person.Name,
		person.Surname,
		person.Email,
		phone,
		location,
		person.PersonID,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar persona: %w", err)
	}
	return requireRow(result, fmt.Sprintf("persona %d no encontrada", person.PersonID))
}
