package application

import (
	"context"
	"fmt"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

type PersonService struct {
	personRepo domain.PersonRepository
}

// NewPersonService crea una nueva instancia del servicio de personas
func NewPersonService(personRepo domain.PersonRepository) *PersonService {
	return &PersonService{
		personRepo: personRepo,
	}
}

// GetPersonByEmail obtiene una persona por su email
func (s *PersonService) GetPersonByEmail(ctx context.Context, email string) (*domain.Person, error) {
	if email == "" {
		return nil, failure.BadRequest("el email es requerido")
	}

	person, err := s.personRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error al buscar persona: %w", err)
	}

	if person == nil {
		return nil, failure.NotFound(fmt.Sprintf("persona con email %s no encontrada", email))
	}

	return person, nil
}

// GetPersonByID obtiene una persona por su ID
func (s *PersonService) GetPersonByID(ctx context.Context, id int) (*domain.Person, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, failure.NotFound(fmt.Sprintf("persona %d no encontrada", id))
	}
	return person, nil
}
