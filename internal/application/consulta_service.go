package application

import (
	"context"
	"fmt"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

type ConsultaService struct {
	consultaRepo domain.ConsultaRepository
	personRepo   domain.PersonRepository
	validator    *Validator
}

func NewConsultaService(consultaRepo domain.ConsultaRepository, personRepo domain.PersonRepository) *ConsultaService {
	return &ConsultaService{
		consultaRepo: consultaRepo,
		personRepo:   personRepo,
		validator:    &Validator{},
	}
}

// Crear registra una consulta pública. Resuelve o crea la persona por email
// igual que el flujo de reservas.
func (s *ConsultaService) Crear(ctx context.Context, datos DatosPersona, mensaje string) (*domain.Consulta, error) {
	if mensaje == "" {
		return nil, failure.BadRequest("el mensaje es requerido")
	}
	if errs := s.validator.ValidateDatosPersona(datos); len(errs) > 0 {
		return nil, failure.BadRequest(s.validator.FormatValidationErrors(errs))
	}

	person, err := s.personRepo.FindByEmail(ctx, datos.Email)
	if err != nil {
		return nil, failure.InternalError(fmt.Errorf("error al buscar persona: %w", err))
	}
	if person == nil {
		person = &domain.Person{
			Name:     datos.Name,
			Surname:  datos.Surname,
			Email:    datos.Email,
			Phone:    datos.Phone,
			Location: datos.Location,
		}
		if err := s.personRepo.Create(ctx, person); err != nil {
			return nil, failure.InternalError(fmt.Errorf("error al crear persona: %w", err))
		}
	}

	consulta := &domain.Consulta{
		PersonID: person.PersonID,
		Mensaje:  mensaje,
		Estado:   domain.ConsultaPendiente,
	}
	if err := s.consultaRepo.Create(ctx, consulta); err != nil {
		return nil, failure.InternalError(err)
	}
	return consulta, nil
}

// List devuelve todas las consultas.
func (s *ConsultaService) List(ctx context.Context) ([]domain.Consulta, error) {
	return s.consultaRepo.List(ctx)
}

// Resolver marca una consulta pendiente como resuelta por el operador.
// La transición es única e irreversible; resolver dos veces falla.
func (s *ConsultaService) Resolver(ctx context.Context, operadorID, consultaID int) error {
	consulta, err := s.consultaRepo.GetByID(ctx, consultaID)
	if err != nil {
		return err
	}
	if consulta == nil {
		return failure.NotFound(fmt.Sprintf("consulta %d no encontrada", consultaID))
	}
	if consulta.Estado != domain.ConsultaPendiente {
		return failure.Conflict(fmt.Sprintf("la consulta %d ya fue resuelta", consultaID))
	}
	return s.consultaRepo.Resolver(ctx, consultaID, operadorID)
}
