package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/auth"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

type OperadorService struct {
	repo      domain.OperadorRepository
	validator *Validator
	jwtSecret string
	jwtTTLMin int
}

func NewOperadorService(repo domain.OperadorRepository, jwtSecret string, jwtTTLMin int) *OperadorService {
	return &OperadorService{
		repo:      repo,
		validator: &Validator{},
		jwtSecret: jwtSecret,
		jwtTTLMin: jwtTTLMin,
	}
}

// Crear da de alta una cuenta de operador. Solo lo invoca un administrador
// (la capa HTTP ya verificó el rol del actor contra el token).
func (s *OperadorService) Crear(ctx context.Context, documentNumber, nombre, email, password string, rol domain.RolOperador) (*domain.Operador, error) {
	if err := s.validator.ValidateDocumentNumber(documentNumber); err != nil {
		return nil, failure.BadRequest(err.Error())
	}
	if err := s.validator.ValidateName(nombre, "nombre"); err != nil {
		return nil, failure.BadRequest(err.Error())
	}
	if err := s.validator.ValidateEmail(email); err != nil {
		return nil, failure.BadRequest(err.Error())
	}
	if !rol.EsValido() {
		return nil, failure.BadRequest(fmt.Sprintf("rol inválido: %s", rol))
	}
	if len(password) < 8 {
		return nil, failure.BadRequest("la contraseña debe tener al menos 8 caracteres")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, failure.InternalError(err)
	}

	operador := &domain.Operador{
		DocumentNumber: documentNumber,
		Nombre:         nombre,
		Email:          email,
		PasswordHash:   hash,
		Activo:         true,
		Rol:            rol,
	}
	if err := s.repo.Create(ctx, operador); err != nil {
		return nil, err
	}

	log.Info().Int("operador", operador.ID).Str("rol", string(rol)).Msg("cuenta de operador creada")
	return operador, nil
}

// Login verifica credenciales y emite el token de acceso con el claim de rol.
func (s *OperadorService) Login(ctx context.Context, email, password string) (string, *domain.Operador, error) {
	operador, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, failure.InternalError(err)
	}
	if operador == nil || !operador.Activo {
		// La misma respuesta para cuenta inexistente y desactivada.
		return "", nil, failure.Unauthorized("credenciales inválidas")
	}
	if err := auth.VerifyPassword(password, operador.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			return "", nil, failure.Unauthorized("credenciales inválidas")
		}
		// Un hash corrupto o un error de bcrypt no es culpa del cliente.
		return "", nil, failure.InternalError(err)
	}

	token, _, err := auth.NewAccessToken(s.jwtSecret, operador.ID, operador.Rol, s.jwtTTLMin)
	if err != nil {
		return "", nil, failure.InternalError(err)
	}
	return token, operador, nil
}

// List devuelve todas las cuentas, activas e inactivas.
func (s *OperadorService) List(ctx context.Context) ([]domain.Operador, error) {
	return s.repo.List(ctx)
}

// GetByID obtiene una cuenta por su ID.
func (s *OperadorService) GetByID(ctx context.Context, id int) (*domain.Operador, error) {
	operador, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if operador == nil {
		return nil, failure.NotFound(fmt.Sprintf("operador %d no encontrado", id))
	}
	return operador, nil
}

// Actualizar cambia nombre y email de la cuenta.
func (s *OperadorService) Actualizar(ctx context.Context, id int, nombre, email string) error {
	operador, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateName(nombre, "nombre"); err != nil {
		return failure.BadRequest(err.Error())
	}
	if err := s.validator.ValidateEmail(email); err != nil {
		return failure.BadRequest(err.Error())
	}
	operador.Nombre = nombre
	operador.Email = email
	return s.repo.Update(ctx, operador)
}

// SetActivo activa o desactiva la cuenta; nunca se borra físicamente.
func (s *OperadorService) SetActivo(ctx context.Context, id int, activo bool) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, activo)
}
