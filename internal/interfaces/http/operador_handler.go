package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/application"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
)

type OperadorHandler struct {
	service *application.OperadorService
}

// NewOperadorHandler crea una nueva instancia del handler de operadores
func NewOperadorHandler(service *application.OperadorService) *OperadorHandler {
	return &OperadorHandler{service: service}
}

// LoginRequest representa las credenciales de un operador
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateOperadorRequest representa el alta de una cuenta de staff
type CreateOperadorRequest struct {
	DocumentNumber string `json:"documentNumber" validate:"required"`
	Nombre         string `json:"nombre" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Rol            string `json:"rol" validate:"required"`
}

// UpdateOperadorRequest actualiza nombre y email de una cuenta
type UpdateOperadorRequest struct {
	Nombre string `json:"nombre" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

// SetActivoRequest activa o desactiva una cuenta
type SetActivoRequest struct {
	Activo *bool `json:"activo" validate:"required"`
}

// Login verifica credenciales y devuelve el token de acceso
func (h *OperadorHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	token, operador, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"data":  operador,
	})
}

// CreateOperador da de alta una cuenta de operador o administrador
func (h *OperadorHandler) CreateOperador(c *fiber.Ctx) error {
	var req CreateOperadorRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	operador, err := h.service.Crear(c.Context(), req.DocumentNumber, req.Nombre, req.Email, req.Password, domain.RolOperador(req.Rol))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Operador creado exitosamente",
		"data":    operador,
	})
}

// GetOperadores lista todas las cuentas
func (h *OperadorHandler) GetOperadores(c *fiber.Ctx) error {
	operadores, err := h.service.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": operadores,
	})
}

// GetOperadorByID devuelve una cuenta por su ID
func (h *OperadorHandler) GetOperadorByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	operador, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": operador,
	})
}

// UpdateOperador actualiza nombre y email de la cuenta
func (h *OperadorHandler) UpdateOperador(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateOperadorRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.service.Actualizar(c.Context(), id, req.Nombre, req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Operador actualizado exitosamente",
	})
}

// SetActivo activa o desactiva la cuenta
func (h *OperadorHandler) SetActivo(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req SetActivoRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.service.SetActivo(c.Context(), id, *req.Activo); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Operador actualizado exitosamente",
	})
}
