package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/application"
)

type ConsultaHandler struct {
	service *application.ConsultaService
}

// NewConsultaHandler crea una nueva instancia del handler de consultas
func NewConsultaHandler(service *application.ConsultaService) *ConsultaHandler {
	return &ConsultaHandler{service: service}
}

// CreateConsultaRequest representa una consulta enviada desde el formulario de contacto
type CreateConsultaRequest struct {
	Mensaje string         `json:"mensaje" validate:"required"`
	Cliente PersonaRequest `json:"cliente" validate:"required"`
}

// CreateConsulta recibe una consulta pública de contacto
func (h *ConsultaHandler) CreateConsulta(c *fiber.Ctx) error {
	var req CreateConsultaRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	consulta, err := h.service.Crear(c.Context(), req.Cliente.toDatos(), req.Mensaje)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Consulta enviada exitosamente",
		"data":    consulta,
	})
}

// GetConsultas lista todas las consultas, pendientes primero
func (h *ConsultaHandler) GetConsultas(c *fiber.Ctx) error {
	consultas, err := h.service.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": consultas,
	})
}

// ResolverConsulta marca una consulta como resuelta por el operador autenticado
func (h *ConsultaHandler) ResolverConsulta(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.Resolver(c.Context(), operadorID(c), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Consulta resuelta exitosamente",
	})
}
