package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/application"
)

type PersonHandler struct {
	service *application.PersonService
}

// NewPersonHandler crea una nueva instancia del handler de personas
func NewPersonHandler(service *application.PersonService) *PersonHandler {
	return &PersonHandler{service: service}
}

// GetPersonByEmail busca una persona por su email
func (h *PersonHandler) GetPersonByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return badRequest(c, "email es requerido")
	}

	person, err := h.service.GetPersonByEmail(c.Context(), email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": person,
	})
}

// GetPersonByID obtiene una persona por su ID
func (h *PersonHandler) GetPersonByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	person, err := h.service.GetPersonByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": person,
	})
}
