package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/application"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

const fechaLayout = "2006-01-02"

var validate = validator.New()

// respondError traduce un error de servicio a la respuesta HTTP. Los errores
// que no son Failure se registran y salen como 500 genérico para no filtrar
// detalles de infraestructura.
func respondError(c *fiber.Ctx, err error) error {
	code := failure.GetCode(err)
	if code == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(code).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

// parseBody parsea el JSON del body y corre las validaciones de struct tags.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return failure.BadRequest("Formato de solicitud inválido")
	}
	if err := validate.Struct(dest); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			f := verrs[0]
			return failure.BadRequest("Campo inválido: " + f.Field())
		}
		return failure.BadRequest("Solicitud inválida")
	}
	return nil
}

// parseFecha parsea una fecha YYYY-MM-DD normalizada a medianoche UTC.
func parseFecha(valor, campo string) (time.Time, error) {
	t, err := time.Parse(fechaLayout, valor)
	if err != nil {
		return time.Time{}, failure.BadRequest("Formato de " + campo + " inválido. Use YYYY-MM-DD")
	}
	return domain.NormalizarFecha(t), nil
}

func parseIDParam(c *fiber.Ctx, nombre string) (int, error) {
	id, err := c.ParamsInt(nombre)
	if err != nil || id <= 0 {
		return 0, failure.BadRequest("ID inválido")
	}
	return id, nil
}

// PersonaRequest son los datos de contacto que acompañan reservas y
// consultas públicas.
type PersonaRequest struct {
	Nombre   string  `json:"nombre" validate:"required"`
	Apellido string  `json:"apellido" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Telefono *string `json:"telefono,omitempty"`
	Origen   *string `json:"origen,omitempty"`
}

func (p PersonaRequest) toDatos() application.DatosPersona {
	return application.DatosPersona{
		Name:     p.Nombre,
		Surname:  p.Apellido,
		Email:    p.Email,
		Phone:    p.Telefono,
		Location: p.Origen,
	}
}
