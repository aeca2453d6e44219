package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/application"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/auth"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

const (
	localOperadorID = "operador_id"
	localRol        = "rol"
)

// RequireAuth valida el Bearer token y deja el operador y su rol en los
// locals del request.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return respondError(c, failure.Unauthorized("Token de autorización requerido"))
		}

		claims, err := auth.ParseAccessToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return respondError(c, failure.Unauthorized("Token inválido o expirado"))
		}

		c.Locals(localOperadorID, claims.OperadorID)
		c.Locals(localRol, claims.Rol)
		return c.Next()
	}
}

// RequireRol corta con 403 si el rol autenticado no está en la lista.
// Debe montarse después de RequireAuth.
func RequireRol(roles ...domain.RolOperador) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, ok := c.Locals(localRol).(domain.RolOperador)
		if !ok {
			return respondError(c, failure.Unauthorized("Token de autorización requerido"))
		}
		for _, permitido := range roles {
			if rol == permitido {
				return c.Next()
			}
		}
		return respondError(c, failure.Forbidden("No tiene permisos para esta operación"))
	}
}

// operadorID lee el ID autenticado que dejó RequireAuth.
func operadorID(c *fiber.Ctx) int {
	id, _ := c.Locals(localOperadorID).(int)
	return id
}

// RateLimit limita por IP los endpoints públicos de escritura.
func RateLimit(limiter *application.RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := limiter.Allow(c.IP())
		if !ok {
			mensaje := "Demasiadas solicitudes, intente más tarde"
			if err != nil {
				mensaje = err.Error()
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": mensaje,
			})
		}
		return c.Next()
	}
}
