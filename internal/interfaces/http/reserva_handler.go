package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/application"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
)

type ReservaHandler struct {
	service *application.ReservaService
}

// NewReservaHandler crea una nueva instancia del handler de reservas
func NewReservaHandler(service *application.ReservaService) *ReservaHandler {
	return &ReservaHandler{service: service}
}

// CreateReservaPublicaRequest representa la petición pública para crear una reserva
type CreateReservaPublicaRequest struct {
	HabitacionID int            `json:"habitacionId" validate:"required,gt=0"`
	FechaEntrada string         `json:"fechaEntrada" validate:"required"` // Formato: YYYY-MM-DD
	FechaSalida  string         `json:"fechaSalida" validate:"required"`  // Formato: YYYY-MM-DD
	Notas        string         `json:"notas,omitempty"`
	Cliente      PersonaRequest `json:"cliente" validate:"required"`
}

// CreateReservaStaffRequest representa la petición de staff para crear una
// reserva ya aprobada. Admite referenciar una persona existente por ID o
// mandar los datos de un cliente nuevo.
type CreateReservaStaffRequest struct {
	HabitacionID int             `json:"habitacionId" validate:"required,gt=0"`
	FechaEntrada string          `json:"fechaEntrada" validate:"required"`
	FechaSalida  string          `json:"fechaSalida" validate:"required"`
	Notas        string          `json:"notas,omitempty"`
	PersonID     *int            `json:"personId,omitempty"`
	Cliente      *PersonaRequest `json:"cliente,omitempty"`
}

// VerificarDisponibilidadRequest representa la petición para verificar disponibilidad
type VerificarDisponibilidadRequest struct {
	HabitacionID int    `json:"habitacionId" validate:"required,gt=0"`
	FechaEntrada string `json:"fechaEntrada" validate:"required"`
	FechaSalida  string `json:"fechaSalida" validate:"required"`
}

func (h *ReservaHandler) parseRango(entrada, salida string) (domain.RangoFechas, error) {
	var rango domain.RangoFechas
	inicio, err := parseFecha(entrada, "fechaEntrada")
	if err != nil {
		return rango, err
	}
	fin, err := parseFecha(salida, "fechaSalida")
	if err != nil {
		return rango, err
	}
	rango.Inicio = inicio
	rango.Fin = fin
	return rango, nil
}

// CreateReservaPublica crea una reserva desde el botón de reserva del sitio.
// Entra en pendiente de verificación, sin chequear disponibilidad.
func (h *ReservaHandler) CreateReservaPublica(c *fiber.Ctx) error {
	var req CreateReservaPublicaRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	rango, err := h.parseRango(req.FechaEntrada, req.FechaSalida)
	if err != nil {
		return respondError(c, err)
	}

	reserva, err := h.service.CrearReservaPublica(c.Context(), req.Cliente.toDatos(), req.HabitacionID, rango, req.Notas)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Reserva creada exitosamente",
		"data":    reserva,
	})
}

// CreateReservaLanding crea una reserva desde la landing. A diferencia del
// flujo público directo, acá sí se rechaza con 409 si las fechas chocan.
func (h *ReservaHandler) CreateReservaLanding(c *fiber.Ctx) error {
	var req CreateReservaPublicaRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	rango, err := h.parseRango(req.FechaEntrada, req.FechaSalida)
	if err != nil {
		return respondError(c, err)
	}

	reserva, err := h.service.CrearReservaDesdeLanding(c.Context(), req.Cliente.toDatos(), req.HabitacionID, rango, req.Notas)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Reserva creada exitosamente",
		"data":    reserva,
	})
}

// CreateReservaStaff crea una reserva en nombre de un cliente, ya aprobada.
func (h *ReservaHandler) CreateReservaStaff(c *fiber.Ctx) error {
	var req CreateReservaStaffRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	if req.PersonID == nil && req.Cliente == nil {
		return badRequest(c, "Debe indicar personId o los datos del cliente")
	}

	rango, err := h.parseRango(req.FechaEntrada, req.FechaSalida)
	if err != nil {
		return respondError(c, err)
	}

	var datos *application.DatosPersona
	if req.Cliente != nil {
		d := req.Cliente.toDatos()
		datos = &d
	}

	reserva, err := h.service.CrearReservaStaff(c.Context(), operadorID(c), req.PersonID, datos, req.HabitacionID, rango, req.Notas)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Reserva creada exitosamente",
		"data":    reserva,
	})
}

// GetReservaByID obtiene una reserva por su ID
func (h *ReservaHandler) GetReservaByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	reserva, err := h.service.ObtenerPorID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": reserva,
	})
}

// GetReservasHabitacion obtiene todas las reservas de una habitación
func (h *ReservaHandler) GetReservasHabitacion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	reservas, err := h.service.ListarPorHabitacion(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": reservas,
	})
}

func (h *ReservaHandler) transicion(c *fiber.Ctx, accion func(actorID, reservaID int) (*domain.Reserva, error), mensaje string) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	reserva, err := accion(operadorID(c), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": mensaje,
		"data":    reserva,
	})
}

// ConfirmarIdentidad pasa la reserva de pendiente de verificación a pendiente de pago
func (h *ReservaHandler) ConfirmarIdentidad(c *fiber.Ctx) error {
	return h.transicion(c, func(actorID, reservaID int) (*domain.Reserva, error) {
		return h.service.ConfirmarIdentidad(c.Context(), actorID, reservaID)
	}, "Identidad verificada exitosamente")
}

// AprobarReserva aprueba una reserva pendiente de pago
func (h *ReservaHandler) AprobarReserva(c *fiber.Ctx) error {
	return h.transicion(c, func(actorID, reservaID int) (*domain.Reserva, error) {
		return h.service.Aprobar(c.Context(), actorID, reservaID)
	}, "Reserva aprobada exitosamente")
}

// RechazarReserva rechaza una reserva pendiente
func (h *ReservaHandler) RechazarReserva(c *fiber.Ctx) error {
	return h.transicion(c, func(actorID, reservaID int) (*domain.Reserva, error) {
		return h.service.Rechazar(c.Context(), actorID, reservaID)
	}, "Reserva rechazada exitosamente")
}

// CancelarReserva cancela una reserva pendiente o aprobada
func (h *ReservaHandler) CancelarReserva(c *fiber.Ctx) error {
	return h.transicion(c, func(actorID, reservaID int) (*domain.Reserva, error) {
		return h.service.Cancelar(c.Context(), actorID, reservaID)
	}, "Reserva cancelada exitosamente")
}

// VerificarDisponibilidad verifica si una habitación está disponible
func (h *ReservaHandler) VerificarDisponibilidad(c *fiber.Ctx) error {
	var req VerificarDisponibilidadRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	rango, err := h.parseRango(req.FechaEntrada, req.FechaSalida)
	if err != nil {
		return respondError(c, err)
	}

	disponible, err := h.service.VerificarDisponibilidad(c.Context(), req.HabitacionID, rango)
	if err != nil {
		return respondError(c, err)
	}

	// La landing usa las noches para calcular el precio del lado del cliente.
	return c.JSON(fiber.Map{
		"disponible": disponible,
		"noches":     rango.Noches(),
	})
}

// GetOcupacionHoy indica si la habitación tiene una reserva aprobada que cubre hoy
func (h *ReservaHandler) GetOcupacionHoy(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	ocupada, err := h.service.OcupadaHoy(c.Context(), id, time.Now().UTC())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"ocupada": ocupada,
	})
}
