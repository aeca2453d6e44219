package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/application"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
)

type HabitacionHandler struct {
	service *application.HabitacionService
}

// NewHabitacionHandler crea una nueva instancia del handler de habitaciones
func NewHabitacionHandler(service *application.HabitacionService) *HabitacionHandler {
	return &HabitacionHandler{service: service}
}

// RoomRequest representa alta y edición de habitaciones
type RoomRequest struct {
	Nombre             string `json:"nombre" validate:"required"`
	Numero             string `json:"numero" validate:"required"`
	DescripcionGeneral string `json:"descripcionGeneral,omitempty"`
	TipoHabitacionID   int    `json:"tipoHabitacionId" validate:"required,gt=0"`
}

// RoomTypeRequest representa alta y edición de tipos de habitación
type RoomTypeRequest struct {
	Titulo      string  `json:"titulo" validate:"required"`
	Descripcion string  `json:"descripcion,omitempty"`
	Capacidad   int     `json:"capacidad" validate:"required,gt=0"`
	Precio      float64 `json:"precio" validate:"required,gt=0"`
}

// SetDisponibleRequest prende o apaga el bloqueo operativo
type SetDisponibleRequest struct {
	Disponible *bool `json:"disponible" validate:"required"`
}

// GetRooms devuelve todas las habitaciones con su tipo
func (h *HabitacionHandler) GetRooms(c *fiber.Ctx) error {
	rooms, err := h.service.GetAllRooms(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": rooms,
	})
}

// GetRoomByID devuelve una habitación por su ID
func (h *HabitacionHandler) GetRoomByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	room, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": room,
	})
}

// GetAvailableRooms devuelve las habitaciones abiertas y libres para un rango de fechas
func (h *HabitacionHandler) GetAvailableRooms(c *fiber.Ctx) error {
	entrada := c.Query("fechaEntrada")
	salida := c.Query("fechaSalida")
	if entrada == "" || salida == "" {
		return badRequest(c, "fechaEntrada y fechaSalida son requeridos")
	}

	inicio, err := parseFecha(entrada, "fechaEntrada")
	if err != nil {
		return respondError(c, err)
	}
	fin, err := parseFecha(salida, "fechaSalida")
	if err != nil {
		return respondError(c, err)
	}

	rooms, err := h.service.GetAvailableRooms(c.Context(), domain.RangoFechas{Inicio: inicio, Fin: fin})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": rooms,
	})
}

// parseRangoQuery lee los query params desde/hasta con defaults de 90 días
func parseRangoQuery(c *fiber.Ctx) (time.Time, time.Time, error) {
	desde := domain.NormalizarFecha(time.Now().UTC())
	hasta := desde.AddDate(0, 0, 90)

	var err error
	if v := c.Query("desde"); v != "" {
		if desde, err = parseFecha(v, "desde"); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if v := c.Query("hasta"); v != "" {
		if hasta, err = parseFecha(v, "hasta"); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return desde, hasta, nil
}

// GetFechasBloqueadas devuelve las fechas sin ninguna habitación libre
func (h *HabitacionHandler) GetFechasBloqueadas(c *fiber.Ctx) error {
	desde, hasta, err := parseRangoQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	fechas, err := h.service.GetFechasBloqueadas(c.Context(), desde, hasta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fechas)
}

// GetDisponibilidadFechas devuelve la disponibilidad por fecha
func (h *HabitacionHandler) GetDisponibilidadFechas(c *fiber.Ctx) error {
	desde, hasta, err := parseRangoQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	disponibilidad, err := h.service.GetDisponibilidadFechas(c.Context(), desde, hasta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": disponibilidad,
	})
}

// GetRoomTypes devuelve todos los tipos de habitación
func (h *HabitacionHandler) GetRoomTypes(c *fiber.Ctx) error {
	types, err := h.service.GetRoomTypes(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": types,
	})
}

// GetEstadoHabitaciones devuelve el tablero de estados para el panel de staff.
// Acepta ?fecha=YYYY-MM-DD, por defecto hoy.
func (h *HabitacionHandler) GetEstadoHabitaciones(c *fiber.Ctx) error {
	fecha := domain.NormalizarFecha(time.Now().UTC())
	if v := c.Query("fecha"); v != "" {
		var err error
		if fecha, err = parseFecha(v, "fecha"); err != nil {
			return respondError(c, err)
		}
	}

	estados, err := h.service.EstadoHabitaciones(c.Context(), fecha)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": estados,
	})
}

// GetEstadoHabitacion devuelve el estado derivado de una habitación
func (h *HabitacionHandler) GetEstadoHabitacion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	fecha := domain.NormalizarFecha(time.Now().UTC())
	if v := c.Query("fecha"); v != "" {
		if fecha, err = parseFecha(v, "fecha"); err != nil {
			return respondError(c, err)
		}
	}

	estado, err := h.service.EstadoHabitacion(c.Context(), id, fecha)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": estado,
	})
}

// CreateRoom crea una habitación nueva, abierta y sin bloqueo
func (h *HabitacionHandler) CreateRoom(c *fiber.Ctx) error {
	var req RoomRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	room := &domain.Habitacion{
		Nombre:             req.Nombre,
		Numero:             req.Numero,
		DescripcionGeneral: req.DescripcionGeneral,
		TipoHabitacion:     domain.TipoHabitacion{ID: req.TipoHabitacionID},
	}
	if err := h.service.CreateRoom(c.Context(), room); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Habitación creada exitosamente",
		"data":    room,
	})
}

// UpdateRoom actualiza nombre, número, descripción y tipo
func (h *HabitacionHandler) UpdateRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req RoomRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	room := &domain.Habitacion{
		ID:                 id,
		Nombre:             req.Nombre,
		Numero:             req.Numero,
		DescripcionGeneral: req.DescripcionGeneral,
		TipoHabitacion:     domain.TipoHabitacion{ID: req.TipoHabitacionID},
	}
	if err := h.service.UpdateRoom(c.Context(), room); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Habitación actualizada exitosamente",
	})
}

// SetDisponible abre o cierra operativamente la habitación
func (h *HabitacionHandler) SetDisponible(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req SetDisponibleRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.service.SetDisponible(c.Context(), id, *req.Disponible); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Disponibilidad actualizada exitosamente",
	})
}

// DeleteRoom marca la habitación como eliminada. No hay vuelta atrás.
func (h *HabitacionHandler) DeleteRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteRoom(c.Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Habitación eliminada exitosamente",
	})
}

// CreateRoomType crea un tipo de habitación
func (h *HabitacionHandler) CreateRoomType(c *fiber.Ctx) error {
	var req RoomTypeRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	t := &domain.TipoHabitacion{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Capacidad:   req.Capacidad,
		Precio:      req.Precio,
	}
	if err := h.service.CreateRoomType(c.Context(), t); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Tipo de habitación creado exitosamente",
		"data":    t,
	})
}

// UpdateRoomType actualiza un tipo de habitación
func (h *HabitacionHandler) UpdateRoomType(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req RoomTypeRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	t := &domain.TipoHabitacion{
		ID:          id,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Capacidad:   req.Capacidad,
		Precio:      req.Precio,
	}
	if err := h.service.UpdateRoomType(c.Context(), t); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Tipo de habitación actualizado exitosamente",
	})
}
