package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/application"
	services "github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/service"
)

type GalleryHandler struct {
	service *application.GalleryService
	s3      *services.S3Service
}

// NewGalleryHandler crea una nueva instancia del handler de galería.
// s3 puede ser nil si el bucket no está configurado; en ese caso solo
// funciona el alta por URL.
func NewGalleryHandler(service *application.GalleryService, s3 *services.S3Service) *GalleryHandler {
	return &GalleryHandler{service: service, s3: s3}
}

// AddImageRequest agrega una imagen ya subida, por URL
type AddImageRequest struct {
	RoomTypeID int    `json:"roomTypeId" validate:"required,gt=0"`
	URL        string `json:"url" validate:"required,url"`
	AltText    string `json:"alt_text,omitempty"`
	SortOrder  int    `json:"sort_order,omitempty"`
}

// UpdateOrderRequest cambia la posición de una imagen
type UpdateOrderRequest struct {
	SortOrder *int `json:"sort_order" validate:"required"`
}

// GetImages devuelve todas las imágenes activas de la galería.
// Acepta ?roomTypeId= para filtrar por tipo de habitación.
func (h *GalleryHandler) GetImages(c *fiber.Ctx) error {
	if v := c.Query("roomTypeId"); v != "" {
		roomTypeID, err := strconv.Atoi(v)
		if err != nil || roomTypeID <= 0 {
			return badRequest(c, "roomTypeId inválido")
		}
		images, err := h.service.GetImagesByRoomType(c.Context(), roomTypeID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": images})
	}

	images, err := h.service.GetAllImages(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": images})
}

// AddImage agrega una imagen por URL
func (h *GalleryHandler) AddImage(c *fiber.Ctx) error {
	var req AddImageRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	img, err := h.service.AddImage(c.Context(), req.RoomTypeID, req.URL, req.AltText, req.SortOrder)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Imagen agregada exitosamente",
		"data":    img,
	})
}

// UploadImage sube el archivo al bucket y registra la imagen en la galería
func (h *GalleryHandler) UploadImage(c *fiber.Ctx) error {
	if h.s3 == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "La subida de archivos no está configurada",
		})
	}

	roomTypeID, err := strconv.Atoi(c.FormValue("roomTypeId"))
	if err != nil || roomTypeID <= 0 {
		return badRequest(c, "roomTypeId inválido")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "El archivo es requerido")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	url, err := h.s3.UploadFile(c.Context(), file, fileHeader)
	if err != nil {
		return respondError(c, err)
	}

	sortOrder, _ := strconv.Atoi(c.FormValue("sortOrder"))
	img, err := h.service.AddImage(c.Context(), roomTypeID, url, c.FormValue("altText"), sortOrder)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Imagen subida exitosamente",
		"data":    img,
	})
}

// UpdateOrder cambia la posición de una imagen en la galería
func (h *GalleryHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateOrderRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.service.UpdateOrder(c.Context(), id, *req.SortOrder); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Orden actualizado exitosamente",
	})
}

// DeleteImage desactiva una imagen de la galería
func (h *GalleryHandler) DeleteImage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteImage(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Imagen eliminada exitosamente",
	})
}
