package domain

import (
	"context"
	"time"
)

// GalleryImage es una foto de habitación publicada en la landing.
type GalleryImage struct {
	ID         int       `json:"id"`
	RoomTypeID int       `json:"roomTypeId"`
	URL        string    `json:"url"`
	AltText    string    `json:"alt_text"`
	SortOrder  int       `json:"sort_order"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type GalleryRepository interface {
	GetAll(ctx context.Context) ([]GalleryImage, error)
	GetByRoomType(ctx context.Context, roomTypeID int) ([]GalleryImage, error)
	Create(ctx context.Context, image *GalleryImage) error
	Delete(ctx context.Context, id int) error
	UpdateOrder(ctx context.Context, id int, order int) error
}
