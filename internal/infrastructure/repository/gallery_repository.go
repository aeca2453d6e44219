package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
)

type galleryRepository struct {
	db *sql.DB
}

func NewGalleryRepository(db *sql.DB) domain.GalleryRepository {
	return &galleryRepository{db: db}
}

const galleryColumns = `image_id, room_type_id, url, alt_text, sort_order, is_active, created_at`

func (r *galleryRepository) queryImages(ctx context.Context, query string, args ...any) ([]domain.GalleryImage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error al consultar galería: %w", err)
	}
	defer rows.Close()

	var images []domain.GalleryImage
	for rows.Next() {
		var img domain.GalleryImage
		if err := rows.Scan(&img.ID, &img.RoomTypeID, &img.URL, &img.AltText, &img.SortOrder, &img.IsActive, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("error al escanear imagen: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *galleryRepository) GetAll(ctx context.Context) ([]domain.GalleryImage, error) {
	return r.queryImages(ctx,
		`SELECT `+galleryColumns+` FROM room_image WHERE is_active = true ORDER BY sort_order, image_id`)
}

func (r *galleryRepository) GetByRoomType(ctx context.Context, roomTypeID int) ([]domain.GalleryImage, error) {
	return r.queryImages(ctx,
		`SELECT `+galleryColumns+` FROM room_image WHERE room_type_id = $1 AND is_active = true ORDER BY sort_order, image_id`,
		roomTypeID)
}

func (r *galleryRepository) Create(ctx context.Context, image *domain.GalleryImage) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO room_image (room_type_id, url, alt_text, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING image_id, created_at`,
		image.RoomTypeID, image.URL, image.AltText, image.SortOrder, image.IsActive,
	).Scan(&image.ID, &image.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al crear imagen: %w", err)
	}
	return nil
}

func (r *galleryRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE room_image SET is_active = false WHERE image_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error al borrar imagen: %w", err)
	}
	return requireRow(result, fmt.Sprintf("imagen %d no encontrada", id))
}

func (r *galleryRepository) UpdateOrder(ctx context.Context, id int, order int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE room_image SET sort_order = $1 WHERE image_id = $2`, order, id)
	if err != nil {
		return fmt.Errorf("error al actualizar orden: %w", err)
	}
	return requireRow(result, fmt.Sprintf("imagen %d no encontrada", id))
}
