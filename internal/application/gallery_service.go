package application

import (
	"context"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
)

type GalleryService struct {
	repo domain.GalleryRepository
}

func NewGalleryService(repo domain.GalleryRepository) *GalleryService {
	return &GalleryService{repo: repo}
}

func (s *GalleryService) GetAllImages(ctx context.Context) ([]domain.GalleryImage, error) {
	return s.repo.GetAll(ctx)
}

func (s *GalleryService) GetImagesByRoomType(ctx context.Context, roomTypeID int) ([]domain.GalleryImage, error) {
	return s.repo.GetByRoomType(ctx, roomTypeID)
}

func (s *GalleryService) AddImage(ctx context.Context, roomTypeID int, url, altText string, sortOrder int) (*domain.GalleryImage, error) {
	img := &domain.GalleryImage{
		RoomTypeID: roomTypeID,
		URL:        url,
		AltText:    altText,
		SortOrder:  sortOrder,
		IsActive:   true,
	}
	err := s.repo.Create(ctx, img)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *GalleryService) DeleteImage(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *GalleryService) UpdateOrder(ctx context.Context, id, order int) error {
	return s.repo.UpdateOrder(ctx, id, order)
}
