// internal/services/poster_service.go
package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/javajoker/ecommerce-api/internal/logging"
	"github.com/javajoker/ecommerce-api/internal/models"
)

type PosterService struct {
	db      *gorm.DB
	storage *StorageService
}

type CreatePosterRequest struct {
	Title string `form:"title" json:"title" validate:"required,max=255"`
}

func NewPosterService(db *gorm.DB, storage *StorageService) *PosterService {
	return &PosterService{
		db:      db,
		storage: storage,
	}
}

// List returns posters, most recently added first.
func (s *PosterService) List(ctx context.Context) ([]models.Poster, error) {
	posters := make([]models.Poster, 0)
	if err := s.db.WithContext(ctx).Order("date_added DESC, id DESC").Find(&posters).Error; err != nil {
		return nil, fmt.Errorf("failed to list posters: %w", err)
	}
	return posters, nil
}

func (s *PosterService) Create(ctx context.Context, req *CreatePosterRequest, file multipart.File, header *multipart.FileHeader) (*models.Poster, error) {
	upload, err := s.storage.UploadFile(ctx, file, header, s.storage.GetDefaultUploadOptions("posters"))
	if err != nil {
		return nil, err
	}

	poster := &models.Poster{
		Title:    req.Title,
		Image:    upload.URL,
		ImageKey: upload.Key,
	}

	if err := s.db.WithContext(ctx).Create(poster).Error; err != nil {
		if delErr := s.storage.DeleteFile(ctx, upload.Key); delErr != nil {
			logging.FromContext(ctx).WithError(delErr).Warn("Failed to remove orphaned poster image")
		}
		return nil, fmt.Errorf("failed to create poster: %w", err)
	}

	return poster, nil
}
