// internal/services/review_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/ecommerce-api/internal/database"
	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/models"
)

const defaultRating = 5

type ReviewService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type AddReviewRequest struct {
	UserID    uint   `json:"userId" validate:"required"`
	ProductID uint   `json:"productId" validate:"required"`
	Rating    *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Review    string `json:"review" validate:"required,max=5000"`
}

func NewReviewService(db *gorm.DB, notificationService *NotificationService) *ReviewService {
	return &ReviewService{
		db:                  db,
		notificationService: notificationService,
	}
}

func (s *ReviewService) Add(ctx context.Context, req *AddReviewRequest) (*models.Review, error) {
	rating := defaultRating
	if req.Rating != nil {
		rating = *req.Rating
	}

	review := &models.Review{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Rating:    rating,
		Review:    req.Review,
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureUser(tx, req.UserID); err != nil {
			return err
		}
		product, err := findProduct(tx, req.ProductID)
		if err != nil {
			return err
		}

		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		_, err = s.notificationService.Notify(ctx, tx, Notice{
			UserID:     req.UserID,
			Type:       models.NotificationTypeGeneral,
			TitleKey:   i18n.KeyNotifyReviewTitle,
			MessageKey: i18n.KeyNotifyReviewMessage,
			Args:       []interface{}{product.Name},
			Data:       map[string]interface{}{"product_id": product.ID},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// ListByProduct returns reviews newest first.
func (s *ReviewService) ListByProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
