// internal/services/favorite_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/ecommerce-api/internal/database"
	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/models"
)

type FavoriteService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type FavoriteRequest struct {
	UserID    uint `json:"userId" validate:"required"`
	ProductID uint `json:"productId" validate:"required"`
}

func NewFavoriteService(db *gorm.DB, notificationService *NotificationService) *FavoriteService {
	return &FavoriteService{
		db:                  db,
		notificationService: notificationService,
	}
}

// Add is idempotent. It reports whether a new favorite was created; only
// then is the user notified.
func (s *FavoriteService) Add(ctx context.Context, userID, productID uint) (bool, error) {
	var created bool

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureUser(tx, userID); err != nil {
			return err
		}
		product, err := findProduct(tx, productID)
		if err != nil {
			return err
		}

		favorite := &models.Favorite{UserID: userID, ProductID: productID}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).Create(favorite)
		if result.Error != nil {
			return fmt.Errorf("failed to add favorite: %w", result.Error)
		}

		created = result.RowsAffected == 1
		if !created {
			return nil
		}

		_, err = s.notificationService.Notify(ctx, tx, Notice{
			UserID:     userID,
			Type:       models.NotificationTypeGeneral,
			TitleKey:   i18n.KeyNotifyFavoriteTitle,
			MessageKey: i18n.KeyNotifyFavoriteMessage,
			Args:       []interface{}{product.Name},
			Data:       map[string]interface{}{"product_id": product.ID},
		})
		return err
	})

	return created, err
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// List returns the user's favorite products.
func (s *FavoriteService) List(ctx context.Context, userID uint) ([]models.ProductView, error) {
	db := s.db.WithContext(ctx)

	var products []models.Product
	err := db.Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Order("products.id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return productViews(db, userID, products)
}
