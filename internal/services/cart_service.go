// internal/services/cart_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/ecommerce-api/internal/database"
	"github.com/javajoker/ecommerce-api/internal/models"
)

type CartService struct {
	db *gorm.DB
}

type CartRequest struct {
	UserID    uint `json:"userId" validate:"required"`
	ProductID uint `json:"productId" validate:"required"`
	Quantity  *int `json:"quantity" validate:"omitempty,min=1"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// Add inserts or updates the (user, product) line. raw is the request body,
// kept alongside the columns as sent.
func (s *CartService) Add(ctx context.Context, req *CartRequest, raw string) (*models.Cart, error) {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart := &models.Cart{
		Cart:      raw,
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  quantity,
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureUser(tx, req.UserID); err != nil {
			return err
		}
		if _, err := findProduct(tx, req.ProductID); err != nil {
			return err
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "cart", "updated_at"}),
		}).Create(cart).Error
		if err != nil {
			return fmt.Errorf("failed to add to cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *CartService) Remove(ctx context.Context, userID, productID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Cart{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove from cart: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCartNotFound
	}
	return nil
}

// List returns the products in the user's cart.
func (s *CartService) List(ctx context.Context, userID uint) ([]models.ProductView, error) {
	db := s.db.WithContext(ctx)

	var products []models.Product
	err := db.Joins("JOIN carts ON carts.product_id = products.id").
		Where("carts.user_id = ?", userID).
		Order("products.id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}

	return productViews(db, userID, products)
}
