// internal/services/history_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/ecommerce-api/internal/database"
	"github.com/javajoker/ecommerce-api/internal/models"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

const HistoryPageSize = 10

type HistoryService struct {
	db  *gorm.DB
	now func() time.Time
}

type HistoryRequest struct {
	UserID    uint `json:"userId" validate:"required"`
	ProductID uint `json:"productId" validate:"required"`
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Add records a view, refreshing viewed_at when the product was seen before.
func (s *HistoryService) Add(ctx context.Context, userID, productID uint) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureUser(tx, userID); err != nil {
			return err
		}
		if _, err := findProduct(tx, productID); err != nil {
			return err
		}

		entry := &models.History{UserID: userID, ProductID: productID, ViewedAt: s.now()}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"viewed_at"}),
		}).Create(entry).Error
		if err != nil {
			return fmt.Errorf("failed to record view: %w", err)
		}
		return nil
	})
}

// Remove deletes one entry, or the user's whole history when productID is
// zero. It returns the number of rows removed.
func (s *HistoryService) Remove(ctx context.Context, userID, productID uint) (int64, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if productID != 0 {
		query = query.Where("product_id = ?", productID)
	}

	result := query.Delete(&models.History{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to remove history: %w", result.Error)
	}
	if productID != 0 && result.RowsAffected == 0 {
		return 0, ErrHistoryNotFound
	}
	return result.RowsAffected, nil
}

// List returns viewed products, most recent first.
func (s *HistoryService) List(ctx context.Context, userID uint, params utils.PaginationParams) ([]models.ProductView, utils.PaginationResult, error) {
	db := s.db.WithContext(ctx)

	base := db.Model(&models.Product{}).
		Joins("JOIN histories ON histories.product_id = products.id").
		Where("histories.user_id = ?", userID).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, utils.PaginationResult{}, fmt.Errorf("failed to count history: %w", err)
	}

	var products []models.Product
	err := utils.ApplyPagination(base.Order("histories.viewed_at DESC, histories.id DESC"), params).
		Find(&products).Error
	if err != nil {
		return nil, utils.PaginationResult{}, fmt.Errorf("failed to list history: %w", err)
	}

	views, err := productViews(db, userID, products)
	if err != nil {
		return nil, utils.PaginationResult{}, err
	}

	return views, utils.CreatePaginationResult(total, params), nil
}
