// internal/services/shipping_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/ecommerce-api/internal/database"
	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/models"
)

type ShippingService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type AddShippingRequest struct {
	UserID     uint   `json:"userId" validate:"required"`
	Name       string `json:"name" validate:"required,max=255"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required,max=255"`
	Country    string `json:"country" validate:"required,max=255"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Phone      string `json:"phone" validate:"required,max=20"`
}

func NewShippingService(db *gorm.DB, notificationService *NotificationService) *ShippingService {
	return &ShippingService{
		db:                  db,
		notificationService: notificationService,
	}
}

func (s *ShippingService) Add(ctx context.Context, req *AddShippingRequest) (*models.Shipping, error) {
	shipping := &models.Shipping{
		UserID:     req.UserID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		Phone:      req.Phone,
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureUser(tx, req.UserID); err != nil {
			return err
		}

		if err := tx.Create(shipping).Error; err != nil {
			return fmt.Errorf("failed to create shipping address: %w", err)
		}

		_, err := s.notificationService.Notify(ctx, tx, Notice{
			UserID:     req.UserID,
			Type:       models.NotificationTypeAccount,
			TitleKey:   i18n.KeyNotifyAddressTitle,
			MessageKey: i18n.KeyNotifyAddressMessage,
			Args:       []interface{}{shipping.Name},
			Data:       map[string]interface{}{"address_id": shipping.ID},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return shipping, nil
}
