// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/ecommerce-api/internal/database"
	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/models"
)

const defaultPaymentMethod = "card"

type OrderService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type OrderLineRequest struct {
	ProductID uint             `json:"productId" validate:"required"`
	Quantity  *int             `json:"quantity" validate:"omitempty,min=1"`
	Price     *decimal.Decimal `json:"price" validate:"omitempty,gte=0,lte=99999999.99"`
}

type CreateOrderRequest struct {
	UserID        uint               `json:"userId" validate:"required"`
	ShippingID    uint               `json:"shippingId" validate:"required"`
	PaymentMethod string             `json:"paymentMethod" validate:"max=50"`
	TotalPrice    *decimal.Decimal   `json:"totalPrice" validate:"omitempty,gte=0,lte=99999999.99"`
	Products      []OrderLineRequest `json:"products" validate:"dive"`
}

func NewOrderService(db *gorm.DB, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		notificationService: notificationService,
	}
}

// Create places the order, its lines, the cart cleanup and the notification
// in one transaction. Nothing is kept if any step fails.
func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	if len(req.Products) == 0 {
		return nil, ErrEmptyOrder
	}

	items := make([]models.OrderItem, 0, len(req.Products))
	computed := decimal.Zero
	for _, line := range req.Products {
		item := models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  1,
			Price:     decimal.Zero,
		}
		if line.Quantity != nil {
			item.Quantity = *line.Quantity
		}
		if line.Price != nil {
			item.Price = line.Price.Round(2)
		}
		computed = computed.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, item)
	}

	total := computed
	if req.TotalPrice != nil {
		total = *req.TotalPrice
	}
	if total.Round(2).GreaterThan(models.MaxAmount) {
		return nil, FieldErrors{"totalPrice": "totalPrice must be less than or equal to " + models.MaxAmount.String()}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	order := &models.Order{
		UserID:        req.UserID,
		ShippingID:    req.ShippingID,
		PaymentMethod: paymentMethod,
		TotalPrice:    total.Round(2),
		Status:        models.OrderStatusPending,
		Items:         items,
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureUser(tx, req.UserID); err != nil {
			return err
		}

		var shipping models.Shipping
		if err := tx.Where("id = ? AND user_id = ?", req.ShippingID, req.UserID).First(&shipping).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShippingNotFound
			}
			return fmt.Errorf("failed to load shipping address: %w", err)
		}

		productIDs := make([]uint, 0, len(items))
		for _, item := range items {
			productIDs = append(productIDs, item.ProductID)
		}

		var found int64
		if err := tx.Model(&models.Product{}).Where("id IN ?", productIDs).Count(&found).Error; err != nil {
			return fmt.Errorf("failed to check products: %w", err)
		}
		if found != int64(len(uniqueIDs(productIDs))) {
			return ErrProductNotFound
		}

		// Creates the order and, through the association, every item.
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := tx.Where("user_id = ? AND product_id IN ?", req.UserID, productIDs).Delete(&models.Cart{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		_, err := s.notificationService.Notify(ctx, tx, Notice{
			UserID:     req.UserID,
			Type:       models.NotificationTypeOrder,
			TitleKey:   i18n.KeyNotifyOrderTitle,
			MessageKey: i18n.KeyNotifyOrderMessage,
			Args:       []interface{}{order.ID, order.TotalPrice.StringFixed(2)},
			Data: map[string]interface{}{
				"order_id": order.ID,
				"total":    order.TotalPrice.InexactFloat64(),
				"status":   string(order.Status),
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListByUser returns the user's orders newest first, each with its items.
func (s *OrderService) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
