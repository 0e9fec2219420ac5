// internal/models/order.go
package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaxAmount is the largest value a decimal(10,2) price or total column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

type Shipping struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	UserID     uint   `json:"userId" gorm:"not null;index"`
	Name       string `json:"name" gorm:"size:255;not null"`
	Address    string `json:"address" gorm:"type:text;not null"`
	City       string `json:"city" gorm:"size:255"`
	Country    string `json:"country" gorm:"size:255"`
	PostalCode string `json:"postal_code" gorm:"size:20"`
	Phone      string `json:"phone" gorm:"size:20"`
}

type Order struct {
	BaseModel
	UserID        uint            `json:"userId" gorm:"not null;index"`
	ShippingID    uint            `json:"shippingId" gorm:"not null"`
	PaymentMethod string          `json:"payment_method" gorm:"size:50;not null"`
	TotalPrice    decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// BeforeSave defaults the status to pending and rejects unknown statuses.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	if !o.Status.Valid() {
		return fmt.Errorf("invalid order status %q", o.Status)
	}
	return nil
}

type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"-" gorm:"not null;index"`
	ProductID uint            `json:"productId" gorm:"not null"`
	Quantity  int             `json:"quantity" gorm:"not null;default:1"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
}
