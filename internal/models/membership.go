// internal/models/membership.go
package models

import "time"

// Favorite, Cart and History are keyed by (user_id, product_id). The ids are
// plain integers; the services check that both sides exist.

type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_favorites_user_product"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_favorites_user_product"`
	CreatedAt time.Time `json:"created_at"`
}

type Cart struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Cart      string    `json:"cart" gorm:"type:text"` // raw request payload, not reconciled with the columns
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_carts_user_product"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_carts_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type History struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_histories_user_product"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_histories_user_product"`
	ViewedAt  time.Time `json:"viewed_at" gorm:"not null;index"`
}
