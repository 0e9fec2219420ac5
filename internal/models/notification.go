// internal/models/notification.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	UserID    uint              `json:"-" gorm:"not null;index:idx_notifications_user_read"`
	Title     string            `json:"title" gorm:"size:255;not null"`
	Message   string            `json:"message" gorm:"type:text;not null"`
	Type      NotificationType  `json:"type" gorm:"type:varchar(20);default:'general'"`
	Data      datatypes.JSONMap `json:"data"`
	IsRead    bool              `json:"is_read" gorm:"default:false;index:idx_notifications_user_read"`
	CreatedAt time.Time         `json:"created_at" gorm:"index"`
}

// Otp holds the single active code for an email; a new request replaces it.
type Otp struct {
	BaseModel
	Email string `json:"email" gorm:"uniqueIndex;size:254;not null"`
	Code  string `json:"otp" gorm:"column:otp;size:6;not null"`
}
