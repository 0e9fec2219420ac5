// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:254;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`

	// Relationships
	Profile *UserProfile `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserProfile carries the optional profile photo; one row per user.
type UserProfile struct {
	BaseModel
	UserID   uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	PhotoKey string `json:"-" gorm:"size:512"`
	PhotoURL string `json:"photo" gorm:"size:1024"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
