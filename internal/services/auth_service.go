// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/javajoker/ecommerce-api/internal/config"
	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/models"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type AuthResponse struct {
	User        *models.User
	AccessToken string
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

// Register creates the user. A taken email or username is reported as a
// field error.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	db := s.db.WithContext(ctx)

	if err := checkIdentityAvailable(db, 0, req.Username, req.Email); err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    strings.TrimSpace(req.Email),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldErrors{"email": i18n.KeyAuthEmailTaken}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(req.Email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Username, user.Email, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{User: &user, AccessToken: token}, nil
}

// checkIdentityAvailable reports a FieldErrors when username or email belong
// to a user other than exceptID.
func checkIdentityAvailable(db *gorm.DB, exceptID uint, username, email string) error {
	var taken []models.User
	err := db.Select("id", "username", "email").
		Where("(username = ? OR LOWER(email) = LOWER(?)) AND id <> ?", username, strings.TrimSpace(email), exceptID).
		Find(&taken).Error
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}

	fieldErrs := FieldErrors{}
	for _, u := range taken {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			fieldErrs["email"] = i18n.KeyAuthEmailTaken
		}
		if u.Username == username {
			fieldErrs["username"] = i18n.KeyAuthUsernameTaken
		}
	}

	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}
