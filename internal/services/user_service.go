// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"github.com/javajoker/ecommerce-api/internal/database"
	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/logging"
	"github.com/javajoker/ecommerce-api/internal/models"
)

type UserService struct {
	db             *gorm.DB
	storageService *StorageService
}

type UpdateProfileRequest struct {
	ID       uint   `form:"id" validate:"required"`
	Username string `form:"username" validate:"required,username"`
	Email    string `form:"email" validate:"required,email,max=254"`
}

type UpdatePasswordRequest struct {
	ID       uint   `form:"id" validate:"required"`
	Password string `form:"password" validate:"required,min=6,max=128"`
}

func NewUserService(db *gorm.DB, storageService *StorageService) *UserService {
	return &UserService{
		db:             db,
		storageService: storageService,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return findUser(s.db.WithContext(ctx), userID)
}

// DeleteAccount removes the user with their profile, favorites, cart,
// history and notifications, then their stored photo. Reviews, addresses
// and orders are kept.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	var photoKey string

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		user, err := findUser(tx, userID)
		if err != nil {
			return err
		}

		var profile models.UserProfile
		if err := tx.Where("user_id = ?", user.ID).Limit(1).Find(&profile).Error; err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		photoKey = profile.PhotoKey

		owned := []interface{}{
			&models.UserProfile{},
			&models.Favorite{},
			&models.Cart{},
			&models.History{},
			&models.Notification{},
		}
		for _, model := range owned {
			if err := tx.Where("user_id = ?", user.ID).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete %T rows: %w", model, err)
			}
		}
		if err := tx.Delete(user).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.storageService.DeleteFile(ctx, photoKey); err != nil {
		logging.FromContext(ctx).WithError(err).Warn("Failed to delete user photo")
	}
	return nil
}

// UploadPhoto stores the new photo, creating the profile if needed, and
// deletes the previous one once the profile points at the new file.
func (s *UserService) UploadPhoto(ctx context.Context, userID uint, file multipart.File, header *multipart.FileHeader) (*models.UserProfile, error) {
	if _, err := findUser(s.db.WithContext(ctx), userID); err != nil {
		return nil, err
	}

	upload, err := s.storageService.UploadFile(ctx, file, header, s.storageService.GetDefaultUploadOptions("users"))
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	var previousKey string

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where(models.UserProfile{UserID: userID}).FirstOrCreate(&profile).Error; err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		previousKey = profile.PhotoKey

		profile.PhotoKey = upload.Key
		profile.PhotoURL = upload.URL
		if err := tx.Save(&profile).Error; err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		return nil
	})
	if err != nil {
		if delErr := s.storageService.DeleteFile(ctx, upload.Key); delErr != nil {
			logging.FromContext(ctx).WithError(delErr).Warn("Failed to remove orphaned user photo")
		}
		return nil, err
	}

	if previousKey != "" && previousKey != upload.Key {
		if err := s.storageService.DeleteFile(ctx, previousKey); err != nil {
			logging.FromContext(ctx).WithError(err).Warn("Failed to delete previous user photo")
		}
	}

	return &profile, nil
}

// OpenPhoto streams the stored profile photo.
func (s *UserService) OpenPhoto(ctx context.Context, userID uint) (io.ReadCloser, string, error) {
	db := s.db.WithContext(ctx)

	if _, err := findUser(db, userID); err != nil {
		return nil, "", err
	}

	var profile models.UserProfile
	if err := db.Where("user_id = ?", userID).Limit(1).Find(&profile).Error; err != nil {
		return nil, "", fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.PhotoKey == "" {
		return nil, "", ErrPhotoNotFound
	}

	body, contentType, err := s.storageService.Open(ctx, profile.PhotoKey)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return nil, "", ErrPhotoNotFound
		}
		return nil, "", err
	}
	return body, contentType, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, req *UpdatePasswordRequest) error {
	db := s.db.WithContext(ctx)

	user, err := findUser(db, req.ID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.Password); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := db.Model(user).Update("password_hash", user.PasswordHash).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateProfile changes username and email, refusing values that belong to
// another user.
func (s *UserService) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*models.User, error) {
	db := s.db.WithContext(ctx)

	user, err := findUser(db, req.ID)
	if err != nil {
		return nil, err
	}

	if err := checkIdentityAvailable(db, user.ID, req.Username, req.Email); err != nil {
		return nil, err
	}

	err = db.Model(user).Updates(map[string]interface{}{
		"username": req.Username,
		"email":    strings.TrimSpace(req.Email),
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldErrors{"email": i18n.KeyAuthEmailTaken}
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	user.Username = req.Username
	user.Email = strings.TrimSpace(req.Email)
	return user, nil
}
