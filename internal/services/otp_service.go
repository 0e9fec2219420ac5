// internal/services/otp_service.go
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/ecommerce-api/internal/config"
	"github.com/javajoker/ecommerce-api/internal/database"
	"github.com/javajoker/ecommerce-api/internal/logging"
	"github.com/javajoker/ecommerce-api/internal/models"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

type OtpService struct {
	db                  *gorm.DB
	config              *config.Config
	notificationService *NotificationService
}

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6,numeric"`
}

func NewOtpService(db *gorm.DB, config *config.Config, notificationService *NotificationService) *OtpService {
	return &OtpService{
		db:                  db,
		config:              config,
		notificationService: notificationService,
	}
}

// Generate replaces the email's code with a fresh one that differs from the
// previous code. Emails are matched case-insensitively. When SMTP is
// configured the code is also mailed.
func (s *OtpService) Generate(ctx context.Context, email string) (*models.Otp, error) {
	email = normalizeEmail(email)
	otp := &models.Otp{Email: email}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var previous models.Otp
		if err := tx.Where("email = ?", email).Limit(1).Find(&previous).Error; err != nil {
			return fmt.Errorf("failed to load otp: %w", err)
		}

		code, err := utils.GenerateOTPExcept(previous.Code)
		if err != nil {
			return fmt.Errorf("failed to generate otp: %w", err)
		}
		otp.Code = code

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"otp", "updated_at"}),
		}).Create(otp).Error
		if err != nil {
			return fmt.Errorf("failed to store otp: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notificationService.MailEnabled() {
		if err := s.notificationService.SendOTPEmail(ctx, email, otp.Code); err != nil {
			logging.FromContext(ctx).WithError(err).Warn("Failed to queue otp email")
		}
	}

	return otp, nil
}

// Verify succeeds only for the latest code issued to email.
func (s *OtpService) Verify(ctx context.Context, req *VerifyOtpRequest) error {
	var otp models.Otp
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(req.Email)).First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to load otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(req.Otp)) != 1 {
		return ErrInvalidOTP
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ExposeCode reports whether the code is returned in the API response.
func (s *OtpService) ExposeCode() bool {
	return s.config.OTP.ExposeCode
}
