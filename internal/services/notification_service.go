// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/javajoker/ecommerce-api/internal/config"
	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/logging"
	"github.com/javajoker/ecommerce-api/internal/models"
)

const NotificationsPerPage = 20

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type NotificationService struct {
	db       *gorm.DB
	config   *config.Config
	sendMail sendMailFunc
}

// Notice describes an in-app notification. Title and message are i18n keys
// rendered in the default locale when written.
type Notice struct {
	UserID     uint
	Type       models.NotificationType
	TitleKey   string
	MessageKey string
	Args       []interface{}
	Data       map[string]interface{}
}

type NotificationPage struct {
	Notifications []models.Notification
	TotalPages    int
	CurrentPage   int
	TotalCount    int64
	UnreadCount   int64
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:       db,
		config:   config,
		sendMail: smtp.SendMail,
	}
}

// Notify writes a notification using tx so it commits or rolls back with the
// write that triggered it.
func (s *NotificationService) Notify(ctx context.Context, tx *gorm.DB, n Notice) (*models.Notification, error) {
	lang := s.config.I18n.DefaultLocale

	notification := &models.Notification{
		UserID:  n.UserID,
		Title:   i18n.T(lang, n.TitleKey),
		Message: i18n.T(lang, n.MessageKey, n.Args...),
		Type:    n.Type,
		Data:    datatypes.JSONMap(n.Data),
	}

	if err := tx.WithContext(ctx).Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification, nil
}

// List returns one page of the user's notifications, newest first. The page
// is clamped into range.
func (s *NotificationService) List(ctx context.Context, userID uint, page int) (*NotificationPage, error) {
	db := s.db.WithContext(ctx)

	if err := ensureUser(db, userID); err != nil {
		return nil, err
	}

	var counts struct {
		Total  int64
		Unread int64
	}
	err := db.Model(&models.Notification{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN is_read THEN 0 ELSE 1 END), 0) AS unread").
		Where("user_id = ?", userID).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	totalPages := int((counts.Total + NotificationsPerPage - 1) / NotificationsPerPage)
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	notifications := make([]models.Notification, 0)
	err = db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * NotificationsPerPage).
		Limit(NotificationsPerPage).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return &NotificationPage{
		Notifications: notifications,
		TotalPages:    totalPages,
		CurrentPage:   page,
		TotalCount:    counts.Total,
		UnreadCount:   counts.Unread,
	}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead returns how many unread notifications were updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MailEnabled reports whether an SMTP relay is configured.
func (s *NotificationService) MailEnabled() bool {
	return s.config.Email.SMTPHost != ""
}

// SendEmailAsync delivers in the background; failures are only logged.
func (s *NotificationService) SendEmailAsync(ctx context.Context, to, subject, body string) {
	entry := logging.FromContext(ctx).WithField("to", to)
	go func() {
		if err := s.sendEmail(to, subject, body); err != nil {
			entry.WithError(err).Warn("Failed to send email")
			return
		}
		entry.Debug("Email sent")
	}()
}

// SendOTPEmail renders the verification mail in the default locale.
func (s *NotificationService) SendOTPEmail(ctx context.Context, email, code string) error {
	lang := s.config.I18n.DefaultLocale

	body, err := s.renderTemplate(otpEmailTemplate, map[string]interface{}{
		"Message": i18n.T(lang, i18n.KeyOTPMailBody, code),
		"Sender":  s.config.Email.FromName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	s.SendEmailAsync(ctx, email, i18n.T(lang, i18n.KeyOTPMailSubject), body)
	return nil
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if !s.MailEnabled() {
		return errors.New("smtp not configured")
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	from := s.config.Email.FromEmail
	if s.config.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		from, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return s.sendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const otpEmailTemplate = `<!DOCTYPE html>
<html>
<body>
	<p>{{.Message}}</p>
	<p>{{.Sender}}</p>
</body>
</html>`
