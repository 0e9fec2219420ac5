// internal/services/errors.go
package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrShippingNotFound     = errors.New("shipping address not found")
	ErrFavoriteNotFound     = errors.New("favorite not found")
	ErrCartNotFound         = errors.New("cart item not found")
	ErrHistoryNotFound      = errors.New("history entry not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrPhotoNotFound        = errors.New("user photo not found")
	ErrFileNotFound         = errors.New("stored file not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrEmptyOrder         = errors.New("order has no products")
	ErrInvalidImage       = errors.New("invalid image file")
	ErrFileTooLarge       = errors.New("file too large")
)

// FieldErrors reports request fields that failed a rule checked against the
// database, such as a taken email. Values are i18n keys or plain messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}
