// internal/handlers/common.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/services"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

// actingUserID returns the authenticated user, falling back to the userId
// query parameter the mobile client sends.
func actingUserID(c *gin.Context) (uint, bool) {
	if id, ok := utils.GetUserIDFromContext(c); ok {
		return id, true
	}
	return queryUint(c, "userId")
}

// bindActingUser replaces a user id taken from the request body with the
// authenticated user, when there is one.
func bindActingUser(c *gin.Context, userID *uint) {
	if id, ok := utils.GetUserIDFromContext(c); ok {
		*userID = id
	}
}

func queryUint(c *gin.Context, key string) (uint, bool) {
	return parseID(c.Query(key))
}

func paramUint(c *gin.Context, key string) (uint, bool) {
	return parseID(c.Param(key))
}

func parseID(raw string) (uint, bool) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func invalidParam(c *gin.Context, name string) {
	lang := utils.GetLangFromContext(c)
	utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, name), nil)
}

func respondServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		translated := make(map[string]string, len(fieldErrs))
		for field, msg := range fieldErrs {
			translated[field] = i18n.T(lang, msg)
		}
		utils.ValidationErrorResponse(c, translated)
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, i18n.KeyUserNotFound)
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
	case errors.Is(err, services.ErrShippingNotFound):
		utils.NotFoundResponse(c, i18n.KeyShippingNotFound)
	case errors.Is(err, services.ErrFavoriteNotFound):
		utils.NotFoundResponse(c, i18n.KeyFavoriteNotFound)
	case errors.Is(err, services.ErrCartNotFound):
		utils.NotFoundResponse(c, i18n.KeyCartNotFound)
	case errors.Is(err, services.ErrHistoryNotFound):
		utils.NotFoundResponse(c, i18n.KeyHistoryNotFound)
	case errors.Is(err, services.ErrNotificationNotFound):
		utils.NotFoundResponse(c, i18n.KeyNotificationNotFound)
	case errors.Is(err, services.ErrPhotoNotFound):
		utils.NotFoundResponse(c, i18n.KeyUserPhotoNotFound)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrInvalidOTP):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOTPInvalid), nil)
	case errors.Is(err, services.ErrEmptyOrder):
		utils.ValidationErrorResponse(c, map[string]string{"products": i18n.T(lang, i18n.KeyOrderEmpty)})
	default:
		utils.InternalErrorResponse(c, err)
	}
}

// respondUploadError reports image problems against the form field that
// carried the file.
func respondUploadError(c *gin.Context, field string, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrInvalidImage):
		utils.ValidationErrorResponse(c, map[string]string{field: i18n.T(lang, i18n.KeyUploadInvalidImage)})
	case errors.Is(err, services.ErrFileTooLarge):
		utils.ValidationErrorResponse(c, map[string]string{field: i18n.T(lang, i18n.KeyUploadTooLarge)})
	default:
		respondServiceError(c, err)
	}
}

func missingUpload(c *gin.Context, field string) {
	lang := utils.GetLangFromContext(c)
	utils.ValidationErrorResponse(c, map[string]string{field: i18n.T(lang, i18n.KeyUploadRequired)})
}
