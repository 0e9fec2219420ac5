// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/logging"
)

// Collection endpoints answer with flat objects keyed by collection name;
// status endpoints answer with {success, message, ...}.

type StatusResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// SuccessResponse writes {success:true, message} merged with extra fields.
func SuccessResponse(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func MessageResponse(c *gin.Context, status int, key string, args ...interface{}) {
	SuccessResponse(c, status, i18n.T(GetLangFromContext(c), key, args...), nil)
}

// CollectionResponse writes {key: items}.
func CollectionResponse(c *gin.Context, key string, items interface{}) {
	c.JSON(http.StatusOK, gin.H{key: items})
}

// PaginatedResponse writes {key: items, pagination: {...}} and mirrors the
// counts into response headers.
func PaginatedResponse(c *gin.Context, key string, items interface{}, result PaginationResult) {
	SetPaginationHeaders(c, result)
	c.JSON(http.StatusOK, gin.H{
		key: items,
		"pagination": PaginationMeta{
			Page:       result.Page,
			PageSize:   result.PageSize,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string, fieldErrors map[string]string) {
	c.JSON(statusCode, StatusResponse{
		Success: false,
		Message: message,
		Errors:  fieldErrors,
	})
}

func BadRequestResponse(c *gin.Context, message string, fieldErrors map[string]string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyValidationInvalid, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, message, fieldErrors)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyAuthRequired)
	}
	ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, message, nil)
}

// NotFoundResponse translates key, e.g. i18n.KeyProductNotFound.
func NotFoundResponse(c *gin.Context, key string) {
	ErrorResponse(c, http.StatusNotFound, i18n.T(GetLangFromContext(c), key), nil)
}

// InternalErrorResponse logs err with the request context and answers with a
// generic message.
func InternalErrorResponse(c *gin.Context, err error) {
	logging.FromContext(c.Request.Context()).
		WithError(err).
		WithField("path", c.FullPath()).
		Error("request failed")

	ErrorResponse(c, http.StatusInternalServerError, i18n.T(GetLangFromContext(c), i18n.KeyInternalError), nil)
}

func ValidationErrorResponse(c *gin.Context, fieldErrors map[string]string) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusBadRequest, i18n.T(lang, i18n.KeyValidationInvalid, "input"), fieldErrors)
}

// BindError answers a request body that failed to parse.
func BindError(c *gin.Context, err error) {
	logging.FromContext(c.Request.Context()).WithError(err).Debug("request body rejected")
	BadRequestResponse(c, i18n.T(GetLangFromContext(c), i18n.KeyValidationInvalid, "input"), nil)
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return i18n.Default()
}

// GetUserIDFromContext returns the user id set by OptionalAuth.
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(uint); ok && id != 0 {
			return id, true
		}
	}
	return 0, false
}
