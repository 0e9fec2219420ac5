// internal/handlers/notification.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/services"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GET /notifications?userId=&page=
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := actingUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	result, err := h.notificationService.List(c.Request.Context(), userID, page)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyNotificationForbidden))
			return
		}
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyNotificationList), gin.H{
		"notifications": result.Notifications,
		"total_pages":   result.TotalPages,
		"current_page":  result.CurrentPage,
		"total_count":   result.TotalCount,
		"unread_count":  result.UnreadCount,
	})
}

// PUT /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	notificationID, ok := paramUint(c, "id")
	if !ok {
		utils.NotFoundResponse(c, i18n.KeyNotificationNotFound)
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.KeyNotificationRead)
}

// POST /notifications/mark-all-read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := actingUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	updated, err := h.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyNotificationAllRead, updated), gin.H{
		"updated": updated,
	})
}

// DELETE /notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	notificationID, ok := paramUint(c, "id")
	if !ok {
		utils.NotFoundResponse(c, i18n.KeyNotificationNotFound)
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), userID, notificationID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.KeyNotificationDeleted)
}
