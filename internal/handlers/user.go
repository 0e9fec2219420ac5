// internal/handlers/user.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/models"
	"github.com/javajoker/ecommerce-api/internal/services"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

const userPhotoField = "userPhoto"

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /user-details/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := paramUint(c, "id")
	if !ok {
		utils.NotFoundResponse(c, i18n.KeyUserNotFound)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewUserView(user))
}

// DELETE /users/:id
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := paramUint(c, "id")
	if !ok {
		utils.NotFoundResponse(c, i18n.KeyUserNotFound)
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.KeyUserDeleted)
}

// PUT /users/upload (multipart: id, userPhoto)
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseID(c.PostForm("id"))
	if !ok {
		invalidParam(c, "id")
		return
	}

	header, err := c.FormFile(userPhotoField)
	if err != nil {
		missingUpload(c, userPhotoField)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}
	defer file.Close()

	profile, err := h.userService.UploadPhoto(c.Request.Context(), userID, file, header)
	if err != nil {
		respondUploadError(c, userPhotoField, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyUserPhotoUploaded), gin.H{
		"photo": profile.PhotoURL,
	})
}

// PUT /users/update_password?id=&password=
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req services.UpdatePasswordRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.KeyUserPasswordUpdated)
}

// PUT /users/update_profile?id=&username=&email=
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateProfileRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUserParamsRequired), validationErrors)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyUserProfileUpdated), gin.H{
		"user": models.NewUserView(user),
	})
}

// GET /users/getImage?id=
func (h *UserHandler) GetImage(c *gin.Context) {
	userID, ok := queryUint(c, "id")
	if !ok {
		invalidParam(c, "id")
		return
	}

	body, contentType, err := h.userService.OpenPhoto(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}
