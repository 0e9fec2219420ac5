// internal/handlers/auth.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/models"
	"github.com/javajoker/ecommerce-api/internal/services"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	otpService  *services.OtpService
}

func NewAuthHandler(authService *services.AuthService, otpService *services.OtpService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
	}
}

// POST /users/register
func (h *AuthHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, i18n.T(lang, i18n.KeyAuthRegisterSuccess), gin.H{
		"user_id": user.ID,
		"email":   user.Email,
	})
}

// POST /users/login?email=&password=
// Credentials come from the query string; a JSON body is accepted when the
// query carries none.
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	req := services.LoginRequest{
		Email:    c.Query("email"),
		Password: c.Query("password"),
	}
	if req.Email == "" && req.Password == "" && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BindError(c, err)
			return
		}
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyAuthLoginSuccess), gin.H{
		"user_id": authResponse.User.ID,
		"email":   authResponse.User.Email,
		"token":   authResponse.AccessToken,
	})
}

// GET /users/otp?email=
func (h *AuthHandler) GetOTP(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOTPEmailRequired), nil)
		return
	}

	otp, err := h.otpService.Generate(c.Request.Context(), email)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	view := models.OtpView{Email: otp.Email}
	if h.otpService.ExposeCode() {
		view.Otp = otp.Code
	}
	c.JSON(http.StatusOK, view)
}

// POST /users/otp/verify
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req services.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.otpService.Verify(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.KeyOTPVerified)
}
