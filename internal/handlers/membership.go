// internal/handlers/membership.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/services"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

// MembershipHandler serves the favorites, carts and history endpoints. All
// three are (user, product) sets with upsert on add.
type MembershipHandler struct {
	favoriteService *services.FavoriteService
	cartService     *services.CartService
	historyService  *services.HistoryService
}

func NewMembershipHandler(favoriteService *services.FavoriteService, cartService *services.CartService, historyService *services.HistoryService) *MembershipHandler {
	return &MembershipHandler{
		favoriteService: favoriteService,
		cartService:     cartService,
		historyService:  historyService,
	}
}

// POST /favorites/add
func (h *MembershipHandler) AddFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}
	bindActingUser(c, &req.UserID)

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	created, err := h.favoriteService.Add(c.Request.Context(), req.UserID, req.ProductID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyFavoriteAdded), gin.H{"created": created})
}

// DELETE /favorites/remove?userId=&productId=
func (h *MembershipHandler) RemoveFavorite(c *gin.Context) {
	userID, productID, ok := membershipKey(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, productID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.KeyFavoriteRemoved)
}

// GET /favorites?userId=
func (h *MembershipHandler) GetFavorites(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		invalidParam(c, "userId")
		return
	}

	products, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.CollectionResponse(c, "favorites", products)
}

// POST /carts/add
// The raw body is kept next to the parsed columns.
func (h *MembershipHandler) AddToCart(c *gin.Context) {
	var req services.CartRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		utils.BindError(c, err)
		return
	}
	bindActingUser(c, &req.UserID)

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	var raw []byte
	if cached, ok := c.Get(gin.BodyBytesKey); ok {
		raw, _ = cached.([]byte)
	}

	if _, err := h.cartService.Add(c.Request.Context(), &req, string(raw)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.KeyCartAdded)
}

// DELETE /carts/remove?userId=&productId=
func (h *MembershipHandler) RemoveFromCart(c *gin.Context) {
	userID, productID, ok := membershipKey(c)
	if !ok {
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), userID, productID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.KeyCartRemoved)
}

// GET /carts?userId=
func (h *MembershipHandler) GetCart(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		invalidParam(c, "userId")
		return
	}

	products, err := h.cartService.List(c.Request.Context(), userID)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.CollectionResponse(c, "carts", products)
}

// POST /history/add
func (h *MembershipHandler) AddToHistory(c *gin.Context) {
	var req services.HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}
	bindActingUser(c, &req.UserID)

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.historyService.Add(c.Request.Context(), req.UserID, req.ProductID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.KeyHistoryAdded)
}

// DELETE /history/remove?userId=[&productId=]
// Without productId the user's whole history is cleared.
func (h *MembershipHandler) RemoveFromHistory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := actingUserID(c)
	if !ok {
		invalidParam(c, "userId")
		return
	}

	var productID uint
	if c.Query("productId") != "" {
		if productID, ok = queryUint(c, "productId"); !ok {
			invalidParam(c, "productId")
			return
		}
	}

	removed, err := h.historyService.Remove(c.Request.Context(), userID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	key := i18n.KeyHistoryRemoved
	if productID == 0 {
		key = i18n.KeyHistoryCleared
	}
	utils.SuccessResponse(c, http.StatusOK, i18n.T(lang, key), gin.H{"removed": removed})
}

// GET /history?userId=&page=
func (h *MembershipHandler) GetHistory(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		invalidParam(c, "userId")
		return
	}

	params := utils.FixedPagination(c, services.HistoryPageSize)
	products, result, err := h.historyService.List(c.Request.Context(), userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.PaginatedResponse(c, "history", products, result)
}

// membershipKey reads the (user, product) pair of a remove request and
// answers 400 itself when either is missing.
func membershipKey(c *gin.Context) (uint, uint, bool) {
	userID, ok := actingUserID(c)
	if !ok {
		invalidParam(c, "userId")
		return 0, 0, false
	}

	productID, ok := queryUint(c, "productId")
	if !ok {
		invalidParam(c, "productId")
		return 0, 0, false
	}

	return userID, productID, true
}
