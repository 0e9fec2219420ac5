// internal/handlers/order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/models"
	"github.com/javajoker/ecommerce-api/internal/services"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

type OrderHandler struct {
	orderService    *services.OrderService
	shippingService *services.ShippingService
	reviewService   *services.ReviewService
}

func NewOrderHandler(orderService *services.OrderService, shippingService *services.ShippingService, reviewService *services.ReviewService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		shippingService: shippingService,
		reviewService:   reviewService,
	}
}

// POST /orders/add
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}
	bindActingUser(c, &req.UserID)

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, i18n.T(lang, i18n.KeyOrderCreated), gin.H{
		"order": models.NewOrderView(order),
	})
}

// GET /orders/get?userId=
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		invalidParam(c, "userId")
		return
	}

	orders, err := h.orderService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	views := make([]models.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, models.NewOrderView(&orders[i]))
	}

	utils.CollectionResponse(c, "orders", views)
}

// POST /address/add
func (h *OrderHandler) AddAddress(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.AddShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}
	bindActingUser(c, &req.UserID)

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	shipping, err := h.shippingService.Add(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, i18n.T(lang, i18n.KeyAddressAdded), gin.H{
		"address": shipping,
	})
}

// POST /review/add
func (h *OrderHandler) AddReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}
	bindActingUser(c, &req.UserID)

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.reviewService.Add(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, i18n.T(lang, i18n.KeyReviewAdded), gin.H{
		"review": review,
	})
}

// GET /review?productId=
func (h *OrderHandler) GetReviews(c *gin.Context) {
	productID, ok := queryUint(c, "productId")
	if !ok {
		invalidParam(c, "productId")
		return
	}

	reviews, err := h.reviewService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.CollectionResponse(c, "reviews", reviews)
}
