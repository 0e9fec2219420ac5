// internal/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/models"
	"github.com/javajoker/ecommerce-api/internal/services"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

const imageField = "image"

type ProductHandler struct {
	productService *services.ProductService
	posterService  *services.PosterService
}

func NewProductHandler(productService *services.ProductService, posterService *services.PosterService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		posterService:  posterService,
	}
}

// GET /products?page=&page_size=&category=&userId=
func (h *ProductHandler) GetProducts(c *gin.Context) {
	viewerID, _ := actingUserID(c)

	query := services.ProductQuery{
		PaginationParams: utils.GetPaginationParams(c, utils.DefaultPageSize),
		Category:         c.Query("category"),
		ViewerID:         viewerID,
	}

	products, result, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.PaginatedResponse(c, "products", products, result)
}

// GET /all_products
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	viewerID, _ := actingUserID(c)

	products, err := h.productService.All(c.Request.Context(), viewerID)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.CollectionResponse(c, "products", products)
}

// GET /products/search?q=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	viewerID, _ := actingUserID(c)

	products, err := h.productService.Search(c.Request.Context(), c.Query("q"), viewerID)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.CollectionResponse(c, "products", products)
}

// POST /products/insert (multipart)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	header, err := c.FormFile(imageField)
	if err != nil {
		missingUpload(c, imageField)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}
	defer file.Close()

	product, err := h.productService.Create(c.Request.Context(), &req, file, header)
	if err != nil {
		respondUploadError(c, imageField, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, i18n.T(lang, i18n.KeyProductCreated), gin.H{
		"product": models.NewProductView(product, false, false),
	})
}

// GET /posters
func (h *ProductHandler) GetPosters(c *gin.Context) {
	posters, err := h.posterService.List(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.CollectionResponse(c, "posters", posters)
}

// POST /posters/insert (multipart: title, image)
func (h *ProductHandler) CreatePoster(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreatePosterRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	header, err := c.FormFile(imageField)
	if err != nil {
		missingUpload(c, imageField)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}
	defer file.Close()

	poster, err := h.posterService.Create(c.Request.Context(), &req, file, header)
	if err != nil {
		respondUploadError(c, imageField, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, i18n.T(lang, i18n.KeyPosterCreated), gin.H{
		"poster": poster,
	})
}
