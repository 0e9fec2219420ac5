// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/ecommerce-api/internal/logging"
	"github.com/javajoker/ecommerce-api/internal/models"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

type ProductService struct {
	db      *gorm.DB
	storage *StorageService
}

type CreateProductRequest struct {
	ProductName string `form:"product_name" json:"product_name" validate:"required,max=255"`
	Price       string `form:"price" json:"price" validate:"required,numeric"`
	Quantity    int    `form:"quantity" json:"quantity" validate:"gte=0"`
	Supplier    string `form:"supplier" json:"supplier" validate:"max=255"`
	Category    string `form:"category" json:"category" validate:"max=100"`
}

type ProductQuery struct {
	utils.PaginationParams
	Category string
	ViewerID uint
}

func NewProductService(db *gorm.DB, storage *StorageService) *ProductService {
	return &ProductService{
		db:      db,
		storage: storage,
	}
}

// List pages through the catalog, optionally restricted to one category.
func (s *ProductService) List(ctx context.Context, q ProductQuery) ([]models.ProductView, utils.PaginationResult, error) {
	db := s.db.WithContext(ctx)

	query := db.Model(&models.Product{})
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.PaginationResult{}, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	if err := utils.ApplyPagination(query.Order("id ASC"), q.PaginationParams).Find(&products).Error; err != nil {
		return nil, utils.PaginationResult{}, fmt.Errorf("failed to list products: %w", err)
	}

	views, err := productViews(db, q.ViewerID, products)
	if err != nil {
		return nil, utils.PaginationResult{}, err
	}

	return views, utils.CreatePaginationResult(total, q.PaginationParams), nil
}

func (s *ProductService) All(ctx context.Context, viewerID uint) ([]models.ProductView, error) {
	db := s.db.WithContext(ctx)

	var products []models.Product
	if err := db.Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return productViews(db, viewerID, products)
}

// Search matches keyword case-insensitively anywhere in the name, supplier
// or category. An empty keyword matches everything.
func (s *ProductService) Search(ctx context.Context, keyword string, viewerID uint) ([]models.ProductView, error) {
	db := s.db.WithContext(ctx)

	// A keyword spanning a line break would match across two fields.
	keyword = strings.ReplaceAll(strings.ToLower(keyword), "\n", " ")
	pattern := "%" + escapeLike(keyword) + "%"

	var products []models.Product
	err := db.Where(`search_text LIKE ? ESCAPE '\'`, pattern).Order("id ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return productViews(db, viewerID, products)
}

// Create stores the image and inserts the product. The image is removed
// again if the insert fails.
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest, file multipart.File, header *multipart.FileHeader) (*models.Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, FieldErrors{"price": "price must be greater than or equal to 0"}
	}
	price = price.Round(2)
	if price.GreaterThan(models.MaxAmount) {
		return nil, FieldErrors{"price": "price must be less than or equal to " + models.MaxAmount.String()}
	}

	upload, err := s.storage.UploadFile(ctx, file, header, s.storage.GetDefaultUploadOptions("products"))
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:     req.ProductName,
		Price:    price,
		Quantity: req.Quantity,
		Supplier: req.Supplier,
		Category: req.Category,
		Image:    upload.URL,
		ImageKey: upload.Key,
	}

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		if delErr := s.storage.DeleteFile(ctx, upload.Key); delErr != nil {
			logging.FromContext(ctx).WithError(delErr).Warn("Failed to remove orphaned product image")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// productViews decorates products with the viewer's favorite and cart flags
// using one query per flag.
func productViews(db *gorm.DB, viewerID uint, products []models.Product) ([]models.ProductView, error) {
	views := make([]models.ProductView, 0, len(products))
	if len(products) == 0 {
		return views, nil
	}

	var favorites, inCart map[uint]bool
	if viewerID != 0 {
		ids := make([]uint, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}

		var err error
		if favorites, err = memberSet(db, &models.Favorite{}, viewerID, ids); err != nil {
			return nil, err
		}
		if inCart, err = memberSet(db, &models.Cart{}, viewerID, ids); err != nil {
			return nil, err
		}
	}

	for i := range products {
		p := &products[i]
		views = append(views, models.NewProductView(p, favorites[p.ID], inCart[p.ID]))
	}
	return views, nil
}

func memberSet(db *gorm.DB, model interface{}, userID uint, productIDs []uint) (map[uint]bool, error) {
	var ids []uint
	err := db.Model(model).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load product flags: %w", err)
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
