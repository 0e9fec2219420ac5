// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type PaginationResult struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetPaginationParams reads page and page_size. A page_size above MaxPageSize
// is clamped; a missing or invalid one falls back to defaultSize.
func GetPaginationParams(c *gin.Context, defaultSize int) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || size < 1 {
		size = defaultSize
	}
	return NewPaginationParams(page, size)
}

// FixedPagination ignores page_size; used where the page size is part of the
// contract.
func FixedPagination(c *gin.Context, size int) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	return NewPaginationParams(page, size)
}

func NewPaginationParams(page, size int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PaginationParams{Page: page, PageSize: size}
}

func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	return db.Offset(params.Offset()).Limit(params.PageSize)
}

func CreatePaginationResult(total int64, params PaginationParams) PaginationResult {
	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))

	return PaginationResult{
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.PageSize))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
