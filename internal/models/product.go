// internal/models/product.go
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	BaseModel
	Name     string          `json:"product_name" gorm:"column:product_name;size:255;not null"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity int             `json:"quantity" gorm:"default:0"`
	Supplier string          `json:"supplier" gorm:"size:255"`
	Category string          `json:"category" gorm:"size:100;index"`
	Image    string          `json:"image" gorm:"size:1024"`
	ImageKey string          `json:"-" gorm:"size:512"`
	// SearchText holds the lowercased name, supplier and category, one per line.
	SearchText string `json:"-" gorm:"type:text"`
}

// BeforeSave refreshes SearchText.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.SearchText = ProductSearchText(p.Name, p.Supplier, p.Category)
	return nil
}

func ProductSearchText(name, supplier, category string) string {
	return strings.ToLower(strings.Join([]string{name, supplier, category}, "\n"))
}

type Poster struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Image     string    `json:"image" gorm:"size:1024"`
	ImageKey  string    `json:"-" gorm:"size:512"`
	DateAdded time.Time `json:"-" gorm:"autoCreateTime;index"`
}

type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	ProductID uint      `json:"productId" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"default:5"`
	Review    string    `json:"review" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
