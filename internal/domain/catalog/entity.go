// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// DefaultCategory is the effective category of a product without one.
const DefaultCategory = "General"

// CategoryAll is the pseudo-category that matches every product.
const CategoryAll = "All"

// Product represents a catalog product. Immutable from the shopper's
// perspective; stock and price changes never rewrite placed orders.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Brand       string         `gorm:"size:255" json:"brand"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // Unit price in cents
	Image       string         `gorm:"size:500" json:"image"`
	Stock       int            `gorm:"default:0" json:"stock"`
	Category    string         `gorm:"size:100" json:"category"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// StoreProduct links a product to a store it is sold in
type StoreProduct struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   uint      `gorm:"not null;index" json:"store_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	// No default tag: gorm drops zero-valued fields that carry one on
	// Create, which would persist an explicit false as true.
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`
}

// TableName overrides
func (Product) TableName() string      { return "products" }
func (StoreProduct) TableName() string { return "store_products" }

// EffectiveCategory returns the product category, defaulting empty to General
func (p *Product) EffectiveCategory() string {
	if p.Category == "" {
		return DefaultCategory
	}
	return p.Category
}
