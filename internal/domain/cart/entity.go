// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// CartLine represents a persisted cart row. Exactly one line may exist per
// (user, product, store) triple; the unique index backs the commit upsert.
// Lines are hard-deleted: a row with quantity 0 is never stored.
type CartLine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_lines_natural" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_lines_natural" json:"product_id"`
	StoreID   uint      `gorm:"not null;uniqueIndex:idx_cart_lines_natural" json:"store_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"` // Unit price at commit time, in cents
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product catalog.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`
}

// TableName overrides the table name
func (CartLine) TableName() string {
	return "cart_items"
}

// CartResponse represents a user's cart with derived totals
type CartResponse struct {
	UserID uint       `json:"user_id"`
	Lines  []CartLine `json:"lines"`
	Totals CartTotals `json:"totals"`
}

// CartTotals represents calculated cart totals
type CartTotals struct {
	LineCount     int   `json:"line_count"`     // Number of distinct lines
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	TotalAmount   int64 `json:"total_amount"`   // Sum of quantity * unit price, in cents
}

// Total computes the cart total in cents: Σ quantity × unit price.
func Total(lines []CartLine) int64 {
	var total int64
	for i := range lines {
		total += lines[i].Price * int64(lines[i].Quantity)
	}
	return total
}

// TotalsOf derives the full totals block for a set of lines
func TotalsOf(lines []CartLine) CartTotals {
	totals := CartTotals{LineCount: len(lines)}
	for i := range lines {
		totals.TotalQuantity += lines[i].Quantity
	}
	totals.TotalAmount = Total(lines)
	return totals
}
