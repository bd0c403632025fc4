// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PurchaseStatus represents the order lifecycle status
type PurchaseStatus string

const (
	PurchaseStatusConfirmed      PurchaseStatus = "confirmed"
	PurchaseStatusPacked         PurchaseStatus = "packed"
	PurchaseStatusOutForDelivery PurchaseStatus = "out_for_delivery"
	PurchaseStatusDelivered      PurchaseStatus = "delivered"
	PurchaseStatusCancelled      PurchaseStatus = "cancelled"
)

// Purchase is an immutable snapshot of a cart at checkout: the total and the
// line items carry the prices that were current at order time and are never
// re-read from the live catalog.
type Purchase struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Reference string         `gorm:"uniqueIndex;size:50" json:"reference"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Status    PurchaseStatus `gorm:"not null;default:'confirmed'" json:"status"`

	TotalAmount int64 `gorm:"not null" json:"total_amount"` // In cents

	// Delivery destination
	Address         string `gorm:"size:255" json:"address"`
	DetailedAddress string `gorm:"size:500" json:"detailed_address"`
	LocationLink    string `gorm:"size:500" json:"location_link"` // Geolocation link

	DeliveredAt *time.Time     `json:"delivered_at"`
	CancelledAt *time.Time     `json:"cancelled_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// PurchaseItem is one snapshotted line of a purchase
type PurchaseItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PurchaseID uint      `gorm:"not null;index" json:"purchase_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      int64     `gorm:"not null" json:"price"`       // Unit price at order time, in cents
	TotalPrice int64     `gorm:"not null" json:"total_price"` // Quantity * Price
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides
func (Purchase) TableName() string     { return "purchases" }
func (PurchaseItem) TableName() string { return "purchase_items" }

// GenerateReference builds the human-facing purchase reference.
// Format: PUR-YYYYMMDD-XXXXX
func (p *Purchase) GenerateReference() string {
	return fmt.Sprintf("PUR-%s-%05d", time.Now().UTC().Format("20060102"), p.ID)
}

// CanBeCancelled checks whether the purchase can still be cancelled
func (p *Purchase) CanBeCancelled() bool {
	return p.Status == PurchaseStatusConfirmed || p.Status == PurchaseStatusPacked
}

// IsValidStatusTransition reports whether a lifecycle move is allowed
func IsValidStatusTransition(from, to PurchaseStatus) bool {
	validTransitions := map[PurchaseStatus][]PurchaseStatus{
		PurchaseStatusConfirmed: {
			PurchaseStatusPacked,
			PurchaseStatusCancelled,
		},
		PurchaseStatusPacked: {
			PurchaseStatusOutForDelivery,
			PurchaseStatusCancelled,
		},
		PurchaseStatusOutForDelivery: {
			PurchaseStatusDelivered,
		},
	}

	for _, status := range validTransitions[from] {
		if status == to {
			return true
		}
	}
	return false
}
