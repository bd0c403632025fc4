// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cartService,
	}
}

// PlaceOrderRequest represents checkout data
type PlaceOrderRequest struct {
	Address         string `json:"address"`
	DetailedAddress string `json:"detailed_address"`
	LocationLink    string `json:"location_link"`
}

// PlaceOrder snapshots the user's cart into a confirmed purchase. The
// purchase write and the cart clear share one transaction: the cart is only
// ever cleared once the order row is in.
func (s *Service) PlaceOrder(userID uint, req *PlaceOrderRequest) (*Purchase, error) {
	if strings.TrimSpace(req.DetailedAddress) == "" && strings.TrimSpace(req.LocationLink) == "" {
		return nil, fmt.Errorf("%w: a detailed address or a location link is required", apperrors.ErrValidation)
	}

	cartResponse, err := s.cartService.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if len(cartResponse.Lines) == 0 {
		return nil, fmt.Errorf("%w", apperrors.ErrEmptyCart)
	}

	total := cart.Total(cartResponse.Lines)

	purchase := Purchase{
		UserID:          userID,
		Status:          PurchaseStatusConfirmed,
		TotalAmount:     total,
		Address:         req.Address,
		DetailedAddress: req.DetailedAddress,
		LocationLink:    req.LocationLink,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&purchase).Error; err != nil {
			return fmt.Errorf("%w: failed to create purchase: %v", apperrors.ErrRemoteService, err)
		}

		purchase.Reference = purchase.GenerateReference()
		if err := tx.Model(&purchase).Update("reference", purchase.Reference).Error; err != nil {
			return fmt.Errorf("%w: failed to set purchase reference: %v", apperrors.ErrRemoteService, err)
		}

		for _, line := range cartResponse.Lines {
			item := PurchaseItem{
				PurchaseID: purchase.ID,
				ProductID:  line.ProductID,
				Name:       line.Product.Name,
				Quantity:   line.Quantity,
				Price:      line.Price,
				TotalPrice: line.Price * int64(line.Quantity),
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("%w: failed to create purchase item: %v", apperrors.ErrRemoteService, err)
			}
		}

		// Clear the cart last; a failure here rolls the order back rather
		// than stranding a purchase without its source lines removed
		return s.cartService.ClearLines(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetPurchase(userID, purchase.ID)
}

// GetUserPurchases retrieves a user's purchases, newest first
func (s *Service) GetUserPurchases(userID uint) ([]Purchase, error) {
	var purchases []Purchase
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve purchases: %v", apperrors.ErrRemoteService, err)
	}
	return purchases, nil
}

// GetPurchase retrieves a single purchase belonging to a user
func (s *Service) GetPurchase(userID, purchaseID uint) (*Purchase, error) {
	var purchase Purchase
	result := s.db.Preload("Items").
		Where("id = ? AND user_id = ?", purchaseID, userID).
		First(&purchase)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase %d", apperrors.ErrNotFound, purchaseID)
		}
		return nil, fmt.Errorf("%w: failed to retrieve purchase: %v", apperrors.ErrRemoteService, result.Error)
	}
	return &purchase, nil
}

// UpdateStatus moves a purchase along its lifecycle
func (s *Service) UpdateStatus(purchaseID uint, status PurchaseStatus) error {
	var purchase Purchase
	if err := s.db.First(&purchase, purchaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: purchase %d", apperrors.ErrNotFound, purchaseID)
		}
		return fmt.Errorf("%w: failed to load purchase: %v", apperrors.ErrRemoteService, err)
	}

	if !IsValidStatusTransition(purchase.Status, status) {
		return fmt.Errorf("%w: invalid status transition from %s to %s",
			apperrors.ErrValidation, purchase.Status, status)
	}

	updates := map[string]interface{}{"status": status}
	now := time.Now().UTC()
	switch status {
	case PurchaseStatusDelivered:
		updates["delivered_at"] = now
	case PurchaseStatusCancelled:
		updates["cancelled_at"] = now
	}

	if err := s.db.Model(&purchase).Updates(updates).Error; err != nil {
		return fmt.Errorf("%w: failed to update purchase status: %v", apperrors.ErrRemoteService, err)
	}
	return nil
}

// Cancel cancels a purchase on the shopper's behalf
func (s *Service) Cancel(userID, purchaseID uint) error {
	purchase, err := s.GetPurchase(userID, purchaseID)
	if err != nil {
		return err
	}

	if !purchase.CanBeCancelled() {
		return fmt.Errorf("%w: purchase cannot be cancelled in status %s",
			apperrors.ErrValidation, purchase.Status)
	}

	return s.UpdateStatus(purchase.ID, PurchaseStatusCancelled)
}
