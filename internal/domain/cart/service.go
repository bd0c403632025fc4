// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles cart business logic
type Service struct {
	db      *gorm.DB
	config  *config.Config
	staging *Staging
	locks   keyedLocks
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		staging: NewStaging(),
	}
}

// Staging exposes the pending-quantity staging area
func (s *Service) Staging() *Staging {
	return s.staging
}

// CommitResult is the outcome of a commit attempt. Exactly one branch holds:
// a committed line, or a failure with the pending quantity restored to the
// amount that was being committed.
type CommitResult struct {
	Committed        bool      `json:"committed"`
	Line             *CartLine `json:"line,omitempty"`
	RestoredQuantity int       `json:"restored_quantity,omitempty"`
}

// Commit persists the staged quantity for a product into the user's cart
// line for (user, product, store). A staged quantity of zero commits one
// unit. The write is an atomic upsert by natural key, so repeated commits
// can only ever grow the single line for the triple, and commits for the
// same triple are additionally serialized in-process.
func (s *Service) Commit(userID uint, product *catalog.Product, storeID uint) (*CommitResult, error) {
	qty := s.staging.take(userID, product.ID)
	if qty == 0 {
		// Tapping ADD without touching the stepper still adds one unit
		qty = 1
	}

	unlock := s.locks.lock(lineKey{UserID: userID, ProductID: product.ID, StoreID: storeID})
	defer unlock()

	line := CartLine{
		UserID:    userID,
		ProductID: product.ID,
		StoreID:   storeID,
		Quantity:  qty,
		Price:     product.Price,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}, {Name: "store_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			"price":    gorm.Expr("excluded.price"),
		}),
	}).Create(&line).Error
	if err != nil {
		restored := s.staging.StageDelta(userID, product.ID, qty)
		return &CommitResult{Committed: false, RestoredQuantity: restored},
			fmt.Errorf("%w: failed to commit cart line: %v", apperrors.ErrRemoteService, err)
	}

	committed, err := s.findLine(userID, product.ID, storeID)
	if err != nil {
		return nil, err
	}

	return &CommitResult{Committed: true, Line: committed}, nil
}

// GetCart retrieves the user's cart lines with product details and totals
func (s *Service) GetCart(userID uint) (*CartResponse, error) {
	var lines []CartLine
	err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve cart: %v", apperrors.ErrRemoteService, err)
	}

	return &CartResponse{
		UserID: userID,
		Lines:  lines,
		Totals: TotalsOf(lines),
	}, nil
}

// Decrement lowers a line's quantity by one, with a floor of one. A line at
// quantity 1 is left untouched; removing a line entirely is only ever an
// explicit Remove.
func (s *Service) Decrement(userID, lineID uint, currentQty int) error {
	if currentQty <= 1 {
		return nil
	}

	result := s.db.Model(&CartLine{}).
		Where("id = ? AND user_id = ? AND quantity > 1", lineID, userID).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if result.Error != nil {
		return fmt.Errorf("%w: failed to decrement cart line: %v", apperrors.ErrRemoteService, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: cart line %d", apperrors.ErrNotFound, lineID)
	}
	return nil
}

// Remove deletes a cart line unconditionally
func (s *Service) Remove(userID, lineID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", lineID, userID).Delete(&CartLine{})
	if result.Error != nil {
		return fmt.Errorf("%w: failed to remove cart line: %v", apperrors.ErrRemoteService, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: cart line %d", apperrors.ErrNotFound, lineID)
	}
	return nil
}

// ClearLines deletes every cart line for a user. Callers placing an order
// pass their transaction so the clear shares the order's commit.
func (s *Service) ClearLines(tx *gorm.DB, userID uint) error {
	if tx == nil {
		tx = s.db
	}
	if err := tx.Where("user_id = ?", userID).Delete(&CartLine{}).Error; err != nil {
		return fmt.Errorf("%w: failed to clear cart: %v", apperrors.ErrRemoteService, err)
	}
	return nil
}

func (s *Service) findLine(userID, productID, storeID uint) (*CartLine, error) {
	var line CartLine
	result := s.db.Preload("Product").
		Where("user_id = ? AND product_id = ? AND store_id = ?", userID, productID, storeID).
		First(&line)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart line for product %d", apperrors.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("%w: failed to load cart line: %v", apperrors.ErrRemoteService, result.Error)
	}
	return &line, nil
}

// lineKey identifies a cart line by its natural key
type lineKey struct {
	UserID    uint
	ProductID uint
	StoreID   uint
}

// keyedLocks serializes commits per cart line so same-process read-modify
// cycles for one triple never interleave. The database's unique index is the
// cross-process guarantee; this keeps in-process increments ordered.
// Entries are never evicted: the map is bounded by the distinct
// (user, product, store) triples seen since startup.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[lineKey]*sync.Mutex
}

func (k *keyedLocks) lock(key lineKey) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[lineKey]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
