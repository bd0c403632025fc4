// internal/domain/cart/staging.go
package cart

import "sync"

// stagingKey identifies a staged quantity
type stagingKey struct {
	UserID    uint
	ProductID uint
}

// Staging holds pending quantities: amounts a shopper has stepped up or down
// on a product card but not yet committed to a cart line. Staged amounts are
// deliberately ephemeral; they live in process memory only and are reset to
// zero the moment a commit is attempted.
type Staging struct {
	mu      sync.Mutex
	pending map[stagingKey]int
}

// NewStaging creates an empty staging area
func NewStaging() *Staging {
	return &Staging{
		pending: make(map[stagingKey]int),
	}
}

// StageDelta adjusts the pending quantity for a product by delta, clamped at
// zero. Returns the resulting pending quantity. No persistence side effect.
func (s *Staging) StageDelta(userID, productID uint, delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := stagingKey{UserID: userID, ProductID: productID}
	next := s.pending[key] + delta
	if next < 0 {
		next = 0
	}

	if next == 0 {
		delete(s.pending, key)
	} else {
		s.pending[key] = next
	}
	return next
}

// Pending returns the currently staged quantity for a product
func (s *Staging) Pending(userID, productID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[stagingKey{UserID: userID, ProductID: productID}]
}

// take removes and returns the staged quantity, resetting it to zero. This is
// the optimistic half of a commit; a failed commit calls StageDelta with the
// taken amount to hand the shopper their staged intent back.
func (s *Staging) take(userID, productID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := stagingKey{UserID: userID, ProductID: productID}
	qty := s.pending[key]
	delete(s.pending, key)
	return qty
}
