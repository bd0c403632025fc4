// internal/domain/order/service_test.go
package order

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServices(t *testing.T) (*Service, *cart.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{}, &cart.CartLine{}, &Purchase{}, &PurchaseItem{},
	))

	cfg := &config.Config{}
	cartService := cart.NewService(db, cfg)
	return NewService(db, cfg, cartService), cartService, db
}

func fillCart(t *testing.T, db *gorm.DB, cartService *cart.Service, userID uint, qty int, price int64) *catalog.Product {
	t.Helper()
	p := catalog.Product{Name: "Potato Chips", Brand: "Crispy Co", Price: price, Stock: 100}
	require.NoError(t, db.Create(&p).Error)

	cartService.Staging().StageDelta(userID, p.ID, qty)
	_, err := cartService.Commit(userID, &p, 1)
	require.NoError(t, err)
	return &p
}

func TestPlaceOrderRequiresAddressOrLocationLink(t *testing.T) {
	svc, cartService, db := newTestServices(t)
	fillCart(t, db, cartService, 1, 2, 450)

	_, err := svc.PlaceOrder(1, &PlaceOrderRequest{Address: "Riyadh"})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	// The failed order leaves the cart untouched
	cartResp, err := cartService.GetCart(1)
	require.NoError(t, err)
	assert.Len(t, cartResp.Lines, 1)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	svc, _, _ := newTestServices(t)

	_, err := svc.PlaceOrder(1, &PlaceOrderRequest{DetailedAddress: "12 King Fahd Rd"})
	require.ErrorIs(t, err, apperrors.ErrEmptyCart)
}

func TestPlaceOrderAcceptsLocationLinkAlone(t *testing.T) {
	svc, cartService, db := newTestServices(t)
	fillCart(t, db, cartService, 1, 1, 450)

	purchase, err := svc.PlaceOrder(1, &PlaceOrderRequest{LocationLink: "https://maps.example.com/p/abc"})
	require.NoError(t, err)
	assert.Equal(t, PurchaseStatusConfirmed, purchase.Status)
}

func TestPlaceOrderSnapshotsCartAndClearsIt(t *testing.T) {
	svc, cartService, db := newTestServices(t)
	product := fillCart(t, db, cartService, 1, 2, 450)

	cartResp, err := cartService.GetCart(1)
	require.NoError(t, err)
	wantTotal := cart.Total(cartResp.Lines)

	purchase, err := svc.PlaceOrder(1, &PlaceOrderRequest{
		Address:         "Riyadh",
		DetailedAddress: "12 King Fahd Rd",
	})
	require.NoError(t, err)

	assert.Equal(t, PurchaseStatusConfirmed, purchase.Status)
	assert.Equal(t, wantTotal, purchase.TotalAmount)
	assert.NotEmpty(t, purchase.Reference)

	require.Len(t, purchase.Items, 1)
	assert.Equal(t, product.ID, purchase.Items[0].ProductID)
	assert.Equal(t, 2, purchase.Items[0].Quantity)
	assert.Equal(t, int64(450), purchase.Items[0].Price)
	assert.Equal(t, int64(900), purchase.Items[0].TotalPrice)

	// Every line cleared after the order write succeeded
	cartResp, err = cartService.GetCart(1)
	require.NoError(t, err)
	assert.Empty(t, cartResp.Lines)
}

func TestPlaceOrderSnapshotSurvivesPriceChange(t *testing.T) {
	svc, cartService, db := newTestServices(t)
	product := fillCart(t, db, cartService, 1, 2, 450)

	purchase, err := svc.PlaceOrder(1, &PlaceOrderRequest{DetailedAddress: "12 King Fahd Rd"})
	require.NoError(t, err)

	// A later price change must not rewrite the historical order
	require.NoError(t, db.Model(product).Update("price", 9999).Error)

	reloaded, err := svc.GetPurchase(1, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(450), reloaded.Items[0].Price)
	assert.Equal(t, int64(900), reloaded.TotalAmount)
}

func TestGetPurchaseScopedToUser(t *testing.T) {
	svc, cartService, db := newTestServices(t)
	fillCart(t, db, cartService, 1, 1, 450)

	purchase, err := svc.PlaceOrder(1, &PlaceOrderRequest{DetailedAddress: "12 King Fahd Rd"})
	require.NoError(t, err)

	_, err = svc.GetPurchase(2, purchase.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from PurchaseStatus
		to   PurchaseStatus
		ok   bool
	}{
		{PurchaseStatusConfirmed, PurchaseStatusPacked, true},
		{PurchaseStatusConfirmed, PurchaseStatusCancelled, true},
		{PurchaseStatusConfirmed, PurchaseStatusDelivered, false},
		{PurchaseStatusPacked, PurchaseStatusOutForDelivery, true},
		{PurchaseStatusPacked, PurchaseStatusCancelled, true},
		{PurchaseStatusOutForDelivery, PurchaseStatusDelivered, true},
		{PurchaseStatusOutForDelivery, PurchaseStatusCancelled, false},
		{PurchaseStatusDelivered, PurchaseStatusCancelled, false},
		{PurchaseStatusCancelled, PurchaseStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_to_%s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, IsValidStatusTransition(tt.from, tt.to))
		})
	}
}

func TestCancelOnlyWhileCancellable(t *testing.T) {
	svc, cartService, db := newTestServices(t)
	fillCart(t, db, cartService, 1, 1, 450)

	purchase, err := svc.PlaceOrder(1, &PlaceOrderRequest{DetailedAddress: "12 King Fahd Rd"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(purchase.ID, PurchaseStatusPacked))
	require.NoError(t, svc.UpdateStatus(purchase.ID, PurchaseStatusOutForDelivery))

	err = svc.Cancel(1, purchase.ID)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
