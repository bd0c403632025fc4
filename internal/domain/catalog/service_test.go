// internal/domain/catalog/service_test.go
package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Product{}, &StoreProduct{}))

	return NewService(db, &config.Config{}), db
}

func stock(t *testing.T, db *gorm.DB, storeID uint, available bool, product Product) Product {
	t.Helper()

	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&StoreProduct{
		StoreID:   storeID,
		ProductID: product.ID,
		Available: available,
	}).Error)
	return product
}

func TestGetStoreProducts(t *testing.T) {
	service, db := newTestService(t)

	stock(t, db, 1, true, Product{Name: "Salted Chips", Brand: "Crunchy Co", Category: "Snacks", Price: 250})
	stock(t, db, 1, true, Product{Name: "Cola", Brand: "Fizz", Category: "Drinks", Price: 180})
	stock(t, db, 1, true, Product{Name: "Batteries", Brand: "Volt", Price: 499})
	stock(t, db, 1, false, Product{Name: "Hidden Item", Category: "Snacks", Price: 100})
	stock(t, db, 2, true, Product{Name: "Other Store Item", Category: "Snacks", Price: 300})

	catalog, err := service.GetStoreProducts(1, "", "")
	require.NoError(t, err)

	assert.Equal(t, uint(1), catalog.StoreID)
	assert.Len(t, catalog.Products, 3)
	assert.Equal(t, []string{"All", "Drinks", "General", "Snacks"}, catalog.Categories)
}

func TestGetStoreProductsAppliesPredicates(t *testing.T) {
	service, db := newTestService(t)

	stock(t, db, 1, true, Product{Name: "Salted Chips", Brand: "Crunchy Co", Category: "Snacks", Price: 250})
	stock(t, db, 1, true, Product{Name: "Cola", Brand: "ChipMunk Drinks", Category: "Drinks", Price: 180})

	catalog, err := service.GetStoreProducts(1, "chip", "Snacks")
	require.NoError(t, err)

	require.Len(t, catalog.Products, 1)
	assert.Equal(t, "Salted Chips", catalog.Products[0].Name)

	// The category picker always reflects the full collection
	assert.Equal(t, []string{"All", "Drinks", "Snacks"}, catalog.Categories)
}

func TestStoreProductAvailabilityPersists(t *testing.T) {
	service, db := newTestService(t)

	stock(t, db, 1, false, Product{Name: "Delisted Item", Category: "Snacks", Price: 100})

	var link StoreProduct
	require.NoError(t, db.First(&link).Error)
	assert.False(t, link.Available)

	catalog, err := service.GetStoreProducts(1, "", "")
	require.NoError(t, err)
	assert.Empty(t, catalog.Products)
}

func TestGetStoreProductsEmptyStore(t *testing.T) {
	service, _ := newTestService(t)

	catalog, err := service.GetStoreProducts(9, "", "")
	require.NoError(t, err)

	assert.Empty(t, catalog.Products)
	assert.Equal(t, []string{"All"}, catalog.Categories)
}

func TestGetProduct(t *testing.T) {
	service, db := newTestService(t)

	product := Product{Name: "Cola", Price: 180}
	require.NoError(t, db.Create(&product).Error)

	found, err := service.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cola", found.Name)

	_, err = service.GetProduct(404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
