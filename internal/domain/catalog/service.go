// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles catalog queries
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// StoreCatalog is the product collection for one store plus its derived
// category picker. Filtering predicates are applied in memory so that a
// category or search change never re-queries the store's collection.
type StoreCatalog struct {
	StoreID    uint      `json:"store_id"`
	Products   []Product `json:"products"`
	Categories []string  `json:"categories"`
}

// GetStoreProducts retrieves the products sold in a store, with the
// search/category predicates of the catalog screen applied
func (s *Service) GetStoreProducts(storeID uint, searchText, selectedCategory string) (*StoreCatalog, error) {
	products, err := s.loadStoreProducts(storeID)
	if err != nil {
		return nil, err
	}

	categories := CategoriesOf(products)

	if selectedCategory == "" {
		selectedCategory = CategoryAll
	}
	filtered := Filter(products, searchText, selectedCategory)

	return &StoreCatalog{
		StoreID:    storeID,
		Products:   filtered,
		Categories: categories,
	}, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to retrieve product: %v", apperrors.ErrRemoteService, result.Error)
	}
	return &product, nil
}

func (s *Service) loadStoreProducts(storeID uint) ([]Product, error) {
	var links []StoreProduct
	err := s.db.Preload("Product").
		Where("store_id = ? AND available = ?", storeID, true).
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve store products: %v", apperrors.ErrRemoteService, err)
	}

	products := make([]Product, 0, len(links))
	for i := range links {
		products = append(products, links[i].Product)
	}
	return products, nil
}
