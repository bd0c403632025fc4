// internal/domain/location/service.go
package location

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles location reference data
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new location service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// GetStates retrieves all states ordered by name
func (s *Service) GetStates() ([]State, error) {
	var states []State
	if err := s.db.Order("name ASC").Find(&states).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve states: %v", apperrors.ErrRemoteService, err)
	}
	return states, nil
}

// GetCities retrieves cities for a state ordered by name
func (s *Service) GetCities(stateID uint) ([]City, error) {
	var cities []City
	if err := s.db.Where("state_id = ?", stateID).Order("name ASC").Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve cities: %v", apperrors.ErrRemoteService, err)
	}
	return cities, nil
}

// GetStores retrieves stores for a city ordered by name
func (s *Service) GetStores(cityID uint) ([]Store, error) {
	var stores []Store
	if err := s.db.Where("city_id = ?", cityID).Order("name ASC").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve stores: %v", apperrors.ErrRemoteService, err)
	}
	return stores, nil
}

// GetStore retrieves a single store by ID
func (s *Service) GetStore(id uint) (*Store, error) {
	var store Store
	result := s.db.Where("id = ?", id).First(&store)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: store %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to retrieve store: %v", apperrors.ErrRemoteService, result.Error)
	}
	return &store, nil
}
