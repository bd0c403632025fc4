// internal/domain/banner/service.go
package banner

import (
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles banner retrieval
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new banner service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// GetBanners retrieves active banners in display order
func (s *Service) GetBanners() ([]Banner, error) {
	var banners []Banner
	err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&banners).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve banners: %v", apperrors.ErrRemoteService, err)
	}
	return banners, nil
}
