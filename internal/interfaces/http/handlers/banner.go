// internal/interfaces/http/handlers/banner.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/banner"
	"gorm.io/gorm"
)

// BannerHandler handles promotional banner endpoints
type BannerHandler struct {
	bannerService *banner.Service
	config        *config.Config
}

// NewBannerHandler creates a new banner handler
func NewBannerHandler(db *gorm.DB, cfg *config.Config) *BannerHandler {
	return &BannerHandler{
		bannerService: banner.NewService(db, cfg),
		config:        cfg,
	}
}

// GetBanners handles GET /banners
func (h *BannerHandler) GetBanners(c *gin.Context) {
	banners, err := h.bannerService.GetBanners()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve banners",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Banners retrieved successfully",
		"data":    banners,
	})
}
