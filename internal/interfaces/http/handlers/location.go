// internal/interfaces/http/handlers/location.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/location"
	"gorm.io/gorm"
)

// LocationHandler handles the state/city/store selection endpoints
type LocationHandler struct {
	locationService *location.Service
	config          *config.Config
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(db *gorm.DB, cfg *config.Config) *LocationHandler {
	return &LocationHandler{
		locationService: location.NewService(db, cfg),
		config:          cfg,
	}
}

// GetStates handles GET /locations/states
func (h *LocationHandler) GetStates(c *gin.Context) {
	states, err := h.locationService.GetStates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve states",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "States retrieved successfully",
		"data":    states,
	})
}

// GetCities handles GET /locations/states/:id/cities
func (h *LocationHandler) GetCities(c *gin.Context) {
	stateID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid state ID",
		})
		return
	}

	cities, err := h.locationService.GetCities(uint(stateID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cities",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cities retrieved successfully",
		"data":    cities,
	})
}

// GetStores handles GET /locations/cities/:id/stores
func (h *LocationHandler) GetStores(c *gin.Context) {
	cityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid city ID",
		})
		return
	}

	stores, err := h.locationService.GetStores(uint(cityID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stores",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stores retrieved successfully",
		"data":    stores,
	})
}

// GetStore handles GET /locations/stores/:id
func (h *LocationHandler) GetStore(c *gin.Context) {
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	store, err := h.locationService.GetStore(uint(storeID))
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": "Store not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store retrieved successfully",
		"data":    store,
	})
}
