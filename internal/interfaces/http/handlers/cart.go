// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService    *cart.Service
	catalogService *catalog.Service
	config         *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService:    cart.NewService(db, cfg),
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// StageRequest adjusts a product's pending quantity before a commit
type StageRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Delta     int  `json:"delta" binding:"required"`
}

// CommitRequest pushes a staged quantity into the persistent cart
type CommitRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	StoreID   uint `json:"store_id" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	cartResponse, err := h.cartService.GetCart(userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse,
	})
}

// Stage handles POST /cart/stage
func (h *CartHandler) Stage(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	pending := h.cartService.Staging().StageDelta(userID, req.ProductID, req.Delta)

	c.JSON(http.StatusOK, gin.H{
		"message": "Pending quantity updated",
		"data": gin.H{
			"product_id":       req.ProductID,
			"pending_quantity": pending,
		},
	})
}

// Commit handles POST /cart/commit
func (h *CartHandler) Commit(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.GetProduct(req.ProductID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": "Product not found",
		})
		return
	}

	result, err := h.cartService.Commit(userID, product, req.StoreID)
	if err != nil {
		// The staged quantity was restored; the client can retry the commit
		c.JSON(statusFor(err), gin.H{
			"error": "Failed to add item to cart",
			"data":  result,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    result,
	})
}

// DecrementCartItem handles PUT /cart/items/:id/decrement
func (h *CartHandler) DecrementCartItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	lineID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart item ID",
		})
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.cartService.Decrement(userID, uint(lineID), req.Quantity); err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.GetCart(userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartResponse,
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	lineID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart item ID",
		})
		return
	}

	if err := h.cartService.Remove(userID, uint(lineID)); err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
	})
}
