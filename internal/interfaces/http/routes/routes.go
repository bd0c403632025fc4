// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every route group under the API prefix
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, cfg)
	SetupLocationRoutes(rg, db, cfg)
	SetupCatalogRoutes(rg, db, cfg)
	SetupBannerRoutes(rg, db, cfg)
	SetupCartRoutes(rg, db, cfg)
	SetupOrderRoutes(rg, db, cfg)
	SetupChatRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// Profile endpoints require authentication
	profile := rg.Group("/profile")
	profile.Use(middleware.AuthMiddleware(cfg))
	{
		profile.GET("", authHandler.GetProfile)
		profile.PUT("", authHandler.UpdateProfile)
	}
}

// SetupLocationRoutes sets up the state/city/store selection routes
func SetupLocationRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	locationHandler := handlers.NewLocationHandler(db, cfg)

	locations := rg.Group("/locations")
	{
		locations.GET("/states", locationHandler.GetStates)
		locations.GET("/states/:id/cities", locationHandler.GetCities)
		locations.GET("/cities/:id/stores", locationHandler.GetStores)
		locations.GET("/stores/:id", locationHandler.GetStore)
	}
}

// SetupCatalogRoutes sets up product browsing routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, cfg)

	stores := rg.Group("/stores")
	stores.Use(middleware.OptionalAuthMiddleware(cfg)) // Optional auth for personalization
	{
		stores.GET("/:id/products", catalogHandler.GetStoreProducts)
	}

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("/:id", catalogHandler.GetProduct)
	}
}

// SetupBannerRoutes sets up promotional banner routes
func SetupBannerRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	bannerHandler := handlers.NewBannerHandler(db, cfg)

	rg.GET("/banners", bannerHandler.GetBanners)
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg)) // All cart routes require authentication
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/stage", cartHandler.Stage)
		cart.POST("/commit", cartHandler.Commit)
		cart.PUT("/items/:id/decrement", cartHandler.DecrementCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}

// SetupOrderRoutes sets up purchase related routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg)) // All order routes require authentication
	{
		orders.GET("", orderHandler.GetOrders)
		orders.POST("", orderHandler.PlaceOrder)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/cancel", orderHandler.CancelOrder)
		orders.GET("/:id/receipt", orderHandler.GenerateReceipt)
	}
}

// SetupChatRoutes sets up support chat routes
func SetupChatRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	chatHandler := handlers.NewChatHandler(db, redisClient, cfg)

	chat := rg.Group("/chat")
	chat.Use(middleware.AuthMiddleware(cfg)) // All chat routes require authentication
	{
		chat.POST("/conversations", chatHandler.OpenConversation)
		chat.POST("/conversations/:id/close", chatHandler.CloseConversation)
		chat.GET("/conversations/:id/messages", chatHandler.GetMessages)
		chat.POST("/conversations/:id/messages", chatHandler.SendMessage)
		chat.GET("/conversations/:id/feed", chatHandler.StreamFeed)
	}
}
