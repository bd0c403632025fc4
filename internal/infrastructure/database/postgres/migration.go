// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/domain/banner"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/chat"
	"github.com/your-org/storefront-backend/internal/domain/location"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Reference data
		&location.State{},
		&location.City{},
		&location.Store{},

		// Accounts
		&user.User{},

		// Catalog
		&catalog.Product{},
		&catalog.StoreProduct{},
		&banner.Banner{},

		// Cart
		&cart.CartLine{},

		// Orders
		&order.Purchase{},
		&order.PurchaseItem{},

		// Support chat
		&chat.Conversation{},
		&chat.Message{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)",
		"CREATE INDEX IF NOT EXISTS idx_store_products_store ON store_products(store_id, product_id)",

		// Cart indexes: the natural-key unique index backs the upsert
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_lines_natural ON cart_items(user_id, product_id, store_id)",

		// Purchase indexes
		"CREATE INDEX IF NOT EXISTS idx_purchases_user_created ON purchases(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_items_purchase ON purchase_items(purchase_id)",

		// Chat indexes
		"CREATE INDEX IF NOT EXISTS idx_conversations_user_status ON conversations(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_messages_conversation_created ON messages(conversation_id, created_at)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds reference data for development environments
func (m *Migration) SeedInitialData() error {
	log.Println("🔄 Seeding initial data...")

	if err := m.seedLocations(); err != nil {
		return err
	}
	if err := m.seedCatalog(); err != nil {
		return err
	}
	if err := m.seedBanners(); err != nil {
		return err
	}
	if err := m.seedDemoUser(); err != nil {
		return err
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedLocations() error {
	var count int64
	m.db.Model(&location.State{}).Count(&count)
	if count > 0 {
		return nil
	}

	state := location.State{Name: "Riyadh Province"}
	if err := m.db.Create(&state).Error; err != nil {
		return fmt.Errorf("failed to seed states: %w", err)
	}

	city := location.City{Name: "Riyadh", StateID: state.ID}
	if err := m.db.Create(&city).Error; err != nil {
		return fmt.Errorf("failed to seed cities: %w", err)
	}

	stores := []location.Store{
		{Name: "Downtown Market", CityID: city.ID, Address: "12 King Fahd Rd"},
		{Name: "North Gate Market", CityID: city.ID, Address: "3 Olaya St"},
	}
	if err := m.db.Create(&stores).Error; err != nil {
		return fmt.Errorf("failed to seed stores: %w", err)
	}

	return nil
}

func (m *Migration) seedCatalog() error {
	var count int64
	m.db.Model(&catalog.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	products := []catalog.Product{
		{Name: "Potato Chips", Brand: "Crispy Co", Description: "Salted potato chips", Price: 450, Image: "/images/chips.png", Stock: 120, Category: "Snacks"},
		{Name: "Orange Juice", Brand: "Fresh Farms", Description: "1L fresh orange juice", Price: 900, Image: "/images/juice.png", Stock: 60, Category: "Beverages"},
		{Name: "Paper Towels", Brand: "HomeSoft", Description: "2-pack paper towels", Price: 750, Image: "/images/towels.png", Stock: 200},
	}
	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	var stores []location.Store
	if err := m.db.Find(&stores).Error; err != nil {
		return fmt.Errorf("failed to load stores for seeding: %w", err)
	}

	for _, st := range stores {
		for _, p := range products {
			link := catalog.StoreProduct{StoreID: st.ID, ProductID: p.ID, Available: true}
			if err := m.db.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to seed store products: %w", err)
			}
		}
	}

	return nil
}

func (m *Migration) seedBanners() error {
	var count int64
	m.db.Model(&banner.Banner{}).Count(&count)
	if count > 0 {
		return nil
	}

	banners := []banner.Banner{
		{Image: "/images/banner-welcome.png", SortOrder: 1, IsActive: true},
		{Image: "/images/banner-snacks.png", SortOrder: 2, IsActive: true},
	}
	if err := m.db.Create(&banners).Error; err != nil {
		return fmt.Errorf("failed to seed banners: %w", err)
	}

	return nil
}

func (m *Migration) seedDemoUser() error {
	var count int64
	m.db.Model(&user.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	demo := user.User{
		Email:    "demo@example.com",
		Password: string(hash),
		Name:     "Demo Shopper",
		Phone:    "+100000000",
		IsActive: true,
	}
	if err := m.db.Create(&demo).Error; err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	return nil
}
