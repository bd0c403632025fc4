// internal/domain/location/entity.go
package location

import (
	"time"
)

// State represents a state/province for onboarding store selection
type State struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Cities []City `gorm:"foreignKey:StateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"cities,omitempty"`
}

// City represents a city within a state
type City struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	StateID   uint      `gorm:"not null;index" json:"state_id"`
	CreatedAt time.Time `json:"created_at"`

	Stores []Store `gorm:"foreignKey:CityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"stores,omitempty"`
}

// Store represents a physical store a user shops from
type Store struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	CityID    uint      `gorm:"not null;index" json:"city_id"`
	Address   string    `gorm:"size:255" json:"address"`
	Image     string    `gorm:"size:500" json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (State) TableName() string { return "states" }
func (City) TableName() string  { return "cities" }
func (Store) TableName() string { return "stores" }
