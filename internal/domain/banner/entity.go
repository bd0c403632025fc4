// internal/domain/banner/entity.go
package banner

import "time"

// Banner represents a promotional banner shown in the home carousel
type Banner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Image     string    `gorm:"not null;size:500" json:"image"`
	Link      string    `gorm:"size:500" json:"link"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	IsActive  bool      `json:"is_active"` // Set explicitly on create; a default tag would swallow false
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Banner) TableName() string {
	return "banners"
}
