package models

import (
	"time"

	"gorm.io/gorm"
)

// Budget represents a monthly budget allocation for a user.
// The numeric ID is internal; UUID is the stable external handle. A logical
// budget is identified by (username, month, year) and keeps its UUID across
// re-submissions. When several rows share a UUID the one with the highest ID
// is the current revision.
type Budget struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UUID      string         `gorm:"size:36;index;not null" json:"uuid"`
	Username  string         `gorm:"size:50;index;not null" json:"username"`
	Amount    float64        `gorm:"type:decimal(20,8);not null" json:"amount"`
	BaseCcy   string         `gorm:"size:10;not null" json:"base_ccy"`
	Month     int            `gorm:"not null" json:"month"`
	Year      int            `gorm:"not null" json:"year"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Budget model
func (Budget) TableName() string {
	return "budgets"
}

// DefaultCategories are created with zero amount under every budget
var DefaultCategories = []string{"Bills", "Food", "Entertainment", "Travel"}
