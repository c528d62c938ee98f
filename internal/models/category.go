package models

import (
	"time"

	"gorm.io/gorm"
)

// Category represents a spending category allocated against a budget.
// BaseCcy is copied from the owning budget at allocation time. The pair
// (BudgetUUID, Name) identifies a category for upsert purposes.
type Category struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UUID       string         `gorm:"size:36;index;not null" json:"uuid"`
	BudgetUUID string         `gorm:"size:36;index;not null" json:"uuid_budget"`
	Name       string         `gorm:"size:100;not null" json:"category_name"`
	Amount     float64        `gorm:"type:decimal(20,8);not null" json:"amount"`
	BaseCcy    string         `gorm:"size:10;not null" json:"base_ccy"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}
