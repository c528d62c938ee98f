package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense represents a single recorded expense. It carries both the raw
// amount in its own currency and BudgetAmount, the amount normalized into
// the owning budget's currency at insertion time.
type Expense struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         string         `gorm:"size:36;index;not null" json:"uuid"`
	BudgetUUID   string         `gorm:"size:36;index;not null" json:"uuid_budget"`
	CategoryUUID string         `gorm:"size:36;index;not null" json:"uuid_category"`
	Date         string         `gorm:"size:30" json:"date"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Amount       float64        `gorm:"type:decimal(20,8);not null" json:"amount"`
	BaseCcy      string         `gorm:"size:10;not null" json:"base_ccy"`
	ExchangeRate float64        `gorm:"type:decimal(20,8);default:1" json:"exchange_rate"`
	BudgetCcy    string         `gorm:"size:10;not null" json:"budget_ccy"`
	BudgetAmount float64        `gorm:"type:decimal(20,8);not null" json:"budget_amount"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Expense model
func (Expense) TableName() string {
	return "expenses"
}
