package repository

import (
	"errors"

	"github.com/marekkaras/budget-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// ExpenseRepository handles expense data access
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create creates a new expense
func (r *ExpenseRepository) Create(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

// GetByUUID retrieves the expense row with the highest internal id for the
// given UUID
func (r *ExpenseRepository) GetByUUID(uuid string) (*models.Expense, error) {
	var expense models.Expense
	result := r.db.Where("uuid = ?", uuid).Order("id DESC").First(&expense)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return &expense, nil
}

// GetByCategoryUUID retrieves expenses recorded against a category, capped
// at limit rows
func (r *ExpenseRepository) GetByCategoryUUID(categoryUUID string, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	result := r.db.Where("category_uuid = ?", categoryUUID).Order("id ASC").Limit(limit).Find(&expenses)
	return expenses, result.Error
}

// GetByBudgetUUID retrieves all expenses under a budget, capped at limit rows
func (r *ExpenseRepository) GetByBudgetUUID(budgetUUID string, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	result := r.db.Where("budget_uuid = ?", budgetUUID).Order("id ASC").Limit(limit).Find(&expenses)
	return expenses, result.Error
}

// DeleteByUUID deletes an expense by UUID and reports how many rows were
// removed
func (r *ExpenseRepository) DeleteByUUID(uuid string) (int64, error) {
	result := r.db.Where("uuid = ?", uuid).Delete(&models.Expense{})
	return result.RowsAffected, result.Error
}

// DeleteByBudgetUUID deletes all expenses under a budget
func (r *ExpenseRepository) DeleteByBudgetUUID(budgetUUID string) (int64, error) {
	result := r.db.Where("budget_uuid = ?", budgetUUID).Delete(&models.Expense{})
	return result.RowsAffected, result.Error
}
