package repository

import (
	"errors"

	"github.com/marekkaras/budget-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository handles category data access
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update saves an existing category in place
func (r *CategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// GetMostRecentByUUID retrieves the category row with the highest internal
// id for the given UUID
func (r *CategoryRepository) GetMostRecentByUUID(uuid string) (*models.Category, error) {
	var category models.Category
	result := r.db.Where("uuid = ?", uuid).Order("id DESC").First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return &category, nil
}

// GetByBudgetAndName retrieves a category by its upsert identity
// (budget UUID, name)
func (r *CategoryRepository) GetByBudgetAndName(budgetUUID, name string) (*models.Category, error) {
	var category models.Category
	result := r.db.Where("budget_uuid = ? AND name = ?", budgetUUID, name).
		Order("id DESC").
		First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return &category, nil
}

// GetByBudgetUUID retrieves categories under a budget, capped at limit rows
func (r *CategoryRepository) GetByBudgetUUID(budgetUUID string, limit int) ([]models.Category, error) {
	var categories []models.Category
	result := r.db.Where("budget_uuid = ?", budgetUUID).Order("id ASC").Limit(limit).Find(&categories)
	return categories, result.Error
}

// SumAmountByBudgetUUID returns the total amount already allocated to
// categories under a budget
func (r *CategoryRepository) SumAmountByBudgetUUID(budgetUUID string) (float64, error) {
	var total float64
	err := r.db.Model(&models.Category{}).
		Where("budget_uuid = ?", budgetUUID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// DeleteByUUID deletes a category by UUID and reports how many rows were
// removed. Expenses referencing it are left untouched.
func (r *CategoryRepository) DeleteByUUID(uuid string) (int64, error) {
	result := r.db.Where("uuid = ?", uuid).Delete(&models.Category{})
	return result.RowsAffected, result.Error
}

// DeleteByBudgetUUID deletes all categories under a budget
func (r *CategoryRepository) DeleteByBudgetUUID(budgetUUID string) (int64, error) {
	result := r.db.Where("budget_uuid = ?", budgetUUID).Delete(&models.Category{})
	return result.RowsAffected, result.Error
}
