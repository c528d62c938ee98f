package repository

import (
	"errors"

	"github.com/marekkaras/budget-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
)

// BudgetRepository handles budget data access
type BudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Create creates a new budget row
func (r *BudgetRepository) Create(budget *models.Budget) error {
	return r.db.Create(budget).Error
}

// Update saves an existing budget row in place
func (r *BudgetRepository) Update(budget *models.Budget) error {
	return r.db.Save(budget).Error
}

// GetByUserMonthYear retrieves the latest budget row for the exact
// (username, month, year) triple
func (r *BudgetRepository) GetByUserMonthYear(username string, month, year int) (*models.Budget, error) {
	var budget models.Budget
	result := r.db.Where("username = ? AND month = ? AND year = ?", username, month, year).
		Order("id DESC").
		First(&budget)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return &budget, nil
}

// GetMostRecentByUUID retrieves the budget row with the highest internal id
// among rows sharing the given UUID
func (r *BudgetRepository) GetMostRecentByUUID(uuid string) (*models.Budget, error) {
	var budget models.Budget
	result := r.db.Where("uuid = ?", uuid).Order("id DESC").First(&budget)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return &budget, nil
}

// GetMostRecentByUserAndUUID retrieves the latest budget row matching both
// the username and the UUID
func (r *BudgetRepository) GetMostRecentByUserAndUUID(username, uuid string) (*models.Budget, error) {
	var budget models.Budget
	result := r.db.Where("username = ? AND uuid = ?", username, uuid).Order("id DESC").First(&budget)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return &budget, nil
}

// GetByUsername retrieves all budget rows for a user, historical rows
// included, in insertion order
func (r *BudgetRepository) GetByUsername(username string) ([]models.Budget, error) {
	var budgets []models.Budget
	result := r.db.Where("username = ?", username).Order("id ASC").Find(&budgets)
	return budgets, result.Error
}

// GetMostRecentByUsername collapses a user's budget rows by UUID, keeping
// for each UUID only the row with the highest internal id
func (r *BudgetRepository) GetMostRecentByUsername(username string) ([]models.Budget, error) {
	rows, err := r.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]models.Budget)
	var order []string
	for _, b := range rows {
		if _, seen := latest[b.UUID]; !seen {
			order = append(order, b.UUID)
		}
		if b.ID >= latest[b.UUID].ID {
			latest[b.UUID] = b
		}
	}

	budgets := make([]models.Budget, 0, len(order))
	for _, uuid := range order {
		budgets = append(budgets, latest[uuid])
	}
	return budgets, nil
}

// DeleteByUUID deletes all budget rows sharing the UUID and reports how
// many rows were removed
func (r *BudgetRepository) DeleteByUUID(uuid string) (int64, error) {
	result := r.db.Where("uuid = ?", uuid).Delete(&models.Budget{})
	return result.RowsAffected, result.Error
}
