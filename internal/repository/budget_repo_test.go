package repository_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/marekkaras/budget-backend/internal/models"
	"github.com/marekkaras/budget-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Budget{},
		&models.Category{},
		&models.Expense{},
	))
	return db
}

func TestBudgetRecencyResolution(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewBudgetRepository(db)

	require.NoError(t, repo.Create(&models.Budget{UUID: "b-1", Username: "alice", Amount: 100, BaseCcy: "USD", Month: 1, Year: 2024}))
	require.NoError(t, repo.Create(&models.Budget{UUID: "b-1", Username: "alice", Amount: 200, BaseCcy: "USD", Month: 1, Year: 2024}))

	budget, err := repo.GetMostRecentByUUID("b-1")
	require.NoError(t, err)
	assert.Equal(t, 200.0, budget.Amount)

	budget, err = repo.GetMostRecentByUserAndUUID("alice", "b-1")
	require.NoError(t, err)
	assert.Equal(t, 200.0, budget.Amount)

	_, err = repo.GetMostRecentByUserAndUUID("bob", "b-1")
	assert.ErrorIs(t, err, repository.ErrBudgetNotFound)
}

func TestBudgetMostRecentPerUUIDKeepsFirstSeenOrder(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewBudgetRepository(db)

	require.NoError(t, repo.Create(&models.Budget{UUID: "b-1", Username: "alice", Amount: 100, BaseCcy: "USD", Month: 1, Year: 2024}))
	require.NoError(t, repo.Create(&models.Budget{UUID: "b-2", Username: "alice", Amount: 300, BaseCcy: "USD", Month: 2, Year: 2024}))
	require.NoError(t, repo.Create(&models.Budget{UUID: "b-1", Username: "alice", Amount: 150, BaseCcy: "USD", Month: 1, Year: 2024}))

	recent, err := repo.GetMostRecentByUsername("alice")
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "b-1", recent[0].UUID)
	assert.Equal(t, 150.0, recent[0].Amount)
	assert.Equal(t, "b-2", recent[1].UUID)
}

func TestBudgetDeleteByUUIDRemovesAllRevisions(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewBudgetRepository(db)

	require.NoError(t, repo.Create(&models.Budget{UUID: "b-1", Username: "alice", Amount: 100, BaseCcy: "USD", Month: 1, Year: 2024}))
	require.NoError(t, repo.Create(&models.Budget{UUID: "b-1", Username: "alice", Amount: 200, BaseCcy: "USD", Month: 1, Year: 2024}))

	rows, err := repo.DeleteByUUID("b-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, rows)

	budgets, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestCategorySumByBudget(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewCategoryRepository(db)

	require.NoError(t, repo.Create(&models.Category{UUID: "c-1", BudgetUUID: "b-1", Name: "Rent", Amount: 700, BaseCcy: "USD"}))
	require.NoError(t, repo.Create(&models.Category{UUID: "c-2", BudgetUUID: "b-1", Name: "Food", Amount: 100, BaseCcy: "USD"}))
	require.NoError(t, repo.Create(&models.Category{UUID: "c-3", BudgetUUID: "b-2", Name: "Rent", Amount: 999, BaseCcy: "USD"}))

	total, err := repo.SumAmountByBudgetUUID("b-1")
	require.NoError(t, err)
	assert.Equal(t, 800.0, total)

	// No categories at all sums to zero
	total, err = repo.SumAmountByBudgetUUID("b-404")
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestExpenseDeleteByBudgetUUID(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewExpenseRepository(db)

	require.NoError(t, repo.Create(&models.Expense{UUID: "e-1", BudgetUUID: "b-1", CategoryUUID: "c-1", Name: "a", Amount: 1, BaseCcy: "USD", BudgetCcy: "USD", BudgetAmount: 1}))
	require.NoError(t, repo.Create(&models.Expense{UUID: "e-2", BudgetUUID: "b-1", CategoryUUID: "c-2", Name: "b", Amount: 2, BaseCcy: "USD", BudgetCcy: "USD", BudgetAmount: 2}))
	require.NoError(t, repo.Create(&models.Expense{UUID: "e-3", BudgetUUID: "b-2", CategoryUUID: "c-3", Name: "c", Amount: 3, BaseCcy: "USD", BudgetCcy: "USD", BudgetAmount: 3}))

	rows, err := repo.DeleteByBudgetUUID("b-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, rows)

	left, err := repo.GetByBudgetUUID("b-2", 10)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
