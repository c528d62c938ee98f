package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/marekkaras/budget-backend/internal/config"
	"github.com/marekkaras/budget-backend/internal/models"
	"github.com/marekkaras/budget-backend/internal/repository"
	"github.com/marekkaras/budget-backend/internal/service"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the services against an in-memory sqlite database
type testEnv struct {
	db         *gorm.DB
	users      *repository.UserRepository
	budgets    *repository.BudgetRepository
	categories *repository.CategoryRepository
	expenses   *repository.ExpenseRepository
	auth       *service.AuthService
	ledger     *service.LedgerService
	summary    *service.SummaryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// One shared in-memory database per test, named so parallel tests
	// never collide
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

	users := repository.NewUserRepository(db)
	budgets := repository.NewBudgetRepository(db)
	categories := repository.NewCategoryRepository(db)
	expenses := repository.NewExpenseRepository(db)

	return &testEnv{
		db:         db,
		users:      users,
		budgets:    budgets,
		categories: categories,
		expenses:   expenses,
		auth:       service.NewAuthService(users, config.JWTConfig{Secret: "test-secret", ExpireHours: 1}),
		ledger:     service.NewLedgerService(users, budgets, categories, expenses, nil),
		summary:    service.NewSummaryService(budgets, categories, expenses, nil, 0),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.auth.CreateUser(&service.CreateUserRequest{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test User",
		Password: "password",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createBudget(t *testing.T, username string, amount float64, ccy string, month, year int) *models.Budget {
	t.Helper()
	budget, err := e.ledger.UpsertBudget(context.Background(), &service.UpsertBudgetRequest{
		Username: username,
		Amount:   amount,
		BaseCcy:  ccy,
		Month:    month,
		Year:     year,
	})
	require.NoError(t, err)
	return budget
}
