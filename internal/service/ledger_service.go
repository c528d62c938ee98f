package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marekkaras/budget-backend/internal/cache"
	"github.com/marekkaras/budget-backend/internal/currency"
	"github.com/marekkaras/budget-backend/internal/models"
	"github.com/marekkaras/budget-backend/internal/repository"
)

// DefaultRowLimit caps how many rows a single list or traversal pulls per
// level. Exceeding it truncates silently; callers must treat it as a soft
// ceiling, not an error.
const DefaultRowLimit = 1000

// LedgerService owns the budget/category/expense rules: idempotent upserts
// by logical identity, the allocation guard, currency normalization at
// expense insertion and cascade deletes at the budget level.
type LedgerService struct {
	userRepo     *repository.UserRepository
	budgetRepo   *repository.BudgetRepository
	categoryRepo *repository.CategoryRepository
	expenseRepo  *repository.ExpenseRepository
	summaryCache *cache.SummaryCache
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	userRepo *repository.UserRepository,
	budgetRepo *repository.BudgetRepository,
	categoryRepo *repository.CategoryRepository,
	expenseRepo *repository.ExpenseRepository,
	summaryCache *cache.SummaryCache,
) *LedgerService {
	return &LedgerService{
		userRepo:     userRepo,
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		summaryCache: summaryCache,
	}
}

// UpsertBudgetRequest represents the add-budget request
type UpsertBudgetRequest struct {
	Username string  `json:"username" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	BaseCcy  string  `json:"base_ccy" binding:"required,min=3,max=5"`
	Month    int     `json:"month" binding:"required,min=1,max=12"`
	Year     int     `json:"year" binding:"required,min=1970"`
}

// AllocateCategoryRequest represents the allocate-category request
type AllocateCategoryRequest struct {
	Username   string  `json:"username" binding:"required"`
	BudgetUUID string  `json:"uuid_budget" binding:"required"`
	Name       string  `json:"category_name" binding:"required"`
	Amount     float64 `json:"amount" binding:"gte=0"`
}

// UpdateCategoryRequest represents the update-category request
type UpdateCategoryRequest struct {
	UUID   string  `json:"uuid"`
	Name   string  `json:"category_name" binding:"required"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

// AddExpenseRequest represents the add-expense request
type AddExpenseRequest struct {
	BudgetUUID   string  `json:"uuid_budget" binding:"required"`
	CategoryUUID string  `json:"uuid_category" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	BaseCcy      string  `json:"base_ccy" binding:"required,min=3,max=5"`
	ExchangeRate float64 `json:"exchange_rate" binding:"gte=0"`
}

// UpsertBudget creates or replaces the budget identified by
// (username, month, year). An existing logical budget keeps its UUID and has
// amount and currency overwritten in place. Either way the default
// categories are ensured afterwards.
func (s *LedgerService) UpsertBudget(ctx context.Context, req *UpsertBudgetRequest) (*models.Budget, error) {
	if _, err := s.userRepo.GetByUsername(req.Username); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.GetByUserMonthYear(req.Username, req.Month, req.Year)
	switch {
	case err == nil:
		budget.Amount = req.Amount
		budget.BaseCcy = currency.Code(req.BaseCcy)
		if err := s.budgetRepo.Update(budget); err != nil {
			return nil, err
		}
	case errors.Is(err, repository.ErrBudgetNotFound):
		budget = &models.Budget{
			UUID:     uuid.New().String(),
			Username: req.Username,
			Amount:   req.Amount,
			BaseCcy:  currency.Code(req.BaseCcy),
			Month:    req.Month,
			Year:     req.Year,
		}
		if err := s.budgetRepo.Create(budget); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.ensureDefaultCategories(ctx, budget); err != nil {
		return nil, err
	}

	s.summaryCache.InvalidateBudget(ctx, budget.UUID, budget.Username)
	return budget, nil
}

// ensureDefaultCategories upserts the default category set with zero
// amount. The call is unconditional and idempotent.
func (s *LedgerService) ensureDefaultCategories(ctx context.Context, budget *models.Budget) error {
	for _, name := range models.DefaultCategories {
		_, err := s.UpsertCategory(ctx, &AllocateCategoryRequest{
			Username:   budget.Username,
			BudgetUUID: budget.UUID,
			Name:       name,
			Amount:     0,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteBudget removes every row sharing the budget UUID, then cascades to
// its categories and expenses. Each step commits independently.
func (s *LedgerService) DeleteBudget(ctx context.Context, budgetUUID string) error {
	budget, err := s.budgetRepo.GetMostRecentByUUID(budgetUUID)
	if err != nil {
		if errors.Is(err, repository.ErrBudgetNotFound) {
			return ErrNothingToDelete
		}
		return err
	}

	if _, err := s.budgetRepo.DeleteByUUID(budgetUUID); err != nil {
		return err
	}
	if _, err := s.categoryRepo.DeleteByBudgetUUID(budgetUUID); err != nil {
		return err
	}
	if _, err := s.expenseRepo.DeleteByBudgetUUID(budgetUUID); err != nil {
		return err
	}

	s.summaryCache.InvalidateBudget(ctx, budgetUUID, budget.Username)
	return nil
}

// ListBudgets returns all budget rows for a user, historical rows included
func (s *LedgerService) ListBudgets(ctx context.Context, username string) ([]models.Budget, error) {
	if _, err := s.userRepo.GetByUsername(username); err != nil {
		return nil, err
	}
	return s.budgetRepo.GetByUsername(username)
}

// MostRecentBudgets returns one entry per distinct budget UUID, each being
// the latest revision
func (s *LedgerService) MostRecentBudgets(ctx context.Context, username string) ([]models.Budget, error) {
	if _, err := s.userRepo.GetByUsername(username); err != nil {
		return nil, err
	}
	return s.budgetRepo.GetMostRecentByUsername(username)
}

// UpsertCategory allocates a category under a budget. An existing
// (budget, name) pair is renamed/kept and returned with its amount
// untouched; a new allocation is checked against the budget's unallocated
// remainder first.
func (s *LedgerService) UpsertCategory(ctx context.Context, req *AllocateCategoryRequest) (*models.Category, error) {
	budget, err := s.budgetRepo.GetMostRecentByUserAndUUID(req.Username, req.BudgetUUID)
	if err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.GetByBudgetAndName(budget.UUID, req.Name)
	switch {
	case err == nil:
		existing.Name = req.Name
		if err := s.categoryRepo.Update(existing); err != nil {
			return nil, err
		}
		s.summaryCache.InvalidateBudget(ctx, budget.UUID, budget.Username)
		return existing, nil
	case errors.Is(err, repository.ErrCategoryNotFound):
		// fall through to the allocation path
	default:
		return nil, err
	}

	allocated, err := s.categoryRepo.SumAmountByBudgetUUID(budget.UUID)
	if err != nil {
		return nil, err
	}
	remaining := budget.Amount - allocated
	if req.Amount > remaining {
		return nil, &InsufficientBudgetError{Requested: req.Amount, Remaining: remaining}
	}

	category := &models.Category{
		UUID:       uuid.New().String(),
		BudgetUUID: budget.UUID,
		Name:       req.Name,
		Amount:     req.Amount,
		BaseCcy:    budget.BaseCcy,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	s.summaryCache.InvalidateBudget(ctx, budget.UUID, budget.Username)
	return category, nil
}

// UpdateCategory overwrites a category's name and amount unconditionally.
// The new amount is not re-checked against the budget's remainder.
func (s *LedgerService) UpdateCategory(ctx context.Context, req *UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetMostRecentByUUID(req.UUID)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Amount = req.Amount
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	s.invalidateForBudget(ctx, category.BudgetUUID)
	return category, nil
}

// ListCategories returns the categories under a budget
func (s *LedgerService) ListCategories(ctx context.Context, budgetUUID string) ([]models.Category, error) {
	return s.categoryRepo.GetByBudgetUUID(budgetUUID, DefaultRowLimit)
}

// DeleteCategory removes a single category. Its expenses are not cascaded.
func (s *LedgerService) DeleteCategory(ctx context.Context, categoryUUID string) error {
	category, err := s.categoryRepo.GetMostRecentByUUID(categoryUUID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrNothingToRemove
		}
		return err
	}

	if _, err := s.categoryRepo.DeleteByUUID(categoryUUID); err != nil {
		return err
	}

	s.invalidateForBudget(ctx, category.BudgetUUID)
	return nil
}

// AddExpense records an expense against a category. The amount is
// normalized into the budget currency: a caller-supplied exchange rate only
// applies when the expense currency differs from the budget's.
func (s *LedgerService) AddExpense(ctx context.Context, req *AddExpenseRequest) (*models.Expense, error) {
	budget, err := s.budgetRepo.GetMostRecentByUUID(req.BudgetUUID)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.GetMostRecentByUUID(req.CategoryUUID)
	if err != nil {
		return nil, err
	}

	expenseCcy := currency.Code(req.BaseCcy)
	expense := &models.Expense{
		UUID:         uuid.New().String(),
		BudgetUUID:   budget.UUID,
		CategoryUUID: category.UUID,
		Date:         req.Date,
		Name:         req.Name,
		Amount:       req.Amount,
		BaseCcy:      expenseCcy,
		ExchangeRate: req.ExchangeRate,
		BudgetCcy:    budget.BaseCcy,
		BudgetAmount: currency.Normalize(req.Amount, expenseCcy, budget.BaseCcy, req.ExchangeRate),
	}
	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	s.summaryCache.InvalidateBudget(ctx, budget.UUID, budget.Username)
	return expense, nil
}

// DeleteExpense removes a single expense
func (s *LedgerService) DeleteExpense(ctx context.Context, expenseUUID string) error {
	expense, err := s.expenseRepo.GetByUUID(expenseUUID)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return ErrNothingToRemove
		}
		return err
	}

	if _, err := s.expenseRepo.DeleteByUUID(expenseUUID); err != nil {
		return err
	}

	s.invalidateForBudget(ctx, expense.BudgetUUID)
	return nil
}

// invalidateForBudget drops cached summaries for a budget, resolving the
// owner for the per-user keys when the budget still exists
func (s *LedgerService) invalidateForBudget(ctx context.Context, budgetUUID string) {
	if budget, err := s.budgetRepo.GetMostRecentByUUID(budgetUUID); err == nil {
		s.summaryCache.InvalidateBudget(ctx, budgetUUID, budget.Username)
		return
	}
	s.summaryCache.Invalidate(ctx,
		cache.KeyBudgetDetail+budgetUUID,
		cache.KeyBudgetStats+budgetUUID,
	)
}
