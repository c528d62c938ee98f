package service

import (
	"context"

	"github.com/marekkaras/budget-backend/internal/cache"
	"github.com/marekkaras/budget-backend/internal/models"
	"github.com/marekkaras/budget-backend/internal/repository"
)

// SummaryService builds read-only aggregate views over the ledger: the
// budget tree, per-category spent/remaining stats and the per-user
// rollups. Views are computed fresh from storage and optionally cached.
type SummaryService struct {
	budgetRepo   *repository.BudgetRepository
	categoryRepo *repository.CategoryRepository
	expenseRepo  *repository.ExpenseRepository
	summaryCache *cache.SummaryCache
	rowLimit     int
}

// NewSummaryService creates a new SummaryService. rowLimit caps the rows
// fetched per traversal level; zero or negative selects the default.
func NewSummaryService(
	budgetRepo *repository.BudgetRepository,
	categoryRepo *repository.CategoryRepository,
	expenseRepo *repository.ExpenseRepository,
	summaryCache *cache.SummaryCache,
	rowLimit int,
) *SummaryService {
	if rowLimit <= 0 {
		rowLimit = DefaultRowLimit
	}
	return &SummaryService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		summaryCache: summaryCache,
		rowLimit:     rowLimit,
	}
}

// BudgetDetail resolves the most recent revision of a budget and attaches
// every category under it and every expense under each category. Levels
// exceeding the row limit are truncated silently.
func (s *SummaryService) BudgetDetail(ctx context.Context, budgetUUID string) (*models.BudgetDetail, error) {
	var cached models.BudgetDetail
	if s.summaryCache.Get(ctx, cache.KeyBudgetDetail+budgetUUID, &cached) {
		return &cached, nil
	}

	budget, err := s.budgetRepo.GetMostRecentByUUID(budgetUUID)
	if err != nil {
		return nil, err
	}

	detail, err := s.buildDetail(budget)
	if err != nil {
		return nil, err
	}

	s.summaryCache.Set(ctx, cache.KeyBudgetDetail+budgetUUID, detail)
	return detail, nil
}

// BudgetStats is the same traversal as BudgetDetail with each category's
// expense list replaced by spent and remaining, both in the budget
// currency. No conversion happens here: expenses were normalized at
// insertion time.
func (s *SummaryService) BudgetStats(ctx context.Context, budgetUUID string) (*models.BudgetStats, error) {
	var cached models.BudgetStats
	if s.summaryCache.Get(ctx, cache.KeyBudgetStats+budgetUUID, &cached) {
		return &cached, nil
	}

	budget, err := s.budgetRepo.GetMostRecentByUUID(budgetUUID)
	if err != nil {
		return nil, err
	}

	stats, err := s.buildStats(budget)
	if err != nil {
		return nil, err
	}

	s.summaryCache.Set(ctx, cache.KeyBudgetStats+budgetUUID, stats)
	return stats, nil
}

// UserHistory builds a detail tree for every budget row the user has.
// Historical rows are not deduplicated by UUID, so a re-submitted budget
// appears once per revision.
func (s *SummaryService) UserHistory(ctx context.Context, username string) ([]models.BudgetDetail, error) {
	var cached []models.BudgetDetail
	if s.summaryCache.Get(ctx, cache.KeyUserHistory+username, &cached) {
		return cached, nil
	}

	rows, err := s.budgetRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	history := make([]models.BudgetDetail, 0, len(rows))
	for i := range rows {
		detail, err := s.buildDetail(&rows[i])
		if err != nil {
			return nil, err
		}
		history = append(history, *detail)
	}

	s.summaryCache.Set(ctx, cache.KeyUserHistory+username, history)
	return history, nil
}

// CategorySummary mirrors UserHistory with stats per budget row instead of
// expense lists
func (s *SummaryService) CategorySummary(ctx context.Context, username string) ([]models.BudgetStats, error) {
	var cached []models.BudgetStats
	if s.summaryCache.Get(ctx, cache.KeyUserCategorySummary+username, &cached) {
		return cached, nil
	}

	rows, err := s.budgetRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	summary := make([]models.BudgetStats, 0, len(rows))
	for i := range rows {
		stats, err := s.buildStats(&rows[i])
		if err != nil {
			return nil, err
		}
		summary = append(summary, *stats)
	}

	s.summaryCache.Set(ctx, cache.KeyUserCategorySummary+username, summary)
	return summary, nil
}

func (s *SummaryService) buildDetail(budget *models.Budget) (*models.BudgetDetail, error) {
	categories, err := s.categoryRepo.GetByBudgetUUID(budget.UUID, s.rowLimit)
	if err != nil {
		return nil, err
	}

	detail := &models.BudgetDetail{
		UUID:       budget.UUID,
		Username:   budget.Username,
		Amount:     budget.Amount,
		BaseCcy:    budget.BaseCcy,
		Month:      budget.Month,
		Year:       budget.Year,
		Categories: make([]models.CategoryDetail, 0, len(categories)),
	}

	for _, category := range categories {
		expenses, err := s.expenseRepo.GetByCategoryUUID(category.UUID, s.rowLimit)
		if err != nil {
			return nil, err
		}

		views := make([]models.ExpenseView, 0, len(expenses))
		for _, e := range expenses {
			views = append(views, models.ExpenseView{
				UUID:         e.UUID,
				Date:         e.Date,
				Name:         e.Name,
				Amount:       e.Amount,
				BaseCcy:      e.BaseCcy,
				ExchangeRate: e.ExchangeRate,
				BudgetCcy:    e.BudgetCcy,
				BudgetAmount: e.BudgetAmount,
			})
		}

		detail.Categories = append(detail.Categories, models.CategoryDetail{
			UUID:     category.UUID,
			Name:     category.Name,
			Amount:   category.Amount,
			BaseCcy:  category.BaseCcy,
			Expenses: views,
		})
	}

	return detail, nil
}

func (s *SummaryService) buildStats(budget *models.Budget) (*models.BudgetStats, error) {
	categories, err := s.categoryRepo.GetByBudgetUUID(budget.UUID, s.rowLimit)
	if err != nil {
		return nil, err
	}

	stats := &models.BudgetStats{
		UUID:       budget.UUID,
		Username:   budget.Username,
		Amount:     budget.Amount,
		BaseCcy:    budget.BaseCcy,
		Month:      budget.Month,
		Year:       budget.Year,
		Categories: make([]models.CategoryStats, 0, len(categories)),
	}

	for _, category := range categories {
		expenses, err := s.expenseRepo.GetByCategoryUUID(category.UUID, s.rowLimit)
		if err != nil {
			return nil, err
		}

		var spent float64
		for _, e := range expenses {
			spent += e.BudgetAmount
		}

		stats.Categories = append(stats.Categories, models.CategoryStats{
			UUID:      category.UUID,
			Name:      category.Name,
			Amount:    category.Amount,
			BaseCcy:   category.BaseCcy,
			Spent:     spent,
			Remaining: category.Amount - spent,
		})
	}

	return stats, nil
}
