package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/marekkaras/budget-backend/internal/cache"
	"github.com/marekkaras/budget-backend/internal/repository"
	"github.com/marekkaras/budget-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// attachCache rebuilds the env's services on top of a redis-backed summary
// cache so the read-through and invalidation paths are live
func attachCache(t *testing.T, env *testEnv) *miniredis.Miniredis {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	c := cache.NewSummaryCache(client, time.Minute)
	env.ledger = service.NewLedgerService(env.users, env.budgets, env.categories, env.expenses, c)
	env.summary = service.NewSummaryService(env.budgets, env.categories, env.expenses, c, 0)
	return srv
}

func TestSummaryReadThroughServesCachedValue(t *testing.T) {
	env := newTestEnv(t)
	srv := attachCache(t, env)
	env.createUser(t, "alice")
	budget := env.createBudget(t, "alice", 1000, "USD", 1, 2024)

	detail, err := env.summary.BudgetDetail(context.Background(), budget.UUID)
	require.NoError(t, err)
	require.True(t, srv.Exists(cache.KeyBudgetDetail+budget.UUID))

	// Drop the budget rows behind the cache's back: the next read is a
	// cache hit and still serves the tree
	_, err = env.budgets.DeleteByUUID(budget.UUID)
	require.NoError(t, err)

	cached, err := env.summary.BudgetDetail(context.Background(), budget.UUID)
	require.NoError(t, err)
	assert.Equal(t, detail.UUID, cached.UUID)
	assert.Equal(t, detail.Amount, cached.Amount)

	// Once the key is gone the read falls through to storage
	srv.Del(cache.KeyBudgetDetail + budget.UUID)
	_, err = env.summary.BudgetDetail(context.Background(), budget.UUID)
	assert.ErrorIs(t, err, repository.ErrBudgetNotFound)
}

func TestLedgerWritesInvalidateSummaries(t *testing.T) {
	env := newTestEnv(t)
	srv := attachCache(t, env)
	env.createUser(t, "alice")
	budget := env.createBudget(t, "alice", 1000, "USD", 1, 2024)

	keys := []string{
		cache.KeyBudgetDetail + budget.UUID,
		cache.KeyBudgetStats + budget.UUID,
		cache.KeyUserHistory + "alice",
		cache.KeyUserCategorySummary + "alice",
	}
	prime := func() {
		_, err := env.summary.BudgetDetail(context.Background(), budget.UUID)
		require.NoError(t, err)
		_, err = env.summary.BudgetStats(context.Background(), budget.UUID)
		require.NoError(t, err)
		_, err = env.summary.UserHistory(context.Background(), "alice")
		require.NoError(t, err)
		_, err = env.summary.CategorySummary(context.Background(), "alice")
		require.NoError(t, err)
		for _, key := range keys {
			require.True(t, srv.Exists(key))
		}
	}

	prime()
	_, err := env.ledger.UpsertCategory(context.Background(), &service.AllocateCategoryRequest{
		Username:   "alice",
		BudgetUUID: budget.UUID,
		Name:       "Rent",
		Amount:     100,
	})
	require.NoError(t, err)
	for _, key := range keys {
		assert.False(t, srv.Exists(key))
	}

	food, err := env.categories.GetByBudgetAndName(budget.UUID, "Food")
	require.NoError(t, err)

	prime()
	expense, err := env.ledger.AddExpense(context.Background(), &service.AddExpenseRequest{
		BudgetUUID:   budget.UUID,
		CategoryUUID: food.UUID,
		Date:         "2024-01-10",
		Name:         "groceries",
		Amount:       50,
		BaseCcy:      "USD",
	})
	require.NoError(t, err)
	for _, key := range keys {
		assert.False(t, srv.Exists(key))
	}

	prime()
	require.NoError(t, env.ledger.DeleteExpense(context.Background(), expense.UUID))
	for _, key := range keys {
		assert.False(t, srv.Exists(key))
	}

	prime()
	require.NoError(t, env.ledger.DeleteBudget(context.Background(), budget.UUID))
	for _, key := range keys {
		assert.False(t, srv.Exists(key))
	}
	_, err = env.summary.BudgetDetail(context.Background(), budget.UUID)
	assert.ErrorIs(t, err, repository.ErrBudgetNotFound)
}

func TestInvalidationFallsBackWhenBudgetRowsGone(t *testing.T) {
	env := newTestEnv(t)
	srv := attachCache(t, env)
	env.createUser(t, "alice")
	budget := env.createBudget(t, "alice", 1000, "USD", 1, 2024)

	food, err := env.categories.GetByBudgetAndName(budget.UUID, "Food")
	require.NoError(t, err)

	_, err = env.summary.BudgetDetail(context.Background(), budget.UUID)
	require.NoError(t, err)
	_, err = env.summary.BudgetStats(context.Background(), budget.UUID)
	require.NoError(t, err)
	require.True(t, srv.Exists(cache.KeyBudgetDetail+budget.UUID))
	require.True(t, srv.Exists(cache.KeyBudgetStats+budget.UUID))

	// Budget rows vanish without an invalidation; deleting the orphaned
	// category can no longer resolve the owner but must still drop the
	// budget-scoped keys
	_, err = env.budgets.DeleteByUUID(budget.UUID)
	require.NoError(t, err)

	require.NoError(t, env.ledger.DeleteCategory(context.Background(), food.UUID))
	assert.False(t, srv.Exists(cache.KeyBudgetDetail+budget.UUID))
	assert.False(t, srv.Exists(cache.KeyBudgetStats+budget.UUID))
}
