package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/marekkaras/budget-backend/internal/middleware"
	"github.com/marekkaras/budget-backend/internal/repository"
	"github.com/marekkaras/budget-backend/internal/service"
	"github.com/marekkaras/budget-backend/pkg/response"
)

// BudgetHandler handles budget ledger API requests
type BudgetHandler struct {
	ledgerService *service.LedgerService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(ledgerService *service.LedgerService) *BudgetHandler {
	return &BudgetHandler{
		ledgerService: ledgerService,
	}
}

// ledgerError translates ledger outcomes into protocol-level errors
func ledgerError(c *gin.Context, err error) {
	var insufficient *service.InsufficientBudgetError
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		response.BadRequest(c, "Username doesnt exist in database")
	case errors.Is(err, service.ErrNothingToDelete):
		response.NotFound(c, "Nothing to delete")
	case errors.Is(err, service.ErrNothingToRemove):
		response.NotFound(c, "Nothing to remove")
	case errors.Is(err, repository.ErrBudgetNotFound):
		response.NotFound(c, "budget not found")
	case errors.Is(err, repository.ErrCategoryNotFound):
		response.NotFound(c, "category not found")
	case errors.Is(err, repository.ErrExpenseNotFound):
		response.NotFound(c, "expense not found")
	case errors.As(err, &insufficient):
		response.BadRequest(c, insufficient.Error())
	default:
		response.InternalError(c, err.Error())
	}
}

// UpsertBudget handles creating or replacing a monthly budget
// POST /api/v1/budgets
func (h *BudgetHandler) UpsertBudget(c *gin.Context) {
	var req service.UpsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	budget, err := h.ledgerService.UpsertBudget(c.Request.Context(), &req)
	if err != nil {
		ledgerError(c, err)
		return
	}

	response.Success(c, budget)
}

// DeleteBudget handles deleting a budget and everything tied to it
// DELETE /api/v1/budgets/:uuid
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.ledgerService.DeleteBudget(c.Request.Context(), c.Param("uuid")); err != nil {
		ledgerError(c, err)
		return
	}

	response.Message(c, "budget deleted")
}

// ListBudgets handles listing all budget rows for a user
// GET /api/v1/budgets/user/:username
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	budgets, err := h.ledgerService.ListBudgets(c.Request.Context(), c.Param("username"))
	if err != nil {
		ledgerError(c, err)
		return
	}

	response.Success(c, budgets)
}

// MostRecentBudgets handles listing the latest revision per budget UUID
// GET /api/v1/budgets/user/:username/recent
func (h *BudgetHandler) MostRecentBudgets(c *gin.Context) {
	budgets, err := h.ledgerService.MostRecentBudgets(c.Request.Context(), c.Param("username"))
	if err != nil {
		ledgerError(c, err)
		return
	}

	response.Success(c, budgets)
}

// AllocateCategory handles allocating a category against a budget
// POST /api/v1/categories
func (h *BudgetHandler) AllocateCategory(c *gin.Context) {
	var req service.AllocateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.ledgerService.UpsertCategory(c.Request.Context(), &req)
	if err != nil {
		ledgerError(c, err)
		return
	}

	response.Success(c, category)
}

// ListCategories handles listing the categories under a budget
// GET /api/v1/budgets/:uuid/categories
func (h *BudgetHandler) ListCategories(c *gin.Context) {
	categories, err := h.ledgerService.ListCategories(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		ledgerError(c, err)
		return
	}

	response.Success(c, categories)
}

// UpdateCategory handles overwriting a category's name and amount
// PUT /api/v1/categories/:uuid
func (h *BudgetHandler) UpdateCategory(c *gin.Context) {
	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.UUID = c.Param("uuid")

	category, err := h.ledgerService.UpdateCategory(c.Request.Context(), &req)
	if err != nil {
		ledgerError(c, err)
		return
	}

	response.Success(c, category)
}

// DeleteCategory handles removing a single category
// DELETE /api/v1/categories/:uuid
func (h *BudgetHandler) DeleteCategory(c *gin.Context) {
	if err := h.ledgerService.DeleteCategory(c.Request.Context(), c.Param("uuid")); err != nil {
		ledgerError(c, err)
		return
	}

	response.Message(c, "category removed")
}

// AddExpense handles recording an expense against a category
// POST /api/v1/expenses
func (h *BudgetHandler) AddExpense(c *gin.Context) {
	var req service.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	expense, err := h.ledgerService.AddExpense(c.Request.Context(), &req)
	if err != nil {
		ledgerError(c, err)
		return
	}

	response.Created(c, expense)
}

// DeleteExpense handles removing a single expense
// DELETE /api/v1/expenses/:uuid
func (h *BudgetHandler) DeleteExpense(c *gin.Context) {
	if err := h.ledgerService.DeleteExpense(c.Request.Context(), c.Param("uuid")); err != nil {
		ledgerError(c, err)
		return
	}

	response.Message(c, "expense removed")
}

// RegisterRoutes registers budget ledger routes. Write operations get the
// ledger body logger on top of auth.
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	ledgerLogger := middleware.LedgerLoggerMiddleware()

	budgets := rg.Group("/budgets")
	budgets.Use(authMiddleware, ledgerLogger)
	{
		budgets.POST("", h.UpsertBudget)
		budgets.DELETE("/:uuid", h.DeleteBudget)
		budgets.GET("/:uuid/categories", h.ListCategories)
		budgets.GET("/user/:username", h.ListBudgets)
		budgets.GET("/user/:username/recent", h.MostRecentBudgets)
	}

	categories := rg.Group("/categories")
	categories.Use(authMiddleware, ledgerLogger)
	{
		categories.POST("", h.AllocateCategory)
		categories.PUT("/:uuid", h.UpdateCategory)
		categories.DELETE("/:uuid", h.DeleteCategory)
	}

	expenses := rg.Group("/expenses")
	expenses.Use(authMiddleware, ledgerLogger)
	{
		expenses.POST("", h.AddExpense)
		expenses.DELETE("/:uuid", h.DeleteExpense)
	}
}
