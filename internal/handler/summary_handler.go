package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/marekkaras/budget-backend/internal/middleware"
	"github.com/marekkaras/budget-backend/internal/repository"
	"github.com/marekkaras/budget-backend/internal/service"
	"github.com/marekkaras/budget-backend/pkg/response"
)

// NoBudgetsSentinel is returned when a user has no budget rows at all
const NoBudgetsSentinel = "No user budgets found"

// SummaryHandler handles aggregate view API requests
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

// BudgetSummary handles the full tree for one budget
// GET /api/v1/budgets/:uuid/summary
func (h *SummaryHandler) BudgetSummary(c *gin.Context) {
	detail, err := h.summaryService.BudgetDetail(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		if errors.Is(err, repository.ErrBudgetNotFound) {
			response.NotFound(c, "budget not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, detail)
}

// BudgetStats handles the spent/remaining rollup for one budget
// GET /api/v1/budgets/:uuid/stats
func (h *SummaryHandler) BudgetStats(c *gin.Context) {
	stats, err := h.summaryService.BudgetStats(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		if errors.Is(err, repository.ErrBudgetNotFound) {
			response.NotFound(c, "budget not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, stats)
}

// UserHistory handles the full history of the authenticated user
// GET /api/v1/history
func (h *SummaryHandler) UserHistory(c *gin.Context) {
	username := middleware.GetUsername(c)

	history, err := h.summaryService.UserHistory(c.Request.Context(), username)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if len(history) == 0 {
		response.Success(c, []string{NoBudgetsSentinel})
		return
	}

	response.Success(c, history)
}

// CategorySummary handles the per-category rollups of the authenticated user
// GET /api/v1/summary/categories
func (h *SummaryHandler) CategorySummary(c *gin.Context) {
	username := middleware.GetUsername(c)

	summary, err := h.summaryService.CategorySummary(c.Request.Context(), username)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if len(summary) == 0 {
		response.Success(c, []string{NoBudgetsSentinel})
		return
	}

	response.Success(c, summary)
}

// RegisterRoutes registers summary routes
func (h *SummaryHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	budgets := rg.Group("/budgets")
	budgets.Use(authMiddleware)
	{
		budgets.GET("/:uuid/summary", h.BudgetSummary)
		budgets.GET("/:uuid/stats", h.BudgetStats)
	}

	summary := rg.Group("")
	summary.Use(authMiddleware)
	{
		summary.GET("/history", h.UserHistory)
		summary.GET("/summary/categories", h.CategorySummary)
	}
}
