package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marekkaras/budget-backend/internal/middleware"
	"github.com/marekkaras/budget-backend/internal/models"
	"github.com/marekkaras/budget-backend/internal/repository"
	"github.com/marekkaras/budget-backend/internal/service"
	"github.com/marekkaras/budget-backend/pkg/response"
)

// UserHandler handles user lookup API requests
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// ListUsers handles listing all users with pagination
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	if skip < 0 {
		skip = 0
	}

	users, err := h.authService.ListUsers(skip, limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	views := make([]models.UserResponse, 0, len(users))
	for i := range users {
		views = append(views, users[i].PublicView())
	}

	response.Success(c, views)
}

// Me handles returning the authenticated user
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	username := middleware.GetUsername(c)

	user, err := h.authService.GetUserByUsername(username)
	if err != nil {
		response.Unauthorized(c, "could not validate credentials")
		return
	}

	response.Success(c, user.PublicView())
}

// GetUser handles looking up a user by username
// GET /api/v1/users/:username
func (h *UserHandler) GetUser(c *gin.Context) {
	username := c.Param("username")

	user, err := h.authService.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, user.PublicView())
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("", h.ListUsers)
		users.GET("/me", h.Me)
		users.GET("/:username", h.GetUser)
	}
}
