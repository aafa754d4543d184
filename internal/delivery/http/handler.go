package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mealwise/backend/internal/domain"
	"github.com/mealwise/backend/internal/usecase"
	"github.com/mealwise/backend/pkg/logger"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	calories *usecase.CalorieService
	auth     *usecase.AuthService
	log      *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(calories *usecase.CalorieService, auth *usecase.AuthService) *Handler {
	return &Handler{
		calories: calories,
		auth:     auth,
		log:      logger.WithModule("http"),
	}
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "mealwise-backend",
		"version": "1.0.0",
	})
}

type registerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// Register creates a new account.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues an access token. The token is
// returned in the body and also set as a cookie for browser clients.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// GetCalories resolves calorie information for a dish.
func (h *Handler) GetCalories(c *gin.Context) {
	var req domain.ResolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.calories.Resolve(c.Request.Context(), &req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// renderError maps domain errors onto HTTP statuses so callers can tell
// "not found" from "upstream broke" from "bad input".
func (h *Handler) renderError(c *gin.Context, err error) {
	var transportErr *domain.TransportError

	switch {
	case errors.Is(err, domain.ErrInvalidServings),
		errors.Is(err, domain.ErrEmptyDishName),
		errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrDishNotFound),
		errors.Is(err, domain.ErrCaloriesUndeterminable):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrMissingAPIKey):
		h.log.Error("usda api key not configured")
		c.JSON(http.StatusBadGateway, gin.H{"error": domain.ErrMissingAPIKey.Error()})

	case errors.As(err, &transportErr):
		h.log.Error("usda request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "nutrition provider unavailable"})

	default:
		h.log.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
