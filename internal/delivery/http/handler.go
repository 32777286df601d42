package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
	"github.com/o1iviachen/my-protein-buddy/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search *usecase.SearchService
	ledger *usecase.LedgerService
}

// NewHandler creates a new HTTP handler
func NewHandler(search *usecase.SearchService, ledger *usecase.LedgerService) *Handler {
	return &Handler{
		search: search,
		ledger: ledger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "my-protein-buddy-backend",
		"version": "1.0.0",
	})
}

// searchRequest is the body for a food search
type searchRequest struct {
	Query string `json:"query" binding:"required"`
}

// SearchFoods handles food search requests. The only failure signal is an
// empty result set, presented as a generic not-found message.
func (h *Handler) SearchFoods(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	foods, err := h.search.SearchFoods(c.Request.Context(), req.Query)
	if err != nil || len(foods) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no foods were found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

// ResolveBarcode handles barcode lookup requests
func (h *Handler) ResolveBarcode(c *gin.Context) {
	food, err := h.search.ResolveBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no foods were found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"food": food})
}

// GetDay returns the meal buckets and intake total for a date
func (h *Handler) GetDay(c *gin.Context) {
	day, err := h.ledger.Day(c.Request.Context(), currentUser(c), c.Param("date"))
	if err == domain.ErrInvalidRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch foods"})
		return
	}

	c.JSON(http.StatusOK, day)
}

// logFoodRequest is the body for logging or removing a food
type logFoodRequest struct {
	Meal string      `json:"meal" binding:"required"`
	Food domain.Food `json:"food" binding:"required"`
}

// LogFood appends a food to a meal bucket and updates the intake total
func (h *Handler) LogFood(c *gin.Context) {
	var req logFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal and food are required"})
		return
	}

	meal, err := domain.ParseMeal(req.Meal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal name"})
		return
	}

	logged, err := h.ledger.LogFood(c.Request.Context(), currentUser(c), req.Food, meal, c.Param("date"))
	if err == domain.ErrInvalidRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food or date"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "your food could not be logged"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"food": logged})
}

// RemoveFood removes a previously logged food from a meal bucket
func (h *Handler) RemoveFood(c *gin.Context) {
	var req logFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal and food are required"})
		return
	}

	meal, err := domain.ParseMeal(req.Meal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal name"})
		return
	}

	err = h.ledger.RemoveFood(c.Request.Context(), currentUser(c), req.Food, meal, c.Param("date"))
	if err == domain.ErrInvalidRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "your food could not be removed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// GetRecentFoods returns up to 10 recently logged foods, newest first
func (h *Handler) GetRecentFoods(c *gin.Context) {
	recent, err := h.ledger.RecentFoods(c.Request.Context(), currentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch recent foods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": recent})
}

// GetProteinGoal returns the user's protein goal. A null goal means unset;
// clients must render a prompt, not a zero.
func (h *Handler) GetProteinGoal(c *gin.Context) {
	goal, err := h.ledger.ProteinGoal(c.Request.Context(), currentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch protein goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"proteinGoal": goal})
}

// setGoalRequest is the body for manually setting a goal
type setGoalRequest struct {
	ProteinGoal int `json:"proteinGoal" binding:"required"`
}

// SetProteinGoal stores a manually chosen goal
func (h *Handler) SetProteinGoal(c *gin.Context) {
	var req setGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proteinGoal is required"})
		return
	}

	if err := h.ledger.SetProteinGoal(c.Request.Context(), currentUser(c), req.ProteinGoal); err != nil {
		if err == domain.ErrInvalidRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": "protein goal must be positive"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not set protein goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"proteinGoal": req.ProteinGoal})
}

// calculateGoalRequest is the body for the goal calculator
type calculateGoalRequest struct {
	HeightM  float64 `json:"height_m" binding:"required"`
	WeightKg float64 `json:"weight_kg" binding:"required"`
	Activity string  `json:"activity" binding:"required"`
}

// CalculateProteinGoal derives a goal from height, weight and activity level,
// stores it, and returns it
func (h *Handler) CalculateProteinGoal(c *gin.Context) {
	var req calculateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "height_m, weight_kg and activity are required"})
		return
	}

	goal, err := h.ledger.CalculateProteinGoal(
		c.Request.Context(), currentUser(c),
		req.HeightM, req.WeightKg, usecase.Activity(req.Activity),
	)
	if err == domain.ErrInvalidRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calculator input"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not set protein goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"proteinGoal": goal})
}
