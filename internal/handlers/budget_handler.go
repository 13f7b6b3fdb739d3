package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "sparynx/internal/errors"
	"sparynx/internal/models"
	"sparynx/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
// Dates are accepted as RFC 3339 timestamps or bare calendar dates; the
// start date defaults to the current time when omitted.
type CreateBudgetRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=100"`
	Amount      *float64 `json:"amount" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required,min=1,max=100"`
	Description string   `json:"description" binding:"max=500"`
	UserID      string   `json:"userId" binding:"required"`
	UserEmail   string   `json:"userEmail" binding:"required,email"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate" binding:"required"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
// Every field is optional; absent fields are left unchanged.
type UpdateBudgetRequest struct {
	Name        *string              `json:"name" binding:"omitempty,min=1,max=100"`
	Amount      *float64             `json:"amount" binding:"omitempty,gte=0"`
	Category    *string              `json:"category" binding:"omitempty,min=1,max=100"`
	Description *string              `json:"description" binding:"omitempty,max=500"`
	UserEmail   *string              `json:"userEmail" binding:"omitempty,email"`
	Status      *models.BudgetStatus `json:"status" binding:"omitempty,budget_status"`
	StartDate   *string              `json:"startDate"`
	EndDate     *string              `json:"endDate"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a new budget and notify the owner by email
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /create-budget [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate := time.Now()
	if req.StartDate != "" {
		var err error
		if startDate, err = parseDate("startDate", req.StartDate); err != nil {
			respondWithError(c, err)
			return
		}
	}
	endDate, err := parseDate("endDate", req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(services.CreateBudgetInput{
		Name:        req.Name,
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
		UserID:      req.UserID,
		UserEmail:   req.UserEmail,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing all budgets.
// @Summary     Get budgets
// @Description Get all budgets
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Budget "Budgets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	budgets, err := h.budgetService.GetBudgets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Description Get a specific budget by ID
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budget, err := h.budgetService.GetBudgetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles updating an existing budget.
// @Summary     Update budget
// @Description Update any subset of a budget's mutable fields
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Updated budget fields"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or date order violation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /edit-budget/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in := services.UpdateBudgetInput{
		Name:        req.Name,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		UserEmail:   req.UserEmail,
		Status:      req.Status,
	}
	if req.StartDate != nil {
		startDate, err := parseDate("startDate", *req.StartDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		in.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate("endDate", *req.EndDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		in.EndDate = &endDate
	}

	budget, err := h.budgetService.UpdateBudget(c.Param("id"), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Description Delete a budget permanently and notify the owner by email
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.Budget "Deleted budget"
// @Failure     400 {object} ErrorResponse "Invalid budget ID or missing owner email"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /delete-budget/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	budget, err := h.budgetService.DeleteBudget(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Budget deleted successfully",
		"budget":  budget,
	})
}
