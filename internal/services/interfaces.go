package services

import (
	"time"

	"sparynx/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CreateBudgetInput holds the fields required to create a budget.
type CreateBudgetInput struct {
	Name        string
	Amount      float64
	Category    string
	Description string
	UserID      string
	UserEmail   string
	StartDate   time.Time
	EndDate     time.Time
}

// UpdateBudgetInput holds the mutable budget fields; nil means "leave unchanged".
type UpdateBudgetInput struct {
	Name        *string
	Amount      *float64
	Category    *string
	Description *string
	UserEmail   *string
	Status      *models.BudgetStatus
	StartDate   *time.Time
	EndDate     *time.Time
}

// BudgetServicer defines the contract for budget lifecycle logic.
type BudgetServicer interface {
	CreateBudget(in CreateBudgetInput) (*models.Budget, error)
	GetBudgets() ([]models.Budget, error)
	GetBudgetByID(id string) (*models.Budget, error)
	UpdateBudget(id string, in UpdateBudgetInput) (*models.Budget, error)
	DeleteBudget(id string) (*models.Budget, error)
}
