package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"sparynx/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget creates a budget with a one-month date range starting now.
func CreateTestBudget(t *testing.T, db *gorm.DB) *models.Budget {
	t.Helper()
	start := time.Now()
	return CreateTestBudgetWithDates(t, db, start, start.AddDate(0, 1, 0))
}

// CreateTestBudgetWithDates creates a budget with the given date range.
func CreateTestBudgetWithDates(t *testing.T, db *gorm.DB, start, end time.Time) *models.Budget {
	t.Helper()

	n := nextID()
	budget := &models.Budget{
		Name:      fmt.Sprintf("Test Budget %d", n),
		Amount:    500,
		Category:  "Housing",
		UserID:    fmt.Sprintf("user-%d", n),
		UserEmail: fmt.Sprintf("owner%d@test.com", n),
		StartDate: start,
		EndDate:   end,
		Status:    models.BudgetStatusActive,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
