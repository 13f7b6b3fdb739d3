package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "sparynx/internal/errors"
	"sparynx/internal/logger"
	"sparynx/internal/mailer"
	"sparynx/internal/models"
	"sparynx/internal/uuid"
)

// budgetService handles budget lifecycle logic: field validation, date
// ordering, and the create/delete notification side effects.
type budgetService struct {
	db          *gorm.DB
	mailer      mailer.Mailer
	mailTimeout time.Duration
}

// NewBudgetService creates a new BudgetServicer. The mailer is injected so
// the notification provider's lifecycle is owned by the composition root.
func NewBudgetService(db *gorm.DB, m mailer.Mailer, mailTimeout time.Duration) BudgetServicer {
	return &budgetService{db: db, mailer: m, mailTimeout: mailTimeout}
}

// CreateBudget validates and persists a new budget, then fires the creation
// notice asynchronously. Notification failure never changes the outcome.
func (s *budgetService) CreateBudget(in CreateBudgetInput) (*models.Budget, error) {
	if in.Amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, apperrors.ErrEndDateBeforeStart
	}

	budget := &models.Budget{
		Name:        in.Name,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		UserID:      in.UserID,
		UserEmail:   in.UserEmail,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      models.BudgetStatusActive,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	subject, body := mailer.BudgetCreatedMessage(budget)
	go s.notify(budget.UserEmail, subject, body)

	return budget, nil
}

// GetBudgets returns all budgets, unfiltered and unpaginated.
func (s *budgetService) GetBudgets() ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID returns a budget by ID.
func (s *budgetService) GetBudgetByID(id string) (*models.Budget, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid budget ID")
	}

	var budget models.Budget
	if err := s.db.Where("id = ?", id).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget applies a partial update. The date-order invariant is checked
// against the effective dates: whichever of start/end is absent from the
// request is taken from the stored record. updated_at is stamped on every
// call regardless of which fields changed.
func (s *budgetService) UpdateBudget(id string, in UpdateBudgetInput) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return nil, err
	}

	effectiveStart := budget.StartDate
	if in.StartDate != nil {
		effectiveStart = *in.StartDate
	}
	effectiveEnd := budget.EndDate
	if in.EndDate != nil {
		effectiveEnd = *in.EndDate
	}
	if !effectiveEnd.After(effectiveStart) {
		return nil, apperrors.ErrEndDateBeforeStart
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Amount != nil {
		if *in.Amount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
		}
		updates["amount"] = *in.Amount
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.UserEmail != nil {
		updates["user_email"] = *in.UserEmail
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.StartDate != nil {
		updates["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		updates["end_date"] = *in.EndDate
	}

	if err := s.db.Model(budget).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Re-read so the returned record reflects the stored row and the
	// derived duration is recomputed.
	return s.GetBudgetByID(id)
}

// DeleteBudget removes a budget permanently. The stored owner email is a
// precondition here: without it the deletion notice cannot be addressed and
// the delete is rejected before any row is touched.
func (s *budgetService) DeleteBudget(id string) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return nil, err
	}

	if budget.UserEmail == "" {
		return nil, apperrors.ErrMissingOwnerEmail
	}

	// Snapshot before the row disappears; the notice carries these fields.
	snapshot := *budget

	if err := s.db.Delete(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	subject, body := mailer.BudgetDeletedMessage(&snapshot)
	go s.notify(snapshot.UserEmail, subject, body)

	return &snapshot, nil
}

// notify sends one notification under a bounded deadline. Failures are
// logged and swallowed.
func (s *budgetService) notify(to, subject, body string) {
	if to == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.mailTimeout)
	defer cancel()

	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		logger.Get().Errorw("notification send failed",
			"provider", s.mailer.Name(),
			"to", to,
			"subject", subject,
			"error", err,
		)
	}
}
