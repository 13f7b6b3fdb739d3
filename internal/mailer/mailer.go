// Package mailer provides provider-agnostic outbound email delivery for
// budget notifications. Concrete providers are constructed once at process
// start and injected into the components that send mail.
package mailer

import (
	"context"
	"fmt"
	"time"

	"sparynx/internal/models"
)

// Mailer sends a single templated email.
type Mailer interface {
	// Name returns the provider's display name (e.g., "SMTP", "Resend").
	Name() string

	// Send delivers one message. Callers are expected to bound the call
	// with a context deadline.
	Send(ctx context.Context, to, subject, body string) error
}

const dateLayout = "Mon, 02 Jan 2006"

// BudgetCreatedMessage builds the subject and body for a budget creation notice.
func BudgetCreatedMessage(b *models.Budget) (subject, body string) {
	subject = fmt.Sprintf("Budget created: %s", b.Name)
	body = fmt.Sprintf(
		"Your budget has been created.\n\n"+
			"Name: %s\nAmount: %.2f\nCategory: %s\nDescription: %s\n"+
			"Start date: %s\nEnd date: %s\n",
		b.Name, b.Amount, b.Category, b.Description,
		b.StartDate.Format(dateLayout), b.EndDate.Format(dateLayout),
	)
	return subject, body
}

// BudgetDeletedMessage builds the subject and body for a budget deletion
// notice, carrying the full field snapshot taken before the delete.
func BudgetDeletedMessage(b *models.Budget) (subject, body string) {
	subject = fmt.Sprintf("Budget deleted: %s", b.Name)
	body = fmt.Sprintf(
		"Your budget has been deleted.\n\n"+
			"Name: %s\nAmount: %.2f\nCategory: %s\nDescription: %s\n"+
			"Start date: %s\nEnd date: %s\n",
		b.Name, b.Amount, b.Category, b.Description,
		b.StartDate.Format(dateLayout), b.EndDate.Format(dateLayout),
	)
	return subject, body
}

// DeadlineReminderMessage builds the subject and body for a deadline
// approaching reminder.
func DeadlineReminderMessage(b *models.Budget) (subject, body string) {
	subject = fmt.Sprintf("Budget deadline approaching: %s", b.Name)
	body = fmt.Sprintf(
		"Your budget %q ends on %s. Review it before the deadline.\n",
		b.Name, b.EndDate.Format(dateLayout+" 15:04"),
	)
	return subject, body
}

// sendDeadline is a shared guard so providers fail fast on an already
// expired context instead of dialing.
func sendDeadline(ctx context.Context) error {
	if deadline, ok := ctx.Deadline(); ok && time.Now().After(deadline) {
		return context.DeadlineExceeded
	}
	return ctx.Err()
}
