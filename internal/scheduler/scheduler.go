// Package scheduler runs the recurring budget deadline scan. The scanner is
// stateless between runs: every invocation re-derives its query window from
// the current clock, so budgets still matching on the next run are notified
// again. That repeat-notification behavior is intentional and kept.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"sparynx/internal/logger"
	"sparynx/internal/mailer"
	"sparynx/internal/models"
)

// Scanner periodically finds budgets whose end date falls within the
// reminder window and sends a deadline notice to each owner.
type Scanner struct {
	db          *gorm.DB
	mailer      mailer.Mailer
	interval    time.Duration
	sendTimeout time.Duration

	running atomic.Bool
}

// NewScanner creates a deadline scanner. interval is the tick period
// (one hour in production); sendTimeout bounds each notification call.
func NewScanner(db *gorm.DB, m mailer.Mailer, interval, sendTimeout time.Duration) *Scanner {
	return &Scanner{
		db:          db,
		mailer:      m,
		interval:    interval,
		sendTimeout: sendTimeout,
	}
}

// Start launches the scan loop in a background goroutine. The loop stops
// when ctx is cancelled. Runs are single-flight: a tick that fires while a
// previous run is still draining its notification loop is skipped.
func (s *Scanner) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !s.running.CompareAndSwap(false, true) {
					logger.Get().Warnw("deadline scan still running, skipping tick")
					continue
				}
				go func() {
					defer s.running.Store(false)
					if _, err := s.RunOnce(ctx, time.Now()); err != nil {
						logger.Get().Errorw("deadline scan failed", "error", err)
					}
				}()
			}
		}
	}()
}

// ReminderWindow returns the inclusive bounds of the calendar day containing
// now+24h. A budget ending anywhere inside that day is due a reminder, not
// only one ending exactly 24 hours from now.
func ReminderWindow(now time.Time) (start, end time.Time) {
	day := now.Add(24 * time.Hour)
	start = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end = time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 999999999, day.Location())
	return start, end
}

// RunOnce executes a single scan at the given time and returns the number of
// matching budgets. Each notification failure is independent: it is logged
// and the loop moves on to the remaining budgets.
func (s *Scanner) RunOnce(ctx context.Context, now time.Time) (int, error) {
	log := logger.Get()
	start, end := ReminderWindow(now)

	var budgets []models.Budget
	if err := s.db.WithContext(ctx).
		Where("end_date >= ? AND end_date <= ?", start, end).
		Find(&budgets).Error; err != nil {
		return 0, err
	}

	for i := range budgets {
		b := &budgets[i]
		if b.UserEmail == "" {
			log.Warnw("budget has no owner email, skipping reminder", "budget_id", b.ID)
			continue
		}

		subject, body := mailer.DeadlineReminderMessage(b)
		sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		err := s.mailer.Send(sendCtx, b.UserEmail, subject, body)
		cancel()
		if err != nil {
			log.Errorw("deadline reminder send failed",
				"provider", s.mailer.Name(),
				"budget_id", b.ID,
				"to", b.UserEmail,
				"error", err,
			)
		}
	}

	log.Infow("deadline scan completed",
		"matches", len(budgets),
		"window_start", start,
		"window_end", end,
	)
	return len(budgets), nil
}
