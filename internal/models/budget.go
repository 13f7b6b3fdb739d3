package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// BudgetStatus represents the lifecycle status of a budget
type BudgetStatus string

const (
	BudgetStatusActive   BudgetStatus = "Active"
	BudgetStatusArchived BudgetStatus = "Archived"
)

// Budget represents a planned spending allocation over a date range.
// UserID and UserEmail are free-text copies supplied at creation time;
// they are not validated against the users table.
type Budget struct {
	Base
	Name        string       `gorm:"not null" json:"name"`
	Amount      float64      `gorm:"not null" json:"amount"`
	Category    string       `gorm:"not null" json:"category"`
	Description string       `json:"description,omitempty"`
	UserID      string       `gorm:"not null" json:"userId"`
	UserEmail   string       `json:"userEmail"`
	StartDate   time.Time    `gorm:"not null" json:"startDate"`
	EndDate     time.Time    `gorm:"not null" json:"endDate"`
	Status      BudgetStatus `gorm:"default:Active" json:"status"`

	// Duration is the date range in days, derived on read and never stored.
	Duration int `gorm:"-" json:"duration"`
}

// DurationDays returns ceil((end - start) / 24h).
func (b *Budget) DurationDays() int {
	return int(math.Ceil(b.EndDate.Sub(b.StartDate).Hours() / 24))
}

// AfterFind populates the derived duration field on every read.
func (b *Budget) AfterFind(tx *gorm.DB) error {
	b.Duration = b.DurationDays()
	return nil
}

// AfterCreate populates the derived duration field on the returned record.
func (b *Budget) AfterCreate(tx *gorm.DB) error {
	b.Duration = b.DurationDays()
	return nil
}
