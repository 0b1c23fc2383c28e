package model

import (
	"fmt"
	"time"
)

// Holiday is either a one-off calendar date or a recurring month/day pair
// (e.g. July 4th every year). Owned by business configuration; the pricing
// engine only reads it.
type Holiday struct {
	ID          string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Date        *time.Time `json:"date,omitempty" bson:"date,omitempty"`
	Month       int        `json:"month,omitempty" bson:"month,omitempty" validate:"omitempty,min=1,max=12"`
	Day         int        `json:"day,omitempty" bson:"day,omitempty" validate:"omitempty,min=1,max=31"`
	IsRecurring bool       `json:"is_recurring" bson:"is_recurring"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Validate checks that the holiday carries the fields its form requires.
func (h *Holiday) Validate() error {
	if h.IsRecurring {
		if h.Month == 0 || h.Day == 0 {
			return fmt.Errorf("holiday %q: recurring holidays need month and day", h.Name)
		}
		return nil
	}
	if h.Date == nil {
		return fmt.Errorf("holiday %q: non-recurring holidays need a date", h.Name)
	}
	return nil
}

// Matches reports whether the given calendar day falls on this holiday.
// Comparison is date-only.
func (h *Holiday) Matches(day time.Time) bool {
	if h.IsRecurring {
		return int(day.Month()) == h.Month && day.Day() == h.Day
	}
	if h.Date == nil {
		return false
	}
	y1, m1, d1 := h.Date.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
