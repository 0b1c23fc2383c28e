// Package engine implements the reservation pricing resolution core: pure,
// stateless functions that turn a booking context plus a rule catalog into a
// final chargeable price with an itemized explanation. The engine performs
// no I/O; catalogs and occupancy snapshots are explicit parameters supplied
// per call.
package engine

import (
	"fmt"
	"time"

	apperrors "pawresort/pkg/errors"
	"pawresort/pkg/money"
)

// BookingContext is the immutable input of one pricing request. Dates are
// date-only; any time-of-day component is ignored.
type BookingContext struct {
	StartDate        time.Time
	EndDate          time.Time
	PetCount         int
	OccupiedCapacity int
	TotalCapacity    int
	RequestDate      time.Time
	BaseRate         money.Money
}

// Validate rejects malformed contexts before any computation runs.
func (bc BookingContext) Validate() error {
	details := map[string]any{}
	if bc.StartDate.IsZero() || bc.EndDate.IsZero() {
		details["dates"] = "start_date and end_date are required"
	} else if !dayOf(bc.EndDate).After(dayOf(bc.StartDate)) {
		details["dates"] = fmt.Sprintf("end_date %s must be after start_date %s",
			bc.EndDate.Format("2006-01-02"), bc.StartDate.Format("2006-01-02"))
	}
	if bc.PetCount < 1 {
		details["pet_count"] = fmt.Sprintf("must be at least 1, got %d", bc.PetCount)
	}
	if bc.OccupiedCapacity < 0 || bc.TotalCapacity < 0 {
		details["capacity"] = "capacity counts cannot be negative"
	} else if bc.OccupiedCapacity > bc.TotalCapacity {
		details["capacity"] = fmt.Sprintf("occupied %d exceeds total %d", bc.OccupiedCapacity, bc.TotalCapacity)
	}
	if bc.BaseRate.IsNegative() {
		details["base_rate"] = "base rate cannot be negative"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid booking context", details)
	}
	return nil
}

// Nights is the length of the stay in whole days, check-out exclusive.
func (bc BookingContext) Nights() int {
	return int(dayOf(bc.EndDate).Sub(dayOf(bc.StartDate)) / (24 * time.Hour))
}

// DaysInAdvance is the whole-day lead time between the request date and
// check-in. Same-day and past-dated requests yield 0. A zero RequestDate
// defaults to today.
func (bc BookingContext) DaysInAdvance() int {
	request := bc.RequestDate
	if request.IsZero() {
		request = time.Now()
	}
	days := int(dayOf(bc.StartDate).Sub(dayOf(request)) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

// stayDays iterates the calendar days of the stay, [start, end).
func (bc BookingContext) stayDays(fn func(day time.Time) bool) {
	end := dayOf(bc.EndDate)
	for day := dayOf(bc.StartDate); day.Before(end); day = day.AddDate(0, 0, 1) {
		if fn(day) {
			return
		}
	}
}

// AvailableUnits is the free capacity in the snapshot.
func (bc BookingContext) AvailableUnits() int {
	return bc.TotalCapacity - bc.OccupiedCapacity
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
