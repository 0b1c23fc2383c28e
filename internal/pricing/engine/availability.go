package engine

import (
	"fmt"
	"time"

	"pawresort/pkg/money"
)

type Status string

const (
	StatusAvailable          Status = "AVAILABLE"
	StatusPartiallyAvailable Status = "PARTIALLY_AVAILABLE"
	StatusUnavailable        Status = "UNAVAILABLE"
	// StatusWaitlist is never derived from counts; collaborators set it
	// explicitly on a calendar day.
	StatusWaitlist Status = "WAITLIST"
)

// DateAvailability is the derived per-day view of a resource type. Computed
// on demand from live occupancy counts, never persisted as source of truth.
type DateAvailability struct {
	Date           time.Time `json:"date"`
	Status         Status    `json:"status"`
	AvailableCount int       `json:"available_count"`
	TotalCount     int       `json:"total_count"`
	Utilization    int       `json:"utilization"`
}

// ClassifyStatus maps free/total counts onto an availability status.
// total <= 0 is a caller error handled defensively as UNAVAILABLE.
func ClassifyStatus(available, total int) Status {
	if total <= 0 {
		return StatusUnavailable
	}
	if available <= 0 {
		return StatusUnavailable
	}
	if available >= total {
		return StatusAvailable
	}
	return StatusPartiallyAvailable
}

// UtilizationPercent returns occupied capacity as a whole percentage of
// total, rounded half up and clamped to 0..100. Zero total yields 0 so the
// calculation can never fault on empty inventory.
func UtilizationPercent(occupied, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(money.RoundHalfUp(float64(occupied) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// FormatCapacity renders the canonical capacity string used for display and
// logging. No pricing logic reads it back.
func FormatCapacity(available, total int) string {
	return fmt.Sprintf("%d of %d available", available, total)
}

// IsPastDate reports whether date falls strictly before the reference day.
// Date-only comparison; time of day never leaks in.
func IsPastDate(date, referenceNow time.Time) bool {
	return dayOf(date).Before(dayOf(referenceNow))
}

// ClassifyAvailability builds the derived view for one day from an
// occupancy snapshot.
func ClassifyAvailability(day time.Time, occupied, total int) DateAvailability {
	available := total - occupied
	if available < 0 {
		available = 0
	}
	return DateAvailability{
		Date:           dayOf(day),
		Status:         ClassifyStatus(available, total),
		AvailableCount: available,
		TotalCount:     total,
		Utilization:    UtilizationPercent(occupied, total),
	}
}
