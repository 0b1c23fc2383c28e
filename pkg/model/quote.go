package model

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// QuoteRequest is the wire form of a pricing request. Dates travel as
// calendar days; time of day is never part of pricing.
type QuoteRequest struct {
	SuiteType    string `json:"suite_type" validate:"required,min=2,max=50"`
	ResourceType string `json:"resource_type,omitempty" validate:"omitempty,min=2,max=50"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"required,datetime=2006-01-02"`
	PetCount     int    `json:"pet_count" validate:"required,min=1,max=20"`

	// RequestDate defaults to today; importers replaying historical
	// bookings set it explicitly so lead-time rules evaluate as of then.
	RequestDate string `json:"request_date,omitempty" validate:"omitempty,datetime=2006-01-02"`

	// BaseRateCents overrides the per-stay base derived from the suite
	// capacity config. Negotiated corporate rates use this.
	BaseRateCents *int64 `json:"base_rate_cents,omitempty" validate:"omitempty,min=0"`
}

// Resource returns the resource type the stay occupies, defaulting to the
// suite type when not set separately.
func (q *QuoteRequest) Resource() string {
	if q.ResourceType != "" {
		return q.ResourceType
	}
	return q.SuiteType
}

// Dates parses the request's calendar days. A zero request time means
// "now"; callers decide the default.
func (q *QuoteRequest) Dates() (start, end, request time.Time, err error) {
	start, err = time.Parse(dateLayout, q.StartDate)
	if err != nil {
		return start, end, request, fmt.Errorf("invalid start_date %q: %w", q.StartDate, err)
	}
	end, err = time.Parse(dateLayout, q.EndDate)
	if err != nil {
		return start, end, request, fmt.Errorf("invalid end_date %q: %w", q.EndDate, err)
	}
	if q.RequestDate != "" {
		request, err = time.Parse(dateLayout, q.RequestDate)
		if err != nil {
			return start, end, request, fmt.Errorf("invalid request_date %q: %w", q.RequestDate, err)
		}
	}
	return start, end, request, nil
}
