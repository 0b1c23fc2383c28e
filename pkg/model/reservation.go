package model

import "time"

const (
	ReservationConfirmed  = "confirmed"
	ReservationCheckedIn  = "checked_in"
	ReservationCheckedOut = "checked_out"
	ReservationCancelled  = "cancelled"
	ReservationNoShow     = "no_show"
)

// Reservation is the occupancy-relevant slice of a booking: which resource
// type it holds and for which date span. ExternalID survives imports from
// the legacy boarding system.
type Reservation struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ResourceID   string    `json:"resource_id,omitempty" bson:"resource_id,omitempty" validate:"omitempty,mongodb"`
	ResourceType string    `json:"resource_type" bson:"resource_type" validate:"required,min=2,max=50"`
	StartDate    time.Time `json:"start_date" bson:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" bson:"end_date" validate:"required,gtfield=StartDate"`
	PetCount     int       `json:"pet_count" bson:"pet_count" validate:"required,min=1,max=20"`
	Status       string    `json:"status" bson:"status" validate:"required,oneof=confirmed checked_in checked_out cancelled no_show"`
	ExternalID   string    `json:"external_id,omitempty" bson:"external_id,omitempty" validate:"omitempty,max=100"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// OccupiesCapacity reports whether the reservation consumes a unit when
// counting occupancy for a date.
func (r *Reservation) OccupiesCapacity() bool {
	return r.Status == ReservationConfirmed || r.Status == ReservationCheckedIn
}

// Covers reports whether the stay spans the given day. Check-out day is
// exclusive.
func (r *Reservation) Covers(day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	s := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(s) && d.Before(e)
}

// Resource is one bookable unit (a kennel or suite) of a resource type.
type Resource struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	ResourceType string    `json:"resource_type" bson:"resource_type" validate:"required,min=2,max=50"`
	SuiteType    string    `json:"suite_type,omitempty" bson:"suite_type,omitempty" validate:"omitempty,min=2,max=50"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
