package model

import (
	"fmt"
	"time"
)

type RuleType string

const (
	RuleSeasonal       RuleType = "SEASONAL"
	RuleDayOfWeek      RuleType = "DAY_OF_WEEK"
	RulePeakTime       RuleType = "PEAK_TIME"
	RuleHoliday        RuleType = "HOLIDAY"
	RuleCapacityBased  RuleType = "CAPACITY_BASED"
	RuleAdvanceBooking RuleType = "ADVANCE_BOOKING"
	RuleLastMinute     RuleType = "LAST_MINUTE"
)

type AdjustmentType string

const (
	AdjustPercentage  AdjustmentType = "PERCENTAGE"
	AdjustFixedAmount AdjustmentType = "FIXED_AMOUNT"
)

type Season string

const (
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonFall   Season = "FALL"
	SeasonWinter Season = "WINTER"
)

type Weekday string

var weekdayNames = map[Weekday]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// Time maps the stored weekday name onto time.Weekday.
func (w Weekday) Time() (time.Weekday, bool) {
	d, ok := weekdayNames[w]
	return d, ok
}

// PricingRule is the common envelope shared by every rule variant plus
// exactly one variant-specific condition payload. The payload that is set
// must match Type; Validate rejects every other combination so a rule can
// never silently match with the wrong semantics.
type PricingRule struct {
	ID              string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name            string         `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description     string         `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	Type            RuleType       `json:"type" bson:"type" validate:"required,oneof=SEASONAL DAY_OF_WEEK PEAK_TIME HOLIDAY CAPACITY_BASED ADVANCE_BOOKING LAST_MINUTE"`
	IsActive        bool           `json:"is_active" bson:"is_active"`
	Priority        int            `json:"priority" bson:"priority" validate:"min=0,max=100000"`
	AdjustmentType  AdjustmentType `json:"adjustment_type" bson:"adjustment_type" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	AdjustmentValue float64        `json:"adjustment_value" bson:"adjustment_value"`

	// Optional envelope window: the rule only applies to stays overlapping it.
	ValidFrom  *time.Time `json:"valid_from,omitempty" bson:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty" bson:"valid_until,omitempty"`

	Seasonal       *SeasonalCondition       `json:"seasonal,omitempty" bson:"seasonal,omitempty"`
	DayOfWeek      *DayOfWeekCondition      `json:"day_of_week,omitempty" bson:"day_of_week,omitempty"`
	Holiday        *HolidayCondition        `json:"holiday,omitempty" bson:"holiday,omitempty"`
	Capacity       *CapacityCondition       `json:"capacity,omitempty" bson:"capacity,omitempty"`
	AdvanceBooking *AdvanceBookingCondition `json:"advance_booking,omitempty" bson:"advance_booking,omitempty"`
	LastMinute     *LastMinuteCondition     `json:"last_minute,omitempty" bson:"last_minute,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type SeasonalCondition struct {
	Seasons []Season `json:"seasons" bson:"seasons" validate:"required,min=1,max=4,dive,oneof=SPRING SUMMER FALL WINTER"`
}

// DayOfWeekCondition backs both DAY_OF_WEEK and PEAK_TIME rules. WeekendOnly
// is a shortcut for {Saturday, Sunday}; when it is set Days may be empty.
type DayOfWeekCondition struct {
	Days        []Weekday `json:"days,omitempty" bson:"days,omitempty" validate:"omitempty,max=7,dive,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	WeekendOnly bool      `json:"weekend_only" bson:"weekend_only"`
}

// HolidayCondition references holidays by ID. An empty list means the rule
// fires on any holiday in the catalog.
type HolidayCondition struct {
	HolidayIDs []string `json:"holiday_ids,omitempty" bson:"holiday_ids,omitempty" validate:"omitempty,dive,mongodb"`
}

// CapacityCondition matches on the occupancy snapshot of the stay's
// resource. Minimum occupancy supports surge pricing; available-unit bounds
// support fill discounts. At least one threshold must be set.
type CapacityCondition struct {
	MinOccupancyPercent *int `json:"min_occupancy_percent,omitempty" bson:"min_occupancy_percent,omitempty" validate:"omitempty,min=0,max=100"`
	MinAvailableUnits   *int `json:"min_available_units,omitempty" bson:"min_available_units,omitempty" validate:"omitempty,min=0"`
	MaxAvailableUnits   *int `json:"max_available_units,omitempty" bson:"max_available_units,omitempty" validate:"omitempty,min=0"`
}

type AdvanceBookingCondition struct {
	MinDaysInAdvance int `json:"min_days_in_advance" bson:"min_days_in_advance" validate:"min=0"`
}

type LastMinuteCondition struct {
	MaxDaysBefore int `json:"max_days_before" bson:"max_days_before" validate:"min=0"`
}

// condition returns the payload the rule's type requires, or nil.
func (r *PricingRule) condition() any {
	switch r.Type {
	case RuleSeasonal:
		if r.Seasonal != nil {
			return r.Seasonal
		}
	case RuleDayOfWeek, RulePeakTime:
		if r.DayOfWeek != nil {
			return r.DayOfWeek
		}
	case RuleHoliday:
		if r.Holiday != nil {
			return r.Holiday
		}
	case RuleCapacityBased:
		if r.Capacity != nil {
			return r.Capacity
		}
	case RuleAdvanceBooking:
		if r.AdvanceBooking != nil {
			return r.AdvanceBooking
		}
	case RuleLastMinute:
		if r.LastMinute != nil {
			return r.LastMinute
		}
	}
	return nil
}

// Validate enforces the structural invariants that struct tags cannot
// express: the percentage range, the type/payload pairing, capacity
// thresholds, and the envelope window ordering.
func (r *PricingRule) Validate() error {
	if r.AdjustmentType == AdjustPercentage && (r.AdjustmentValue < -100 || r.AdjustmentValue > 100) {
		return fmt.Errorf("rule %q: percentage adjustment %.2f outside [-100, 100]", r.Name, r.AdjustmentValue)
	}

	if r.condition() == nil {
		return fmt.Errorf("rule %q: missing %s condition payload", r.Name, r.Type)
	}

	set := 0
	for _, p := range []bool{
		r.Seasonal != nil,
		r.DayOfWeek != nil,
		r.Holiday != nil,
		r.Capacity != nil,
		r.AdvanceBooking != nil,
		r.LastMinute != nil,
	} {
		if p {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("rule %q: exactly one condition payload required, got %d", r.Name, set)
	}

	if r.Type == RuleDayOfWeek || r.Type == RulePeakTime {
		if !r.DayOfWeek.WeekendOnly && len(r.DayOfWeek.Days) == 0 {
			return fmt.Errorf("rule %q: day-of-week condition needs days or the weekend flag", r.Name)
		}
	}

	if r.Type == RuleCapacityBased {
		c := r.Capacity
		if c.MinOccupancyPercent == nil && c.MinAvailableUnits == nil && c.MaxAvailableUnits == nil {
			return fmt.Errorf("rule %q: capacity condition needs at least one threshold", r.Name)
		}
		if c.MinAvailableUnits != nil && c.MaxAvailableUnits != nil && *c.MinAvailableUnits > *c.MaxAvailableUnits {
			return fmt.Errorf("rule %q: min available units %d above max %d", r.Name, *c.MinAvailableUnits, *c.MaxAvailableUnits)
		}
	}

	if r.ValidFrom != nil && r.ValidUntil != nil && !r.ValidUntil.After(*r.ValidFrom) {
		return fmt.Errorf("rule %q: valid_until must be after valid_from", r.Name)
	}

	return nil
}

// PricingRuleUpdate carries partial updates for the rule-admin API.
type PricingRuleUpdate struct {
	Name            string         `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description     *string        `json:"description,omitempty" validate:"omitempty,max=500"`
	IsActive        *bool          `json:"is_active,omitempty"`
	Priority        *int           `json:"priority,omitempty" validate:"omitempty,min=0,max=100000"`
	AdjustmentType  AdjustmentType `json:"adjustment_type,omitempty" validate:"omitempty,oneof=PERCENTAGE FIXED_AMOUNT"`
	AdjustmentValue *float64       `json:"adjustment_value,omitempty"`
	ValidFrom       *time.Time     `json:"valid_from,omitempty"`
	ValidUntil      *time.Time     `json:"valid_until,omitempty"`
}
