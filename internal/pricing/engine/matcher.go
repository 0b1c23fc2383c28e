package engine

import (
	"fmt"
	"time"

	apperrors "pawresort/pkg/errors"
	"pawresort/pkg/model"
)

// FindApplicableRules returns every active rule whose conditions hold for
// the booking. Multi-day semantics are "any day in [start, end) matches" for
// calendar conditions. Inactive rules are dropped before any check; a
// malformed active rule fails the whole call so no partial result can leak.
func FindApplicableRules(bc BookingContext, catalog []model.PricingRule, holidays []model.Holiday) ([]model.PricingRule, error) {
	if err := bc.Validate(); err != nil {
		return nil, err
	}

	var matched []model.PricingRule
	for _, rule := range catalog {
		if !rule.IsActive {
			continue
		}
		if err := rule.Validate(); err != nil {
			return nil, apperrors.Validation(err.Error(), map[string]any{"rule_id": rule.ID})
		}
		ok, err := ruleMatches(bc, rule, holidays)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, rule)
		}
	}
	return matched, nil
}

func ruleMatches(bc BookingContext, rule model.PricingRule, holidays []model.Holiday) (bool, error) {
	if !withinValidWindow(bc, rule) {
		return false, nil
	}

	switch rule.Type {
	case model.RuleSeasonal:
		return matchSeasonal(bc, rule.Seasonal), nil
	case model.RuleDayOfWeek, model.RulePeakTime:
		return matchDayOfWeek(bc, rule.DayOfWeek), nil
	case model.RuleHoliday:
		return matchHoliday(bc, rule.Holiday, holidays), nil
	case model.RuleCapacityBased:
		return matchCapacity(bc, rule.Capacity), nil
	case model.RuleAdvanceBooking:
		return bc.DaysInAdvance() >= rule.AdvanceBooking.MinDaysInAdvance, nil
	case model.RuleLastMinute:
		return bc.DaysInAdvance() <= rule.LastMinute.MaxDaysBefore, nil
	default:
		// Validate() catches unknown types; this guards against a new
		// RuleType being added without a matcher arm.
		return false, apperrors.Validation(
			fmt.Sprintf("no matcher for rule type %q", rule.Type),
			map[string]any{"rule_id": rule.ID},
		)
	}
}

// withinValidWindow applies the optional envelope window: the stay must
// overlap [ValidFrom, ValidUntil].
func withinValidWindow(bc BookingContext, rule model.PricingRule) bool {
	if rule.ValidFrom != nil && dayOf(bc.EndDate).Before(dayOf(*rule.ValidFrom)) {
		return false
	}
	if rule.ValidUntil != nil && dayOf(bc.StartDate).After(dayOf(*rule.ValidUntil)) {
		return false
	}
	return true
}

func matchSeasonal(bc BookingContext, cond *model.SeasonalCondition) bool {
	want := make(map[model.Season]bool, len(cond.Seasons))
	for _, s := range cond.Seasons {
		want[s] = true
	}
	matched := false
	bc.stayDays(func(day time.Time) bool {
		if want[SeasonOf(day)] {
			matched = true
			return true
		}
		return false
	})
	return matched
}

func matchDayOfWeek(bc BookingContext, cond *model.DayOfWeekCondition) bool {
	want := make(map[time.Weekday]bool, 7)
	if cond.WeekendOnly {
		want[time.Saturday] = true
		want[time.Sunday] = true
	}
	for _, d := range cond.Days {
		if wd, ok := d.Time(); ok {
			want[wd] = true
		}
	}
	matched := false
	bc.stayDays(func(day time.Time) bool {
		if want[day.Weekday()] {
			matched = true
			return true
		}
		return false
	})
	return matched
}

func matchHoliday(bc BookingContext, cond *model.HolidayCondition, holidays []model.Holiday) bool {
	candidates := holidays
	if len(cond.HolidayIDs) > 0 {
		wanted := make(map[string]bool, len(cond.HolidayIDs))
		for _, id := range cond.HolidayIDs {
			wanted[id] = true
		}
		candidates = candidates[:0:0]
		for _, h := range holidays {
			if wanted[h.ID] {
				candidates = append(candidates, h)
			}
		}
	}
	if len(candidates) == 0 {
		return false
	}
	matched := false
	bc.stayDays(func(day time.Time) bool {
		for i := range candidates {
			if candidates[i].Matches(day) {
				matched = true
				return true
			}
		}
		return false
	})
	return matched
}

// matchCapacity checks the snapshot against every threshold the rule sets.
// Thresholds are inclusive: a 80% minimum matches at exactly 80%.
func matchCapacity(bc BookingContext, cond *model.CapacityCondition) bool {
	available := bc.AvailableUnits()
	if cond.MinOccupancyPercent != nil {
		if UtilizationPercent(bc.OccupiedCapacity, bc.TotalCapacity) < *cond.MinOccupancyPercent {
			return false
		}
	}
	if cond.MinAvailableUnits != nil && available < *cond.MinAvailableUnits {
		return false
	}
	if cond.MaxAvailableUnits != nil && available > *cond.MaxAvailableUnits {
		return false
	}
	return true
}
