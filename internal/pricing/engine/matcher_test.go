package engine

import (
	"testing"
	"time"

	"pawresort/pkg/model"
	"pawresort/pkg/money"
)

func summerBooking() BookingContext {
	return BookingContext{
		StartDate:        time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), // Friday
		EndDate:          time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC),
		PetCount:         1,
		OccupiedCapacity: 10,
		TotalCapacity:    20,
		RequestDate:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		BaseRate:         money.New(10000, "USD"),
	}
}

func seasonalRule(id string, seasons ...model.Season) model.PricingRule {
	return model.PricingRule{
		ID:              id,
		Name:            "Seasonal rate",
		Type:            model.RuleSeasonal,
		IsActive:        true,
		Priority:        10,
		AdjustmentType:  model.AdjustPercentage,
		AdjustmentValue: 20,
		Seasonal:        &model.SeasonalCondition{Seasons: seasons},
	}
}

func TestFindApplicableRules_Seasonal(t *testing.T) {
	bc := summerBooking()
	catalog := []model.PricingRule{
		seasonalRule("686f000000000000000000a1", model.SeasonSummer),
		seasonalRule("686f000000000000000000a2", model.SeasonWinter),
	}

	matched, err := FindApplicableRules(bc, catalog, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "686f000000000000000000a1" {
		t.Fatalf("expected only the summer rule to match, got %d rules", len(matched))
	}
}

func TestFindApplicableRules_AnyStayDayMatches(t *testing.T) {
	// Stay straddles the summer/fall boundary: Aug 30 .. Sep 2. A single
	// in-season day is enough for either season to match.
	bc := summerBooking()
	bc.StartDate = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	bc.EndDate = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	catalog := []model.PricingRule{
		seasonalRule("686f000000000000000000a1", model.SeasonSummer),
		seasonalRule("686f000000000000000000a2", model.SeasonFall),
		seasonalRule("686f000000000000000000a3", model.SeasonWinter),
	}

	matched, err := FindApplicableRules(bc, catalog, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected summer and fall to match a boundary-straddling stay, got %d rules", len(matched))
	}
}

func TestFindApplicableRules_SkipsInactive(t *testing.T) {
	rule := seasonalRule("686f000000000000000000a1", model.SeasonSummer)
	rule.IsActive = false

	matched, err := FindApplicableRules(summerBooking(), []model.PricingRule{rule}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matched) != 0 {
		t.Fatal("inactive rules must never match")
	}
}

func TestFindApplicableRules_MalformedActiveRuleFails(t *testing.T) {
	rule := seasonalRule("686f000000000000000000a1", model.SeasonSummer)
	rule.Seasonal = nil // payload missing for its type

	if _, err := FindApplicableRules(summerBooking(), []model.PricingRule{rule}, nil); err == nil {
		t.Fatal("a malformed active rule must fail the whole call")
	}
}

func TestRuleMatches_Weekend(t *testing.T) {
	rule := model.PricingRule{
		ID:              "686f000000000000000000b1",
		Name:            "Weekend premium",
		Type:            model.RuleDayOfWeek,
		IsActive:        true,
		AdjustmentType:  model.AdjustPercentage,
		AdjustmentValue: 15,
		DayOfWeek:       &model.DayOfWeekCondition{WeekendOnly: true},
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			"midweek stay",
			time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC), // Monday
			time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"stay including saturday",
			time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), // Friday
			time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
			true,
		},
		{
			"checkout on saturday does not count",
			time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC), // Thursday
			time.Date(2026, 7, 11, 0, 0, 0, 0, time.UTC), // Saturday checkout
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc := summerBooking()
			bc.StartDate = tt.start
			bc.EndDate = tt.end
			got, err := ruleMatches(bc, rule, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuleMatches_Holiday(t *testing.T) {
	holidays := []model.Holiday{
		{ID: "686f000000000000000000c1", Name: "Independence Day", Month: 7, Day: 4, IsRecurring: true},
		{ID: "686f000000000000000000c2", Name: "Labor Day", Month: 9, Day: 7, IsRecurring: true},
	}

	anyHoliday := model.PricingRule{
		ID:              "686f000000000000000000b2",
		Name:            "Holiday premium",
		Type:            model.RuleHoliday,
		IsActive:        true,
		AdjustmentType:  model.AdjustPercentage,
		AdjustmentValue: 25,
		Holiday:         &model.HolidayCondition{},
	}
	laborDayOnly := anyHoliday
	laborDayOnly.Holiday = &model.HolidayCondition{HolidayIDs: []string{"686f000000000000000000c2"}}

	bc := summerBooking()
	bc.StartDate = time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)
	bc.EndDate = time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)

	if got, _ := ruleMatches(bc, anyHoliday, holidays); !got {
		t.Error("a stay covering July 4 should match the any-holiday rule")
	}
	if got, _ := ruleMatches(bc, laborDayOnly, holidays); got {
		t.Error("a July stay should not match a rule scoped to Labor Day")
	}
	if got, _ := ruleMatches(bc, anyHoliday, nil); got {
		t.Error("an empty holiday catalog should never match")
	}
}

func TestRuleMatches_CapacityThresholdsInclusive(t *testing.T) {
	min := 80
	rule := model.PricingRule{
		ID:              "686f000000000000000000b3",
		Name:            "Surge pricing",
		Type:            model.RuleCapacityBased,
		IsActive:        true,
		AdjustmentType:  model.AdjustPercentage,
		AdjustmentValue: 10,
		Capacity:        &model.CapacityCondition{MinOccupancyPercent: &min},
	}

	tests := []struct {
		name     string
		occupied int
		want     bool
	}{
		{"below threshold", 15, false},
		{"exactly at threshold", 16, true},
		{"above threshold", 19, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc := summerBooking()
			bc.OccupiedCapacity = tt.occupied
			bc.TotalCapacity = 20
			got, err := ruleMatches(bc, rule, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("occupied=%d: match = %v, want %v", tt.occupied, got, tt.want)
			}
		})
	}
}

func TestRuleMatches_AvailableUnitBounds(t *testing.T) {
	minUnits, maxUnits := 1, 3
	rule := model.PricingRule{
		ID:              "686f000000000000000000b4",
		Name:            "Fill the last suites",
		Type:            model.RuleCapacityBased,
		IsActive:        true,
		AdjustmentType:  model.AdjustPercentage,
		AdjustmentValue: -10,
		Capacity: &model.CapacityCondition{
			MinAvailableUnits: &minUnits,
			MaxAvailableUnits: &maxUnits,
		},
	}

	tests := []struct {
		occupied int
		want     bool
	}{
		{20, false}, // 0 available, below min
		{19, true},  // 1 available
		{17, true},  // 3 available
		{16, false}, // 4 available, above max
	}

	for _, tt := range tests {
		bc := summerBooking()
		bc.OccupiedCapacity = tt.occupied
		bc.TotalCapacity = 20
		got, err := ruleMatches(bc, rule, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("occupied=%d: match = %v, want %v", tt.occupied, got, tt.want)
		}
	}
}

func TestRuleMatches_LeadTime(t *testing.T) {
	advance := model.PricingRule{
		ID:              "686f000000000000000000b5",
		Name:            "Early bird",
		Type:            model.RuleAdvanceBooking,
		IsActive:        true,
		AdjustmentType:  model.AdjustPercentage,
		AdjustmentValue: -5,
		AdvanceBooking:  &model.AdvanceBookingCondition{MinDaysInAdvance: 14},
	}
	lastMinute := model.PricingRule{
		ID:              "686f000000000000000000b6",
		Name:            "Last minute",
		Type:            model.RuleLastMinute,
		IsActive:        true,
		AdjustmentType:  model.AdjustPercentage,
		AdjustmentValue: 8,
		LastMinute:      &model.LastMinuteCondition{MaxDaysBefore: 2},
	}

	tests := []struct {
		name           string
		daysOut        int
		wantAdvance    bool
		wantLastMinute bool
	}{
		{"same day", 0, false, true},
		{"two days out", 2, false, true},
		{"three days out", 3, false, false},
		{"thirteen days out", 13, false, false},
		{"exactly fourteen days out", 14, true, false},
		{"a month out", 30, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc := summerBooking()
			bc.RequestDate = bc.StartDate.AddDate(0, 0, -tt.daysOut)

			if got, _ := ruleMatches(bc, advance, nil); got != tt.wantAdvance {
				t.Errorf("advance booking match = %v, want %v", got, tt.wantAdvance)
			}
			if got, _ := ruleMatches(bc, lastMinute, nil); got != tt.wantLastMinute {
				t.Errorf("last minute match = %v, want %v", got, tt.wantLastMinute)
			}
		})
	}
}

func TestRuleMatches_ValidWindow(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	rule := seasonalRule("686f000000000000000000b7", model.SeasonSummer)
	rule.ValidFrom = &from
	rule.ValidUntil = &until

	// July stay is outside the June-only window even though the season fits.
	got, err := ruleMatches(summerBooking(), rule, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("a stay outside the rule's valid window must not match")
	}

	bc := summerBooking()
	bc.StartDate = time.Date(2026, 6, 28, 0, 0, 0, 0, time.UTC)
	bc.EndDate = time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)
	got, err = ruleMatches(bc, rule, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("a stay overlapping the valid window should match")
	}
}

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  model.Season
	}{
		{time.March, model.SeasonSpring},
		{time.May, model.SeasonSpring},
		{time.June, model.SeasonSummer},
		{time.August, model.SeasonSummer},
		{time.September, model.SeasonFall},
		{time.November, model.SeasonFall},
		{time.December, model.SeasonWinter},
		{time.February, model.SeasonWinter},
	}

	for _, tt := range tests {
		day := time.Date(2026, tt.month, 15, 0, 0, 0, 0, time.UTC)
		if got := SeasonOf(day); got != tt.want {
			t.Errorf("SeasonOf(%s) = %s, want %s", tt.month, got, tt.want)
		}
	}
}
