package model

import (
	"testing"
	"time"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func f64Ptr(v float64) *float64 {
	return &v
}

func validSeasonalRule() PricingRule {
	return PricingRule{
		Name:            "Summer Surge",
		Type:            RuleSeasonal,
		IsActive:        true,
		Priority:        10,
		AdjustmentType:  AdjustPercentage,
		AdjustmentValue: 20,
		Seasonal:        &SeasonalCondition{Seasons: []Season{SeasonSummer}},
	}
}

func TestPricingRuleValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *PricingRule)
		wantError bool
	}{
		{
			name:      "valid seasonal rule",
			mutate:    func(r *PricingRule) {},
			wantError: false,
		},
		{
			name: "percentage above 100 rejected",
			mutate: func(r *PricingRule) {
				r.AdjustmentValue = 150
			},
			wantError: true,
		},
		{
			name: "percentage below -100 rejected",
			mutate: func(r *PricingRule) {
				r.AdjustmentValue = -120
			},
			wantError: true,
		},
		{
			name: "percentage at boundary accepted",
			mutate: func(r *PricingRule) {
				r.AdjustmentValue = -100
			},
			wantError: false,
		},
		{
			name: "fixed amount outside percentage range accepted",
			mutate: func(r *PricingRule) {
				r.AdjustmentType = AdjustFixedAmount
				r.AdjustmentValue = -150
			},
			wantError: false,
		},
		{
			name: "missing condition payload rejected",
			mutate: func(r *PricingRule) {
				r.Seasonal = nil
			},
			wantError: true,
		},
		{
			name: "mismatched payload rejected",
			mutate: func(r *PricingRule) {
				r.Seasonal = nil
				r.Capacity = &CapacityCondition{MinOccupancyPercent: intPtr(80)}
			},
			wantError: true,
		},
		{
			name: "two payloads rejected",
			mutate: func(r *PricingRule) {
				r.Capacity = &CapacityCondition{MinOccupancyPercent: intPtr(80)}
			},
			wantError: true,
		},
		{
			name: "day-of-week without days or weekend flag rejected",
			mutate: func(r *PricingRule) {
				r.Type = RulePeakTime
				r.Seasonal = nil
				r.DayOfWeek = &DayOfWeekCondition{}
			},
			wantError: true,
		},
		{
			name: "weekend-only flag satisfies day condition",
			mutate: func(r *PricingRule) {
				r.Type = RulePeakTime
				r.Seasonal = nil
				r.DayOfWeek = &DayOfWeekCondition{WeekendOnly: true}
			},
			wantError: false,
		},
		{
			name: "capacity condition without thresholds rejected",
			mutate: func(r *PricingRule) {
				r.Type = RuleCapacityBased
				r.Seasonal = nil
				r.Capacity = &CapacityCondition{}
			},
			wantError: true,
		},
		{
			name: "inverted valid window rejected",
			mutate: func(r *PricingRule) {
				from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
				until := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
				r.ValidFrom = &from
				r.ValidUntil = &until
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := validSeasonalRule()
			tt.mutate(&rule)
			err := rule.Validate()
			if tt.wantError && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestSuiteCapacityConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       SuiteCapacityConfig
		wantError bool
	}{
		{
			name: "per-pet needs additional pet price",
			cfg: SuiteCapacityConfig{
				SuiteType:      "standard_suite",
				CapacityType:   "MULTI",
				MaxPets:        4,
				PricingType:    PricePerPet,
				BasePriceCents: 5000,
			},
			wantError: true,
		},
		{
			name: "valid per-pet config",
			cfg: SuiteCapacityConfig{
				SuiteType:               "standard_suite",
				CapacityType:            "MULTI",
				MaxPets:                 4,
				PricingType:             PricePerPet,
				BasePriceCents:          5000,
				AdditionalPetPriceCents: int64Ptr(4000),
			},
			wantError: false,
		},
		{
			name: "flat rate needs nothing extra",
			cfg: SuiteCapacityConfig{
				SuiteType:      "family_suite",
				CapacityType:   "MULTI",
				MaxPets:        6,
				PricingType:    PriceFlatRate,
				BasePriceCents: 12000,
			},
			wantError: false,
		},
		{
			name: "tiered bands with gap rejected",
			cfg: SuiteCapacityConfig{
				SuiteType:    "family_suite",
				CapacityType: "MULTI",
				MaxPets:      4,
				PricingType:  PriceTiered,
				TieredPricing: []TierBand{
					{MinPets: 1, MaxPets: 1, PriceCents: 8000},
					{MinPets: 3, MaxPets: 4, PriceCents: 19000},
				},
			},
			wantError: true,
		},
		{
			name: "tiered bands with overlap rejected",
			cfg: SuiteCapacityConfig{
				SuiteType:    "family_suite",
				CapacityType: "MULTI",
				MaxPets:      3,
				PricingType:  PriceTiered,
				TieredPricing: []TierBand{
					{MinPets: 1, MaxPets: 2, PriceCents: 8000},
					{MinPets: 2, MaxPets: 3, PriceCents: 14000},
				},
			},
			wantError: true,
		},
		{
			name: "tiered bands stopping short of max pets rejected",
			cfg: SuiteCapacityConfig{
				SuiteType:    "family_suite",
				CapacityType: "MULTI",
				MaxPets:      4,
				PricingType:  PriceTiered,
				TieredPricing: []TierBand{
					{MinPets: 1, MaxPets: 1, PriceCents: 8000},
					{MinPets: 2, MaxPets: 3, PriceCents: 14000},
				},
			},
			wantError: true,
		},
		{
			name: "exact partition accepted",
			cfg: SuiteCapacityConfig{
				SuiteType:    "family_suite",
				CapacityType: "MULTI",
				MaxPets:      4,
				PricingType:  PriceTiered,
				TieredPricing: []TierBand{
					{MinPets: 1, MaxPets: 1, PriceCents: 8000},
					{MinPets: 2, MaxPets: 2, PriceCents: 14000},
					{MinPets: 3, MaxPets: 3, PriceCents: 19000},
					{MinPets: 4, MaxPets: 4, PriceCents: 23000},
				},
			},
			wantError: false,
		},
		{
			name: "percentage off needs both optional fields",
			cfg: SuiteCapacityConfig{
				SuiteType:               "luxury_suite",
				CapacityType:            "MULTI",
				MaxPets:                 3,
				PricingType:             PricePercentageOff,
				BasePriceCents:          12000,
				AdditionalPetPriceCents: int64Ptr(10000),
			},
			wantError: true,
		},
		{
			name: "valid percentage off config",
			cfg: SuiteCapacityConfig{
				SuiteType:               "luxury_suite",
				CapacityType:            "MULTI",
				MaxPets:                 3,
				PricingType:             PricePercentageOff,
				BasePriceCents:          12000,
				AdditionalPetPriceCents: int64Ptr(10000),
				PercentageOff:           f64Ptr(10),
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantError && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestHolidayMatches(t *testing.T) {
	exact := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	holiday := Holiday{Name: "Christmas 2026", Date: &exact}

	if !holiday.Matches(time.Date(2026, 12, 25, 15, 30, 0, 0, time.UTC)) {
		t.Errorf("exact holiday should match regardless of time of day")
	}
	if holiday.Matches(time.Date(2027, 12, 25, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("exact holiday should not match a different year")
	}

	recurring := Holiday{Name: "Independence Day", Month: 7, Day: 4, IsRecurring: true}
	if !recurring.Matches(time.Date(2030, 7, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("recurring holiday should match any year")
	}
	if recurring.Matches(time.Date(2030, 7, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("recurring holiday should not match the wrong day")
	}
}

func TestReservationCovers(t *testing.T) {
	res := Reservation{
		ResourceType: "standard_kennel",
		StartDate:    time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC),
		Status:       ReservationConfirmed,
	}

	if !res.Covers(time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("check-in day should be covered")
	}
	if !res.Covers(time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("middle day should be covered")
	}
	if res.Covers(time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("check-out day should not be covered")
	}
}
