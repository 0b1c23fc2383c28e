package engine

import (
	"testing"

	apperrors "pawresort/pkg/errors"
	"pawresort/pkg/model"
)

func perPetConfig() model.SuiteCapacityConfig {
	additional := int64(4000)
	return model.SuiteCapacityConfig{
		SuiteType:               "family_suite",
		CapacityType:            "MULTI",
		MaxPets:                 4,
		PricingType:             model.PricePerPet,
		BasePriceCents:          5000,
		AdditionalPetPriceCents: &additional,
		Currency:                "USD",
	}
}

func tieredConfig() model.SuiteCapacityConfig {
	return model.SuiteCapacityConfig{
		SuiteType:    "pack_den",
		CapacityType: "MULTI",
		MaxPets:      4,
		PricingType:  model.PriceTiered,
		TieredPricing: []model.TierBand{
			{MinPets: 1, MaxPets: 1, PriceCents: 8000},
			{MinPets: 2, MaxPets: 2, PriceCents: 14000},
			{MinPets: 3, MaxPets: 3, PriceCents: 19000},
			{MinPets: 4, MaxPets: 4, PriceCents: 23000},
		},
		Currency: "USD",
	}
}

func percentageOffConfig() model.SuiteCapacityConfig {
	additional := int64(10000)
	off := 10.0
	return model.SuiteCapacityConfig{
		SuiteType:               "luxury_villa",
		CapacityType:            "MULTI",
		MaxPets:                 5,
		PricingType:             model.PricePercentageOff,
		BasePriceCents:          12000,
		AdditionalPetPriceCents: &additional,
		PercentageOff:           &off,
		Currency:                "USD",
	}
}

func breakdownSum(quote *BasePriceQuote) int64 {
	var sum int64
	for _, line := range quote.Breakdown {
		sum += line.Amount.Amount
	}
	return sum
}

func TestComputeBasePrice_PerPet(t *testing.T) {
	quote, err := ComputeBasePrice(perPetConfig(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.TotalPrice.Amount != 9000 {
		t.Errorf("total = %d, want 9000", quote.TotalPrice.Amount)
	}
	if quote.PerPetCost.Amount != 4500 {
		t.Errorf("per-pet = %d, want 4500", quote.PerPetCost.Amount)
	}
	if len(quote.Breakdown) != 2 {
		t.Fatalf("expected 2 breakdown lines, got %d", len(quote.Breakdown))
	}
	if quote.Breakdown[0].Description != "First pet" || quote.Breakdown[0].Amount.Amount != 5000 {
		t.Errorf("first line = %+v", quote.Breakdown[0])
	}
	if quote.Breakdown[1].Amount.Amount != 4000 {
		t.Errorf("second line = %+v", quote.Breakdown[1])
	}
	if breakdownSum(quote) != quote.TotalPrice.Amount {
		t.Errorf("breakdown sums to %d, total is %d", breakdownSum(quote), quote.TotalPrice.Amount)
	}
}

func TestComputeBasePrice_FlatRate(t *testing.T) {
	cfg := model.SuiteCapacityConfig{
		SuiteType:      "bunk_room",
		CapacityType:   "MULTI",
		MaxPets:        3,
		PricingType:    model.PriceFlatRate,
		BasePriceCents: 11000,
		Currency:       "USD",
	}

	for pets := 1; pets <= 3; pets++ {
		quote, err := ComputeBasePrice(cfg, pets)
		if err != nil {
			t.Fatalf("pets=%d: unexpected error: %v", pets, err)
		}
		if quote.TotalPrice.Amount != 11000 {
			t.Errorf("pets=%d: total = %d, want 11000 regardless of count", pets, quote.TotalPrice.Amount)
		}
		if len(quote.Breakdown) != 1 {
			t.Errorf("pets=%d: expected single breakdown line, got %d", pets, len(quote.Breakdown))
		}
	}
}

func TestComputeBasePrice_Tiered(t *testing.T) {
	tests := []struct {
		pets int
		want int64
	}{
		{1, 8000},
		{2, 14000},
		{3, 19000},
		{4, 23000},
	}

	for _, tt := range tests {
		quote, err := ComputeBasePrice(tieredConfig(), tt.pets)
		if err != nil {
			t.Fatalf("pets=%d: unexpected error: %v", tt.pets, err)
		}
		if quote.TotalPrice.Amount != tt.want {
			t.Errorf("pets=%d: total = %d, want %d", tt.pets, quote.TotalPrice.Amount, tt.want)
		}
	}
}

func TestComputeBasePrice_TieredGapIsHardFailure(t *testing.T) {
	cfg := tieredConfig()
	// Leave pets 3..4 uncovered but keep max_pets at 4.
	cfg.TieredPricing = cfg.TieredPricing[:2]

	_, err := ComputeBasePrice(cfg, 3)
	if err == nil {
		t.Fatal("expected an error for a pet count with no tier band")
	}
	// Band validation catches the hole before lookup; either way the call
	// must fail rather than fall back to a base price.
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation && appErr.Code != apperrors.CodeConfigurationGap {
		t.Errorf("code = %s, want validation or configuration gap", appErr.Code)
	}
}

func TestComputeBasePrice_PercentageOff(t *testing.T) {
	quote, err := ComputeBasePrice(percentageOffConfig(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.TotalPrice.Amount != 30000 {
		t.Errorf("total = %d, want 30000", quote.TotalPrice.Amount)
	}
	if quote.Savings.Amount != 6000 {
		t.Errorf("savings = %d, want 6000", quote.Savings.Amount)
	}
	if quote.SavingsPercentage < 16.6 || quote.SavingsPercentage > 16.7 {
		t.Errorf("savings percentage = %.2f, want ~16.67", quote.SavingsPercentage)
	}
	if len(quote.Breakdown) != 3 {
		t.Fatalf("expected 3 breakdown lines, got %d", len(quote.Breakdown))
	}
	if breakdownSum(quote) != quote.TotalPrice.Amount {
		t.Errorf("breakdown sums to %d, total is %d", breakdownSum(quote), quote.TotalPrice.Amount)
	}
}

func TestComputeBasePrice_PetCountOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		pets int
	}{
		{"zero pets", 0},
		{"negative pets", -1},
		{"above max", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeBasePrice(perPetConfig(), tt.pets)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
				t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeValidation)
			}
		})
	}
}

func TestComputeBasePrice_MalformedConfig(t *testing.T) {
	cfg := perPetConfig()
	cfg.AdditionalPetPriceCents = nil

	if _, err := ComputeBasePrice(cfg, 2); err == nil {
		t.Fatal("PER_PET without an additional pet price must fail")
	}
}

func TestComputeBasePrice_DefaultsCurrency(t *testing.T) {
	cfg := perPetConfig()
	cfg.Currency = ""

	quote, err := ComputeBasePrice(cfg, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TotalPrice.Currency != "USD" {
		t.Errorf("currency = %q, want USD default", quote.TotalPrice.Currency)
	}
}
