package engine

import (
	"fmt"

	apperrors "pawresort/pkg/errors"
	"pawresort/pkg/model"
	"pawresort/pkg/money"
)

const defaultCurrency = "USD"

// BreakdownLine is one receipt line of a multi-pet base price. Lines always
// sum to the quote's total.
type BreakdownLine struct {
	Description string      `json:"description"`
	Amount      money.Money `json:"amount"`
}

// BasePriceQuote is the result of the capacity pricing model for one suite
// configuration and pet count.
type BasePriceQuote struct {
	SuiteType         string          `json:"suite_type"`
	PricingType       model.PricingType `json:"pricing_type"`
	PetCount          int             `json:"pet_count"`
	TotalPrice        money.Money     `json:"total_price"`
	PerPetCost        money.Money     `json:"per_pet_cost"`
	Savings           money.Money     `json:"savings"`
	SavingsPercentage float64         `json:"savings_percentage"`
	Breakdown         []BreakdownLine `json:"breakdown"`
}

// ComputeBasePrice prices a multi-occupant suite under the configuration's
// strategy. petCount outside [1, MaxPets] and malformed configurations fail
// before any arithmetic; a tier table with no band for petCount is a
// configuration gap, never a silent fallback.
func ComputeBasePrice(cfg model.SuiteCapacityConfig, petCount int) (*BasePriceQuote, error) {
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error(), map[string]any{"suite_type": cfg.SuiteType})
	}
	if petCount < 1 || petCount > cfg.MaxPets {
		return nil, apperrors.Validation(
			fmt.Sprintf("pet count %d outside the allowed range 1..%d", petCount, cfg.MaxPets),
			map[string]any{"pet_count": petCount, "max_pets": cfg.MaxPets},
		)
	}

	currency := cfg.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	base := money.New(cfg.BasePriceCents, currency)

	quote := &BasePriceQuote{
		SuiteType:   cfg.SuiteType,
		PricingType: cfg.PricingType,
		PetCount:    petCount,
	}

	switch cfg.PricingType {
	case model.PricePerPet:
		perPet(quote, base, money.New(*cfg.AdditionalPetPriceCents, currency), petCount)
	case model.PriceFlatRate:
		flatRate(quote, base, petCount)
	case model.PriceTiered:
		if err := tiered(quote, cfg, currency, petCount); err != nil {
			return nil, err
		}
	case model.PricePercentageOff:
		percentageOff(quote, base, money.New(*cfg.AdditionalPetPriceCents, currency), *cfg.PercentageOff, petCount)
	default:
		return nil, apperrors.Validation(
			fmt.Sprintf("unknown pricing type %q", cfg.PricingType),
			map[string]any{"suite_type": cfg.SuiteType},
		)
	}

	quote.PerPetCost = quote.TotalPrice.DivideBy(int64(petCount))
	return quote, nil
}

func perPet(q *BasePriceQuote, base, additional money.Money, petCount int) {
	q.Breakdown = append(q.Breakdown, BreakdownLine{Description: "First pet", Amount: base})
	total := base
	for i := 2; i <= petCount; i++ {
		q.Breakdown = append(q.Breakdown, BreakdownLine{
			Description: fmt.Sprintf("Additional pet %d", i),
			Amount:      additional,
		})
		total = total.Add(additional)
	}
	q.TotalPrice = total
}

func flatRate(q *BasePriceQuote, base money.Money, petCount int) {
	q.Breakdown = []BreakdownLine{{
		Description: fmt.Sprintf("Flat rate for up to %d pets", petCount),
		Amount:      base,
	}}
	q.TotalPrice = base
}

func tiered(q *BasePriceQuote, cfg model.SuiteCapacityConfig, currency string, petCount int) error {
	band, ok := cfg.BandFor(petCount)
	if !ok {
		return apperrors.ConfigurationGap(
			fmt.Sprintf("no tier band covers %d pets for suite %q", petCount, cfg.SuiteType),
			map[string]any{"pet_count": petCount, "suite_type": cfg.SuiteType},
		)
	}
	price := money.New(band.PriceCents, currency)
	q.Breakdown = []BreakdownLine{{
		Description: fmt.Sprintf("Tier %d-%d pets", band.MinPets, band.MaxPets),
		Amount:      price,
	}}
	q.TotalPrice = price
	return nil
}

// percentageOff prices the first pet at full rate and each additional pet at
// the discounted additional-pet rate, rounding each line before summing so
// the totals match a line-by-line receipt.
func percentageOff(q *BasePriceQuote, base, additional money.Money, off float64, petCount int) {
	q.Breakdown = append(q.Breakdown, BreakdownLine{Description: "First pet", Amount: base})
	total := base

	discounted := money.New(money.RoundHalfUp(float64(additional.Amount)*(1-off/100)), base.Currency)
	for i := 2; i <= petCount; i++ {
		q.Breakdown = append(q.Breakdown, BreakdownLine{
			Description: fmt.Sprintf("Additional pet %d (%.0f%% off)", i, off),
			Amount:      discounted,
		})
		total = total.Add(discounted)
	}
	q.TotalPrice = total

	fullPrice := base.MultiplyBy(int64(petCount))
	q.Savings = fullPrice.Add(total.Neg())
	if fullPrice.Amount > 0 {
		q.SavingsPercentage = float64(q.Savings.Amount) / float64(fullPrice.Amount) * 100
	}
}
