package engine

import (
	"sort"

	"pawresort/pkg/model"
	"pawresort/pkg/money"
)

// Resolution is the engine's answer for one booking: the final price plus
// every line item that produced it. Downstream collaborators (deposits,
// coupons, loyalty) operate on FinalPrice only.
type Resolution struct {
	BasePrice       money.Money  `json:"base_price"`
	TotalAdjustment money.Money  `json:"total_adjustment"`
	FinalPrice      money.Money  `json:"final_price"`
	Adjustments     []Adjustment `json:"adjustments"`
}

// Resolve runs the full pricing pipeline: match rules, compute per-rule
// deltas, order them by descending priority for reporting, sum, and clamp
// the result at zero. Combination is a pure sum; priority never changes the
// arithmetic, only the order adjustments are explained in. The call either
// returns a complete result or fails before any adjustment is applied.
func Resolve(bc BookingContext, catalog []model.PricingRule, holidays []model.Holiday, basePrice money.Money) (*Resolution, error) {
	if err := bc.Validate(); err != nil {
		return nil, err
	}
	if basePrice.IsNegative() {
		basePrice = basePrice.FloorZero()
	}

	matched, err := FindApplicableRules(bc, catalog, holidays)
	if err != nil {
		return nil, err
	}

	adjustments := make([]Adjustment, 0, len(matched))
	for _, rule := range matched {
		adjustments = append(adjustments, ComputeAdjustment(rule, basePrice))
	}

	// Stable sort keeps catalog order among equal priorities, so ties
	// report deterministically.
	sort.SliceStable(adjustments, func(i, j int) bool {
		return adjustments[i].Priority > adjustments[j].Priority
	})

	total := money.New(0, basePrice.Currency)
	for _, adj := range adjustments {
		total = total.Add(adj.Amount)
	}

	return &Resolution{
		BasePrice:       basePrice,
		TotalAdjustment: total,
		FinalPrice:      basePrice.Add(total).FloorZero(),
		Adjustments:     adjustments,
	}, nil
}
