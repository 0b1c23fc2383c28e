package engine

import (
	"fmt"

	"pawresort/pkg/model"
	"pawresort/pkg/money"
)

// Adjustment is one signed line item produced by a matched rule. Reason is
// explanatory only; Amount is the figure that counts.
type Adjustment struct {
	RuleID          string               `json:"rule_id"`
	RuleName        string               `json:"rule_name"`
	RuleType        model.RuleType       `json:"rule_type"`
	AdjustmentType  model.AdjustmentType `json:"adjustment_type"`
	AdjustmentValue float64              `json:"adjustment_value"`
	Priority        int                  `json:"priority"`
	Amount          money.Money          `json:"amount"`
	Reason          string               `json:"reason"`
}

// ComputeAdjustment turns a matched rule into its monetary delta against the
// base price. Percentages round half up at minor-unit precision per line;
// fixed amounts apply verbatim and never scale with the base price.
func ComputeAdjustment(rule model.PricingRule, basePrice money.Money) Adjustment {
	adj := Adjustment{
		RuleID:          rule.ID,
		RuleName:        rule.Name,
		RuleType:        rule.Type,
		AdjustmentType:  rule.AdjustmentType,
		AdjustmentValue: rule.AdjustmentValue,
		Priority:        rule.Priority,
	}

	switch rule.AdjustmentType {
	case model.AdjustFixedAmount:
		adj.Amount = money.FromUnits(rule.AdjustmentValue, basePrice.Currency)
		adj.Reason = fmt.Sprintf("%s: %+.2f %s", rule.Name, rule.AdjustmentValue, basePrice.Currency)
	default:
		adj.Amount = basePrice.Percent(rule.AdjustmentValue)
		adj.Reason = fmt.Sprintf("%s: %+.2f%%", rule.Name, rule.AdjustmentValue)
	}
	return adj
}
