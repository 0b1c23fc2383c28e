package money

import (
	"fmt"
	"math"
)

// Money keeps amounts in integer minor units (cents) to avoid floating
// point drift in price arithmetic. All rounding in the pricing pipeline
// goes through RoundHalfUp so per-line results match what a receipt
// printed line by line would show.
type Money struct {
	Amount   int64  `json:"amount" bson:"amount"`
	Currency string `json:"currency" bson:"currency"`
}

// New constructs a Money value in minor units.
func New(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// FromUnits converts a major-unit value (e.g. 12.34 dollars) into minor
// units, rounding half up.
func FromUnits(value float64, currency string) Money {
	return Money{Amount: RoundHalfUp(value * 100), Currency: currency}
}

// RoundHalfUp rounds to the nearest integer with ties going away from
// zero, the same way charges and refunds round on an invoice line.
func RoundHalfUp(value float64) int64 {
	if value < 0 {
		return -int64(math.Floor(-value + 0.5))
	}
	return int64(math.Floor(value + 0.5))
}

// Percent returns the given percentage of the amount, rounded half up.
func (m Money) Percent(pct float64) Money {
	return Money{Amount: RoundHalfUp(float64(m.Amount) * pct / 100), Currency: m.Currency}
}

// Add sums two amounts. Currencies are assumed to match; the pricing
// engine derives every figure from a single base price, so the receiver's
// currency is kept.
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}
}

// AddAmount adds a raw minor-unit delta.
func (m Money) AddAmount(delta int64) Money {
	return Money{Amount: m.Amount + delta, Currency: m.Currency}
}

// Neg returns the negated amount preserving currency.
func (m Money) Neg() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

// MultiplyBy multiplies the amount by an integer factor.
func (m Money) MultiplyBy(times int64) Money {
	return Money{Amount: m.Amount * times, Currency: m.Currency}
}

// DivideBy divides the amount by an integer divisor, rounding half up.
// Division by zero yields a zero amount.
func (m Money) DivideBy(divisor int64) Money {
	if divisor == 0 {
		return Money{Amount: 0, Currency: m.Currency}
	}
	return Money{Amount: RoundHalfUp(float64(m.Amount) / float64(divisor)), Currency: m.Currency}
}

// FloorZero clamps negative amounts at zero.
func (m Money) FloorZero() Money {
	if m.Amount < 0 {
		return Money{Amount: 0, Currency: m.Currency}
	}
	return m
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount < 0
}

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Units returns the amount in major units.
func (m Money) Units() float64 {
	return float64(m.Amount) / 100
}

func (m Money) String() string {
	if m.Currency == "" {
		return fmt.Sprintf("%.2f", m.Units())
	}
	return fmt.Sprintf("%.2f %s", m.Units(), m.Currency)
}
