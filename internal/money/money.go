// Package money provides a fixed-point money value type. All financial
// arithmetic in the application goes through integer minor currency units;
// floating point is never used on the financial path.
package money

import (
	"fmt"
	"strings"
)

// Money is an amount in integer minor currency units (pence) together with
// its ISO currency code.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// New constructs a Money value.
func New(amount int64, currency string) Money {
	if currency == "" {
		currency = "GBP"
	}
	return Money{Amount: amount, Currency: currency}
}

// Add returns m + other. Mixing currencies is a programming error.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// String renders the amount with two decimals and the currency code,
// e.g. 123456 GBP -> "1,234.56 GBP".
func (m Money) String() string {
	return Format(m.Amount) + " " + m.Currency
}

// Format renders minor units as a two-decimal string with thousand
// separators, e.g. 123456 -> "1,234.56".
func Format(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	units := amount / 100
	cents := amount % 100

	digits := fmt.Sprintf("%d", units)
	var b strings.Builder
	length := len(digits)
	for i, d := range digits {
		if i > 0 && (length-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := fmt.Sprintf("%s.%02d", b.String(), cents)
	if negative {
		return "-" + out
	}
	return out
}

// PercentOf returns the given basis-point-free percentage of amount, rounded
// half-up. Used for VAT: PercentOf(subtotal, 20).
func PercentOf(amount int64, percent int64) int64 {
	product := amount * percent
	if product >= 0 {
		return (product + 50) / 100
	}
	return -((-product + 50) / 100)
}
