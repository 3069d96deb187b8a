// Package exchange converts amounts between currencies for reporting.
//
// A Converter is an immutable snapshot of the rate table. It is safe for
// concurrent use and has no side effects, so aggregation code can share a
// single instance across goroutines without synchronization.
package exchange

import (
	"github.com/shopspring/decimal"
)

// Rate is a conversion rate from one currency into another.
type Rate struct {
	From string
	To   string
	Rate decimal.Decimal
}

type pair struct {
	from string
	to   string
}

// Converter converts amounts into a single base currency.
type Converter struct {
	base  string
	rates map[pair]decimal.Decimal
}

// New returns a Converter for the given base currency and rate table.
// Rates in both directions are kept, a missing direct rate can still be
// resolved through its inverse.
func New(base string, rates []Rate) *Converter {
	c := &Converter{
		base:  base,
		rates: make(map[pair]decimal.Decimal, len(rates)),
	}

	for _, r := range rates {
		c.rates[pair{from: r.From, to: r.To}] = r.Rate
	}

	return c
}

// Base returns the base currency of the converter.
func (c *Converter) Base() string {
	return c.base
}

// ToBase converts an amount into the base currency.
//
// When no rate is known for the currency, the amount is returned
// unconverted and ok is false. Callers surface this as a data quality
// warning, aggregation must still produce a usable number.
func (c *Converter) ToBase(amount decimal.Decimal, currency string) (converted decimal.Decimal, ok bool) {
	if currency == c.base || currency == "" {
		return amount, true
	}

	if rate, found := c.rates[pair{from: currency, to: c.base}]; found {
		return amount.Mul(rate), true
	}

	// Fall back to the inverse rate if only the opposite direction
	// is configured.
	if rate, found := c.rates[pair{from: c.base, to: currency}]; found && !rate.IsZero() {
		return amount.Div(rate), true
	}

	return amount, false
}
