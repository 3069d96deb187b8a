package models

import (
	"errors"
	"strings"

	"github.com/kopilka/backend/internal/exchange"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExchangeRate is a conversion rate between two currencies, looked up at
// aggregation time. A missing rate is not an error, aggregation degrades
// to rate 1 and flags a warning.
type ExchangeRate struct {
	DefaultModel
	FromCurrency string `gorm:"uniqueIndex:exchange_rate_from_currency_to_currency"`
	ToCurrency   string `gorm:"uniqueIndex:exchange_rate_from_currency_to_currency"`
	Rate         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrExchangeRateNotUnique   = errors.New("there is already a rate for this currency pair")
	ErrExchangeRateNotPositive = errors.New("the exchange rate must be larger than zero")
)

func (r *ExchangeRate) BeforeSave(_ *gorm.DB) error {
	r.FromCurrency = strings.TrimSpace(r.FromCurrency)
	r.ToCurrency = strings.TrimSpace(r.ToCurrency)

	if !r.Rate.IsPositive() {
		return ErrExchangeRateNotPositive
	}

	if err := checkCurrency(r.FromCurrency); err != nil {
		return err
	}

	return checkCurrency(r.ToCurrency)
}

// LoadConverter snapshots the rate table into a converter for the given
// base currency. The snapshot is consistent for the whole aggregation
// that uses it.
func LoadConverter(db *gorm.DB, base string) (*exchange.Converter, error) {
	var rates []ExchangeRate
	err := db.Find(&rates).Error
	if err != nil {
		return nil, err
	}

	table := make([]exchange.Rate, 0, len(rates))
	for _, r := range rates {
		table = append(table, exchange.Rate{
			From: r.FromCurrency,
			To:   r.ToCurrency,
			Rate: r.Rate,
		})
	}

	return exchange.New(base, table), nil
}
