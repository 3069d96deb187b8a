package models

import (
	"errors"
	"fmt"

	"golang.org/x/text/currency"
)

var ErrCurrencyInvalid = errors.New("the currency must be a valid ISO 4217 code")

// checkCurrency validates an ISO 4217 currency code.
func checkCurrency(code string) error {
	if code == "" {
		return nil
	}

	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Errorf("%w: %q", ErrCurrencyInvalid, code)
	}

	return nil
}
