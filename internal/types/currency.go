package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// Currency is one of the monetary units supported by the tracker.
//
// The set is closed on purpose: all aggregation, conversion and display
// logic only ever deals with these three currencies.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyILS Currency = "ILS"
)

// DefaultCurrency is used whenever a request does not specify a currency.
const DefaultCurrency = CurrencyUSD

var ErrUnsupportedCurrency = errors.New("this currency is not supported, supported currencies are USD, EUR and ILS")

// Currencies returns all supported currencies.
func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyEUR, CurrencyILS}
}

// ParseCurrency parses a currency code.
//
// The code has to be a valid ISO 4217 code and one of the supported
// currencies.
func ParseCurrency(s string) (Currency, error) {
	if s == "" {
		return DefaultCurrency, nil
	}

	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a currency code", ErrUnsupportedCurrency, s)
	}

	c := Currency(unit.String())
	if !c.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCurrency, unit)
	}

	return c, nil
}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyILS:
		return true
	}

	return false
}

// String returns the ISO 4217 code.
func (c Currency) String() string {
	return string(c)
}

// Scan writes the value from the database.
func (c *Currency) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*c = Currency(v)
	case []byte:
		*c = Currency(v)
	default:
		return fmt.Errorf("cannot scan %T into a currency", value)
	}

	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (c Currency) Value() (driver.Value, error) {
	return string(c), nil
}
