package types

import "github.com/shopspring/decimal"

// CurrencyPlaces is the number of decimal places prices are displayed with.
const CurrencyPlaces = 2

// RoundCurrency rounds half away from zero to cents.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// FormatMoney renders an amount with exactly two decimals, e.g. "33.99".
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(CurrencyPlaces)
}

// LineTotal is unit price times quantity, unrounded.
func LineTotal(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}
