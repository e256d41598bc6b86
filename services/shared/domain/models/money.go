package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	shareddomain "github.com/acme/salescrm/services/shared/domain"
)

// DefaultCurrencyCode is the currency of the canonical zero amount.
const DefaultCurrencyCode = "USD"

// Money is an immutable amount of a single ISO-4217 currency.
//
// Invariants: amount >= 0 and the amount's scale never exceeds the currency's
// standard fraction digits (2 for USD, 0 for JPY, 3 for BHD). Arithmetic
// returns new values and re-checks both invariants.
type Money struct {
	amount decimal.Decimal
	unit   currency.Unit
	code   string
}

// NewMoney constructs a valid Money or returns an error wrapping ErrInvalidMoney.
func NewMoney(amount decimal.Decimal, currencyCode string) (Money, error) {
	if currencyCode == "" {
		return Money{}, fmt.Errorf("%w: currency is required", shareddomain.ErrInvalidMoney)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return Money{}, fmt.Errorf("%w: unknown currency %q", shareddomain.ErrInvalidMoney, currencyCode)
	}
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: amount cannot be negative", shareddomain.ErrInvalidMoney)
	}
	digits := fractionDigits(unit)
	if scale := scaleOf(amount); scale > digits {
		return Money{}, fmt.Errorf("%w: amount scale %d exceeds %d fraction digits of %s",
			shareddomain.ErrInvalidMoney, scale, digits, unit)
	}
	return Money{amount: amount, unit: unit, code: unit.String()}, nil
}

// ParseMoney parses a decimal literal such as "29.99" and builds a Money from it.
// The literal's written scale counts: "29.990" is rejected for USD.
func ParseMoney(amount, currencyCode string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: amount %q is not a decimal", shareddomain.ErrInvalidMoney, amount)
	}
	return NewMoney(d, currencyCode)
}

// ZeroMoney returns the canonical zero amount in the default currency.
func ZeroMoney() Money {
	m, _ := NewMoney(decimal.NewFromInt(0), DefaultCurrencyCode)
	return m
}

// ZeroIn returns a zero amount in the given currency.
func ZeroIn(currencyCode string) (Money, error) {
	return NewMoney(decimal.NewFromInt(0), currencyCode)
}

// Add returns m + other. Both operands must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.code == "" || other.code == "" {
		return Money{}, fmt.Errorf("%w: cannot add uninitialized money", shareddomain.ErrInvalidMoney)
	}
	if m.unit != other.unit {
		return Money{}, fmt.Errorf("%w: cannot add %s to %s", shareddomain.ErrCurrencyMismatch, other.code, m.code)
	}
	return NewMoney(m.amount.Add(other.amount), m.code)
}

// Multiply returns m scaled by n. The result is validated like any other Money,
// so a negative n on a non-zero amount is rejected.
func (m Money) Multiply(n int) (Money, error) {
	if m.code == "" {
		return Money{}, fmt.Errorf("%w: cannot multiply uninitialized money", shareddomain.ErrInvalidMoney)
	}
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(n))), m.code)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() currency.Unit { return m.unit }

// CurrencyCode returns the ISO-4217 code, or "" for an uninitialized Money.
func (m Money) CurrencyCode() string { return m.code }

// FractionDigits returns the ISO 4217 number of minor-unit digits of the currency.
func (m Money) FractionDigits() int {
	return fractionDigits(m.unit)
}

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

// SameCurrency reports whether m and other are denominated in the same currency.
func (m Money) SameCurrency(other Money) bool {
	return m.code != "" && m.unit == other.unit
}

// Equal reports whether both values have the same currency and numerically
// equal amounts (10.0 USD equals 10.00 USD).
func (m Money) Equal(other Money) bool {
	return m.code == other.code && m.amount.Equal(other.amount)
}

// AmountString renders the amount keeping its scale, e.g. "10.00".
func (m Money) AmountString() string {
	if exp := m.amount.Exponent(); exp < 0 {
		return m.amount.StringFixed(-exp)
	}
	return m.amount.String()
}

// String renders "amount currencyCode", e.g. "59.98 USD".
func (m Money) String() string {
	return m.AmountString() + " " + m.code
}

// isoMinorUnits lists the ISO 4217 minor units of currencies whose CLDR
// "digits" value, as reported by currency.Standard, differs from ISO.
var isoMinorUnits = map[string]int{
	"AFN": 2,
	"ALL": 2,
	"COP": 2,
	"IDR": 2,
	"IQD": 3,
	"IRR": 2,
	"KPW": 2,
	"LAK": 2,
	"LBP": 2,
	"MGA": 2,
	"MMK": 2,
	"PKR": 2,
	"RSD": 2,
	"SOS": 2,
	"SYP": 2,
	"UZS": 2,
	"YER": 2,
}

func fractionDigits(unit currency.Unit) int {
	if digits, ok := isoMinorUnits[unit.String()]; ok {
		return digits
	}
	digits, _ := currency.Standard.Rounding(unit)
	return digits
}

func scaleOf(d decimal.Decimal) int {
	if exp := d.Exponent(); exp < 0 {
		return int(-exp)
	}
	return 0
}
