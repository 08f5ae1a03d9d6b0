// Package core provides money parsing and handling utilities.
//
// Amounts are held as integer cents. Parsing goes through
// shopspring/decimal so user input and stored text share one rounding rule.
package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ErrNonPositiveAmount is returned for well-formed amounts that are zero or
// negative once rounded to cents. It wraps ErrInvalidAmount.
var ErrNonPositiveAmount = fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)

// ParseDecimalToCents converts a decimal string to cents with proper rounding.
//
// The third decimal place is rounded half-up. Scientific notation is
// accepted because the file format never forbade it. Returns ErrInvalidAmount
// for malformed input and for values that are not strictly positive once
// rounded to cents.
//
// Examples:
//
//	ParseDecimalToCents("12.34")  -> 1234, nil
//	ParseDecimalToCents("12.345") -> 1235, nil
//	ParseDecimalToCents("0.004")  -> 0, ErrInvalidAmount
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.Sign() <= 0 {
		return 0, ErrNonPositiveAmount
	}
	// Rescaling to an extreme exponent allocates a big.Int with that many
	// digits, so out-of-range exponents are settled before any arithmetic.
	if d.Exponent() > maxExponent {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	if d.Exponent() < minExponent && len(d.Coefficient().String())+int(d.Exponent()) < -2 {
		return 0, ErrNonPositiveAmount
	}
	cents := d.Mul(hundred).Round(0)
	if !cents.IsPositive() {
		return 0, ErrNonPositiveAmount
	}
	if cents.Cmp(maxCents) > 0 {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return cents.IntPart(), nil
}

const (
	maxExponent = 18
	minExponent = -30
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// String renders the amount with exactly two fractional digits, without
// going through float64.
func (m Money) String() string {
	sign := ""
	c := m.Cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Add returns m + o, saturating instead of wrapping.
func (m Money) Add(o Money) Money {
	switch {
	case o.Cents > 0 && m.Cents > math.MaxInt64-o.Cents:
		return Money{Cents: math.MaxInt64}
	case o.Cents < 0 && m.Cents < -math.MaxInt64-o.Cents:
		return Money{Cents: -math.MaxInt64}
	}
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m - o, saturating like Add.
func (m Money) Sub(o Money) Money {
	switch {
	case o.Cents < 0 && m.Cents > math.MaxInt64+o.Cents:
		return Money{Cents: math.MaxInt64}
	case o.Cents > 0 && m.Cents < -math.MaxInt64+o.Cents:
		return Money{Cents: -math.MaxInt64}
	}
	return Money{Cents: m.Cents - o.Cents}
}

// Abs drops the sign, used when the sign is rendered separately.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}
