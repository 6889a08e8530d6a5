// File: decimal.go
// Title: Decimal Value Implementation
// Description: Immutable arbitrary-precision decimal values. Arithmetic that
//              rounds lives on Context; the operations here (Abs, Neg, Cmp,
//              formatting) are exact and independent of any precision.
// Author: msto63
// Version: v0.2.1
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core decimal operations
// - 2025-07-26 v0.1.1: Enhanced String() method with auto-rounding
// - 2026-10-16 v0.2.0: Rebuilt on apd decimals with explicit precision contexts,
//                       values are immutable and safe to share across goroutines
// - 2026-10-17 v0.2.1: Pow10 rejects exponents outside the engine range

package mathx

import (
	"strings"

	"github.com/cockroachdb/apd/v3"

	pberror "github.com/msto63/pibench/foundation/core/error"
)

// Decimal represents an immutable decimal number with arbitrary precision.
// The zero value is 0.
type Decimal struct {
	value *apd.Decimal
}

var zeroValue = apd.New(0, 0)

// ref returns the underlying value for read-only use
func (d Decimal) ref() *apd.Decimal {
	if d.value == nil {
		return zeroValue
	}
	return d.value
}

// NewFromInt creates an exact Decimal from an integer
func NewFromInt(i int64) Decimal {
	return Decimal{value: apd.New(i, 0)}
}

// NewFromString parses a decimal string such as "3.14", "-0.5" or "1E-20".
// The value is kept exactly as written.
func NewFromString(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Decimal{}, pberror.Wrap(err, "invalid decimal format").
			WithCode(pberror.CodeInvalidInput).
			WithOperation("mathx.NewFromString").
			WithDetail("input", s)
	}
	if d.Form != apd.Finite {
		return Decimal{}, pberror.New("decimal must be finite").
			WithCode(pberror.CodeInvalidInput).
			WithOperation("mathx.NewFromString").
			WithDetail("input", s)
	}
	return Decimal{value: d}, nil
}

// MustNewFromString parses a decimal string, panicking on error
func MustNewFromString(s string) Decimal {
	d, err := NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Pow10 returns exactly 10^exp. It panics when exp lies outside the
// exponent range of the engine, ±apd.MaxExponent.
func Pow10(exp int) Decimal {
	if exp > int(apd.MaxExponent) || exp < int(apd.MinExponent) {
		panic(pberror.Newf("exponent %d out of range", exp).
			WithCode(pberror.CodeInvalidInput).
			WithOperation("mathx.Pow10"))
	}
	return Decimal{value: apd.New(1, int32(exp))}
}

// Zero returns a decimal representing zero
func Zero() Decimal {
	return NewFromInt(0)
}

// One returns a decimal representing one
func One() Decimal {
	return NewFromInt(1)
}

// Abs returns |d| exactly
func (d Decimal) Abs() Decimal {
	return Decimal{value: new(apd.Decimal).Abs(d.ref())}
}

// Neg returns -d exactly
func (d Decimal) Neg() Decimal {
	return Decimal{value: new(apd.Decimal).Neg(d.ref())}
}

// Cmp compares d with other.
// Returns -1 if d < other, 0 if d == other, +1 if d > other
func (d Decimal) Cmp(other Decimal) int {
	return d.ref().Cmp(other.ref())
}

// Equal returns true if d and other are numerically equal
func (d Decimal) Equal(other Decimal) bool {
	return d.Cmp(other) == 0
}

// LessThan returns true if d < other
func (d Decimal) LessThan(other Decimal) bool {
	return d.Cmp(other) < 0
}

// GreaterThan returns true if d > other
func (d Decimal) GreaterThan(other Decimal) bool {
	return d.Cmp(other) > 0
}

// Sign returns -1, 0 or +1
func (d Decimal) Sign() int {
	return d.ref().Sign()
}

// IsZero returns true if d equals zero
func (d Decimal) IsZero() bool {
	return d.ref().IsZero()
}

// IsNegative returns true if d is less than zero
func (d Decimal) IsNegative() bool {
	return d.Sign() < 0
}

// NumDigits returns the number of digits in the coefficient
func (d Decimal) NumDigits() int {
	return int(d.ref().NumDigits())
}

// String returns the value in plain notation, never in exponent form
func (d Decimal) String() string {
	return d.ref().Text('f')
}

// Float64 returns the nearest float64. Precision is lost beyond ~17 digits.
func (d Decimal) Float64() float64 {
	f, err := d.ref().Float64()
	if err != nil {
		return 0
	}
	return f
}

// SignificantDigits returns the first n significant digits of |d| as a
// digit string without sign, decimal point or leading zeros. Fewer than n
// digits are returned when the coefficient is shorter.
func (d Decimal) SignificantDigits(n int) string {
	if n <= 0 {
		return ""
	}
	digits := stripToDigits(d.String())
	if len(digits) > n {
		digits = digits[:n]
	}
	return digits
}

// stripToDigits strips sign, decimal point and leading zeros from a plain decimal
// string, leaving only its significant digits. Trailing zeros are kept.
func stripToDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	leading := true
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if leading && r == '0' {
			continue
		}
		leading = false
		b.WriteRune(r)
	}
	return b.String()
}
