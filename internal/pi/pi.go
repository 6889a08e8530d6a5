// Package pi computes Pi to a requested number of significant digits with
// Machin's formula and checks results against an independent reference.
package pi

import (
	pberror "github.com/msto63/pibench/foundation/core/error"
	"github.com/msto63/pibench/foundation/utils/mathx"
)

// DefaultGuardDigits is the number of extra digits carried through the
// series so rounding error stays below the last requested digit
const DefaultGuardDigits = 10

// Calculator computes Pi with Machin's formula
//
//	Pi = 16*arctan(1/5) - 4*arctan(1/239)
//
// The zero value is ready to use.
type Calculator struct {
	// GuardDigits added to the requested digits for the working scale.
	// Zero selects DefaultGuardDigits.
	GuardDigits int

	// MaxIterations bounds each arctan series. Zero selects
	// DefaultMaxIterations for the working scale.
	MaxIterations int
}

var defaultCalculator Calculator

// Compute returns Pi rounded to digits significant digits using the
// default calculator
func Compute(digits int) (mathx.Decimal, error) {
	return defaultCalculator.Compute(digits)
}

// Scale returns the working scale used for the requested digits
func (c Calculator) Scale(digits int) int {
	guard := c.GuardDigits
	if guard <= 0 {
		guard = DefaultGuardDigits
	}
	return digits + guard
}

// MaxDigits returns the largest digit count whose working scale the
// decimal engine supports
func (c Calculator) MaxDigits() int {
	return mathx.MaxPrecision - c.Scale(0)
}

// Validate reports whether digits can be computed by c
func (c Calculator) Validate(digits int) error {
	if digits < 1 {
		return pberror.Newf("digits must be positive, got %d", digits).
			WithCode(pberror.CodeInvalidInput).
			WithOperation("pi.Compute").
			WithDetail("digits", digits)
	}
	if max := c.MaxDigits(); digits > max {
		return pberror.Newf("digits must not exceed %d, got %d", max, digits).
			WithCode(pberror.CodeInvalidPrecision).
			WithOperation("pi.Compute").
			WithDetail("digits", digits).
			WithDetail("max_digits", max)
	}
	return nil
}

// Compute returns Pi rounded to digits significant digits (round-half-even).
// Pi(10) is 3.141592654.
func (c Calculator) Compute(digits int) (mathx.Decimal, error) {
	if err := c.Validate(digits); err != nil {
		return mathx.Decimal{}, err
	}

	scale := c.Scale(digits)
	ctx, err := mathx.NewContext(scale)
	if err != nil {
		return mathx.Decimal{}, pberror.Wrap(err, "invalid working scale").WithOperation("pi.Compute")
	}
	opts := []Option{WithMaxIterations(c.MaxIterations)}

	atan5, err := ArctanInverse(5, scale, opts...)
	if err != nil {
		return mathx.Decimal{}, pberror.Wrap(err, "arctan(1/5) failed")
	}
	atan239, err := ArctanInverse(239, scale, opts...)
	if err != nil {
		return mathx.Decimal{}, pberror.Wrap(err, "arctan(1/239) failed")
	}

	left, err := ctx.Mul(mathx.NewFromInt(16), atan5)
	if err != nil {
		return mathx.Decimal{}, err
	}
	right, err := ctx.Mul(mathx.NewFromInt(4), atan239)
	if err != nil {
		return mathx.Decimal{}, err
	}
	full, err := ctx.Sub(left, right)
	if err != nil {
		return mathx.Decimal{}, err
	}

	out, err := mathx.NewContext(digits)
	if err != nil {
		return mathx.Decimal{}, pberror.Wrap(err, "invalid digits").WithOperation("pi.Compute")
	}
	return out.Round(full)
}
