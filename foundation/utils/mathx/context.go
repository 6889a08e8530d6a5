// File: context.go
// Title: Precision Context
// Description: Context carries the working precision (significant digits)
//              and rounding rule for decimal arithmetic. It is a plain value:
//              every caller owns its copy, so concurrent computations at
//              different precisions never observe each other's setting.
// Author: msto63
// Version: v0.2.1
// Created: 2026-10-16
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-16 v0.2.0: Initial implementation on apd contexts
// - 2026-10-17 v0.2.1: MaxPrecision bounded by the apd exponent range

package mathx

import (
	"github.com/cockroachdb/apd/v3"

	pberror "github.com/msto63/pibench/foundation/core/error"
)

// MaxPrecision is the largest working precision a Context accepts.
// apd keeps every exponent, including the unrounded exponent of a product
// or quotient, within ±apd.MaxExponent. A product of two full-precision
// operands as small as 10^-precision needs about 4*precision of that range.
const MaxPrecision = 24_000

// Context performs arithmetic at a fixed working precision using
// round-half-even. The zero value is not usable; create one with NewContext.
type Context struct {
	precision int
	apd       apd.Context
}

// NewContext creates a context that rounds every result to precision
// significant digits
func NewContext(precision int) (Context, error) {
	if precision < 1 || precision > MaxPrecision {
		return Context{}, pberror.Newf("precision must be between 1 and %d", MaxPrecision).
			WithCode(pberror.CodeInvalidPrecision).
			WithOperation("mathx.NewContext").
			WithDetail("precision", precision)
	}
	return Context{
		precision: precision,
		apd: apd.Context{
			Precision:   uint32(precision),
			MaxExponent: apd.MaxExponent,
			MinExponent: apd.MinExponent,
			Traps:       apd.DefaultTraps,
			Rounding:    apd.RoundHalfEven,
		},
	}, nil
}

// MustNewContext creates a context, panicking on an invalid precision.
// Use it for constants known to be valid.
func MustNewContext(precision int) Context {
	c, err := NewContext(precision)
	if err != nil {
		panic(err)
	}
	return c
}

// Precision returns the working precision in significant digits
func (c Context) Precision() int {
	return c.precision
}

// Add returns x + y rounded to the context precision
func (c Context) Add(x, y Decimal) (Decimal, error) {
	d := new(apd.Decimal)
	if _, err := c.apd.Add(d, x.ref(), y.ref()); err != nil {
		return Decimal{}, c.arithmeticError("add", err)
	}
	return Decimal{value: d}, nil
}

// Sub returns x - y rounded to the context precision
func (c Context) Sub(x, y Decimal) (Decimal, error) {
	d := new(apd.Decimal)
	if _, err := c.apd.Sub(d, x.ref(), y.ref()); err != nil {
		return Decimal{}, c.arithmeticError("sub", err)
	}
	return Decimal{value: d}, nil
}

// Mul returns x * y rounded to the context precision
func (c Context) Mul(x, y Decimal) (Decimal, error) {
	d := new(apd.Decimal)
	if _, err := c.apd.Mul(d, x.ref(), y.ref()); err != nil {
		return Decimal{}, c.arithmeticError("mul", err)
	}
	return Decimal{value: d}, nil
}

// Quo returns x / y rounded to the context precision. Division by an exact
// zero fails with CodeDivisionByZero.
func (c Context) Quo(x, y Decimal) (Decimal, error) {
	if y.IsZero() {
		return Decimal{}, pberror.New("division by zero").
			WithCode(pberror.CodeDivisionByZero).
			WithOperation("mathx.Quo").
			WithDetail("dividend", x.String())
	}
	d := new(apd.Decimal)
	if _, err := c.apd.Quo(d, x.ref(), y.ref()); err != nil {
		return Decimal{}, c.arithmeticError("quo", err)
	}
	return Decimal{value: d}, nil
}

// Neg returns -x rounded to the context precision
func (c Context) Neg(x Decimal) (Decimal, error) {
	d := new(apd.Decimal)
	if _, err := c.apd.Neg(d, x.ref()); err != nil {
		return Decimal{}, c.arithmeticError("neg", err)
	}
	return Decimal{value: d}, nil
}

// Round returns x rounded to the context precision
func (c Context) Round(x Decimal) (Decimal, error) {
	d := new(apd.Decimal)
	if _, err := c.apd.Round(d, x.ref()); err != nil {
		return Decimal{}, c.arithmeticError("round", err)
	}
	return Decimal{value: d}, nil
}

func (c Context) arithmeticError(op string, err error) error {
	return pberror.Wrap(err, "decimal "+op+" failed").
		WithCode(pberror.CodeArithmetic).
		WithOperation("mathx."+op).
		WithDetail("precision", c.precision)
}
