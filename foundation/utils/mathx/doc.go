// File: doc.go
// Title: Package Documentation for mathx
// Description: Package mathx provides arbitrary-precision decimal arithmetic
//              with explicit precision contexts for the pibench engine.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with decimal arithmetic and business functions
// - 2025-01-26 v0.2.0: Enhanced documentation with comprehensive structure and examples
// - 2026-10-16 v0.3.0: Business and currency helpers removed, precision moved to Context

// Package mathx provides arbitrary-precision decimal arithmetic.
//
// Overview
//
// Two types make up the package:
//
//   - Decimal: an immutable decimal value. The zero value is 0. Decimals are
//     safe to share between goroutines because no operation mutates them.
//   - Context: a working precision, counted in significant digits, plus the
//     round-half-even rule. Every rounding operation (Add, Sub, Mul, Quo,
//     Round) is a method on Context.
//
// There is no process-wide precision setting. Two goroutines computing at
// different precisions each hold their own Context and cannot affect each
// other.
//
// Usage Examples
//
//	ctx, err := mathx.NewContext(30)
//	if err != nil {
//	    return err
//	}
//	third, err := ctx.Quo(mathx.One(), mathx.NewFromInt(3))
//	// third.String() == "0.333333333333333333333333333333"
//
// Exact operations that never round live on Decimal itself:
//
//	d.Abs(), d.Neg(), d.Cmp(other), d.LessThan(other), d.String()
//
// Error Handling
//
// Errors are *error.Error values from foundation/core/error. Division by an
// exact zero returns CodeDivisionByZero, an out-of-range precision returns
// CodeInvalidPrecision, malformed input to NewFromString returns
// CodeInvalidInput. Any other failure reported by the decimal library is
// wrapped with CodeArithmetic.
package mathx
