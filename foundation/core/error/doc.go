// Package error provides the structured error type used throughout pibench.
//
// Package: error
// Title: pibench Error Handling
// Description: Structured errors with codes, severities, operation names and
//              details. Errors propagate by explicit return; nothing in the
//              benchmark retries, so the code is what callers branch on.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-16 v0.2.0: Arithmetic and benchmark codes, errors.Is by code
//
// Usage:
//
//	import pberror "github.com/msto63/pibench/foundation/core/error"
//
//	err := pberror.New("division by zero").
//		WithCode(pberror.CodeDivisionByZero).
//		WithOperation("mathx.Quo")
//
//	wrapped := pberror.Wrap(err, "arctan series failed").
//		WithDetail("base", 239)
//
//	if pberror.HasCode(wrapped, pberror.CodeDivisionByZero) {
//		// arithmetic failure, abort the run
//	}
package error
