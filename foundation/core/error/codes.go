// File: codes.go
// Title: Error Codes
// Description: Defines the error codes used by pibench. Codes are stable,
//              machine-readable identifiers that callers match on instead of
//              parsing messages.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial code set
// - 2026-10-16 v0.2.0: Replaced service codes with arithmetic and benchmark codes

package error

// Code represents a machine-readable error code
type Code string

const (
	// Generic codes
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"

	// Input validation
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeInvalidPrecision Code = "INVALID_PRECISION"

	// Arithmetic
	CodeDivisionByZero Code = "DIVISION_BY_ZERO"
	CodeNoConvergence  Code = "NO_CONVERGENCE"
	CodeArithmetic     Code = "ARITHMETIC"

	// Benchmark execution
	CodeWorkerFailed Code = "WORKER_FAILED"
	CodeCanceled     Code = "CANCELED"

	// Configuration and storage
	CodeConfigError  Code = "CONFIG_ERROR"
	CodeStorageError Code = "STORAGE_ERROR"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// IsValid reports whether c is one of the defined codes
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal,
		CodeInvalidInput, CodeInvalidPrecision,
		CodeDivisionByZero, CodeNoConvergence, CodeArithmetic,
		CodeWorkerFailed, CodeCanceled,
		CodeConfigError, CodeStorageError:
		return true
	default:
		return false
	}
}

// Category groups codes for reporting
func (c Code) Category() string {
	switch c {
	case CodeInvalidInput, CodeInvalidPrecision:
		return "validation"
	case CodeDivisionByZero, CodeNoConvergence, CodeArithmetic:
		return "arithmetic"
	case CodeWorkerFailed, CodeCanceled:
		return "execution"
	case CodeConfigError:
		return "configuration"
	case CodeStorageError:
		return "storage"
	default:
		return "generic"
	}
}
