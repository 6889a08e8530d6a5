// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors and the default severity
//              derived from an error code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial severity levels
// - 2026-10-16 v0.2.0: Severity mapping for arithmetic and benchmark codes

package error

// Severity represents how serious an error is
type Severity int

const (
	// SeverityLow indicates bad user input that is reported and not retried
	SeverityLow Severity = iota

	// SeverityMedium is the default for errors without a more specific code
	SeverityMedium

	// SeverityHigh indicates a failed computation or storage operation
	SeverityHigh

	// SeverityCritical indicates a broken invariant inside the engine
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert reports whether the severity warrants attention beyond logging
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode returns the default severity for a code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeNoConvergence, CodeInternal:
		return SeverityCritical
	case CodeDivisionByZero, CodeArithmetic, CodeWorkerFailed, CodeStorageError:
		return SeverityHigh
	case CodeInvalidInput, CodeInvalidPrecision, CodeConfigError:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
