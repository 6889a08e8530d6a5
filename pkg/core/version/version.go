// ============================================================================
// pibench - Pi CPU Benchmark
// ============================================================================
//
// Package:     version
// Description: Central version management for pibench components
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for pibench components
const (
	// Platform version
	Platform = "1.0.0"

	// Component versions
	Engine  = "1.0.0" // decimal engine and pi calculator
	Harness = "1.0.0" // benchmark harness and report line
	History = "1.0.0" // history store schema
)

// Build information, overridden via -ldflags "-X"
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "harness":
		return Harness
	case "history":
		return History
	default:
		return Platform
	}
}

// Info returns a multi-line description of the build
func Info() string {
	return fmt.Sprintf("pibench v%s\n  Git Commit: %s\n  Build Date: %s\n  Go Version: %s\n  OS/Arch:    %s/%s\n",
		Platform, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
