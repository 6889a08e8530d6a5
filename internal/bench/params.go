// ============================================================================
// pibench - Pi CPU Benchmark
// ============================================================================
//
// Package:     bench
// Description: Benchmark parameters, warm-up sizing and task construction
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package bench

import (
	pberror "github.com/msto63/pibench/foundation/core/error"
)

// one in warmupDivisor per-worker repetitions is run before timing starts
const warmupDivisor = 10

// Params are the validated inputs of one benchmark run
type Params struct {
	Digits        int
	RepsPerThread int
	Workers       int
}

// Validate checks that every parameter is a positive integer
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"digits", p.Digits},
		{"repsPerThread", p.RepsPerThread},
		{"threads", p.Workers},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return pberror.Newf("%s must be a positive integer, got %d", f.name, f.value).
				WithCode(pberror.CodeInvalidInput).
				WithOperation("bench.Validate").
				WithDetail("parameter", f.name).
				WithDetail("value", f.value)
		}
	}
	return nil
}

// TotalTasks returns the number of timed computations
func (p Params) TotalTasks() int {
	return p.RepsPerThread * p.Workers
}

// WarmupReps returns the number of untimed warm-up computations:
// 10% of reps, truncated, but at least one
func WarmupReps(reps int) int {
	n := reps / warmupDivisor
	if n < 1 {
		return 1
	}
	return n
}

// Task is one independent Pi computation
type Task struct {
	Digits int
}

// Tasks builds the flat task list for the timed region
func Tasks(p Params) []Task {
	tasks := make([]Task, p.TotalTasks())
	for i := range tasks {
		tasks[i] = Task{Digits: p.Digits}
	}
	return tasks
}
