package bench

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	pberror "github.com/msto63/pibench/foundation/core/error"
	"github.com/msto63/pibench/internal/pi"
	"github.com/msto63/pibench/pkg/core/logging"
)

func TestHarness_ExecutesExactlyTotalTasks(t *testing.T) {
	var timed, warm atomic.Int64
	var warmingUp atomic.Bool
	warmingUp.Store(true)

	counting := func(digits int) error {
		if warmingUp.Load() {
			warm.Add(1)
		} else {
			timed.Add(1)
		}
		return PiCompute(pi.Calculator{})(digits)
	}

	h := &Harness{
		Compute: counting,
		Runner: runnerFunc(func(ctx context.Context, tasks []Task, workers int) error {
			warmingUp.Store(false)
			return (&GoroutinePool{Compute: counting}).Run(ctx, tasks, workers)
		}),
	}

	result, err := h.Run(context.Background(), Params{Digits: 100, RepsPerThread: 5, Workers: 4})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if timed.Load() != 20 {
		t.Errorf("timed computations = %d, want 20", timed.Load())
	}
	if warm.Load() != 1 {
		t.Errorf("warm-up computations = %d, want 1", warm.Load())
	}
	if result.TotalTasks != 20 {
		t.Errorf("TotalTasks = %d, want 20", result.TotalTasks)
	}
	if result.CalcsPerSec <= 0 || result.TotalTimeMs <= 0 {
		t.Errorf("CalcsPerSec = %v, TotalTimeMs = %v, want both > 0", result.CalcsPerSec, result.TotalTimeMs)
	}
	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if result.Mode != ModeGoroutine {
		t.Errorf("Mode = %v, want goroutine", result.Mode)
	}
	if !lineRegex.MatchString(result.Line()) {
		t.Errorf("Line() = %q does not match report format", result.Line())
	}
}

func TestHarness_DefaultsUsePiCalculator(t *testing.T) {
	result, err := (&Harness{}).Run(context.Background(), Params{Digits: 20, RepsPerThread: 2, Workers: 2})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if result.TotalTasks != 4 {
		t.Errorf("TotalTasks = %d, want 4", result.TotalTasks)
	}
}

func TestHarness_UsesClockForTimedRegion(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	calls := 0
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return base.Add(time.Duration(calls-1) * 500 * time.Millisecond)
	}

	h := &Harness{
		Compute: func(int) error { return nil },
		now:     clock,
	}
	result, err := h.Run(context.Background(), Params{Digits: 10, RepsPerThread: 10, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	if result.Elapsed != 500*time.Millisecond {
		t.Fatalf("Elapsed = %v, want 500ms", result.Elapsed)
	}
	if result.TotalTimeMs != 500 {
		t.Errorf("TotalTimeMs = %v, want 500", result.TotalTimeMs)
	}
	if result.CalcsPerSec != 40 {
		t.Errorf("CalcsPerSec = %v, want 40", result.CalcsPerSec)
	}
}

func TestHarness_InvalidParams(t *testing.T) {
	called := false
	h := &Harness{Compute: func(int) error { called = true; return nil }}

	_, err := h.Run(context.Background(), Params{Digits: 10, RepsPerThread: 0, Workers: 1})
	if !pberror.HasCode(err, pberror.CodeInvalidInput) {
		t.Errorf("Run() error = %v, want %s", err, pberror.CodeInvalidInput)
	}
	if called {
		t.Error("no computation should run for invalid parameters")
	}
}

func TestHarness_WarmupFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	runnerCalled := false
	h := &Harness{
		Compute: func(int) error { return boom },
		Runner: runnerFunc(func(context.Context, []Task, int) error {
			runnerCalled = true
			return nil
		}),
	}

	_, err := h.Run(context.Background(), Params{Digits: 10, RepsPerThread: 5, Workers: 2})
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want wrapped boom", err)
	}
	if runnerCalled {
		t.Error("timed region should not start after a failed warm-up")
	}
}

func TestHarness_WorkerFailureAborts(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Wrap(logging.NewLogger(logging.LoggerConfig{Level: "error", Format: "text", Output: &buf}))

	var n atomic.Int64
	h := &Harness{
		Compute: func(int) error {
			if n.Add(1) == 5 {
				return pberror.New("injected failure").WithCode(pberror.CodeNoConvergence)
			}
			return nil
		},
		Logger: logger,
	}

	_, err := h.Run(context.Background(), Params{Digits: 10, RepsPerThread: 10, Workers: 3})
	if !pberror.HasCode(err, pberror.CodeWorkerFailed) {
		t.Fatalf("Run() error = %v, want %s", err, pberror.CodeWorkerFailed)
	}
	if !pberror.HasCode(err, pberror.CodeNoConvergence) {
		t.Errorf("Run() error should keep the cause code: %v", err)
	}
	if !strings.Contains(buf.String(), "benchmark failed") {
		t.Errorf("failure should be logged, got %q", buf.String())
	}
}

type runnerFunc func(ctx context.Context, tasks []Task, workers int) error

func (f runnerFunc) Run(ctx context.Context, tasks []Task, workers int) error {
	return f(ctx, tasks, workers)
}

func (f runnerFunc) Mode() Mode {
	return ModeGoroutine
}
