package bench

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	pberror "github.com/msto63/pibench/foundation/core/error"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeGoroutine, false},
		{"goroutine", ModeGoroutine, false},
		{"Process", ModeProcess, false},
		{" process ", ModeProcess, false},
		{"threads", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if tt.wantErr {
			if !pberror.HasCode(err, pberror.CodeInvalidInput) {
				t.Errorf("ParseMode(%q) error = %v, want %s", tt.input, err, pberror.CodeInvalidInput)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v, want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestGoroutinePool_RunsWorkersInParallel(t *testing.T) {
	const workers = 4

	var (
		mu       sync.Mutex
		arrived  int
		active   int
		peak     int
		executed atomic.Int64
		release  = make(chan struct{})
	)

	compute := func(int) error {
		mu.Lock()
		arrived++
		active++
		if active > peak {
			peak = active
		}
		if arrived == workers {
			close(release)
		}
		mu.Unlock()

		// every worker must be running at the same time to pass this point
		select {
		case <-release:
		case <-time.After(10 * time.Second):
			return errors.New("workers did not run concurrently")
		}

		executed.Add(1)
		mu.Lock()
		active--
		mu.Unlock()
		return nil
	}

	pool := &GoroutinePool{Compute: compute}
	tasks := Tasks(Params{Digits: 10, RepsPerThread: 3, Workers: workers})
	if err := pool.Run(context.Background(), tasks, workers); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if executed.Load() != int64(len(tasks)) {
		t.Errorf("executed = %d, want %d", executed.Load(), len(tasks))
	}
	if peak != workers {
		t.Errorf("peak concurrency = %d, want %d", peak, workers)
	}
}

func TestGoroutinePool_FailFast(t *testing.T) {
	var executed atomic.Int64
	failure := errors.New("arithmetic failure")

	pool := &GoroutinePool{Compute: func(int) error {
		if executed.Add(1) == 1 {
			return failure
		}
		time.Sleep(time.Millisecond)
		return nil
	}}

	tasks := Tasks(Params{Digits: 10, RepsPerThread: 500, Workers: 2})
	err := pool.Run(context.Background(), tasks, 2)

	if !pberror.HasCode(err, pberror.CodeWorkerFailed) {
		t.Fatalf("Run() error = %v, want %s", err, pberror.CodeWorkerFailed)
	}
	if !errors.Is(err, failure) {
		t.Errorf("Run() error should wrap the computation failure: %v", err)
	}
	if executed.Load() >= int64(len(tasks)) {
		t.Errorf("executed all %d tasks after a failure", executed.Load())
	}
}

func TestGoroutinePool_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var executed atomic.Int64
	pool := &GoroutinePool{Compute: func(int) error {
		executed.Add(1)
		return nil
	}}

	err := pool.Run(ctx, Tasks(Params{Digits: 10, RepsPerThread: 10, Workers: 2}), 2)
	if !pberror.HasCode(err, pberror.CodeCanceled) {
		t.Errorf("Run() error = %v, want %s", err, pberror.CodeCanceled)
	}
	if executed.Load() != 0 {
		t.Errorf("executed = %d after cancellation, want 0", executed.Load())
	}
}

func TestGoroutinePool_InvalidArguments(t *testing.T) {
	pool := &GoroutinePool{Compute: func(int) error { return nil }}
	if err := pool.Run(context.Background(), nil, 0); !pberror.HasCode(err, pberror.CodeInvalidInput) {
		t.Errorf("Run() with zero workers error = %v, want %s", err, pberror.CodeInvalidInput)
	}

	empty := &GoroutinePool{}
	if err := empty.Run(context.Background(), nil, 1); !pberror.HasCode(err, pberror.CodeInternal) {
		t.Errorf("Run() without compute error = %v, want %s", err, pberror.CodeInternal)
	}
}

func TestGoroutinePool_MoreWorkersThanTasks(t *testing.T) {
	var executed atomic.Int64
	pool := &GoroutinePool{Compute: func(int) error {
		executed.Add(1)
		return nil
	}}

	if err := pool.Run(context.Background(), []Task{{Digits: 5}, {Digits: 5}}, 8); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if executed.Load() != 2 {
		t.Errorf("executed = %d, want 2", executed.Load())
	}
}
