package bench

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	pberror "github.com/msto63/pibench/foundation/core/error"
	"github.com/msto63/pibench/internal/pi"
)

// Mode selects how the timed region executes its tasks
type Mode string

const (
	ModeGoroutine Mode = "goroutine"
	ModeProcess   Mode = "process"
)

// ParseMode parses a mode name; the empty string selects ModeGoroutine
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeGoroutine:
		return ModeGoroutine, nil
	case ModeProcess:
		return ModeProcess, nil
	default:
		return "", pberror.Newf("unknown mode %q (use goroutine or process)", s).
			WithCode(pberror.CodeInvalidInput).
			WithOperation("bench.ParseMode")
	}
}

// ComputeFunc performs one Pi computation at the given digits. The result
// is discarded; only success matters to the harness.
type ComputeFunc func(digits int) error

// PiCompute returns a ComputeFunc backed by calc
func PiCompute(calc pi.Calculator) ComputeFunc {
	return func(digits int) error {
		_, err := calc.Compute(digits)
		return err
	}
}

// Runner executes a task list on exactly workers parallel workers and
// returns after every worker has finished. The first failure aborts the run.
type Runner interface {
	Run(ctx context.Context, tasks []Task, workers int) error
	Mode() Mode
}

// GoroutinePool runs tasks on a fixed set of goroutines that pull from a
// shared queue. Goroutines are scheduled on OS threads (GOMAXPROCS), so
// workers run in parallel on separate cores.
type GoroutinePool struct {
	Compute ComputeFunc
}

// Mode implements Runner
func (p *GoroutinePool) Mode() Mode {
	return ModeGoroutine
}

// Run implements Runner
func (p *GoroutinePool) Run(ctx context.Context, tasks []Task, workers int) error {
	if workers < 1 {
		return pberror.Newf("worker count must be positive, got %d", workers).
			WithCode(pberror.CodeInvalidInput).
			WithOperation("bench.GoroutinePool.Run")
	}
	if p.Compute == nil {
		return pberror.New("goroutine pool has no compute function").
			WithCode(pberror.CodeInternal).
			WithOperation("bench.GoroutinePool.Run")
	}

	queue := make(chan Task, len(tasks))
	for _, t := range tasks {
		queue <- t
	}
	close(queue)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		worker := w
		g.Go(func() error {
			for task := range queue {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := p.Compute(task.Digits); err != nil {
					return workerError(worker, err)
				}
			}
			return nil
		})
	}

	return runError(ctx, g.Wait())
}

func workerError(worker int, err error) error {
	return pberror.Wrap(err, fmt.Sprintf("worker %d failed", worker)).
		WithCode(pberror.CodeWorkerFailed).
		WithOperation("bench.worker").
		WithDetail("worker", worker)
}

// runError maps the joined error of a pool. A cancellation caused by the
// caller is reported as CodeCanceled; worker failures pass through.
func runError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if pberror.HasCode(err, pberror.CodeWorkerFailed) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return pberror.Wrap(err, "benchmark canceled").
			WithCode(pberror.CodeCanceled).
			WithOperation("bench.Run")
	}
	return err
}
