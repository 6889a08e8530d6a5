package bench

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	pberror "github.com/msto63/pibench/foundation/core/error"
	"github.com/msto63/pibench/pkg/core/logging"
)

// WorkerCommand is the hidden subcommand a child process runs
const WorkerCommand = "worker"

// ProcessPool runs the timed region in separate OS processes. Tasks are
// partitioned statically across exactly workers children; each child runs
// "<executable> worker --digits D --count N" and prints the number of
// completed computations on stdout.
type ProcessPool struct {
	// Executable defaults to the running binary
	Executable string

	// Args are inserted before the worker subcommand
	Args []string

	// Env is appended to the parent environment
	Env []string

	// GuardDigits and MaxIterations are forwarded when positive
	GuardDigits   int
	MaxIterations int

	Logger *logging.Logger
}

// Mode implements Runner
func (p *ProcessPool) Mode() Mode {
	return ModeProcess
}

// Run implements Runner
func (p *ProcessPool) Run(ctx context.Context, tasks []Task, workers int) error {
	if workers < 1 {
		return pberror.Newf("worker count must be positive, got %d", workers).
			WithCode(pberror.CodeInvalidInput).
			WithOperation("bench.ProcessPool.Run")
	}
	if len(tasks) == 0 {
		return nil
	}
	digits := tasks[0].Digits
	for _, t := range tasks {
		if t.Digits != digits {
			return pberror.New("process pool requires tasks with equal digits").
				WithCode(pberror.CodeInvalidInput).
				WithOperation("bench.ProcessPool.Run")
		}
	}

	exe := p.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			return pberror.Wrap(err, "cannot locate executable for worker processes").
				WithCode(pberror.CodeInternal)
		}
	}

	logger := p.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	g, gctx := errgroup.WithContext(ctx)
	for worker, count := range Partition(len(tasks), workers) {
		worker, count := worker, count
		g.Go(func() error {
			return p.runChild(gctx, logger, exe, worker, digits, count)
		})
	}
	return runError(ctx, g.Wait())
}

// WorkerArgs returns the child command line for one worker
func (p *ProcessPool) WorkerArgs(digits, count int) []string {
	args := append([]string{}, p.Args...)
	args = append(args, WorkerCommand,
		"--digits", strconv.Itoa(digits),
		"--count", strconv.Itoa(count))
	if p.GuardDigits > 0 {
		args = append(args, "--guard-digits", strconv.Itoa(p.GuardDigits))
	}
	if p.MaxIterations > 0 {
		args = append(args, "--max-iterations", strconv.Itoa(p.MaxIterations))
	}
	return args
}

func (p *ProcessPool) runChild(ctx context.Context, logger *logging.Logger, exe string, worker, digits, count int) error {
	cmd := exec.CommandContext(ctx, exe, p.WorkerArgs(digits, count)...)
	cmd.Env = append(os.Environ(), p.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("starting worker process", "worker", worker, "count", count)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return workerError(worker, pberror.Wrap(err, "worker process exited").
			WithDetail("stderr", strings.TrimSpace(stderr.String())))
	}

	done, err := ParseWorkerCount(stdout.String())
	if err != nil {
		return workerError(worker, err)
	}
	if done != count {
		return workerError(worker, pberror.Newf("worker completed %d of %d computations", done, count).
			WithDetail("completed", done).
			WithDetail("expected", count))
	}
	logger.Debug("worker process finished", "worker", worker, "pid", cmd.ProcessState.Pid())
	return nil
}

// Partition splits total tasks across workers as evenly as possible.
// The first total%workers workers get one extra task.
func Partition(total, workers int) []int {
	if workers < 1 {
		return nil
	}
	parts := make([]int, workers)
	for i := range parts {
		parts[i] = total / workers
		if i < total%workers {
			parts[i]++
		}
	}
	return parts
}

// RunWorker is the body of a child process: it performs count computations
// sequentially and writes the number completed to w
func RunWorker(ctx context.Context, compute ComputeFunc, digits, count int, w io.Writer) error {
	if digits < 1 || count < 0 {
		return pberror.Newf("invalid worker arguments: digits=%d count=%d", digits, count).
			WithCode(pberror.CodeInvalidInput).
			WithOperation("bench.RunWorker")
	}
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := compute(digits); err != nil {
			return pberror.Wrap(err, fmt.Sprintf("computation %d failed", i+1)).
				WithOperation("bench.RunWorker")
		}
	}
	_, err := fmt.Fprintln(w, count)
	return err
}

// ParseWorkerCount reads the completion count from a child's stdout
func ParseWorkerCount(output string) (int, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	n, err := strconv.Atoi(last)
	if err != nil {
		return 0, pberror.Wrap(err, "unreadable worker output").
			WithCode(pberror.CodeWorkerFailed).
			WithDetail("output", output)
	}
	return n, nil
}
