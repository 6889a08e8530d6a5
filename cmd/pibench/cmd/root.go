package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	pberror "github.com/msto63/pibench/foundation/core/error"
	"github.com/msto63/pibench/internal/bench"
	"github.com/msto63/pibench/internal/bench/history"
	"github.com/msto63/pibench/internal/pi"
	"github.com/msto63/pibench/pkg/core/config"
	"github.com/msto63/pibench/pkg/core/logging"
)

// options holds the persistent flags shared by all commands
type options struct {
	cfgFile   string
	mode      string
	history   string
	logLevel  string
	logFormat string
	verbose   bool

	stderr io.Writer
}

// NewRootCmd builds the command tree. Output goes to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stderr: stderr}

	root := &cobra.Command{
		Use:   "pibench <digits> <repsPerThread> <threads>",
		Short: "Pi CPU benchmark",
		Long: `pibench computes Pi with Machin's formula in arbitrary precision decimal
arithmetic, repeatedly and in parallel, and reports the throughput.

Each of <threads> workers performs <repsPerThread> computations of Pi to
<digits> significant digits. One report line is written to stdout.

Examples:
  pibench 5000 1000 8
  pibench --mode process 1000 100 4
  pibench --history ./data/pibench.db 500 50 2`,
		Args:          exactArgs,
		RunE:          opts.runBench,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return invalidArgs(err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "Config file (.toml, .yaml); when unset, the file named by $"+config.EnvConfigPath+" is read if that variable is set")
	flags.StringVar(&opts.mode, "mode", "", "Worker mode: goroutine or process")
	flags.StringVar(&opts.history, "history", "", "SQLite history database; enables run recording")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (json, text)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output (debug logging)")

	root.AddCommand(
		newVerifyCmd(opts),
		newHistoryCmd(opts),
		newVersionCmd(),
		newWorkerCmd(opts),
	)
	return root
}

// Run executes the command line and returns the process exit status
func Run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(stderr, err)
		return ExitCode(err)
	}
	return ExitOK
}

func exactArgs(_ *cobra.Command, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	return nil
}

func (o *options) runBench(cmd *cobra.Command, args []string) error {
	p, err := parseParams(args)
	if err != nil {
		return err
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	logger := o.newLogger(cfg)

	mode, err := bench.ParseMode(cfg.Bench.Mode)
	if err != nil {
		return err
	}
	calc := calculator(cfg)
	if err := calc.Validate(p.Digits); err != nil {
		return invalidArgs(err)
	}
	h := &bench.Harness{
		Compute: bench.PiCompute(calc),
		Logger:  logger.Named("bench"),
	}
	if mode == bench.ModeProcess {
		h.Runner = &bench.ProcessPool{
			GuardDigits:   calc.GuardDigits,
			MaxIterations: calc.MaxIterations,
			Logger:        logger.Named("process"),
		}
	}

	result, err := h.Run(cmd.Context(), p)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Line())

	if cfg.History.Enabled {
		if err := recordRun(cmd.Context(), cfg.History.Path, result); err != nil {
			logger.Warn("failed to record run", "error", err.Error(), "path", cfg.History.Path)
		}
	}
	return nil
}

// parseParams converts the three positional arguments
func parseParams(args []string) (bench.Params, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return bench.Params{}, invalidArgs(fmt.Errorf("%q is not an integer", arg))
		}
		values[i] = n
	}

	p := bench.Params{Digits: values[0], RepsPerThread: values[1], Workers: values[2]}
	if err := p.Validate(); err != nil {
		return bench.Params{}, invalidArgs(err)
	}
	return p, nil
}

// loadConfig reads the config file and applies flag overrides
func (o *options) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.cfgFile != "" {
		cfg, err = config.Load(o.cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if o.mode != "" {
		cfg.Bench.Mode = o.mode
	}
	if o.history != "" {
		cfg.History.Enabled = true
		cfg.History.Path = o.history
	}
	if o.logLevel != "" {
		cfg.General.LogLevel = o.logLevel
	}
	if o.verbose {
		cfg.General.LogLevel = "debug"
	}
	if o.logFormat != "" {
		cfg.General.LogFormat = o.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *options) newLogger(cfg *config.Config) *logging.Logger {
	return logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		ServiceName: "pibench",
		Level:       cfg.General.LogLevel,
		Format:      cfg.General.LogFormat,
		Output:      o.stderr,
	}))
}

func calculator(cfg *config.Config) pi.Calculator {
	return pi.Calculator{
		GuardDigits:   cfg.Bench.GuardDigits,
		MaxIterations: cfg.Bench.MaxIterations,
	}
}

func recordRun(ctx context.Context, path string, result bench.Result) error {
	store, err := history.Open(history.Config{Path: path})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Record(ctx, history.FromResult(result)); err != nil {
		return pberror.Wrap(err, "recording run failed")
	}
	return nil
}
