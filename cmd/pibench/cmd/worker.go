package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/pibench/internal/bench"
	"github.com/msto63/pibench/internal/pi"
)

// newWorkerCmd is the child side of --mode process. It is not meant to be
// started by hand.
func newWorkerCmd(opts *options) *cobra.Command {
	var (
		digits int
		count  int
		calc   pi.Calculator
	)

	cmd := &cobra.Command{
		Use:    bench.WorkerCommand,
		Short:  "Run benchmark computations in a child process",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := opts.newLogger(cfg).Named("worker")
			logger.Debug("worker started", "digits", digits, "count", count)
			if err := calc.Validate(digits); err != nil {
				return err
			}

			return bench.RunWorker(cmd.Context(), bench.PiCompute(calc), digits, count, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&digits, "digits", 0, "Significant digits per computation")
	cmd.Flags().IntVar(&count, "count", 0, "Number of computations")
	cmd.Flags().IntVar(&calc.GuardDigits, "guard-digits", 0, "Extra working digits (0 = default)")
	cmd.Flags().IntVar(&calc.MaxIterations, "max-iterations", 0, "Arctan iteration bound (0 = default)")
	return cmd
}
