package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	pberror "github.com/msto63/pibench/foundation/core/error"
	"github.com/msto63/pibench/internal/pi"
)

func newVerifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <digits>",
		Short: "Compute Pi once and check it against the reference",
		Long: `Computes Pi to <digits> significant digits with the benchmark calculator
and compares the result with an independent Chudnovsky computation.

Examples:
  pibench verify 100
  pibench verify --config pibench.toml 5000`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return invalidArgs(fmt.Errorf("verify takes exactly one argument, got %d", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			digits, err := strconv.Atoi(args[0])
			if err != nil || digits < 1 {
				return invalidArgs(fmt.Errorf("digits must be a positive integer, got %q", args[0]))
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := opts.newLogger(cfg).Named("verify")

			calc := calculator(cfg)
			if err := calc.Validate(digits); err != nil {
				return invalidArgs(err)
			}
			result, err := calc.Compute(digits)
			if err != nil {
				return err
			}
			v, err := pi.Verify(result, digits)
			if err != nil {
				return err
			}
			logger.Debug("verification finished", "digits", digits, "correct", v.Correct, "match", v.Match)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pi(%d) = %s\n", digits, v.Actual)
			fmt.Fprintf(out, "correct digits: %d/%d\n", v.Correct, digits)
			if !v.Match {
				return pberror.Newf("result differs from reference %s", v.Expected).
					WithCode(pberror.CodeArithmetic).
					WithOperation("verify")
			}
			return nil
		},
	}
}
