package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/pibench/internal/bench/history"
)

type historyOptions struct {
	digits  int
	workers int
	mode    string
	limit   int
	prune   time.Duration
}

func newHistoryCmd(opts *options) *cobra.Command {
	h := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded benchmark runs",
		Long: `Lists runs recorded with --history (or history.enabled in the config file),
newest first, together with a throughput summary.

Examples:
  pibench history --history ./data/pibench.db
  pibench history --digits 5000 --limit 5
  pibench history --prune 720h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := opts.newLogger(cfg).Named("history")

			store, err := history.Open(history.Config{Path: cfg.History.Path})
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			if h.prune > 0 {
				deleted, err := store.Prune(ctx, h.prune)
				if err != nil {
					return err
				}
				logger.Info("pruned runs", "deleted", deleted, "older_than", h.prune.String())
				fmt.Fprintf(cmd.OutOrStdout(), "pruned %d runs\n", deleted)
			}

			filter := history.Filter{Digits: h.digits, Workers: h.workers, Mode: h.mode}
			sum, err := store.Summarize(ctx, filter)
			if err != nil {
				return err
			}
			filter.Limit = h.limit
			runs, err := store.List(ctx, filter)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), history.Render(runs, sum))
			return nil
		},
	}

	cmd.Flags().IntVar(&h.digits, "digits", 0, "Only runs with this digit count")
	cmd.Flags().IntVar(&h.workers, "threads", 0, "Only runs with this worker count")
	cmd.Flags().StringVar(&h.mode, "worker-mode", "", "Only runs in this mode (goroutine, process)")
	cmd.Flags().IntVar(&h.limit, "limit", 20, "Maximum number of runs to list (0 = all)")
	cmd.Flags().DurationVar(&h.prune, "prune", 0, "Delete runs older than this age before listing")
	return cmd
}
