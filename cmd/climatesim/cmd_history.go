package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/climatesim/internal/persistence"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			if cfg.Store.Path == "" {
				return errors.New("no run history configured: pass --db or set store.path")
			}
			limit, _ := cmd.Flags().GetInt("limit")

			db, err := persistence.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.RecentRuns(limit)
			if err != nil {
				return fmt.Errorf("listing runs: %w", err)
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTARTED\tSEED\tAGENTS\tTICKS\tPOLICY\tFINAL\tSTATUS")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%.3f\t%s\n",
					r.ID[:8],
					humanize.Time(r.StartedAt),
					r.Seed,
					humanize.Comma(int64(r.Agents)),
					humanize.Comma(int64(r.CompletedTicks))+"/"+humanize.Comma(int64(r.Ticks)),
					r.Policy,
					r.FinalTemperature,
					r.Status,
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	return cmd
}
