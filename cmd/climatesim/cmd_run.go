package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/climatesim/internal/config"
	"github.com/talgya/climatesim/internal/engine"
	"github.com/talgya/climatesim/internal/entropy"
	"github.com/talgya/climatesim/internal/logging"
	"github.com/talgya/climatesim/internal/persistence"
)

// loadConfig resolves defaults, the config file, environment, and global
// flags, in that order. overlay, when non-nil, applies command-specific flags
// before validation. The logger is installed from the result.
func loadConfig(cmd *cobra.Command, overlay func(*config.Config)) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("db") {
		cfg.Store.Path, _ = flags.GetString("db")
	}
	if overlay != nil {
		overlay(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	slog.SetDefault(logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()))
	return cfg, nil
}

// applyRunFlags overlays the root command's simulation flags.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("agents") {
		cfg.Simulation.Agents, _ = flags.GetInt("agents")
	}
	if flags.Changed("ticks") {
		cfg.Simulation.Ticks, _ = flags.GetUint64("ticks")
	}
	if flags.Changed("policy") {
		cfg.Simulation.Policy, _ = flags.GetString("policy")
	}
	if flags.Changed("traits") {
		cfg.Simulation.Traits, _ = flags.GetString("traits")
	}
	if flags.Changed("report-every") {
		cfg.Simulation.ReportEvery, _ = flags.GetUint64("report-every")
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, func(c *config.Config) { applyRunFlags(cmd, c) })
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	seed := entropy.Resolve(cfg.Simulation.Seed)
	slog.Info("starting simulation",
		"seed", seed,
		"agents", params.Agents,
		"ticks", params.Ticks,
		"policy", params.Policy.String(),
		"traits", params.Traits.String(),
	)

	sim, eng := engine.Setup(params, rand.New(rand.NewSource(seed)))

	// Run history (optional).
	var db *persistence.DB
	var runID string
	if cfg.Store.Path != "" {
		db, err = persistence.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		runID, err = db.BeginRun(seed, params)
		if err != nil {
			return err
		}
		slog.Info("recording run", "path", cfg.Store.Path, "run_id", runID)

		report := eng.OnReport
		eng.OnReport = func(tick uint64) {
			report(tick)
			if err := db.SaveSample(runID, tick, sim); err != nil {
				slog.Error("sample save failed", "tick", tick, "error", err)
			}
		}
	}

	runErr := eng.Run()
	res := sim.Result()

	if db != nil {
		if err := db.FinishRun(runID, res, runErr); err != nil {
			slog.Error("run record failed", "run_id", runID, "error", err)
		}
	}
	if runErr != nil {
		slog.Error("simulation aborted", "tick", res.Ticks, "error", runErr)
		return fmt.Errorf("simulation aborted: %w", runErr)
	}

	slog.Info("simulation complete",
		"ticks", res.Ticks,
		"actions", humanize.Comma(int64(res.Stats.Actions())),
		"turned_on", humanize.Comma(int64(res.Stats.TurnedOn)),
		"turned_off", humanize.Comma(int64(res.Stats.TurnedOff)),
		"min_temperature", fmt.Sprintf("%.3f", res.Stats.MinTemp),
		"max_temperature", fmt.Sprintf("%.3f", res.Stats.MaxTemp),
	)

	out := cmd.OutOrStdout()
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return json.NewEncoder(out).Encode(struct {
			Seed int64 `json:"seed"`
			engine.Result
		}{seed, res})
	}
	fmt.Fprintf(out, "final world state: temperature=%v\n", res.World.Temperature)
	return nil
}
