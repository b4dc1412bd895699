// Package config provides configuration loading for climatesim.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/talgya/climatesim/internal/agents"
	"github.com/talgya/climatesim/internal/engine"
	"github.com/talgya/climatesim/internal/logging"
	"github.com/talgya/climatesim/internal/world"
)

// Config contains all climatesim settings.
type Config struct {
	// Simulation describes the run itself.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Store configures the optional run history database.
	Store StoreConfig `json:"store" yaml:"store"`
}

// SimulationConfig sets population, length, and initial conditions.
type SimulationConfig struct {
	Agents int    `json:"agents" yaml:"agents"`
	Ticks  uint64 `json:"ticks" yaml:"ticks"`

	// Seed fixes the random source. 0 picks a fresh seed for every run.
	Seed int64 `json:"seed" yaml:"seed"`

	InitialTemperature float64 `json:"initial_temperature" yaml:"initial_temperature"`
	InitialRoomTemp    float64 `json:"initial_room_temp" yaml:"initial_room_temp"`

	// Policy is "weighted" (default) or "greedy".
	Policy string `json:"policy" yaml:"policy"`

	// Traits is "uniform" (default) or "noise".
	Traits string `json:"traits" yaml:"traits"`

	// ReportEvery logs progress every N ticks; 0 reports only at the end.
	ReportEvery uint64 `json:"report_every" yaml:"report_every"`
}

// LoggingConfig configures log verbosity.
type LoggingConfig struct {
	// Level is "info" (default), "debug", "trace", "warn", or "error".
	// "trace" logs every agent decision.
	Level string `json:"level" yaml:"level"`
}

// StoreConfig configures run history persistence.
type StoreConfig struct {
	// Path is the SQLite file. Empty disables recording.
	Path string `json:"path" yaml:"path"`
}

// Default returns a Config with the standard run settings.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Agents:             engine.DefaultAgents,
			Ticks:              engine.DefaultTicks,
			Seed:               0,
			InitialTemperature: world.DefaultTemperature,
			InitialRoomTemp:    agents.DefaultRoomTemp,
			Policy:             "weighted",
			Traits:             "uniform",
			ReportEvery:        100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load returns the defaults, overlaid by the file at path (if non-empty) and
// then by environment variables.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys missing
// from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Simulation.Agents < 0 {
		return fmt.Errorf("agents must be non-negative, got %d", c.Simulation.Agents)
	}
	if _, err := agents.ParsePolicy(c.Simulation.Policy); err != nil {
		return err
	}
	if _, err := agents.ParseTraitSource(c.Simulation.Traits); err != nil {
		return err
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, warn, error)", c.Logging.Level)
	}
	return nil
}

// Params converts the simulation section into engine parameters.
func (c *Config) Params() (engine.Params, error) {
	policy, err := agents.ParsePolicy(c.Simulation.Policy)
	if err != nil {
		return engine.Params{}, err
	}
	traits, err := agents.ParseTraitSource(c.Simulation.Traits)
	if err != nil {
		return engine.Params{}, err
	}
	return engine.Params{
		Agents:             c.Simulation.Agents,
		Ticks:              c.Simulation.Ticks,
		InitialTemperature: c.Simulation.InitialTemperature,
		InitialRoomTemp:    c.Simulation.InitialRoomTemp,
		Policy:             policy,
		Traits:             traits,
		ReportEvery:        c.Simulation.ReportEvery,
	}, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("CLIMATESIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CLIMATESIM_SEED: %w", err)
		}
		config.Simulation.Seed = seed
	}
	if v := os.Getenv("CLIMATESIM_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("CLIMATESIM_DB"); v != "" {
		config.Store.Path = v
	}
	return nil
}
