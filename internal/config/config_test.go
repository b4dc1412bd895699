package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talgya/climatesim/internal/agents"
)

func TestDefault(t *testing.T) {
	config := Default()

	if config.Simulation.Agents != 100 {
		t.Errorf("expected 100 agents, got %d", config.Simulation.Agents)
	}
	if config.Simulation.Ticks != 1000 {
		t.Errorf("expected 1000 ticks, got %d", config.Simulation.Ticks)
	}
	if config.Simulation.InitialTemperature != 20 {
		t.Errorf("expected initial temperature 20, got %v", config.Simulation.InitialTemperature)
	}
	if config.Simulation.InitialRoomTemp != 20 {
		t.Errorf("expected initial room temp 20, got %v", config.Simulation.InitialRoomTemp)
	}
	if config.Simulation.Seed != 0 {
		t.Errorf("expected seed 0, got %d", config.Simulation.Seed)
	}
	if config.Store.Path != "" {
		t.Errorf("expected recording disabled, got path %q", config.Store.Path)
	}
	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
simulation:
  agents: 12
  ticks: 30
  seed: 7
  policy: greedy
  traits: noise
logging:
  level: debug
store:
  path: runs.db
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Simulation.Agents != 12 || config.Simulation.Ticks != 30 || config.Simulation.Seed != 7 {
		t.Errorf("unexpected simulation section: %+v", config.Simulation)
	}
	// Unset keys keep their defaults.
	if config.Simulation.InitialTemperature != 20 {
		t.Errorf("expected default initial temperature, got %v", config.Simulation.InitialTemperature)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("expected level 'debug', got '%s'", config.Logging.Level)
	}
	if config.Store.Path != "runs.db" {
		t.Errorf("expected store path 'runs.db', got '%s'", config.Store.Path)
	}

	params, err := config.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if params.Policy != agents.PolicyGreedy || params.Traits != agents.TraitNoise {
		t.Errorf("unexpected params: %+v", params)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("simulation: [not, a, map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CLIMATESIM_SEED", "1234")
	t.Setenv("CLIMATESIM_LOG_LEVEL", "trace")
	t.Setenv("CLIMATESIM_DB", "/tmp/history.db")

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Simulation.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", config.Simulation.Seed)
	}
	if config.Logging.Level != "trace" {
		t.Errorf("expected level trace, got %s", config.Logging.Level)
	}
	if config.Store.Path != "/tmp/history.db" {
		t.Errorf("expected store path override, got %s", config.Store.Path)
	}
}

func TestLoadBadSeed(t *testing.T) {
	t.Setenv("CLIMATESIM_SEED", "forty-two")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric seed")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"negative agents", func(c *Config) { c.Simulation.Agents = -1 }, true},
		{"unknown policy", func(c *Config) { c.Simulation.Policy = "softmax" }, true},
		{"unknown traits", func(c *Config) { c.Simulation.Traits = "gaussian" }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"empty log level", func(c *Config) { c.Logging.Level = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
