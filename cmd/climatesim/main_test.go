package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunPrintsSingleLine(t *testing.T) {
	out, err := runCLI(t, "--seed", "3", "--agents", "10", "--ticks", "50")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one output line, got %q", out)
	}
	const prefix = "final world state: temperature="
	if !strings.HasPrefix(lines[0], prefix) {
		t.Fatalf("unexpected output %q", lines[0])
	}
	temp, err := strconv.ParseFloat(strings.TrimPrefix(lines[0], prefix), 64)
	if err != nil {
		t.Fatalf("temperature not numeric: %v", err)
	}
	if math.IsNaN(temp) || math.IsInf(temp, 0) {
		t.Errorf("temperature not finite: %v", temp)
	}
}

func TestRunSameSeedSameOutput(t *testing.T) {
	a, err := runCLI(t, "--seed", "17", "--agents", "8", "--ticks", "40")
	if err != nil {
		t.Fatal(err)
	}
	b, err := runCLI(t, "--seed", "17", "--agents", "8", "--ticks", "40")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("same seed, different output: %q vs %q", a, b)
	}
}

func TestRunJSON(t *testing.T) {
	out, err := runCLI(t, "--seed", "5", "--agents", "4", "--ticks", "10", "--json")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var res struct {
		Seed  int64 `json:"seed"`
		Ticks int   `json:"ticks"`
		World struct {
			Temperature float64 `json:"temperature"`
		} `json:"world"`
		Stats struct {
			TurnedOn  int `json:"turned_on"`
			TurnedOff int `json:"turned_off"`
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if res.Seed != 5 || res.Ticks != 10 {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Stats.TurnedOn+res.Stats.TurnedOff != 40 {
		t.Errorf("expected 40 actions, got %+v", res.Stats)
	}
}

func TestRunGreedyFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "simulation:\n  agents: 2\n  ticks: 5\n  seed: 1\n  policy: greedy\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "--config", path)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// 2 agents × 5 ticks, each turning the ac off: 20 - 1.0
	temp, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(out), "final world state: temperature="), 64)
	if err != nil {
		t.Fatalf("unexpected output %q", out)
	}
	if math.Abs(temp-19) > 1e-9 {
		t.Errorf("temperature = %v, want 19", temp)
	}
}

func TestRunFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "simulation:\n  agents: 2\n  ticks: 5\n  seed: 1\n  policy: greedy\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "--config", path, "--ticks", "10", "--json")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	var res struct {
		Ticks int `json:"ticks"`
		World struct {
			Temperature float64 `json:"temperature"`
		} `json:"world"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	// 2 agents × 10 ticks, each turning the ac off: 20 - 2.0
	if res.Ticks != 10 || math.Abs(res.World.Temperature-18) > 1e-9 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	if _, err := runCLI(t, "--policy", "softmax", "--ticks", "1"); err == nil {
		t.Error("expected error for unknown policy")
	}
	if _, err := runCLI(t, "extra-arg"); err == nil {
		t.Error("expected error for positional argument")
	}
}

func TestHistoryRecordsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	for _, seed := range []string{"1", "2"} {
		if _, err := runCLI(t, "--db", dbPath, "--seed", seed, "--agents", "3", "--ticks", "10"); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	}

	out, err := runCLI(t, "history", "--db", dbPath, "--json")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	var runs []struct {
		Seed           int64  `json:"seed"`
		Ticks          int    `json:"ticks"`
		CompletedTicks int    `json:"completed_ticks"`
		Status         string `json:"status"`
	}
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	for _, r := range runs {
		if r.Status != "complete" {
			t.Errorf("run seed %d status %q", r.Seed, r.Status)
		}
		if r.Ticks != 10 || r.CompletedTicks != 10 {
			t.Errorf("run seed %d ticks %d/%d, want 10/10", r.Seed, r.CompletedTicks, r.Ticks)
		}
	}

	out, err = runCLI(t, "history", "--db", dbPath)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "STATUS") || strings.Count(out, "complete") != 2 || !strings.Contains(out, "10/10") {
		t.Errorf("unexpected table output:\n%s", out)
	}
}

func TestHistoryRequiresDB(t *testing.T) {
	t.Setenv("CLIMATESIM_DB", "")
	if _, err := runCLI(t, "history"); err == nil {
		t.Error("expected error without a database")
	}
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("version output %q missing %q", out, version)
	}
}
