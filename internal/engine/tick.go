// Package engine provides the fixed-length, tick-based simulation loop.
package engine

import (
	"fmt"
	"log/slog"
)

// DefaultTicks is the length of a run when nothing else is configured.
const DefaultTicks = 1000

// Engine drives the simulation forward for a fixed number of ticks.
type Engine struct {
	Tick        uint64 // Last completed tick
	Ticks       uint64 // Total ticks to run
	ReportEvery uint64 // OnReport cadence in ticks (0 = only after the last tick)

	// Callbacks, populated during setup.
	OnTick   func(tick uint64) error // Every tick; an error aborts the run
	OnReport func(tick uint64)       // Every ReportEvery ticks and after the last tick
}

// NewEngine creates an engine that runs ticks ticks.
func NewEngine(ticks uint64) *Engine {
	return &Engine{Ticks: ticks}
}

// Run steps through every tick. There is no early termination: it returns
// only after the last tick or at the first tick error.
func (e *Engine) Run() error {
	slog.Debug("simulation engine started", "ticks", e.Ticks)

	for e.Tick < e.Ticks {
		if err := e.step(); err != nil {
			return err
		}
	}

	slog.Debug("simulation engine stopped", "tick", e.Tick)
	return nil
}

// step advances the simulation by one tick.
func (e *Engine) step() error {
	tick := e.Tick + 1

	if e.OnTick != nil {
		if err := e.OnTick(tick); err != nil {
			return fmt.Errorf("tick %d: %w", tick, err)
		}
	}
	e.Tick = tick

	if e.OnReport != nil && (tick == e.Ticks || (e.ReportEvery > 0 && tick%e.ReportEvery == 0)) {
		e.OnReport(tick)
	}
	return nil
}
