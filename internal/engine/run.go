package engine

import (
	"math/rand"

	"github.com/talgya/climatesim/internal/agents"
	"github.com/talgya/climatesim/internal/world"
)

// Params describes one run.
type Params struct {
	Agents             int
	Ticks              uint64
	InitialTemperature float64
	InitialRoomTemp    float64
	Policy             agents.Policy
	Traits             agents.TraitSource
	ReportEvery        uint64
}

// DefaultParams returns the standard run: 100 agents for 1000 ticks,
// world and rooms at 20 degrees.
func DefaultParams() Params {
	return Params{
		Agents:             DefaultAgents,
		Ticks:              DefaultTicks,
		InitialTemperature: world.DefaultTemperature,
		InitialRoomTemp:    agents.DefaultRoomTemp,
		Policy:             agents.PolicyWeighted,
		Traits:             agents.TraitUniform,
	}
}

// Result is the outcome of a completed run.
type Result struct {
	World  world.State `json:"world"`
	Ticks  uint64      `json:"ticks"`
	Agents int         `json:"agents"`
	Stats  SimStats    `json:"stats"`
}

// Setup spawns the population and wires a Simulation into an Engine.
// Callers may wrap OnReport before calling Run on the engine.
func Setup(p Params, rng *rand.Rand) (*Simulation, *Engine) {
	spawner := agents.NewSpawner(rng, p.Traits)
	pop := spawner.SpawnPopulation(p.Agents)
	for _, a := range pop {
		a.State.RoomTemp = p.InitialRoomTemp
	}

	sim := NewSimulation(world.NewState(p.InitialTemperature), pop, p.Policy, rng)

	eng := NewEngine(p.Ticks)
	eng.ReportEvery = p.ReportEvery
	eng.OnTick = sim.TickAgents
	eng.OnReport = sim.Report
	return sim, eng
}

// Run executes a complete run and returns its final state.
func Run(p Params, rng *rand.Rand) (Result, error) {
	sim, eng := Setup(p, rng)
	if err := eng.Run(); err != nil {
		return Result{}, err
	}
	return sim.Result(), nil
}

// Result snapshots the simulation's current outcome.
func (s *Simulation) Result() Result {
	return Result{
		World:  s.World,
		Ticks:  s.LastTick,
		Agents: len(s.Agents),
		Stats:  s.Stats,
	}
}
