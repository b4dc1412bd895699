// Simulation ties the world and the population together and runs them each tick.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/talgya/climatesim/internal/agents"
	"github.com/talgya/climatesim/internal/logging"
	"github.com/talgya/climatesim/internal/world"
)

// DefaultAgents is the population size when nothing else is configured.
const DefaultAgents = 100

// Simulation holds the world state and the population.
type Simulation struct {
	World    world.State
	Agents   []*agents.Agent
	Policy   agents.Policy
	LastTick uint64

	Stats SimStats

	rng *rand.Rand
}

// SimStats tracks aggregate run statistics.
type SimStats struct {
	TurnedOn    uint64  `json:"turned_on"`
	TurnedOff   uint64  `json:"turned_off"`
	MinTemp     float64 `json:"min_temperature"`
	MaxTemp     float64 `json:"max_temperature"`
	AvgRoomTemp float64 `json:"avg_room_temp"`
}

// Actions returns the total number of actions executed.
func (s SimStats) Actions() uint64 {
	return s.TurnedOn + s.TurnedOff
}

// NewSimulation creates a Simulation over an existing population. rng is the
// only source of randomness used during the run.
func NewSimulation(w world.State, ag []*agents.Agent, policy agents.Policy, rng *rand.Rand) *Simulation {
	sim := &Simulation{
		World:  w,
		Agents: ag,
		Policy: policy,
		rng:    rng,
	}
	sim.Stats.MinTemp = w.Temperature
	sim.Stats.MaxTemp = w.Temperature
	sim.updateStats()
	return sim
}

// TickAgents runs one tick: every agent, in population order, decides and
// executes against the world state left by the previous agent.
func (s *Simulation) TickAgents(tick uint64) error {
	s.LastTick = tick
	trace := slog.Default().Enabled(context.Background(), logging.LevelTrace)

	for _, a := range s.Agents {
		action, err := agents.DecideWith(a, s.Policy, s.rng, s.World)
		if err != nil {
			return err
		}
		s.World = a.Execute(action, s.World)

		switch action {
		case agents.ActionTurnOnAC:
			s.Stats.TurnedOn++
		case agents.ActionTurnOffAC:
			s.Stats.TurnedOff++
		}
		s.Stats.MinTemp = math.Min(s.Stats.MinTemp, s.World.Temperature)
		s.Stats.MaxTemp = math.Max(s.Stats.MaxTemp, s.World.Temperature)

		if trace {
			slog.Log(context.Background(), logging.LevelTrace, "decision",
				"tick", tick,
				"agent", a.ID,
				"action", action.String(),
				"temperature", s.World.Temperature,
			)
		}
	}

	s.updateStats()
	return nil
}

// Report logs a progress line for the given tick.
func (s *Simulation) Report(tick uint64) {
	slog.Info("tick report",
		"tick", tick,
		"temperature", fmt.Sprintf("%.3f", s.World.Temperature),
		"avg_room_temp", fmt.Sprintf("%.3f", s.Stats.AvgRoomTemp),
		"turned_on", s.Stats.TurnedOn,
		"turned_off", s.Stats.TurnedOff,
	)
}

func (s *Simulation) updateStats() {
	if len(s.Agents) == 0 {
		return
	}
	total := 0.0
	for _, a := range s.Agents {
		total += a.State.RoomTemp
	}
	s.Stats.AvgRoomTemp = total / float64(len(s.Agents))
}
