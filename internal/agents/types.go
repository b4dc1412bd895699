// Package agents provides the agent data model, the action set, and the
// utility-driven decision procedure.
package agents

import (
	"github.com/talgya/climatesim/internal/world"
)

// AgentID is a unique identifier for an agent.
type AgentID uint64

// MinTrait is the floor applied to randomized traits so utility never
// divides by zero.
const MinTrait = 1e-6

// DefaultRoomTemp is every agent's room temperature at creation.
const DefaultRoomTemp = 20.0

// Traits are an agent's private preferences. Both lie in (0, 1] and are
// fixed at creation.
type Traits struct {
	HeatTolerance         float64 `json:"heat_tolerance"`
	ConcernForEnvironment float64 `json:"concern_for_environment"`
}

// LocalState is the agent's private, non-shared state.
type LocalState struct {
	RoomTemp float64 `json:"room_temp"`
}

// Agent is one utility-maximizing decision maker.
type Agent struct {
	ID     AgentID    `json:"id"`
	Traits Traits     `json:"traits"`
	State  LocalState `json:"state"` // Mutated only by Execute

	// Actions the agent evaluates each tick, in evaluation order.
	Actions []ActionKind `json:"actions"`
}

// NewAgent creates an agent with the given traits, the default room
// temperature, and the full action set.
func NewAgent(id AgentID, traits Traits) *Agent {
	return &Agent{
		ID:      id,
		Traits:  traits,
		State:   LocalState{RoomTemp: DefaultRoomTemp},
		Actions: append([]ActionKind(nil), AllActions...),
	}
}

// Utility scores a hypothetical outcome. As world temperature goes up the
// score goes down, inversely with heat tolerance and proportionally with
// concern for the environment. The local state does not enter the score.
func (a *Agent) Utility(_ LocalState, w world.State) float64 {
	heat := -(w.Temperature / a.Traits.HeatTolerance)
	guilt := -(w.Temperature * a.Traits.ConcernForEnvironment)
	return heat + guilt
}
