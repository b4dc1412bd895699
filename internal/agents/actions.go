package agents

import (
	"fmt"

	"github.com/talgya/climatesim/internal/world"
)

// ActionKind enumerates everything an agent can do in a tick.
type ActionKind uint8

const (
	ActionTurnOnAC  ActionKind = iota // Cool the room, warm the world
	ActionTurnOffAC                   // Warm the room, cool the world
)

// AllActions lists every action in evaluation order.
var AllActions = []ActionKind{ActionTurnOnAC, ActionTurnOffAC}

// Per-action deltas.
const (
	RoomDelta  = 1.0
	WorldDelta = 0.1
)

// Apply returns the outcome of taking the action from the given states.
// Both inputs are values; nothing the caller holds is modified.
func (k ActionKind) Apply(local LocalState, w world.State) (LocalState, world.State) {
	switch k {
	case ActionTurnOnAC:
		local.RoomTemp -= RoomDelta
		w.Temperature += WorldDelta
	case ActionTurnOffAC:
		local.RoomTemp += RoomDelta
		w.Temperature -= WorldDelta
	}
	return local, w
}

// String returns the action's human-readable name.
func (k ActionKind) String() string {
	switch k {
	case ActionTurnOnAC:
		return "turn on ac"
	case ActionTurnOffAC:
		return "turn off ac"
	default:
		return fmt.Sprintf("action(%d)", uint8(k))
	}
}
