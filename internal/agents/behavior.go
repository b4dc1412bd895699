// Agent behavior: look-ahead over the action set, utility-weighted sampling,
// and committing the chosen action.
package agents

import (
	"fmt"
	"math/rand"

	"github.com/talgya/climatesim/internal/sampler"
	"github.com/talgya/climatesim/internal/world"
)

// Policy selects how an agent turns utilities into a choice.
type Policy uint8

const (
	PolicyWeighted Policy = iota // Sample from normalized utilities (default)
	PolicyGreedy                 // Take the highest-utility action
)

// ParsePolicy maps a config name to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "weighted":
		return PolicyWeighted, nil
	case "greedy":
		return PolicyGreedy, nil
	default:
		return PolicyWeighted, fmt.Errorf("unknown policy %q (valid: weighted, greedy)", s)
	}
}

func (p Policy) String() string {
	if p == PolicyGreedy {
		return "greedy"
	}
	return "weighted"
}

// Successor returns the states that would result from taking the action,
// without committing anything.
func (a *Agent) Successor(action ActionKind, w world.State) (LocalState, world.State) {
	return action.Apply(a.State, w)
}

// Utilities scores the successor of every action, in action order.
func (a *Agent) Utilities(w world.State) []sampler.Weighted[ActionKind] {
	out := make([]sampler.Weighted[ActionKind], 0, len(a.Actions))
	for _, action := range a.Actions {
		local, next := a.Successor(action, w)
		out = append(out, sampler.Weighted[ActionKind]{Key: action, Weight: a.Utility(local, next)})
	}
	return out
}

// Weights divides each utility by the sum of all utilities. Utilities are
// never positive while the world is above zero, so the sum is negative and
// the action with the lower utility receives the larger weight.
func (a *Agent) Weights(w world.State) []sampler.Weighted[ActionKind] {
	utils := a.Utilities(w)
	mass := sampler.Total(utils)
	for i := range utils {
		utils[i].Weight /= mass
	}
	return utils
}

// Decide samples an action using the normalized utilities as a distribution.
func (a *Agent) Decide(rng *rand.Rand, w world.State) (ActionKind, error) {
	action, err := sampler.Choose(rng, a.Weights(w))
	if err != nil {
		return action, fmt.Errorf("agent %d decide at temperature %v: %w", a.ID, w.Temperature, err)
	}
	return action, nil
}

// DecideGreedy returns the highest-utility action; ties go to the action
// evaluated first.
func (a *Agent) DecideGreedy(w world.State) (ActionKind, error) {
	utils := a.Utilities(w)
	if len(utils) == 0 {
		return 0, fmt.Errorf("agent %d has no actions: %w", a.ID, sampler.ErrInvariantViolation)
	}
	best := utils[0]
	for _, u := range utils[1:] {
		if u.Weight > best.Weight {
			best = u
		}
	}
	return best.Key, nil
}

// DecideWith routes the decision by policy.
func DecideWith(a *Agent, policy Policy, rng *rand.Rand, w world.State) (ActionKind, error) {
	switch policy {
	case PolicyGreedy:
		return a.DecideGreedy(w)
	default:
		return a.Decide(rng, w)
	}
}

// Execute commits the action to the agent's local state and returns the new
// world state for the next agent.
func (a *Agent) Execute(action ActionKind, w world.State) world.State {
	local, next := a.Successor(action, w)
	a.State = local
	return next
}
