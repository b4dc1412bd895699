// Package world holds the shared environment every agent acts on.
package world

// DefaultTemperature is the world temperature at simulation start.
const DefaultTemperature = 20.0

// State is the single shared environment variable. It is passed by value:
// each agent receives the state produced by the previous agent's action and
// hands a new one back to the driver.
type State struct {
	Temperature float64 `json:"temperature"`
}

// NewState returns a world at the given temperature.
func NewState(temperature float64) State {
	return State{Temperature: temperature}
}
