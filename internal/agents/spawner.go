// Agent spawning: creates the initial population with randomized traits.
package agents

import (
	"fmt"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// TraitSource selects how traits are drawn for new agents.
type TraitSource uint8

const (
	TraitUniform TraitSource = iota // Independent uniform draws per agent
	TraitNoise                      // Simplex noise over agent index; neighbours share temperament
)

// ParseTraitSource maps a config name to a TraitSource.
func ParseTraitSource(s string) (TraitSource, error) {
	switch s {
	case "", "uniform":
		return TraitUniform, nil
	case "noise":
		return TraitNoise, nil
	default:
		return TraitUniform, fmt.Errorf("unknown trait source %q (valid: uniform, noise)", s)
	}
}

func (t TraitSource) String() string {
	if t == TraitNoise {
		return "noise"
	}
	return "uniform"
}

// Noise sampling parameters for TraitNoise.
const (
	noiseFrequency   = 0.05
	noiseOctaves     = 3
	noisePersistence = 0.5
	noiseRowOffset   = 1000.0 // Separates the two trait rows in noise space
)

// Spawner creates agents for the simulation.
type Spawner struct {
	rng    *rand.Rand
	source TraitSource
	noise  opensimplex.Noise
	nextID AgentID
}

// NewSpawner creates an agent spawner drawing from rng.
func NewSpawner(rng *rand.Rand, source TraitSource) *Spawner {
	s := &Spawner{
		rng:    rng,
		source: source,
		nextID: 1,
	}
	if source == TraitNoise {
		s.noise = opensimplex.NewNormalized(rng.Int63())
	}
	return s
}

// SpawnPopulation creates count agents with sequential IDs.
func (s *Spawner) SpawnPopulation(count int) []*Agent {
	agents := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		agents = append(agents, s.spawnOne())
	}
	return agents
}

func (s *Spawner) spawnOne() *Agent {
	id := s.nextID
	s.nextID++
	return NewAgent(id, s.traits(id))
}

func (s *Spawner) traits(id AgentID) Traits {
	if s.source == TraitNoise {
		x := float64(id)
		return Traits{
			HeatTolerance:         clampTrait(octaveNoise(s.noise, x, 0, noiseOctaves, noiseFrequency, noisePersistence)),
			ConcernForEnvironment: clampTrait(octaveNoise(s.noise, x, noiseRowOffset, noiseOctaves, noiseFrequency, noisePersistence)),
		}
	}
	return Traits{
		HeatTolerance:         clampTrait(s.rng.Float64()),
		ConcernForEnvironment: clampTrait(s.rng.Float64()),
	}
}

// clampTrait keeps a trait inside (0, 1].
func clampTrait(v float64) float64 {
	return math.Min(1, math.Max(MinTrait, v))
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
