// Package sampler draws one key from a finite discrete distribution
// given as non-negative weights.
package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrInvariantViolation signals a defect in the caller or in the cumulative
// walk itself, never an expected runtime condition.
var ErrInvariantViolation = errors.New("internal invariant violation")

// Weighted is one entry of a choice set. A choice set is an ordered slice;
// weights are accumulated in slice order.
type Weighted[K comparable] struct {
	Key    K
	Weight float64
}

// Total returns the sum of all weights in slice order.
func Total[K comparable](choices []Weighted[K]) float64 {
	total := 0.0
	for _, c := range choices {
		total += c.Weight
	}
	return total
}

// Choose returns one key, selected with probability weight/total.
//
// A uniform r in [0, total) is drawn and the first key whose cumulative
// weight exceeds r wins. Empty sets, non-finite weights, and a non-positive
// total are rejected with ErrInvariantViolation. Individual negative weights
// are walked like any other; a rounding residue such as -1e-14 never wins.
func Choose[K comparable](rng *rand.Rand, choices []Weighted[K]) (K, error) {
	var zero K

	if len(choices) == 0 {
		return zero, fmt.Errorf("choose from empty set: %w", ErrInvariantViolation)
	}
	for i, c := range choices {
		if math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) {
			return zero, fmt.Errorf("weight %d is %v: %w", i, c.Weight, ErrInvariantViolation)
		}
	}

	total := Total(choices)
	if !(total > 0) || math.IsInf(total, 0) {
		return zero, fmt.Errorf("total weight is %v: %w", total, ErrInvariantViolation)
	}

	r := rng.Float64() * total

	sum := 0.0
	for _, c := range choices {
		sum += c.Weight
		if r < sum {
			return c.Key, nil
		}
	}

	// Unreachable for valid input: sum ends equal to total and r < total.
	return zero, fmt.Errorf("cumulative walk exhausted (r=%v, total=%v): %w", r, total, ErrInvariantViolation)
}
