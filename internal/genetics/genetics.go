// Package genetics provides the per-field mutation and crossover helpers
// that make texture configurations usable as genomes by an evolutionary
// search.
//
// Each configuration type implements Genotype by listing its fields
// explicitly; there is no reflection. Float fields receive a uniform
// perturbation scaled to their range, integer fields step by ±1, seeds are
// replaced outright and booleans flip.
package genetics

import (
	"math"
	"math/rand"
)

// Genotype is implemented by every generator configuration.
type Genotype[T any] interface {
	// Mutate perturbs each field independently with probability rate.
	Mutate(rng *rand.Rand, rate float64)
	// Crossover draws each field from the receiver or other, 50/50.
	Crossover(other T, rng *rand.Rand) T
}

// Range is the valid interval of a float field. Step is the half-width of a
// single mutation.
type Range struct {
	Min, Max float64
	Step     float64
}

// Unit is the range of colour channels and blend weights.
var Unit = Range{Min: 0, Max: 1, Step: 0.07}

// Clamp maps x into the range. NaN maps to Min.
func (r Range) Clamp(x float64) float64 {
	if math.IsNaN(x) || x < r.Min {
		return r.Min
	}
	if x > r.Max {
		return r.Max
	}
	return x
}

// Mutate perturbs x by a uniform step in (-Step, Step) with probability
// rate and clamps the result.
func (r Range) Mutate(x float64, rng *rand.Rand, rate float64) float64 {
	if rng.Float64() >= rate {
		return x
	}
	return r.Clamp(x + (rng.Float64()-0.5)*2*r.Step)
}

// IntRange is the valid interval of an integer field.
type IntRange struct {
	Min, Max int
}

// Clamp maps x into the range.
func (r IntRange) Clamp(x int) int {
	if x < r.Min {
		return r.Min
	}
	if x > r.Max {
		return r.Max
	}
	return x
}

// Mutate steps x by ±1 with probability rate.
func (r IntRange) Mutate(x int, rng *rand.Rand, rate float64) int {
	if rng.Float64() >= rate {
		return x
	}
	if rng.Intn(2) == 0 {
		return r.Clamp(x + 1)
	}
	return r.Clamp(x - 1)
}

// Seed replaces a seed entirely with probability rate.
func Seed(x int64, rng *rand.Rand, rate float64) int64 {
	if rng.Float64() >= rate {
		return x
	}
	return rng.Int63()
}

// Flip toggles b with probability rate.
func Flip(b bool, rng *rand.Rand, rate float64) bool {
	if rng.Float64() >= rate {
		return b
	}
	return !b
}

// Color mutates each channel independently within [0, 1].
func Color(c [3]float32, rng *rand.Rand, rate float64) [3]float32 {
	for i := range c {
		c[i] = float32(Unit.Mutate(float64(c[i]), rng, rate))
	}
	return c
}

// Pick returns a or b with equal probability.
func Pick[T any](a, b T, rng *rand.Rand) T {
	if rng.Intn(2) == 0 {
		return a
	}
	return b
}

// CrossColor crosses two colours channel by channel.
func CrossColor(a, b [3]float32, rng *rand.Rand) [3]float32 {
	var out [3]float32
	for i := range out {
		out[i] = Pick(a[i], b[i], rng)
	}
	return out
}
