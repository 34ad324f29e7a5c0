package noise

import "math"

// Torus samples 4-D simplex noise on a torus embedded in noise space.
//
// The frequency passed to At is the torus radius: as u sweeps [0,1] the
// sample point traces a circle of that radius, so larger values cross more
// lattice cells and produce finer detail.
type Torus struct {
	src *simplex
}

// NewTorus returns a toroidal field seeded deterministically from seed.
func NewTorus(seed int64) *Torus {
	return &Torus{src: newSimplex(seed)}
}

// At evaluates the field at (u, v) with the given torus radius.
// The result lies in roughly [-1, 1] and satisfies
// At(u, v, f) == At(u+1, v, f) == At(u, v+1, f).
func (t *Torus) At(u, v, freq float64) float64 {
	su, cu := math.Sincos(2 * math.Pi * u)
	sv, cv := math.Sincos(2 * math.Pi * v)
	return t.src.noise4(cu*freq, su*freq, cv*freq, sv*freq)
}

// Octaves parameterizes a fractal sum.
type Octaves struct {
	Count      int
	Lacunarity float64
	Gain       float64
	Frequency  float64
}

// MaxOctaves bounds the octave count of every fractal composer.
const MaxOctaves = 16

// DefaultOctaves returns the standard doubling/halving octave set.
func DefaultOctaves(count int, frequency float64) Octaves {
	return Octaves{Count: count, Lacunarity: 2.0, Gain: 0.5, Frequency: frequency}
}

func (o Octaves) clamped() Octaves {
	if o.Count < 1 {
		o.Count = 1
	}
	if o.Count > MaxOctaves {
		o.Count = MaxOctaves
	}
	if !(o.Lacunarity > 0) {
		o.Lacunarity = 2.0
	}
	if o.Gain < 0 || math.IsNaN(o.Gain) {
		o.Gain = 0
	}
	if math.IsNaN(o.Frequency) || math.IsInf(o.Frequency, 0) {
		o.Frequency = 1
	}
	return o
}
