package noise

import "math"

// FBM sums oct.Count octaves of the toroidal field, normalized by the total
// amplitude so the result stays in [-1, 1] for any octave count.
func (t *Torus) FBM(u, v float64, oct Octaves) float64 {
	oct = oct.clamped()
	amp := 1.0
	freq := oct.Frequency
	sum, norm := 0.0, 0.0
	for i := 0; i < oct.Count; i++ {
		sum += amp * t.At(u, v, freq)
		norm += amp
		amp *= oct.Gain
		freq *= oct.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// MinAttenuation is the floor applied to the ridge sharpness exponent.
const MinAttenuation = 0.1

// Ridged evaluates a ridged multifractal: each octave contributes
// (1-|n|)^attenuation, weighted by the previous octave's signal so ridges
// gain detail while valleys stay smooth. The result lies in [0, 1].
func (t *Torus) Ridged(u, v float64, oct Octaves, attenuation float64) float64 {
	oct = oct.clamped()
	if !(attenuation >= MinAttenuation) {
		attenuation = MinAttenuation
	}
	amp := 1.0
	freq := oct.Frequency
	weight := 1.0
	sum, norm := 0.0, 0.0
	for i := 0; i < oct.Count; i++ {
		n := t.At(u, v, freq)
		signal := math.Pow(clamp01(1-math.Abs(n)), attenuation) * weight
		weight = clamp01(signal * 2)
		sum += amp * signal
		norm += amp
		amp *= oct.Gain
		freq *= oct.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return clamp01(sum / norm)
}

// Warp displaces UV lookups with two independent fractal fields before the
// final evaluation. StrengthU and StrengthV scale each axis separately, so a
// large V strength produces vertical streaks.
type Warp struct {
	U, V      *Torus
	Octaves   Octaves
	StrengthU float64
	StrengthV float64
}

// Offset returns the warp displacement at (u, v). Both components are
// periodic in u and v, so u+du stays periodic as well.
func (w Warp) Offset(u, v float64) (du, dv float64) {
	return w.U.FBM(u, v, w.Octaves) * w.StrengthU, w.V.FBM(u, v, w.Octaves) * w.StrengthV
}

// FBM evaluates base at the warped coordinate.
func (w Warp) FBM(base *Torus, u, v float64, oct Octaves) float64 {
	du, dv := w.Offset(u, v)
	return base.FBM(u+du, v+dv, oct)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Normalize maps a sample from [-1, 1] to [0, 1], clamping overshoot.
func Normalize(x float64) float64 {
	return clamp01(x*0.5 + 0.5)
}
