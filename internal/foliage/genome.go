package foliage

import (
	"math"
	"math/rand"

	"github.com/MeKo-Tech/proctex/internal/genetics"
	"github.com/MeKo-Tech/proctex/internal/texture"
)

var (
	unit = genetics.Unit

	serrationCount    = genetics.Range{Min: 0, Max: 40, Step: 2}
	serrationStrength = genetics.Range{Min: 0, Max: 0.9, Step: 0.01}
	veinAngle         = genetics.Range{Min: 0.2, Max: 1.45, Step: 0.1}
	veinCount         = genetics.Range{Min: 0, Max: 16, Step: 1}
	midribWidth       = genetics.Range{Min: 0.01, Max: 0.4, Step: 0.02}
	leafNormal        = genetics.Range{Min: 0.5, Max: 6, Step: 0.3}
	lobeCount         = genetics.Range{Min: 0, Max: 8, Step: 0.5}
	lobeSharpness     = genetics.Range{Min: 0.1, Max: 4, Step: 0.2}
	petioleLength     = genetics.Range{Min: 0, Max: 0.4, Step: 0.02}
	petioleWidth      = genetics.Range{Min: 0.005, Max: 0.06, Step: 0.004}

	stemHalfWidth = genetics.Range{Min: 0.005, Max: 0.05, Step: 0.005}
	leafPairs     = genetics.IntRange{Min: 1, Max: 8}
	leafAngle     = genetics.Range{Min: 0.1, Max: math.Pi / 2, Step: 0.15}
	leafScale     = genetics.Range{Min: 0.15, Max: 0.6, Step: 0.05}
	stemCurve     = genetics.Range{Min: 0, Max: 0.2, Step: 0.02}
)

func clampRGB(c texture.RGB) texture.RGB {
	for i := range c {
		c[i] = float32(unit.Clamp(float64(c[i])))
	}
	return c
}

// Mutate perturbs each field with probability rate.
func (c *LeafConfig) Mutate(rng *rand.Rand, rate float64) {
	c.Seed = genetics.Seed(c.Seed, rng, rate)
	c.ColorBase = genetics.Color(c.ColorBase, rng, rate)
	c.ColorEdge = genetics.Color(c.ColorEdge, rng, rate)
	c.SerrationCount = serrationCount.Mutate(c.SerrationCount, rng, rate)
	c.SerrationStrength = serrationStrength.Mutate(c.SerrationStrength, rng, rate)
	c.VeinAngle = veinAngle.Mutate(c.VeinAngle, rng, rate)
	c.VeinCount = veinCount.Mutate(c.VeinCount, rng, rate)
	c.MidribWidth = midribWidth.Mutate(c.MidribWidth, rng, rate)
	c.VenuleStrength = unit.Mutate(c.VenuleStrength, rng, rate)
	c.MicroDetail = unit.Mutate(c.MicroDetail, rng, rate)
	c.NormalStrength = leafNormal.Mutate(c.NormalStrength, rng, rate)
	c.LobeCount = lobeCount.Mutate(c.LobeCount, rng, rate)
	c.LobeDepth = unit.Mutate(c.LobeDepth, rng, rate)
	c.LobeSharpness = lobeSharpness.Mutate(c.LobeSharpness, rng, rate)
	c.PetioleLength = petioleLength.Mutate(c.PetioleLength, rng, rate)
	c.PetioleWidth = petioleWidth.Mutate(c.PetioleWidth, rng, rate)
}

// Crossover takes each field from c or other.
func (c LeafConfig) Crossover(other LeafConfig, rng *rand.Rand) LeafConfig {
	return LeafConfig{
		Seed:              genetics.Pick(c.Seed, other.Seed, rng),
		ColorBase:         genetics.CrossColor(c.ColorBase, other.ColorBase, rng),
		ColorEdge:         genetics.CrossColor(c.ColorEdge, other.ColorEdge, rng),
		SerrationCount:    genetics.Pick(c.SerrationCount, other.SerrationCount, rng),
		SerrationStrength: genetics.Pick(c.SerrationStrength, other.SerrationStrength, rng),
		VeinAngle:         genetics.Pick(c.VeinAngle, other.VeinAngle, rng),
		VeinCount:         genetics.Pick(c.VeinCount, other.VeinCount, rng),
		MidribWidth:       genetics.Pick(c.MidribWidth, other.MidribWidth, rng),
		VenuleStrength:    genetics.Pick(c.VenuleStrength, other.VenuleStrength, rng),
		MicroDetail:       genetics.Pick(c.MicroDetail, other.MicroDetail, rng),
		NormalStrength:    genetics.Pick(c.NormalStrength, other.NormalStrength, rng),
		LobeCount:         genetics.Pick(c.LobeCount, other.LobeCount, rng),
		LobeDepth:         genetics.Pick(c.LobeDepth, other.LobeDepth, rng),
		LobeSharpness:     genetics.Pick(c.LobeSharpness, other.LobeSharpness, rng),
		PetioleLength:     genetics.Pick(c.PetioleLength, other.PetioleLength, rng),
		PetioleWidth:      genetics.Pick(c.PetioleWidth, other.PetioleWidth, rng),
	}
}

// Mutate perturbs the leaf and each stem field with probability rate.
func (c *TwigConfig) Mutate(rng *rand.Rand, rate float64) {
	c.Leaf.Mutate(rng, rate)
	c.StemColor = genetics.Color(c.StemColor, rng, rate)
	c.StemHalfWidth = stemHalfWidth.Mutate(c.StemHalfWidth, rng, rate)
	c.LeafPairs = leafPairs.Mutate(c.LeafPairs, rng, rate)
	c.LeafAngle = leafAngle.Mutate(c.LeafAngle, rng, rate)
	c.LeafScale = leafScale.Mutate(c.LeafScale, rng, rate)
	c.StemCurve = stemCurve.Mutate(c.StemCurve, rng, rate)
	c.Sympodial = genetics.Flip(c.Sympodial, rng, rate)
}

// Crossover crosses the leaves and takes each stem field from c or other.
func (c TwigConfig) Crossover(other TwigConfig, rng *rand.Rand) TwigConfig {
	return TwigConfig{
		Leaf:          c.Leaf.Crossover(other.Leaf, rng),
		StemColor:     genetics.CrossColor(c.StemColor, other.StemColor, rng),
		StemHalfWidth: genetics.Pick(c.StemHalfWidth, other.StemHalfWidth, rng),
		LeafPairs:     genetics.Pick(c.LeafPairs, other.LeafPairs, rng),
		LeafAngle:     genetics.Pick(c.LeafAngle, other.LeafAngle, rng),
		LeafScale:     genetics.Pick(c.LeafScale, other.LeafScale, rng),
		StemCurve:     genetics.Pick(c.StemCurve, other.StemCurve, rng),
		Sympodial:     genetics.Pick(c.Sympodial, other.Sympodial, rng),
	}
}

var (
	_ genetics.Genotype[LeafConfig] = (*LeafConfig)(nil)
	_ genetics.Genotype[TwigConfig] = (*TwigConfig)(nil)
)
