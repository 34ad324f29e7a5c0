package texture

import (
	"math/rand"

	"github.com/MeKo-Tech/proctex/internal/genetics"
)

// Valid ranges of the surface configuration fields. sanitize clamps into
// the same ranges that Mutate explores.
var (
	unitRange = genetics.Unit

	barkScale   = genetics.Range{Min: 0.5, Max: 16, Step: 1}
	barkOctaves = genetics.IntRange{Min: 1, Max: 12}
	barkWarpU   = genetics.Range{Min: 0, Max: 1, Step: 0.1}
	barkWarpV   = genetics.Range{Min: 0, Max: 2, Step: 0.2}
	barkNormal  = genetics.Range{Min: 0.5, Max: 8, Step: 0.5}
	furrowScale = genetics.Range{Min: 0.05, Max: 8, Step: 0.25}
	furrowShape = genetics.Range{Min: 0.1, Max: 4, Step: 0.1}

	rockScale       = genetics.Range{Min: 0.5, Max: 12, Step: 0.75}
	rockOctaves     = genetics.IntRange{Min: 1, Max: 14}
	rockAttenuation = genetics.Range{Min: 1, Max: 4, Step: 0.25}
	rockNormal      = genetics.Range{Min: 0.5, Max: 8, Step: 0.5}

	groundMacroScale = genetics.Range{Min: 0.5, Max: 8, Step: 0.5}
	groundMicroScale = genetics.Range{Min: 1, Max: 20, Step: 1}
	groundOctaves    = genetics.IntRange{Min: 1, Max: 10}
	groundNormal     = genetics.Range{Min: 0.5, Max: 8, Step: 0.5}
)

func clampRGB(c RGB) RGB {
	for i := range c {
		c[i] = float32(unitRange.Clamp(float64(c[i])))
	}
	return c
}

// Mutate perturbs each field with probability rate.
func (c *BarkConfig) Mutate(rng *rand.Rand, rate float64) {
	c.Seed = genetics.Seed(c.Seed, rng, rate)
	c.Scale = barkScale.Mutate(c.Scale, rng, rate)
	c.Octaves = barkOctaves.Mutate(c.Octaves, rng, rate)
	c.WarpU = barkWarpU.Mutate(c.WarpU, rng, rate)
	c.WarpV = barkWarpV.Mutate(c.WarpV, rng, rate)
	c.ColorLight = genetics.Color(c.ColorLight, rng, rate)
	c.ColorDark = genetics.Color(c.ColorDark, rng, rate)
	c.NormalStrength = barkNormal.Mutate(c.NormalStrength, rng, rate)
	c.FurrowMultiplier = unitRange.Mutate(c.FurrowMultiplier, rng, rate)
	c.FurrowScaleU = furrowScale.Mutate(c.FurrowScaleU, rng, rate)
	c.FurrowScaleV = furrowScale.Mutate(c.FurrowScaleV, rng, rate)
	c.FurrowShape = furrowShape.Mutate(c.FurrowShape, rng, rate)
}

// Crossover takes each field from c or other.
func (c BarkConfig) Crossover(other BarkConfig, rng *rand.Rand) BarkConfig {
	return BarkConfig{
		Seed:             genetics.Pick(c.Seed, other.Seed, rng),
		Scale:            genetics.Pick(c.Scale, other.Scale, rng),
		Octaves:          genetics.Pick(c.Octaves, other.Octaves, rng),
		WarpU:            genetics.Pick(c.WarpU, other.WarpU, rng),
		WarpV:            genetics.Pick(c.WarpV, other.WarpV, rng),
		ColorLight:       genetics.CrossColor(c.ColorLight, other.ColorLight, rng),
		ColorDark:        genetics.CrossColor(c.ColorDark, other.ColorDark, rng),
		NormalStrength:   genetics.Pick(c.NormalStrength, other.NormalStrength, rng),
		FurrowMultiplier: genetics.Pick(c.FurrowMultiplier, other.FurrowMultiplier, rng),
		FurrowScaleU:     genetics.Pick(c.FurrowScaleU, other.FurrowScaleU, rng),
		FurrowScaleV:     genetics.Pick(c.FurrowScaleV, other.FurrowScaleV, rng),
		FurrowShape:      genetics.Pick(c.FurrowShape, other.FurrowShape, rng),
	}
}

// Mutate perturbs each field with probability rate.
func (c *RockConfig) Mutate(rng *rand.Rand, rate float64) {
	c.Seed = genetics.Seed(c.Seed, rng, rate)
	c.Scale = rockScale.Mutate(c.Scale, rng, rate)
	c.Octaves = rockOctaves.Mutate(c.Octaves, rng, rate)
	c.Attenuation = rockAttenuation.Mutate(c.Attenuation, rng, rate)
	c.ColorLight = genetics.Color(c.ColorLight, rng, rate)
	c.ColorDark = genetics.Color(c.ColorDark, rng, rate)
	c.NormalStrength = rockNormal.Mutate(c.NormalStrength, rng, rate)
}

// Crossover takes each field from c or other.
func (c RockConfig) Crossover(other RockConfig, rng *rand.Rand) RockConfig {
	return RockConfig{
		Seed:           genetics.Pick(c.Seed, other.Seed, rng),
		Scale:          genetics.Pick(c.Scale, other.Scale, rng),
		Octaves:        genetics.Pick(c.Octaves, other.Octaves, rng),
		Attenuation:    genetics.Pick(c.Attenuation, other.Attenuation, rng),
		ColorLight:     genetics.CrossColor(c.ColorLight, other.ColorLight, rng),
		ColorDark:      genetics.CrossColor(c.ColorDark, other.ColorDark, rng),
		NormalStrength: genetics.Pick(c.NormalStrength, other.NormalStrength, rng),
	}
}

// Mutate perturbs each field with probability rate.
func (c *GroundConfig) Mutate(rng *rand.Rand, rate float64) {
	c.Seed = genetics.Seed(c.Seed, rng, rate)
	c.MacroScale = groundMacroScale.Mutate(c.MacroScale, rng, rate)
	c.MacroOctaves = groundOctaves.Mutate(c.MacroOctaves, rng, rate)
	c.MicroScale = groundMicroScale.Mutate(c.MicroScale, rng, rate)
	c.MicroOctaves = groundOctaves.Mutate(c.MicroOctaves, rng, rate)
	c.MicroWeight = unitRange.Mutate(c.MicroWeight, rng, rate)
	c.ColorDry = genetics.Color(c.ColorDry, rng, rate)
	c.ColorMoist = genetics.Color(c.ColorMoist, rng, rate)
	c.NormalStrength = groundNormal.Mutate(c.NormalStrength, rng, rate)
}

// Crossover takes each field from c or other.
func (c GroundConfig) Crossover(other GroundConfig, rng *rand.Rand) GroundConfig {
	return GroundConfig{
		Seed:           genetics.Pick(c.Seed, other.Seed, rng),
		MacroScale:     genetics.Pick(c.MacroScale, other.MacroScale, rng),
		MacroOctaves:   genetics.Pick(c.MacroOctaves, other.MacroOctaves, rng),
		MicroScale:     genetics.Pick(c.MicroScale, other.MicroScale, rng),
		MicroOctaves:   genetics.Pick(c.MicroOctaves, other.MicroOctaves, rng),
		MicroWeight:    genetics.Pick(c.MicroWeight, other.MicroWeight, rng),
		ColorDry:       genetics.CrossColor(c.ColorDry, other.ColorDry, rng),
		ColorMoist:     genetics.CrossColor(c.ColorMoist, other.ColorMoist, rng),
		NormalStrength: genetics.Pick(c.NormalStrength, other.NormalStrength, rng),
	}
}

var (
	_ genetics.Genotype[BarkConfig]   = (*BarkConfig)(nil)
	_ genetics.Genotype[RockConfig]   = (*RockConfig)(nil)
	_ genetics.Genotype[GroundConfig] = (*GroundConfig)(nil)
)
