package texture

import "github.com/MeKo-Tech/proctex/internal/noise"

// GroundConfig configures a GroundGenerator.
type GroundConfig struct {
	Seed int64 `mapstructure:"seed" yaml:"seed"`
	// MacroScale and MacroOctaves shape the broad soil patches.
	MacroScale   float64 `mapstructure:"macro_scale" yaml:"macro_scale"`
	MacroOctaves int     `mapstructure:"macro_octaves" yaml:"macro_octaves"`
	// MicroScale and MicroOctaves shape the fine grain.
	MicroScale   float64 `mapstructure:"micro_scale" yaml:"micro_scale"`
	MicroOctaves int     `mapstructure:"micro_octaves" yaml:"micro_octaves"`
	// MicroWeight is 0 for macro only and 1 for micro only.
	MicroWeight    float64 `mapstructure:"micro_weight" yaml:"micro_weight"`
	ColorDry       RGB     `mapstructure:"color_dry" yaml:"color_dry,flow"`
	ColorMoist     RGB     `mapstructure:"color_moist" yaml:"color_moist,flow"`
	NormalStrength float64 `mapstructure:"normal_strength" yaml:"normal_strength"`
}

// DefaultGroundConfig returns the reference soil.
func DefaultGroundConfig() GroundConfig {
	return GroundConfig{
		Seed:           13,
		MacroScale:     2,
		MacroOctaves:   5,
		MicroScale:     8,
		MicroOctaves:   4,
		MicroWeight:    0.35,
		ColorDry:       RGB{0.52, 0.40, 0.26},
		ColorMoist:     RGB{0.28, 0.20, 0.12},
		NormalStrength: 2,
	}
}

func (c GroundConfig) sanitize() GroundConfig {
	c.MacroScale = groundMacroScale.Clamp(c.MacroScale)
	c.MacroOctaves = groundOctaves.Clamp(c.MacroOctaves)
	c.MicroScale = groundMicroScale.Clamp(c.MicroScale)
	c.MicroOctaves = groundOctaves.Clamp(c.MicroOctaves)
	c.MicroWeight = unitRange.Clamp(c.MicroWeight)
	c.ColorDry = clampRGB(c.ColorDry)
	c.ColorMoist = clampRGB(c.ColorMoist)
	c.NormalStrength = groundNormal.Clamp(c.NormalStrength)
	return c
}

// GroundGenerator blends a macro and a micro FBM layer into soil.
type GroundGenerator struct {
	cfg      GroundConfig
	macro    *noise.Torus
	micro    *noise.Torus
	macroOct noise.Octaves
	microOct noise.Octaves
}

// NewGroundGenerator sanitizes cfg and prepares both layers.
func NewGroundGenerator(cfg GroundConfig) *GroundGenerator {
	c := cfg.sanitize()
	return &GroundGenerator{
		cfg:      c,
		macro:    noise.NewTorus(c.Seed),
		micro:    noise.NewTorus(c.Seed + 50),
		macroOct: noise.DefaultOctaves(c.MacroOctaves, c.MacroScale),
		microOct: noise.DefaultOctaves(c.MicroOctaves, c.MicroScale),
	}
}

// Config returns the sanitized configuration in use.
func (g *GroundGenerator) Config() GroundConfig { return g.cfg }

// Height returns the blended height in [0, 1] at (u, v).
func (g *GroundGenerator) Height(u, v float64) float64 {
	w := g.cfg.MicroWeight
	macro := noise.Normalize(g.macro.FBM(u, v, g.macroOct))
	micro := noise.Normalize(g.micro.FBM(u, v, g.microOct))
	return macro*(1-w) + micro*w
}

func (g *GroundGenerator) texel(u, v float64) Texel {
	t := g.Height(u, v)
	return Texel{
		Height:    t,
		Color:     g.cfg.ColorMoist.Lerp(g.cfg.ColorDry, t),
		Alpha:     1,
		Occlusion: 1 - 0.20*(1-t),
		Roughness: 0.80 + 0.15*(1-t),
	}
}

// Generate renders a tiling ground map.
func (g *GroundGenerator) Generate(width, height int) (*Map, error) {
	return Render(width, height, RenderOptions{
		Address:        AddressRepeat,
		NormalStrength: g.cfg.NormalStrength,
	}, g.texel)
}
