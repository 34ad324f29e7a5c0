package texture

import "github.com/MeKo-Tech/proctex/internal/noise"

// RockConfig configures a RockGenerator.
type RockConfig struct {
	Seed    int64   `mapstructure:"seed" yaml:"seed"`
	Scale   float64 `mapstructure:"scale" yaml:"scale"`
	Octaves int     `mapstructure:"octaves" yaml:"octaves"`
	// Attenuation sharpens the ridges as it grows.
	Attenuation    float64 `mapstructure:"attenuation" yaml:"attenuation"`
	ColorLight     RGB     `mapstructure:"color_light" yaml:"color_light,flow"`
	ColorDark      RGB     `mapstructure:"color_dark" yaml:"color_dark,flow"`
	NormalStrength float64 `mapstructure:"normal_strength" yaml:"normal_strength"`
}

// DefaultRockConfig returns the reference stone.
func DefaultRockConfig() RockConfig {
	return RockConfig{
		Seed:           7,
		Scale:          3,
		Octaves:        8,
		Attenuation:    2,
		ColorLight:     RGB{0.37, 0.42, 0.36},
		ColorDark:      RGB{0.22, 0.20, 0.18},
		NormalStrength: 4,
	}
}

func (c RockConfig) sanitize() RockConfig {
	c.Scale = rockScale.Clamp(c.Scale)
	c.Octaves = rockOctaves.Clamp(c.Octaves)
	c.Attenuation = rockAttenuation.Clamp(c.Attenuation)
	c.ColorLight = clampRGB(c.ColorLight)
	c.ColorDark = clampRGB(c.ColorDark)
	c.NormalStrength = rockNormal.Clamp(c.NormalStrength)
	return c
}

// RockGenerator produces faceted stone from ridged multifractal noise.
type RockGenerator struct {
	cfg   RockConfig
	field *noise.Torus
	oct   noise.Octaves
}

// NewRockGenerator sanitizes cfg and prepares the noise source.
func NewRockGenerator(cfg RockConfig) *RockGenerator {
	c := cfg.sanitize()
	return &RockGenerator{
		cfg:   c,
		field: noise.NewTorus(c.Seed),
		oct:   noise.DefaultOctaves(c.Octaves, c.Scale),
	}
}

// Config returns the sanitized configuration in use.
func (g *RockGenerator) Config() RockConfig { return g.cfg }

// Height returns the ridge height in [0, 1] at (u, v).
func (g *RockGenerator) Height(u, v float64) float64 {
	return g.field.Ridged(u, v, g.oct, g.cfg.Attenuation)
}

func (g *RockGenerator) texel(u, v float64) Texel {
	t := g.Height(u, v)
	return Texel{
		Height:    t,
		Color:     g.cfg.ColorDark.Lerp(g.cfg.ColorLight, t),
		Alpha:     1,
		Occlusion: 1 - 0.30*(1-t),
		// Exposed ridges are smoother than the cracks.
		Roughness: 0.75 - 0.25*t,
	}
}

// Generate renders a tiling rock map.
func (g *RockGenerator) Generate(width, height int) (*Map, error) {
	return Render(width, height, RenderOptions{
		Address:        AddressRepeat,
		NormalStrength: g.cfg.NormalStrength,
	}, g.texel)
}
