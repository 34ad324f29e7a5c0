package texture

import (
	"math"

	"github.com/MeKo-Tech/proctex/internal/noise"
)

// BarkConfig configures a BarkGenerator.
type BarkConfig struct {
	Seed int64 `mapstructure:"seed" yaml:"seed"`
	// Scale is the base noise frequency.
	Scale   float64 `mapstructure:"scale" yaml:"scale"`
	Octaves int     `mapstructure:"octaves" yaml:"octaves"`
	// WarpU is kept small for slight lateral texture; WarpV is large and
	// stretches the fibres vertically.
	WarpU          float64 `mapstructure:"warp_u" yaml:"warp_u"`
	WarpV          float64 `mapstructure:"warp_v" yaml:"warp_v"`
	ColorLight     RGB     `mapstructure:"color_light" yaml:"color_light,flow"`
	ColorDark      RGB     `mapstructure:"color_dark" yaml:"color_dark,flow"`
	NormalStrength float64 `mapstructure:"normal_strength" yaml:"normal_strength"`
	// FurrowMultiplier blends fibre noise (0) with Worley plates (1).
	FurrowMultiplier float64 `mapstructure:"furrow_multiplier" yaml:"furrow_multiplier"`
	// FurrowScaleU and FurrowScaleV multiply Scale to give the plate cell
	// counts along each axis.
	FurrowScaleU float64 `mapstructure:"furrow_scale_u" yaml:"furrow_scale_u"`
	FurrowScaleV float64 `mapstructure:"furrow_scale_v" yaml:"furrow_scale_v"`
	// FurrowShape below 1 widens plates and sharpens the cracks between them.
	FurrowShape float64 `mapstructure:"furrow_shape" yaml:"furrow_shape"`
}

// DefaultBarkConfig returns the reference bark.
func DefaultBarkConfig() BarkConfig {
	return BarkConfig{
		Seed:             42,
		Scale:            4,
		Octaves:          6,
		WarpU:            0.15,
		WarpV:            0.55,
		ColorLight:       RGB{0.45, 0.28, 0.14},
		ColorDark:        RGB{0.18, 0.10, 0.05},
		NormalStrength:   3,
		FurrowMultiplier: 0.55,
		FurrowScaleU:     2,
		FurrowScaleV:     0.25,
		FurrowShape:      0.4,
	}
}

func (c BarkConfig) sanitize() BarkConfig {
	c.Scale = barkScale.Clamp(c.Scale)
	c.Octaves = barkOctaves.Clamp(c.Octaves)
	c.WarpU = barkWarpU.Clamp(c.WarpU)
	c.WarpV = barkWarpV.Clamp(c.WarpV)
	c.ColorLight = clampRGB(c.ColorLight)
	c.ColorDark = clampRGB(c.ColorDark)
	c.NormalStrength = barkNormal.Clamp(c.NormalStrength)
	c.FurrowMultiplier = unitRange.Clamp(c.FurrowMultiplier)
	c.FurrowScaleU = furrowScale.Clamp(c.FurrowScaleU)
	c.FurrowScaleV = furrowScale.Clamp(c.FurrowScaleV)
	c.FurrowShape = furrowShape.Clamp(c.FurrowShape)
	return c
}

// BarkGenerator produces fibrous bark with Worley rhytidome plates.
type BarkGenerator struct {
	cfg    BarkConfig
	warp   noise.Warp
	base   *noise.Torus
	oct    noise.Octaves
	plates *noise.Cellular
}

// NewBarkGenerator sanitizes cfg and prepares the noise sources.
func NewBarkGenerator(cfg BarkConfig) *BarkGenerator {
	c := cfg.sanitize()
	oct := noise.DefaultOctaves(c.Octaves, c.Scale)
	return &BarkGenerator{
		cfg: c,
		warp: noise.Warp{
			U:         noise.NewTorus(c.Seed),
			V:         noise.NewTorus(c.Seed + 100),
			Octaves:   oct,
			StrengthU: c.WarpU,
			StrengthV: c.WarpV,
		},
		base:   noise.NewTorus(c.Seed + 200),
		oct:    oct,
		plates: noise.NewCellular(c.Seed+300, c.Scale*c.FurrowScaleU, c.Scale*c.FurrowScaleV),
	}
}

// Config returns the sanitized configuration in use.
func (g *BarkGenerator) Config() BarkConfig { return g.cfg }

// Height returns the bark height in [0, 1] at (u, v).
func (g *BarkGenerator) Height(u, v float64) float64 {
	fibre := noise.Normalize(g.warp.FBM(g.base, u, v, g.oct))
	plate := math.Pow(g.plates.Edge(u, v), g.cfg.FurrowShape)
	m := g.cfg.FurrowMultiplier
	return clamp01(fibre*(1-m) + plate*m)
}

func (g *BarkGenerator) texel(u, v float64) Texel {
	t := g.Height(u, v)
	return Texel{
		Height:    t,
		Color:     g.cfg.ColorDark.Lerp(g.cfg.ColorLight, t),
		Alpha:     1,
		Occlusion: 1 - 0.35*(1-t),
		Roughness: 0.60 + 0.35*(1-t),
	}
}

// Generate renders a tiling bark map.
func (g *BarkGenerator) Generate(width, height int) (*Map, error) {
	return Render(width, height, RenderOptions{
		Address:        AddressRepeat,
		NormalStrength: g.cfg.NormalStrength,
	}, g.texel)
}
