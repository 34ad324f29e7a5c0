// Package foliage samples alpha-masked leaf and twig cards.
//
// Card coordinates are absolute, not toroidal. For a single leaf u = 0.5 is
// the midrib, v = 0 the petiole base and v = 1 the tip; anything outside
// [0, 1] lies outside the leaf.
package foliage

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/MeKo-Tech/proctex/internal/noise"
	"github.com/MeKo-Tech/proctex/internal/texture"
)

const (
	// maxHalfWidth is the blade half-width scale of the envelope.
	maxHalfWidth = 0.44
	// envelopeDecay narrows the blade toward the tip.
	envelopeDecay = 2.0
	venuleFreq    = 28.0
	capillaryFreq = 20.0
	// minTan floors tan(VeinAngle) before it is inverted.
	minTan = 1e-3
)

// LeafConfig configures a LeafSampler.
type LeafConfig struct {
	Seed      int64       `mapstructure:"seed" yaml:"seed"`
	ColorBase texture.RGB `mapstructure:"color_base" yaml:"color_base,flow"`
	// ColorEdge tints the blade toward the margin.
	ColorEdge texture.RGB `mapstructure:"color_edge" yaml:"color_edge,flow"`
	// SerrationCount is the number of teeth per side along the blade.
	SerrationCount float64 `mapstructure:"serration_count" yaml:"serration_count"`
	// SerrationStrength is tooth depth as a fraction of the local half-width.
	SerrationStrength float64 `mapstructure:"serration_strength" yaml:"serration_strength"`
	// VeinAngle is the angle between secondary veins and the midrib, in radians.
	VeinAngle float64 `mapstructure:"vein_angle" yaml:"vein_angle"`
	// VeinCount is the number of secondary vein pairs.
	VeinCount      float64 `mapstructure:"vein_count" yaml:"vein_count"`
	MidribWidth    float64 `mapstructure:"midrib_width" yaml:"midrib_width"`
	VenuleStrength float64 `mapstructure:"venule_strength" yaml:"venule_strength"`
	// MicroDetail weights the Worley capillary layer.
	MicroDetail    float64 `mapstructure:"micro_detail" yaml:"micro_detail"`
	NormalStrength float64 `mapstructure:"normal_strength" yaml:"normal_strength"`
	// LobeCount is the number of lobe half-cycles along the blade; 0 disables lobing.
	LobeCount float64 `mapstructure:"lobe_count" yaml:"lobe_count"`
	LobeDepth float64 `mapstructure:"lobe_depth" yaml:"lobe_depth"`
	// LobeSharpness above 1 narrows lobe peaks.
	LobeSharpness float64 `mapstructure:"lobe_sharpness" yaml:"lobe_sharpness"`
	// PetioleLength is the fraction of the card reserved for the stalk.
	PetioleLength float64 `mapstructure:"petiole_length" yaml:"petiole_length"`
	PetioleWidth  float64 `mapstructure:"petiole_width" yaml:"petiole_width"`
}

// DefaultLeafConfig returns a simple unlobed leaf.
func DefaultLeafConfig() LeafConfig {
	return LeafConfig{
		ColorBase:         texture.RGB{0.12, 0.35, 0.08},
		ColorEdge:         texture.RGB{0.35, 0.28, 0.05},
		SerrationCount:    14,
		SerrationStrength: 0.12,
		VeinAngle:         0.9,
		VeinCount:         6,
		MidribWidth:       0.12,
		VenuleStrength:    0.5,
		MicroDetail:       0.3,
		NormalStrength:    3,
		LobeDepth:         0.35,
		LobeSharpness:     1,
		PetioleLength:     0.12,
		PetioleWidth:      0.022,
	}
}

func (c LeafConfig) sanitize() LeafConfig {
	c.ColorBase = clampRGB(c.ColorBase)
	c.ColorEdge = clampRGB(c.ColorEdge)
	c.SerrationCount = serrationCount.Clamp(c.SerrationCount)
	c.SerrationStrength = serrationStrength.Clamp(c.SerrationStrength)
	c.VeinAngle = veinAngle.Clamp(c.VeinAngle)
	c.VeinCount = veinCount.Clamp(c.VeinCount)
	c.MidribWidth = midribWidth.Clamp(c.MidribWidth)
	c.VenuleStrength = unit.Clamp(c.VenuleStrength)
	c.MicroDetail = unit.Clamp(c.MicroDetail)
	c.NormalStrength = leafNormal.Clamp(c.NormalStrength)
	c.LobeCount = lobeCount.Clamp(c.LobeCount)
	c.LobeDepth = unit.Clamp(c.LobeDepth)
	c.LobeSharpness = lobeSharpness.Clamp(c.LobeSharpness)
	c.PetioleLength = petioleLength.Clamp(c.PetioleLength)
	c.PetioleWidth = petioleWidth.Clamp(c.PetioleWidth)
	return c
}

// LeafSample is the surface of a leaf at one point of the card.
type LeafSample struct {
	// Height is in [0, 1].
	Height    float64
	Color     texture.RGB
	Roughness float64
}

// LeafSampler evaluates the silhouette and venation of one leaf. It is
// read-only after construction and safe for concurrent use.
type LeafSampler struct {
	cfg       LeafConfig
	serration *perlin.Perlin
	venules   *perlin.Perlin
	capillary *noise.Cellular
	veinCot   float64
}

// NewLeafSampler sanitizes cfg and seeds the noise layers.
func NewLeafSampler(cfg LeafConfig) *LeafSampler {
	c := cfg.sanitize()
	return &LeafSampler{
		cfg:       c,
		serration: perlin.NewPerlin(2, 2, 3, c.Seed),
		venules:   perlin.NewPerlin(2, 2, 3, c.Seed+2),
		capillary: noise.NewCellular(c.Seed+1, capillaryFreq, capillaryFreq),
		veinCot:   1 / math.Max(math.Tan(c.VeinAngle), minTan),
	}
}

// Config returns the sanitized configuration in use.
func (s *LeafSampler) Config() LeafConfig { return s.cfg }

// Sample evaluates the leaf at (u, v). ok is false outside the silhouette.
func (s *LeafSampler) Sample(u, v float64) (sample LeafSample, ok bool) {
	c := &s.cfg
	if !(u >= 0 && u <= 1 && v >= 0 && v <= 1) {
		return LeafSample{}, false
	}
	dist := math.Abs(u - 0.5)

	if c.PetioleLength > 0 && v < c.PetioleLength {
		half := c.PetioleWidth * (0.7 + 0.3*v/c.PetioleLength)
		if dist >= half {
			return LeafSample{}, false
		}
		t := dist / half
		return LeafSample{
			Height:    math.Sqrt(1 - t*t),
			Color:     c.ColorBase,
			Roughness: 0.58,
		}, true
	}

	vb := v
	if c.PetioleLength > 0 {
		vb = (v - c.PetioleLength) / (1 - c.PetioleLength)
	}

	envelope := bladeEnvelope(vb)
	if c.PetioleLength > 0 {
		// Widen the blade base so it continues from the stalk without pinching.
		envelope += c.PetioleWidth * math.Exp(-12*vb)
	}
	if envelope <= 0 {
		return LeafSample{}, false
	}
	margin := s.lobed(envelope, vb)
	if margin <= 0 {
		return LeafSample{}, false
	}

	phase := s.serration.Noise2D(u*4, vb*4) * 1.5
	tooth := 0.5 + 0.5*math.Sin(2*math.Pi*c.SerrationCount*vb+phase)
	if dist+c.SerrationStrength*margin*tooth >= margin {
		return LeafSample{}, false
	}

	// Venation uses the unserrated distance so veins stay smooth near the margin.
	edge := clamp01(dist / margin)
	dome := 1 - edge*edge

	midrib := 1 - math.Min(dist/(envelope*c.MidribWidth), 1)
	midrib *= midrib

	var secondary float64
	if c.VeinCount > 0 {
		secondary = math.Pow(math.Abs(math.Sin(math.Pi*c.VeinCount*(vb-dist*s.veinCot))), 4)
	}

	jitter := s.venules.Noise2D(u*4, vb*4) * 1.8
	vn1 := math.Pow(math.Abs(math.Sin((u-0.5)*venuleFreq+vb*venuleFreq*0.38+jitter)), 6)
	vn2 := math.Pow(math.Abs(math.Sin((u-0.5)*venuleFreq-vb*venuleFreq*0.38+jitter)), 6)
	venule := math.Max(vn1, vn2)

	capillary := math.Pow(1-s.capillary.Edge(u, vb), 3)

	height := clamp01(0.30 + 0.55*dome -
		0.14*midrib -
		0.08*secondary -
		0.05*venule*c.VenuleStrength -
		0.03*capillary*c.MicroDetail)

	blade := c.ColorBase.Lerp(c.ColorEdge, edge)
	bright := float32(clamp01(midrib*0.6+secondary*0.4) * 0.18)
	color := texture.RGB{
		min(blade[0]+bright, 1),
		min(blade[1]+bright*0.75, 1),
		min(blade[2]+bright*0.25, 1),
	}

	return LeafSample{
		Height:    height,
		Color:     color,
		Roughness: 0.80 + (0.52-0.80)*height,
	}, true
}

// lobed modulates the envelope by a sharpness-shaped cosine along the blade.
func (s *LeafSampler) lobed(envelope, vb float64) float64 {
	c := &s.cfg
	if c.LobeCount <= 0 || c.LobeDepth <= 0 {
		return envelope
	}
	cos := math.Cos(vb * c.LobeCount * math.Pi)
	// Sign-preserving power keeps the valleys indenting.
	shaped := math.Copysign(math.Pow(math.Abs(cos), c.LobeSharpness), cos)
	return math.Max(envelope*(1+shaped*c.LobeDepth), 0)
}

// bladeEnvelope is the half-width of the blade at blade coordinate vb, zero
// outside (0, 1).
func bladeEnvelope(vb float64) float64 {
	if vb <= 0 || vb >= 1 {
		return 0
	}
	return math.Sin(vb*math.Pi) * math.Exp(-vb*envelopeDecay) * maxHalfWidth
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// cardTexel converts an optional sample to a card texel. Uncovered pixels
// are transparent with a neutral height so they leave the normals flat.
func cardTexel(s LeafSample, ok bool) texture.Texel {
	if !ok {
		return texture.Texel{Height: 0.5, Occlusion: 1, Roughness: 200.0 / 255}
	}
	return texture.Texel{
		Height:    s.Height,
		Color:     s.Color,
		Alpha:     1,
		Occlusion: 1,
		Roughness: s.Roughness,
	}
}

// LeafGenerator renders a single leaf card with the tip at the top.
type LeafGenerator struct {
	sampler *LeafSampler
}

// NewLeafGenerator builds a generator for cfg.
func NewLeafGenerator(cfg LeafConfig) *LeafGenerator {
	return &LeafGenerator{sampler: NewLeafSampler(cfg)}
}

// Sampler exposes the underlying sampler.
func (g *LeafGenerator) Sampler() *LeafSampler { return g.sampler }

// Generate renders a clamp-addressed leaf card.
func (g *LeafGenerator) Generate(width, height int) (*texture.Map, error) {
	return texture.Render(width, height, texture.RenderOptions{
		Address:        texture.AddressClamp,
		NormalStrength: g.sampler.cfg.NormalStrength,
	}, func(u, v float64) texture.Texel {
		return cardTexel(g.sampler.Sample(u, 1-v))
	})
}
