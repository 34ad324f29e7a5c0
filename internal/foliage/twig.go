package foliage

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/MeKo-Tech/proctex/internal/texture"
)

// Stem geometry in card coordinates (v grows downward). The apex sits one
// leaf length below topV so the terminal leaf tip lands there.
const (
	stemBaseV = 0.97
	topV      = 0.06
	// stemTaper is the apex half-width as a fraction of the base half-width.
	stemTaper = 0.4
	minLength = 1e-9
)

// TwigConfig configures a TwigGenerator.
type TwigConfig struct {
	Leaf          LeafConfig  `mapstructure:"leaf" yaml:"leaf"`
	StemColor     texture.RGB `mapstructure:"stem_color" yaml:"stem_color,flow"`
	StemHalfWidth float64     `mapstructure:"stem_half_width" yaml:"stem_half_width"`
	// LeafPairs is the number of node pairs below the terminal leaf.
	LeafPairs int `mapstructure:"leaf_pairs" yaml:"leaf_pairs"`
	// LeafAngle is measured from the stem tangent toward the apex, in radians.
	LeafAngle float64 `mapstructure:"leaf_angle" yaml:"leaf_angle"`
	// LeafScale is the length of each leaf in card units.
	LeafScale float64 `mapstructure:"leaf_scale" yaml:"leaf_scale"`
	// StemCurve is the bow amplitude, or the zigzag offset when Sympodial.
	StemCurve float64 `mapstructure:"stem_curve" yaml:"stem_curve"`
	// Sympodial selects alternating leaves on a zigzag stem instead of
	// opposite pairs on a bowed one.
	Sympodial bool `mapstructure:"sympodial" yaml:"sympodial"`
}

// DefaultTwigConfig returns a monopodial twig with four leaf pairs.
func DefaultTwigConfig() TwigConfig {
	return TwigConfig{
		Leaf:          DefaultLeafConfig(),
		StemColor:     texture.RGB{0.25, 0.16, 0.07},
		StemHalfWidth: 0.015,
		LeafPairs:     4,
		LeafAngle:     math.Pi/2 - 0.4,
		LeafScale:     0.38,
		StemCurve:     0.04,
	}
}

func (c TwigConfig) sanitize() TwigConfig {
	c.Leaf = c.Leaf.sanitize()
	c.StemColor = clampRGB(c.StemColor)
	c.StemHalfWidth = stemHalfWidth.Clamp(c.StemHalfWidth)
	c.LeafPairs = leafPairs.Clamp(c.LeafPairs)
	c.LeafAngle = leafAngle.Clamp(c.LeafAngle)
	c.LeafScale = leafScale.Clamp(c.LeafScale)
	c.StemCurve = stemCurve.Clamp(c.StemCurve)
	return c
}

// Attachment places one leaf on the card.
type Attachment struct {
	// S is the stem parameter of the node, 0 at the base and 1 at the apex.
	S float64
	// X and Y are the node position in card coordinates.
	X, Y float64
	// DirX and DirY point from the petiole toward the leaf tip.
	DirX, DirY float64
	Scale      float64
}

// toLeaf maps card point (u, v) into the attachment's leaf coordinates.
func (a Attachment) toLeaf(u, v float64) (lu, lv float64) {
	dx, dy := u-a.X, v-a.Y
	along := dx*a.DirX + dy*a.DirY
	// Leaf +u is the tip direction turned a quarter toward card +u.
	side := -dx*a.DirY + dy*a.DirX
	return 0.5 + side/a.Scale, along / a.Scale
}

// TwigSample is the composited surface at one card point.
type TwigSample struct {
	LeafSample
	// Leaf is the index of the winning attachment, or -1 on the stem.
	Leaf int
}

// TwigSampler composites leaves and a stem. It is safe for concurrent use.
type TwigSampler struct {
	cfg         TwigConfig
	leaf        *LeafSampler
	attachments []Attachment
	apexV       float64
}

// NewTwigSampler sanitizes cfg and lays out the attachments.
func NewTwigSampler(cfg TwigConfig) *TwigSampler {
	c := cfg.sanitize()
	s := &TwigSampler{cfg: c, leaf: NewLeafSampler(c.Leaf), apexV: topV + c.LeafScale}
	s.attachments = s.layout()
	return s
}

// Config returns the sanitized configuration in use.
func (s *TwigSampler) Config() TwigConfig { return s.cfg }

// Attachments returns the leaf placements from base to apex. The last entry
// is the terminal leaf.
func (s *TwigSampler) Attachments() []Attachment {
	return append([]Attachment(nil), s.attachments...)
}

// segments is the number of zigzag segments of a sympodial stem.
func (s *TwigSampler) segments() int {
	return 2*s.cfg.LeafPairs + 1
}

// centre returns the stem centreline at parameter t in [0, 1].
func (s *TwigSampler) centre(t float64) (u, v float64) {
	v = stemBaseV + (s.apexV-stemBaseV)*t
	if !s.cfg.Sympodial {
		return 0.5 + s.cfg.StemCurve*math.Sin(math.Pi*t), v
	}
	n := s.segments()
	k := int(t * float64(n))
	if k >= n {
		k = n - 1
	}
	from, to := s.joint(k), s.joint(k+1)
	local := t*float64(n) - float64(k)
	u = float64(ease.InOutSine(float32(local), float32(from), float32(to-from), 1))
	return u, v
}

// joint is the centreline u at the k-th zigzag joint. The base and apex stay
// centred; interior joints alternate sides.
func (s *TwigSampler) joint(k int) float64 {
	if k <= 0 || k >= s.segments() {
		return 0.5
	}
	if k%2 == 1 {
		return 0.5 + s.cfg.StemCurve
	}
	return 0.5 - s.cfg.StemCurve
}

// tangent returns the unit centreline direction toward the apex.
func (s *TwigSampler) tangent(t float64) (du, dv float64) {
	const h = 1e-4
	a, b := math.Max(t-h, 0), math.Min(t+h, 1)
	u0, v0 := s.centre(a)
	u1, v1 := s.centre(b)
	du, dv = u1-u0, v1-v0
	l := math.Max(math.Hypot(du, dv), minLength)
	return du / l, dv / l
}

func (s *TwigSampler) attach(t, angle float64) Attachment {
	x, y := s.centre(t)
	tu, tv := s.tangent(t)
	// Rotate the tangent by angle; positive angles turn toward card +u
	// while the stem points up.
	nu, nv := -tv, tu
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Attachment{
		S:     t,
		X:     x,
		Y:     y,
		DirX:  tu*cos + nu*sin,
		DirY:  tv*cos + nv*sin,
		Scale: s.cfg.LeafScale,
	}
}

func (s *TwigSampler) layout() []Attachment {
	c := s.cfg
	out := make([]Attachment, 0, 2*c.LeafPairs+1)
	if c.Sympodial {
		n := s.segments()
		for k := 1; k <= 2*c.LeafPairs; k++ {
			angle := c.LeafAngle
			if k%2 == 0 {
				angle = -angle
			}
			out = append(out, s.attach(float64(k)/float64(n), angle))
		}
	} else {
		for i := 0; i < c.LeafPairs; i++ {
			t := float64(i+1) / float64(c.LeafPairs+1)
			out = append(out, s.attach(t, c.LeafAngle), s.attach(t, -c.LeafAngle))
		}
	}
	return append(out, s.attach(1, 0))
}

// halfWidth is the stem half-width at parameter t.
func (s *TwigSampler) halfWidth(t float64) float64 {
	k := ease.OutQuad(float32(clamp01(t)), 1, stemTaper-1, 1)
	return s.cfg.StemHalfWidth * float64(k)
}

// Sample composites the twig at card point (u, v). Leaves are queried from
// the apex toward the base and the first claim wins; the stem shows only
// where no leaf claims the point.
func (s *TwigSampler) Sample(u, v float64) (TwigSample, bool) {
	for i := len(s.attachments) - 1; i >= 0; i-- {
		lu, lv := s.attachments[i].toLeaf(u, v)
		if ls, ok := s.leaf.Sample(lu, lv); ok {
			return TwigSample{LeafSample: ls, Leaf: i}, true
		}
	}
	return s.stem(u, v)
}

func (s *TwigSampler) stem(u, v float64) (TwigSample, bool) {
	t := (v - stemBaseV) / (s.apexV - stemBaseV)
	if t < 0 || t > 1 {
		return TwigSample{}, false
	}
	cu, _ := s.centre(t)
	_, tv := s.tangent(t)
	// Horizontal offset projected onto the centreline normal.
	dist := math.Abs(u-cu) * math.Abs(tv)
	half := s.halfWidth(t)
	if dist >= half {
		return TwigSample{}, false
	}
	k := 1 - dist/half
	return TwigSample{
		LeafSample: LeafSample{
			Height:    0.6 * k,
			Color:     s.cfg.StemColor.Scale(0.6).Lerp(s.cfg.StemColor, k),
			Roughness: 0.75,
		},
		Leaf: -1,
	}, true
}

// TwigGenerator renders a twig card.
type TwigGenerator struct {
	sampler *TwigSampler
}

// NewTwigGenerator builds a generator for cfg.
func NewTwigGenerator(cfg TwigConfig) *TwigGenerator {
	return &TwigGenerator{sampler: NewTwigSampler(cfg)}
}

// Sampler exposes the underlying sampler.
func (g *TwigGenerator) Sampler() *TwigSampler { return g.sampler }

// Generate renders a clamp-addressed twig card.
func (g *TwigGenerator) Generate(width, height int) (*texture.Map, error) {
	return texture.Render(width, height, texture.RenderOptions{
		Address:        texture.AddressClamp,
		NormalStrength: g.sampler.cfg.Leaf.NormalStrength,
	}, func(u, v float64) texture.Texel {
		ts, ok := g.sampler.Sample(u, v)
		return cardTexel(ts.LeafSample, ok)
	})
}
