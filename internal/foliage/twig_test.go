package foliage

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/proctex/internal/texture"
)

func TestTwigAttachmentLayout(t *testing.T) {
	tests := []struct {
		name      string
		sympodial bool
		pairs     int
		want      int
	}{
		{"monopodial", false, 4, 9},
		{"sympodial", true, 4, 9},
		{"single pair", false, 1, 3},
		{"clamped pairs", false, 50, 2*leafPairs.Max + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTwigConfig()
			cfg.Sympodial = tt.sympodial
			cfg.LeafPairs = tt.pairs
			atts := NewTwigSampler(cfg).Attachments()
			require.Len(t, atts, tt.want)

			for i := 1; i < len(atts); i++ {
				assert.GreaterOrEqual(t, atts[i].S, atts[i-1].S, "attachments run base to apex")
			}
			last := atts[len(atts)-1]
			assert.Equal(t, 1.0, last.S, "terminal leaf sits at the apex")
			assert.Less(t, last.DirY, 0.0, "terminal leaf points up the card")
			for _, a := range atts {
				assert.InDelta(t, 1, math.Hypot(a.DirX, a.DirY), 1e-9)
			}
		})
	}
}

func TestTwigMonopodialPairsAreOpposite(t *testing.T) {
	atts := NewTwigSampler(DefaultTwigConfig()).Attachments()
	for i := 0; i+1 < len(atts)-1; i += 2 {
		right, left := atts[i], atts[i+1]
		assert.Equal(t, right.S, left.S)
		assert.Greater(t, right.DirX, 0.0, "positive angle turns toward +u")
		assert.Less(t, left.DirX, 0.0)
	}
}

func TestTwigSympodialAlternates(t *testing.T) {
	cfg := DefaultTwigConfig()
	cfg.Sympodial = true
	cfg.StemCurve = 0.08
	atts := NewTwigSampler(cfg).Attachments()
	for i := 0; i < len(atts)-1; i++ {
		if i%2 == 0 {
			assert.Greater(t, atts[i].DirX, 0.0, "node %d", i)
		} else {
			assert.Less(t, atts[i].DirX, 0.0, "node %d", i)
		}
		if i > 0 {
			assert.Greater(t, atts[i].S, atts[i-1].S, "one leaf per node")
		}
	}
}

func TestTwigApexLeafWinsSharedPixels(t *testing.T) {
	cfg := DefaultTwigConfig()
	cfg.LeafPairs = 4
	s := NewTwigSampler(cfg)

	const n = 160
	shared := 0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			u, v := (float64(x)+0.5)/n, (float64(y)+0.5)/n
			top, claims := -1, 0
			for i, a := range s.attachments {
				if _, ok := s.leaf.Sample(a.toLeaf(u, v)); ok {
					claims++
					top = i
				}
			}
			got, ok := s.Sample(u, v)
			if claims == 0 {
				if ok {
					assert.Equal(t, -1, got.Leaf, "(%g, %g) should be stem", u, v)
				}
				continue
			}
			require.True(t, ok)
			require.Equal(t, top, got.Leaf, "pixel (%d,%d) claimed by %d leaves", x, y, claims)
			if claims > 1 {
				shared++
			}
		}
	}
	assert.Positive(t, shared, "leaves never overlap; ordering not exercised")
}

func TestTwigTerminalLeafWinsOverlap(t *testing.T) {
	tests := []struct {
		name      string
		sympodial bool
		scale     float64
	}{
		{"monopodial", false, 0.38},
		{"monopodial large leaves", false, 0.5},
		{"sympodial", true, 0.38},
		{"sympodial large leaves", true, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTwigConfig()
			cfg.LeafPairs = 4
			// A narrow leaf angle folds the upper leaves onto the terminal one.
			cfg.LeafAngle = 0.2
			cfg.LeafScale = tt.scale
			cfg.Sympodial = tt.sympodial
			s := NewTwigSampler(cfg)
			terminal := len(s.attachments) - 1

			const n = 160
			overlap := 0
			for y := 0; y < n; y++ {
				for x := 0; x < n; x++ {
					u, v := (float64(x)+0.5)/n, (float64(y)+0.5)/n
					if _, ok := s.leaf.Sample(s.attachments[terminal].toLeaf(u, v)); !ok {
						continue
					}
					earlier := false
					for _, a := range s.attachments[:terminal] {
						if _, ok := s.leaf.Sample(a.toLeaf(u, v)); ok {
							earlier = true
							break
						}
					}
					if !earlier {
						continue
					}
					overlap++
					got, ok := s.Sample(u, v)
					require.True(t, ok)
					require.Equal(t, terminal, got.Leaf, "pixel (%d,%d) shared with an earlier leaf", x, y)
				}
			}
			assert.Positive(t, overlap, "terminal leaf never overlaps an earlier leaf")
		})
	}
}

func TestTwigStemBeneathLeaves(t *testing.T) {
	cfg := DefaultTwigConfig()
	s := NewTwigSampler(cfg)

	// Just above the base no leaf reaches the centreline.
	cu, _ := s.centre((0.95 - stemBaseV) / (s.apexV - stemBaseV))
	got, ok := s.Sample(cu, 0.95)
	require.True(t, ok)
	assert.Equal(t, -1, got.Leaf)
	assert.InDelta(t, 0.6, got.Height, 1e-9)
	for i := range got.Color {
		assert.InDelta(t, cfg.StemColor[i], got.Color[i], 1e-6)
	}

	_, ok = s.Sample(cu+2*cfg.StemHalfWidth, 0.95)
	assert.False(t, ok)
	_, ok = s.Sample(0.5, 0.995)
	assert.False(t, ok, "nothing below the stem base")
}

func TestTwigStemTapers(t *testing.T) {
	s := NewTwigSampler(DefaultTwigConfig())
	assert.InDelta(t, s.cfg.StemHalfWidth, s.halfWidth(0), 1e-9)
	assert.InDelta(t, s.cfg.StemHalfWidth*stemTaper, s.halfWidth(1), 1e-6)
	assert.Greater(t, s.halfWidth(0.3), s.halfWidth(0.7))
}

func TestTwigZigzagCentreline(t *testing.T) {
	cfg := DefaultTwigConfig()
	cfg.Sympodial = true
	cfg.StemCurve = 0.1
	s := NewTwigSampler(cfg)
	n := s.segments()
	for k := 0; k <= n; k++ {
		u, _ := s.centre(float64(k) / float64(n))
		assert.InDelta(t, s.joint(k), u, 1e-6, "joint %d", k)
	}
	// Eased joints have no kink: the tangent is vertical at each joint.
	du, _ := s.tangent(1 / float64(n))
	assert.InDelta(t, 0, du, 0.02)
}

func TestTwigGenerator(t *testing.T) {
	cfgs := []TwigConfig{DefaultTwigConfig()}
	sym := DefaultTwigConfig()
	sym.Sympodial = true
	sym.StemCurve = 0.06
	cfgs = append(cfgs, sym)
	rng := rand.New(rand.NewSource(8))
	for i := 0; i < 3; i++ {
		c := DefaultTwigConfig()
		c.Mutate(rng, 1)
		cfgs = append(cfgs, c)
	}

	for i, cfg := range cfgs {
		m, err := NewTwigGenerator(cfg).Generate(48, 48)
		require.NoError(t, err, "config %d", i)
		assert.Equal(t, texture.AddressClamp, m.Address)
		opaque := 0
		for p := 3; p < len(m.Albedo); p += texture.AlbedoChannels {
			if m.Albedo[p] == 255 {
				opaque++
			}
		}
		assert.Positive(t, opaque, "config %d rendered nothing", i)
		assert.Less(t, opaque, 48*48, "config %d covered the whole card", i)
	}
}
