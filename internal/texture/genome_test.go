package texture

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMutateRateZeroIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	bark, rock, ground := DefaultBarkConfig(), DefaultRockConfig(), DefaultGroundConfig()
	bark.Mutate(rng, 0)
	rock.Mutate(rng, 0)
	ground.Mutate(rng, 0)
	assert.Equal(t, DefaultBarkConfig(), bark)
	assert.Equal(t, DefaultRockConfig(), rock)
	assert.Equal(t, DefaultGroundConfig(), ground)
}

func TestMutateIsDeterministic(t *testing.T) {
	a, b := DefaultBarkConfig(), DefaultBarkConfig()
	a.Mutate(rand.New(rand.NewSource(11)), 0.5)
	b.Mutate(rand.New(rand.NewSource(11)), 0.5)
	assert.Equal(t, a, b)
}

func TestMutateStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	bark, rock, ground := DefaultBarkConfig(), DefaultRockConfig(), DefaultGroundConfig()
	for i := 0; i < 200; i++ {
		bark.Mutate(rng, 1)
		rock.Mutate(rng, 1)
		ground.Mutate(rng, 1)
		// Mutation clamps into the same ranges sanitize enforces.
		assert.Equal(t, bark.sanitize(), bark)
		assert.Equal(t, rock.sanitize(), rock)
		assert.Equal(t, ground.sanitize(), ground)
	}
}

func TestCrossoverDrawsFromParents(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	a := DefaultRockConfig()
	b := RockConfig{
		Seed:           99,
		Scale:          9,
		Octaves:        3,
		Attenuation:    3.5,
		ColorLight:     RGB{0.9, 0.9, 0.9},
		ColorDark:      RGB{0.01, 0.02, 0.03},
		NormalStrength: 1,
	}
	fromA, fromB := 0, 0
	for i := 0; i < 50; i++ {
		c := a.Crossover(b, rng)
		switch c.Scale {
		case a.Scale:
			fromA++
		case b.Scale:
			fromB++
		default:
			t.Fatalf("scale %g came from neither parent", c.Scale)
		}
		assert.Contains(t, []int64{a.Seed, b.Seed}, c.Seed)
		assert.Contains(t, []int{a.Octaves, b.Octaves}, c.Octaves)
		for ch := 0; ch < 3; ch++ {
			assert.Contains(t, []float32{a.ColorLight[ch], b.ColorLight[ch]}, c.ColorLight[ch])
		}
	}
	assert.Positive(t, fromA)
	assert.Positive(t, fromB)
}

func TestGroundCrossoverOfIdenticalParents(t *testing.T) {
	g := DefaultGroundConfig()
	assert.Equal(t, g, g.Crossover(g, rand.New(rand.NewSource(1))))
	b := DefaultBarkConfig()
	assert.Equal(t, b, b.Crossover(b, rand.New(rand.NewSource(1))))
}
