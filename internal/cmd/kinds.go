package cmd

import (
	"fmt"
	"image/png"
	"math/rand"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/MeKo-Tech/proctex/internal/foliage"
	"github.com/MeKo-Tech/proctex/internal/texture"
)

// Kinds in generation order.
var allKinds = []string{"bark", "rock", "ground", "leaf", "twig"}

// configs holds one configuration per kind. The yaml layout matches the
// config file sections.
type configs struct {
	Bark   texture.BarkConfig   `yaml:"bark"`
	Rock   texture.RockConfig   `yaml:"rock"`
	Ground texture.GroundConfig `yaml:"ground"`
	Leaf   foliage.LeafConfig   `yaml:"leaf"`
	Twig   foliage.TwigConfig   `yaml:"twig"`
}

func defaultConfigs() configs {
	return configs{
		Bark:   texture.DefaultBarkConfig(),
		Rock:   texture.DefaultRockConfig(),
		Ground: texture.DefaultGroundConfig(),
		Leaf:   foliage.DefaultLeafConfig(),
		Twig:   foliage.DefaultTwigConfig(),
	}
}

// loadConfigs decodes each kind's section of v over the defaults. Missing
// sections and fields keep their default values.
func loadConfigs(v *viper.Viper) (configs, error) {
	c := defaultConfigs()
	sections := []struct {
		key string
		dst any
	}{
		{"bark", &c.Bark},
		{"rock", &c.Rock},
		{"ground", &c.Ground},
		{"leaf", &c.Leaf},
		{"twig", &c.Twig},
	}
	for _, s := range sections {
		if !v.IsSet(s.key) {
			continue
		}
		if err := v.UnmarshalKey(s.key, s.dst); err != nil {
			return configs{}, fmt.Errorf("failed to decode %s config: %w", s.key, err)
		}
	}
	return c, nil
}

func (c configs) generator(kind string) (texture.Generator, error) {
	switch kind {
	case "bark":
		return texture.NewBarkGenerator(c.Bark), nil
	case "rock":
		return texture.NewRockGenerator(c.Rock), nil
	case "ground":
		return texture.NewGroundGenerator(c.Ground), nil
	case "leaf":
		return foliage.NewLeafGenerator(c.Leaf), nil
	case "twig":
		return foliage.NewTwigGenerator(c.Twig), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}

// mutate perturbs the configuration of kind in place.
func (c *configs) mutate(kind string, rng *rand.Rand, rate float64) error {
	switch kind {
	case "bark":
		c.Bark.Mutate(rng, rate)
	case "rock":
		c.Rock.Mutate(rng, rate)
	case "ground":
		c.Ground.Mutate(rng, rate)
	case "leaf":
		c.Leaf.Mutate(rng, rate)
	case "twig":
		c.Twig.Mutate(rng, rate)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	return nil
}

// crossover returns c with the configuration of kind crossed with other's.
func (c configs) crossover(kind string, other configs, rng *rand.Rand) (configs, error) {
	switch kind {
	case "bark":
		c.Bark = c.Bark.Crossover(other.Bark, rng)
	case "rock":
		c.Rock = c.Rock.Crossover(other.Rock, rng)
	case "ground":
		c.Ground = c.Ground.Crossover(other.Ground, rng)
	case "leaf":
		c.Leaf = c.Leaf.Crossover(other.Leaf, rng)
	case "twig":
		c.Twig = c.Twig.Crossover(other.Twig, rng)
	default:
		return c, fmt.Errorf("unknown kind %q", kind)
	}
	return c, nil
}

// section returns the configuration of kind keyed by its section name, ready
// to be marshalled as a config file fragment.
func (c configs) section(kind string) (map[string]any, error) {
	var v any
	switch kind {
	case "bark":
		v = c.Bark
	case "rock":
		v = c.Rock
	case "ground":
		v = c.Ground
	case "leaf":
		v = c.Leaf
	case "twig":
		v = c.Twig
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	return map[string]any{kind: v}, nil
}

// parseKinds parses a comma-separated kind list. "all" selects every kind.
// Duplicates are dropped and the input order is kept.
func parseKinds(s string) ([]string, error) {
	var kinds []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		k := strings.ToLower(strings.TrimSpace(part))
		if k == "" {
			continue
		}
		if k == "all" {
			for _, a := range allKinds {
				if !seen[a] {
					seen[a] = true
					kinds = append(kinds, a)
				}
			}
			continue
		}
		if !slices.Contains(allKinds, k) {
			return nil, fmt.Errorf("unknown kind %q (valid: %s)", k, strings.Join(allKinds, ", "))
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no kinds selected")
	}
	return kinds, nil
}

func parseCompression(s string) (png.CompressionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return png.DefaultCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	case "none":
		return png.NoCompression, nil
	default:
		return 0, fmt.Errorf("invalid png compression %q: must be default, speed, best or none", s)
	}
}
