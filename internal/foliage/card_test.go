package foliage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/proctex/internal/texture"
)

func TestCardsDeterministic(t *testing.T) {
	sympodial := DefaultTwigConfig()
	sympodial.Sympodial = true

	cards := map[string]func() texture.Generator{
		"leaf":           func() texture.Generator { return NewLeafGenerator(DefaultLeafConfig()) },
		"twig":           func() texture.Generator { return NewTwigGenerator(DefaultTwigConfig()) },
		"twig sympodial": func() texture.Generator { return NewTwigGenerator(sympodial) },
	}

	for name, build := range cards {
		t.Run(name, func(t *testing.T) {
			a, err := build().Generate(48, 40)
			require.NoError(t, err)
			b, err := build().Generate(48, 40)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(a.Albedo, b.Albedo), "albedo differs")
			assert.True(t, bytes.Equal(a.Normal, b.Normal), "normal differs")
			assert.True(t, bytes.Equal(a.ORM, b.ORM), "orm differs")
		})
	}
}
