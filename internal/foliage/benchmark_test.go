package foliage

import (
	"testing"

	"github.com/MeKo-Tech/proctex/internal/texture"
)

func benchmarkCard(b *testing.B, g texture.Generator) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(512 * 512 * texture.AlbedoChannels)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Generate(512, 512); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLeaf512 renders the default leaf card at 512x512.
func BenchmarkLeaf512(b *testing.B) {
	benchmarkCard(b, NewLeafGenerator(DefaultLeafConfig()))
}

// BenchmarkTwig512 renders the default twig card at 512x512.
func BenchmarkTwig512(b *testing.B) {
	benchmarkCard(b, NewTwigGenerator(DefaultTwigConfig()))
}

// BenchmarkTwigSympodial512 covers the zigzag layout with twice the leaves.
func BenchmarkTwigSympodial512(b *testing.B) {
	cfg := DefaultTwigConfig()
	cfg.Sympodial = true
	benchmarkCard(b, NewTwigGenerator(cfg))
}
