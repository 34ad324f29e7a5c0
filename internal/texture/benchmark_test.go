package texture

import "testing"

const benchSize = 512

func benchmarkGenerator(b *testing.B, g Generator) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(benchSize * benchSize * AlbedoChannels)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Generate(benchSize, benchSize); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkBark512 renders the reference bark at 512x512.
func BenchmarkBark512(b *testing.B) {
	benchmarkGenerator(b, NewBarkGenerator(DefaultBarkConfig()))
}

// BenchmarkRock512 renders the default rock at 512x512.
func BenchmarkRock512(b *testing.B) {
	benchmarkGenerator(b, NewRockGenerator(DefaultRockConfig()))
}

// BenchmarkGround512 renders the default ground at 512x512.
func BenchmarkGround512(b *testing.B) {
	benchmarkGenerator(b, NewGroundGenerator(DefaultGroundConfig()))
}

// BenchmarkNormalFromHeight isolates normal derivation over a cheap field.
func BenchmarkNormalFromHeight(b *testing.B) {
	h := func(x, y int) float64 { return float64((x*7+y*13)%benchSize) / benchSize }
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = NormalFromHeight(benchSize, benchSize, 2, BoundaryWrap, h)
	}
}

// BenchmarkEncode measures the sRGB table lookup.
func BenchmarkEncode(b *testing.B) {
	enc := DefaultEncoder()
	var sink byte
	for i := 0; i < b.N; i++ {
		sink ^= enc.Encode(float32(i&1023) / 1023)
	}
	_ = sink
}
