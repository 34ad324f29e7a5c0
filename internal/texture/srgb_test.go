package texture

import (
	"math"
	"sync"
	"testing"
)

// maxEncodeError sweeps [0, 1] and returns the largest distance between the
// table lookup and the exact transfer function, in 8-bit counts.
func maxEncodeError(e *Encoder) float64 {
	const steps = 200000
	worst := 0.0
	for i := 0; i <= steps; i++ {
		x := float64(i) / steps
		got := float64(e.Encode(float32(x)))
		if d := math.Abs(got - LinearToSRGB(x)*255); d > worst {
			worst = d
		}
	}
	return worst
}

func TestEncoderPrecision(t *testing.T) {
	tests := []struct {
		size    int
		maxErr  float64
		atLeast float64
	}{
		{size: DefaultLUTSize, maxErr: 1},
		{size: MinLUTSize, maxErr: 1.5},
		{size: 256, maxErr: 8, atLeast: 3},
	}
	for _, tt := range tests {
		worst := maxEncodeError(NewEncoder(tt.size))
		if worst >= tt.maxErr {
			t.Errorf("size %d: max error %.3f counts, want < %.1f", tt.size, worst, tt.maxErr)
		}
		if worst < tt.atLeast {
			t.Errorf("size %d: max error %.3f counts, expected visible banding >= %.1f", tt.size, worst, tt.atLeast)
		}
	}
}

func TestMinimumEncoderWithinOneCount(t *testing.T) {
	e := NewEncoder(MinLUTSize)
	for i := 0; i <= 100000; i++ {
		x := float64(i) / 100000
		want := int(math.Round(LinearToSRGB(x) * 255))
		if d := int(e.Encode(float32(x))) - want; d < -1 || d > 1 {
			t.Fatalf("x=%g: got %d, want %d±1", x, e.Encode(float32(x)), want)
		}
	}
}

func TestEncoderMonotonic(t *testing.T) {
	e := DefaultEncoder()
	prev := e.Encode(0)
	for i := 1; i <= 10000; i++ {
		c := e.Encode(float32(i) / 10000)
		if c < prev {
			t.Fatalf("encode decreased at %d: %d < %d", i, c, prev)
		}
		prev = c
	}
	if e.Encode(0) != 0 || e.Encode(1) != 255 {
		t.Errorf("endpoints: got %d and %d, want 0 and 255", e.Encode(0), e.Encode(1))
	}
}

func TestEncoderClampsOutOfRange(t *testing.T) {
	e := DefaultEncoder()
	nan := float32(math.NaN())
	if got := e.Encode(-3); got != 0 {
		t.Errorf("Encode(-3) = %d, want 0", got)
	}
	if got := e.Encode(nan); got != 0 {
		t.Errorf("Encode(NaN) = %d, want 0", got)
	}
	if got := e.Encode(7); got != 255 {
		t.Errorf("Encode(7) = %d, want 255", got)
	}
}

func TestEncoderDecodeRoundTrip(t *testing.T) {
	e := DefaultEncoder()
	for c := 0; c < 256; c++ {
		if got := e.Encode(e.Decode(uint8(c))); got != uint8(c) {
			t.Errorf("Encode(Decode(%d)) = %d", c, got)
		}
	}
}

func TestDefaultEncoderShared(t *testing.T) {
	const n = 16
	got := make([]*Encoder, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = DefaultEncoder()
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		if got[i] != got[0] {
			t.Fatal("DefaultEncoder returned distinct instances")
		}
	}
	if got[0].Size() != DefaultLUTSize {
		t.Errorf("size = %d, want %d", got[0].Size(), DefaultLUTSize)
	}
	if EncodeSRGB(0.5) != got[0].Encode(0.5) {
		t.Error("EncodeSRGB disagrees with the shared encoder")
	}
}
