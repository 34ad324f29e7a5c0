package texture

import (
	"math"
	"sync"
)

// DefaultLUTSize is the entry count of the process-wide encoder. The sRGB
// curve is steep near zero (slope ≈ 12.9), so a 256-entry table bands
// visibly in the shadows; 4096 entries keep the lookup within one 8-bit
// count of the exact transfer function.
const DefaultLUTSize = 4096

// MinLUTSize is the smallest table whose bytes never differ from the
// correctly rounded encoding by more than one count.
const MinLUTSize = 2048

// Encoder converts linear values to 8-bit sRGB through a lookup table.
// It is read-only after construction.
type Encoder struct {
	table  []uint8
	scale  float32
	decode [256]float32
}

// NewEncoder builds a table with size entries (at least 2).
func NewEncoder(size int) *Encoder {
	if size < 2 {
		size = 2
	}
	e := &Encoder{
		table: make([]uint8, size),
		scale: float32(size - 1),
	}
	for i := range e.table {
		e.table[i] = unitByte(LinearToSRGB(float64(i) / float64(size-1)))
	}
	for i := range e.decode {
		e.decode[i] = float32(SRGBToLinear(float64(i) / 255))
	}
	return e
}

// Size returns the table entry count.
func (e *Encoder) Size() int { return len(e.table) }

// Encode maps a linear value in [0, 1] to an sRGB byte. Values outside the
// range (and NaN) clamp to the ends of the table.
func (e *Encoder) Encode(linear float32) uint8 {
	if !(linear > 0) {
		return e.table[0]
	}
	if linear >= 1 {
		return e.table[len(e.table)-1]
	}
	return e.table[int(linear*e.scale+0.5)]
}

// Decode maps an sRGB byte back to linear.
func (e *Encoder) Decode(c uint8) float32 {
	return e.decode[c]
}

var (
	defaultEncoderOnce sync.Once
	defaultEncoder     *Encoder
)

// DefaultEncoder returns the shared encoder, building it on first use.
// Concurrent first callers wait for the single build.
func DefaultEncoder() *Encoder {
	defaultEncoderOnce.Do(func() {
		defaultEncoder = NewEncoder(DefaultLUTSize)
	})
	return defaultEncoder
}

// EncodeSRGB encodes a linear value with the shared encoder.
func EncodeSRGB(linear float32) uint8 {
	return DefaultEncoder().Encode(linear)
}

// LinearToSRGB is the exact sRGB transfer function.
func LinearToSRGB(x float64) float64 {
	if x <= 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math.Pow(x, 1/2.4) - 0.055
}

// SRGBToLinear is the inverse of LinearToSRGB.
func SRGBToLinear(x float64) float64 {
	if x <= 0.04045 {
		return x / 12.92
	}
	return math.Pow((x+0.055)/1.055, 2.4)
}
