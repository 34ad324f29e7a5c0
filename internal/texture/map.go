// Package texture generates seamless procedural surface textures and holds
// the shared machinery every generator uses: the output map, dimension
// validation, normal derivation and sRGB encoding.
package texture

import (
	"fmt"
	"math"
)

// Channel counts of the three output buffers.
const (
	AlbedoChannels = 4 // sRGB R, G, B, A
	NormalChannels = 3 // tangent-space X, Y, Z with 0.5 bias
	ORMChannels    = 3 // occlusion, roughness, metallic
)

// MaxDimension is the largest width or height a generator accepts.
const MaxDimension = 8192

// AddressMode tells an upload collaborator how the map should be sampled.
type AddressMode int

const (
	// AddressRepeat is used by tiling surfaces.
	AddressRepeat AddressMode = iota
	// AddressClamp is used by foliage cards so alpha does not bleed across edges.
	AddressClamp
)

func (a AddressMode) String() string {
	switch a {
	case AddressRepeat:
		return "repeat"
	case AddressClamp:
		return "clamp"
	default:
		return fmt.Sprintf("AddressMode(%d)", int(a))
	}
}

// Map holds the three pixel buffers produced by a generator. All buffers
// are row-major with the same dimensions.
type Map struct {
	Width   int
	Height  int
	Albedo  []byte
	Normal  []byte
	ORM     []byte
	Address AddressMode
}

// Generator is implemented by every texture kind.
type Generator interface {
	Generate(width, height int) (*Map, error)
}

// DimensionError reports a rejected texture size.
type DimensionError struct {
	Width  int
	Height int
}

func (e *DimensionError) Error() string {
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Sprintf("texture dimensions must be positive (got %dx%d)", e.Width, e.Height)
	}
	return fmt.Sprintf("texture dimensions exceed %d (got %dx%d)", MaxDimension, e.Width, e.Height)
}

// ValidateDimensions returns a *DimensionError unless both sides are in
// [1, MaxDimension].
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return &DimensionError{Width: width, Height: height}
	}
	return nil
}

func newMap(width, height int, address AddressMode) *Map {
	n := width * height
	return &Map{
		Width:   width,
		Height:  height,
		Albedo:  make([]byte, n*AlbedoChannels),
		Normal:  make([]byte, n*NormalChannels),
		ORM:     make([]byte, n*ORMChannels),
		Address: address,
	}
}

// AlbedoAt returns the encoded RGBA texel at (x, y).
func (m *Map) AlbedoAt(x, y int) [4]byte {
	i := (y*m.Width + x) * AlbedoChannels
	return [4]byte{m.Albedo[i], m.Albedo[i+1], m.Albedo[i+2], m.Albedo[i+3]}
}

// NormalAt decodes the unit normal stored at (x, y).
func (m *Map) NormalAt(x, y int) (nx, ny, nz float64) {
	i := (y*m.Width + x) * NormalChannels
	return decodeNormal(m.Normal[i]), decodeNormal(m.Normal[i+1]), decodeNormal(m.Normal[i+2])
}

// ORMAt returns the packed occlusion, roughness and metallic bytes at (x, y).
func (m *Map) ORMAt(x, y int) [3]byte {
	i := (y*m.Width + x) * ORMChannels
	return [3]byte{m.ORM[i], m.ORM[i+1], m.ORM[i+2]}
}

// RGB is a linear colour with channels in [0, 1].
type RGB [3]float32

// Lerp blends from c toward d by t, clamped to [0, 1].
func (c RGB) Lerp(d RGB, t float64) RGB {
	tf := float32(clamp01(t))
	return RGB{
		c[0] + (d[0]-c[0])*tf,
		c[1] + (d[1]-c[1])*tf,
		c[2] + (d[2]-c[2])*tf,
	}
}

// Scale multiplies every channel by k.
func (c RGB) Scale(k float32) RGB {
	return RGB{c[0] * k, c[1] * k, c[2] * k}
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

func unitByte(x float64) byte {
	return byte(math.Round(clamp01(x) * 255))
}
