package texture

import "math"

// BoundaryMode selects how neighbours past the image edge are read.
type BoundaryMode int

const (
	// BoundaryWrap reads the opposite edge, for tiling surfaces.
	BoundaryWrap BoundaryMode = iota
	// BoundaryClamp repeats the edge pixel, for foliage cards.
	BoundaryClamp
)

func neighbor(i, n int, mode BoundaryMode) int {
	if mode == BoundaryClamp {
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// window keeps three consecutive rows of per-pixel values so a row's
// vertical neighbours are available without materializing the whole grid.
type window[T any] struct {
	prev, cur, next []T
	height          int
	mode            BoundaryMode
	fill            func(y int, row []T)
}

func newWindow[T any](width, height int, mode BoundaryMode, fill func(y int, row []T)) *window[T] {
	w := &window[T]{
		prev:   make([]T, width),
		cur:    make([]T, width),
		next:   make([]T, width),
		height: height,
		mode:   mode,
		fill:   fill,
	}
	fill(neighbor(-1, height, mode), w.prev)
	fill(0, w.cur)
	fill(neighbor(1, height, mode), w.next)
	return w
}

// advance moves the centre row from y-1 to y.
func (w *window[T]) advance(y int) {
	w.prev, w.cur, w.next = w.cur, w.next, w.prev
	w.fill(neighbor(y+1, w.height, w.mode), w.next)
}

// HeightFunc returns the height of pixel (x, y).
type HeightFunc func(x, y int) float64

// NormalFromHeight derives a tangent-space normal map from a height field.
// Neighbours are read according to mode; with BoundaryWrap the result is
// periodic whenever the height field is. The returned buffer holds
// NormalChannels bytes per pixel.
func NormalFromHeight(width, height int, strength float64, mode BoundaryMode, h HeightFunc) []byte {
	out := make([]byte, width*height*NormalChannels)
	win := newWindow(width, height, mode, func(y int, row []float64) {
		for x := range row {
			row[x] = h(x, y)
		}
	})
	for y := 0; y < height; y++ {
		if y > 0 {
			win.advance(y)
		}
		for x := 0; x < width; x++ {
			dx := (win.cur[neighbor(x+1, width, mode)] - win.cur[neighbor(x-1, width, mode)]) * strength
			dy := (win.next[x] - win.prev[x]) * strength
			encodeNormal(out[(y*width+x)*NormalChannels:], dx, dy)
		}
	}
	return out
}

// SurfaceNormal returns normalize(-dx, -dy, 1).
func SurfaceNormal(dx, dy float64) (nx, ny, nz float64) {
	inv := 1 / math.Sqrt(dx*dx+dy*dy+1)
	return -dx * inv, -dy * inv, inv
}

func encodeNormal(dst []byte, dx, dy float64) {
	nx, ny, nz := SurfaceNormal(dx, dy)
	dst[0] = unitByte(nx*0.5 + 0.5)
	dst[1] = unitByte(ny*0.5 + 0.5)
	dst[2] = unitByte(nz*0.5 + 0.5)
}

func decodeNormal(b byte) float64 {
	return float64(b)/255*2 - 1
}
