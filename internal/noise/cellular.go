package noise

import "math"

// Epsilon floors distance ratios in the cellular layer.
const Epsilon = 1e-9

// Cellular is a jittered-lattice Worley field over the unit torus.
//
// The lattice has an integer number of cells along each axis and feature
// points are hashed from wrapped cell indices, so the distance field tiles
// exactly even though it does not go through the 4-D torus.
type Cellular struct {
	seed   uint64
	cellsU int
	cellsV int
}

// NewCellular builds a cellular field with the given cell counts. Counts are
// rounded to the nearest integer and floored at 1; unequal counts give
// anisotropic cells.
func NewCellular(seed int64, cellsU, cellsV float64) *Cellular {
	return &Cellular{
		seed:   uint64(seed),
		cellsU: cellCount(cellsU),
		cellsV: cellCount(cellsV),
	}
}

func cellCount(f float64) int {
	if math.IsNaN(f) || f < 1 {
		return 1
	}
	if f > 4096 {
		return 4096
	}
	return int(math.Round(f))
}

// Cells reports the rounded lattice size.
func (c *Cellular) Cells() (u, v int) { return c.cellsU, c.cellsV }

// At returns the distances to the nearest and second-nearest feature
// points, measured in cell units.
func (c *Cellular) At(u, v float64) (f1, f2 float64) {
	x := u * float64(c.cellsU)
	y := v * float64(c.cellsV)
	ix := int(math.Floor(x))
	iy := int(math.Floor(y))

	f1, f2 = math.Inf(1), math.Inf(1)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			cx, cy := ix+dx, iy+dy
			jx, jy := c.jitter(wrap(cx, c.cellsU), wrap(cy, c.cellsV))
			ddx := float64(cx) + jx - x
			ddy := float64(cy) + jy - y
			d := math.Sqrt(ddx*ddx + ddy*ddy)
			switch {
			case d < f1:
				f1, f2 = d, f1
			case d < f2:
				f2 = d
			}
		}
	}
	return f1, f2
}

// Edge returns 1 - F1/F2: zero on cell borders, one at feature points.
func (c *Cellular) Edge(u, v float64) float64 {
	f1, f2 := c.At(u, v)
	return clamp01(1 - f1/math.Max(f2, Epsilon))
}

// jitter returns the feature point offset inside cell (i, j), in [0,1)².
func (c *Cellular) jitter(i, j int) (float64, float64) {
	h := mix(c.seed ^ uint64(uint32(i))<<32 ^ uint64(uint32(j)))
	return float64(h>>40) / (1 << 24), float64((h>>16)&0xFFFFFF) / (1 << 24)
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
