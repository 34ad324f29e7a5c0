// Package noise provides seamless-tiling noise primitives.
//
// All tileable fields are evaluated on a 4-D torus: a UV pair in [0,1)² is
// lifted to (cos 2πu, sin 2πu, cos 2πv, sin 2πv) before the lookup, so the
// field is periodic in u and v with period exactly 1.
package noise

import (
	"math"
	"math/rand"
)

var grad4 = [32][4]float64{
	{0, 1, 1, 1}, {0, 1, 1, -1}, {0, 1, -1, 1}, {0, 1, -1, -1},
	{0, -1, 1, 1}, {0, -1, 1, -1}, {0, -1, -1, 1}, {0, -1, -1, -1},
	{1, 0, 1, 1}, {1, 0, 1, -1}, {1, 0, -1, 1}, {1, 0, -1, -1},
	{-1, 0, 1, 1}, {-1, 0, 1, -1}, {-1, 0, -1, 1}, {-1, 0, -1, -1},
	{1, 1, 0, 1}, {1, 1, 0, -1}, {1, -1, 0, 1}, {1, -1, 0, -1},
	{-1, 1, 0, 1}, {-1, 1, 0, -1}, {-1, -1, 0, 1}, {-1, -1, 0, -1},
	{1, 1, 1, 0}, {1, 1, -1, 0}, {1, -1, 1, 0}, {1, -1, -1, 0},
	{-1, 1, 1, 0}, {-1, 1, -1, 0}, {-1, -1, 1, 0}, {-1, -1, -1, 0},
}

const (
	skew4   = 0.30901699437494745 // (sqrt(5)-1)/4
	unskew4 = 0.1381966011250105  // (5-sqrt(5))/20
)

// kernelRadius2 is the squared corner kernel radius. At 0.5 every kernel
// reaches zero before the simplex boundary, so the field is continuous even
// for points that sit exactly on a boundary, as the torus lift produces at
// u = 0 and v = 0. outputScale maps the kernel sum to about [-1, 1].
const (
	kernelRadius2 = 0.5
	outputScale   = 60.0
)

// simplex is a seeded 4-D simplex noise source. It is read-only after
// construction and safe for concurrent use.
type simplex struct {
	perm [512]uint8
}

func newSimplex(seed int64) *simplex {
	s := &simplex{}
	r := rand.New(rand.NewSource(seed))
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	for i := 255; i > 0; i-- {
		j := r.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	for i := range s.perm {
		s.perm[i] = p[i&255]
	}
	return s
}

func (s *simplex) hash(i, j, k, l int) int {
	return int(s.perm[i+int(s.perm[j+int(s.perm[k+int(s.perm[l])])])]) % 32
}

// noise4 returns 4-D simplex noise in [-1, 1].
func (s *simplex) noise4(x, y, z, w float64) float64 {
	t := (x + y + z + w) * skew4
	cell := [4]int{
		int(math.Floor(x + t)),
		int(math.Floor(y + t)),
		int(math.Floor(z + t)),
		int(math.Floor(w + t)),
	}
	t0 := float64(cell[0]+cell[1]+cell[2]+cell[3]) * unskew4
	d0 := [4]float64{
		x - (float64(cell[0]) - t0),
		y - (float64(cell[1]) - t0),
		z - (float64(cell[2]) - t0),
		w - (float64(cell[3]) - t0),
	}

	// Rank each axis by magnitude to pick the traversal order through the
	// five simplex corners.
	var rank [4]int
	for a := 0; a < 4; a++ {
		for b := a + 1; b < 4; b++ {
			if d0[a] > d0[b] {
				rank[a]++
			} else {
				rank[b]++
			}
		}
	}

	ii, jj, kk, ll := cell[0]&255, cell[1]&255, cell[2]&255, cell[3]&255

	total := 0.0
	for corner := 0; corner < 5; corner++ {
		var off [4]int
		for a := 0; a < 4; a++ {
			if rank[a] >= 4-corner {
				off[a] = 1
			}
		}
		var d [4]float64
		for a := 0; a < 4; a++ {
			d[a] = d0[a] - float64(off[a]) + float64(corner)*unskew4
		}
		falloff := kernelRadius2 - d[0]*d[0] - d[1]*d[1] - d[2]*d[2] - d[3]*d[3]
		if falloff <= 0 {
			continue
		}
		g := grad4[s.hash(ii+off[0], jj+off[1], kk+off[2], ll+off[3])]
		falloff *= falloff
		total += falloff * falloff * (g[0]*d[0] + g[1]*d[1] + g[2]*d[2] + g[3]*d[3])
	}
	return max(-1, min(1, outputScale*total))
}
