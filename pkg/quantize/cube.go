package quantize

import (
	"sort"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

// Axis identifies one of the three RGB dimensions a cube may split along.
type Axis int

const (
	AxisR Axis = iota
	AxisG
	AxisB
)

func channel(c colorspace.Color, a Axis) uint8 {
	switch a {
	case AxisR:
		return c.R
	case AxisG:
		return c.G
	default:
		return c.B
	}
}

// Cube is the shared abstraction behind the box-splitting quantizers: an
// axis-aligned subset of histogram entries, exposing a representative color,
// splittability metrics, and split operations. Every histogram entry belongs
// to exactly one cube in a partition; a cube's average color is the
// count-weighted centroid of its entries.
type Cube struct {
	Entries []ColorCount
}

// NewCube builds a single cube containing every entry.
func NewCube(entries []ColorCount) *Cube {
	return &Cube{Entries: entries}
}

// Weight returns the total pixel count of the cube.
func (c *Cube) Weight() uint64 {
	var w uint64
	for _, e := range c.Entries {
		w += uint64(e.Count)
	}
	return w
}

// Mean returns the count-weighted mean color of the cube's entries.
func (c *Cube) Mean() colorspace.Color {
	if len(c.Entries) == 0 {
		return colorspace.Transparent
	}
	var sumR, sumG, sumB, n uint64
	for _, e := range c.Entries {
		w := uint64(e.Count)
		sumR += uint64(e.Color.R) * w
		sumG += uint64(e.Color.G) * w
		sumB += uint64(e.Color.B) * w
		n += w
	}
	if n == 0 {
		return colorspace.Transparent
	}
	return colorspace.NewRGB(uint8(sumR/n), uint8(sumG/n), uint8(sumB/n))
}

// Bounds returns the per-channel min/max of the cube's entries.
func (c *Cube) Bounds() (minC, maxC [3]uint8) {
	minC = [3]uint8{255, 255, 255}
	for _, e := range c.Entries {
		for a := AxisR; a <= AxisB; a++ {
			v := channel(e.Color, a)
			if v < minC[a] {
				minC[a] = v
			}
			if v > maxC[a] {
				maxC[a] = v
			}
		}
	}
	return
}

// Volume returns the axis-aligned bounding-box volume used by median-cut.
func (c *Cube) Volume() int {
	minC, maxC := c.Bounds()
	return int(maxC[0]-minC[0]+1) * int(maxC[1]-minC[1]+1) * int(maxC[2]-minC[2]+1)
}

// LongestAxis returns the axis with the greatest channel range, tie-broken
// R > G > B.
func (c *Cube) LongestAxis() (Axis, uint8) {
	minC, maxC := c.Bounds()
	ranges := [3]uint8{maxC[0] - minC[0], maxC[1] - minC[1], maxC[2] - minC[2]}
	best := AxisR
	for a := AxisG; a <= AxisB; a++ {
		if ranges[a] > ranges[best] {
			best = a
		}
	}
	return best, ranges[best]
}

// Variance returns the per-channel population variance weighted by pixel
// count (summed by VarianceBased's splittability).
func (c *Cube) Variance() (varR, varG, varB float64) {
	n := c.Weight()
	if n == 0 {
		return
	}
	mean := c.Mean()
	var sqR, sqG, sqB float64
	for _, e := range c.Entries {
		w := float64(e.Count)
		dr := float64(e.Color.R) - float64(mean.R)
		dg := float64(e.Color.G) - float64(mean.G)
		db := float64(e.Color.B) - float64(mean.B)
		sqR += w * dr * dr
		sqG += w * dg * dg
		sqB += w * db * db
	}
	fn := float64(n)
	return sqR / fn, sqG / fn, sqB / fn
}

// SSE returns the sum of squared error of every pixel from the cube's
// centroid, used by VarianceCut's splittability.
func (c *Cube) SSE() float64 {
	mean := c.Mean()
	var sse float64
	for _, e := range c.Entries {
		w := float64(e.Count)
		dr := float64(e.Color.R) - float64(mean.R)
		dg := float64(e.Color.G) - float64(mean.G)
		db := float64(e.Color.B) - float64(mean.B)
		sse += w * (dr*dr + dg*dg + db*db)
	}
	return sse
}

// Covariance returns the 3×3 covariance matrix Σ = R − (m·mᵀ)/N, where m and
// R are the running first and second color moments, for
// BinarySplitting's eigen-decomposition.
func (c *Cube) Covariance() [3][3]float64 {
	n := float64(c.Weight())
	if n == 0 {
		return [3][3]float64{}
	}
	var sum [3]float64
	var sumSq [3][3]float64
	for _, e := range c.Entries {
		w := float64(e.Count)
		v := [3]float64{float64(e.Color.R), float64(e.Color.G), float64(e.Color.B)}
		for i := 0; i < 3; i++ {
			sum[i] += w * v[i]
			for j := 0; j < 3; j++ {
				sumSq[i][j] += w * v[i] * v[j]
			}
		}
	}
	var cov [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cov[i][j] = sumSq[i][j]/n - (sum[i]/n)*(sum[j]/n)
		}
	}
	return cov
}

// SplitAtMedian sorts the cube's entries along axis and splits at index
// floor(n/2). For n >= 2 both children are non-empty; for n < 2 the left
// cube is empty and the caller should treat the cube as unsplittable.
func (c *Cube) SplitAtMedian(axis Axis) (left, right *Cube) {
	entries := make([]ColorCount, len(c.Entries))
	copy(entries, c.Entries)
	sort.Slice(entries, func(i, j int) bool {
		return channel(entries[i].Color, axis) < channel(entries[j].Color, axis)
	})
	mid := len(entries) / 2
	return &Cube{Entries: entries[:mid]}, &Cube{Entries: entries[mid:]}
}

// SplitAtValue partitions entries by whether their axis channel is <=
// threshold. Used by the variance-based, variance-cut, and Wu quantizers;
// variance-cut and Wu fall back to SplitAtMedian if this produces an empty
// side.
func (c *Cube) SplitAtValue(axis Axis, threshold uint8) (left, right *Cube) {
	var l, r []ColorCount
	for _, e := range c.Entries {
		if channel(e.Color, axis) <= threshold {
			l = append(l, e)
		} else {
			r = append(r, e)
		}
	}
	return &Cube{Entries: l}, &Cube{Entries: r}
}

// Splittable reports whether the cube contains more than one distinct color
// and can therefore still be split.
func (c *Cube) Splittable() bool {
	if len(c.Entries) < 2 {
		return false
	}
	first := c.Entries[0].Color
	for _, e := range c.Entries[1:] {
		if e.Color != first {
			return true
		}
	}
	return false
}
