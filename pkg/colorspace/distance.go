package colorspace

import "math"

// Metric computes a non-negative integer distance between two colors,
// monotone in perceived difference. Implementations are stateless and safe
// for concurrent use.
type Metric interface {
	Distance(c1, c2 Color) int
	Name() string
}

// ChannelWeights is a published per-channel weighting used by the weighted
// Euclidean/Manhattan metrics.
type ChannelWeights struct {
	R, G, B, A float64
}

// Published per-channel weight sets for the weighted distance metrics.
var (
	WeightsBT709   = ChannelWeights{R: 0.2126, G: 0.7152, B: 0.0722, A: 1}
	WeightsNommyde = ChannelWeights{R: 0.4984, G: 0.8625, B: 0.2979, A: 1}
	WeightsLowRed  = ChannelWeights{R: 2, G: 4, B: 3, A: 1}
	WeightsHighRed = ChannelWeights{R: 3, G: 4, B: 2, A: 1}
)

type funcMetric struct {
	name string
	fn   func(c1, c2 Color) int
}

func (f funcMetric) Distance(c1, c2 Color) int { return f.fn(c1, c2) }
func (f funcMetric) Name() string              { return f.name }

func sq(x int) int { return x * x }

// Euclidean is squared Euclidean distance in sRGB, with the squared alpha
// difference added.
var Euclidean Metric = funcMetric{"Euclidean", func(c1, c2 Color) int {
	dr := int(c1.R) - int(c2.R)
	dg := int(c1.G) - int(c2.G)
	db := int(c1.B) - int(c2.B)
	da := int(c1.A) - int(c2.A)
	return sq(dr) + sq(dg) + sq(db) + sq(da)
}}

// Manhattan is L1 distance in sRGB, including alpha.
var Manhattan Metric = funcMetric{"Manhattan", func(c1, c2 Color) int {
	return abs(int(c1.R)-int(c2.R)) + abs(int(c1.G)-int(c2.G)) + abs(int(c1.B)-int(c2.B)) + abs(int(c1.A)-int(c2.A))
}}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// NewWeightedEuclidean builds a weighted squared-Euclidean metric using the
// given per-channel weights (see WeightsBT709 and friends).
func NewWeightedEuclidean(name string, w ChannelWeights) Metric {
	return funcMetric{name, func(c1, c2 Color) int {
		dr := float64(int(c1.R) - int(c2.R))
		dg := float64(int(c1.G) - int(c2.G))
		db := float64(int(c1.B) - int(c2.B))
		da := float64(int(c1.A) - int(c2.A))
		return int(w.R*dr*dr + w.G*dg*dg + w.B*db*db + w.A*da*da)
	}}
}

// NewWeightedManhattan builds a weighted L1 metric.
func NewWeightedManhattan(name string, w ChannelWeights) Metric {
	return funcMetric{name, func(c1, c2 Color) int {
		dr := math.Abs(float64(int(c1.R) - int(c2.R)))
		dg := math.Abs(float64(int(c1.G) - int(c2.G)))
		db := math.Abs(float64(int(c1.B) - int(c2.B)))
		da := math.Abs(float64(int(c1.A) - int(c2.A)))
		return int(w.R*dr + w.G*dg + w.B*db + w.A*da)
	}}
}

var (
	WeightedEuclideanBT709   = NewWeightedEuclidean("WeightedEuclidean/BT709", WeightsBT709)
	WeightedEuclideanNommyde = NewWeightedEuclidean("WeightedEuclidean/Nommyde", WeightsNommyde)
	WeightedManhattanLowRed  = NewWeightedManhattan("WeightedManhattan/LowRed", WeightsLowRed)
	WeightedManhattanHighRed = NewWeightedManhattan("WeightedManhattan/HighRed", WeightsHighRed)
)

// WeightedYUV weights BT.601 Y'UV channel differences (6, 2, 2, 10)/20.
var WeightedYUV Metric = funcMetric{"WeightedYUV", func(c1, c2 Color) int {
	y1, u1, v1 := c1.Yuv()
	y2, u2, v2 := c2.Yuv()
	da := float64(int(c1.A) - int(c2.A))
	const wy, wu, wv, wa = 6.0 / 20, 2.0 / 20, 2.0 / 20, 10.0 / 20
	dy, du, dv := y1-y2, u1-u2, v1-v2
	return int(wy*dy*dy + wu*du*du + wv*dv*dv + wa*da*da)
}}

// WeightedYCbCr weights BT.601 Y'CbCr channel differences (2,1,1,1)/5.
var WeightedYCbCr Metric = funcMetric{"WeightedYCbCr", func(c1, c2 Color) int {
	y1, cb1, cr1 := c1.YCbCr()
	y2, cb2, cr2 := c2.YCbCr()
	da := float64(int(c1.A) - int(c2.A))
	const wy, wcb, wcr, wa = 2.0 / 5, 1.0 / 5, 1.0 / 5, 1.0 / 5
	dy, dcb, dcr := y1-y2, cb1-cb2, cr1-cr2
	return int(wy*dy*dy + wcb*dcb*dcb + wcr*dcr*dcr + wa*da*da)
}}

// CompuPhase is the "low-cost approximation" from Jonathan Compu-Phase's
// red-mean formula. Pure integer arithmetic.
var CompuPhase Metric = funcMetric{"CompuPhase", func(c1, c2 Color) int {
	rBar := (int(c1.R) + int(c2.R)) / 2
	dr := int(c1.R) - int(c2.R)
	dg := int(c1.G) - int(c2.G)
	db := int(c1.B) - int(c2.B)
	da := int(c1.A) - int(c2.A)
	return (((512+rBar)*dr*dr)>>8 + 4*dg*dg + ((767-rBar)*db*db)>>8 + da*da)
}}

// WhitePoint scales PngQuant's blend-on-black/blend-on-white channel
// contributions; the default gives every channel equal weight.
type WhitePoint struct{ R, G, B, A float64 }

// DefaultWhitePoint weighs every channel equally.
var DefaultWhitePoint = WhitePoint{255, 255, 255, 255}

// NewPngQuant builds the pngquant-style metric: per channel, blend the color
// against both black and white backgrounds (accounting for alpha) before
// differencing, pre-scaled by the given white point.
func NewPngQuant(wp WhitePoint) Metric {
	blend := func(c Color) (rb, gb, bb, rw, gw, bw float64) {
		a := float64(c.A) / 255
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		rb, gb, bb = r*a, g*a, b*a
		rw, gw, bw = r*a+255*(1-a), g*a+255*(1-a), b*a+255*(1-a)
		return
	}
	return funcMetric{"PngQuant", func(c1, c2 Color) int {
		r1b, g1b, b1b, r1w, g1w, b1w := blend(c1)
		r2b, g2b, b2b, r2w, g2w, b2w := blend(c2)
		da := float64(int(c1.A) - int(c2.A))
		sr, sg, sb := wp.R/255, wp.G/255, wp.B/255
		dBlack := sr*sr*sq(int(r1b-r2b)) + sg*sg*sq(int(g1b-g2b)) + sb*sb*sq(int(b1b-b2b))
		dWhite := sr*sr*sq(int(r1w-r2w)) + sg*sg*sq(int(g1w-g2w)) + sb*sb*sq(int(b1w-b2w))
		return int(dBlack+dWhite) + int(wp.A/255*wp.A/255*da*da)
	}}
}

// PngQuant is NewPngQuant(DefaultWhitePoint).
var PngQuant = NewPngQuant(DefaultWhitePoint)

// cie94Params holds the kL, k1, k2 constants distinguishing the Textiles and
// GraphicArts CIE94 variants.
type cie94Params struct{ kL, k1, k2 float64 }

func cie94(c1, c2 Color, p cie94Params) float64 {
	l1, a1, b1 := c1.Lab()
	l2, a2, b2 := c2.Lab()
	dl := l1 - l2
	c1m := math.Hypot(a1, b1)
	c2m := math.Hypot(a2, b2)
	dc := c1m - c2m
	da := a1 - a2
	db := b1 - b2
	dhSq := da*da + db*db - dc*dc
	if dhSq < 0 {
		dhSq = 0
	}
	dh := math.Sqrt(dhSq)

	const kC, kH = 1.0, 1.0
	sl := 1.0
	sc := 1 + p.k1*c1m
	sh := 1 + p.k2*c1m

	tl := dl / (p.kL * sl)
	tc := dc / (kC * sc)
	th := dh / (kH * sh)
	return tl*tl + tc*tc + th*th
}

// CIE94Textiles uses kL=2, k1=0.048, k2=0.014. Like CIE94GraphicArts, it
// weights by the first color's chroma, so swapping the arguments can change
// the result.
var CIE94Textiles Metric = funcMetric{"CIE94/Textiles", func(c1, c2 Color) int {
	return int(cie94(c1, c2, cie94Params{2, 0.048, 0.014}) * 100)
}}

// CIE94GraphicArts uses kL=1, k1=0.045, k2=0.015.
var CIE94GraphicArts Metric = funcMetric{"CIE94/GraphicArts", func(c1, c2 Color) int {
	return int(cie94(c1, c2, cie94Params{1, 0.045, 0.015}) * 100)
}}

// CIEDE2000 implements the full 2000 ΔE formula: G correction, hue-bar
// wrapping, the rotation term RT, and the SL/SC/SH weighting functions.
// Returns (ΔE)²·100 cast to an integer, matching the integer-distance scale
// used by every other metric in this package.
var CIEDE2000 Metric = funcMetric{"CIEDE2000", func(c1, c2 Color) int {
	return int(deltaE2000(c1, c2) * deltaE2000(c1, c2) * 100)
}}

func deltaE2000(c1, c2 Color) float64 {
	l1, a1, b1 := c1.Lab()
	l2, a2, b2 := c2.Lab()

	c1m := math.Hypot(a1, b1)
	c2m := math.Hypot(a2, b2)
	cBar := (c1m + c2m) / 2

	cBar7 := math.Pow(cBar, 7)
	g := 0.5 * (1 - math.Sqrt(cBar7/(cBar7+math.Pow(25, 7))))

	a1p := (1 + g) * a1
	a2p := (1 + g) * a2

	c1p := math.Hypot(a1p, b1)
	c2p := math.Hypot(a2p, b2)

	h1p := hueAngle(a1p, b1)
	h2p := hueAngle(a2p, b2)

	dLp := l2 - l1
	dCp := c2p - c1p

	var dhp float64
	if c1p*c2p == 0 {
		dhp = 0
	} else {
		dhp = h2p - h1p
		switch {
		case dhp > 180:
			dhp -= 360
		case dhp < -180:
			dhp += 360
		}
	}
	dHp := 2 * math.Sqrt(c1p*c2p) * math.Sin(radians(dhp)/2)

	lBarp := (l1 + l2) / 2
	cBarp := (c1p + c2p) / 2

	var hBarp float64
	if c1p*c2p == 0 {
		hBarp = h1p + h2p
	} else {
		diff := math.Abs(h1p - h2p)
		switch {
		case diff <= 180:
			hBarp = (h1p + h2p) / 2
		case h1p+h2p < 360:
			hBarp = (h1p + h2p + 360) / 2
		default:
			hBarp = (h1p + h2p - 360) / 2
		}
	}

	t := 1 - 0.17*math.Cos(radians(hBarp-30)) +
		0.24*math.Cos(radians(2*hBarp)) +
		0.32*math.Cos(radians(3*hBarp+6)) -
		0.20*math.Cos(radians(4*hBarp-63))

	dTheta := 30 * math.Exp(-math.Pow((hBarp-275)/25, 2))
	cBarp7 := math.Pow(cBarp, 7)
	rc := 2 * math.Sqrt(cBarp7/(cBarp7+math.Pow(25, 7)))
	rt := -rc * math.Sin(radians(2*dTheta))

	sl := 1 + (0.015*math.Pow(lBarp-50, 2))/math.Sqrt(20+math.Pow(lBarp-50, 2))
	sc := 1 + 0.045*cBarp
	sh := 1 + 0.015*cBarp*t

	const kL, kC, kH = 1, 1, 1

	tl := dLp / (kL * sl)
	tc := dCp / (kC * sc)
	th := dHp / (kH * sh)

	deSq := tl*tl + tc*tc + th*th + rt*tc*th
	if deSq < 0 {
		deSq = 0
	}
	return math.Sqrt(deSq)
}

func hueAngle(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
