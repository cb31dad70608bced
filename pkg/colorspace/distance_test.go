package colorspace

import "testing"

func allMetrics() []Metric {
	return []Metric{
		Euclidean, Manhattan,
		WeightedEuclideanBT709, WeightedEuclideanNommyde,
		WeightedManhattanLowRed, WeightedManhattanHighRed,
		WeightedYUV, WeightedYCbCr,
		CompuPhase, PngQuant,
		CIE94Textiles, CIE94GraphicArts, CIEDE2000,
	}
}

func TestMetricsAreZeroForIdenticalColors(t *testing.T) {
	c := NewRGB(123, 45, 200)
	for _, m := range allMetrics() {
		if d := m.Distance(c, c); d != 0 {
			t.Errorf("%s.Distance(c, c) = %d, want 0", m.Name(), d)
		}
	}
}

func TestMetricsAreNonNegative(t *testing.T) {
	a := NewRGB(0, 0, 0)
	b := NewRGB(255, 255, 255)
	for _, m := range allMetrics() {
		if d := m.Distance(a, b); d < 0 {
			t.Errorf("%s.Distance(black, white) = %d, want >= 0", m.Name(), d)
		}
	}
}

func TestMetricsAreSymmetric(t *testing.T) {
	a := NewRGB(10, 200, 90)
	b := NewRGB(240, 30, 5)
	for _, m := range allMetrics() {
		// The CIE94 variants weight by the first color's chroma, so their
		// distance depends on argument order.
		if m.Name() == CIE94Textiles.Name() || m.Name() == CIE94GraphicArts.Name() {
			continue
		}
		ab := m.Distance(a, b)
		ba := m.Distance(b, a)
		if ab != ba {
			t.Errorf("%s.Distance is not symmetric: f(a,b)=%d, f(b,a)=%d", m.Name(), ab, ba)
		}
	}
}

func TestEuclideanDistanceIsSumOfSquares(t *testing.T) {
	a := Color{R: 0, G: 0, B: 0, A: 255}
	b := Color{R: 3, G: 4, B: 0, A: 255}
	if got := Euclidean.Distance(a, b); got != 25 {
		t.Fatalf("Euclidean.Distance = %d, want 25 (3^2+4^2)", got)
	}
}

func TestManhattanDistanceIsSumOfAbsoluteDifferences(t *testing.T) {
	a := Color{R: 10, G: 20, B: 30, A: 255}
	b := Color{R: 13, G: 15, B: 40, A: 255}
	if got := Manhattan.Distance(a, b); got != 3+5+10 {
		t.Fatalf("Manhattan.Distance = %d, want 18", got)
	}
}

func TestMonotoneWithColorDifference(t *testing.T) {
	base := NewRGB(100, 100, 100)
	near := NewRGB(105, 100, 100)
	far := NewRGB(200, 100, 100)
	for _, m := range allMetrics() {
		dNear := m.Distance(base, near)
		dFar := m.Distance(base, far)
		if dNear > dFar {
			t.Errorf("%s: distance to a closer color (%d) exceeds distance to a farther one (%d)", m.Name(), dNear, dFar)
		}
	}
}
