package quantize

import (
	"math"
	"math/rand"
	"sort"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// Adu is an Adaptive Distributing Units quantizer: a competitive learning
// scheme seeded from the most frequent colors, refined over IterationCount
// rounds of winner-take-most updates.
type Adu struct {
	// IterationCount is the number of competitive-learning rounds. Zero
	// selects the default of 10.
	IterationCount int
	// Seed controls the deterministic shuffle used each round; zero selects
	// a fixed default so runs are reproducible.
	Seed int64
}

func (Adu) Name() string { return "Adu" }

func (q Adu) Reduce(target int, h *Histogram) (palette.Palette, error) {
	iterations := q.IterationCount
	if iterations <= 0 {
		iterations = 10
	}
	seed := q.Seed
	if seed == 0 {
		seed = 1
	}
	return Base(target, h, func(target int, colors []ColorCount) []colorspace.Color {
		return aduAlgorithm(target, colors, iterations, seed)
	})
}

type aduUnit struct{ r, g, b float64 }

func aduAlgorithm(target int, colors []ColorCount, iterations int, seed int64) []colorspace.Color {
	sorted := make([]ColorCount, len(colors))
	copy(sorted, colors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })

	units := make([]aduUnit, target)
	for i := range units {
		src := sorted[i%len(sorted)]
		units[i] = aduUnit{float64(src.Color.R), float64(src.Color.G), float64(src.Color.B)}
	}

	rng := rand.New(rand.NewSource(seed))
	order := make([]int, len(colors))
	for i := range order {
		order[i] = i
	}

	dist := func(a aduUnit, c colorspace.Color) float64 {
		dr := a.r - float64(c.R)
		dg := a.g - float64(c.G)
		db := a.b - float64(c.B)
		return math.Sqrt(dr*dr + dg*dg + db*db)
	}

	for iter := 0; iter < iterations; iter++ {
		alpha := math.Max(0.001, 0.01*math.Exp(-3*float64(iter)/float64(iterations)))

		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for _, idx := range order {
			cc := colors[idx]

			winner := 0
			winnerDist := dist(units[0], cc.Color)
			for j := 1; j < len(units); j++ {
				if d := dist(units[j], cc.Color); d < winnerDist {
					winnerDist = d
					winner = j
				}
			}

			move := math.Min(alpha*math.Log(float64(cc.Count)+1)/10, 1.0)
			units[winner].r += (float64(cc.Color.R) - units[winner].r) * move
			units[winner].g += (float64(cc.Color.G) - units[winner].g) * move
			units[winner].b += (float64(cc.Color.B) - units[winner].b) * move

			for j := range units {
				if j == winner {
					continue
				}
				d := dist(units[j], cc.Color)
				if d < 2*winnerDist {
					pull := 0.1 * alpha * math.Exp(-d/1000)
					units[j].r += (float64(cc.Color.R) - units[j].r) * pull
					units[j].g += (float64(cc.Color.G) - units[j].g) * pull
					units[j].b += (float64(cc.Color.B) - units[j].b) * pull
				}
			}
		}
	}

	out := make([]colorspace.Color, len(units))
	for i, u := range units {
		out[i] = colorspace.NewRGB(clampByte(u.r), clampByte(u.g), clampByte(u.b))
	}
	return out
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
