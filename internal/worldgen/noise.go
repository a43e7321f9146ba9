package worldgen

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Classic gradient Perlin peaks near ±sqrt(1/2) in 2D; rescale so a single layer spans [-1, 1].
const perlinScale = math.Sqrt2

// fbm sums octaves of single-layer Perlin noise. Octave count, persistence and lacunarity
// are applied here rather than inside go-perlin so the result can be normalised by the
// total amplitude.
type fbm struct {
	layer       *perlin.Perlin
	frequency   float64
	octaves     int
	persistence float64
	lacunarity  float64
}

func newFBM(seed int64) *fbm {
	return &fbm{
		// alpha and beta only matter for n > 1
		layer:       perlin.NewPerlin(2, 2, 1, seed),
		frequency:   baseFrequency,
		octaves:     numOctaves,
		persistence: persistence,
		lacunarity:  lacunarity,
	}
}

// At returns the normalised fractal noise at (x, z), in [-1, 1].
func (f *fbm) At(x, z float64) float64 {
	amplitude := 1.0
	frequency := f.frequency
	total := 0.0
	norm := 0.0
	for i := 0; i < f.octaves; i++ {
		total += f.sample(x*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= f.persistence
		frequency *= f.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return total / norm
}

func (f *fbm) sample(x, z float64) float64 {
	v := f.layer.Noise2D(x, z) * perlinScale
	return math.Max(-1, math.Min(1, v))
}

// treeNoise is decorrelated from the height field by using a different algorithm and seed.
type treeNoise struct {
	n opensimplex.Noise
}

func newTreeNoise(seed int64) treeNoise {
	return treeNoise{n: opensimplex.New(seed ^ treeSeedSalt)}
}

func (t treeNoise) At(x, z int) float64 {
	return t.n.Eval2(float64(x)*treeFrequency, float64(z)*treeFrequency)
}
