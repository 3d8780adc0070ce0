package patterns

import (
	"github.com/aquilax/go-perlin"
)

const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
	noiseScale  = 7.3
)

// Noise builds a rows x cols soup from Perlin noise. density in [0,1] is roughly the
// share of live cells; the same seed always gives the same soup.
func Noise(rows, cols int, density float64, seed int64) Pattern {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	var (
		p         = perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed)
		threshold = noiseThreshold(density)
		out       = make(Pattern, rows)
	)
	for r := range out {
		out[r] = make([]bool, cols)
		for c := range out[r] {
			v := p.Noise2D(float64(c)/noiseScale, float64(r)/noiseScale)
			out[r][c] = v > threshold
		}
	}
	return out
}

// noiseThreshold maps a density onto the noise range. Values outside [0,1] clamp to an
// empty or full soup.
func noiseThreshold(density float64) float64 {
	switch {
	case density <= 0:
		return 2
	case density >= 1:
		return -2
	}
	// octave noise is mostly within [-0.5, 0.5]
	return 0.5 - density
}
