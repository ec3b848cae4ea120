// Package noise supplies the two texture sources applied to a layer's
// opacity map before compositing: a deterministic multi-octave value
// noise simulating ink scuffing, and a per-pixel uniform grain jitter
// driven by an injected random source.
package noise

import (
	"math"
	"math/rand/v2"
)

// Octave weights for the combined scuff field.
var octaveWeights = [3]float64{0.3, 0.4, 0.3}

// Scuff fades opacity with a deterministic three-octave value noise
// field, simulating ink starvation where the drum delivers too little
// ink. The effect is one-sided: the noise only ever removes ink, never
// brightens it.
//
// seed should derive from the ink's position in the run so layers scuff
// independently. level is the user noise parameter in [0, 0.5].
func Scuff(op []float64, w, h int, seed uint32, dotSize, level float64) {
	if level <= 0 {
		return
	}

	// Octave cell sizes grow with dot pitch and noise level (base, x3, x9).
	base := dotSize * (1 + level*8)
	if base < 1 {
		base = 1
	}
	cells := [3]float64{base, base * 3, base * 9}

	for y := 0; y < h; y++ {
		fy := float64(y)
		for x := 0; x < w; x++ {
			fx := float64(x)

			combined := 0.0
			for o := 0; o < 3; o++ {
				combined += octaveWeights[o] * valueNoise(fx, fy, cells[o], seed+uint32(o)*0x9e3779b9)
			}

			// Positive deviation = locally starved.
			deviation := (0.5 - combined) * 2
			if deviation <= 0 {
				continue
			}
			f := 1 - deviation*level*2
			if f < 0 {
				f = 0
			}
			op[y*w+x] *= f
		}
	}
}

// Grain adds uniform jitter in [-amount/2, +amount/2] to every opacity
// sample and clamps back to [0, 1]. All randomness comes from rng, so a
// seeded source makes the pass reproducible.
func Grain(op []float64, amount float64, rng *rand.Rand) {
	if amount <= 0 {
		return
	}
	for i := range op {
		v := op[i] + (rng.Float64()-0.5)*amount
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		op[i] = v
	}
}

// valueNoise is bilinear value noise: hashed lattice corners blended
// with smoothstep-eased fractional coordinates. Returns a value in [0, 1).
func valueNoise(x, y, cell float64, seed uint32) float64 {
	gx := math.Floor(x / cell)
	gy := math.Floor(y / cell)
	fx := x/cell - gx
	fy := y/cell - gy

	ix := int32(gx)
	iy := int32(gy)

	c00 := latticeHash(ix, iy, seed)
	c10 := latticeHash(ix+1, iy, seed)
	c01 := latticeHash(ix, iy+1, seed)
	c11 := latticeHash(ix+1, iy+1, seed)

	sx := smoothstep(fx)
	sy := smoothstep(fy)

	top := c00 + (c10-c00)*sx
	bot := c01 + (c11-c01)*sx
	return top + (bot-top)*sy
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// latticeHash maps integer lattice coordinates and a seed to [0, 1).
func latticeHash(x, y int32, seed uint32) float64 {
	h := uint32(x)*0x85ebca6b ^ uint32(y)*0xc2b2ae35 ^ seed*0x27d4eb2f
	h ^= h >> 13
	h *= 0x165667b1
	h ^= h >> 16
	return float64(h) / (1 << 32)
}
