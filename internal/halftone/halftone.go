// Package halftone converts continuous ink density maps into dot-screen
// opacity maps, simulating the two classic screening families:
// amplitude-modulated (regular grid, dot size encodes density) and
// frequency-modulated (fixed dots, stochastic presence encodes density).
//
// Both screens are pure functions of their inputs. The only randomness
// is a deterministic hash of grid cell coordinates, so identical inputs
// reproduce identical output bit for bit.
package halftone

import "math"

// Mode selects the screening algorithm.
type Mode int

const (
	// AM is amplitude-modulated screening.
	AM Mode = iota
	// FM is frequency-modulated (stochastic) screening.
	FM
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case AM:
		return "AM"
	case FM:
		return "FM"
	default:
		return "Unknown"
	}
}

// Options configures one screen pass.
type Options struct {
	// DotSize is the dot pitch in pixels. Must be > 0.
	DotSize float64

	// Angle is the screen angle in degrees. Rotation symmetry makes it
	// effective mod 180.
	Angle float64

	// DensityScale multiplies sampled densities before thresholding;
	// results are clamped to 1.
	DensityScale float64

	// Mode selects AM or FM screening.
	Mode Mode
}

// edge is the anti-alias half-width in pixels: opacity ramps linearly
// from 1 to 0 across [radius-edge, radius+edge].
const edge = 0.5

// Screen renders the density map through the configured dot screen and
// returns a same-sized opacity map with values in [0, 1].
func Screen(density []float64, w, h int, o Options) []float64 {
	if o.Mode == FM {
		return screenFM(density, w, h, o)
	}
	return screenAM(density, w, h, o)
}

// screenAM lays a regular grid in the rotated frame; each cell holds one
// dot whose area scales linearly with the density sampled at its center,
// so dots look proportionally inked.
func screenAM(density []float64, w, h int, o Options) []float64 {
	out := make([]float64, w*h)
	cell := o.DotSize + 2
	sin, cos := math.Sincos(o.Angle * math.Pi / 180)
	scale := o.DensityScale
	if scale == 0 {
		scale = 1
	}

	for y := 0; y < h; y++ {
		fy := float64(y)
		for x := 0; x < w; x++ {
			fx := float64(x)

			// Rotate into the screen frame.
			rx := fx*cos + fy*sin
			ry := -fx*sin + fy*cos
			cellX := math.Floor(rx / cell)
			cellY := math.Floor(ry / cell)

			best := 0.0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					cx := (cellX + float64(dx) + 0.5) * cell
					cy := (cellY + float64(dy) + 0.5) * cell

					d := sampleAt(density, w, h, cx, cy, sin, cos)
					d = clamp01(d * scale)
					if d <= 0 {
						continue
					}

					// Dot area, not radius, tracks density.
					radius := math.Sqrt(d) * 0.5 * cell
					op := coverage(math.Hypot(rx-cx, ry-cy), radius)
					if radius < 1 {
						op *= subPixelFade(radius, d)
					}
					if op > best {
						best = op
					}
				}
			}
			out[y*w+x] = best
		}
	}
	return out
}

// screenFM keeps dot size fixed at half the pitch and gates each grid
// cell on a deterministic hash threshold: cells fire when the local
// density exceeds their threshold, so darker regions fire statistically
// more dots.
func screenFM(density []float64, w, h int, o Options) []float64 {
	out := make([]float64, w*h)
	cell := o.DotSize
	radius := o.DotSize / 2
	sin, cos := math.Sincos(o.Angle * math.Pi / 180)
	scale := o.DensityScale
	if scale == 0 {
		scale = 1
	}

	// Candidate cells within the dot's anti-aliased reach.
	reach := int(math.Ceil((radius + edge) / cell))
	if reach < 1 {
		reach = 1
	}

	for y := 0; y < h; y++ {
		fy := float64(y)
		for x := 0; x < w; x++ {
			fx := float64(x)

			rx := fx*cos + fy*sin
			ry := -fx*sin + fy*cos
			cellX := int(math.Floor(rx / cell))
			cellY := int(math.Floor(ry / cell))

			best := 0.0
			for dy := -reach; dy <= reach; dy++ {
				for dx := -reach; dx <= reach; dx++ {
					ci := cellX + dx
					cj := cellY + dy

					cx := (float64(ci) + 0.5) * cell
					cy := (float64(cj) + 0.5) * cell

					d := sampleAt(density, w, h, cx, cy, sin, cos)
					d = clamp01(d * scale)
					if d <= cellThreshold(int32(ci), int32(cj)) {
						continue
					}

					op := coverage(math.Hypot(rx-cx, ry-cy), radius)
					if radius < 1 {
						op *= subPixelFade(radius, d)
					}
					if op > best {
						best = op
					}
				}
			}
			out[y*w+x] = best
		}
	}
	return out
}

// sampleAt maps a rotated-frame point back to image space and samples
// the density map at the nearest pixel. Out of bounds reads zero.
func sampleAt(density []float64, w, h int, cx, cy, sin, cos float64) float64 {
	ix := int(math.Round(cx*cos - cy*sin))
	iy := int(math.Round(cx*sin + cy*cos))
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return 0
	}
	return density[iy*w+ix]
}

// coverage is the anti-aliased dot profile: 1 inside radius-edge, 0
// beyond radius+edge, linear in between.
func coverage(dist, radius float64) float64 {
	switch {
	case dist <= radius-edge:
		return 1
	case dist >= radius+edge:
		return 0
	default:
		return (radius + edge - dist) / (2 * edge)
	}
}

// subPixelFade blends extra transparency into dots smaller than one
// pixel so they fade out instead of flickering on and off. At the
// zero-radius limit the dot's opacity approaches sqrt(density).
func subPixelFade(radius, d float64) float64 {
	sq := math.Sqrt(d)
	return sq + (1-sq)*radius
}

// cellThreshold hashes integer grid coordinates to a pseudo-random
// threshold in [0, 1). Stateless, so the screen is reproducible.
func cellThreshold(x, y int32) float64 {
	h := uint32(x)*0x85ebca6b ^ uint32(y)*0xc2b2ae35
	h ^= h >> 13
	h *= 0x27d4eb2f
	h ^= h >> 15
	return float64(h) / (1 << 32)
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
