// Package separate decomposes packed RGBA pixels into per-ink density
// maps and applies the optional bold contrast transform.
//
// The decomposition solves, per pixel, a small non-negative least-squares
// problem: find densities d >= 0 minimizing |target - Σ d_i * delta_i|²,
// where delta_i is ink i's absorption vector relative to the basis color.
// A fixed number of coordinate-descent sweeps over the precomputed Gram
// matrix converges quickly for the handful of inks a print run uses.
package separate

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// sweeps is the fixed coordinate-descent iteration count. Enough for
	// visually stable separations at typical ink counts (2-6).
	sweeps = 12

	// alphaFloor: source pixels below this alpha contribute no ink.
	alphaFloor = 0.01

	// selfDotEps guards the projection against division by near-zero
	// self-absorption.
	selfDotEps = 1e-9

	// nearBasisMag is the absorption magnitude below which an ink is
	// treated as visually equal to the basis and routed through the
	// luminance fallback. Heuristic boundary carried over from tuning;
	// not derived from first principles.
	nearBasisMag = 0.05
)

// Rec. 709 luma weights, applied to gamma-encoded channels.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Basis holds the per-ink absorption geometry for one decomposition:
// absorption vectors, their Gram matrix, and the near-basis flags.
// A Basis is immutable after construction and safe to share.
type Basis struct {
	n         int
	basis     [3]float64
	deltas    []*mat.VecDense // absorption vectors, 3 components each
	gram      *mat.SymDense
	selfDot   []float64
	nearBasis []bool
}

// NewBasis precomputes absorption vectors delta_i = basis - ink_i and
// their pairwise dot products. Ink and basis channels are in [0, 1].
func NewBasis(inks [][3]float64, basis [3]float64) *Basis {
	n := len(inks)
	b := &Basis{
		n:         n,
		basis:     basis,
		deltas:    make([]*mat.VecDense, n),
		gram:      mat.NewSymDense(max(n, 1), nil),
		selfDot:   make([]float64, n),
		nearBasis: make([]bool, n),
	}
	for i, ink := range inks {
		b.deltas[i] = mat.NewVecDense(3, []float64{
			basis[0] - ink[0],
			basis[1] - ink[1],
			basis[2] - ink[2],
		})
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			b.gram.SetSym(i, j, mat.Dot(b.deltas[i], b.deltas[j]))
		}
	}
	for i := 0; i < n; i++ {
		b.selfDot[i] = b.gram.At(i, i)
		b.nearBasis[i] = b.selfDot[i] < nearBasisMag*nearBasisMag
	}
	return b
}

// NumInks returns the number of inks in the basis.
func (b *Basis) NumInks() int { return b.n }

// NearBasis reports whether ink i's absorption is too weak for the
// least-squares path, so its density comes from source luminance instead.
func (b *Basis) NearBasis(i int) bool { return b.nearBasis[i] }

// Decompose produces one density map per basis ink from packed RGBA
// pixels. Every output value is in [0, 1]. Fully transparent source
// pixels (alpha below the floor) decompose to zero density for every ink.
//
// The result is a pure function of (pix, w, h, basis): ink order in the
// basis permutes the output maps but never changes a density value.
func Decompose(pix []uint8, w, h int, b *Basis) [][]float64 {
	maps := make([][]float64, b.n)
	for i := range maps {
		maps[i] = make([]float64, w*h)
	}
	if b.n == 0 {
		return maps
	}

	target := mat.NewVecDense(3, nil)
	dots := make([]float64, b.n)
	dens := make([]float64, b.n)

	for p := 0; p < w*h; p++ {
		o := p * 4
		alpha := float64(pix[o+3]) / 255
		if alpha < alphaFloor {
			continue
		}
		r := float64(pix[o+0]) / 255
		g := float64(pix[o+1]) / 255
		bl := float64(pix[o+2]) / 255

		target.SetVec(0, (b.basis[0]-r)*alpha)
		target.SetVec(1, (b.basis[1]-g)*alpha)
		target.SetVec(2, (b.basis[2]-bl)*alpha)

		for i := 0; i < b.n; i++ {
			dots[i] = mat.Dot(b.deltas[i], target)
		}

		// Projection initialization.
		for i := 0; i < b.n; i++ {
			if b.nearBasis[i] || b.selfDot[i] < selfDotEps {
				dens[i] = 0
				continue
			}
			dens[i] = clamp01(dots[i] / b.selfDot[i])
		}

		// Near-basis inks bypass NNLS entirely: darker source, denser ink.
		for i := 0; i < b.n; i++ {
			if b.nearBasis[i] {
				lum := lumaR*r + lumaG*g + lumaB*bl
				dens[i] = clamp01(1-lum) * alpha
			}
		}

		// Coordinate-descent refinement toward the NNLS solution.
		for s := 0; s < sweeps; s++ {
			for i := 0; i < b.n; i++ {
				if b.nearBasis[i] || b.selfDot[i] < selfDotEps {
					continue
				}
				num := dots[i]
				for j := 0; j < b.n; j++ {
					if j == i {
						continue
					}
					num -= dens[j] * b.gram.At(i, j)
				}
				dens[i] = clamp01(num / b.selfDot[i])
			}
		}

		for i := 0; i < b.n; i++ {
			maps[i][p] = dens[i]
		}
	}
	return maps
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
