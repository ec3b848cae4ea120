package separate

import (
	"math"
	"math/rand/v2"
	"testing"
)

var (
	white = [3]float64{1, 1, 1}

	cyan    = [3]float64{0, 1, 1}
	magenta = [3]float64{1, 0, 1}
	yellow  = [3]float64{1, 1, 0}
	black   = [3]float64{0, 0, 0}
)

// solidPixels returns a w*h buffer filled with one RGBA value.
func solidPixels(w, h int, r, g, b, a uint8) []uint8 {
	pix := make([]uint8, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
	return pix
}

// randomPixels returns a reproducible pseudo-random pixel buffer.
func randomPixels(w, h int, seed uint64) []uint8 {
	rng := rand.New(rand.NewPCG(seed, seed))
	pix := make([]uint8, w*h*4)
	for i := range pix {
		pix[i] = uint8(rng.UintN(256))
	}
	return pix
}

func TestDecompose_TransparentPixelsAreZero(t *testing.T) {
	const w, h = 8, 8
	pix := solidPixels(w, h, 40, 80, 120, 0) // alpha 0
	b := NewBasis([][3]float64{cyan, magenta, black}, white)

	maps := Decompose(pix, w, h, b)
	for i, m := range maps {
		for p, d := range m {
			if d != 0 {
				t.Fatalf("ink %d pixel %d: density %v, want exactly 0 for transparent source", i, p, d)
			}
		}
	}
}

func TestDecompose_DensitiesInRange(t *testing.T) {
	const w, h = 16, 16
	pix := randomPixels(w, h, 7)

	inkSets := [][][3]float64{
		{black},
		{cyan, magenta, yellow},
		{cyan, magenta, yellow, black},
		{{0.2, 0.5, 0.9}, {0.9, 0.1, 0.3}, {0.99, 0.99, 0.97}}, // includes a near-basis ink
	}
	for _, inks := range inkSets {
		b := NewBasis(inks, white)
		maps := Decompose(pix, w, h, b)
		for i, m := range maps {
			for p, d := range m {
				if math.IsNaN(d) || d < 0 || d > 1 {
					t.Fatalf("%d inks, ink %d pixel %d: density %v out of [0,1]", len(inks), i, p, d)
				}
			}
		}
	}
}

func TestDecompose_PermutationInvariance(t *testing.T) {
	const w, h = 12, 12
	pix := randomPixels(w, h, 11)

	inks := [][3]float64{cyan, magenta, yellow}
	perm := [][3]float64{yellow, cyan, magenta} // maps back: perm[j] == inks[order[j]]
	order := []int{2, 0, 1}

	a := Decompose(pix, w, h, NewBasis(inks, white))
	b := Decompose(pix, w, h, NewBasis(perm, white))

	const tol = 1e-6
	for j := range perm {
		orig := a[order[j]]
		for p := range orig {
			if math.Abs(orig[p]-b[j][p]) > tol {
				t.Fatalf("pixel %d: ink %q density %v != permuted %v", p, []string{"C", "M", "Y"}[order[j]], orig[p], b[j][p])
			}
		}
	}
}

func TestDecompose_BlackInkRecoversInvertedLuminance(t *testing.T) {
	// With a single pure black ink, delta = (1,1,1) and the projection
	// gives d = mean(1 - channel), which for gray input is 1 - gray.
	const w, h = 4, 4
	grays := []uint8{0, 51, 128, 200, 255}
	b := NewBasis([][3]float64{black}, white)

	for _, g := range grays {
		pix := solidPixels(w, h, g, g, g, 255)
		maps := Decompose(pix, w, h, b)
		want := 1 - float64(g)/255
		if got := maps[0][0]; math.Abs(got-want) > 1e-9 {
			t.Errorf("gray %d: density %v, want %v", g, got, want)
		}
	}
}

func TestDecompose_SingleInkExactRecovery(t *testing.T) {
	// Pixel constructed as basis - d*delta must decompose to density d.
	ink := [3]float64{1, 0.4, 0.37} // riso red-ish
	const d = 0.6

	var rgb [3]uint8
	for c := 0; c < 3; c++ {
		rgb[c] = uint8(math.Round((1 - d*(1-ink[c])) * 255))
	}
	pix := solidPixels(2, 2, rgb[0], rgb[1], rgb[2], 255)

	maps := Decompose(pix, 2, 2, NewBasis([][3]float64{ink}, white))
	if got := maps[0][0]; math.Abs(got-d) > 0.01 {
		t.Errorf("density %v, want %v (quantized input)", got, d)
	}
}

func TestDecompose_TwoInkMixtureRecovery(t *testing.T) {
	// A pixel mixing two well-separated inks should decompose back into
	// its mixture weights after the coordinate-descent sweeps.
	inks := [][3]float64{cyan, yellow}
	d1, d2 := 0.7, 0.3

	var rgb [3]uint8
	for c := 0; c < 3; c++ {
		v := 1 - d1*(1-inks[0][c]) - d2*(1-inks[1][c])
		rgb[c] = uint8(math.Round(v * 255))
	}
	pix := solidPixels(1, 1, rgb[0], rgb[1], rgb[2], 255)

	maps := Decompose(pix, 1, 1, NewBasis(inks, white))
	if math.Abs(maps[0][0]-d1) > 0.02 || math.Abs(maps[1][0]-d2) > 0.02 {
		t.Errorf("densities (%v, %v), want (%v, %v)", maps[0][0], maps[1][0], d1, d2)
	}
}

func TestDecompose_AlphaScalesTarget(t *testing.T) {
	// Half-transparent black over the basis asks for half the ink.
	pix := solidPixels(1, 1, 0, 0, 0, 128)
	maps := Decompose(pix, 1, 1, NewBasis([][3]float64{black}, white))
	want := 128.0 / 255
	if got := maps[0][0]; math.Abs(got-want) > 1e-9 {
		t.Errorf("density %v, want %v", got, want)
	}
}

func TestNewBasis_NearBasisDetection(t *testing.T) {
	tests := []struct {
		name string
		ink  [3]float64
		want bool
	}{
		{"pure black", black, false},
		{"cyan", cyan, false},
		{"exact white", white, true},
		{"near white", [3]float64{0.99, 0.99, 0.98}, true},
		{"pale but distinct", [3]float64{0.9, 0.9, 0.9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBasis([][3]float64{tt.ink}, white)
			if got := b.NearBasis(0); got != tt.want {
				t.Errorf("NearBasis = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecompose_NearBasisLuminanceFallback(t *testing.T) {
	// A white ink cannot be separated against white paper; its density
	// must come from the source's darkness instead of the solver.
	b := NewBasis([][3]float64{white}, white)

	pix := solidPixels(1, 1, 51, 51, 51, 255) // dark gray, luma 0.2
	maps := Decompose(pix, 1, 1, b)
	want := 1 - 0.2
	if got := maps[0][0]; math.Abs(got-want) > 1e-9 {
		t.Errorf("fallback density %v, want %v", got, want)
	}

	// The fallback still respects source alpha.
	pix = solidPixels(1, 1, 0, 0, 0, 128)
	maps = Decompose(pix, 1, 1, b)
	want = 128.0 / 255
	if got := maps[0][0]; math.Abs(got-want) > 1e-9 {
		t.Errorf("fallback density with alpha %v, want %v", got, want)
	}
}

func TestDecompose_ZeroInks(t *testing.T) {
	maps := Decompose(solidPixels(2, 2, 0, 0, 0, 255), 2, 2, NewBasis(nil, white))
	if len(maps) != 0 {
		t.Fatalf("got %d maps for zero inks, want 0", len(maps))
	}
}

func BenchmarkDecompose(b *testing.B) {
	const w, h = 256, 256
	pix := randomPixels(w, h, 3)
	basis := NewBasis([][3]float64{cyan, magenta, yellow, black}, white)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decompose(pix, w, h, basis)
	}
}
