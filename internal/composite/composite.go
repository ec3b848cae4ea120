// Package composite accumulates halftoned ink layers into a final pixel
// buffer using a subtractive transmission model: each layer multiplies
// the light transmitted through the stack, relative to a white backing.
// Layer color composition is therefore commutative; only the
// misregistration offsets carry layer order.
package composite

import "math"

// Mode selects how the accumulated stack resolves to output pixels.
type Mode int

const (
	// Paper blends uncovered regions with an opaque sheet color.
	Paper Mode = iota
	// Transparent recovers straight color plus true coverage alpha.
	Transparent
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Paper:
		return "Paper"
	case Transparent:
		return "Transparent"
	default:
		return "Unknown"
	}
}

// covEps: below this cumulative coverage a transparent-mode pixel is
// fully transparent black (unmultiplying would divide by near-zero).
const covEps = 1e-4

// Accumulator builds the ink stack layer by layer. All buffers are flat
// y*width+x arrays local to one pipeline invocation.
type Accumulator struct {
	w, h int
	rgb  []float64 // 3 per pixel; transmitted light over a white backing
	cov  []float64 // coverage union
}

// NewAccumulator returns an accumulator over a white backing with zero
// coverage everywhere.
func NewAccumulator(w, h int) *Accumulator {
	a := &Accumulator{
		w:   w,
		h:   h,
		rgb: make([]float64, w*h*3),
		cov: make([]float64, w*h),
	}
	for i := range a.rgb {
		a.rgb[i] = 1
	}
	return a
}

// AddLayer composites one ink layer. op is the layer's opacity map at
// accumulator dimensions; ink channels are in [0, 1]; inkOpacity scales
// coverage globally. (dx, dy) is the layer's misregistration offset:
// pixel (x, y) reads the layer at (x-dx, y-dy), nearest pixel, with
// out-of-bounds reads as zero opacity.
func (a *Accumulator) AddLayer(op []float64, ink [3]float64, inkOpacity, dx, dy float64) {
	absorbR := 1 - ink[0]
	absorbG := 1 - ink[1]
	absorbB := 1 - ink[2]

	for y := 0; y < a.h; y++ {
		sy := int(math.Round(float64(y) - dy))
		rowOff := -1
		if sy >= 0 && sy < a.h {
			rowOff = sy * a.w
		}
		for x := 0; x < a.w; x++ {
			o := 0.0
			if rowOff >= 0 {
				sx := int(math.Round(float64(x) - dx))
				if sx >= 0 && sx < a.w {
					o = op[rowOff+sx]
				}
			}
			if o <= 0 {
				continue
			}
			o = clamp01(o) * inkOpacity

			p := y*a.w + x
			i := p * 3
			a.rgb[i+0] *= 1 - o*absorbR
			a.rgb[i+1] *= 1 - o*absorbG
			a.rgb[i+2] *= 1 - o*absorbB
			a.cov[p] = 1 - (1-a.cov[p])*(1-o)
		}
	}
}

// Finalize resolves the stack into dst according to the composition
// mode. paper is ignored in Transparent mode.
func (a *Accumulator) Finalize(dst []uint8, mode Mode, paper [3]float64) {
	if mode == Transparent {
		a.FinalizeTransparent(dst)
		return
	}
	a.FinalizePaper(dst, paper)
}

// FinalizePaper resolves the stack onto an opaque sheet: uncovered
// regions show the paper color, covered regions show the multiplied ink
// result unmodified (the decomposition basis is white regardless of the
// displayed paper). dst is packed RGBA at accumulator dimensions.
func (a *Accumulator) FinalizePaper(dst []uint8, paper [3]float64) {
	for p := 0; p < a.w*a.h; p++ {
		i := p * 3
		o := p * 4
		c := clamp01(a.cov[p])
		pw := 1 - c
		dst[o+0] = channelByte(a.rgb[i+0]*c + paper[0]*pw)
		dst[o+1] = channelByte(a.rgb[i+1]*c + paper[1]*pw)
		dst[o+2] = channelByte(a.rgb[i+2]*c + paper[2]*pw)
		dst[o+3] = 255
	}
}

// FinalizeTransparent resolves the stack to straight (non-premultiplied)
// color with coverage as alpha. The white-basis multiply result B
// satisfies B = c*alpha + (1-alpha) on a white backing, so the straight
// channel is c = 1 - (1-B)/alpha.
func (a *Accumulator) FinalizeTransparent(dst []uint8) {
	for p := 0; p < a.w*a.h; p++ {
		i := p * 3
		o := p * 4
		c := clamp01(a.cov[p])
		if c < covEps {
			dst[o+0] = 0
			dst[o+1] = 0
			dst[o+2] = 0
			dst[o+3] = 0
			continue
		}
		dst[o+0] = channelByte(1 - (1-a.rgb[i+0])/c)
		dst[o+1] = channelByte(1 - (1-a.rgb[i+1])/c)
		dst[o+2] = channelByte(1 - (1-a.rgb[i+2])/c)
		dst[o+3] = channelByte(c)
	}
}

// channelByte converts a [0, 1] channel to a defensively clamped byte.
func channelByte(v float64) uint8 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
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
