package riso

import "fmt"

// Options configures one Render invocation.
//
// The zero value is not directly usable; start from DefaultOptions and
// override the fields you need:
//
//	opts := riso.DefaultOptions()
//	opts.Inks = []riso.Ink{riso.InkFluoPink, riso.InkTeal}
//	opts.Halftone = riso.HalftoneFM
type Options struct {
	// Inks is the print run, in layer order. Order affects default screen
	// angles and the misregistration draw sequence, not decomposed colors.
	// An empty run renders bare paper (or full transparency).
	Inks []Ink

	// DotSize is the halftone dot pitch in pixels. Must be > 0.
	DotSize float64

	// Halftone selects AM or FM screening.
	Halftone HalftoneMode

	// Separation selects natural or bold color separation.
	Separation SeparationMode

	// DensityScale multiplies decomposed densities before halftoning.
	// Range [0.5, 2].
	DensityScale float64

	// InkOpacity scales every layer's coverage at composite time.
	// Range [0, 1].
	InkOpacity float64

	// Misregistration is the maximum per-layer plate offset in pixels.
	// Each layer draws one uniform offset in [-m, m] per axis. Must be >= 0.
	Misregistration float64

	// ScuffLevel controls the deterministic ink-starvation noise.
	// Range [0, 0.5]; 0 disables it.
	ScuffLevel float64

	// Grain adds uniform per-pixel coverage jitter. Range [0, 1]; 0
	// disables it.
	Grain float64

	// Paper is the sheet color shown through uncovered regions.
	// Ignored when Transparent is set.
	Paper RGBA

	// Transparent renders onto a transparent background instead of paper:
	// output alpha is the cumulative ink coverage.
	Transparent bool

	// InvertInput inverts the source channels before decomposition.
	InvertInput bool

	// Seed feeds the pipeline's pseudo-random source (misregistration and
	// grain). Runs with equal inputs and equal seeds are byte-identical.
	Seed uint64
}

// DefaultOptions returns a single-black-ink AM setup on white paper.
func DefaultOptions() Options {
	return Options{
		Inks:         []Ink{InkBlack},
		DotSize:      4,
		Halftone:     HalftoneAM,
		Separation:   SeparationNatural,
		DensityScale: 1,
		InkOpacity:   1,
		Paper:        PaperWhite,
	}
}

// Validate checks option ranges. Render calls it before doing any work.
func (o Options) Validate() error {
	if o.DotSize <= 0 {
		return fmt.Errorf("riso: dot size must be > 0, got %v", o.DotSize)
	}
	if o.Halftone != HalftoneAM && o.Halftone != HalftoneFM {
		return fmt.Errorf("riso: unknown halftone mode %d", int(o.Halftone))
	}
	if o.Separation != SeparationNatural && o.Separation != SeparationBold {
		return fmt.Errorf("riso: unknown separation mode %d", int(o.Separation))
	}
	if o.DensityScale < 0.5 || o.DensityScale > 2 {
		return fmt.Errorf("riso: density scale must be in [0.5, 2], got %v", o.DensityScale)
	}
	if o.InkOpacity < 0 || o.InkOpacity > 1 {
		return fmt.Errorf("riso: ink opacity must be in [0, 1], got %v", o.InkOpacity)
	}
	if o.Misregistration < 0 {
		return fmt.Errorf("riso: misregistration must be >= 0, got %v", o.Misregistration)
	}
	if o.ScuffLevel < 0 || o.ScuffLevel > 0.5 {
		return fmt.Errorf("riso: scuff level must be in [0, 0.5], got %v", o.ScuffLevel)
	}
	if o.Grain < 0 || o.Grain > 1 {
		return fmt.Errorf("riso: grain must be in [0, 1], got %v", o.Grain)
	}
	return nil
}
