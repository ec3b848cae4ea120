// Package riso simulates multi-color spot-ink print processes
// (risograph and stencil printing) on raster images.
//
// # Overview
//
// riso decomposes a full-color image into a small set of non-negative
// ink density layers, renders each layer as a halftone dot pattern, and
// composites the layers with simulated physical print artifacts: plate
// misregistration, ink scuffing, grain, paper color, and transparency
// extraction.
//
// # Quick Start
//
//	import "github.com/gogpu/riso"
//
//	src, _ := riso.LoadPNG("input.png")
//
//	opts := riso.DefaultOptions()
//	opts.Inks = []riso.Ink{riso.InkFluoPink, riso.InkTeal}
//	opts.DotSize = 5
//	opts.Misregistration = 2
//
//	out, err := riso.Render(src, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out.SavePNG("output.png")
//
// # Pipeline
//
// Render is a pure function: pixel buffer in, pixel buffer out. The
// stages, in order:
//   - Decomposer: coordinate-descent non-negative least squares turns
//     the image into one density map per ink (internal/separate).
//   - Bold transform: optional winner-take-most contrast sharpening.
//   - Halftone engine: AM (dot size varies) or FM (dot density varies)
//     screening at each ink's screen angle (internal/halftone).
//   - Scuff and grain noise: deterministic value noise plus seeded
//     jitter on each layer's opacity (internal/noise).
//   - Compositor: subtractive transmission blending, then paper or
//     transparent-background resolution (internal/composite).
//
// # Determinism
//
// The only randomness is misregistration and grain jitter, both drawn
// from a generator seeded by Options.Seed. Equal inputs and seeds give
// byte-identical output, which also makes the pipeline safe to run
// concurrently from independent goroutines.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right, Y increases down
//   - Screen angles in degrees, effective mod 180
package riso
