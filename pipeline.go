package riso

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/gogpu/riso/internal/composite"
	"github.com/gogpu/riso/internal/halftone"
	"github.com/gogpu/riso/internal/noise"
	"github.com/gogpu/riso/internal/separate"
)

// ErrNoSource is returned when Render receives a nil or empty pixmap.
var ErrNoSource = errors.New("riso: nil or empty source pixmap")

// seedMix decorrelates the two PCG seed words derived from Options.Seed.
const seedMix = 0x9e3779b97f4a7c15

// Render runs the full print simulation on src and returns a new pixmap
// of identical dimensions. src is not modified.
//
// The pipeline is a pure function of (src, opts): it holds no state
// between calls, performs no I/O, and draws all randomness
// (misregistration, grain) from a generator seeded by opts.Seed, so two
// runs with equal inputs produce byte-identical output. Independent
// concurrent calls need no locking.
//
// Stages: decompose the source into per-ink density maps, optionally
// boldify the separation, screen each map into a halftone opacity map,
// apply scuff and grain noise, composite the layers subtractively, and
// resolve against paper or a transparent background.
func Render(src *Pixmap, opts Options) (*Pixmap, error) {
	if src == nil || src.width <= 0 || src.height <= 0 {
		return nil, ErrNoSource
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := Logger()
	start := time.Now()
	w, h := src.width, src.height

	pix := src.data
	if opts.InvertInput {
		pix = invertChannels(pix)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^seedMix))
	out := NewPixmap(w, h)
	acc := composite.NewAccumulator(w, h)

	if len(opts.Inks) > 0 {
		colors := make([][3]float64, len(opts.Inks))
		for i, ink := range opts.Inks {
			colors[i] = [3]float64{ink.Color.R, ink.Color.G, ink.Color.B}
		}
		basis := separate.NewBasis(colors, [3]float64{1, 1, 1})
		for i, ink := range opts.Inks {
			if basis.NearBasis(i) {
				log.Warn("riso: near-basis ink, using luminance fallback",
					"ink", ink.Name, "index", i)
			}
		}

		maps := separate.Decompose(pix, w, h, basis)
		log.Debug("riso: decomposed", "inks", len(maps),
			"pixels", w*h, "elapsed", time.Since(start))

		if opts.Separation == SeparationBold {
			separate.Boldify(maps)
		}

		mode := halftone.AM
		if opts.Halftone == HalftoneFM {
			mode = halftone.FM
		}

		for i, ink := range opts.Inks {
			op := halftone.Screen(maps[i], w, h, halftone.Options{
				DotSize:      opts.DotSize,
				Angle:        ink.ScreenAngle(i),
				DensityScale: opts.DensityScale,
				Mode:         mode,
			})
			if opts.ScuffLevel > 0 {
				noise.Scuff(op, w, h, uint32(i)+1, opts.DotSize, opts.ScuffLevel)
			}
			if opts.Grain > 0 {
				noise.Grain(op, opts.Grain, rng)
			}

			// One plate offset per layer per run.
			var dx, dy float64
			if opts.Misregistration > 0 {
				dx = (rng.Float64()*2 - 1) * opts.Misregistration
				dy = (rng.Float64()*2 - 1) * opts.Misregistration
			}

			acc.AddLayer(op, [3]float64{ink.Color.R, ink.Color.G, ink.Color.B},
				opts.InkOpacity, dx, dy)
		}
	}

	mode := composite.Paper
	if opts.Transparent {
		mode = composite.Transparent
	}
	paper := opts.Paper
	if paper == (RGBA{}) {
		paper = PaperWhite
	}
	acc.Finalize(out.data, mode, [3]float64{paper.R, paper.G, paper.B})

	log.Debug("riso: rendered", "width", w, "height", h,
		"inks", len(opts.Inks), "halftone", opts.Halftone.String(),
		"elapsed", time.Since(start))
	return out, nil
}

// invertChannels returns a copy of pix with RGB channels inverted and
// alpha preserved.
func invertChannels(pix []uint8) []uint8 {
	out := make([]uint8, len(pix))
	for i := 0; i < len(pix); i += 4 {
		out[i+0] = 255 - pix[i+0]
		out[i+1] = 255 - pix[i+1]
		out[i+2] = 255 - pix[i+2]
		out[i+3] = pix[i+3]
	}
	return out
}
