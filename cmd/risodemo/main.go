// Command risodemo runs the riso print simulation on a PNG file.
//
// Example:
//
//	risodemo -in photo.png -out print.png -inks "fluorescent pink,teal" -dot 5 -misreg 2
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/riso"
)

func main() {
	var (
		in          = flag.String("in", "", "input PNG path (required)")
		out         = flag.String("out", "riso.png", "output PNG path")
		inks        = flag.String("inks", "black", "comma-separated ink list: stock names or hex colors")
		dot         = flag.Float64("dot", 4, "halftone dot size in pixels")
		mode        = flag.String("mode", "am", "halftone mode: am or fm")
		bold        = flag.Bool("bold", false, "use bold (high-contrast) separation")
		density     = flag.Float64("density", 1, "density scale factor [0.5, 2]")
		opacity     = flag.Float64("opacity", 1, "ink opacity [0, 1]")
		misreg      = flag.Float64("misreg", 0, "max plate misregistration in pixels")
		scuff       = flag.Float64("scuff", 0, "scuff noise level [0, 0.5]")
		grain       = flag.Float64("grain", 0, "grain jitter [0, 1]")
		paper       = flag.String("paper", "white", "paper: white, natural, kraft, gray, or hex")
		transparent = flag.Bool("transparent", false, "render on a transparent background")
		invert      = flag.Bool("invert", false, "invert the input before separation")
		seed        = flag.Uint64("seed", 0, "seed for misregistration and grain")
		scale       = flag.Float64("scale", 1, "pre-resize factor applied to the input")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	riso.SetLogger(logger)

	src, err := riso.LoadPNG(*in)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *in, err)
	}
	if *scale != 1 {
		src = src.Resize(int(float64(src.Width())**scale), int(float64(src.Height())**scale))
	}

	opts := riso.DefaultOptions()
	opts.DotSize = *dot
	opts.DensityScale = *density
	opts.InkOpacity = *opacity
	opts.Misregistration = *misreg
	opts.ScuffLevel = *scuff
	opts.Grain = *grain
	opts.Transparent = *transparent
	opts.InvertInput = *invert
	opts.Seed = *seed

	if strings.EqualFold(*mode, "fm") {
		opts.Halftone = riso.HalftoneFM
	}
	if *bold {
		opts.Separation = riso.SeparationBold
	}

	opts.Inks, err = parseInks(*inks)
	if err != nil {
		log.Fatalf("Failed to parse inks: %v", err)
	}
	opts.Paper, err = parsePaper(*paper)
	if err != nil {
		log.Fatalf("Failed to parse paper: %v", err)
	}

	result, err := riso.Render(src, opts)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	if err := result.SavePNG(*out); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	logger.Info("rendered", "out", *out,
		"width", result.Width(), "height", result.Height(),
		"inks", len(opts.Inks))
}

// parseInks resolves a comma-separated list of stock names or hex colors.
func parseInks(s string) ([]riso.Ink, error) {
	var run []riso.Ink
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if k, ok := riso.StockInk(strings.ToLower(name)); ok {
			run = append(run, k)
			continue
		}
		k, err := riso.InkHex(name, name)
		if err != nil {
			return nil, fmt.Errorf("%q is neither a stock ink nor a hex color", name)
		}
		run = append(run, k)
	}
	return run, nil
}

// parsePaper resolves a named stock paper or a hex color.
func parsePaper(s string) (riso.RGBA, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return riso.PaperWhite, nil
	case "natural":
		return riso.PaperNatural, nil
	case "kraft":
		return riso.PaperKraft, nil
	case "gray":
		return riso.PaperGray, nil
	}
	return riso.Hex(s)
}
