package riso

// HalftoneMode selects the dot screen algorithm.
type HalftoneMode int

const (
	// HalftoneAM is amplitude-modulated screening: a regular dot grid
	// where dot size encodes density.
	HalftoneAM HalftoneMode = iota

	// HalftoneFM is frequency-modulated (stochastic) screening:
	// fixed-size dots whose local presence probability encodes density.
	HalftoneFM
)

// String returns the halftone mode name.
func (m HalftoneMode) String() string {
	switch m {
	case HalftoneAM:
		return "AM"
	case HalftoneFM:
		return "FM"
	default:
		return "Unknown"
	}
}

// SeparationMode selects how ink densities relate after decomposition.
type SeparationMode int

const (
	// SeparationNatural keeps the proportional least-squares densities.
	SeparationNatural SeparationMode = iota

	// SeparationBold pushes each pixel toward its dominant ink and
	// hard contrast, for a graphic, high-contrast look.
	SeparationBold
)

// String returns the separation mode name.
func (m SeparationMode) String() string {
	switch m {
	case SeparationNatural:
		return "Natural"
	case SeparationBold:
		return "Bold"
	default:
		return "Unknown"
	}
}
