package riso

import "fmt"

// Ink is one spot color in the simulated print run. Each ink gets its own
// density map and halftone screen.
type Ink struct {
	// Name is for display and lookup only; it does not affect rendering.
	Name string

	// Color is the ink's body color at full coverage on white paper.
	Color RGBA

	// Angle optionally fixes the halftone screen angle in degrees.
	// When nil, the angle comes from the default rotation table,
	// indexed by the ink's position in the run.
	Angle *float64
}

// defaultAngles is the canonical screen rotation table. Inks without an
// explicit angle cycle through it by position, keeping neighboring layers
// rotated apart to minimize moiré.
var defaultAngles = [...]float64{15, 75, 0, 45, 105, 30, 90, 60}

// ScreenAngle returns the halftone screen angle in degrees for an ink at
// position i in the run: the explicit Angle when set, otherwise the
// default rotation table entry for that position.
func (k Ink) ScreenAngle(i int) float64 {
	if k.Angle != nil {
		return *k.Angle
	}
	if i < 0 {
		i = 0
	}
	return defaultAngles[i%len(defaultAngles)]
}

// WithAngle returns a copy of the ink with a fixed screen angle.
func (k Ink) WithAngle(degrees float64) Ink {
	k.Angle = &degrees
	return k
}

// InkHex creates a named ink from a hex color string.
func InkHex(name, hex string) (Ink, error) {
	c, err := Hex(hex)
	if err != nil {
		return Ink{}, fmt.Errorf("riso: ink %q: %w", name, err)
	}
	return Ink{Name: name, Color: c}, nil
}

// Stock ink colors, matching the classic risograph soy-ink palette.
var (
	InkBlack     = Ink{Name: "black", Color: MustHex("#000000")}
	InkBurgundy  = Ink{Name: "burgundy", Color: MustHex("#914e72")}
	InkBlue      = Ink{Name: "blue", Color: MustHex("#0078bf")}
	InkGreen     = Ink{Name: "green", Color: MustHex("#00a95c")}
	InkMedBlue   = Ink{Name: "medium blue", Color: MustHex("#3255a4")}
	InkBrightRed = Ink{Name: "bright red", Color: MustHex("#f15060")}
	InkRisoRed   = Ink{Name: "red", Color: MustHex("#ff665e")}
	InkOrange    = Ink{Name: "orange", Color: MustHex("#ff6c2f")}
	InkYellow    = Ink{Name: "yellow", Color: MustHex("#ffe800")}
	InkFluoPink  = Ink{Name: "fluorescent pink", Color: MustHex("#ff48b0")}
	InkTeal      = Ink{Name: "teal", Color: MustHex("#00838a")}
	InkPurple    = Ink{Name: "purple", Color: MustHex("#765ba7")}
)

// stockInks indexes the stock palette by name.
var stockInks = map[string]Ink{
	InkBlack.Name:     InkBlack,
	InkBurgundy.Name:  InkBurgundy,
	InkBlue.Name:      InkBlue,
	InkGreen.Name:     InkGreen,
	InkMedBlue.Name:   InkMedBlue,
	InkBrightRed.Name: InkBrightRed,
	InkRisoRed.Name:   InkRisoRed,
	InkOrange.Name:    InkOrange,
	InkYellow.Name:    InkYellow,
	InkFluoPink.Name:  InkFluoPink,
	InkTeal.Name:      InkTeal,
	InkPurple.Name:    InkPurple,
}

// StockInk looks up an ink from the stock palette by name.
func StockInk(name string) (Ink, bool) {
	k, ok := stockInks[name]
	return k, ok
}
