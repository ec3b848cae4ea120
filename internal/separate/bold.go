package separate

import "math"

const (
	// boldFloor: pixels whose strongest ink is below this carry no
	// visible ink and are left untouched.
	boldFloor = 0.01

	// suppressPower drives the competitive suppression phase. Squaring
	// the dominance ratio keeps the leading ink and fades competitors
	// superlinearly.
	suppressPower = 2.0

	// Logistic contrast curve.
	sigmoidGain = 6.0
	sigmoidMid  = 0.35

	// boldSnap: post-sigmoid values below this snap to exactly zero.
	boldSnap = 0.001
)

// Boldify sharpens color separation in place: per pixel, weaker inks are
// suppressed relative to the dominant one, then the survivors pass
// through an endpoint-normalized logistic curve. Mid-tones collapse
// toward hard 0/1 coverage per ink.
func Boldify(maps [][]float64) {
	if len(maps) == 0 {
		return
	}

	// Endpoint normalization: remap the logistic so 0 -> 0 and 1 -> 1.
	s0 := sigmoid(0)
	s1 := sigmoid(1)
	scale := 1 / (s1 - s0)

	for p := range maps[0] {
		maxD := 0.0
		for i := range maps {
			if maps[i][p] > maxD {
				maxD = maps[i][p]
			}
		}
		if maxD < boldFloor {
			continue
		}

		for i := range maps {
			d := maps[i][p]

			// Phase 1: competitive suppression.
			d *= math.Pow(d/maxD, suppressPower)

			// Phase 2: endpoint-normalized sigmoid contrast.
			d = (sigmoid(d) - s0) * scale

			if d < boldSnap {
				d = 0
			}
			maps[i][p] = clamp01(d)
		}
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-sigmoidGain*(x-sigmoidMid)))
}
