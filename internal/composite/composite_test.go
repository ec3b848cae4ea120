package composite

import (
	"math"
	"testing"
)

func uniform(w, h int, v float64) []float64 {
	m := make([]float64, w*h)
	for i := range m {
		m[i] = v
	}
	return m
}

func TestFinalizePaper_NoLayersIsPaperFill(t *testing.T) {
	const w, h = 4, 3
	acc := NewAccumulator(w, h)
	dst := make([]uint8, w*h*4)
	paper := [3]float64{0.95, 0.9, 0.8}
	acc.FinalizePaper(dst, paper)

	for p := 0; p < w*h; p++ {
		o := p * 4
		want := [4]uint8{242, 230, 204, 255}
		got := [4]uint8{dst[o], dst[o+1], dst[o+2], dst[o+3]}
		if got != want {
			t.Fatalf("pixel %d: %v, want paper fill %v", p, got, want)
		}
	}
}

func TestFinalizeTransparent_NoLayersIsFullyTransparent(t *testing.T) {
	const w, h = 4, 3
	acc := NewAccumulator(w, h)
	dst := make([]uint8, w*h*4)
	acc.FinalizeTransparent(dst)

	for i, v := range dst {
		if v != 0 {
			t.Fatalf("byte %d: %d, want fully transparent black", i, v)
		}
	}
}

func TestFinalizeTransparent_FullCoverageRecoversInkColor(t *testing.T) {
	// One layer at opacity 1 everywhere: alpha must saturate and the
	// straight color must round-trip to the ink's RGB.
	const w, h = 3, 3
	ink := [3]float64{0, 0.47, 0.75} // riso blue
	acc := NewAccumulator(w, h)
	acc.AddLayer(uniform(w, h, 1), ink, 1, 0, 0)

	dst := make([]uint8, w*h*4)
	acc.FinalizeTransparent(dst)

	for p := 0; p < w*h; p++ {
		o := p * 4
		if dst[o+3] != 255 {
			t.Fatalf("pixel %d: alpha %d, want 255", p, dst[o+3])
		}
		for c := 0; c < 3; c++ {
			want := ink[c] * 255
			if math.Abs(float64(dst[o+c])-want) > 1 {
				t.Fatalf("pixel %d channel %d: %d, want ~%v", p, c, dst[o+c], want)
			}
		}
	}
}

func TestAddLayer_SubtractiveTransmission(t *testing.T) {
	// Cyan at half coverage absorbs half the red light and leaves green
	// and blue untouched.
	acc := NewAccumulator(1, 1)
	acc.AddLayer([]float64{0.5}, [3]float64{0, 1, 1}, 1, 0, 0)

	want := [3]float64{0.5, 1, 1}
	for c := 0; c < 3; c++ {
		if math.Abs(acc.rgb[c]-want[c]) > 1e-12 {
			t.Errorf("channel %d: %v, want %v", c, acc.rgb[c], want[c])
		}
	}
	if math.Abs(acc.cov[0]-0.5) > 1e-12 {
		t.Errorf("coverage %v, want 0.5", acc.cov[0])
	}
}

func TestAddLayer_LayerColorOrderIndependent(t *testing.T) {
	// The transmission model multiplies per channel, so swapping layer
	// order cannot change the final color.
	const w, h = 8, 8
	opA := make([]float64, w*h)
	opB := make([]float64, w*h)
	for i := range opA {
		opA[i] = float64(i%5) / 4
		opB[i] = float64(i%3) / 2
	}
	cyan := [3]float64{0, 1, 1}
	pink := [3]float64{1, 0.28, 0.69}

	ab := NewAccumulator(w, h)
	ab.AddLayer(opA, cyan, 0.9, 0, 0)
	ab.AddLayer(opB, pink, 0.9, 0, 0)

	ba := NewAccumulator(w, h)
	ba.AddLayer(opB, pink, 0.9, 0, 0)
	ba.AddLayer(opA, cyan, 0.9, 0, 0)

	dstAB := make([]uint8, w*h*4)
	dstBA := make([]uint8, w*h*4)
	ab.FinalizePaper(dstAB, [3]float64{1, 1, 1})
	ba.FinalizePaper(dstBA, [3]float64{1, 1, 1})

	for i := range dstAB {
		if dstAB[i] != dstBA[i] {
			t.Fatalf("byte %d: order AB %d != order BA %d", i, dstAB[i], dstBA[i])
		}
	}
}

func TestAddLayer_MisregistrationShiftsLayer(t *testing.T) {
	// A single opaque pixel at (1, 1) offset by (+2, 0) lands at (3, 1);
	// the vacated position reads zero opacity.
	const w, h = 6, 4
	op := make([]float64, w*h)
	op[1*w+1] = 1
	ink := [3]float64{0, 0, 0}

	acc := NewAccumulator(w, h)
	acc.AddLayer(op, ink, 1, 2, 0)

	if acc.cov[1*w+3] != 1 {
		t.Errorf("shifted position coverage %v, want 1", acc.cov[1*w+3])
	}
	if acc.cov[1*w+1] != 0 {
		t.Errorf("original position coverage %v, want 0", acc.cov[1*w+1])
	}
}

func TestAddLayer_OffsetOutOfBoundsReadsZero(t *testing.T) {
	// Shifting the whole layer out of frame must not wrap around.
	const w, h = 4, 4
	acc := NewAccumulator(w, h)
	acc.AddLayer(uniform(w, h, 1), [3]float64{0, 0, 0}, 1, float64(w), 0)

	covered := 0.0
	for _, c := range acc.cov {
		covered += c
	}
	if covered != 0 {
		t.Errorf("total coverage %v after full out-of-frame shift, want 0", covered)
	}
}

func TestAddLayer_InkOpacityScalesCoverage(t *testing.T) {
	acc := NewAccumulator(1, 1)
	acc.AddLayer([]float64{1}, [3]float64{0, 0, 0}, 0.4, 0, 0)

	if math.Abs(acc.cov[0]-0.4) > 1e-12 {
		t.Errorf("coverage %v, want 0.4", acc.cov[0])
	}
	if math.Abs(acc.rgb[0]-0.6) > 1e-12 {
		t.Errorf("transmission %v, want 0.6", acc.rgb[0])
	}
}

func TestAddLayer_CoverageUnion(t *testing.T) {
	acc := NewAccumulator(1, 1)
	acc.AddLayer([]float64{0.5}, [3]float64{0, 0, 0}, 1, 0, 0)
	acc.AddLayer([]float64{0.5}, [3]float64{1, 1, 0}, 1, 0, 0)

	want := 1 - 0.5*0.5
	if math.Abs(acc.cov[0]-want) > 1e-12 {
		t.Errorf("coverage %v, want union %v", acc.cov[0], want)
	}
}

func TestChannelByte_Clamps(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{1.5, 255},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := channelByte(tt.in); got != tt.want {
			t.Errorf("channelByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFinalize_ModeDispatch(t *testing.T) {
	const w, h = 2, 2
	paper := [3]float64{1, 1, 1}

	acc := NewAccumulator(w, h)
	viaMode := make([]uint8, w*h*4)
	direct := make([]uint8, w*h*4)

	acc.Finalize(viaMode, Transparent, paper)
	acc.FinalizeTransparent(direct)
	for i := range viaMode {
		if viaMode[i] != direct[i] {
			t.Fatalf("Transparent dispatch differs at byte %d", i)
		}
	}

	acc.Finalize(viaMode, Paper, paper)
	acc.FinalizePaper(direct, paper)
	for i := range viaMode {
		if viaMode[i] != direct[i] {
			t.Fatalf("Paper dispatch differs at byte %d", i)
		}
	}
}

func TestMode_String(t *testing.T) {
	if Paper.String() != "Paper" || Transparent.String() != "Transparent" || Mode(7).String() != "Unknown" {
		t.Error("unexpected Mode string values")
	}
}
