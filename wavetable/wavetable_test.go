package wavetable

import (
	"math"
	"testing"

	"github.com/ktye/fft"
)

func TestTableShapes(t *testing.T) {
	tables := map[string][]int16{
		"Sine":      Sine,
		"Tri.B10":   Tri.B10,
		"Tri.B100":  Tri.B100,
		"Ramp.B10":  Ramp.B10,
		"Ramp.B100": Ramp.B100,
		"Trap.B10":  Trap.B10,
		"Trap.B100": Trap.B100,
	}
	for name, tab := range tables {
		if len(tab) != Size+1 {
			t.Errorf("%s: len = %d, want %d", name, len(tab), Size+1)
		}
		if tab[Size] != tab[0] {
			t.Errorf("%s: guard entry %d != first entry %d", name, tab[Size], tab[0])
		}
	}
}

func TestSine(t *testing.T) {
	for _, c := range []struct {
		i    int
		want int16
	}{
		{0, 0},
		{Size / 4, 32767},
		{Size / 2, 0},
		{3 * Size / 4, -32767},
	} {
		if got := Sine[c.i]; got != c.want {
			t.Errorf("Sine[%d] = %d, want %d", c.i, got, c.want)
		}
	}
	// odd symmetry about the midpoint
	for i := 1; i < Size/2; i++ {
		if Sine[i] != -Sine[Size-i] {
			t.Errorf("Sine[%d] = %d, want -Sine[%d] = %d", i, Sine[i], Size-i, -Sine[Size-i])
		}
	}
}

func TestBandLimited(t *testing.T) {
	f, err := fft.New(Size)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		name      string
		tab       []int16
		harmonics int
	}{
		{"Tri.B10", Tri.B10, 128},
		{"Tri.B100", Tri.B100, 16},
		{"Ramp.B10", Ramp.B10, 128},
		{"Ramp.B100", Ramp.B100, 16},
		{"Trap.B10", Trap.B10, 128},
		{"Trap.B100", Trap.B100, 16},
	} {
		x := make([]complex128, Size)
		for i := range x {
			x[i] = complex(float64(c.tab[i]), 0)
		}
		x = f.Transform(x)
		for h := c.harmonics + 1; h <= Size/2; h++ {
			// Rounding to int16 leaves a little wideband noise; anything
			// above a couple of steps would be an unfiltered harmonic.
			if mag := magnitude(x[h]); mag > 2*Size {
				t.Errorf("%s: harmonic %d has magnitude %f, want ~0", c.name, h, mag)
			}
		}
	}
}

func magnitude(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func TestIncrements(t *testing.T) {
	if len(Increments) != 97 {
		t.Fatalf("len(Increments) = %d, want 97", len(Increments))
	}
	// 1 Hz at the bottom of the octave.
	if want := uint32(math.Round(float64(1<<32) / SampleRate)); Increments[0] != want {
		t.Errorf("Increments[0] = %d, want %d", Increments[0], want)
	}
	// strictly rising across the octave, doubling at the guard
	for i := 1; i < len(Increments); i++ {
		if Increments[i] <= Increments[i-1] {
			t.Errorf("Increments[%d] = %d not above Increments[%d] = %d",
				i, Increments[i], i-1, Increments[i-1])
		}
	}
	if got, want := Increments[96], 2*Increments[0]; got < want-1 || got > want+1 {
		t.Errorf("Increments[96] = %d, want ~%d (one octave up)", got, want)
	}
}

func TestExactShapes(t *testing.T) {
	for _, c := range []struct {
		phase uint32
		tri   int16
		ramp  int16
	}{
		{0, -32768, -32678},
		{1 << 31, 32767, 90},
		{0xffffffff, -32768, 32857 - 65536},
	} {
		if got := TriangleAt(c.phase); got != c.tri {
			t.Errorf("TriangleAt(%#x) = %d, want %d", c.phase, got, c.tri)
		}
		if got := RampAt(c.phase); got != c.ramp {
			t.Errorf("RampAt(%#x) = %d, want %d", c.phase, got, c.ramp)
		}
	}
	// trapezoid clamps the doubled triangle
	if got := TrapezoidAt(1 << 31); got != 32767 {
		t.Errorf("TrapezoidAt(1<<31) = %d, want 32767", got)
	}
	if got := TrapezoidAt(0); got != -32768 {
		t.Errorf("TrapezoidAt(0) = %d, want -32768", got)
	}
	if got := TrapezoidAt(1 << 29); got != 2*TriangleAt(1<<29) {
		t.Errorf("TrapezoidAt(1<<29) = %d, want %d", got, 2*TriangleAt(1<<29))
	}
}
