// package wavetable holds the read-only tables shared by every oscillator
// channel: the band-limited waveforms and the pitch to phase-increment lookup.
// Everything here is built once at startup and never mutated afterwards.
package wavetable

import (
	"math"

	"github.com/ktye/fft"
)

const (
	// SampleRate is the tick rate the increment table is tuned for.
	SampleRate = 48000
	// Size is the number of points in a wavetable, excluding the guard
	// entry that makes interpolation wrap cleanly.
	Size = 1024

	// Octave is the span of one octave in pitch units: 12 semitones of 128
	// units each.
	Octave = 1536

	// Pitch constants for the three anti-aliasing bands. Pitch 0 is a 1 Hz
	// fundamental; each Octave above it doubles the frequency.
	Pitch1Hz   = 0
	Pitch10Hz  = 5102
	Pitch100Hz = 10205

	// Harmonic caps for the 10 Hz and 100 Hz band tables.
	harmonics10  = 128
	harmonics100 = 16
)

// TriangleAt is the exact closed-form triangle, full scale, one cycle per 2^32
// phase units. The upper half relies on 16 bit truncation to wrap -32769 back
// to 32767 at the apex.
func TriangleAt(phase uint32) int16 {
	if phase < 1<<31 {
		return int16(-32768 + int32(phase>>15))
	}
	return int16(32767 - int32(phase>>15))
}

// RampAt is the exact closed-form rising ramp. The -32678 offset is part of
// the oscillator's reference output, not a rounding of -32768.
func RampAt(phase uint32) int16 {
	return int16(-32678 + int32(phase>>16))
}

// TrapezoidAt is the exact closed-form trapezoid: the triangle doubled and
// clamped to the 16 bit range.
func TrapezoidAt(phase uint32) int16 {
	t := 2 * int32(TriangleAt(phase))
	return int16(min(max(t, math.MinInt16), math.MaxInt16))
}

// Bands holds the band-limited tables for one shape. The 1 Hz band has no
// table: below Pitch1Hz the exact closed form is clean enough.
type Bands struct {
	B10, B100 []int16
}

var (
	// Sine is the single full-bandwidth sine table.
	Sine = makeSine()

	// Tri, Ramp and Trap are the band tables for the three shapes that
	// need anti-aliasing. Saw has none: it is the negated ramp.
	Tri  = makeBands(TriangleAt)
	Ramp = makeBands(RampAt)
	Trap = makeBands(TrapezoidAt)

	// Increments maps the low bits of a folded pitch to a phase increment
	// per tick at SampleRate, spanning exactly one octave upward from 1 Hz
	// in 96 steps of 16 pitch units, plus a guard entry.
	Increments = makeIncrements()
)

func makeSine() []int16 {
	t := make([]int16, Size+1)
	for i := 0; i < Size; i++ {
		f := math.Sin(2 * math.Pi * float64(i) / Size)
		t[i] = int16(math.Round(32767 * f))
	}
	t[Size] = t[0]
	return t
}

func makeBands(shape func(uint32) int16) Bands {
	return Bands{
		B10:  bandLimit(shape, harmonics10),
		B100: bandLimit(shape, harmonics100),
	}
}

// bandLimit renders the exact shape at Size points, removes every harmonic
// above the cap in the frequency domain and resynthesises the table.
func bandLimit(shape func(uint32) int16, harmonics int) []int16 {
	f, err := fft.New(Size)
	if err != nil {
		panic(err)
	}
	x := make([]complex128, Size)
	for i := range x {
		x[i] = complex(float64(shape(uint32(i)<<22)), 0)
	}
	x = f.Transform(x)
	// Bin 0 is DC and is kept so the shape's offset survives; harmonic h
	// lives in bins h and Size-h.
	for i := harmonics + 1; i <= Size-harmonics-1; i++ {
		x[i] = 0
	}
	x = f.Inverse(x)

	t := make([]int16, Size+1)
	for i := 0; i < Size; i++ {
		v := math.Round(real(x[i]))
		t[i] = int16(min(max(v, math.MinInt16), math.MaxInt16))
	}
	t[Size] = t[0]
	return t
}

func makeIncrements() []uint32 {
	base := float64(1<<32) / SampleRate // 1 Hz in phase units per tick
	t := make([]uint32, 97)
	for i := range t {
		t[i] = uint32(math.Round(base * math.Exp2(float64(i)/96)))
	}
	return t
}
