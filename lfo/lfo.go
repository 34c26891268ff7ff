// package lfo implements a sample-accurate, anti-aliased low frequency
// oscillator. A channel is driven by calling Step once per tick and reading
// Sample; everything on that path is integer-only and allocation-free.
package lfo

import (
	"math"

	"github.com/pcmg/quadlfo/fix"
	"github.com/pcmg/quadlfo/interp"
	"github.com/pcmg/quadlfo/wavetable"
)

// Shape selects the waveform a channel produces.
type Shape uint8

const (
	Sine Shape = iota
	Triangle
	Saw
	Ramp
	Trapezoid
)

func (s Shape) String() string {
	switch s {
	case Sine:
		return "sine"
	case Triangle:
		return "triangle"
	case Saw:
		return "saw"
	case Ramp:
		return "ramp"
	case Trapezoid:
		return "trapezoid"
	}
	return "unknown"
}

// shapeSpec binds a shape to its band tables and its exact low-frequency
// form. Saw reuses the ramp pair and negates the result, halving the table
// memory for the two shapes.
type shapeSpec struct {
	bands  *wavetable.Bands
	at     func(uint32) int16
	negate bool
}

var shapes = [...]shapeSpec{
	Sine:      {},
	Triangle:  {bands: &wavetable.Tri, at: wavetable.TriangleAt},
	Saw:       {bands: &wavetable.Ramp, at: wavetable.RampAt, negate: true},
	Ramp:      {bands: &wavetable.Ramp, at: wavetable.RampAt},
	Trapezoid: {bands: &wavetable.Trap, at: wavetable.TrapezoidAt},
}

// Lfo is one oscillator channel. The zero value is not ready to use: call
// Init first. Channels share the process-wide wavetables and nothing else, so
// any number of them can run side by side.
//
// Parameter setters may be called from a control loop between any two ticks;
// a torn update across several parameters self-corrects on the next tick.
// Concurrent access to a single channel is not supported.
type Lfo struct {
	phase          uint32
	phaseIncrement uint32
	dividerCounter uint32
	divider        uint32
	dividedPhase   uint32
	initialPhase   uint32
	level          fix.U016
	shape          Shape
	pitch          int16
	dividedPitch   int16
}

// Init resets the channel: full level, divider 1, zero phase, sine shape and
// the default increment.
func (l *Lfo) Init() {
	l.phase = 0
	l.dividedPhase = 0
	l.initialPhase = 0
	l.phaseIncrement = math.MaxUint32 >> 8
	l.divider = 1
	l.dividerCounter = 0
	l.level = fix.MaxU016
	l.shape = Sine
	l.pitch = 0
	l.dividedPitch = 0
}

// Step advances the channel by exactly one tick. The accumulator wraps modulo
// 2^32; the wrap carries into the divider counter, and the divided phase is
// rebuilt from both so that sub-cycle continuity survives divider changes.
func (l *Lfo) Step() {
	l.phase += l.phaseIncrement
	if l.phase < l.phaseIncrement {
		l.dividerCounter = (l.dividerCounter + 1) % l.divider
	}
	l.dividedPhase = l.phase/l.divider + math.MaxUint32/l.divider*l.dividerCounter
}

// SetPitch updates the pitch in semitone-scaled units (128 per semitone,
// pitch 0 is a 1 Hz fundamental) and recomputes the phase increment. Any
// int16 is legal; extreme values shift the increment into saturation or
// zero, which only degrades to the usual wraparound behaviour.
func (l *Lfo) SetPitch(pitch int16) {
	l.pitch = pitch
	l.phaseIncrement = PhaseIncrement(pitch)
	l.deriveDividedPitch()
}

// SetShape selects the waveform.
func (l *Lfo) SetShape(s Shape) {
	l.shape = s
}

// SetLevel sets the output amplitude: 0 is silence, fix.MaxU016 full scale.
func (l *Lfo) SetLevel(level fix.U016) {
	l.level = level
}

// SetDivider sets the number of raw cycles per divided cycle. The divider
// must be at least 1; that is a caller contract, not a checked error.
func (l *Lfo) SetDivider(divider int) {
	l.divider = uint32(divider)
	l.dividerCounter %= l.divider
	l.deriveDividedPitch()
}

// SetInitialPhase sets the static phase offset applied before waveform
// lookup, for quadrature and similar multi-channel arrangements.
func (l *Lfo) SetInitialPhase(phase uint32) {
	l.initialPhase = phase
}

// SetDividedPitch overrides the effective pitch used for band selection.
// SetPitch and SetDivider derive it automatically; callers that apply their
// own rate modifiers can supply the resulting pitch here instead.
func (l *Lfo) SetDividedPitch(pitch int16) {
	l.dividedPitch = pitch
}

// deriveDividedPitch drops the pitch by one octave per doubling of the
// divider. This runs at control rate only, so a float log is fine here.
func (l *Lfo) deriveDividedPitch() {
	shift := int32(math.Round(wavetable.Octave * math.Log2(float64(l.divider))))
	p := int32(l.pitch) - shift
	l.dividedPitch = int16(min(max(p, math.MinInt16), math.MaxInt16))
}

// Phase returns the raw accumulator.
func (l *Lfo) Phase() uint32 { return l.phase }

// DividedPhase returns the position within the divided cycle.
func (l *Lfo) DividedPhase() uint32 { return l.dividedPhase }

// Sample computes the current output. Band selection follows dividedPitch:
// above the 100 Hz band pitch only the most heavily band-limited table is
// used, between bands the two neighbours are crossfaded, and below the 1 Hz
// band pitch the exact closed form runs unmodified.
func (l *Lfo) Sample() fix.S115 {
	phase := l.initialPhase + l.dividedPhase
	spec := shapes[l.shape]

	var x int16
	if spec.bands == nil {
		x = interp.Lerp1022(wavetable.Sine, phase)
	} else {
		x = l.bandSample(spec, phase)
	}
	out := fix.S115(x).Scale(l.level)
	if spec.negate {
		// 16 bit negation, wrapping at full negative scale like the
		// rest of the accumulator arithmetic.
		out = -out
	}
	return out
}

func (l *Lfo) bandSample(spec shapeSpec, phase uint32) int16 {
	pitch := l.dividedPitch
	switch {
	case pitch > wavetable.Pitch100Hz:
		return interp.Lerp1022(spec.bands.B100, phase)
	case pitch > wavetable.Pitch10Hz:
		balance := uint16(int32(pitch-wavetable.Pitch10Hz) * 65535 /
			(wavetable.Pitch100Hz - wavetable.Pitch10Hz))
		return interp.Crossfade1022(spec.bands.B10, spec.bands.B100, phase, balance)
	case pitch > wavetable.Pitch1Hz:
		balance := uint16(int32(pitch-wavetable.Pitch1Hz) * 65535 /
			(wavetable.Pitch10Hz - wavetable.Pitch1Hz))
		return interp.Blend(
			int32(spec.at(phase)),
			int32(interp.Lerp1022(spec.bands.B10, phase)),
			balance)
	default:
		return spec.at(phase)
	}
}

// PhaseIncrement converts a pitch to the phase added per tick: it folds the
// pitch into one octave, interpolates the increment table across that octave
// and applies the fold count as shifts, one octave being exactly one
// doubling.
func PhaseIncrement(pitch int16) uint32 {
	numShifts := 0
	for pitch < 0 {
		pitch += wavetable.Octave
		numShifts--
	}
	for pitch >= wavetable.Octave {
		pitch -= wavetable.Octave
		numShifts++
	}
	a := wavetable.Increments[pitch>>4]
	b := wavetable.Increments[pitch>>4+1]
	inc := a + (b-a)*uint32(pitch&0xf)>>4
	if numShifts >= 0 {
		return inc << numShifts
	}
	return inc >> -numShifts
}
