// package fix provides the fixed-point sample types used throughout quadlfo.
package fix

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// S115 is a signed (two's complement) 16 bit number with 1 integer bit and 15
// fractional bits capable of representing (roughly) the range -1 to 1. It is
// the sample format of every stream in this module.
type S115 int16

const (
	// MaxS115 is the highest positive S115: 0.999969482421875.
	MaxS115 S115 = 0x7FFF
	// MinS115 is the lowest negative S115: -1.
	MinS115 S115 = -0x8000
)

func (s S115) String() string {
	return fmt.Sprintf("%.6f", Float[float64](s))
}

// SAdd is a saturating +, clipping to the minimum or maximum value.
func (a S115) SAdd(b S115) S115 {
	return S115(min(max(int32(a)+int32(b), int32(MinS115)), int32(MaxS115)))
}

// SMul multiplies an S115 with another, saturating at the maximum or minimum
// if it overflows.
func (a S115) SMul(b S115) S115 {
	return S115(min(max((int32(a)*int32(b))>>15, int32(MinS115)), int32(MaxS115)))
}

// Scale attenuates a sample by an unsigned level: a * level >> 16. A level of
// 0 always yields 0, MaxU016 is as close to unity as the representation gets.
func (a S115) Scale(level U016) S115 {
	return S115(int32(a) * int32(level) >> 16)
}

func Float[T constraints.Float](s S115) T {
	var scale = 1.0 / T(1<<15)
	return T(s) * scale
}

// FromFloat converts a float into an S115, clamping to the maximum or minimum
// values.
func FromFloat[T constraints.Float](f T) S115 {
	if f < Float[T](MinS115) {
		return MinS115
	}
	if f > Float[T](MaxS115) {
		return MaxS115
	}
	return S115(f * T(1<<15))
}

// U016 is an unsigned 16 bit level with 0 integer bits: 0 is silence, MaxU016
// is (nearly) unity gain.
type U016 uint16

const (
	MaxU016 U016 = 0xFFFF
	MinU016 U016 = 0x0000
)

func (u U016) String() string {
	return fmt.Sprintf("%.6f", U016ToFloat[float64](u))
}

func U016ToFloat[T constraints.Float](u U016) T {
	var scale = 1.0 / T(1<<16)
	return T(u) * scale
}

// U016FromFloat converts a float into a U016, clamping to the maximum or
// minimum values.
func U016FromFloat[T constraints.Float](f T) U016 {
	if f <= 0 {
		return MinU016
	}
	if f >= U016ToFloat[T](MaxU016) {
		return MaxU016
	}
	return U016(f * T(1<<16))
}
