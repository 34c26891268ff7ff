// package interp provides helpers for interpolating 16 bit wavetable samples
// addressed by a 32 bit phase.
package interp

// Tables are 1024 points plus one guard entry, so the top 10 bits of a phase
// index directly and the next 16 bits interpolate.

// Lerp1022 looks up a 1024+1 point table at the given phase, linearly
// interpolating between the two neighbouring entries in the amplitude domain.
func Lerp1022(table []int16, phase uint32) int16 {
	a := int32(table[phase>>22])
	b := int32(table[(phase>>22)+1])
	return int16(a + (b-a)*int32((phase>>6)&0xffff)>>16)
}

// Crossfade1022 interpolates both tables at the same phase and blends the two
// results by balance: 0 is entirely ta, 0xffff is (nearly) entirely tb.
func Crossfade1022(ta, tb []int16, phase uint32, balance uint16) int16 {
	a := int32(Lerp1022(ta, phase))
	b := int32(Lerp1022(tb, phase))
	return int16(a + (b-a)*int32(balance)>>16)
}

// Blend mixes a precomputed sample a towards b by balance. It is the same
// amplitude-domain blend Crossfade1022 applies after its lookups, for callers
// that compute one side in closed form.
func Blend(a, b int32, balance uint16) int16 {
	return int16(a + (b-a)*int32(balance)>>16)
}
