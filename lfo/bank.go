package lfo

import (
	"fmt"

	"github.com/pcmg/quadlfo/fix"
)

// Bank runs a set of independent channels and exposes them as a
// quadlfo.Ticker with no inputs and one output stream per channel. The
// channels share only the read-only wavetables, so a Bank has no locking:
// parameter updates race benignly with Tick exactly as they do on a single
// channel.
type Bank struct {
	chans []Lfo
}

// NewBank returns a Bank of n initialised channels.
func NewBank(n int) *Bank {
	b := &Bank{chans: make([]Lfo, n)}
	for i := range b.chans {
		b.chans[i].Init()
	}
	return b
}

// Channel returns the i'th channel for parameter updates.
func (b *Bank) Channel(i int) *Lfo {
	return &b.chans[i]
}

func (b *Bank) Inputs() int    { return 0 }
func (b *Bank) Outputs() int   { return len(b.chans) }
func (b *Bank) String() string { return fmt.Sprintf("lfo.Bank(%d)", len(b.chans)) }

// Tick steps every channel once per output frame.
func (b *Bank) Tick(_, out [][]fix.S115) {
	for i := range out[0] {
		for c := range b.chans {
			ch := &b.chans[c]
			ch.Step()
			out[c][i] = ch.Sample()
		}
	}
}
