package quadlfo_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pcmg/quadlfo"
	"github.com/pcmg/quadlfo/fix"
	"github.com/pcmg/quadlfo/lfo"
)

func tick1(t quadlfo.Ticker, n int) [][]fix.S115 {
	in := make([][]fix.S115, t.Inputs())
	for i := range in {
		in[i] = make([]fix.S115, n)
	}
	out := make([][]fix.S115, t.Outputs())
	for i := range out {
		out[i] = make([]fix.S115, n)
	}
	t.Tick(in, out)
	return out
}

func TestConst(t *testing.T) {
	out := tick1(quadlfo.Const{Val: 42}, 8)
	want := [][]fix.S115{{42, 42, 42, 42, 42, 42, 42, 42}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("Const output mismatch (-want +got):\n%s", diff)
	}
}

func TestSerially(t *testing.T) {
	// halve then offset a constant
	ch := quadlfo.Serially(
		quadlfo.Const{Val: fix.FromFloat(0.5)},
		quadlfo.Scale{Mul: fix.FromFloat(0.5), Shift: fix.FromFloat(0.25)},
	)
	if ch.Inputs() != 0 || ch.Outputs() != 1 {
		t.Fatalf("chain is %d -> %d, want 0 -> 1", ch.Inputs(), ch.Outputs())
	}
	out := tick1(ch, 4)
	want := fix.FromFloat(0.5).SMul(fix.FromFloat(0.5)).SAdd(fix.FromFloat(0.25))
	for i, got := range out[0] {
		if got != want {
			t.Errorf("sample %d = %v, want %v", i, got, want)
		}
	}
}

func TestSeriallyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	quadlfo.Serially(quadlfo.Const{}, quadlfo.Amp{})
}

func TestMultAndAmp(t *testing.T) {
	// squaring via Mult into Amp
	ch := quadlfo.Serially(
		quadlfo.Const{Val: fix.FromFloat(0.5)},
		quadlfo.Mult{N: 2},
		quadlfo.Amp{},
	)
	out := tick1(ch, 4)
	want := fix.FromFloat(0.5).SMul(fix.FromFloat(0.5))
	for i, got := range out[0] {
		if got != want {
			t.Errorf("sample %d = %v, want %v", i, got, want)
		}
	}
}

func TestBankThroughChain(t *testing.T) {
	mk := func() *lfo.Bank {
		b := lfo.NewBank(2)
		b.Channel(0).SetShape(lfo.Triangle)
		b.Channel(0).SetPitch(1000)
		b.Channel(1).SetShape(lfo.Saw)
		b.Channel(1).SetPitch(4000)
		return b
	}

	const n = 256
	direct := tick1(mk(), n)
	mixed := tick1(quadlfo.Serially(mk(), quadlfo.Sum(2)), n)

	g := quadlfo.Sum(2).Gains[0]
	for i := 0; i < n; i++ {
		want := direct[0][i].SMul(g).SAdd(direct[1][i].SMul(g))
		if got := mixed[0][i]; got != want {
			t.Errorf("sample %d = %v, want %v", i, got, want)
		}
	}
}
