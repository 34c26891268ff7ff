// play runs a four channel LFO stack into the default audio output: a
// subharmonic drone built from one oscillator pitch and the clock dividers,
// with a slow pitch sweep on top.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pcmg/quadlfo"
	"github.com/pcmg/quadlfo/fix"
	"github.com/pcmg/quadlfo/io"
	"github.com/pcmg/quadlfo/lfo"
	"github.com/pcmg/quadlfo/wavetable"
)

var (
	profileFlag = flag.Bool("profile", false, "whether to write pprof profiles to the current working directory")
	writeFlag   = flag.Bool("write", false, "if true, writes the output to a wav file in the current directory")
	pitchFlag   = flag.Int("pitch", 10414, "pitch of channel 1 in 1/128 semitones above a 1 Hz fundamental (the default is ~110 Hz)")
	sweepFlag   = flag.Bool("sweep", true, "slowly sweep the pitch up and down one octave")
)

// drone builds the demo bank: four channels sharing one pitch, divided into
// subharmonics, with quadrature initial phases to keep the summed peaks from
// piling up.
func drone(pitch int16) *lfo.Bank {
	shapes := []lfo.Shape{lfo.Saw, lfo.Triangle, lfo.Trapezoid, lfo.Sine}
	dividers := []int{1, 2, 3, 4}
	b := lfo.NewBank(4)
	for i := 0; i < 4; i++ {
		ch := b.Channel(i)
		ch.SetShape(shapes[i])
		ch.SetPitch(pitch)
		ch.SetDivider(dividers[i])
		ch.SetInitialPhase(uint32(i) << 30)
		ch.SetLevel(fix.U016FromFloat(0.8))
	}
	return b
}

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("play: ")

	if *profileFlag {
		finish, err := startProfiles()
		if err != nil {
			log.Fatalf("Starting profiling: %v", err)
		}
		defer func() {
			if err := finish(); err != nil {
				log.Fatalf("Finishing profiles: %v", err)
			}
		}()
	}
	var filename string
	if *writeFlag {
		filename = fmt.Sprintf("out-%d.wav", time.Now().Unix())
		fmt.Fprintf(os.Stderr, "Writing output to %q\n", filename)
	}

	g, ctx := errgroup.WithContext(interruptContext())

	bank := drone(int16(*pitchFlag))
	m := newMeter(4)
	ch := quadlfo.Serially(bank, m, quadlfo.Sum(4))

	g.Go(func() error {
		return io.Play(ctx, ch, filename)
	})
	g.Go(func() error {
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		sweep := 0
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				if *sweepFlag {
					// triangle sweep, one octave peak to peak,
					// ~25 seconds per pass
					sweep = (sweep + 1) % 256
					offset := sweep
					if offset >= 128 {
						offset = 256 - offset
					}
					p := int16(*pitchFlag) + int16(offset*wavetable.Octave/128) - wavetable.Octave/2
					for i := 0; i < 4; i++ {
						bank.Channel(i).SetPitch(p)
					}
				}
				fmt.Printf("\r%s", m.status())
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

// meter passes its inputs through and keeps smoothed RMS values for the
// status line. It owns its own animation counter rather than sharing any
// global tick state.
type meter struct {
	channels int

	mu   sync.Mutex
	rms  []float32
	anim int
}

func newMeter(channels int) *meter {
	return &meter{
		channels: channels,
		rms:      make([]float32, channels),
	}
}

func (m *meter) Inputs() int    { return m.channels }
func (m *meter) Outputs() int   { return m.channels }
func (m *meter) String() string { return fmt.Sprintf("meter(%d)", m.channels) }

func (m *meter) Tick(in, out [][]fix.S115) {
	for i, inp := range in {
		copy(out[i], inp)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, channel := range in {
		rms := float64(0)
		for _, s := range channel {
			f := fix.Float[float64](s)
			rms += f * f
		}
		rms /= float64(len(channel))
		m.rms[i] = 0.8*m.rms[i] + 0.2*float32(math.Sqrt(rms))
	}
}

func (m *meter) status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anim++
	spinner := `|/-\`[m.anim%4]
	s := fmt.Sprintf("%c ", spinner)
	for _, f := range m.rms {
		s += fmt.Sprintf("%.2f ", f)
	}
	return s
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}

func startProfiles() (func() error, error) {
	cpu, err := os.Create("cpu.pprof")
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(cpu); err != nil {
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}

	mem, err := os.Create("mem.pprof")
	if err != nil {
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := cpu.Close(); err != nil {
			return err
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(mem); err != nil {
			return err
		}
		return mem.Close()
	}, nil
}
