// show-tables dumps the compiled-in oscillator tables, mostly for eyeballing
// the band limiting and the pitch law.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pcmg/quadlfo/lfo"
	"github.com/pcmg/quadlfo/wavetable"
)

var (
	tableFlag = flag.String("table", "", "`name` of a single wavetable to print in full; leave empty for the summary")
	incFlag   = flag.Bool("increments", false, "print the full pitch increment table")
)

var tables = map[string][]int16{
	"sine":    wavetable.Sine,
	"tri10":   wavetable.Tri.B10,
	"tri100":  wavetable.Tri.B100,
	"ramp10":  wavetable.Ramp.B10,
	"ramp100": wavetable.Ramp.B100,
	"trap10":  wavetable.Trap.B10,
	"trap100": wavetable.Trap.B100,
}

// The increments get large enough that grouped digits are much easier to
// read.
var printer = message.NewPrinter(language.English)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("show-tables: ")

	if *tableFlag != "" {
		tab, ok := tables[*tableFlag]
		if !ok {
			log.Fatalf("unknown table %q", *tableFlag)
		}
		for i, v := range tab {
			fmt.Printf("%d\t%d\n", i, v)
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	if *incFlag {
		fmt.Fprintln(w, "index\tpitch\tincrement")
		for i, inc := range wavetable.Increments {
			printer.Fprintf(w, "%d\t%d\t%d\n", i, i*16, inc)
		}
		if err := w.Flush(); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Fprintln(w, "table\tpoints\tmin\tmax")
	for _, name := range []string{"sine", "tri10", "tri100", "ramp10", "ramp100", "trap10", "trap100"} {
		tab := tables[name]
		lo, hi := tab[0], tab[0]
		for _, v := range tab {
			lo, hi = min(lo, v), max(hi, v)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", name, len(tab)-1, lo, hi)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "pitch\tband\tincrement")
	for _, p := range []struct {
		name  string
		pitch int
	}{
		{"1 Hz", wavetable.Pitch1Hz},
		{"10 Hz", wavetable.Pitch10Hz},
		{"100 Hz", wavetable.Pitch100Hz},
	} {
		printer.Fprintf(w, "%d\t%s\t%d\n", p.pitch, p.name, lfo.PhaseIncrement(int16(p.pitch)))
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}
