// package io plays tickers out of the default audio device.
package io

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/gen2brain/malgo"

	"github.com/pcmg/quadlfo"
	"github.com/pcmg/quadlfo/fix"
	"github.com/pcmg/quadlfo/wave"
	"github.com/pcmg/quadlfo/wavetable"
)

// Play drives the provided Ticker through the default playback device at
// wavetable.SampleRate until the context is cancelled. The ticker must be a
// source: zero inputs. If filename is not "", the output is also written as
// a wave file with that name.
func Play(ctx context.Context, t quadlfo.Ticker, filename string) error {
	if t.Inputs() != 0 {
		return fmt.Errorf("io.Play needs a source, %v wants %d inputs", t, t.Inputs())
	}
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		fmt.Fprint(os.Stderr, msg)
	})
	if err != nil {
		return err
	}
	defer func() {
		mctx.Uninit()
		mctx.Free()
	}()
	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = uint32(t.Outputs())
	cfg.SampleRate = wavetable.SampleRate

	outputs := make([][]fix.S115, t.Outputs())
	for i := range outputs {
		outputs[i] = make([]fix.S115, 4096)
	}
	frame := make([]int16, t.Outputs())

	var w *wave.Writer
	if filename != "" {
		w, err = wave.NewFile(filename, wavetable.SampleRate, t.Outputs())
		if err != nil {
			return err
		}
	}

	recv := func(out, _ []byte, framecount uint32) {
		if framecount == 0 {
			return
		}
		for i := range outputs {
			outputs[i] = outputs[i][:framecount]
		}
		t.Tick(nil, outputs)

		// interleave into the device's int16 frames.
		o := out[:0]
		for i := 0; i < int(framecount); i++ {
			for c := range outputs {
				s := int16(outputs[c][i])
				o = binary.LittleEndian.AppendUint16(o, uint16(s))
				frame[c] = s
			}
			if w != nil {
				if _, err := w.Write(frame); err != nil {
					panic(err)
				}
			}
		}
	}

	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: recv,
	})
	if err != nil {
		return err
	}
	if err := device.Start(); err != nil {
		return err
	}

	<-ctx.Done()

	device.Uninit()

	if w != nil {
		return w.Close()
	}
	return nil
}
