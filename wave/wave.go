// package wave writes 16 bit PCM wave files.
package wave

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
)

// A Writer writes interleaved int16 sample frames to a wave file.
type Writer struct {
	w           io.WriteCloser
	sampleRate  int
	sampleCount int
	chanCount   uint8
	bb          bytes.Buffer
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewWriter creates a new Writer with the given sample rate and channel
// count, onto which interleaved samples can be written with Write. Close must
// be called when done writing samples to finalize the wave file.
func NewWriter(w io.Writer, sampleRate, channels int) *Writer {
	return &Writer{
		w:          nopCloser{Writer: w},
		sampleRate: sampleRate,
		chanCount:  uint8(channels),
	}
}

// NewFile creates a new wave file at the given path. Close must be called
// when done writing samples to finalize the file.
func NewFile(path string, sampleRate, channels int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{
		w:          f,
		sampleRate: sampleRate,
		chanCount:  uint8(channels),
	}, nil
}

const sampleSize = 2

func (w *Writer) header() [0x2C]byte {
	dataSize := sampleSize * w.sampleCount
	frameSize := sampleSize * int(w.chanCount)
	h := [0x2C]byte{
		'R', 'I', 'F', 'F',
		0, 0, 0, 0, //        length of rest of file
		'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ',
		16, 0, 0, 0, //       size of fmt chunk
		1, 0, //              uncompressed format
		0, 0, //              channel count
		0, 0, 0, 0, //        sample rate
		0, 0, 0, 0, //        bytes per second
		0, 0, //              bytes per sample frame
		sampleSize * 8, 0, // bits per sample
		'd', 'a', 't', 'a',
		0, 0, 0, 0, //        size of sample data
		// ...                sample data
	}

	binary.LittleEndian.PutUint32(h[0x04:], uint32(len(h)-8+dataSize))

	h[0x16] = w.chanCount
	binary.LittleEndian.PutUint32(h[0x18:], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(h[0x1C:], uint32(w.sampleRate)*uint32(frameSize))
	h[0x20] = byte(frameSize)
	binary.LittleEndian.PutUint32(h[0x28:], uint32(dataSize))
	return h
}

// SampleCount returns the number of samples written so far, counting each
// channel separately.
func (w *Writer) SampleCount() int {
	return w.sampleCount
}

// Write buffers a block of interleaved samples. Frames must be whole: len(p)
// should be a multiple of the channel count.
func (w *Writer) Write(p []int16) (n int, err error) {
	w.sampleCount += len(p)
	var buf [2]byte
	for _, s := range p {
		binary.LittleEndian.PutUint16(buf[:], uint16(s))
		w.bb.Write(buf[:])
	}
	return len(p), nil
}

// Close finalizes the wave file. It must be called when done writing samples.
func (w *Writer) Close() error {
	hdr := w.header()
	if _, err := w.w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.w.Write(w.bb.Bytes()); err != nil {
		return err
	}
	w.bb.Reset()
	w.sampleCount = 0
	return w.w.Close()
}
