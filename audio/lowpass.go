// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/mjibson/go-dsp/window"
)

const (
	// lowPassZeros is the kernel half-length in output sample periods.
	lowPassZeros = 16
	// lowPassCutoff places the cutoff relative to the output Nyquist frequency.
	lowPassCutoff = 0.9
)

// lowPass is a streaming linear-phase FIR low-pass (Blackman windowed sinc).
// Output frame n is centered on input frame n, so half a kernel of input is
// held back until flush. The stream edges are extended by repeating the first
// and last frames.
type lowPass struct {
	taps     []float64
	half     int
	channels int
	buf      []float64 // interleaved; buf[0] is the frame half taps before center
	center   int
	seeded   bool
	flushed  bool
}

// newLowPass designs the anti-alias filter for decimating by ratio, the
// number of input frames per output frame.
func newLowPass(ratio float64, channels int) *lowPass {
	half := int(math.Ceil(lowPassZeros * ratio))
	fc := lowPassCutoff * 0.5 / ratio // cycles per input sample

	taps := window.Blackman(2*half + 1)
	var sum float64
	for k := range taps {
		x := float64(k - half)
		s := 2 * fc
		if x != 0 {
			s = math.Sin(2*math.Pi*fc*x) / (math.Pi * x)
		}
		taps[k] *= s
		sum += taps[k]
	}
	// Unity gain at DC
	for k := range taps {
		taps[k] /= sum
	}

	return &lowPass{taps: taps, half: half, channels: channels}
}

// push queues interleaved frames for filtering.
func (f *lowPass) push(frames []float64) {
	if len(frames) < f.channels {
		return
	}
	if !f.seeded {
		f.buf = f.buf[:0]
		for range f.half {
			f.buf = append(f.buf, frames[:f.channels]...)
		}
		f.center = f.half
		f.seeded = true
	}
	f.buf = append(f.buf, frames...)
}

// backlog is the number of queued input frames not yet filtered.
func (f *lowPass) backlog() int {
	if !f.seeded || f.flushed {
		return 0
	}
	return len(f.buf)/f.channels - f.center
}

// filter appends every frame whose full kernel is available to out.
func (f *lowPass) filter(out []float64) []float64 {
	frames := len(f.buf) / f.channels

	for ; f.center+f.half < frames; f.center++ {
		base := (f.center - f.half) * f.channels
		for c := range f.channels {
			var acc float64
			for k, h := range f.taps {
				acc += h * f.buf[base+k*f.channels+c]
			}
			out = append(out, acc)
		}
	}

	if drop := f.center - f.half; drop > 0 {
		n := copy(f.buf, f.buf[drop*f.channels:])
		f.buf = f.buf[:n]
		f.center -= drop
	}
	return out
}

// flush pads the tail with the last frame and filters the remaining input.
// Only the first call pads.
func (f *lowPass) flush(out []float64) []float64 {
	if f.seeded && !f.flushed {
		n := len(f.buf)
		for range f.half {
			f.buf = append(f.buf, f.buf[n-f.channels:n]...)
		}
		f.flushed = true
	}
	return f.filter(out)
}
