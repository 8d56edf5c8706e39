// SPDX-License-Identifier: EPL-2.0

package scoff

// Unset asks the decoder to pick a value (source sample rate, stereo).
const Unset = -1

// DefaultChannels is used when the caller leaves Channels unset.
const DefaultChannels = 2

// AudioBuffer receives decoded audio.
//
// Set SampleRate and Channels to a concrete value or to Unset before
// decoding. After a successful decode they hold the resolved values and
// Samples holds SampleCount interleaved values.
type AudioBuffer struct {
	SampleRate int
	Channels   int
	Samples    []float64
	// SampleCount is the number of valid values in Samples, counting every
	// channel; it always equals len(Samples). A one second stereo decode at
	// 44100 Hz reports 88200, not 44100. Use Frames for the per-channel count.
	SampleCount int
}

// NewAudioBuffer returns a buffer requesting sampleRate and channels, either
// of which may be Unset.
func NewAudioBuffer(sampleRate, channels int) *AudioBuffer {
	return &AudioBuffer{SampleRate: sampleRate, Channels: channels}
}

// Frames returns the number of samples per channel.
func (b *AudioBuffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}
	return b.SampleCount / b.Channels
}

// Free releases the sample storage. Calling it on an empty buffer is a no-op.
func (b *AudioBuffer) Free() {
	b.Samples = nil
	b.SampleCount = 0
}

// FreeAudioBuffer releases buf's sample storage.
func FreeAudioBuffer(buf *AudioBuffer) {
	if buf != nil {
		buf.Free()
	}
}

// sampleAccumulator grows with amortised doubling and never shrinks.
type sampleAccumulator struct {
	data []float64
}

// maxInitialCapacity caps the samples reserved before the first frame.
const maxInitialCapacity = 1 << 16

// initialCapacity reserves up to one second of output.
func initialCapacity(rate, channels int) int {
	if rate <= 0 || channels <= 0 {
		return 0
	}
	if rate > maxInitialCapacity/channels {
		return maxInitialCapacity
	}
	return rate * channels
}

func newSampleAccumulator(initial int) *sampleAccumulator {
	return &sampleAccumulator{data: make([]float64, 0, max(initial, 0))}
}

func (a *sampleAccumulator) append(src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	if cap(a.data)-len(a.data) < n {
		// Grow by at least n samples, or double capacity
		newCap := len(a.data) + max(n, cap(a.data))
		grown := make([]float64, len(a.data), newCap)
		copy(grown, a.data)
		a.data = grown
	}

	start := len(a.data)
	a.data = a.data[:start+n]
	copy(a.data[start:], src)
}

func (a *sampleAccumulator) len() int { return len(a.data) }
