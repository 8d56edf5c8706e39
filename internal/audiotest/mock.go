// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/ik5/scoff/audio"
)

// Waveform generates the value of one sample in [-1, 1].
type Waveform func(sample int, channel int) float64

// Silence generates zeros.
func Silence() Waveform {
	return func(sample int, channel int) float64 { return 0.0 }
}

// Sine generates a sine wave of frequency Hz at sampleRate.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(sample int, channel int) float64 {
		t := float64(sample) / float64(sampleRate)
		return math.Sin(2 * math.Pi * frequency * t)
	}
}

// Constant generates value on every channel.
func Constant(value float64) Waveform {
	return func(sample int, channel int) float64 { return value }
}

// Ramp generates sample*step, offset by channel*step/2 so channels differ.
func Ramp(step float64) Waveform {
	return func(sample int, channel int) float64 {
		return float64(sample)*step + float64(channel)*step/2
	}
}

// Interleave renders frames sample frames of w.
func Interleave(w Waveform, channels, frames int) []float64 {
	out := make([]float64, 0, channels*frames)
	for f := range frames {
		for c := range channels {
			out = append(out, w(f, c))
		}
	}
	return out
}

// Encode packs samples in [-1, 1] as format.
func Encode(samples []float64, format audio.SampleFormat) []byte {
	out := make([]byte, 0, len(samples)*format.BytesPerSample())
	for _, v := range samples {
		switch format {
		case audio.SampleFormatF32, audio.SampleFormatF64:
			out = audio.AppendFloatSample(out, v, format)
		default:
			out = audio.AppendSample(out, int32(ToInt(v, bitDepth(format))), format)
		}
	}
	return out
}

// ToInt scales v in [-1, 1] to a signed integer of bits precision.
func ToInt(v float64, bits int) int {
	v = max(-1, min(1, v))
	full := float64(int64(1) << (bits - 1))
	return int(math.Max(-full, math.Min(full-1, math.Round(v*full))))
}

// Ints scales samples to signed integers of bits precision.
func Ints(samples []float64, bits int) []int {
	out := make([]int, len(samples))
	for i, v := range samples {
		out[i] = ToInt(v, bits)
	}
	return out
}

func bitDepth(format audio.SampleFormat) int {
	return format.BytesPerSample() * 8
}

// Packetize splits data into packets holding framesPerPacket frames of
// frameBytes each. The last packet may be short.
func Packetize(streamIndex int, data []byte, frameBytes, framesPerPacket int) []audio.Packet {
	size := frameBytes * framesPerPacket
	var out []audio.Packet
	for off := 0; off < len(data); off += size {
		end := min(off+size, len(data))
		out = append(out, audio.Packet{StreamIndex: streamIndex, Data: data[off:end]})
	}
	return out
}
