package audio

import (
	"math"
	"testing"
)

// f64Frame wraps interleaved samples in a double precision frame.
func f64Frame(channels int, samples []float64) *Frame {
	data := make([]byte, 0, len(samples)*8)
	for _, v := range samples {
		data = AppendFloatSample(data, v, SampleFormatF64)
	}
	return &Frame{
		NumSamples: len(samples) / channels,
		Channels:   channels,
		Format:     SampleFormatF64,
		Data:       data,
	}
}

func s16Frame(channels int, samples []int16) *Frame {
	data := make([]byte, 0, len(samples)*2)
	for _, v := range samples {
		data = AppendSample(data, int32(v), SampleFormatS16)
	}
	return &Frame{
		NumSamples: len(samples) / channels,
		Channels:   channels,
		Format:     SampleFormatS16,
		Data:       data,
	}
}

func sineMono(sampleRate int, frequency float64, frames int) []float64 {
	out := make([]float64, frames)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * frequency * float64(i) / float64(sampleRate))
	}
	return out
}

func constantSamples(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// chunk splits interleaved samples into frames of at most framesPer frames.
func chunk(channels int, samples []float64, framesPer int) []*Frame {
	var out []*Frame
	step := framesPer * channels
	for off := 0; off < len(samples); off += step {
		end := min(off+step, len(samples))
		out = append(out, f64Frame(channels, samples[off:end]))
	}
	return out
}

// resampleAll pushes every frame through r and flushes it.
func resampleAll(tb testing.TB, r Resampler, outChannels int, frames []*Frame) []float64 {
	tb.Helper()

	var out []float64
	for i, f := range frames {
		bound := r.OutSamples(f.NumSamples)
		dst := make([]float64, bound*outChannels)
		n, err := r.Convert(dst, f)
		if err != nil {
			tb.Fatalf("Convert(frame %d) error = %v", i, err)
		}
		if n > bound {
			tb.Fatalf("Convert(frame %d) wrote %d frames, OutSamples promised at most %d", i, n, bound)
		}
		out = append(out, dst[:n*outChannels]...)
	}

	for {
		bound := r.OutSamples(0)
		if bound == 0 {
			break
		}
		dst := make([]float64, bound*outChannels)
		n, err := r.Flush(dst)
		if err != nil {
			tb.Fatalf("Flush() error = %v", err)
		}
		if n == 0 {
			break
		}
		out = append(out, dst[:n*outChannels]...)
	}

	return out
}

func mustInit(tb testing.TB, spec ResampleSpec) *SwrResampler {
	tb.Helper()

	r := NewSwrResampler()
	if err := r.Init(spec); err != nil {
		tb.Fatalf("Init(%+v) error = %v", spec, err)
	}
	return r
}

func monoSpec(inRate, outRate int) ResampleSpec {
	return ResampleSpec{
		InRate: inRate, InChannels: 1, InLayout: LayoutMono, InFormat: SampleFormatF64,
		OutRate: outRate, OutChannels: 1, OutLayout: LayoutMono, OutFormat: SampleFormatF64,
	}
}
