// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/scoff/utils"
)

// ResampleSpec describes a conversion between two PCM configurations.
type ResampleSpec struct {
	InRate     int
	InChannels int
	InLayout   ChannelLayout
	InFormat   SampleFormat

	OutRate     int
	OutChannels int
	OutLayout   ChannelLayout
	OutFormat   SampleFormat
}

// Resampler converts decoded frames between sample rates, channel layouts
// and sample formats. Output is interleaved float64.
type Resampler interface {
	Init(spec ResampleSpec) error
	IsInitialized() bool
	// OutSamples returns an upper bound of samples per channel that the next
	// Convert of a frame holding inSamples samples per channel may produce.
	OutSamples(inSamples int) int
	// Convert consumes in and writes up to len(dst)/OutChannels samples per
	// channel into dst, returning the count written. Input that cannot be
	// converted yet stays buffered inside the resampler.
	Convert(dst []float64, in *Frame) (int, error)
	// Flush writes whatever is still buffered.
	Flush(dst []float64) (int, error)
	Close() error
}

// SwrResampler is a streaming Resampler using cubic interpolation between
// frames. It holds back two frames of look-ahead until Flush is called.
// When downsampling, input first passes a windowed-sinc low-pass that cuts
// everything above the output Nyquist frequency.
type SwrResampler struct {
	spec    ResampleSpec
	ratio   float64 // InRate / OutRate, source frames per output frame
	inCh    int
	outCh   int
	matrix  [][]float64
	decoded []float64
	remixed []float64
	pending []float64 // filtered frames waiting for interpolation
	pos     float64   // position of the next output inside pending, in frames
	prev    []float64 // frame before pending[0], used as y0
	hasPrev bool
	lp      *lowPass // nil unless downsampling
	ready   bool
}

// NewSwrResampler returns an uninitialized resampler; call Init before use.
func NewSwrResampler() *SwrResampler {
	return &SwrResampler{}
}

func validateSide(side string, rate, channels int, layout ChannelLayout, format SampleFormat) error {
	if rate <= 0 {
		return fmt.Errorf("%w: %s sample rate %d", ErrInvalidResampleSpec, side, rate)
	}
	if channels <= 0 {
		return fmt.Errorf("%w: %s channel count %d", ErrInvalidResampleSpec, side, channels)
	}
	if layout != 0 && layout.Channels() != channels {
		return fmt.Errorf("%w: %s channel layout %s mismatches channel count %d",
			ErrInvalidResampleSpec, side, layout, channels)
	}
	if format.BytesPerSample() == 0 {
		return fmt.Errorf("%w: %s sample format %s", ErrInvalidResampleSpec, side, format)
	}
	return nil
}

func (r *SwrResampler) Init(spec ResampleSpec) error {
	r.ready = false

	if spec.InChannels == 0 {
		spec.InChannels = spec.InLayout.Channels()
	}
	if spec.OutChannels == 0 {
		spec.OutChannels = spec.OutLayout.Channels()
	}

	if err := validateSide("input", spec.InRate, spec.InChannels, spec.InLayout, spec.InFormat); err != nil {
		return err
	}
	if err := validateSide("output", spec.OutRate, spec.OutChannels, spec.OutLayout, spec.OutFormat); err != nil {
		return err
	}
	if spec.OutFormat != SampleFormatF64 {
		return fmt.Errorf("%w: output sample format %s", ErrUnsupportedSampleFormat, spec.OutFormat)
	}

	r.spec = spec
	r.ratio = float64(spec.InRate) / float64(spec.OutRate)
	r.inCh = spec.InChannels
	r.outCh = spec.OutChannels
	r.matrix = remixMatrix(r.inCh, r.outCh)
	r.pending = r.pending[:0]
	r.pos = 0
	r.prev = make([]float64, r.outCh)
	r.hasPrev = false

	r.lp = nil
	if r.ratio > 1 {
		r.lp = newLowPass(r.ratio, r.outCh)
	}

	r.ready = true
	return nil
}

func (r *SwrResampler) IsInitialized() bool { return r.ready }

// Spec returns the spec the resampler was initialized with.
func (r *SwrResampler) Spec() ResampleSpec { return r.spec }

func (r *SwrResampler) OutSamples(inSamples int) int {
	if !r.ready {
		return 0
	}
	queued := len(r.pending) / r.outCh
	if r.lp != nil {
		queued += r.lp.backlog()
	}
	total := float64(queued+inSamples) - r.pos
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(total/r.ratio)) + 1
}

func (r *SwrResampler) Convert(dst []float64, in *Frame) (int, error) {
	if !r.ready {
		return 0, ErrResamplerNotInitialized
	}
	if len(dst)%r.outCh != 0 {
		return 0, ErrInvalidDstSize
	}

	if in != nil && in.NumSamples > 0 {
		if in.Channels != r.inCh || in.Format != r.spec.InFormat {
			return 0, fmt.Errorf("%w: got %d ch %s, want %d ch %s",
				ErrFrameMismatch, in.Channels, in.Format, r.inCh, r.spec.InFormat)
		}
		r.push(in)
	}

	return r.drain(dst, false), nil
}

func (r *SwrResampler) Flush(dst []float64) (int, error) {
	if !r.ready {
		return 0, ErrResamplerNotInitialized
	}
	if len(dst)%r.outCh != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.lp != nil {
		r.pending = r.lp.flush(r.pending)
	}
	return r.drain(dst, true), nil
}

func (r *SwrResampler) Close() error {
	r.ready = false
	r.decoded = nil
	r.pending = nil
	r.prev = nil
	r.remixed = nil
	r.lp = nil
	return nil
}

// push converts in to float64, remixes it to the output channel count and
// appends it to pending, through the low-pass when one is set.
func (r *SwrResampler) push(in *Frame) {
	need := in.NumSamples * r.inCh
	if cap(r.decoded) < need {
		r.decoded = make([]float64, need)
	}
	r.decoded = r.decoded[:need]

	n := DecodeSamples(r.decoded, in.Data, in.Format)
	frames := n / r.inCh

	if r.lp == nil {
		r.pending = remix(r.pending, r.decoded, r.matrix, frames)
		return
	}

	r.remixed = remix(r.remixed[:0], r.decoded, r.matrix, frames)
	r.lp.push(r.remixed)
	r.pending = r.lp.filter(r.pending)
}

func (r *SwrResampler) frame(i, c int) float64 {
	return r.pending[i*r.outCh+c]
}

// drain interpolates as many output frames as pending allows. Without flush
// it keeps two frames of look-ahead; with flush the edge frames are repeated.
func (r *SwrResampler) drain(dst []float64, flush bool) int {
	maxOut := len(dst) / r.outCh
	frames := len(r.pending) / r.outCh
	written := 0

	for written < maxOut {
		i := int(r.pos)
		if flush {
			if i >= frames {
				break
			}
		} else if i+2 >= frames {
			break
		}

		w := utils.CatmullRomWeights(r.pos - float64(i))
		next := min(i+1, frames-1)
		after := min(i+2, frames-1)

		for c := range r.outCh {
			y1 := r.frame(i, c)

			var y0 float64
			switch {
			case i > 0:
				y0 = r.frame(i-1, c)
			case r.hasPrev:
				y0 = r.prev[c]
			default:
				y0 = y1
			}

			dst[written*r.outCh+c] = w[0]*y0 + w[1]*y1 + w[2]*r.frame(next, c) + w[3]*r.frame(after, c)
		}

		written++
		r.pos += r.ratio
	}

	// Drop consumed frames, keeping the last one as history
	drop := min(int(r.pos), frames)
	if drop > 0 {
		copy(r.prev, r.pending[(drop-1)*r.outCh:drop*r.outCh])
		r.hasPrev = true
		n := copy(r.pending, r.pending[drop*r.outCh:])
		r.pending = r.pending[:n]
		r.pos -= float64(drop)
	}

	return written
}
