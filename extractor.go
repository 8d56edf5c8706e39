// SPDX-License-Identifier: EPL-2.0

package scoff

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/scoff/audio"
	"go.uber.org/zap"
)

// Extractor decodes files through the demuxers and codecs of a registry.
// An Extractor holds no per-call state, so one value may serve concurrent
// Decode calls on different buffers.
type Extractor struct {
	registry     *audio.Registry
	newResampler func() audio.Resampler
	log          *zap.Logger
	pinStereo    bool
}

type Option func(*Extractor)

// WithLogger reports failures and progress through l.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithResampler replaces the resampler constructor.
func WithResampler(newResampler func() audio.Resampler) Option {
	return func(e *Extractor) {
		if newResampler != nil {
			e.newResampler = newResampler
		}
	}
}

// WithPinnedStereoLayout pins the output channel layout to stereo whatever
// channel count is requested. Requests for other than two channels then fail
// with ErrResamplerInit, since the layout and count disagree.
func WithPinnedStereoLayout(pin bool) Option {
	return func(e *Extractor) {
		e.pinStereo = pin
	}
}

func NewExtractor(reg *audio.Registry, opts ...Option) *Extractor {
	e := &Extractor{
		registry:     reg,
		newResampler: func() audio.Resampler { return audio.NewSwrResampler() },
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decode decodes the first audio stream of path into out.
//
// out.SampleRate and out.Channels are requests; Unset picks the source rate
// and stereo respectively. A decode error in the middle of the stream ends
// extraction early and is not reported: the samples gathered so far are
// returned with a nil error. On any returned error out is left untouched.
func (e *Extractor) Decode(path string, out *AudioBuffer) error {
	if out == nil {
		return ErrNilBuffer
	}

	log := e.log.With(zap.String("path", path))

	in, streamIndex, err := e.openInput(path, log)
	if err != nil {
		return err
	}
	defer closeLogged(log, "container", in.Close)

	stream := in.Streams()[streamIndex]
	log = log.With(zap.Int("stream", streamIndex), zap.String("codec", string(stream.Codec.CodecID)))
	log.Debug("stream found")

	dec, err := e.openDecoder(stream, log)
	if err != nil {
		return err
	}
	defer closeLogged(log, "decoder", dec.Close)

	rate := out.SampleRate
	if rate < 0 {
		rate = dec.SampleRate()
	}
	channels := out.Channels
	if channels < 0 {
		channels = DefaultChannels
	}

	swr, err := e.configureResampler(dec, rate, channels, log)
	if err != nil {
		return err
	}
	defer closeLogged(log, "resampler", swr.Close)

	frame, err := dec.NewFrame()
	if err != nil || frame == nil {
		if err == nil {
			err = errors.New("decoder returned no frame")
		}
		log.Error("frame allocation failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFrameAlloc, err)
	}
	defer dec.ReleaseFrame(frame)

	acc := newSampleAccumulator(initialCapacity(rate, channels))
	e.extract(in, streamIndex, dec, swr, frame, channels, acc, log)

	out.SampleRate = rate
	out.Channels = channels
	out.Samples = acc.data
	out.SampleCount = acc.len()

	log.Debug("closed", zap.Int("samples", out.SampleCount))
	return nil
}

func (e *Extractor) openInput(path string, log *zap.Logger) (audio.Container, int, error) {
	in, err := e.registry.OpenInput(path)
	if err != nil {
		log.Error("could not open file", zap.Error(err))
		return nil, 0, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
	}

	if err := in.FindStreamInfo(); err != nil {
		log.Error("could not retrieve stream info", zap.Error(err))
		closeLogged(log, "container", in.Close)
		return nil, 0, fmt.Errorf("%w from %q: %w", ErrProbe, path, err)
	}

	for _, s := range in.Streams() {
		if s.MediaType == audio.MediaTypeAudio {
			return in, s.Index, nil
		}
	}

	log.Error("could not retrieve audio stream", zap.Int("streams", len(in.Streams())))
	closeLogged(log, "container", in.Close)
	return nil, 0, fmt.Errorf("%w %q", ErrNoAudioStream, path)
}

func (e *Extractor) openDecoder(stream audio.Stream, log *zap.Logger) (audio.Decoder, error) {
	codec, ok := e.registry.FindDecoder(stream.Codec.CodecID)
	if !ok {
		log.Error("no decoder for codec")
		return nil, fmt.Errorf("%w for stream #%d: %w: %s",
			ErrDecoderOpen, stream.Index, audio.ErrCodecNotFound, stream.Codec.CodecID)
	}

	dec, err := codec.Open(stream.Codec)
	if err != nil {
		log.Error("failed to open decoder", zap.Error(err))
		return nil, fmt.Errorf("%w for stream #%d: %w", ErrDecoderOpen, stream.Index, err)
	}

	log.Debug("decoder open",
		zap.Int("sample_rate", dec.SampleRate()),
		zap.Int("channels", dec.Channels()),
		zap.Stringer("sample_format", dec.SampleFormat()))
	return dec, nil
}

func (e *Extractor) configureResampler(dec audio.Decoder, rate, channels int, log *zap.Logger) (audio.Resampler, error) {
	layout := audio.DefaultLayout(channels)
	if e.pinStereo {
		layout = audio.LayoutStereo
	}

	spec := audio.ResampleSpec{
		InRate:      dec.SampleRate(),
		InChannels:  dec.Channels(),
		InLayout:    dec.Layout(),
		InFormat:    dec.SampleFormat(),
		OutRate:     rate,
		OutChannels: channels,
		OutLayout:   layout,
		OutFormat:   audio.SampleFormatF64,
	}

	swr := e.newResampler()
	err := swr.Init(spec)
	if err == nil && !swr.IsInitialized() {
		err = audio.ErrResamplerNotInitialized
	}
	if err != nil {
		log.Error("resampler has not been properly initialized", zap.Error(err))
		closeLogged(log, "resampler", swr.Close)
		return nil, fmt.Errorf("%w: %w", ErrResamplerInit, err)
	}

	log.Debug("resampler ready",
		zap.Int("in_rate", spec.InRate),
		zap.Int("out_rate", spec.OutRate),
		zap.Int("out_channels", spec.OutChannels),
		zap.Stringer("out_layout", spec.OutLayout))
	return swr, nil
}

// extract runs the read, decode, resample, append loop until the input is
// drained or a packet fails to decode, then flushes the resampler.
func (e *Extractor) extract(
	in audio.Container,
	streamIndex int,
	dec audio.Decoder,
	swr audio.Resampler,
	frame *audio.Frame,
	channels int,
	acc *sampleAccumulator,
	log *zap.Logger,
) {
	var scratch []float64
	packets := 0

	for {
		pkt, err := in.ReadPacket()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn("read failed, treating as end of input", zap.Int("packet", packets), zap.Error(err))
			}
			break
		}
		if pkt == nil {
			log.Warn("container returned no packet, treating as end of input", zap.Int("packet", packets))
			break
		}
		packets++

		if pkt.StreamIndex != streamIndex {
			continue
		}

		gotFrame, err := dec.Decode(pkt, frame)
		if err != nil {
			log.Warn("decode failed, output truncated", zap.Int("packet", packets), zap.Error(err))
			break
		}
		if !gotFrame {
			continue
		}

		scratch = sized(scratch, swr.OutSamples(frame.NumSamples)*channels)
		n, err := swr.Convert(scratch, frame)
		if err != nil {
			log.Warn("resample failed, output truncated", zap.Int("packet", packets), zap.Error(err))
			break
		}
		acc.append(scratch[:n*channels])
	}

	log.Debug("drained", zap.Int("packets", packets))

	for {
		need := swr.OutSamples(0) * channels
		if need == 0 {
			break
		}
		scratch = sized(scratch, need)
		n, err := swr.Flush(scratch)
		if err != nil {
			log.Warn("resampler flush failed", zap.Error(err))
			break
		}
		if n == 0 {
			break
		}
		acc.append(scratch[:n*channels])
	}
}

// sized returns buf with length n, reallocating only when it is too small.
func sized(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}

func closeLogged(log *zap.Logger, what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Warn("close failed", zap.String("handle", what), zap.Error(err))
	}
}
