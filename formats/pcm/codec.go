// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	"github.com/ik5/scoff/audio"
)

// Codec ids for raw little-endian PCM.
const (
	CodecU8    audio.CodecID = "pcm_u8"
	CodecS16LE audio.CodecID = "pcm_s16le"
	CodecS24LE audio.CodecID = "pcm_s24le"
	CodecS32LE audio.CodecID = "pcm_s32le"
	CodecF32LE audio.CodecID = "pcm_f32le"
	CodecF64LE audio.CodecID = "pcm_f64le"
)

// CodecForFormat returns the raw PCM codec id carrying f.
func CodecForFormat(f audio.SampleFormat) (audio.CodecID, bool) {
	switch f {
	case audio.SampleFormatU8:
		return CodecU8, true
	case audio.SampleFormatS16:
		return CodecS16LE, true
	case audio.SampleFormatS24:
		return CodecS24LE, true
	case audio.SampleFormatS32:
		return CodecS32LE, true
	case audio.SampleFormatF32:
		return CodecF32LE, true
	case audio.SampleFormatF64:
		return CodecF64LE, true
	}
	return "", false
}

// Codec decodes packets whose payload already is interleaved PCM in a fixed
// sample format. Library backed demuxers (mp3, vorbis, flac) register a Codec
// under their own id since their packets carry PCM as well.
type Codec struct {
	id     audio.CodecID
	format audio.SampleFormat
}

// NewCodec returns a Codec for id producing frames of format.
func NewCodec(id audio.CodecID, format audio.SampleFormat) Codec {
	return Codec{id: id, format: format}
}

func (c Codec) ID() audio.CodecID { return c.id }

func (c Codec) Open(params audio.CodecParameters) (audio.Decoder, error) {
	if params.CodecID != c.id {
		return nil, fmt.Errorf("%w: %s", ErrCodecMismatch, params.CodecID)
	}
	if params.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, params.SampleRate)
	}
	if params.Channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, params.Channels)
	}
	if params.Format != audio.SampleFormatNone && params.Format != c.format {
		return nil, fmt.Errorf("%w: stream %s, codec %s", ErrFormatMismatch, params.Format, c.format)
	}

	layout := params.Layout
	if layout == 0 {
		layout = audio.DefaultLayout(params.Channels)
	}

	return &decoder{
		sampleRate: params.SampleRate,
		channels:   params.Channels,
		layout:     layout,
		format:     c.format,
		frameSize:  c.format.BytesPerSample() * params.Channels,
	}, nil
}

// Codecs returns a Codec for every raw PCM id.
func Codecs() []Codec {
	return []Codec{
		NewCodec(CodecU8, audio.SampleFormatU8),
		NewCodec(CodecS16LE, audio.SampleFormatS16),
		NewCodec(CodecS24LE, audio.SampleFormatS24),
		NewCodec(CodecS32LE, audio.SampleFormatS32),
		NewCodec(CodecF32LE, audio.SampleFormatF32),
		NewCodec(CodecF64LE, audio.SampleFormatF64),
	}
}

type decoder struct {
	sampleRate int
	channels   int
	layout     audio.ChannelLayout
	format     audio.SampleFormat
	frameSize  int
	closed     bool
}

func (d *decoder) SampleRate() int                  { return d.sampleRate }
func (d *decoder) Channels() int                    { return d.channels }
func (d *decoder) Layout() audio.ChannelLayout      { return d.layout }
func (d *decoder) SampleFormat() audio.SampleFormat { return d.format }

func (d *decoder) NewFrame() (*audio.Frame, error) {
	if d.closed {
		return nil, ErrDecoderClosed
	}
	return &audio.Frame{
		Channels: d.channels,
		Format:   d.format,
		Data:     make([]byte, 0, 4096),
	}, nil
}

func (d *decoder) ReleaseFrame(frame *audio.Frame) {
	if frame == nil {
		return
	}
	frame.NumSamples = 0
	frame.Data = nil
}

func (d *decoder) Decode(pkt *audio.Packet, frame *audio.Frame) (bool, error) {
	if d.closed {
		return false, ErrDecoderClosed
	}
	frame.Reset()

	if pkt == nil || len(pkt.Data) == 0 {
		return false, nil
	}
	if len(pkt.Data)%d.frameSize != 0 {
		return false, fmt.Errorf("%w: %d bytes is not a multiple of %d",
			ErrTruncatedPacket, len(pkt.Data), d.frameSize)
	}

	frame.Channels = d.channels
	frame.Format = d.format
	frame.Data = append(frame.Data, pkt.Data...)
	frame.NumSamples = len(pkt.Data) / d.frameSize

	return true, nil
}

func (d *decoder) Close() error {
	d.closed = true
	return nil
}

// AppendInts packs integer samples, as produced by go-audio decoders, into
// dst using format.
func AppendInts(dst []byte, src []int, format audio.SampleFormat) []byte {
	for _, v := range src {
		dst = audio.AppendSample(dst, int32(v), format)
	}
	return dst
}
