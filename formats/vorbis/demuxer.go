// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/scoff/audio"
	"github.com/ik5/scoff/formats/pcm"
	"github.com/jfreymuth/oggvorbis"
)

const (
	CodecVorbis audio.CodecID = "vorbis"

	DefaultPacketFrames = 2048

	// maxEmptyReads bounds how often a zero-length read is retried.
	maxEmptyReads = 8
)

// Codec returns the codec serving streams opened by Demuxer.
func Codec() audio.Codec { return pcm.NewCodec(CodecVorbis, audio.SampleFormatF32) }

// Demuxer opens Ogg Vorbis files.
type Demuxer struct {
	PacketFrames int
}

func (Demuxer) Name() string         { return "ogg" }
func (Demuxer) Extensions() []string { return []string{"ogg", "oga"} }

func (Demuxer) Probe(header []byte) bool {
	return bytes.HasPrefix(header, []byte("OggS"))
}

func (d Demuxer) Open(r io.ReadSeeker) (audio.Container, error) {
	frames := d.PacketFrames
	if frames <= 0 {
		frames = DefaultPacketFrames
	}
	return &container{r: r, packetFrames: frames}, nil
}

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of values (not frames) decoded into p.
	Read(p []float32) (int, error)
}

type container struct {
	r            io.Reader
	dec          oggReader
	channels     int
	packetFrames int
	streams      []audio.Stream
	buf          []float32
}

func (c *container) FindStreamInfo() error {
	if c.dec != nil {
		return nil
	}

	dec, err := oggvorbis.NewReader(c.r)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return c.setDecoder(dec)
}

func (c *container) setDecoder(dec oggReader) error {
	channels := dec.Channels()
	if channels < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	c.dec = dec
	c.channels = channels
	c.buf = make([]float32, c.packetFrames*channels)
	c.streams = []audio.Stream{{
		Index:     0,
		MediaType: audio.MediaTypeAudio,
		Codec: audio.CodecParameters{
			CodecID:       CodecVorbis,
			SampleRate:    dec.SampleRate(),
			Channels:      channels,
			Layout:        audio.DefaultLayout(channels),
			Format:        audio.SampleFormatF32,
			BitsPerSample: 32,
		},
	}}
	return nil
}

func (c *container) Streams() []audio.Stream { return c.streams }

func (c *container) ReadPacket() (*audio.Packet, error) {
	if c.dec == nil {
		return nil, ErrNotProbed
	}

	for range maxEmptyReads {
		n, err := c.dec.Read(c.buf)
		n -= n % c.channels

		if n > 0 {
			data := make([]byte, 0, n*4)
			for _, v := range c.buf[:n] {
				data = audio.AppendFloatSample(data, float64(v), audio.SampleFormatF32)
			}
			return &audio.Packet{StreamIndex: 0, Data: data}, nil
		}

		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return nil, ErrNoProgress
}

func (c *container) Close() error {
	c.dec = nil
	c.buf = nil
	return nil
}
