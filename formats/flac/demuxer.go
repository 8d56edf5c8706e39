// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/scoff/audio"
	"github.com/ik5/scoff/formats/pcm"
	"github.com/mewkiz/flac"
)

// CodecFLAC carries left-justified s32 samples.
const CodecFLAC audio.CodecID = "flac"

// Codec returns the codec serving streams opened by Demuxer.
func Codec() audio.Codec { return pcm.NewCodec(CodecFLAC, audio.SampleFormatS32) }

// Demuxer opens native FLAC files. Each FLAC frame becomes one packet.
type Demuxer struct{}

func (Demuxer) Name() string         { return "flac" }
func (Demuxer) Extensions() []string { return []string{"flac"} }

func (Demuxer) Probe(header []byte) bool {
	return bytes.HasPrefix(header, []byte("fLaC"))
}

func (Demuxer) Open(r io.ReadSeeker) (audio.Container, error) {
	return &container{r: r}, nil
}

// streamInfo is the subset of meta.StreamInfo the container needs.
type streamInfo struct {
	sampleRate    int
	channels      int
	bitsPerSample int
}

// frameReader yields decoded FLAC frames as per-channel samples.
type frameReader interface {
	next() ([][]int32, error)
	close() error
}

type mewkizReader struct {
	stream *flac.Stream
}

func (m *mewkizReader) next() ([][]int32, error) {
	f, err := m.stream.ParseNext()
	if err != nil {
		return nil, err
	}

	n := int(f.BlockSize)
	out := make([][]int32, len(f.Subframes))
	for ch, sub := range f.Subframes {
		out[ch] = sub.Samples[:min(n, len(sub.Samples))]
	}
	return out, nil
}

func (m *mewkizReader) close() error { return m.stream.Close() }

// readerOnly hides io.Closer so flac.Stream.Close leaves the file to the
// registry that opened it.
type readerOnly struct {
	io.Reader
}

type container struct {
	r       io.Reader
	frames  frameReader
	info    streamInfo
	shift   uint
	streams []audio.Stream
}

func (c *container) FindStreamInfo() error {
	if c.frames != nil {
		return nil
	}

	stream, err := flac.New(readerOnly{c.r})
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	info := streamInfo{
		sampleRate:    int(stream.Info.SampleRate),
		channels:      int(stream.Info.NChannels),
		bitsPerSample: int(stream.Info.BitsPerSample),
	}
	if err := c.setReader(&mewkizReader{stream: stream}, info); err != nil {
		stream.Close()
		return err
	}
	return nil
}

func (c *container) setReader(fr frameReader, info streamInfo) error {
	if info.channels < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, info.channels)
	}
	if info.bitsPerSample < 4 || info.bitsPerSample > 32 {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, info.bitsPerSample)
	}

	c.frames = fr
	c.info = info
	c.shift = uint(32 - info.bitsPerSample)
	c.streams = []audio.Stream{{
		Index:     0,
		MediaType: audio.MediaTypeAudio,
		Codec: audio.CodecParameters{
			CodecID:       CodecFLAC,
			SampleRate:    info.sampleRate,
			Channels:      info.channels,
			Layout:        audio.DefaultLayout(info.channels),
			Format:        audio.SampleFormatS32,
			BitsPerSample: info.bitsPerSample,
		},
	}}
	return nil
}

func (c *container) Streams() []audio.Stream { return c.streams }

func (c *container) ReadPacket() (*audio.Packet, error) {
	if c.frames == nil {
		return nil, ErrNotProbed
	}

	channels, err := c.frames.next()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if len(channels) != c.info.channels {
		return nil, fmt.Errorf("%w: frame has %d channels, stream %d",
			ErrChannelMismatch, len(channels), c.info.channels)
	}

	n := len(channels[0])
	for _, ch := range channels[1:] {
		n = min(n, len(ch))
	}

	data := make([]byte, 0, n*c.info.channels*4)
	for i := range n {
		for _, ch := range channels {
			data = audio.AppendSample(data, ch[i]<<c.shift, audio.SampleFormatS32)
		}
	}

	return &audio.Packet{StreamIndex: 0, Data: data}, nil
}

func (c *container) Close() error {
	if c.frames == nil {
		return nil
	}
	err := c.frames.close()
	c.frames = nil
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
