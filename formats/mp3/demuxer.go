// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/scoff/audio"
	"github.com/ik5/scoff/formats/pcm"
)

const (
	CodecMP3 audio.CodecID = "mp3"

	// DefaultPacketFrames matches one MPEG-1 Layer III frame.
	DefaultPacketFrames = 1152

	// go-mp3 always produces 16-bit little-endian stereo
	outChannels   = 2
	bytesPerFrame = outChannels * 2
)

// Codec returns the codec serving streams opened by Demuxer.
func Codec() audio.Codec { return pcm.NewCodec(CodecMP3, audio.SampleFormatS16) }

// Demuxer opens MPEG audio files.
type Demuxer struct {
	PacketFrames int
}

func (Demuxer) Name() string         { return "mp3" }
func (Demuxer) Extensions() []string { return []string{"mp3"} }

func (Demuxer) Probe(header []byte) bool {
	if bytes.HasPrefix(header, []byte("ID3")) {
		return true
	}
	// MPEG frame sync: 11 set bits
	return len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0
}

func (d Demuxer) Open(r io.ReadSeeker) (audio.Container, error) {
	frames := d.PacketFrames
	if frames <= 0 {
		frames = DefaultPacketFrames
	}
	return &container{r: r, packetFrames: frames}, nil
}

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type container struct {
	r            io.Reader
	dec          mp3Reader
	packetFrames int
	streams      []audio.Stream
}

func (c *container) FindStreamInfo() error {
	if c.dec != nil {
		return nil
	}

	dec, err := gomp3.NewDecoder(c.r)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	c.setDecoder(dec)
	return nil
}

func (c *container) setDecoder(dec mp3Reader) {
	c.dec = dec
	c.streams = []audio.Stream{{
		Index:     0,
		MediaType: audio.MediaTypeAudio,
		Codec: audio.CodecParameters{
			CodecID:       CodecMP3,
			SampleRate:    dec.SampleRate(),
			Channels:      outChannels,
			Layout:        audio.LayoutStereo,
			Format:        audio.SampleFormatS16,
			BitsPerSample: 16,
		},
	}}
}

func (c *container) Streams() []audio.Stream { return c.streams }

func (c *container) ReadPacket() (*audio.Packet, error) {
	if c.dec == nil {
		return nil, ErrNotProbed
	}

	buf := make([]byte, c.packetFrames*bytesPerFrame)
	n, err := io.ReadFull(c.dec, buf)
	n -= n % bytesPerFrame

	if n == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w", err)
	}

	// A short read is the tail of the stream; the next call reports EOF
	return &audio.Packet{StreamIndex: 0, Data: buf[:n]}, nil
}

func (c *container) Close() error {
	c.dec = nil
	return nil
}
