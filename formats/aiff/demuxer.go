// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/scoff/audio"
	"github.com/ik5/scoff/formats/pcm"
)

const DefaultPacketFrames = 4096

// Demuxer opens AIFF and AIFF-C files holding integer PCM.
type Demuxer struct {
	PacketFrames int
}

func (Demuxer) Name() string         { return "aiff" }
func (Demuxer) Extensions() []string { return []string{"aiff", "aif", "aifc"} }

func (Demuxer) Probe(header []byte) bool {
	if len(header) < 12 || !bytes.Equal(header[0:4], []byte("FORM")) {
		return false
	}
	kind := header[8:12]
	return bytes.Equal(kind, []byte("AIFF")) || bytes.Equal(kind, []byte("AIFC"))
}

func (d Demuxer) Open(r io.ReadSeeker) (audio.Container, error) {
	frames := d.PacketFrames
	if frames <= 0 {
		frames = DefaultPacketFrames
	}
	return &container{r: r, packetFrames: frames}, nil
}

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// container wraps go-audio aiff.Decoder
type container struct {
	r            io.ReadSeeker
	dec          aiffReader
	packetFrames int
	channels     int
	format       audio.SampleFormat
	streams      []audio.Stream
	intBuf       *goaudio.IntBuffer
}

func (c *container) FindStreamInfo() error {
	if c.dec != nil {
		return nil
	}

	dec := aiff.NewDecoder(c.r)
	if !dec.IsValidFile() {
		return ErrNotAiffFile
	}

	// Read file info
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return fmt.Errorf("%w", err)
	}

	format := dec.Format()
	if format == nil {
		return ErrUnsupportedAiffLayout
	}

	return c.setDecoder(dec, format, int(dec.BitDepth))
}

func (c *container) setDecoder(dec aiffReader, format *goaudio.Format, bitDepth int) error {
	sf, err := sampleFormat(bitDepth)
	if err != nil {
		return err
	}
	if format.NumChannels < 1 || format.SampleRate <= 0 {
		return ErrUnsupportedAiffLayout
	}

	codecID, _ := pcm.CodecForFormat(sf)

	c.dec = dec
	c.channels = format.NumChannels
	c.format = sf
	c.intBuf = &goaudio.IntBuffer{
		Format:         format,
		Data:           make([]int, c.packetFrames*format.NumChannels),
		SourceBitDepth: bitDepth,
	}
	c.streams = []audio.Stream{{
		Index:     0,
		MediaType: audio.MediaTypeAudio,
		Codec: audio.CodecParameters{
			CodecID:       codecID,
			SampleRate:    format.SampleRate,
			Channels:      format.NumChannels,
			Layout:        audio.DefaultLayout(format.NumChannels),
			Format:        sf,
			BitsPerSample: bitDepth,
		},
	}}
	return nil
}

func (c *container) Streams() []audio.Stream { return c.streams }

func (c *container) ReadPacket() (*audio.Packet, error) {
	if c.dec == nil {
		return nil, ErrNotProbed
	}

	c.intBuf.Data = c.intBuf.Data[:cap(c.intBuf.Data)]

	n, err := c.dec.PCMBuffer(c.intBuf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w", err)
	}

	n -= n % c.channels
	if n == 0 {
		return nil, io.EOF
	}

	data := pcm.AppendInts(make([]byte, 0, n*c.format.BytesPerSample()), c.intBuf.Data[:n], c.format)
	return &audio.Packet{StreamIndex: 0, Data: data}, nil
}

func (c *container) Close() error {
	c.dec = nil
	c.intBuf = nil
	return nil
}

func sampleFormat(bitDepth int) (audio.SampleFormat, error) {
	switch bitDepth {
	case 16:
		return audio.SampleFormatS16, nil
	case 24:
		return audio.SampleFormatS24, nil
	case 32:
		return audio.SampleFormatS32, nil
	}
	return audio.SampleFormatNone, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
}
