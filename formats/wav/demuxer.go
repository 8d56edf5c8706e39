// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/scoff/audio"
	"github.com/ik5/scoff/formats/pcm"
)

const (
	formatPCM = 1

	// DefaultPacketFrames is how many sample frames go into one packet.
	DefaultPacketFrames = 4096
)

// Demuxer opens RIFF/WAVE files holding integer PCM.
type Demuxer struct {
	// PacketFrames overrides DefaultPacketFrames when positive.
	PacketFrames int
}

func (Demuxer) Name() string         { return "wav" }
func (Demuxer) Extensions() []string { return []string{"wav", "wave"} }

func (Demuxer) Probe(header []byte) bool {
	return len(header) >= 12 &&
		bytes.Equal(header[0:4], []byte("RIFF")) &&
		bytes.Equal(header[8:12], []byte("WAVE"))
}

func (d Demuxer) Open(r io.ReadSeeker) (audio.Container, error) {
	frames := d.PacketFrames
	if frames <= 0 {
		frames = DefaultPacketFrames
	}
	return &container{r: r, packetFrames: frames}, nil
}

// pcmReader is an interface for gowav.Decoder to allow testing
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type container struct {
	r            io.ReadSeeker
	dec          pcmReader
	packetFrames int
	streams      []audio.Stream
	format       audio.SampleFormat
	intBuf       *goaudio.IntBuffer
}

func (c *container) FindStreamInfo() error {
	if c.dec != nil {
		return nil
	}

	dec := gowav.NewDecoder(c.r)
	if !dec.IsValidFile() {
		return ErrNotWavFile
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return fmt.Errorf("%w", err)
	}

	if dec.WavAudioFormat != formatPCM {
		return fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	format, err := sampleFormat(int(dec.BitDepth))
	if err != nil {
		return err
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return ErrInvalidChannels
	}

	codecID, _ := pcm.CodecForFormat(format)

	c.dec = dec
	c.format = format
	c.intBuf = &goaudio.IntBuffer{
		Format:         dec.Format(),
		Data:           make([]int, c.packetFrames*channels),
		SourceBitDepth: int(dec.BitDepth),
	}
	c.streams = []audio.Stream{{
		Index:     0,
		MediaType: audio.MediaTypeAudio,
		Codec: audio.CodecParameters{
			CodecID:       codecID,
			SampleRate:    int(dec.SampleRate),
			Channels:      channels,
			Layout:        audio.DefaultLayout(channels),
			Format:        format,
			BitsPerSample: int(dec.BitDepth),
		},
	}}

	return nil
}

func (c *container) Streams() []audio.Stream { return c.streams }

func (c *container) ReadPacket() (*audio.Packet, error) {
	if c.dec == nil {
		return nil, ErrNotProbed
	}
	return readIntPacket(c.dec, c.intBuf, c.format)
}

func (c *container) Close() error {
	c.dec = nil
	c.intBuf = nil
	return nil
}

// readIntPacket fills buf from dec and packs the samples as format.
func readIntPacket(dec pcmReader, buf *goaudio.IntBuffer, format audio.SampleFormat) (*audio.Packet, error) {
	buf.Data = buf.Data[:cap(buf.Data)]

	n, err := dec.PCMBuffer(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}

	if buf.Format != nil && buf.Format.NumChannels > 0 {
		// Never hand out a partial sample frame
		n -= n % buf.Format.NumChannels
	}

	data := pcm.AppendInts(make([]byte, 0, n*format.BytesPerSample()), buf.Data[:n], format)

	return &audio.Packet{StreamIndex: 0, Data: data}, nil
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
