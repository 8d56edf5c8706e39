// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// MediaType identifies what kind of data a stream carries.
type MediaType int

const (
	MediaTypeUnknown MediaType = iota
	MediaTypeAudio
	MediaTypeVideo
	MediaTypeData
	MediaTypeSubtitle
)

func (m MediaType) String() string {
	switch m {
	case MediaTypeAudio:
		return "audio"
	case MediaTypeVideo:
		return "video"
	case MediaTypeData:
		return "data"
	case MediaTypeSubtitle:
		return "subtitle"
	}
	return "unknown"
}

// CodecID names a codec, e.g. "pcm_s16le", "mp3", "vorbis", "flac".
type CodecID string

// CodecParameters describe an encoded stream as reported by the container.
type CodecParameters struct {
	CodecID    CodecID
	SampleRate int
	Channels   int
	Layout     ChannelLayout
	Format     SampleFormat
	// BitsPerSample is the precision of the source, which may be lower than
	// the width of Format (e.g. 24-bit FLAC carried as s32).
	BitsPerSample int
}

// Stream is one elementary stream of a container.
type Stream struct {
	Index     int
	MediaType MediaType
	Codec     CodecParameters
}

// Packet is one unit of data read from a container.
type Packet struct {
	StreamIndex int
	Data        []byte
}

// Frame holds decoded interleaved samples.
type Frame struct {
	// NumSamples is the number of samples per channel.
	NumSamples int
	Channels   int
	Format     SampleFormat
	Data       []byte
}

// Reset drops the frame payload but keeps the allocated storage.
func (f *Frame) Reset() {
	f.NumSamples = 0
	f.Data = f.Data[:0]
}

// Container is an opened media file.
type Container interface {
	// FindStreamInfo reads enough of the input to fill in stream parameters.
	FindStreamInfo() error
	Streams() []Stream
	// ReadPacket returns the next packet, or io.EOF when the input is drained.
	// A nil packet with a nil error is read as the end of input.
	ReadPacket() (*Packet, error)
	Close() error
}

// Demuxer recognises and opens one container format.
type Demuxer interface {
	Name() string
	Extensions() []string
	// Probe reports whether header looks like this format.
	Probe(header []byte) bool
	Open(r io.ReadSeeker) (Container, error)
}

// Decoder is an opened codec bound to one stream.
type Decoder interface {
	SampleRate() int
	Channels() int
	Layout() ChannelLayout
	SampleFormat() SampleFormat
	// NewFrame allocates a frame suitable for Decode; hand it back with
	// ReleaseFrame.
	NewFrame() (*Frame, error)
	ReleaseFrame(frame *Frame)
	// Decode decodes pkt into frame. gotFrame is false when the decoder
	// buffered the packet without producing output.
	Decode(pkt *Packet, frame *Frame) (gotFrame bool, err error)
	Close() error
}

// Codec constructs Decoders for one CodecID.
type Codec interface {
	ID() CodecID
	Open(params CodecParameters) (Decoder, error)
}
