// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/scoff/audio"
)

// mockMP3Reader simulates gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	data       []byte
	offset     int
	chunk      int
	err        error
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(p []byte) (int, error) {
	if m.offset >= len(m.data) {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}

	n := len(p)
	if m.chunk > 0 {
		n = min(n, m.chunk)
	}
	n = copy(p[:n], m.data[m.offset:])
	m.offset += n
	return n, nil
}

func newMockContainer(packetFrames int, dec mp3Reader) *container {
	c := &container{packetFrames: packetFrames}
	c.setDecoder(dec)
	return c
}

func TestDemuxer_Probe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{"id3 tag", []byte("ID3\x04\x00"), true},
		{"frame sync", []byte{0xFF, 0xFB, 0x90, 0x64}, true},
		{"mpeg2 frame sync", []byte{0xFF, 0xF3}, true},
		{"no sync", []byte{0xFF, 0x1B}, false},
		{"riff", []byte("RIFF"), false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		if got := (Demuxer{}).Probe(tt.header); got != tt.want {
			t.Errorf("Probe(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDemuxer_InvalidInput(t *testing.T) {
	t.Parallel()

	c, err := Demuxer{}.Open(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := c.FindStreamInfo(); err == nil {
		t.Error("FindStreamInfo() error = nil, want error for empty input")
	}
}

func TestContainer_Streams(t *testing.T) {
	t.Parallel()

	c := newMockContainer(DefaultPacketFrames, &mockMP3Reader{sampleRate: 22050})

	streams := c.Streams()
	if len(streams) != 1 {
		t.Fatalf("Streams() len = %d, want 1", len(streams))
	}
	params := streams[0].Codec
	if params.CodecID != CodecMP3 || params.SampleRate != 22050 || params.Channels != 2 ||
		params.Layout != audio.LayoutStereo || params.Format != audio.SampleFormatS16 {
		t.Errorf("params = %+v", params)
	}

	// Already probed, the mock must stay in place
	if err := c.FindStreamInfo(); err != nil {
		t.Errorf("FindStreamInfo() after setDecoder error = %v", err)
	}
}

func TestContainer_Packets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		bytes int
		chunk int
		want  []int
	}{
		{"exact packets", 32, 0, []int{16, 16}},
		{"short tail", 40, 0, []int{16, 16, 8}},
		{"partial frame dropped", 42, 0, []int{16, 16, 8}},
		{"decoder returns small reads", 32, 3, []int{16, 16}},
		{"empty", 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// 4 stereo s16 frames per packet
			c := newMockContainer(4, &mockMP3Reader{sampleRate: 44100, data: make([]byte, tt.bytes), chunk: tt.chunk})

			var sizes []int
			for {
				pkt, err := c.ReadPacket()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("ReadPacket() error = %v", err)
				}
				sizes = append(sizes, len(pkt.Data))
			}

			if len(sizes) != len(tt.want) {
				t.Fatalf("packet sizes = %v, want %v", sizes, tt.want)
			}
			for i := range sizes {
				if sizes[i] != tt.want[i] {
					t.Errorf("packet %d = %d bytes, want %d", i, sizes[i], tt.want[i])
				}
			}
		})
	}
}

func TestContainer_ReadError(t *testing.T) {
	t.Parallel()

	broken := errors.New("bad frame")
	c := newMockContainer(4, &mockMP3Reader{sampleRate: 44100, err: broken})

	if _, err := c.ReadPacket(); !errors.Is(err, broken) {
		t.Errorf("ReadPacket() error = %v, want %v", err, broken)
	}
}

func TestContainer_NotProbed(t *testing.T) {
	t.Parallel()

	c, _ := Demuxer{}.Open(bytes.NewReader(nil))
	if _, err := c.ReadPacket(); !errors.Is(err, ErrNotProbed) {
		t.Errorf("ReadPacket() error = %v, want %v", err, ErrNotProbed)
	}
}

func TestCodec(t *testing.T) {
	t.Parallel()

	c := newMockContainer(4, &mockMP3Reader{sampleRate: 44100, data: make([]byte, 16)})

	dec, err := Codec().Open(c.Streams()[0].Codec)
	if err != nil {
		t.Fatalf("Codec().Open() error = %v", err)
	}
	defer dec.Close()

	frame, err := dec.NewFrame()
	if err != nil {
		t.Fatalf("NewFrame() error = %v", err)
	}
	defer dec.ReleaseFrame(frame)

	pkt, err := c.ReadPacket()
	if err != nil {
		t.Fatalf("ReadPacket() error = %v", err)
	}
	got, err := dec.Decode(pkt, frame)
	if err != nil || !got {
		t.Fatalf("Decode() = %v, %v", got, err)
	}
	if frame.NumSamples != 4 || frame.Channels != 2 {
		t.Errorf("frame = %d samples x %d channels, want 4 x 2", frame.NumSamples, frame.Channels)
	}
}
