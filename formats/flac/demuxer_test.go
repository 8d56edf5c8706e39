// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/scoff/audio"
)

// mockFrameReader simulates a parsed FLAC stream for testing
type mockFrameReader struct {
	frames [][][]int32
	pos    int
	err    error
	closed int
}

func (m *mockFrameReader) next() ([][]int32, error) {
	if m.pos >= len(m.frames) {
		if m.err != nil {
			return nil, m.err
		}
		return nil, io.EOF
	}
	f := m.frames[m.pos]
	m.pos++
	return f, nil
}

func (m *mockFrameReader) close() error {
	m.closed++
	return nil
}

func newMockContainer(t *testing.T, info streamInfo, fr frameReader) *container {
	t.Helper()

	c := &container{}
	if err := c.setReader(fr, info); err != nil {
		t.Fatalf("setReader() error = %v", err)
	}
	return c
}

func TestDemuxer_Probe(t *testing.T) {
	t.Parallel()

	if !(Demuxer{}).Probe([]byte("fLaC\x00\x00\x00\x22")) {
		t.Error("Probe(fLaC) = false")
	}
	if (Demuxer{}).Probe([]byte("OggS")) {
		t.Error("Probe(OggS) = true")
	}
}

func TestDemuxer_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"text":      []byte("This is not FLAC data"),
		"truncated": []byte("fLaC"),
	} {
		c, err := Demuxer{}.Open(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("%s: Open() error = %v", name, err)
		}
		if err := c.FindStreamInfo(); err == nil {
			t.Errorf("%s: FindStreamInfo() error = nil, want error", name)
		}
	}
}

func TestContainer_SetReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		info    streamInfo
		wantErr error
	}{
		{"16-bit stereo", streamInfo{44100, 2, 16}, nil},
		{"24-bit mono", streamInfo{96000, 1, 24}, nil},
		{"no channels", streamInfo{44100, 0, 16}, ErrInvalidChannels},
		{"too wide", streamInfo{44100, 2, 33}, ErrUnsupportedBitDepth},
		{"too narrow", streamInfo{44100, 2, 3}, ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &container{}
			err := c.setReader(&mockFrameReader{}, tt.info)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("setReader() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			params := c.Streams()[0].Codec
			if params.CodecID != CodecFLAC || params.Format != audio.SampleFormatS32 ||
				params.SampleRate != tt.info.sampleRate || params.Channels != tt.info.channels ||
				params.BitsPerSample != tt.info.bitsPerSample {
				t.Errorf("params = %+v", params)
			}
		})
	}
}

func TestContainer_InterleavesAndJustifies(t *testing.T) {
	t.Parallel()

	fr := &mockFrameReader{frames: [][][]int32{
		{{1, 2, 3}, {-1, -2, -3}},
		{{32767}, {-32768}},
	}}
	c := newMockContainer(t, streamInfo{44100, 2, 16}, fr)

	var got []float64
	for {
		pkt, err := c.ReadPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadPacket() error = %v", err)
		}
		buf := make([]float64, len(pkt.Data)/4)
		audio.DecodeSamples(buf, pkt.Data, audio.SampleFormatS32)
		got = append(got, buf...)
	}

	// 16-bit values shifted into the top of s32 keep their 16-bit scale
	want := []float64{1, -1, 2, -2, 3, -3, 32767, -32768}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i]/32768 {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i]/32768)
		}
	}
}

func TestContainer_UnevenSubframes(t *testing.T) {
	t.Parallel()

	fr := &mockFrameReader{frames: [][][]int32{{{1, 2, 3}, {4, 5}}}}
	c := newMockContainer(t, streamInfo{8000, 2, 32}, fr)

	pkt, err := c.ReadPacket()
	if err != nil {
		t.Fatalf("ReadPacket() error = %v", err)
	}
	if len(pkt.Data) != 2*2*4 {
		t.Errorf("packet = %d bytes, want %d", len(pkt.Data), 2*2*4)
	}
}

func TestContainer_ChannelMismatch(t *testing.T) {
	t.Parallel()

	fr := &mockFrameReader{frames: [][][]int32{{{1, 2}}}}
	c := newMockContainer(t, streamInfo{8000, 2, 16}, fr)

	if _, err := c.ReadPacket(); !errors.Is(err, ErrChannelMismatch) {
		t.Errorf("ReadPacket() error = %v, want %v", err, ErrChannelMismatch)
	}
}

func TestContainer_ReadError(t *testing.T) {
	t.Parallel()

	broken := errors.New("crc mismatch")
	c := newMockContainer(t, streamInfo{8000, 1, 16}, &mockFrameReader{err: broken})

	if _, err := c.ReadPacket(); !errors.Is(err, broken) {
		t.Errorf("ReadPacket() error = %v, want %v", err, broken)
	}
}

func TestContainer_Close(t *testing.T) {
	t.Parallel()

	fr := &mockFrameReader{}
	c := newMockContainer(t, streamInfo{8000, 1, 16}, fr)

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if fr.closed != 1 {
		t.Errorf("reader closed %d times, want 1", fr.closed)
	}
	if _, err := c.ReadPacket(); !errors.Is(err, ErrNotProbed) {
		t.Errorf("ReadPacket() after Close error = %v, want %v", err, ErrNotProbed)
	}
}
