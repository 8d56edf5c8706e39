package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		samples    []int16
	}{
		{"mono", 8000, 1, []int16{100, 200, 300, 400}},
		{"stereo", 44100, 2, []int16{1, -1, 2, -2}},
		{"surround", 48000, 6, make([]int16, 12)},
		{"empty", 16000, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := new(bytes.Buffer)
			if err := WriteWAV16(buf, tt.sampleRate, tt.channels, tt.samples); err != nil {
				t.Fatalf("WriteWAV16() error = %v", err)
			}

			data := buf.Bytes()
			if len(data) != headerSize+len(tt.samples)*2 {
				t.Fatalf("file size = %d, want %d", len(data), headerSize+len(tt.samples)*2)
			}

			checks := []struct {
				field string
				got   uint32
				want  uint32
			}{
				{"riff size", binary.LittleEndian.Uint32(data[4:8]), uint32(36 + len(tt.samples)*2)},
				{"format tag", uint32(binary.LittleEndian.Uint16(data[20:22])), formatPCM},
				{"channels", uint32(binary.LittleEndian.Uint16(data[22:24])), uint32(tt.channels)},
				{"sample rate", binary.LittleEndian.Uint32(data[24:28]), uint32(tt.sampleRate)},
				{"byte rate", binary.LittleEndian.Uint32(data[28:32]), uint32(tt.sampleRate * tt.channels * 2)},
				{"block align", uint32(binary.LittleEndian.Uint16(data[32:34])), uint32(tt.channels * 2)},
				{"bits per sample", uint32(binary.LittleEndian.Uint16(data[34:36])), 16},
				{"data size", binary.LittleEndian.Uint32(data[40:44]), uint32(len(tt.samples) * 2)},
			}
			for _, c := range checks {
				if c.got != c.want {
					t.Errorf("%s = %d, want %d", c.field, c.got, c.want)
				}
			}

			for marker, off := range map[string]int{"RIFF": 0, "WAVE": 8, "fmt ": 12, "data": 36} {
				if got := string(data[off : off+4]); got != marker {
					t.Errorf("marker at %d = %q, want %q", off, got, marker)
				}
			}
		})
	}
}

func TestWriteWAV16_SampleData(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 0x1234, -1, -32768, 32767}
	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 8000, 1, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()[headerSize:]
	for i, want := range samples {
		got := int16(binary.LittleEndian.Uint16(data[i*2:]))
		if got != want {
			t.Errorf("sample %d = %d, want %d", i, got, want)
		}
	}
}

func TestWriteWAV16_LargeFileSpansChunks(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 20000)
	for i := range samples {
		samples[i] = int16(i)
	}

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 16000, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()[headerSize:]
	for _, i := range []int{0, 8191, 8192, 19999} {
		if got := int16(binary.LittleEndian.Uint16(data[i*2:])); got != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, got, samples[i])
		}
	}
}

func TestWriteWAV16_Errors(t *testing.T) {
	t.Parallel()

	if err := WriteWAV16(new(bytes.Buffer), 8000, 0, []int16{1}); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("WriteWAV16(0 channels) error = %v, want %v", err, ErrInvalidChannels)
	}
	if err := WriteWAV16(new(bytes.Buffer), 8000, 2, []int16{1, 2, 3}); !errors.Is(err, ErrPartialFrame) {
		t.Errorf("WriteWAV16(partial frame) error = %v, want %v", err, ErrPartialFrame)
	}
}

type failingWriter struct{ after int }

var errWriteFailed = errors.New("write failed")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errWriteFailed
	}
	w.after--
	return len(p), nil
}

func TestWriteWAV16_WriterError(t *testing.T) {
	t.Parallel()

	if err := WriteWAV16(&failingWriter{}, 8000, 1, []int16{1}); !errors.Is(err, errWriteFailed) {
		t.Errorf("header write error = %v, want %v", err, errWriteFailed)
	}
	if err := WriteWAV16(&failingWriter{after: 1}, 8000, 1, []int16{1}); !errors.Is(err, errWriteFailed) {
		t.Errorf("data write error = %v, want %v", err, errWriteFailed)
	}
}

func TestWriteFloat64(t *testing.T) {
	t.Parallel()

	samples := []float64{0, 0.5, -0.5, 1, -1, 2, -2}
	buf := new(bytes.Buffer)
	if err := WriteFloat64(buf, 22050, 1, samples); err != nil {
		t.Fatalf("WriteFloat64() error = %v", err)
	}

	data := buf.Bytes()[headerSize:]
	want := []int16{0, 16383, -16383, 32767, -32767, 32767, -32767}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(data[i*2:]))
		// Allow one step of rounding difference
		if d := int(got) - int(w); d < -1 || d > 1 {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}

	if err := WriteFloat64(new(bytes.Buffer), 8000, 2, []float64{0.1}); !errors.Is(err, ErrPartialFrame) {
		t.Errorf("WriteFloat64(partial frame) error = %v, want %v", err, ErrPartialFrame)
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 16000)
	buf := new(bytes.Buffer)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		buf.Reset()
		_ = WriteWAV16(buf, 16000, 1, samples)
	}
}

func BenchmarkWriteFloat64(b *testing.B) {
	samples := make([]float64, 32000)
	buf := new(bytes.Buffer)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		buf.Reset()
		_ = WriteFloat64(buf, 16000, 2, samples)
	}
}
