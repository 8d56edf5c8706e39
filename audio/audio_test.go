package audio

import "testing"

func TestMediaType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		m    MediaType
		want string
	}{
		{MediaTypeAudio, "audio"},
		{MediaTypeVideo, "video"},
		{MediaTypeData, "data"},
		{MediaTypeSubtitle, "subtitle"},
		{MediaTypeUnknown, "unknown"},
		{MediaType(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("MediaType(%d).String() = %q, want %q", int(tt.m), got, tt.want)
		}
	}
}

func TestFrame_Reset(t *testing.T) {
	t.Parallel()

	frame := f64Frame(2, []float64{0.1, 0.2, 0.3, 0.4})
	capBefore := cap(frame.Data)

	frame.Reset()

	if frame.NumSamples != 0 || len(frame.Data) != 0 {
		t.Errorf("Reset() left %d samples, %d bytes", frame.NumSamples, len(frame.Data))
	}
	if cap(frame.Data) != capBefore {
		t.Errorf("Reset() cap = %d, want %d", cap(frame.Data), capBefore)
	}
	if frame.Channels != 2 || frame.Format != SampleFormatF64 {
		t.Errorf("Reset() changed layout to %d ch %s", frame.Channels, frame.Format)
	}
}
