// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteFile writes data to name inside dir and returns the full path.
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteFake writes a file the fake Demuxer recognises.
func WriteFake(tb testing.TB, dir string) string {
	tb.Helper()
	return WriteFile(tb, dir, "input.fake", append([]byte(nil), Magic...))
}

// WriteWAV encodes samples as integer PCM WAV at path.
func WriteWAV(tb testing.TB, path string, sampleRate, bitDepth, channels int, samples []int) {
	tb.Helper()

	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	if err := enc.Write(intBuffer(sampleRate, bitDepth, channels, samples)); err != nil {
		tb.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("finish %s: %v", path, err)
	}
}

// WriteAIFF encodes samples as AIFF at path.
func WriteAIFF(tb testing.TB, path string, sampleRate, bitDepth, channels int, samples []int) {
	tb.Helper()

	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := aiff.NewEncoder(f, sampleRate, bitDepth, channels)
	if err := enc.Write(intBuffer(sampleRate, bitDepth, channels, samples)); err != nil {
		tb.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("finish %s: %v", path, err)
	}
}

func intBuffer(sampleRate, bitDepth, channels int, samples []int) *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
}
