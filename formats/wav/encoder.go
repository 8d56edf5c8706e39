// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/scoff/utils"
)

// encodeChunkFrames bounds the IntBuffer handed to the encoder per write.
const encodeChunkFrames = 4096

// Encode writes interleaved samples in [-1, 1] as integer PCM of bitDepth
// 16, 24 or 32 bits. The encoder patches chunk sizes on completion, so w
// must be seekable; use WriteFloat64 for plain writers.
func Encode(w io.WriteSeeker, sampleRate, channels, bitDepth int, samples []float64) error {
	if channels < 1 {
		return ErrInvalidChannels
	}
	if len(samples)%channels != 0 {
		return ErrPartialFrame
	}
	if _, err := sampleFormat(bitDepth); err != nil {
		return err
	}

	enc := gowav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, 0, min(len(samples), encodeChunkFrames*channels)),
		SourceBitDepth: bitDepth,
	}

	step := encodeChunkFrames * channels
	for i := 0; i < len(samples); i += step {
		buf.Data = buf.Data[:0]
		for _, s := range samples[i:min(i+step, len(samples))] {
			buf.Data = append(buf.Data, utils.FloatToInt(s, bitDepth))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("wav encode: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav encode: %w", err)
	}
	return nil
}
