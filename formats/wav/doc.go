// SPDX-License-Identifier: EPL-2.0

// Package wav provides a WAV demuxer and a 16-bit PCM WAV writer.
//
// Reading is done with github.com/go-audio/wav. The demuxer accepts integer
// PCM at 16, 24 or 32 bits and publishes one audio stream whose codec is the
// matching raw PCM codec of the pcm package (pcm_s16le, pcm_s24le,
// pcm_s32le).
//
// # Demuxing WAV Files
//
//	reg := audio.NewRegistry()
//	reg.RegisterDemuxer(wav.Demuxer{})
//	for _, c := range pcm.Codecs() {
//	    reg.RegisterCodec(c)
//	}
//	container, err := reg.OpenInput("audio.wav")
//
// # Writing WAV Files
//
// WriteWAV16 writes interleaved int16 samples, WriteFloat64 converts
// interleaved float64 samples in [-1.0, 1.0] first:
//
//	file, _ := os.Create("output.wav")
//	err := wav.WriteFloat64(file, 44100, 2, buf.Samples)
//
// # Error Handling
//
// The package defines several error types:
//   - ErrNotWavFile: The input is not a valid WAV file
//   - ErrOnlyPCMSupported: The format tag is not integer PCM
//   - ErrUnsupportedBitDepth: Bit depth other than 16, 24 or 32
//
// # File Format
//
// WAV files consist of:
//   - RIFF header (12 bytes)
//   - fmt chunk (24 bytes): audio format, sample rate, channels, bit depth
//   - data chunk: actual audio samples
package wav
