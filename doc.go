// SPDX-License-Identifier: EPL-2.0

// Package scoff decodes an audio file into one flat slice of resampled
// float64 samples.
//
// Container parsing, decoding and resampling are done by collaborators
// declared in the audio subpackage: a Demuxer opens the file as a Container,
// a Codec opens a Decoder for the chosen stream and a Resampler converts the
// decoded frames. scoff ties them together:
//
//  1. open the input and select the first audio stream
//  2. open a decoder for the stream's codec
//  3. configure the resampler for the requested rate and channel count
//  4. read packets, decode, resample and append until the input is drained
//
// # Quick Start
//
//	scoff.Init()
//
//	buf := scoff.NewAudioBuffer(scoff.Unset, scoff.Unset)
//	if err := scoff.DecodeAudioFile("song.flac", buf); err != nil {
//	    // Handle error
//	}
//	defer buf.Free()
//
//	// buf.Samples is interleaved stereo at the source sample rate
//
// # Defaults
//
// A SampleRate of Unset adopts the rate of the source stream. A Channels
// value of Unset resolves to two channels, whatever the source carries.
//
// # Supported Formats
//
// Init registers:
//   - WAV (16/24/32-bit PCM) via formats/wav
//   - AIFF (16/24/32-bit PCM) via formats/aiff
//   - FLAC via formats/flac
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// # Best-effort Extraction
//
// A packet that fails to decode ends extraction without an error; the
// samples collected up to that point are returned. Callers that need to
// know the output is complete should compare the decoded length with the
// duration they expect.
//
// # Custom Collaborators
//
// NewExtractor accepts any audio.Registry, so demuxers and codecs can be
// replaced, e.g. with fakes in tests:
//
//	reg := audio.NewRegistry()
//	reg.RegisterDemuxer(myDemuxer)
//	reg.RegisterCodec(myCodec)
//	ex := scoff.NewExtractor(reg, scoff.WithLogger(logger))
//	err := ex.Decode(path, buf)
package scoff
