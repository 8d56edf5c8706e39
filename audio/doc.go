// SPDX-License-Identifier: EPL-2.0

// Package audio provides the building blocks of the decoding pipeline.
//
// The pipeline is split the same way a media framework splits it:
//   - Demuxer recognises a container format and opens it as a Container
//   - Container exposes Streams and hands out Packets
//   - Codec opens a Decoder for one stream's CodecParameters
//   - Decoder turns Packets into Frames of raw PCM
//   - Resampler converts Frames to interleaved float64 at the requested
//     rate and channel count
//
// # Registry
//
// A Registry maps names and codec ids to implementations:
//
//	reg := audio.NewRegistry()
//	reg.RegisterDemuxer(wav.Demuxer{})
//	reg.RegisterCodec(pcm.NewCodec(pcm.CodecS16LE, audio.SampleFormatS16))
//
//	in, err := reg.OpenInput("speech.wav")
//
// OpenInput sniffs the first bytes of the file. A demuxer claiming the file
// extension is asked first, every other demuxer is probed afterwards.
//
// # Resampling
//
// SwrResampler interpolates with a Catmull-Rom cubic and low-pass filters the
// input when downsampling. It is streaming: two frames of look-ahead stay
// buffered between calls to Convert and are only emitted by Flush.
//
//	swr := audio.NewSwrResampler()
//	err := swr.Init(audio.ResampleSpec{
//	    InRate: 44100, InLayout: audio.LayoutStereo, InFormat: audio.SampleFormatS16,
//	    OutRate: 16000, OutLayout: audio.LayoutMono, OutFormat: audio.SampleFormatF64,
//	})
//	dst := make([]float64, swr.OutSamples(frame.NumSamples)*1)
//	n, err := swr.Convert(dst, frame)
//
// Channel layouts are checked against channel counts; a stereo layout with a
// mono count is rejected by Init.
//
// # Sample Format
//
// Samples leave the resampler as float64 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Integer input is scaled by its full range, so s16 -32768 becomes -1.0.
//
// # Error Handling
//
// Container.ReadPacket returns io.EOF when no more data is available. All
// other failures are reported through the sentinel errors of this package
// wrapped with context, and can be matched with errors.Is.
package audio
