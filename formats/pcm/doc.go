// SPDX-License-Identifier: EPL-2.0

// Package pcm implements decoders for raw little-endian PCM packets.
//
// A packet is decoded by validating that it holds whole sample frames and
// copying it into an audio.Frame tagged with the codec's sample format:
//
//	codec := pcm.NewCodec(pcm.CodecS16LE, audio.SampleFormatS16)
//	dec, _ := codec.Open(stream.Codec)
//	frame, _ := dec.NewFrame()
//	got, err := dec.Decode(pkt, frame)
//
// The library backed demuxers of this module hand over packets that already
// hold PCM, so their codec ids (mp3, vorbis, flac) are served by this
// package too.
package pcm
