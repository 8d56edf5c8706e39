// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides an MP3 demuxer.
//
// This package uses github.com/hajimehoshi/go-mp3 to read MP3 files. The
// library decodes while it reads, so every packet the container returns
// already holds 16-bit little-endian stereo PCM; Codec unpacks it into
// frames.
//
// # Registering
//
//	reg := audio.NewRegistry()
//	reg.RegisterDemuxer(mp3.Demuxer{})
//	reg.RegisterCodec(mp3.Codec())
//
// # Output Format
//
// MP3 stream parameters:
//   - Codec id: "mp3"
//   - Sample format: s16
//   - Channels: 2 (go-mp3 upmixes mono files)
//   - Sample rate: Depends on the MP3 file (typically 44.1kHz or 48kHz)
//
// # Packets
//
// A packet holds DefaultPacketFrames sample frames (one MPEG-1 Layer III
// frame) unless Demuxer.PacketFrames says otherwise. The last packet may be
// shorter.
//
// # Limitations
//
// Note:
//   - MP3 writing is not supported (decoding only)
//   - Output is always stereo
//   - Seeking is not supported
package mp3
