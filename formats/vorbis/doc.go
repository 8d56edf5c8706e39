// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides an Ogg Vorbis demuxer.
//
// This package uses github.com/jfreymuth/oggvorbis to read Ogg Vorbis files.
// Vorbis is a free, open-source lossy audio compression format.
//
// The oggvorbis reader decodes while it reads, so packets carry interleaved
// float32 little-endian PCM and Codec only unpacks them:
//
//	reg.RegisterDemuxer(vorbis.Demuxer{})
//	reg.RegisterCodec(vorbis.Codec())
//
// Stream parameters:
//   - Codec id: "vorbis"
//   - Sample format: flt
//   - Channels and sample rate: as stored in the identification header
package vorbis
