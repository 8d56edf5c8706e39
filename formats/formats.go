// SPDX-License-Identifier: EPL-2.0

// Package formats registers every demuxer and codec of this module.
package formats

import (
	"github.com/ik5/scoff/audio"
	"github.com/ik5/scoff/formats/aiff"
	"github.com/ik5/scoff/formats/flac"
	"github.com/ik5/scoff/formats/mp3"
	"github.com/ik5/scoff/formats/pcm"
	"github.com/ik5/scoff/formats/vorbis"
	"github.com/ik5/scoff/formats/wav"
)

// Options tune the registered demuxers.
type Options struct {
	// PacketFrames is the packet size in sample frames for the demuxers
	// that choose their own packetisation. Zero keeps each default.
	PacketFrames int
}

// RegisterAll adds all demuxers and codecs to reg.
func RegisterAll(reg *audio.Registry, opts Options) {
	for _, c := range pcm.Codecs() {
		reg.RegisterCodec(c)
	}
	reg.RegisterCodec(mp3.Codec())
	reg.RegisterCodec(vorbis.Codec())
	reg.RegisterCodec(flac.Codec())

	reg.RegisterDemuxer(wav.Demuxer{PacketFrames: opts.PacketFrames})
	reg.RegisterDemuxer(aiff.Demuxer{PacketFrames: opts.PacketFrames})
	reg.RegisterDemuxer(flac.Demuxer{})
	reg.RegisterDemuxer(vorbis.Demuxer{PacketFrames: opts.PacketFrames})
	// MPEG frame sync is the weakest magic, probe it last
	reg.RegisterDemuxer(mp3.Demuxer{PacketFrames: opts.PacketFrames})
}
