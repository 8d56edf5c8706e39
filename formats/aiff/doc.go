// SPDX-License-Identifier: EPL-2.0

// Package aiff provides an AIFF (Audio Interchange File Format) demuxer.
//
// This package uses github.com/go-audio/aiff to read AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
// Currently supported:
//   - AIFF and uncompressed AIFF-C
//   - PCM 16, 24 and 32-bit
//   - Mono and multi-channel
//   - Any sample rate
//
// # Demuxing AIFF Files
//
//	reg := audio.NewRegistry()
//	reg.RegisterDemuxer(aiff.Demuxer{})
//	for _, c := range pcm.Codecs() {
//	    reg.RegisterCodec(c)
//	}
//	container, err := reg.OpenInput("audio.aif")
//	if err != nil {
//	    // Handle error
//	}
//	err = container.FindStreamInfo()
//
// The stream's codec is the raw PCM codec matching the bit depth. go-audio
// converts the big-endian samples on read, so packets are little-endian.
//
// # Error Handling
//
//   - ErrNotAiffFile: The input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: Bit depth other than 16, 24 or 32
//   - ErrUnsupportedAiffLayout: Missing or invalid COMM chunk
package aiff
