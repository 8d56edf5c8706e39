// SPDX-License-Identifier: EPL-2.0

// Package flac provides a FLAC demuxer backed by github.com/mewkiz/flac.
//
// Every FLAC frame is returned as one packet of interleaved s32 samples,
// left-justified so that full scale is the same for any source bit depth.
package flac
