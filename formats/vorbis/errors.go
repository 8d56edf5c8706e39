// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	ErrNotProbed       = errors.New("stream info has not been read")
	ErrInvalidChannels = errors.New("invalid channel count")
	ErrNoProgress      = errors.New("vorbis reader returned no data")
)
