// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotProbed           = errors.New("stream info has not been read")
	ErrInvalidChannels     = errors.New("invalid channel count")
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")
	ErrChannelMismatch     = errors.New("frame channel count differs from stream")
)
