// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	ErrCodecMismatch     = errors.New("stream codec does not match decoder")
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrInvalidChannels   = errors.New("invalid channel count")
	ErrFormatMismatch    = errors.New("stream sample format does not match decoder")
	ErrTruncatedPacket   = errors.New("packet holds a partial sample frame")
	ErrDecoderClosed     = errors.New("decoder is closed")
)
