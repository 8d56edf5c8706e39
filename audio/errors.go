// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize          = errors.New("dst size must be multiple of channels")
	ErrInvalidResampleSpec     = errors.New("invalid resample spec")
	ErrUnsupportedSampleFormat = errors.New("unsupported sample format")
	ErrResamplerNotInitialized = errors.New("resampler is not initialized")
	ErrFrameMismatch           = errors.New("frame does not match resampler input")
	ErrUnknownFormat           = errors.New("no demuxer recognises the input")
	ErrCodecNotFound           = errors.New("codec not found")
)
