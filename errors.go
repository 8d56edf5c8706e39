// SPDX-License-Identifier: EPL-2.0

package scoff

import "errors"

var (
	ErrOpen           = errors.New("could not open input")
	ErrProbe          = errors.New("could not retrieve stream info")
	ErrNoAudioStream  = errors.New("no audio stream in input")
	ErrDecoderOpen    = errors.New("failed to open decoder")
	ErrResamplerInit  = errors.New("resampler has not been properly initialized")
	ErrFrameAlloc     = errors.New("error allocating the frame")
	ErrNilBuffer      = errors.New("output buffer is nil")
	ErrNotInitialized = errors.New("scoff.Init has not been called")
	ErrNotImplemented = errors.New("not implemented")
)
