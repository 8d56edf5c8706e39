package aiff

import "errors"

var (
	ErrNotAiffFile         = errors.New("not an AIFF file")
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")

	// ErrUnsupportedAiffLayout covers a missing COMM chunk or a channel count
	// below one.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
	ErrNotProbed             = errors.New("stream info has not been read")
)
