// SPDX-License-Identifier: EPL-2.0

package scoff

import (
	"sync"
	"sync/atomic"

	"github.com/ik5/scoff/audio"
	"github.com/ik5/scoff/formats"
)

var (
	initOnce        sync.Once
	defaultRegistry atomic.Pointer[audio.Registry]
)

// Init registers every bundled demuxer and codec in the process-wide
// registry. Call it once before DecodeAudioFile; later calls are no-ops.
func Init() {
	initOnce.Do(func() {
		reg := audio.NewRegistry()
		formats.RegisterAll(reg, formats.Options{})
		defaultRegistry.Store(reg)
	})
}

// DefaultRegistry returns the registry filled by Init, or nil before Init.
func DefaultRegistry() *audio.Registry {
	return defaultRegistry.Load()
}

// DecodeAudioFile decodes the first audio stream of path into out using the
// registry filled by Init. See Extractor.Decode.
func DecodeAudioFile(path string, out *AudioBuffer) error {
	return decodeWith(DefaultRegistry(), path, out)
}

func decodeWith(reg *audio.Registry, path string, out *AudioBuffer) error {
	if reg == nil {
		return ErrNotInitialized
	}
	return NewExtractor(reg).Decode(path, out)
}

// EncodeVideoFile is reserved for writing data into a video container.
func EncodeVideoFile(path string, data *AudioBuffer) error {
	return ErrNotImplemented
}
