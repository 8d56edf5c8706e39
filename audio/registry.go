// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// probeSize is how many leading bytes are handed to Demuxer.Probe.
const probeSize = 64

// Registry holds the demuxers and codecs known to the process.
type Registry struct {
	demuxers map[string]Demuxer
	order    []string
	codecs   map[CodecID]Codec

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		demuxers: make(map[string]Demuxer),
		codecs:   make(map[CodecID]Codec),
		mtx:      &sync.Mutex{},
	}
}

// RegisterDemuxer adds d under d.Name(), replacing a previous one.
func (r *Registry) RegisterDemuxer(d Demuxer) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	name := d.Name()
	if _, ok := r.demuxers[name]; !ok {
		r.order = append(r.order, name)
	}
	r.demuxers[name] = d
}

// RegisterCodec adds c under c.ID(), replacing a previous one.
func (r *Registry) RegisterCodec(c Codec) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[c.ID()] = c
}

func (r *Registry) Demuxer(name string) (Demuxer, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.demuxers[name]
	return d, ok
}

// FindDecoder returns the codec registered for id.
func (r *Registry) FindDecoder(id CodecID) (Codec, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	c, ok := r.codecs[id]
	return c, ok
}

// Demuxers returns the registered demuxers in registration order.
func (r *Registry) Demuxers() []Demuxer {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]Demuxer, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.demuxers[name])
	}
	return out
}

// Codecs returns the registered codec ids, sorted.
func (r *Registry) Codecs() []CodecID {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]CodecID, 0, len(r.codecs))
	for id := range r.codecs {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Detect picks a demuxer for header. A demuxer claiming ext is tried first,
// then every demuxer is probed in registration order.
func (r *Registry) Detect(ext string, header []byte) (Demuxer, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	demuxers := r.Demuxers()

	for _, d := range demuxers {
		if slices.Contains(d.Extensions(), ext) && d.Probe(header) {
			return d, true
		}
	}
	for _, d := range demuxers {
		if d.Probe(header) {
			return d, true
		}
	}
	return nil, false
}

// fileContainer closes the underlying file together with the container.
type fileContainer struct {
	Container
	f *os.File
}

func (c *fileContainer) Close() error {
	err := c.Container.Close()
	if cerr := c.f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w", cerr)
	}
	return err
}

// OpenInput opens path and hands it to the matching demuxer. Stream
// parameters are not known until Container.FindStreamInfo is called.
func (r *Registry) OpenInput(path string) (Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	header := make([]byte, probeSize)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("%w", err)
	}

	d, ok := r.Detect(filepath.Ext(path), header[:n])
	if !ok {
		f.Close()
		return nil, ErrUnknownFormat
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w", err)
	}

	c, err := d.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", d.Name(), err)
	}

	return &fileContainer{Container: c, f: f}, nil
}
