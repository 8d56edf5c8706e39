// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"errors"
	"io"
	"maps"
	"sync"

	"github.com/ik5/scoff/audio"
)

// Handle kinds counted by a Tracker.
const (
	KindContainer = "container"
	KindDecoder   = "decoder"
	KindResampler = "resampler"
	KindFrame     = "frame"
)

// Magic starts every file the fake Demuxer recognises.
var Magic = []byte("FAKEMEDIA")

var (
	ErrFakeDecode = errors.New("fake decode failure")
	ErrFakeRead   = errors.New("fake read failure")
)

// Tracker counts acquired and released collaborator handles.
type Tracker struct {
	mtx      sync.Mutex
	acquired map[string]int
	released map[string]int
}

func NewTracker() *Tracker {
	return &Tracker{
		acquired: make(map[string]int),
		released: make(map[string]int),
	}
}

func (t *Tracker) Acquire(kind string) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.acquired[kind]++
}

func (t *Tracker) Release(kind string) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.released[kind]++
}

func (t *Tracker) Acquired(kind string) int {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.acquired[kind]
}

func (t *Tracker) Released(kind string) int {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.released[kind]
}

// Unbalanced returns acquired minus released for every kind where they differ.
func (t *Tracker) Unbalanced() map[string]int {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	out := make(map[string]int)
	kinds := maps.Clone(t.acquired)
	maps.Copy(kinds, t.released)
	for k := range kinds {
		if d := t.acquired[k] - t.released[k]; d != 0 {
			out[k] = d
		}
	}
	return out
}

// Input scripts what the fake collaborators report.
type Input struct {
	Streams []audio.Stream
	Packets []audio.Packet

	OpenErr  error
	ProbeErr error
	// ReadErr replaces io.EOF once Packets are exhausted.
	ReadErr error
	// NilPacket makes ReadPacket return a nil packet and nil error once
	// Packets are exhausted.
	NilPacket bool

	CodecOpenErr  error
	FrameAllocErr error
	// DecodeErrAt fails the Decode call with that zero-based index.
	DecodeErrAt map[int]error
	// Buffered makes the Decode call with that index produce no frame.
	Buffered map[int]bool
}

// AudioStream describes a PCM audio stream with the fake codec id.
func AudioStream(index, sampleRate, channels int, format audio.SampleFormat) audio.Stream {
	return audio.Stream{
		Index:     index,
		MediaType: audio.MediaTypeAudio,
		Codec: audio.CodecParameters{
			CodecID:       CodecFake,
			SampleRate:    sampleRate,
			Channels:      channels,
			Layout:        audio.DefaultLayout(channels),
			Format:        format,
			BitsPerSample: format.BytesPerSample() * 8,
		},
	}
}

// Demuxer recognises files starting with Magic and serves Input.
type Demuxer struct {
	Input   *Input
	Tracker *Tracker
}

func (Demuxer) Name() string         { return "fake" }
func (Demuxer) Extensions() []string { return []string{"fake"} }

func (Demuxer) Probe(header []byte) bool {
	return bytes.HasPrefix(header, Magic)
}

func (d Demuxer) Open(r io.ReadSeeker) (audio.Container, error) {
	if d.Input.OpenErr != nil {
		return nil, d.Input.OpenErr
	}
	d.Tracker.Acquire(KindContainer)
	return &Container{in: d.Input, tr: d.Tracker}, nil
}

type Container struct {
	in   *Input
	tr   *Tracker
	next int
}

func (c *Container) FindStreamInfo() error { return c.in.ProbeErr }

func (c *Container) Streams() []audio.Stream { return c.in.Streams }

func (c *Container) ReadPacket() (*audio.Packet, error) {
	if c.next >= len(c.in.Packets) {
		if c.in.ReadErr != nil {
			return nil, c.in.ReadErr
		}
		if c.in.NilPacket {
			return nil, nil
		}
		return nil, io.EOF
	}
	pkt := c.in.Packets[c.next]
	c.next++
	return &pkt, nil
}

func (c *Container) Close() error {
	c.tr.Release(KindContainer)
	return nil
}

// CodecFake is the id served by Codec.
const CodecFake audio.CodecID = "fake_pcm"

// Codec opens Decoders that treat packets as PCM in the stream's format.
type Codec struct {
	Input   *Input
	Tracker *Tracker
}

func (Codec) ID() audio.CodecID { return CodecFake }

func (c Codec) Open(params audio.CodecParameters) (audio.Decoder, error) {
	if c.Input.CodecOpenErr != nil {
		return nil, c.Input.CodecOpenErr
	}
	c.Tracker.Acquire(KindDecoder)
	return &Decoder{params: params, in: c.Input, tr: c.Tracker}, nil
}

type Decoder struct {
	params audio.CodecParameters
	in     *Input
	tr     *Tracker
	calls  int
}

func (d *Decoder) SampleRate() int                  { return d.params.SampleRate }
func (d *Decoder) Channels() int                    { return d.params.Channels }
func (d *Decoder) Layout() audio.ChannelLayout      { return d.params.Layout }
func (d *Decoder) SampleFormat() audio.SampleFormat { return d.params.Format }

func (d *Decoder) NewFrame() (*audio.Frame, error) {
	if d.in.FrameAllocErr != nil {
		return nil, d.in.FrameAllocErr
	}
	d.tr.Acquire(KindFrame)
	return &audio.Frame{Channels: d.params.Channels, Format: d.params.Format}, nil
}

func (d *Decoder) ReleaseFrame(frame *audio.Frame) {
	if frame != nil {
		d.tr.Release(KindFrame)
	}
}

func (d *Decoder) Decode(pkt *audio.Packet, frame *audio.Frame) (bool, error) {
	idx := d.calls
	d.calls++

	if err, ok := d.in.DecodeErrAt[idx]; ok {
		return false, err
	}
	if d.in.Buffered[idx] {
		return false, nil
	}

	frame.Reset()
	frame.Channels = d.params.Channels
	frame.Format = d.params.Format
	frame.Data = append(frame.Data, pkt.Data...)
	frame.NumSamples = len(pkt.Data) / (d.params.Format.BytesPerSample() * d.params.Channels)
	return frame.NumSamples > 0, nil
}

func (d *Decoder) Close() error {
	d.tr.Release(KindDecoder)
	return nil
}

// Resampler wraps an audio.Resampler and counts it in a Tracker.
type Resampler struct {
	audio.Resampler
	tr            *Tracker
	initErr       error
	uninitialized bool
}

// NewResamplerFactory returns a constructor of tracked SwrResamplers.
// initErr makes Init fail; uninitialized makes IsInitialized report false.
func NewResamplerFactory(tr *Tracker, initErr error, uninitialized bool) func() audio.Resampler {
	return func() audio.Resampler {
		tr.Acquire(KindResampler)
		return &Resampler{
			Resampler:     audio.NewSwrResampler(),
			tr:            tr,
			initErr:       initErr,
			uninitialized: uninitialized,
		}
	}
}

func (r *Resampler) Init(spec audio.ResampleSpec) error {
	if r.initErr != nil {
		return r.initErr
	}
	return r.Resampler.Init(spec)
}

func (r *Resampler) IsInitialized() bool {
	return !r.uninitialized && r.Resampler.IsInitialized()
}

func (r *Resampler) Close() error {
	r.tr.Release(KindResampler)
	return r.Resampler.Close()
}

// Register adds the fake demuxer and codec for in to reg.
func Register(reg *audio.Registry, in *Input, tr *Tracker) {
	reg.RegisterDemuxer(Demuxer{Input: in, Tracker: tr})
	reg.RegisterCodec(Codec{Input: in, Tracker: tr})
}
