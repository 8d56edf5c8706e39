//go:build integration

// SPDX-License-Identifier: EPL-2.0

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/ik5/scoff"
	"github.com/ik5/scoff/audio"
	"github.com/ik5/scoff/formats"
	"github.com/ik5/scoff/internal/audiotest"
)

// decodeContext holds test state for decode scenarios
type decodeContext struct {
	dir     string
	path    string
	input   *audiotest.Input
	tracker *audiotest.Tracker
	request [2]int
	buf     *scoff.AudioBuffer
	err     error
}

var shared *decodeContext

func InitializeDecodeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "scoff-features")
		if err != nil {
			return c, err
		}
		shared = &decodeContext{dir: dir, tracker: audiotest.NewTracker()}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if shared != nil {
			os.RemoveAll(shared.dir)
		}
		shared = nil
		return c, nil
	})

	ctx.Step(`^a (\d+) Hz (mono|stereo) WAV file lasting (\d+) seconds?$`, aWAVFile)
	ctx.Step(`^a path that does not exist$`, aPathThatDoesNotExist)
	ctx.Step(`^a media file whose only stream is video$`, aVideoOnlyFile)
	ctx.Step(`^a media file whose (first|fourth) packet is corrupt$`, aCorruptFile)
	ctx.Step(`^a media file whose decoder cannot allocate a frame$`, aFrameAllocFailure)
	ctx.Step(`^I decode it with sample rate "([^"]*)" and channels "([^"]*)"$`, iDecodeIt)
	ctx.Step(`^decoding succeeds$`, decodingSucceeds)
	ctx.Step(`^decoding fails with "([^"]*)"$`, decodingFailsWith)
	ctx.Step(`^the buffer has sample rate (\d+) and (\d+) channels$`, theBufferHasFormat)
	ctx.Step(`^the buffer holds about (\d+) frames$`, theBufferHoldsAboutFrames)
	ctx.Step(`^the buffer holds no samples$`, theBufferHoldsNoSamples)
	ctx.Step(`^the buffer is untouched$`, theBufferIsUntouched)
	ctx.Step(`^every collaborator handle is released$`, everyHandleIsReleased)
}

func aWAVFile(rate int, layout string, seconds int) error {
	channels := 1
	if layout == "stereo" {
		channels = 2
	}

	tone := audiotest.Interleave(audiotest.Sine(rate, 440), channels, rate*seconds)
	shared.path = filepath.Join(shared.dir, "tone.wav")
	return writeWAV(shared.path, rate, channels, audiotest.Ints(tone, 16))
}

func aPathThatDoesNotExist() error {
	shared.path = filepath.Join(shared.dir, "missing.wav")
	return nil
}

// fakeFile points the scenario at a file served by the fake collaborators.
func fakeFile(in *audiotest.Input) error {
	shared.input = in
	shared.path = filepath.Join(shared.dir, "input.fake")
	return os.WriteFile(shared.path, audiotest.Magic, 0o600)
}

func toneInput(frames, perPacket int) *audiotest.Input {
	samples := audiotest.Interleave(audiotest.Sine(16000, 440), 1, frames)
	return &audiotest.Input{
		Streams: []audio.Stream{audiotest.AudioStream(0, 16000, 1, audio.SampleFormatS16)},
		Packets: audiotest.Packetize(0, audiotest.Encode(samples, audio.SampleFormatS16), 2, perPacket),
	}
}

func aVideoOnlyFile() error {
	return fakeFile(&audiotest.Input{
		Streams: []audio.Stream{{Index: 0, MediaType: audio.MediaTypeVideo}},
	})
}

func aCorruptFile(which string) error {
	in := toneInput(10000, 1000)
	at := 0
	if which == "fourth" {
		at = 3
	}
	in.DecodeErrAt = map[int]error{at: audiotest.ErrFakeDecode}
	return fakeFile(in)
}

func aFrameAllocFailure() error {
	in := toneInput(1000, 100)
	in.FrameAllocErr = fmt.Errorf("out of memory")
	return fakeFile(in)
}

func parseRequest(v string) (int, error) {
	if v == "unset" {
		return scoff.Unset, nil
	}
	return strconv.Atoi(v)
}

func iDecodeIt(rate, channels string) error {
	r, err := parseRequest(rate)
	if err != nil {
		return err
	}
	c, err := parseRequest(channels)
	if err != nil {
		return err
	}
	shared.request = [2]int{r, c}

	reg := audio.NewRegistry()
	var opts []scoff.Option
	if shared.input != nil {
		audiotest.Register(reg, shared.input, shared.tracker)
		opts = append(opts, scoff.WithResampler(audiotest.NewResamplerFactory(shared.tracker, nil, false)))
	} else {
		formats.RegisterAll(reg, formats.Options{})
	}

	shared.buf = scoff.NewAudioBuffer(r, c)
	shared.err = scoff.NewExtractor(reg, opts...).Decode(shared.path, shared.buf)
	return nil
}

func decodingSucceeds() error {
	if shared.err != nil {
		return fmt.Errorf("decode failed: %w", shared.err)
	}
	return nil
}

func decodingFailsWith(msg string) error {
	if shared.err == nil {
		return fmt.Errorf("decode succeeded, expected an error containing %q", msg)
	}
	if !strings.Contains(shared.err.Error(), msg) {
		return fmt.Errorf("error %q does not contain %q", shared.err, msg)
	}
	return nil
}

func theBufferHasFormat(rate, channels int) error {
	if shared.buf.SampleRate != rate || shared.buf.Channels != channels {
		return fmt.Errorf("buffer is %d Hz x %d, want %d Hz x %d",
			shared.buf.SampleRate, shared.buf.Channels, rate, channels)
	}
	return nil
}

func theBufferHoldsAboutFrames(frames int) error {
	got := shared.buf.Frames()
	if d := got - frames; d < -2 || d > 2 {
		return fmt.Errorf("buffer holds %d frames, want about %d", got, frames)
	}
	if shared.buf.SampleCount != got*shared.buf.Channels {
		return fmt.Errorf("sample count %d is not %d frames of %d channels",
			shared.buf.SampleCount, got, shared.buf.Channels)
	}
	return nil
}

func theBufferHoldsNoSamples() error {
	if shared.buf.SampleCount != 0 || len(shared.buf.Samples) != 0 {
		return fmt.Errorf("buffer holds %d samples", shared.buf.SampleCount)
	}
	return nil
}

func theBufferIsUntouched() error {
	b := shared.buf
	if b.SampleRate != shared.request[0] || b.Channels != shared.request[1] || b.Samples != nil || b.SampleCount != 0 {
		return fmt.Errorf("buffer changed on failure: %+v", b)
	}
	return nil
}

func everyHandleIsReleased() error {
	if leaked := shared.tracker.Unbalanced(); len(leaked) > 0 {
		return fmt.Errorf("unreleased handles: %v", leaked)
	}
	return nil
}
