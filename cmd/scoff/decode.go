// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/ik5/scoff"
	"github.com/ik5/scoff/formats/wav"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type decodeFlags struct {
	output    string
	rate      int
	channels  int
	bitDepth  int
	pinStereo bool
}

func newDecodeCmd(a *app) *cobra.Command {
	var f decodeFlags

	cmd := &cobra.Command{
		Use:   "decode <input>",
		Short: "Decode an audio file and write it as WAV",
		Long: `Decode the first audio stream of <input>.

Without --output only the summary is printed. "-o -" writes a 16-bit WAV
to standard output.

Example:
  scoff decode speech.mp3 -o speech.wav --rate 16000 --channels 1
  scoff decode music.ogg --bit-depth 24 -o music.wav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDecode(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "WAV file to write, - for stdout")
	cmd.Flags().IntVar(&f.rate, "rate", 0, "output sample rate in Hz (-1 keeps the source rate)")
	cmd.Flags().IntVar(&f.channels, "channels", 0, "output channel count (-1 for stereo)")
	cmd.Flags().IntVar(&f.bitDepth, "bit-depth", 0, "output bit depth: 16, 24 or 32")
	cmd.Flags().BoolVar(&f.pinStereo, "pin-stereo", false, "always request a stereo layout")
	return cmd
}

func (a *app) runDecode(cmd *cobra.Command, input string, f decodeFlags) error {
	rate := a.cfg.Decode.SampleRate
	if cmd.Flags().Changed("rate") {
		rate = f.rate
	}
	channels := a.cfg.Decode.Channels
	if cmd.Flags().Changed("channels") {
		channels = f.channels
	}
	bitDepth := a.cfg.Output.BitDepth
	if cmd.Flags().Changed("bit-depth") {
		bitDepth = f.bitDepth
	}
	pinStereo := a.cfg.Decode.PinStereoLayout || f.pinStereo

	ex := scoff.NewExtractor(a.registry(),
		scoff.WithLogger(a.log),
		scoff.WithPinnedStereoLayout(pinStereo))

	buf := scoff.NewAudioBuffer(rate, channels)
	start := time.Now()
	if err := ex.Decode(input, buf); err != nil {
		return err
	}
	defer buf.Free()
	elapsed := time.Since(start)

	if f.output != "" {
		if err := writeOutput(cmd.OutOrStdout(), f.output, buf, bitDepth); err != nil {
			return err
		}
		a.log.Info("wrote output", zap.String("path", f.output), zap.Int("bit_depth", bitDepth))
	}

	// The WAV itself goes to stdout with "-o -"
	summary := cmd.OutOrStdout()
	if f.output == "-" {
		summary = cmd.ErrOrStderr()
	}
	printSummary(summary, input, f.output, buf, elapsed)
	return nil
}

func writeOutput(stdout io.Writer, path string, buf *scoff.AudioBuffer, bitDepth int) error {
	if path == "-" {
		if bitDepth != 16 {
			return fmt.Errorf("standard output only takes 16-bit WAV, got %d", bitDepth)
		}
		return wav.WriteFloat64(stdout, buf.SampleRate, buf.Channels, buf.Samples)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if bitDepth == 16 {
		err = wav.WriteFloat64(out, buf.SampleRate, buf.Channels, buf.Samples)
	} else {
		err = wav.Encode(out, buf.SampleRate, buf.Channels, bitDepth, buf.Samples)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func printSummary(w io.Writer, input, output string, buf *scoff.AudioBuffer, elapsed time.Duration) {
	label := color.New(color.FgCyan)
	value := color.New(color.FgGreen, color.Bold)

	duration := time.Duration(0)
	if buf.SampleRate > 0 {
		duration = time.Duration(buf.Frames()) * time.Second / time.Duration(buf.SampleRate)
	}

	type row struct{ name, value string }
	rows := []row{
		{"input", input},
		{"sample rate", fmt.Sprintf("%d Hz", buf.SampleRate)},
		{"channels", fmt.Sprintf("%d", buf.Channels)},
		{"frames", fmt.Sprintf("%d", buf.Frames())},
		{"duration", duration.String()},
		{"decoded in", elapsed.Round(time.Millisecond).String()},
	}
	if output != "" && output != "-" {
		rows = append(rows, row{"output", output})
	}

	for _, r := range rows {
		label.Fprintf(w, "%-12s ", r.name+":")
		value.Fprintln(w, r.value)
	}

	if buf.SampleCount == 0 {
		color.New(color.FgYellow).Fprintln(w, "warning: no samples were decoded")
	}
}
