// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/ik5/scoff/audio"
	"github.com/ik5/scoff/formats"
	"github.com/ik5/scoff/internal/config"
	"github.com/ik5/scoff/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what the persistent pre-run resolved for the subcommands.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "scoff",
		Short: "Decode audio files into resampled PCM",
		Long: `scoff decodes the first audio stream of a WAV, AIFF, FLAC, MP3 or Ogg Vorbis
file, converts it to the requested sample rate and channel count and writes
the result as integer PCM WAV.

Settings come from an optional YAML file (--config), then from the
SCOFF_SAMPLE_RATE, SCOFF_CHANNELS and SCOFF_LOG_LEVEL environment variables
(a .env file in the working directory is honoured), then from flags.

Example:
  scoff decode song.flac -o song.wav --rate 16000 --channels 1`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Sync() },
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file")

	root.AddCommand(newDecodeCmd(a), newFormatsCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) registry() *audio.Registry {
	reg := audio.NewRegistry()
	formats.RegisterAll(reg, formats.Options{PacketFrames: a.cfg.Decode.PacketFrames})
	return reg
}
