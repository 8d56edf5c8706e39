// SPDX-License-Identifier: EPL-2.0

// Package config loads the scoff command settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the file.
const (
	EnvSampleRate = "SCOFF_SAMPLE_RATE"
	EnvChannels   = "SCOFF_CHANNELS"
	EnvLogLevel   = "SCOFF_LOG_LEVEL"
)

var ErrInvalid = errors.New("invalid configuration")

// Config represents the complete command configuration
type Config struct {
	Decode DecodeConfig `yaml:"decode"`
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
}

// DecodeConfig holds the requested output format. -1 leaves a value to the
// decoder.
type DecodeConfig struct {
	SampleRate      int  `yaml:"sample_rate"`
	Channels        int  `yaml:"channels"`
	PinStereoLayout bool `yaml:"pin_stereo_layout"`
	PacketFrames    int  `yaml:"packet_frames"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type OutputConfig struct {
	BitDepth int `yaml:"bit_depth"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Decode: DecodeConfig{
			SampleRate:   -1,
			Channels:     -1,
			PacketFrames: 4096,
		},
		Log:    LogConfig{Level: "info"},
		Output: OutputConfig{BitDepth: 16},
	}
}

// Load reads path on top of Default, then applies the environment. An empty
// path skips the file. A .env file in the working directory is loaded first
// when present; variables already set win over it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for key, dst := range map[string]*int{
		EnvSampleRate: &c.Decode.SampleRate,
		EnvChannels:   &c.Decode.Channels,
	} {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, key, v, err)
		}
		*dst = n
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate rejects values the decoder cannot honour.
func (c *Config) Validate() error {
	switch {
	case c.Decode.SampleRate == 0 || c.Decode.SampleRate < -1:
		return fmt.Errorf("%w: decode.sample_rate %d", ErrInvalid, c.Decode.SampleRate)
	case c.Decode.Channels == 0 || c.Decode.Channels < -1:
		return fmt.Errorf("%w: decode.channels %d", ErrInvalid, c.Decode.Channels)
	case c.Decode.PacketFrames < 0:
		return fmt.Errorf("%w: decode.packet_frames %d", ErrInvalid, c.Decode.PacketFrames)
	}

	switch c.Output.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: output.bit_depth %d", ErrInvalid, c.Output.BitDepth)
	}
	return nil
}
