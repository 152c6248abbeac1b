// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the main application configuration structure, loaded from YAML.
type Config struct {
	LogLevel  string          `yaml:"log_level"` // Logging level (e.g., "debug", "info", "warn", "error").
	Radio     RadioConfig     `yaml:"radio"`     // Radio front end settings.
	Capture   CaptureConfig   `yaml:"capture"`   // Acquisition loop settings.
	DCBlock   DCBlockConfig   `yaml:"dcblock"`   // DC removal filter settings.
	STFT      STFTConfig      `yaml:"stft"`      // Spectral analysis settings.
	Render    RenderConfig    `yaml:"render"`    // Spectrogram image output settings.
	Transport TransportConfig `yaml:"transport"` // Result hand-off settings.
}

// RadioConfig selects and parameterizes the radio front end driver.
type RadioConfig struct {
	Driver    string  `yaml:"driver"`     // Front end driver name (currently: "sim").
	GainDB    float64 `yaml:"gain_db"`    // Receive gain in dB.
	ChunkSize int     `yaml:"chunk_size"` // Maximum samples delivered per stream read.
}

// CaptureConfig holds settings for the acquisition loop.
type CaptureConfig struct {
	StallLimit int `yaml:"stall_limit"` // Consecutive empty reads tolerated before aborting.
}

// DCBlockConfig holds settings for the DC removal high-pass filter.
type DCBlockConfig struct {
	CutoffHz float64 `yaml:"cutoff_hz"` // Filter -3dB point in Hz, independent of sample rate.
}

// STFTConfig holds the spectral analysis design targets.
type STFTConfig struct {
	AttenuationDB float64 `yaml:"attenuation_db"` // Target side-lobe attenuation in dB.
	ResolutionHz  float64 `yaml:"resolution_hz"`  // Target frequency resolution in Hz.
}

// RenderConfig holds settings for the spectrogram heatmap output.
type RenderConfig struct {
	Output string `yaml:"output"` // Path of the PNG file to write.
}

// TransportConfig holds settings for publishing results over the network.
type TransportConfig struct {
	WSEnabled bool   `yaml:"ws_enabled"` // Enable serving spectrogram frames over WebSocket.
	WSListen  string `yaml:"ws_listen"`  // Listen address for the WebSocket server (e.g., ":8080").
}

// Load loads configuration from a YAML file specified by path. If path is
// empty, it searches default locations ("config.yaml"). If no file is found,
// it uses built-in defaults. After loading defaults or from file, it applies
// environment variable overrides and validates the final configuration.
func Load(path string) (*Config, error) {
	cfg := Config{
		LogLevel: "info",
		Radio: RadioConfig{
			Driver:    "sim",
			GainDB:    30,
			ChunkSize: 4096,
		},
		Capture: CaptureConfig{
			StallLimit: 1000,
		},
		DCBlock: DCBlockConfig{
			CutoffHz: 25000,
		},
		STFT: STFTConfig{
			AttenuationDB: 78,
			ResolutionHz:  25000,
		},
		Render: RenderConfig{
			Output: "spectrogram.png",
		},
		Transport: TransportConfig{
			WSEnabled: false,
			WSListen:  ":8080",
		},
	}

	if path == "" {
		candidates := []string{
			"config.yaml",
		}
		found := false
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				found = true
				break
			}
		}
		if !found {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return &cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides AFTER loading from file.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides overrides select fields from SDRSPECT_* environment
// variables. Only values that parse cleanly are applied.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SDRSPECT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SDRSPECT_RADIO_DRIVER"); v != "" {
		c.Radio.Driver = v
	}
	if v := os.Getenv("SDRSPECT_WS_LISTEN"); v != "" {
		c.Transport.WSListen = v
	}
	if v := os.Getenv("SDRSPECT_STALL_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Capture.StallLimit = n
		}
	}
}

// Validate checks the configuration for values that cannot produce a usable
// run. Degenerate numeric inputs the DSP layer guards against on its own
// (e.g. a zero sample rate at run time) are not rejected here; this catches
// plainly wrong static configuration instead.
func (c *Config) Validate() error {
	if c.Radio.Driver == "" {
		return fmt.Errorf("radio driver must be set")
	}
	if c.Radio.ChunkSize <= 0 {
		return fmt.Errorf("radio chunk_size must be positive, got %d", c.Radio.ChunkSize)
	}
	if c.Capture.StallLimit <= 0 {
		return fmt.Errorf("capture stall_limit must be positive, got %d", c.Capture.StallLimit)
	}
	if c.DCBlock.CutoffHz <= 0 {
		return fmt.Errorf("dcblock cutoff_hz must be positive, got %f", c.DCBlock.CutoffHz)
	}
	if c.STFT.AttenuationDB < 0 {
		return fmt.Errorf("stft attenuation_db must not be negative, got %f", c.STFT.AttenuationDB)
	}
	if c.STFT.ResolutionHz <= 0 {
		return fmt.Errorf("stft resolution_hz must be positive, got %f", c.STFT.ResolutionHz)
	}
	if c.Transport.WSEnabled && c.Transport.WSListen == "" {
		return fmt.Errorf("transport ws_listen must be set when ws_enabled is true")
	}
	return nil
}
