// SPDX-License-Identifier: MIT
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config, got nil")
	}
	if cfg.DCBlock.CutoffHz != 25000 {
		t.Errorf("expected default cutoff 25000, got %f", cfg.DCBlock.CutoffHz)
	}
	if cfg.STFT.AttenuationDB != 78 {
		t.Errorf("expected default attenuation 78, got %f", cfg.STFT.AttenuationDB)
	}
	if cfg.Capture.StallLimit != 1000 {
		t.Errorf("expected default stall limit 1000, got %d", cfg.Capture.StallLimit)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	if err == nil {
		t.Errorf("expected error for missing file, got nil")
	}
	if cfg != nil {
		t.Errorf("expected nil config on error, got %+v", cfg)
	}
}

func TestLoad_UnmarshalError(t *testing.T) {
	path := writeTempConfig(t, ":\n:bad")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Error("expected unmarshal error, got nil or wrong error")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
log_level: debug
radio:
  driver: sim
  chunk_size: 2048
stft:
  attenuation_db: 60
  resolution_hz: 12500
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Radio.ChunkSize != 2048 {
		t.Errorf("expected chunk_size 2048, got %d", cfg.Radio.ChunkSize)
	}
	if cfg.STFT.AttenuationDB != 60 {
		t.Errorf("expected attenuation 60, got %f", cfg.STFT.AttenuationDB)
	}
	if cfg.STFT.ResolutionHz != 12500 {
		t.Errorf("expected resolution 12500, got %f", cfg.STFT.ResolutionHz)
	}
	// Fields absent from the file keep their defaults.
	if cfg.DCBlock.CutoffHz != 25000 {
		t.Errorf("expected default cutoff 25000, got %f", cfg.DCBlock.CutoffHz)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantSub string
	}{
		{"zero chunk size", "radio:\n  chunk_size: -1\n", "chunk_size"},
		{"zero stall limit", "capture:\n  stall_limit: 0\n", "stall_limit"},
		{"negative cutoff", "dcblock:\n  cutoff_hz: -5\n", "cutoff_hz"},
		{"zero resolution", "stft:\n  resolution_hz: 0\n", "resolution_hz"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempConfig(t, tc.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("expected error mentioning %q, got %v", tc.wantSub, err)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SDRSPECT_STALL_LIMIT", "250")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Capture.StallLimit != 250 {
		t.Errorf("expected env override stall limit 250, got %d", cfg.Capture.StallLimit)
	}
}
