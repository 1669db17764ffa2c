package config

import (
	"testing"
	"time"
)

func TestWriteAndReadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://judge.example.com/api/v1"
	cfg.Polling.IntervalMS = 500

	if err := WriteConfig(dir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	got, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if got.API.BaseURL != "https://judge.example.com/api/v1" {
		t.Errorf("BaseURL: got %q", got.API.BaseURL)
	}
	if got.Polling.IntervalMS != 500 {
		t.Errorf("IntervalMS: got %d, want 500", got.Polling.IntervalMS)
	}
	if got.Defaults.Language != "python" {
		t.Errorf("default language: got %q, want python", got.Defaults.Language)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := ReadConfig(t.TempDir()); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestPollInterval(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.PollInterval(); got != 2*time.Second {
		t.Errorf("default poll interval: got %v, want 2s", got)
	}

	cfg.Polling.IntervalMS = 250
	if got := cfg.PollInterval(); got != 250*time.Millisecond {
		t.Errorf("poll interval: got %v, want 250ms", got)
	}

	cfg.Polling.IntervalMS = -1
	if got := cfg.PollInterval(); got != 2*time.Second {
		t.Errorf("negative interval: got %v, want 2s fallback", got)
	}
}

func TestRequestTimeout(t *testing.T) {
	cfg := &Config{}
	if got := cfg.RequestTimeout(); got != 30*time.Second {
		t.Errorf("zero timeout: got %v, want 30s fallback", got)
	}

	cfg.API.TimeoutSeconds = 5
	if got := cfg.RequestTimeout(); got != 5*time.Second {
		t.Errorf("timeout: got %v, want 5s", got)
	}
}
