package dict

import (
	"testing"
	"time"
)

// envVars are all environment variables read by OptionsFromEnv.
var envVars = []string{
	"PDICT_CODEC",
	"PDICT_COMPRESSION",
	"PDICT_COMPRESS_LEVEL",
	"PDICT_ISOLATION",
	"PDICT_BUSY_TIMEOUT",
	"PDICT_LOG_LEVEL",
	"PDICT_METRICS",
}

// clearEnv pins every recognized variable to its unset state for the
// duration of the test, so ambient configuration cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		t.Setenv(name, "")
	}
}

// TestOptionsFromEnvDefaults tests that unset variables keep the defaults
func TestOptionsFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	opts, err := OptionsFromEnv()
	if err != nil {
		t.Fatalf("Failed to read options from env: %v", err)
	}
	if name := opts.Codec.Name(); name != "msgpack" {
		t.Errorf("Expected default codec msgpack, got %s", name)
	}
	if name := opts.Compressor.Name(); name != "zlib" {
		t.Errorf("Expected default compressor zlib, got %s", name)
	}
	if opts.Isolation != IsolationSerialized {
		t.Errorf("Expected default isolation serialized, got %s", opts.Isolation)
	}
	if opts.BusyTimeout != 10*time.Second {
		t.Errorf("Expected default busy timeout 10s, got %s", opts.BusyTimeout)
	}
	if !opts.MetricsEnabled {
		t.Error("Expected metrics to be enabled by default")
	}
	if opts.Logger != nil {
		t.Error("Expected no logger override without PDICT_LOG_LEVEL")
	}
}

// TestOptionsFromEnvCustom tests that every variable is honored
func TestOptionsFromEnvCustom(t *testing.T) {
	clearEnv(t)
	t.Setenv("PDICT_CODEC", "cbor")
	t.Setenv("PDICT_COMPRESSION", "zstd")
	t.Setenv("PDICT_COMPRESS_LEVEL", "3")
	t.Setenv("PDICT_ISOLATION", "engine-native")
	t.Setenv("PDICT_BUSY_TIMEOUT", "250ms")
	t.Setenv("PDICT_LOG_LEVEL", "debug")
	t.Setenv("PDICT_METRICS", "false")

	opts, err := OptionsFromEnv()
	if err != nil {
		t.Fatalf("Failed to read options from env: %v", err)
	}
	if name := opts.Codec.Name(); name != "cbor" {
		t.Errorf("Expected codec cbor, got %s", name)
	}
	if name := opts.Compressor.Name(); name != "zstd" {
		t.Errorf("Expected compressor zstd, got %s", name)
	}
	if opts.Isolation != IsolationEngineNative {
		t.Errorf("Expected isolation engine-native, got %s", opts.Isolation)
	}
	if opts.BusyTimeout != 250*time.Millisecond {
		t.Errorf("Expected busy timeout 250ms, got %s", opts.BusyTimeout)
	}
	if opts.Logger == nil {
		t.Error("Expected a logger for PDICT_LOG_LEVEL")
	}
	if opts.MetricsEnabled {
		t.Error("Expected metrics to be disabled")
	}
}

// TestOptionsFromEnvInvalid tests that invalid values are rejected
func TestOptionsFromEnvInvalid(t *testing.T) {
	cases := map[string]struct {
		name  string
		value string
	}{
		"Codec":              {"PDICT_CODEC", "xml"},
		"Compression":        {"PDICT_COMPRESSION", "brotli"},
		"CompressLevel":      {"PDICT_COMPRESS_LEVEL", "high"},
		"CompressLevelRange": {"PDICT_COMPRESS_LEVEL", "99"},
		"Isolation":          {"PDICT_ISOLATION", "chaotic"},
		"BusyTimeout":        {"PDICT_BUSY_TIMEOUT", "soon"},
		"LogLevel":           {"PDICT_LOG_LEVEL", "loud"},
		"Metrics":            {"PDICT_METRICS", "perhaps"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.name, tc.value)
			if _, err := OptionsFromEnv(); err == nil {
				t.Errorf("Expected error for %s=%s, got none", tc.name, tc.value)
			}
		})
	}
}
