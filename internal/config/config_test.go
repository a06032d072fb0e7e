package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML is a minimal valid configuration.
const validConfigYAML = `
station:
  url: "https://radio.example.com"
  schedule_selector: ".grid"
  wait_timeout_sec: 5
  settle_delay_sec: 2
  headless: true
  retry:
    max_attempts: 2
    initial_delay_ms: 100
    max_delay_ms: 5000
    backoff_multiplier: 1.5
    timeout_sec: 30
extraction:
  completeness_threshold: 20
  alt_pass_threshold: 5
  min_schedule_line_chars: 300
analysis:
  provider: "anthropic"
  model: "claude-sonnet-4-20250514"
  max_tokens: 1000
store:
  data_dir: "testdata"
  stale_after_days: 3
logging:
  level: "debug"
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg == nil {
		t.Fatal("Expected config, got nil")
	}

	if cfg.Station.URL != "https://radio.example.com" {
		t.Errorf("Expected custom station URL, got '%s'", cfg.Station.URL)
	}

	if cfg.Extraction.CompletenessThreshold != 20 {
		t.Errorf("Expected completeness threshold 20, got %d", cfg.Extraction.CompletenessThreshold)
	}

	if cfg.Analysis.Provider != "anthropic" {
		t.Errorf("Expected provider 'anthropic', got '%s'", cfg.Analysis.Provider)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Extraction.CompletenessThreshold != 30 {
		t.Errorf("Expected default threshold 30, got %d", cfg.Extraction.CompletenessThreshold)
	}

	if cfg.Store.StaleAfterDays != 7 {
		t.Errorf("Expected default staleness of 7 days, got %d", cfg.Store.StaleAfterDays)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	configPath := createTempConfigFile(t, "extraction:\n  completeness_threshold: 12\n")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Extraction.CompletenessThreshold != 12 {
		t.Errorf("Expected threshold 12, got %d", cfg.Extraction.CompletenessThreshold)
	}

	if cfg.Station.URL == "" {
		t.Error("Expected default station URL to survive partial config")
	}
}

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestConfig_Validate_MissingStationSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Station.URL = ""
	cfg.Station.LocalFile = ""

	if err := cfg.Validate(); err != ErrMissingStationURL {
		t.Errorf("Expected ErrMissingStationURL, got %v", err)
	}
}

func TestConfig_Validate_LocalFileOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Station.URL = ""
	cfg.Station.LocalFile = "page.html"

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected local file source to validate, got %v", err)
	}
}

func TestConfig_Validate_MalformedStationURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Station.URL = "not a url"

	if err := cfg.Validate(); err != ErrInvalidStationURL {
		t.Errorf("Expected ErrInvalidStationURL, got %v", err)
	}
}

func TestConfig_Validate_InvalidThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extraction.CompletenessThreshold = 0

	if err := cfg.Validate(); err != ErrInvalidThreshold {
		t.Errorf("Expected ErrInvalidThreshold, got %v", err)
	}
}

func TestConfig_Validate_InvalidProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analysis.Provider = "llama"

	if err := cfg.Validate(); err != ErrInvalidProvider {
		t.Errorf("Expected ErrInvalidProvider, got %v", err)
	}
}

func TestConfig_Validate_InvalidBackoffMultiplier(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Station.Retry.BackoffMultiplier = 0.5

	if err := cfg.Validate(); err != ErrInvalidBackoffMultiplier {
		t.Errorf("Expected ErrInvalidBackoffMultiplier, got %v", err)
	}
}

func TestConfig_Validate_InvalidLoggingLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"

	if err := cfg.Validate(); err != ErrInvalidLogLevel {
		t.Errorf("Expected ErrInvalidLogLevel, got %v", err)
	}
}

// --- StationConfig Tests ---

func TestStationConfig_IsLocalFile(t *testing.T) {
	tests := []struct {
		name     string
		station  StationConfig
		expected bool
	}{
		{"URL only", StationConfig{URL: "http://example.com"}, false},
		{"File only", StationConfig{LocalFile: "/path/to/page.html"}, true},
		{"Both URL and File", StationConfig{URL: "http://example.com", LocalFile: "/path/to/page.html"}, true},
		{"Neither", StationConfig{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.station.IsLocalFile(); got != tt.expected {
				t.Errorf("IsLocalFile() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStationConfig_Durations(t *testing.T) {
	s := StationConfig{WaitTimeoutSec: 15, SettleDelaySec: 12}

	if s.WaitTimeout() != 15*time.Second {
		t.Errorf("WaitTimeout() = %v, want 15s", s.WaitTimeout())
	}

	if s.SettleDelay() != 12*time.Second {
		t.Errorf("SettleDelay() = %v, want 12s", s.SettleDelay())
	}
}

// --- RetryPolicy Tests ---

func TestRetryPolicy_GetRetryDelay(t *testing.T) {
	rp := RetryPolicy{
		InitialDelayMs:    100,
		MaxDelayMs:        1000,
		BackoffMultiplier: 2.0,
	}

	// The implementation applies multiplier for each retry after the first.
	// Attempt 1: no delay (first attempt)
	// Attempt 2: 100 * 2.0 = 200ms
	// Attempt 3: 200 * 2.0 = 400ms
	// etc.
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 0},                        // First attempt, no delay
		{2, 200 * time.Millisecond},   // 100 * 2
		{3, 400 * time.Millisecond},   // 100 * 2 * 2
		{4, 800 * time.Millisecond},   // 100 * 2 * 2 * 2
		{5, 1000 * time.Millisecond},  // Capped at max
		{6, 1000 * time.Millisecond},  // Still capped
		{10, 1000 * time.Millisecond}, // Still capped
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got := rp.GetRetryDelay(tt.attempt)
			if got != tt.expected {
				t.Errorf("GetRetryDelay(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestRetryPolicy_GetTimeout(t *testing.T) {
	rp := RetryPolicy{TimeoutSec: 30}
	expected := 30 * time.Second

	if got := rp.GetTimeout(); got != expected {
		t.Errorf("GetTimeout() = %v, want %v", got, expected)
	}
}

// --- StoreConfig Tests ---

func TestStoreConfig_StaleAfter(t *testing.T) {
	s := StoreConfig{StaleAfterDays: 7}
	expected := 7 * 24 * time.Hour

	if got := s.StaleAfter(); got != expected {
		t.Errorf("StaleAfter() = %v, want %v", got, expected)
	}
}

func TestConfig_String(t *testing.T) {
	cfg := DefaultConfig()

	str := cfg.String()
	if str == "" {
		t.Error("Expected non-empty string representation")
	}
}
