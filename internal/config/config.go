// Package config provides configuration management for the schedule pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alessandroseni/spotisync/pkg/utils"
)

// Configuration validation errors.
var (
	ErrMissingStationURL        = errors.New("station.url or station.local_file is required")
	ErrInvalidStationURL        = errors.New("station.url must be an absolute http(s) URL")
	ErrInvalidWaitTimeout       = errors.New("station.wait_timeout_sec must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("station.retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("station.retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("station.retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("station.retry.timeout_sec must be at least 1")
	ErrInvalidThreshold         = errors.New("extraction.completeness_threshold must be at least 1")
	ErrInvalidAltThreshold      = errors.New("extraction.alt_pass_threshold must be non-negative")
	ErrInvalidScheduleLineChars = errors.New("extraction.min_schedule_line_chars must be at least 1")
	ErrInvalidProvider          = errors.New("analysis.provider must be 'openai' or 'anthropic'")
	ErrInvalidMaxTokens         = errors.New("analysis.max_tokens must be at least 1")
	ErrInvalidStaleAfter        = errors.New("store.stale_after_days must be at least 1")
	ErrMissingDataDir           = errors.New("store.data_dir is required")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Station    StationConfig    `yaml:"station"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Spotify    SpotifyConfig    `yaml:"spotify"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Store      StoreConfig      `yaml:"store"`
	Logging    LoggingConfig    `yaml:"logging"`
	Output     OutputConfig     `yaml:"output"`
}

// StationConfig describes the radio station page to render.
type StationConfig struct {
	URL              string      `yaml:"url"`
	ScheduleSelector string      `yaml:"schedule_selector"`
	WaitTimeoutSec   int         `yaml:"wait_timeout_sec"`
	SettleDelaySec   int         `yaml:"settle_delay_sec"`
	Headless         bool        `yaml:"headless"`
	LocalFile        string      `yaml:"local_file"`
	Retry            RetryPolicy `yaml:"retry"`
}

// IsLocalFile returns true if the station source is a saved page on disk.
func (s *StationConfig) IsLocalFile() bool {
	return s.LocalFile != ""
}

// RetryPolicy defines retry behavior for page rendering.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// ExtractionConfig tunes the schedule extraction heuristics.
type ExtractionConfig struct {
	CompletenessThreshold int `yaml:"completeness_threshold"`
	AltPassThreshold      int `yaml:"alt_pass_threshold"`
	MinScheduleLineChars  int `yaml:"min_schedule_line_chars"`
}

// SpotifyConfig holds Spotify API settings. Client credentials come from
// the environment, not the YAML file.
type SpotifyConfig struct {
	ClientID     string `yaml:"-"`
	ClientSecret string `yaml:"-"`
	RedirectURI  string `yaml:"redirect_uri"`
	TokenFile    string `yaml:"token_file"`
	PlaylistID   string `yaml:"playlist_id"`
}

// AnalysisConfig selects and tunes the language-model provider.
type AnalysisConfig struct {
	Provider        string  `yaml:"provider"`
	Model           string  `yaml:"model"`
	Temperature     float32 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`
	OpenAIAPIKey    string  `yaml:"-"`
	AnthropicAPIKey string  `yaml:"-"`
}

// StoreConfig controls the CSV library snapshot.
type StoreConfig struct {
	DataDir        string `yaml:"data_dir"`
	StaleAfterDays int    `yaml:"stale_after_days"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OutputConfig defines optional artifacts written after a run.
type OutputConfig struct {
	ScheduleFile string `yaml:"schedule_file"`
}

// DefaultConfig returns the configuration used when no file is supplied.
// Values mirror the station's observed rendering behavior.
func DefaultConfig() *Config {
	return &Config{
		Station: StationConfig{
			URL:              "https://www.thelotradio.com",
			ScheduleSelector: ".schedule",
			WaitTimeoutSec:   15,
			SettleDelaySec:   12,
			Headless:         true,
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        60,
			},
		},
		Extraction: ExtractionConfig{
			CompletenessThreshold: 30,
			AltPassThreshold:      10,
			MinScheduleLineChars:  500,
		},
		Spotify: SpotifyConfig{
			RedirectURI: "http://127.0.0.1:8080/callback",
			TokenFile:   ".spotify_token.json",
		},
		Analysis: AnalysisConfig{
			Provider:    "openai",
			Model:       "gpt-4.1",
			Temperature: 0.7,
			MaxTokens:   2500,
		},
		Store: StoreConfig{
			DataDir:        "data",
			StaleAfterDays: 7,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file, falling back to defaults
// for a missing path, then applies environment credentials and validates.
func LoadConfig(filepath string) (*Config, error) {
	cfg := DefaultConfig()

	if filepath != "" {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnv loads .env if present and copies credentials from the
// environment. The SPOTIPY_* names match what the station tooling has
// always used, so an existing .env keeps working.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	envOverride(&c.Spotify.ClientID, "SPOTIPY_CLIENT_ID")
	envOverride(&c.Spotify.ClientSecret, "SPOTIPY_CLIENT_SECRET")
	envOverride(&c.Spotify.RedirectURI, "SPOTIPY_REDIRECT_URI")
	envOverride(&c.Spotify.PlaylistID, "PLAYLIST_ID")
	envOverride(&c.Analysis.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverride(&c.Analysis.AnthropicAPIKey, "ANTHROPIC_API_KEY")
}

func envOverride(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Station.URL == "" && c.Station.LocalFile == "" {
		return ErrMissingStationURL
	}

	if c.Station.URL != "" && !utils.IsValidURL(c.Station.URL) {
		return ErrInvalidStationURL
	}

	if c.Station.WaitTimeoutSec < 1 {
		return ErrInvalidWaitTimeout
	}

	if c.Station.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Station.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Station.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Station.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Extraction.CompletenessThreshold < 1 {
		return ErrInvalidThreshold
	}

	if c.Extraction.AltPassThreshold < 0 {
		return ErrInvalidAltThreshold
	}

	if c.Extraction.MinScheduleLineChars < 1 {
		return ErrInvalidScheduleLineChars
	}

	if c.Analysis.Provider != "openai" && c.Analysis.Provider != "anthropic" {
		return ErrInvalidProvider
	}

	if c.Analysis.MaxTokens < 1 {
		return ErrInvalidMaxTokens
	}

	if c.Store.DataDir == "" {
		return ErrMissingDataDir
	}

	if c.Store.StaleAfterDays < 1 {
		return ErrInvalidStaleAfter
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-attempt timeout as a duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// WaitTimeout returns the schedule-selector wait as a duration.
func (s *StationConfig) WaitTimeout() time.Duration {
	return time.Duration(s.WaitTimeoutSec) * time.Second
}

// SettleDelay returns the post-load settle sleep as a duration.
func (s *StationConfig) SettleDelay() time.Duration {
	return time.Duration(s.SettleDelaySec) * time.Second
}

// StaleAfter returns the snapshot staleness cutoff as a duration.
func (s *StoreConfig) StaleAfter() time.Duration {
	return time.Duration(s.StaleAfterDays) * 24 * time.Hour
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Station: %s, Threshold: %d, Provider: %s}",
		c.Station.URL,
		c.Extraction.CompletenessThreshold,
		c.Analysis.Provider,
	)
}
