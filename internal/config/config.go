// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the contact-splitter configuration from a YAML file
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"contact-splitter/internal/paths"

	"github.com/ilyakaznacheev/cleanenv"
)

// Letter salutation modes.
const (
	LetterSalutationRule = "rule"
	LetterSalutationAI   = "ai"
)

// Config represents the application configuration
type Config struct {
	Defaults   DefaultsConfig   `yaml:"defaults"`
	Titles     TitlesConfig     `yaml:"titles"`
	History    HistoryConfig    `yaml:"history"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// DefaultsConfig holds CLI defaults.
type DefaultsConfig struct {
	Format  string `yaml:"format"   env:"CONTACT_SPLITTER_FORMAT"   env-default:"text"`
	NoColor bool   `yaml:"no_color" env:"CONTACT_SPLITTER_NO_COLOR"`
	Verbose bool   `yaml:"verbose"  env:"CONTACT_SPLITTER_VERBOSE"`
	Workers int    `yaml:"workers"  env:"CONTACT_SPLITTER_WORKERS"  env-default:"4"`
}

// TitlesConfig locates the title dictionary.
type TitlesConfig struct {
	File string `yaml:"file" env:"CONTACT_SPLITTER_TITLES_FILE"`
}

// HistoryConfig bounds the in-memory history.
type HistoryConfig struct {
	Size int `yaml:"size" env:"CONTACT_SPLITTER_HISTORY_SIZE" env-default:"10"`
}

// ClassifierConfig configures the OpenAI-compatible classifier. Without an
// API key the classifier is disabled and its defaults are used.
type ClassifierConfig struct {
	BaseURL         string        `yaml:"base_url"         env:"CONTACT_SPLITTER_CLASSIFIER_BASE_URL"         env-default:"https://api.openai.com/v1"`
	Model           string        `yaml:"model"            env:"CONTACT_SPLITTER_CLASSIFIER_MODEL"            env-default:"gpt-4o-mini"`
	APIKey          string        `yaml:"api_key"          env:"OPENAI_API_KEY"`
	Timeout         time.Duration `yaml:"timeout"          env:"CONTACT_SPLITTER_CLASSIFIER_TIMEOUT"          env-default:"15s"`
	MaxRetries      int           `yaml:"max_retries"      env:"CONTACT_SPLITTER_CLASSIFIER_MAX_RETRIES"      env-default:"2"`
	InitialInterval time.Duration `yaml:"initial_interval" env:"CONTACT_SPLITTER_CLASSIFIER_INITIAL_INTERVAL" env-default:"1s"`
	Multiplier      float64       `yaml:"multiplier"       env:"CONTACT_SPLITTER_CLASSIFIER_MULTIPLIER"       env-default:"2"`
}

// Enabled reports whether remote classification is configured.
func (c ClassifierConfig) Enabled() bool {
	return c.APIKey != ""
}

// EnrichmentConfig selects how letter salutations are produced.
type EnrichmentConfig struct {
	LetterSalutation string `yaml:"letter_salutation" env:"CONTACT_SPLITTER_LETTER_SALUTATION" env-default:"rule"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"CONTACT_SPLITTER_SERVER_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"CONTACT_SPLITTER_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"CONTACT_SPLITTER_SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"CONTACT_SPLITTER_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"CONTACT_SPLITTER_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"CONTACT_SPLITTER_LOG_FORMAT" env-default:"text"`
}

// Default returns the built-in configuration without consulting the
// environment.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{Format: "text", Workers: 4},
		History:  HistoryConfig{Size: 10},
		Classifier: ClassifierConfig{
			BaseURL:         "https://api.openai.com/v1",
			Model:           "gpt-4o-mini",
			Timeout:         15 * time.Second,
			MaxRetries:      2,
			InitialInterval: time.Second,
			Multiplier:      2,
		},
		Enrichment: EnrichmentConfig{LetterSalutation: LetterSalutationRule},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig loads configuration from configPath. Environment variables
// override file values; unset values fall back to the env-default tags. An
// empty path reads the environment only.
func LoadConfig(configPath string) (*Config, error) {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("error reading environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err == nil {
		return cfg
	}

	if cfg, err = LoadConfig(""); err == nil {
		return cfg
	}
	return Default()
}

// FindConfigFile returns the first existing configuration file from
// CONTACT_SPLITTER_CONFIG, the current directory and the user config
// directory, or "" when none exists.
func FindConfigFile() string {
	if explicit := os.Getenv("CONTACT_SPLITTER_CONFIG"); explicit != "" {
		return explicit
	}

	for _, candidate := range []string{
		"contact-splitter.yaml",
		"contact-splitter.yml",
		".contact-splitter.yaml",
		".contact-splitter.yml",
		paths.GetConfigFile(),
	} {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// TitlesFile returns the configured title dictionary path or the default
// location in the user config directory.
func (c *Config) TitlesFile() string {
	if c.Titles.File != "" {
		if resolved, err := paths.ResolvePath(c.Titles.File); err == nil {
			return resolved
		}
		return c.Titles.File
	}
	return paths.GetTitlesFile()
}

// ValidateConfig checks value ranges and enumerations.
func ValidateConfig(cfg *Config) error {
	var errs []error

	if !slices.Contains([]string{"text", "json", "yaml", "csv"}, cfg.Defaults.Format) {
		errs = append(errs, fmt.Errorf("defaults.format: unsupported format %q", cfg.Defaults.Format))
	}
	if cfg.Defaults.Workers < 1 {
		errs = append(errs, fmt.Errorf("defaults.workers: must be at least 1, got %d", cfg.Defaults.Workers))
	}
	if cfg.History.Size < 1 {
		errs = append(errs, fmt.Errorf("history.size: must be at least 1, got %d", cfg.History.Size))
	}
	if cfg.Classifier.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("classifier.max_retries: must not be negative, got %d", cfg.Classifier.MaxRetries))
	}
	if cfg.Classifier.Multiplier < 1 {
		errs = append(errs, fmt.Errorf("classifier.multiplier: must be at least 1, got %g", cfg.Classifier.Multiplier))
	}
	if cfg.Classifier.Timeout <= 0 {
		errs = append(errs, errors.New("classifier.timeout: must be positive"))
	}
	if mode := cfg.Enrichment.LetterSalutation; mode != LetterSalutationRule && mode != LetterSalutationAI {
		errs = append(errs, fmt.Errorf("enrichment.letter_salutation: must be %q or %q, got %q",
			LetterSalutationRule, LetterSalutationAI, mode))
	}
	if err := paths.ValidatePath(cfg.Titles.File); err != nil {
		errs = append(errs, fmt.Errorf("titles.file: %w", err))
	}

	return errors.Join(errs...)
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}
