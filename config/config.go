// Package config loads OneContext client settings from a YAML file, .env files
// and the process environment.
//
// Sources are applied in order, later ones overriding earlier ones:
//
//  1. built-in defaults
//  2. the YAML file named by Options.File, if any
//  3. unprefixed variables OPENAI_API_KEY and BASE_URL
//  4. variables prefixed with ONECONTEXT_, e.g. ONECONTEXT_API_KEY
//
// Files listed in Options.EnvFiles are read into the process environment
// before step 3; variables already set in the environment are not replaced.
package config

import (
	stderrors "errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/onecontext/onecontext-go/errors"
	"github.com/onecontext/onecontext-go/octypes"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "ONECONTEXT_"

// unprefixed maps well-known variables that carry no prefix to their keys.
var unprefixed = map[string]string{
	"OPENAI_API_KEY": "openai_key",
	"BASE_URL":       "base_url",
}

// Config holds the settings needed to build a client.
type Config struct {
	APIKey            string `koanf:"api_key"`
	OpenAIKey         string `koanf:"openai_key"`
	BaseURL           string `koanf:"base_url"`
	UploadConcurrency int    `koanf:"upload_concurrency"`
	ContentDetection  bool   `koanf:"content_detection"`
	LogLevel          string `koanf:"log_level"`
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an optional YAML file. A missing file is an error.
	File string

	// EnvFiles are .env files loaded into the environment. Missing files are skipped.
	EnvFiles []string
}

// Load resolves the configuration from all sources and validates it.
func Load(opts Options) (*Config, error) {
	for _, path := range opts.EnvFiles {
		if err := godotenv.Load(path); err != nil && !stderrors.Is(err, iofs.ErrNotExist) {
			return nil, configError(fmt.Sprintf("load %s", path), err)
		}
	}

	k := koanf.New(".")

	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, configError(fmt.Sprintf("load %s", opts.File), err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return unprefixed[s]
	}), nil); err != nil {
		return nil, configError("load environment", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, configError("load environment", err)
	}

	cfg := &Config{
		BaseURL:  octypes.DefaultBaseURL,
		LogLevel: "info",
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, configError("decode", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return configError("api key is required", fmt.Errorf("set %sAPI_KEY", EnvPrefix))
	}
	if c.UploadConcurrency < 0 {
		return configError("upload_concurrency", fmt.Errorf("must not be negative, got %d", c.UploadConcurrency))
	}
	if _, err := c.Level(); err != nil {
		return configError("log_level", err)
	}
	return nil
}

// Level parses LogLevel. An empty level is info.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, err
	}
	return level, nil
}

// ClientConfig converts the settings to a client configuration. Callers
// add a logger, HTTP client or filesystem before passing it to
// onecontext.NewFromConfig.
func (c *Config) ClientConfig() *octypes.ClientConfig {
	return &octypes.ClientConfig{
		APIKey:            c.APIKey,
		OpenAIKey:         c.OpenAIKey,
		BaseURL:           c.BaseURL,
		UploadConcurrency: c.UploadConcurrency,
		ContentDetection:  c.ContentDetection,
	}
}

func configError(msg string, err error) error {
	return errors.NewError("loadConfig", fmt.Errorf("%w: %s: %w", errors.ErrConfiguration, msg, err))
}
