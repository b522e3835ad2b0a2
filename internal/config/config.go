package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jywlabs/kalam/internal/api"
	"github.com/jywlabs/kalam/internal/schema"
)

// Dir is the per-project configuration directory.
const Dir = ".kalam"

// File is the configuration file name inside Dir.
const File = "config.yaml"

// Environment variables that override the config file.
const (
	EnvAPIURL    = "KALAM_API_URL"
	EnvToken     = "KALAM_TOKEN"
	EnvLogLevel  = "KALAM_LOG_LEVEL"
	EnvOutputDir = "KALAM_OUTPUT_DIR"
)

// Defaults are the starting form parameters for new generations.
type Defaults struct {
	WordCount    int // Zero keeps the content type's own default
	WritingStyle string
	Tone         string
	Uniqueness   string
}

// Config is the resolved client configuration.
type Config struct {
	APIBaseURL  string
	Timeout     time.Duration
	OutputDir   string
	SessionFile string // Empty means the user config directory
	LogLevel    string
	Token       string // From the environment only; never written to disk
	Defaults    Defaults
}

// rawConfig mirrors config.yaml. Pointer fields distinguish missing keys from
// explicit empty values.
type rawConfig struct {
	APIBaseURL  *string `yaml:"apiBaseURL"`
	Timeout     *string `yaml:"timeout"`
	OutputDir   *string `yaml:"outputDir"`
	SessionFile *string `yaml:"sessionFile"`
	Log         struct {
		Level *string `yaml:"level"`
	} `yaml:"log"`
	Defaults struct {
		WordCount    *int    `yaml:"wordCount"`
		WritingStyle *string `yaml:"writingStyle"`
		Tone         *string `yaml:"tone"`
		Uniqueness   *string `yaml:"uniqueness"`
	} `yaml:"defaults"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL: api.DefaultBaseURL,
		Timeout:    api.DefaultTimeout,
		OutputDir:  ".",
		LogLevel:   "",
		Defaults: Defaults{
			WritingStyle: schema.DefaultWritingStyle,
			Tone:         schema.DefaultTone,
			Uniqueness:   schema.DefaultUniqueness,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("apiBaseURL must not be empty")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("apiBaseURL must be an http(s) URL, got %q", c.APIBaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be greater than 0")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("outputDir must not be empty")
	}
	if c.Defaults.WordCount != 0 {
		if err := schema.ValidateWordCount(c.Defaults.WordCount); err != nil {
			return fmt.Errorf("defaults.wordCount: %w", err)
		}
	}
	if _, err := schema.NormalizeChoice("writing style", c.Defaults.WritingStyle, schema.WritingStyles); err != nil {
		return fmt.Errorf("defaults.writingStyle: %w", err)
	}
	if _, err := schema.NormalizeChoice("tone", c.Defaults.Tone, schema.Tones); err != nil {
		return fmt.Errorf("defaults.tone: %w", err)
	}
	if _, err := schema.NormalizeChoice("uniqueness", c.Defaults.Uniqueness, schema.Uniqueness); err != nil {
		return fmt.Errorf("defaults.uniqueness: %w", err)
	}
	return nil
}

// Path returns the config file location for a project directory.
func Path(dir string) string {
	return filepath.Join(dir, Dir, File)
}

// Load resolves configuration for dir: built-in defaults, then
// .kalam/config.yaml, then a .env file in dir, then the process environment.
// A missing config file or .env is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(dir))
	switch {
	case err == nil:
		if err := merge(&cfg, data); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", Path(dir), err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Variables already set in the environment win over .env.
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func merge(cfg *Config, data []byte) error {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.APIBaseURL != nil {
		cfg.APIBaseURL = strings.TrimRight(*raw.APIBaseURL, "/")
	}
	if raw.Timeout != nil {
		d, err := time.ParseDuration(*raw.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if raw.OutputDir != nil {
		cfg.OutputDir = *raw.OutputDir
	}
	if raw.SessionFile != nil {
		cfg.SessionFile = *raw.SessionFile
	}
	if raw.Log.Level != nil {
		cfg.LogLevel = *raw.Log.Level
	}
	if raw.Defaults.WordCount != nil {
		cfg.Defaults.WordCount = *raw.Defaults.WordCount
	}
	if raw.Defaults.WritingStyle != nil {
		cfg.Defaults.WritingStyle = *raw.Defaults.WritingStyle
	}
	if raw.Defaults.Tone != nil {
		cfg.Defaults.Tone = *raw.Defaults.Tone
	}
	if raw.Defaults.Uniqueness != nil {
		cfg.Defaults.Uniqueness = *raw.Defaults.Uniqueness
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
}

// Template is written by `kalam config init`.
const Template = `# kalam client configuration
apiBaseURL: ` + api.DefaultBaseURL + `
timeout: 2m
outputDir: .
log:
  level: ""
defaults:
  # wordCount: 500
  writingStyle: academic
  tone: neutral
  uniqueness: standard
`
