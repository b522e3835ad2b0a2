package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jywlabs/kalam/internal/api"
)

// isolateEnv clears the override variables for the duration of the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIURL, EnvToken, EnvLogLevel, EnvOutputDir} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, Dir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(dir), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.APIBaseURL != api.DefaultBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, api.DefaultBaseURL)
	}
	if cfg.Timeout != api.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, api.DefaultTimeout)
	}
	if cfg.Defaults.WordCount != 0 {
		t.Errorf("Defaults.WordCount = %d, want 0", cfg.Defaults.WordCount)
	}
	if cfg.Defaults.WritingStyle != "academic" || cfg.Defaults.Tone != "neutral" || cfg.Defaults.Uniqueness != "standard" {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.APIBaseURL != api.DefaultBaseURL {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, ".")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantURL     string
		wantTimeout time.Duration
		wantWords   int
		wantTone    string
		wantLevel   string
	}{
		{
			name: "full config overrides defaults",
			yaml: `apiBaseURL: http://localhost:5000/api/
timeout: 30s
outputDir: exports
log:
  level: debug
defaults:
  wordCount: 800
  writingStyle: creative
  tone: formal
  uniqueness: high
`,
			wantURL:     "http://localhost:5000/api",
			wantTimeout: 30 * time.Second,
			wantWords:   800,
			wantTone:    "formal",
			wantLevel:   "debug",
		},
		{
			name:        "partial config merges with defaults",
			yaml:        "defaults:\n  tone: friendly\n",
			wantURL:     api.DefaultBaseURL,
			wantTimeout: api.DefaultTimeout,
			wantWords:   0,
			wantTone:    "friendly",
		},
		{
			name:        "empty file keeps defaults",
			yaml:        "",
			wantURL:     api.DefaultBaseURL,
			wantTimeout: api.DefaultTimeout,
			wantTone:    "neutral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			dir := t.TempDir()
			writeConfig(t, dir, tt.yaml)

			cfg, err := Load(dir)
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if cfg.APIBaseURL != tt.wantURL {
				t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, tt.wantURL)
			}
			if cfg.Timeout != tt.wantTimeout {
				t.Errorf("Timeout = %v, want %v", cfg.Timeout, tt.wantTimeout)
			}
			if cfg.Defaults.WordCount != tt.wantWords {
				t.Errorf("WordCount = %d, want %d", cfg.Defaults.WordCount, tt.wantWords)
			}
			if cfg.Defaults.Tone != tt.wantTone {
				t.Errorf("Tone = %q, want %q", cfg.Defaults.Tone, tt.wantTone)
			}
			if cfg.LogLevel != tt.wantLevel {
				t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, tt.wantLevel)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "malformed yaml", yaml: "apiBaseURL: [unterminated", wantErr: "failed to parse"},
		{name: "bad timeout", yaml: "timeout: soon", wantErr: "timeout"},
		{name: "zero timeout", yaml: "timeout: 0s", wantErr: "timeout must be greater than 0"},
		{name: "non-http url", yaml: "apiBaseURL: ftp://example.com", wantErr: "http(s) URL"},
		{name: "word count out of range", yaml: "defaults:\n  wordCount: 50\n", wantErr: "defaults.wordCount"},
		{name: "unknown tone", yaml: "defaults:\n  tone: sarcastic\n", wantErr: "defaults.tone"},
		{name: "empty output dir", yaml: "outputDir: \"\"\n", wantErr: "outputDir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			dir := t.TempDir()
			writeConfig(t, dir, tt.yaml)

			_, err := Load(dir)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "apiBaseURL: http://file.example/api\noutputDir: from-file\n")

	t.Setenv(EnvAPIURL, "http://env.example/api/")
	t.Setenv(EnvToken, "tok-123")
	t.Setenv(EnvOutputDir, "from-env")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "http://env.example/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Token != "tok-123" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.OutputDir != "from-env" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	env := EnvToken + "=from-dotenv\n" + EnvLogLevel + "=debug\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Token != "from-dotenv" {
		t.Errorf("Token = %q, want %q", cfg.Token, "from-dotenv")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestTemplateParses(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, Template)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load(Template) unexpected error: %v", err)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
	}
}
