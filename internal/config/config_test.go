package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "2.0.0" {
		t.Errorf("Expected default version to be '2.0.0', got '%s'", cfg.Version)
	}

	if cfg.ServerName != "pdfparse-mcp" {
		t.Errorf("Expected default server name to be 'pdfparse-mcp', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}

	if cfg.ContextRadius != DefaultContextRadius {
		t.Errorf("Expected default context radius to be %.1f, got %.1f", DefaultContextRadius, cfg.ContextRadius)
	}

	if cfg.Workers != DefaultWorkers {
		t.Errorf("Expected default workers to be %d, got %d", DefaultWorkers, cfg.Workers)
	}

	// Test that PDF directory is set to current working directory by default
	currentDir, _ := os.Getwd()
	if cfg.PDFDirectory != currentDir {
		t.Errorf("Expected default PDF directory to be '%s', got '%s'", currentDir, cfg.PDFDirectory)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		return &Config{
			PDFDirectory:  t.TempDir(),
			MaxFileSize:   1024,
			ContextRadius: 50,
			Workers:       0,
			LogLevel:      "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "empty PDF directory",
			mutate:  func(c *Config) { c.PDFDirectory = "" },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "invalid" },
			wantErr: true,
		},
		{
			name:    "invalid max file size",
			mutate:  func(c *Config) { c.MaxFileSize = 0 },
			wantErr: true,
		},
		{
			name:    "invalid context radius",
			mutate:  func(c *Config) { c.ContextRadius = -1 },
			wantErr: true,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workers = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateCreatesMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "created", "pdfs")

	cfg := &Config{
		PDFDirectory:  missing,
		MaxFileSize:   1024,
		ContextRadius: 50,
		LogLevel:      "info",
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Config.Validate() error = %v", err)
	}

	info, err := os.Stat(missing)
	if err != nil {
		t.Fatalf("Expected directory to be created: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}
}

func TestConfigValidateLogLevels(t *testing.T) {
	validLevels := []string{"debug", "info", "warn", "error"}
	invalidLevels := []string{"DEBUG", "INFO", "trace", "fatal", ""}

	tempDir := t.TempDir()

	for _, level := range validLevels {
		t.Run("valid_"+level, func(t *testing.T) {
			cfg := &Config{
				PDFDirectory:  tempDir,
				MaxFileSize:   1024,
				ContextRadius: 50,
				LogLevel:      level,
			}

			if err := cfg.Validate(); err != nil {
				t.Errorf("Config.Validate() should accept log level '%s', got error: %v", level, err)
			}
		})
	}

	for _, level := range invalidLevels {
		t.Run("invalid_"+level, func(t *testing.T) {
			cfg := &Config{
				PDFDirectory:  tempDir,
				MaxFileSize:   1024,
				ContextRadius: 50,
				LogLevel:      level,
			}

			if err := cfg.Validate(); err == nil {
				t.Errorf("Config.Validate() should reject log level '%s'", level)
			}
		})
	}
}

func TestConfigIsDebug(t *testing.T) {
	tests := []struct {
		logLevel string
		want     bool
	}{
		{"debug", true},
		{"info", false},
		{"warn", false},
		{"error", false},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			if got := cfg.IsDebug(); got != tt.want {
				t.Errorf("Config.IsDebug() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		PDFDirectory:  "/home/user/pdfs",
		LogLevel:      "debug",
		MaxFileSize:   1024,
		ContextRadius: 75,
		Workers:       4,
	}

	result := cfg.String()

	expectedSubstrings := []string{
		"PDFDirectory: /home/user/pdfs",
		"LogLevel: debug",
		"MaxFileSize: 1024",
		"ContextRadius: 75.0",
		"Workers: 4",
	}

	for _, substr := range expectedSubstrings {
		if !strings.Contains(result, substr) {
			t.Errorf("Config.String() result doesn't contain expected substring: %s\nGot: %s", substr, result)
		}
	}
}
