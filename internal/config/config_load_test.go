package config

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Helper function to reset pflag.CommandLine for testing
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

// Helper function to set os.Args for testing
func setArgs(args []string) {
	os.Args = args
}

// Helper function to clear environment variables
func clearEnvVars() {
	os.Unsetenv("PDFPARSE_DIR")
	os.Unsetenv("PDFPARSE_LOGLEVEL")
	os.Unsetenv("PDFPARSE_MAXFILESIZE")
	os.Unsetenv("PDFPARSE_CONTEXTRADIUS")
	os.Unsetenv("PDFPARSE_WORKERS")
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"pdfparse-mcp"})
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "info")
	}
	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 100*1024*1024)
	}
	if cfg.ContextRadius != DefaultContextRadius {
		t.Errorf("LoadFromFlags() ContextRadius = %v, want %v", cfg.ContextRadius, DefaultContextRadius)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("LoadFromFlags() Workers = %v, want %v", cfg.Workers, DefaultWorkers)
	}
	if cfg.PDFDirectory == "" {
		t.Error("LoadFromFlags() PDFDirectory should not be empty")
	}
}

func TestLoadFromFlags_ValidFlags(t *testing.T) {
	tests := []struct {
		name              string
		extraArgs         []string
		wantLogLevel      string
		wantMaxFileSize   int64
		wantContextRadius float64
		wantWorkers       int
	}{
		{
			name:              "custom directory only",
			extraArgs:         nil,
			wantLogLevel:      "info",
			wantMaxFileSize:   100 * 1024 * 1024,
			wantContextRadius: DefaultContextRadius,
			wantWorkers:       DefaultWorkers,
		},
		{
			name:              "debug logging",
			extraArgs:         []string{"--loglevel=debug"},
			wantLogLevel:      "debug",
			wantMaxFileSize:   100 * 1024 * 1024,
			wantContextRadius: DefaultContextRadius,
			wantWorkers:       DefaultWorkers,
		},
		{
			name:              "custom max file size",
			extraArgs:         []string{"--maxfilesize=50000000"},
			wantLogLevel:      "info",
			wantMaxFileSize:   50000000,
			wantContextRadius: DefaultContextRadius,
			wantWorkers:       DefaultWorkers,
		},
		{
			name:              "custom context radius and workers",
			extraArgs:         []string{"--contextradius=75", "--workers=4"},
			wantLogLevel:      "info",
			wantMaxFileSize:   100 * 1024 * 1024,
			wantContextRadius: 75,
			wantWorkers:       4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalArgs := os.Args
			defer func() {
				os.Args = originalArgs
				resetFlags()
				clearEnvVars()
			}()

			tempDir := t.TempDir()
			args := append([]string{"pdfparse-mcp", "--dir=" + tempDir}, tt.extraArgs...)

			setArgs(args)
			resetFlags()
			clearEnvVars()

			cfg, err := LoadFromFlags()
			if err != nil {
				t.Fatalf("LoadFromFlags() unexpected error: %v", err)
			}

			if cfg.LogLevel != tt.wantLogLevel {
				t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, tt.wantLogLevel)
			}
			if cfg.MaxFileSize != tt.wantMaxFileSize {
				t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, tt.wantMaxFileSize)
			}
			if cfg.ContextRadius != tt.wantContextRadius {
				t.Errorf("LoadFromFlags() ContextRadius = %v, want %v", cfg.ContextRadius, tt.wantContextRadius)
			}
			if cfg.Workers != tt.wantWorkers {
				t.Errorf("LoadFromFlags() Workers = %v, want %v", cfg.Workers, tt.wantWorkers)
			}
			if cfg.PDFDirectory != tempDir {
				t.Errorf("LoadFromFlags() PDFDirectory = %v, want %v", cfg.PDFDirectory, tempDir)
			}
		})
	}
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()

	os.Setenv("PDFPARSE_DIR", tempDir)
	os.Setenv("PDFPARSE_LOGLEVEL", "warn")
	os.Setenv("PDFPARSE_MAXFILESIZE", "200000000")
	os.Setenv("PDFPARSE_WORKERS", "2")

	setArgs([]string{"pdfparse-mcp"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.PDFDirectory != tempDir {
		t.Errorf("LoadFromFlags() PDFDirectory = %v, want %v", cfg.PDFDirectory, tempDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "warn")
	}
	if cfg.MaxFileSize != 200000000 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 200000000)
	}
	if cfg.Workers != 2 {
		t.Errorf("LoadFromFlags() Workers = %v, want %v", cfg.Workers, 2)
	}
}

func TestLoadFromFlags_FlagOverridesEnvironment(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()

	os.Setenv("PDFPARSE_LOGLEVEL", "error")
	os.Setenv("PDFPARSE_MAXFILESIZE", "1000")

	setArgs([]string{"pdfparse-mcp", "--dir=" + tempDir, "--loglevel=debug", "--maxfilesize=2000"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v (should override env)", cfg.LogLevel, "debug")
	}
	if cfg.MaxFileSize != 2000 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v (should override env)", cfg.MaxFileSize, 2000)
	}
}

func TestLoadFromFlags_InvalidLogLevel(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"pdfparse-mcp", "--loglevel=invalid", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for invalid log level")
	}
	if err != nil && !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("LoadFromFlags() error = %v, want error about invalid log level", err)
	}
}

func TestLoadFromFlags_InvalidContextRadius(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"pdfparse-mcp", "--contextradius=-5", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for negative context radius")
	}
	if err != nil && !strings.Contains(err.Error(), "context radius") {
		t.Errorf("LoadFromFlags() error = %v, want error about context radius", err)
	}
}

func TestLoadFromFlags_VersionFlag(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"pdfparse-mcp", "--version"})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected version error")
	}
	if err != nil && err.Error() != "version requested" {
		t.Errorf("LoadFromFlags() error = %v, want 'version requested'", err)
	}
}
