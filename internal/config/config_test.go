package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestInit(t *testing.T) {
	// Reset viper state
	viper.Reset()

	Init()

	// Check defaults are set
	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if got := viper.GetString("color"); got != ColorAuto {
		t.Errorf("expected color default %q, got %q", ColorAuto, got)
	}
	if got := viper.GetString("fail_on"); got != "error" {
		t.Errorf("expected fail_on default %q, got %q", "error", got)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	viper.Reset()

	// Point SITREP_CONFIG_DIR at an empty temp dir to avoid loading
	// any real config
	tempDir := t.TempDir()
	t.Setenv("SITREP_CONFIG_DIR", tempDir)

	Init()

	// Load with no config file should not error
	cfg, err := Load("")
	if err != nil {
		t.Errorf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config to be returned")
	}
	if cfg.Version != 1 {
		t.Errorf("expected default version 1, got %d", cfg.Version)
	}
	if cfg.FailOn != "error" {
		t.Errorf("expected default fail_on %q, got %q", "error", cfg.FailOn)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	viper.Reset()

	// Create temp config file
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("color: never\nfail_on: warn\n")
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Color != ColorNever {
		t.Errorf("expected color %q, got %q", ColorNever, cfg.Color)
	}
	if cfg.FailOn != "warn" {
		t.Errorf("expected fail_on %q, got %q", "warn", cfg.FailOn)
	}
	// Untouched keys keep their defaults
	if cfg.Version != 1 {
		t.Errorf("expected version default 1, got %d", cfg.Version)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	viper.Reset()
	Init()

	// Load with non-existent config file should error
	_, err := Load("/non/existent/path/config.yaml")
	if err == nil {
		t.Error("Load() with non-existent explicit path should error")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unsupported version",
			content: "version: 2\n",
			wantErr: "unsupported config version: 2",
		},
		{
			name:    "invalid color mode",
			content: "color: sometimes\n",
			wantErr: "invalid color mode: sometimes",
		},
		{
			name:    "invalid fail_on level",
			content: "fail_on: loud\n",
			wantErr: "invalid fail_on level: loud",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			Init()

			dir := t.TempDir()
			configPath := filepath.Join(dir, "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := Load(configPath)
			if err == nil {
				t.Error("Load() expected error, got nil")
			} else if err.Error() != "validating config: "+tt.wantErr {
				t.Errorf("Load() error = %v, want %v", err, "validating config: "+tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		wantErrs int
	}{
		{
			name:     "valid config",
			cfg:      &Config{Version: 1, Color: ColorAuto, FailOn: "error"},
			wantErrs: 0,
		},
		{
			name:     "valid with log file",
			cfg:      &Config{Version: 1, Color: ColorAlways, FailOn: "none", LogFile: "/tmp/sitrep.log"},
			wantErrs: 0,
		},
		{
			name:     "nil config",
			cfg:      nil,
			wantErrs: 1,
		},
		{
			name:     "everything wrong",
			cfg:      &Config{Version: 3, Color: "mostly", FailOn: "shrug", LogFile: "."},
			wantErrs: 4,
		},
		{
			name:     "null byte in log file",
			cfg:      &Config{Version: 1, Color: ColorAuto, FailOn: "warn", LogFile: "bad\x00path"},
			wantErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.cfg)
			if len(errs) != tt.wantErrs {
				t.Errorf("Validate() returned %d errors, want %d: %v", len(errs), tt.wantErrs, errs)
			}
		})
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	// 1. Setup a specific config file
	dir := t.TempDir()
	fileA := filepath.Join(dir, "config_a.yaml")
	if err := os.WriteFile(fileA, []byte("fail_on: fatal\n"), 0600); err != nil {
		t.Fatal(err)
	}

	// 2. Initialize and Load specific file
	viper.Reset()
	Init()
	if _, err := Load(fileA); err != nil {
		t.Fatalf("First Load failed: %v", err)
	}

	// 3. Setup a default config file in a different directory
	dirB := t.TempDir()
	t.Setenv("SITREP_CONFIG_DIR", dirB)
	fileB := filepath.Join(dirB, "config.yaml")
	if err := os.WriteFile(fileB, []byte("fail_on: concern\n"), 0600); err != nil {
		t.Fatal(err)
	}

	// 4. Re-Initialize. This SHOULD clear the specific file from step 2.
	Init()

	// 5. Load with empty path. Should pick up fileB from SITREP_CONFIG_DIR.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Second Load failed: %v", err)
	}

	// 6. Verify we got config B
	if cfg.FailOn != "concern" {
		t.Errorf("expected config from default path (fileB) with fail_on=concern, got %q", cfg.FailOn)
		if viper.ConfigFileUsed() == fileA {
			t.Errorf("Still using fileA: %s", viper.ConfigFileUsed())
		}
	}
}
