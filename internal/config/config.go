package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/thoreinstein/sitrep/internal/errors"
	"github.com/thoreinstein/sitrep/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "sitrep"

// Config represents the top-level configuration structure.
type Config struct {
	// Version is the config schema version. Only version 1 exists.
	Version int `mapstructure:"version" yaml:"version"`

	// Color controls colored terminal output: auto, always or never.
	Color string `mapstructure:"color" yaml:"color"`

	// FailOn is the default warning level threshold for `sitrep check`.
	FailOn string `mapstructure:"fail_on" yaml:"fail_on"`

	// LogFile, when set, receives JSON logs in addition to stderr.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
}

// Init initializes Viper with default configuration and search paths,
// discarding any previously loaded state. Call this once at application
// startup before accessing config values.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence). SITREP_CONFIG_DIR
	// overrides the XDG location, mainly for tests.
	viper.AddConfigPath(".")
	if dir := os.Getenv("SITREP_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath(paths.ConfigDir())
	}

	// Environment variable support
	viper.SetEnvPrefix("SITREP")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("color", ColorAuto)
	viper.SetDefault("fail_on", "error")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found
// (when path is empty). The loaded configuration is validated before it
// is returned.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (missing explicit file, parsing, permissions, etc)
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}
