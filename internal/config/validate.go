package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thoreinstein/sitrep/internal/errors"
	"github.com/thoreinstein/sitrep/pkg/report"
)

// Color mode values accepted by the color setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a config schema version this build
	// cannot read.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidColor indicates a color mode other than auto, always or never.
	ErrInvalidColor = errors.New("invalid color mode")

	// ErrInvalidFailOn indicates a fail_on value that is not a warning
	// level name.
	ErrInvalidFailOn = errors.New("invalid fail_on level")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, &ValueError{
			Value: strconv.Itoa(cfg.Version),
			Err:   ErrUnsupportedVersion,
		})
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, &ValueError{
			Value: cfg.Color,
			Err:   ErrInvalidColor,
		})
	}

	if _, err := report.ParseLevel(cfg.FailOn); err != nil {
		errs = append(errs, &ValueError{
			Value: cfg.FailOn,
			Err:   ErrInvalidFailOn,
		})
	}

	if cfg.LogFile != "" {
		if err := validatePath(cfg.LogFile); err != nil {
			errs = append(errs, &PathError{
				Field: "log_file",
				Path:  cfg.LogFile,
				Err:   err,
			})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// Clean the path and check it's not empty after cleaning
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// ValueError represents a validation error for a specific config value.
type ValueError struct {
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return e.Err.Error() + ": " + e.Value
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
