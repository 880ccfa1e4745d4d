// Package config provides configuration management for the sitrep CLI.
//
// This package handles loading and validating sitrep's own configuration
// file. Report files themselves are never configuration; this package
// only concerns the tool's behavior.
//
// # Configuration File
//
// The default configuration file location is ~/.config/sitrep/config.yaml
// (following XDG conventions), with the current directory searched first.
// The configuration file uses YAML format with the following structure:
//
//	version: 1
//	color: auto        # auto, always or never
//	fail_on: error     # default threshold for `sitrep check`
//	log_file: ""       # optional JSON log destination
//
// All keys can also be set through SITREP_* environment variables.
//
// # Loading Configuration
//
// Call [Init] once at startup, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load("") // or an explicit path
//	if err != nil {
//	    return err
//	}
//
// With an empty path, a missing config file is not an error: defaults
// apply. With an explicit path, the file must exist.
//
// # Validation
//
// Configurations are validated during [Load]. Use [Validate] directly
// when constructing a Config by hand:
//
//	errs := config.Validate(cfg)
//	if len(errs) > 0 {
//	    for _, e := range errs {
//	        fmt.Println(e)
//	    }
//	}
package config
