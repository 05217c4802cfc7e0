package main

import (
	"fmt"
	"os"

	"gtv/internal/config"
	"gtv/internal/errors"
	"gtv/internal/logging"
)

// loadConfig reads .gtv/config.json from the working directory, falling
// back to built-in defaults when it is absent.
func loadConfig() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the command logger from config, with the persistent
// log flags taking precedence.
func newLogger(cfg *config.Config) *logging.Logger {
	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.ParseLevel(level),
	})
}

// fatal reports a pipeline error on stderr with its stable code and
// exits non-zero.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", errors.CodeOf(err), err)
	os.Exit(1)
}
