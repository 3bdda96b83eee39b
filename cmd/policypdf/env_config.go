package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vivaly/policypdf/internal/config"
)

// envConfig holds overrides from POLICYPDF_* environment variables.
type envConfig struct {
	ConfigPath string // POLICYPDF_CONFIG: config file name or path
	Input      string // POLICYPDF_INPUT: markdown source
	Output     string // POLICYPDF_OUTPUT: PDF destination
	Timeout    string // POLICYPDF_TIMEOUT: render timeout, Go duration
}

// knownEnvVars lists the recognized POLICYPDF_* variables.
var knownEnvVars = map[string]bool{
	"POLICYPDF_CONFIG":  true,
	"POLICYPDF_INPUT":   true,
	"POLICYPDF_OUTPUT":  true,
	"POLICYPDF_TIMEOUT": true,
}

// loadEnvConfig reads the POLICYPDF_* variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("POLICYPDF_CONFIG"),
		Input:      os.Getenv("POLICYPDF_INPUT"),
		Output:     os.Getenv("POLICYPDF_OUTPUT"),
		Timeout:    os.Getenv("POLICYPDF_TIMEOUT"),
	}
}

// warnUnknownEnvVars prints a warning for every unrecognized POLICYPDF_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "POLICYPDF_") {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies set variables over the file config, giving
// flags > environment > config file > defaults once flags are applied.
// The timeout is validated with the rest of the config.
func applyEnvConfig(env *envConfig, cfg *config.Config) error {
	if env.Input != "" {
		cfg.Input = env.Input
	}
	if env.Output != "" {
		cfg.Output = env.Output
	}
	if env.Timeout != "" {
		cfg.Timeout = env.Timeout
	}
	return cfg.Validate()
}
