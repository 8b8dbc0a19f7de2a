package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-stitchjob/internal/config"
)

// ErrInvalidEnv indicates a STITCH_* variable holds an unusable value.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envPrefix is shared by every recognized variable.
const envPrefix = "STITCH_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // STITCH_CONFIG: config file name or path
	OutputDir  string        // STITCH_OUTPUT_DIR: output directory
	Compiler   string        // STITCH_COMPILER: engine binary
	Timeout    time.Duration // STITCH_TIMEOUT: compile timeout
	Workers    int           // STITCH_WORKERS: parallel resume conversions
}

// knownEnvVars lists valid STITCH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"STITCH_CONFIG":     true,
	"STITCH_OUTPUT_DIR": true,
	"STITCH_COMPILER":   true,
	"STITCH_TIMEOUT":    true,
	"STITCH_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath: getenv("STITCH_CONFIG"),
		OutputDir:  getenv("STITCH_OUTPUT_DIR"),
		Compiler:   getenv("STITCH_COMPILER"),
	}

	if v := getenv("STITCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: STITCH_TIMEOUT=%q (use a positive duration like 30s or 2m)", ErrInvalidEnv, v)
		}
		cfg.Timeout = d
	}

	if v := getenv("STITCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: STITCH_WORKERS=%q (use a non-negative integer)", ErrInvalidEnv, v)
		}
		cfg.Workers = n
	}

	return cfg, nil
}

// apply overrides cfg with every set environment value.
func (e *envConfig) apply(cfg *config.Config) {
	if e.OutputDir != "" {
		cfg.Output.Dir = e.OutputDir
	}
	if e.Compiler != "" {
		cfg.Compile.Command = e.Compiler
	}
	if e.Timeout > 0 {
		cfg.Compile.Timeout = e.Timeout
	}
}

// warnUnknownEnvVars writes a warning for each STITCH_* variable that is
// not recognized, most likely a typo.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s\n", name)
	}
}
