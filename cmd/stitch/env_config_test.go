package main

// Notes:
// - loadEnvConfig takes a getenv function, so tests use maps and run in
//   parallel instead of t.Setenv.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-stitchjob/internal/config"
)

func mapEnv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	cfg, err := loadEnvConfig(mapEnv(map[string]string{
		"STITCH_CONFIG":     "job.yaml",
		"STITCH_OUTPUT_DIR": "build",
		"STITCH_COMPILER":   "xelatex",
		"STITCH_TIMEOUT":    "90s",
		"STITCH_WORKERS":    "3",
	}))
	if err != nil {
		t.Fatalf("loadEnvConfig() unexpected error: %v", err)
	}

	want := envConfig{
		ConfigPath: "job.yaml",
		OutputDir:  "build",
		Compiler:   "xelatex",
		Timeout:    90 * time.Second,
		Workers:    3,
	}
	if *cfg != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadEnvConfig_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := loadEnvConfig(mapEnv(nil))
	if err != nil {
		t.Fatalf("loadEnvConfig() unexpected error: %v", err)
	}
	if *cfg != (envConfig{}) {
		t.Errorf("loadEnvConfig() = %+v, want zero value", *cfg)
	}
}

func TestLoadEnvConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unparseable timeout", "STITCH_TIMEOUT", "soon"},
		{"zero timeout", "STITCH_TIMEOUT", "0s"},
		{"negative timeout", "STITCH_TIMEOUT", "-1m"},
		{"non-numeric workers", "STITCH_WORKERS", "many"},
		{"negative workers", "STITCH_WORKERS", "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := loadEnvConfig(mapEnv(map[string]string{tt.key: tt.val}))
			if !errors.Is(err, ErrInvalidEnv) {
				t.Fatalf("loadEnvConfig() error = %v, want ErrInvalidEnv", err)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q should name %s", err, tt.key)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEnvConfigApply - Overrides over the config file
// ---------------------------------------------------------------------------

func TestEnvConfigApply(t *testing.T) {
	t.Parallel()

	t.Run("set values override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		e := &envConfig{OutputDir: "build", Compiler: "lualatex", Timeout: time.Minute}
		e.apply(cfg)

		if cfg.Output.Dir != "build" || cfg.Compile.Command != "lualatex" || cfg.Compile.Timeout != time.Minute {
			t.Errorf("apply() = %+v / %+v", cfg.Output, cfg.Compile)
		}
	})

	t.Run("unset values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Output.Dir = "out"
		(&envConfig{}).apply(cfg)

		if cfg.Output.Dir != "out" || cfg.Compile.Command != config.DefaultCompileCommand {
			t.Errorf("apply() changed config: %+v / %+v", cfg.Output, cfg.Compile)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars([]string{
		"STITCH_WORKERS=2",
		"STITCH_COMPILR=xelatex",
		"PATH=/usr/bin",
		"STITCH_OUTPUTDIR=build",
	}, &buf)

	got := buf.String()
	want := "warning: unknown environment variable STITCH_COMPILR\n" +
		"warning: unknown environment variable STITCH_OUTPUTDIR\n"
	if got != want {
		t.Errorf("warnUnknownEnvVars() = %q, want %q", got, want)
	}
}
