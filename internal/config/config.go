// Package config loads the optional YAML configuration file that supplies
// defaults for the resume and letter commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-stitchjob/internal/fileutil"
	"github.com/alnah/go-stitchjob/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength       = 4096
	MaxClassNameLength  = 64
	MaxCommandLength    = 256
	MaxDateFormatLength = 60
	MaxCompileRuns      = 5
	MaxCompileTimeout   = 10 * time.Minute
)

// Defaults applied by DefaultConfig.
const (
	DefaultResumeInput    = "resume/resume.xml"
	DefaultLetterInput    = "letter/letter.md"
	DefaultSignatureImage = "letter/signature.png"
	DefaultLetterDate     = "auto:long"
	DefaultCompileCommand = "pdflatex"
	DefaultCompileRuns    = 1
	DefaultCompileTimeout = 2 * time.Minute
	DefaultResumeEscaping = "math"
)

// Config holds all configuration for a stitch run.
type Config struct {
	Resume  ResumeConfig  `yaml:"resume"`
	Letter  LetterConfig  `yaml:"letter"`
	Output  OutputConfig  `yaml:"output"`
	Compile CompileConfig `yaml:"compile"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// ResumeConfig defines resume conversion options.
type ResumeConfig struct {
	Input    string `yaml:"input"`    // Default resume source
	Escaping string `yaml:"escaping"` // "math" or "plain"
	Class    string `yaml:"class"`    // Emitted document class (default: stitched)
}

// LetterConfig defines cover letter options.
type LetterConfig struct {
	Input          string `yaml:"input"`          // Default letter body
	Resume         string `yaml:"resume"`         // Resume providing the contact block (default: resume.input)
	SignatureImage string `yaml:"signatureImage"` // Image used by --signature when metadata names none
	SignatureBase  string `yaml:"signatureBase"`  // Directory signatureImage is relative to (empty = working directory)
	DateFormat     string `yaml:"dateFormat"`     // Fallback for a letter without a date
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = beside the source
}

// CompileConfig defines the external compiler run.
type CompileConfig struct {
	Enabled bool          `yaml:"enabled"`
	Command string        `yaml:"command"`
	Runs    int           `yaml:"runs"`
	Timeout time.Duration `yaml:"timeout"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Resume: ResumeConfig{
			Input:    DefaultResumeInput,
			Escaping: DefaultResumeEscaping,
		},
		Letter: LetterConfig{
			Input:          DefaultLetterInput,
			SignatureImage: DefaultSignatureImage,
			DateFormat:     DefaultLetterDate,
		},
		Compile: CompileConfig{
			Command: DefaultCompileCommand,
			Runs:    DefaultCompileRuns,
			Timeout: DefaultCompileTimeout,
		},
	}
}

// ApplyDefaults fills every unset field with its DefaultConfig value.
// compile.enabled is left as is.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	setDefault(&c.Resume.Input, def.Resume.Input)
	setDefault(&c.Resume.Escaping, def.Resume.Escaping)
	setDefault(&c.Letter.Input, def.Letter.Input)
	setDefault(&c.Letter.SignatureImage, def.Letter.SignatureImage)
	setDefault(&c.Letter.DateFormat, def.Letter.DateFormat)
	setDefault(&c.Compile.Command, def.Compile.Command)
	if c.Compile.Runs == 0 {
		c.Compile.Runs = def.Compile.Runs
	}
	if c.Compile.Timeout == 0 {
		c.Compile.Timeout = def.Compile.Timeout
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// ContactSource returns the resume the letter takes its contact block from.
func (c *Config) ContactSource() string {
	if c.Letter.Resume != "" {
		return c.Letter.Resume
	}
	return c.Resume.Input
}

// Validate checks values and field lengths.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"resume.input", c.Resume.Input, MaxPathLength},
		{"resume.class", c.Resume.Class, MaxClassNameLength},
		{"letter.input", c.Letter.Input, MaxPathLength},
		{"letter.resume", c.Letter.Resume, MaxPathLength},
		{"letter.signatureImage", c.Letter.SignatureImage, MaxPathLength},
		{"letter.signatureBase", c.Letter.SignatureBase, MaxPathLength},
		{"letter.dateFormat", c.Letter.DateFormat, MaxDateFormatLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"compile.command", c.Compile.Command, MaxCommandLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Resume.Escaping) {
	case "", "math", "plain":
		// valid
	default:
		return fmt.Errorf("%w: resume.escaping %q (must be math or plain)", ErrInvalidValue, c.Resume.Escaping)
	}

	if c.Compile.Runs < 0 || c.Compile.Runs > MaxCompileRuns {
		return fmt.Errorf("%w: compile.runs must be between 0 and %d, got %d", ErrInvalidValue, MaxCompileRuns, c.Compile.Runs)
	}
	if c.Compile.Timeout < 0 || c.Compile.Timeout > MaxCompileTimeout {
		return fmt.Errorf("%w: compile.timeout must be between 0 and %s, got %s", ErrInvalidValue, MaxCompileTimeout, c.Compile.Timeout)
	}

	if c.Assets.BasePath != "" {
		info, err := os.Stat(c.Assets.BasePath)
		if err != nil {
			return fmt.Errorf("%w: assets.basePath %q does not exist", ErrInvalidValue, c.Assets.BasePath)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: assets.basePath %q is not a directory", ErrInvalidValue, c.Assets.BasePath)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file take their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order:
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-stitchjob", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in SearchPaths order.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
