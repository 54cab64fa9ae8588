// Package config loads the web2pdf configuration file, applies environment
// overrides and reads job files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/fileutil"
	"github.com/alnah/go-web2pdf/internal/logging"
	"github.com/alnah/go-web2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidLog      = errors.New("invalid log settings")
	ErrJobNotFound     = errors.New("job file not found")
	ErrJobParse        = errors.New("failed to parse job file")
)

// appDir is the directory name under the user config directory.
const appDir = "go-web2pdf"

// File is the on-disk configuration: the renderer settings plus the CLI's
// own logging settings.
type File struct {
	web2pdf.Config `yaml:",inline"`
	Log            LogConfig `yaml:"log"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error, disabled (default: warn)
	Format string `yaml:"format"` // console, json (default: console)
}

// DefaultConfig returns the renderer defaults with console logging at warn.
func DefaultConfig() *File {
	return &File{
		Config: web2pdf.DefaultConfig(),
		Log:    LogConfig{Level: "warn", Format: logging.FormatConsole},
	}
}

// Validate checks renderer settings and log settings.
func (f *File) Validate() error {
	if err := f.Config.Validate(); err != nil {
		return err
	}
	switch strings.ToLower(f.Log.Format) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q (must be console or json)", ErrInvalidLog, f.Log.Format)
	}
	if !logging.IsLevel(f.Log.Level) {
		return fmt.Errorf("%w: log.level %q", ErrInvalidLog, f.Log.Level)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name over the
// defaults. If nameOrPath contains a path separator, it's treated as a file
// path. Otherwise, it's searched in standard locations. Unknown keys are
// rejected. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*File, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFile(configPath, cfg, true); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve builds the effective configuration: defaults, then the named
// file when nameOrPath is set, then environment overrides. The result is
// validated once.
func Resolve(nameOrPath string, getenv func(string) string) (*File, error) {
	cfg := DefaultConfig()
	if nameOrPath != "" {
		loaded, err := LoadConfig(nameOrPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := ApplyEnv(cfg, getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadJob reads a job file. Unknown keys are ignored so job files written
// for other tools still load.
func LoadJob(path string) (*web2pdf.Job, error) {
	var job web2pdf.Job
	if err := yamlutil.ReadFile(path, &job, false); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrJobNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrJobParse, path, err)
	}
	return &job, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-web2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}

// NotFoundError lists the locations searched for a named config.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

// Unwrap makes errors.Is(err, ErrConfigNotFound) hold.
func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}
