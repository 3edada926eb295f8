package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cssurl/internal/fileutil"
	"github.com/alnah/go-cssurl/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidAlias    = errors.New("invalid alias")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "cssurl"

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxAliasLength    = 256  // "@assets", "~fonts"
	MaxAliases        = 256
	MaxIncludePaths   = 256
	MaxEnumLength     = 20 // "longest", "blake3"
	DefaultPublicPath = "/"
)

// Accepted enum values, mirrored from the cssurl package to keep this
// package free of library imports.
var (
	aliasMatchValues = []string{"longest", "first"}
	hashValues       = []string{"xxhash", "blake3"}
)

// Config holds all configuration for asset resolution.
type Config struct {
	PublicPath   string       `yaml:"publicPath"`   // Output root for copied assets (default "/")
	Aliases      AliasList    `yaml:"aliases"`      // Ordered prefix substitutions
	AliasMatch   string       `yaml:"aliasMatch"`   // "longest" (default) or "first"
	IncludePaths []string     `yaml:"includePaths"` // Fallback search directories, in order
	Hash         string       `yaml:"hash"`         // "xxhash" (default) or "blake3"
	Output       OutputConfig `yaml:"output"`
	Clean        *bool        `yaml:"clean"` // Wipe category folders before a run (default true)
}

// OutputConfig defines where rewritten CSS is written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = <publicPath>/css
}

// Alias maps a path prefix to a real path prefix.
type Alias struct {
	Name string
	Path string
}

// AliasList keeps aliases in the order they appear in the config file.
type AliasList []Alias

// UnmarshalYAML decodes a YAML mapping into an ordered alias list.
func (l *AliasList) UnmarshalYAML(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" || string(trimmed) == "~" {
		*l = nil
		return nil
	}

	entries, err := yamlutil.UnmarshalOrderedMap(data)
	if err != nil {
		return err
	}

	list := make(AliasList, 0, len(entries))
	for _, e := range entries {
		list = append(list, Alias{Name: e.Key, Path: e.Value})
	}
	*l = list
	return nil
}

// ShouldClean reports whether category folders are wiped before a run.
func (c *Config) ShouldClean() bool {
	return c.Clean == nil || *c.Clean
}

// Validate checks field lengths, alias keys, and enum values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("publicPath", c.PublicPath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}

	if len(c.Aliases) > MaxAliases {
		return fmt.Errorf("%w: aliases (%d entries, max %d)", ErrFieldTooLong, len(c.Aliases), MaxAliases)
	}
	seen := make(map[string]bool, len(c.Aliases))
	for i, a := range c.Aliases {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: aliases[%d]: empty name", ErrInvalidAlias, i)
		}
		if a.Path == "" {
			return fmt.Errorf("%w: %q: empty path", ErrInvalidAlias, a.Name)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: %q: duplicate name", ErrInvalidAlias, a.Name)
		}
		seen[a.Name] = true
		if err := validateFieldLength(fmt.Sprintf("aliases[%q]", a.Name), a.Name, MaxAliasLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("aliases[%q].path", a.Name), a.Path, MaxPathLength); err != nil {
			return err
		}
	}

	if len(c.IncludePaths) > MaxIncludePaths {
		return fmt.Errorf("%w: includePaths (%d entries, max %d)", ErrFieldTooLong, len(c.IncludePaths), MaxIncludePaths)
	}
	for i, p := range c.IncludePaths {
		if p == "" {
			return fmt.Errorf("%w: includePaths[%d]: empty path", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("includePaths[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}

	if err := validateEnum("aliasMatch", c.AliasMatch, aliasMatchValues); err != nil {
		return err
	}
	if err := validateEnum("hash", c.Hash, hashValues); err != nil {
		return err
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

// validateEnum accepts an empty value (use default) or one of allowed, case-insensitively.
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	if err := validateFieldLength(fieldName, value, MaxEnumLength); err != nil {
		return err
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, " or "))
}

// DefaultConfig returns the configuration used when no file is given:
// no aliases, no include paths, public path "/".
func DefaultConfig() *Config {
	return &Config{
		PublicPath:   DefaultPublicPath,
		Aliases:      nil,
		IncludePaths: nil,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
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

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.PublicPath == "" {
		cfg.PublicPath = DefaultPublicPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindDefault returns the path of ./cssurl.yaml or ./cssurl.yml when present,
// or an empty string. It never searches the user config directory.
func FindDefault() string {
	for _, ext := range []string{".yaml", ".yml"} {
		if p := DefaultName + ext; fileutil.FileExists(p) {
			return p
		}
	}
	return ""
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-cssurl/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-cssurl", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
