package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-cssurl/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string   // CSSURL_CONFIG: config file name or path
	PublicPath   string   // CSSURL_PUBLIC_PATH: output root for assets
	OutputDir    string   // CSSURL_OUTPUT_DIR: directory for rewritten CSS
	IncludePaths []string // CSSURL_INCLUDE_PATHS: OS path-list separated
	Hash         string   // CSSURL_HASH: xxhash, blake3
	Workers      int      // CSSURL_WORKERS: parallel workers
}

// knownEnvVars lists valid CSSURL_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CSSURL_CONFIG":        true,
	"CSSURL_PUBLIC_PATH":   true,
	"CSSURL_OUTPUT_DIR":    true,
	"CSSURL_INCLUDE_PATHS": true,
	"CSSURL_HASH":          true,
	"CSSURL_WORKERS":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid worker counts are ignored, not errors.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CSSURL_CONFIG"),
		PublicPath: os.Getenv("CSSURL_PUBLIC_PATH"),
		OutputDir:  os.Getenv("CSSURL_OUTPUT_DIR"),
		Hash:       os.Getenv("CSSURL_HASH"),
	}

	if paths := os.Getenv("CSSURL_INCLUDE_PATHS"); paths != "" {
		for _, p := range filepath.SplitList(paths) {
			if p != "" {
				cfg.IncludePaths = append(cfg.IncludePaths, p)
			}
		}
	}

	if workers := os.Getenv("CSSURL_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized CSSURL_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CSSURL_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Environment values override the config file; CLI flags are merged later
// and override both: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.PublicPath != "" {
		cfg.PublicPath = env.PublicPath
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if len(env.IncludePaths) > 0 {
		cfg.IncludePaths = env.IncludePaths
	}
	if env.Hash != "" {
		cfg.Hash = env.Hash
	}
}
