package main

import (
	"fmt"
	"os"
	"path/filepath"

	cssurl "github.com/alnah/go-cssurl"
	"github.com/alnah/go-cssurl/internal/config"
)

// loadSettings builds the effective config from, in increasing priority:
// defaults, the config file, CSSURL_* variables. Flags are merged by the caller.
// The config file is --config, else CSSURL_CONFIG, else ./cssurl.yaml if present.
func loadSettings(common commonFlags, envCfg *envConfig) (*config.Config, error) {
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		name = config.FindDefault()
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeResolverFlags merges CLI flags into config. CLI values override config
// values. A flag alias replaces a config alias of the same name in place;
// new names are appended. Flag include paths are searched first.
func mergeResolverFlags(f resolverFlags, cfg *config.Config) error {
	if f.publicPath != "" {
		cfg.PublicPath = f.publicPath
	}
	if f.aliasMatch != "" {
		cfg.AliasMatch = f.aliasMatch
	}
	if f.hash != "" {
		cfg.Hash = f.hash
	}

	for _, raw := range f.aliases {
		a, err := parseAliasFlag(raw)
		if err != nil {
			return err
		}
		replaced := false
		for i := range cfg.Aliases {
			if cfg.Aliases[i].Name == a.Name {
				cfg.Aliases[i].Path = a.Path
				replaced = true
				break
			}
		}
		if !replaced {
			cfg.Aliases = append(cfg.Aliases, a)
		}
	}

	if len(f.includes) > 0 {
		cfg.IncludePaths = append(append([]string{}, f.includes...), cfg.IncludePaths...)
	}

	return cfg.Validate()
}

// newResolver creates a library resolver from the effective config.
// Relative paths resolve against the working directory.
func newResolver(cfg *config.Config, dryRun bool) (*cssurl.Resolver, error) {
	aliases := make([]cssurl.Alias, 0, len(cfg.Aliases))
	for _, a := range cfg.Aliases {
		aliases = append(aliases, cssurl.Alias{Prefix: a.Name, Target: a.Path})
	}

	publicPath := cfg.PublicPath
	if publicPath == "" {
		publicPath = cssurl.DefaultPublicPath
	}

	return cssurl.NewResolver(
		cssurl.WithPublicPath(publicPath),
		cssurl.WithAliases(aliases...),
		cssurl.WithAliasMatch(cssurl.AliasMatch(cfg.AliasMatch)),
		cssurl.WithIncludePaths(cfg.IncludePaths...),
		cssurl.WithHashAlgorithm(cssurl.HashAlgorithm(cfg.Hash)),
		cssurl.WithDryRun(dryRun),
	)
}

// searchedConfigPaths lists where the default config is looked up, for hints.
func searchedConfigPaths() []string {
	paths := []string{config.DefaultName + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-cssurl", config.DefaultName+".yaml"))
	}
	return paths
}
