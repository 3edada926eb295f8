package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	cssurl "github.com/alnah/go-cssurl"
	"github.com/alnah/go-cssurl/internal/config"
	"github.com/alnah/go-cssurl/internal/fileutil"
	"github.com/alnah/go-cssurl/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Config   configInfo `json:"config"`
	Paths    pathsInfo  `json:"paths"`
	Env      envInfo    `json:"environment"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// configInfo describes the config file in effect.
type configInfo struct {
	Source string `json:"source"` // path, or "defaults"
	Valid  bool   `json:"valid"`
	Hash   string `json:"hash"`
}

// pathsInfo holds filesystem check results.
type pathsInfo struct {
	PublicPath     string          `json:"public_path"`
	PublicWritable bool            `json:"public_path_writable"`
	Aliases        []pathCheckInfo `json:"aliases,omitempty"`
	IncludePaths   []pathCheckInfo `json:"include_paths,omitempty"`
}

// pathCheckInfo reports whether a configured directory exists.
type pathCheckInfo struct {
	Name   string `json:"name,omitempty"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
	Workers   int    `json:"workers"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	var configName string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			jsonOutput = true
		case "-c", "--config":
			if i+1 < len(args) {
				configName = args[i+1]
				i++
			}
		case "-h", "--help":
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
	}

	result := runDoctor(configName)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(configName string) *doctorResult {
	envCfg := loadEnvConfig()
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
			Workers: resolveWorkers(0, envCfg.Workers, 0),
		},
	}

	cfg := checkConfig(result, configName, envCfg)
	if cfg != nil {
		checkPaths(result, cfg)
	}
	checkEnvironment(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig loads the effective config and records where it came from.
func checkConfig(result *doctorResult, configName string, envCfg *envConfig) *config.Config {
	source := configName
	if source == "" {
		source = envCfg.ConfigPath
	}
	if source == "" {
		source = config.FindDefault()
	}
	if source == "" {
		source = "defaults"
	}
	result.Config.Source = source

	cfg, err := loadSettings(commonFlags{config: configName}, envCfg)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return nil
	}

	hash, err := cssurl.ParseHashAlgorithm(cfg.Hash)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return nil
	}
	result.Config.Hash = string(hash)
	result.Config.Valid = true
	return cfg
}

// checkPaths verifies the public path is writable and configured directories exist.
func checkPaths(result *doctorResult, cfg *config.Config) {
	resolver, err := newResolver(cfg, true)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	root := resolver.OutputRoot()
	result.Paths.PublicPath = root

	if hints.ForPublicPathRoot(root) != "" {
		result.Warnings = append(result.Warnings,
			"Public path is the filesystem root. Set publicPath or CSSURL_PUBLIC_PATH")
	}
	if isWritable(root) {
		result.Paths.PublicWritable = true
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("Public path not writable: %s", root))
	}

	for _, a := range cfg.Aliases {
		check := pathCheckInfo{Name: a.Name, Path: a.Path, Exists: fileutil.DirExists(a.Path)}
		result.Paths.Aliases = append(result.Paths.Aliases, check)
		if !check.Exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Alias %s points to a missing directory: %s", a.Name, a.Path))
		}
	}

	for _, p := range cfg.IncludePaths {
		check := pathCheckInfo{Path: p, Exists: fileutil.DirExists(p)}
		result.Paths.IncludePaths = append(result.Paths.IncludePaths, check)
		if !check.Exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Include path does not exist: %s", p))
		}
	}
}

// isWritable reports whether files can be created in dir, or in its nearest
// existing ancestor when dir does not exist yet.
func isWritable(dir string) bool {
	for !fileutil.DirExists(dir) {
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
	f, err := os.CreateTemp(dir, ".cssurl-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container = hints.IsInContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "cssurl doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	if r.Config.Valid {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
		fmt.Fprintf(w, "  [OK] Hash: %s\n", r.Config.Hash)
	} else {
		fmt.Fprintf(w, "  [ERROR] Source: %s\n", r.Config.Source)
	}
	fmt.Fprintln(w)

	if r.Paths.PublicPath != "" {
		fmt.Fprintln(w, "Paths")
		if r.Paths.PublicWritable {
			fmt.Fprintf(w, "  [OK] Public path: %s (writable)\n", r.Paths.PublicPath)
		} else {
			fmt.Fprintf(w, "  [ERROR] Public path: %s (not writable)\n", r.Paths.PublicPath)
		}
		for _, a := range r.Paths.Aliases {
			fmt.Fprintf(w, "  %s Alias %s -> %s\n", status(a.Exists), a.Name, a.Path)
		}
		for _, p := range r.Paths.IncludePaths {
			fmt.Fprintf(w, "  %s Include %s\n", status(p.Exists), p.Path)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] Workers: %d\n", r.Env.Workers)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func status(ok bool) string {
	if ok {
		return "[OK]"
	}
	return "[WARN]"
}
