package main

import (
	"errors"
	"io"
	"testing"

	"github.com/alnah/go-cssurl/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseResolveFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseResolveFlags(t *testing.T) {
	t.Parallel()

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		f, args, err := parseResolveFlags([]string{
			"-c", "site", "-v",
			"-o", "dist/css",
			"-p", "dist",
			"-a", "@assets=./static",
			"--alias", "~fonts=node_modules/fonts",
			"-I", "vendor", "--include", "node_modules",
			"--alias-match", "first",
			"--hash", "blake3",
			"-w", "4",
			"--no-clean", "--dry-run",
			"src/site.css", "src/print.css",
		}, io.Discard)
		if err != nil {
			t.Fatalf("parseResolveFlags() error = %v", err)
		}

		if f.common.config != "site" || !f.common.verbose || f.common.quiet {
			t.Errorf("common = %+v", f.common)
		}
		if f.output != "dist/css" || f.workers != 4 || !f.noClean || !f.dryRun {
			t.Errorf("flags = %+v", f)
		}
		r := f.resolver
		if r.publicPath != "dist" || r.aliasMatch != "first" || r.hash != "blake3" {
			t.Errorf("resolver = %+v", r)
		}
		if len(r.aliases) != 2 || r.aliases[0] != "@assets=./static" || r.aliases[1] != "~fonts=node_modules/fonts" {
			t.Errorf("aliases = %v, want command-line order", r.aliases)
		}
		if len(r.includes) != 2 || r.includes[0] != "vendor" {
			t.Errorf("includes = %v", r.includes)
		}
		if len(args) != 2 || args[1] != "src/print.css" {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("alias value with comma is kept whole", func(t *testing.T) {
		t.Parallel()

		f, _, err := parseResolveFlags([]string{"-a", "@x=a,b"}, io.Discard)
		if err != nil {
			t.Fatalf("parseResolveFlags() error = %v", err)
		}
		if len(f.resolver.aliases) != 1 || f.resolver.aliases[0] != "@x=a,b" {
			t.Errorf("aliases = %v", f.resolver.aliases)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		if _, _, err := parseResolveFlags([]string{"--bogus"}, io.Discard); err == nil {
			t.Error("expected error for unknown flag")
		}
	})
}

func TestParseCleanFlags(t *testing.T) {
	t.Parallel()

	f, err := parseCleanFlags([]string{"-p", "dist", "-q"}, io.Discard)
	if err != nil {
		t.Fatalf("parseCleanFlags() error = %v", err)
	}
	if f.publicPath != "dist" || !f.common.quiet {
		t.Errorf("flags = %+v", f)
	}

	if _, err := parseCleanFlags([]string{"extra"}, io.Discard); err == nil {
		t.Error("expected error for positional argument")
	}
}

// ---------------------------------------------------------------------------
// TestParseAliasFlag - name=path values
// ---------------------------------------------------------------------------

func TestParseAliasFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.Alias
		wantErr bool
	}{
		{"@assets=./static", config.Alias{Name: "@assets", Path: "./static"}, false},
		{"~x=a=b", config.Alias{Name: "~x", Path: "a=b"}, false},
		{" @a =dir", config.Alias{Name: "@a", Path: "dir"}, false},
		{"noequals", config.Alias{}, true},
		{"=dir", config.Alias{}, true},
		{"@a=", config.Alias{}, true},
	}

	for _, tt := range tests {
		got, err := parseAliasFlag(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseAliasFlag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidAliasFlag) {
			t.Errorf("parseAliasFlag(%q) error = %v, want ErrInvalidAliasFlag", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("parseAliasFlag(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}
