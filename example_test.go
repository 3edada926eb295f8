package cssurl_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cssurl "github.com/alnah/go-cssurl"
)

// Example resolves a stylesheet whose background image lives under an alias.
func Example() {
	dir, err := os.MkdirTemp("", "cssurl-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	// A 1x1 PNG header is enough for content sniffing.
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	if err := os.MkdirAll(filepath.Join(dir, "static"), 0o750); err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := os.WriteFile(filepath.Join(dir, "static", "bg.png"), png, 0o644); err != nil {
		fmt.Println("error:", err)
		return
	}

	r, err := cssurl.NewResolver(
		cssurl.WithBaseDir(dir),
		cssurl.WithPublicPath("dist"),
		cssurl.WithAliases(cssurl.Alias{Prefix: "@assets", Target: "./static"}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := r.Resolve(context.Background(), cssurl.Input{
		CSS: "body { background: url('@assets/bg.png'); }",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(res.Assets[0].Category)
	fmt.Println(strings.HasPrefix(res.CSS, "body { background: url(../img/"))
	// Output:
	// img
	// true
}

// Example_dryRun plans destinations without touching the filesystem.
func Example_dryRun() {
	r, err := cssurl.NewResolver(cssurl.WithPublicPath("dist"), cssurl.WithDryRun(true))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := r.Resolve(context.Background(), cssurl.Input{
		CSS: "a { background: url(data:image/gif;base64,R0lGOD); } b { background: url(missing.png); }",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("skipped:", res.Skipped)
	fmt.Println("unresolved:", res.Unresolved[0].Path)
	// Output:
	// skipped: 1
	// unresolved: missing.png
}
