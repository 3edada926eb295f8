package cssurl

import (
	"os"
	"path/filepath"
	"testing"
)

// Real leading bytes, so content sniffing is exercised rather than extensions.
var (
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	woffData = []byte("wOFF\x00\x01\x00\x00\x00\x00\x00\x2c\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")
	mp3Data  = []byte("ID3\x03\x00\x00\x00\x00\x00\x0a\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")
	svgData  = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`)
	xmlData  = []byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<root><item/></root>\n")
	textData = []byte("plain text asset\n")
)

// writeFixture writes data to dir/rel, creating parent directories, and
// returns the absolute path.
func writeFixture(t *testing.T, dir, rel string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating fixture dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("abs fixture path: %v", err)
	}
	return abs
}

// mustResolver creates a Resolver rooted at baseDir with output under
// baseDir/dist.
func mustResolver(t *testing.T, baseDir string, opts ...Option) *Resolver {
	t.Helper()

	all := append([]Option{WithBaseDir(baseDir), WithPublicPath("dist")}, opts...)
	r, err := NewResolver(all...)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	return r
}
