package cssurl

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Category is the output subfolder an asset is copied into.
type Category string

// Asset categories. CategoryOther places the asset directly under the public path.
const (
	CategoryImage Category = "img"
	CategoryAudio Category = "audio"
	CategoryVideo Category = "video"
	CategoryFont  Category = "fonts"
	CategoryOther Category = ""
)

// svgMIME is what an XML file with an .svg extension is classified as.
const svgMIME = "image/svg+xml"

// categoryRule maps content types to a category. Rules are evaluated in
// order; the first match wins.
type categoryRule struct {
	match    func(mimeType string) bool
	category Category
}

var categoryRules = []categoryRule{
	{match: hasTypePrefix("image/"), category: CategoryImage},
	{match: hasTypePrefix("audio/"), category: CategoryAudio},
	{match: hasTypePrefix("video/"), category: CategoryVideo},
	{match: isFontType, category: CategoryFont},
}

// Categories returns the subfolder categories, in rule order.
// CategoryOther is not included: it has no folder of its own.
func Categories() []Category {
	cats := make([]Category, 0, len(categoryRules))
	for _, r := range categoryRules {
		cats = append(cats, r.category)
	}
	return cats
}

// Classify maps a content type to a category. Parameters such as
// "; charset=utf-8" and letter case are ignored. Types that match no rule
// fall back to CategoryOther.
func Classify(mimeType string) Category {
	mt := baseMIME(mimeType)
	for _, r := range categoryRules {
		if r.match(mt) {
			return r.category
		}
	}
	return CategoryOther
}

// DetectMIME sniffs the content type of the file at path from its leading
// bytes. Content sniffers cannot tell SVG from generic XML, so an XML result
// for a file with an .svg extension is reported as image/svg+xml.
func DetectMIME(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDetectMIME, err)
	}

	mt := baseMIME(m.String())
	if isXMLType(mt) && strings.EqualFold(filepath.Ext(path), ".svg") {
		return svgMIME, nil
	}
	return mt, nil
}

// baseMIME lowercases a content type and strips its parameters.
func baseMIME(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func hasTypePrefix(prefix string) func(string) bool {
	return func(mt string) bool {
		return strings.HasPrefix(mt, prefix)
	}
}

// isFontType matches font/* and the legacy application font types, including
// the Embedded OpenType type browsers still send for .eot files.
func isFontType(mt string) bool {
	switch {
	case strings.HasPrefix(mt, "font/"),
		mt == "application/vnd.ms-fontobject",
		strings.HasPrefix(mt, "application/font-"),
		strings.HasPrefix(mt, "application/x-font-"):
		return true
	}
	return false
}

func isXMLType(mt string) bool {
	return mt == "application/xml" || mt == "text/xml"
}
