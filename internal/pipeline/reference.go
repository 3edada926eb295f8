package pipeline

import (
	"iter"
	"regexp"
	"strings"

	"github.com/alnah/go-cssurl/internal/fileutil"
)

// urlPattern matches the CSS url() function, lazily up to the first ")".
// Like the rest of this package it does not parse CSS; parentheses inside an
// unquoted path end the match early.
var urlPattern = regexp.MustCompile(`(?i)url\((.*?)\)`)

// quoteChars are stripped from both ends of a reference path.
const quoteChars = `'"`

// Reference is one url() occurrence in a CSS document.
// Start and End are byte offsets of the full url(...) span, so Raw == css[Start:End].
type Reference struct {
	Start int
	End   int
	Raw   string // full match, e.g. url('img/a.png?v=1')
	Path  string // unquoted, trimmed argument, e.g. img/a.png?v=1
}

// Lookup returns the path used for filesystem lookup: Path truncated before
// the first "?" or "#".
func (r Reference) Lookup() string {
	if i := strings.IndexAny(r.Path, "?#"); i >= 0 {
		return r.Path[:i]
	}
	return r.Path
}

// Suffix returns the query string and fragment that Lookup drops.
func (r Reference) Suffix() string {
	return r.Path[len(r.Lookup()):]
}

// IsDataURI reports whether the reference is an inline data: URI.
func (r Reference) IsDataURI() bool {
	return len(r.Path) >= 5 && strings.EqualFold(r.Path[:5], "data:")
}

// IsRemote reports whether the reference points at the network.
func (r Reference) IsRemote() bool {
	return fileutil.IsURL(r.Path)
}

// References scans css lazily and yields every url() occurrence in document
// order. Each call starts a fresh scan.
func References(css string) iter.Seq[Reference] {
	return func(yield func(Reference) bool) {
		offset := 0
		for offset <= len(css) {
			loc := urlPattern.FindStringSubmatchIndex(css[offset:])
			if loc == nil {
				return
			}
			start, end := offset+loc[0], offset+loc[1]
			ref := Reference{
				Start: start,
				End:   end,
				Raw:   css[start:end],
				Path:  trimPath(css[offset+loc[2] : offset+loc[3]]),
			}
			if !yield(ref) {
				return
			}
			offset = end
		}
	}
}

// FindReferences collects References(css) into a slice.
func FindReferences(css string) []Reference {
	var refs []Reference
	for ref := range References(css) {
		refs = append(refs, ref)
	}
	return refs
}

// trimPath removes surrounding whitespace and quotes. Applying it twice
// yields the same result as applying it once.
func trimPath(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), quoteChars))
}
