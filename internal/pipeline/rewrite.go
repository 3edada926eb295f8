package pipeline

import (
	"cmp"
	"slices"
	"strings"
)

// Replacement substitutes css[Start:End] with Text.
type Replacement struct {
	Start int
	End   int
	Text  string
}

// ApplyReplacements returns css with every replacement applied by offset.
// Replacements are applied in reverse document order so earlier offsets stay
// valid. Out-of-range spans, and spans overlapping one already applied, are
// skipped; the text they cover is left unchanged.
func ApplyReplacements(css string, reps []Replacement) string {
	if len(reps) == 0 {
		return css
	}

	sorted := slices.Clone(reps)
	slices.SortStableFunc(sorted, func(a, b Replacement) int {
		return cmp.Compare(b.Start, a.Start)
	})

	out := css
	limit := len(css)
	for _, r := range sorted {
		if r.Start < 0 || r.End < r.Start || r.End > limit {
			continue
		}
		out = out[:r.Start] + r.Text + out[r.End:]
		limit = r.Start
	}
	return out
}

// FormatURL builds a url() expression for target followed by suffix (query
// string and fragment). The argument is double-quoted only when it contains
// characters that are not allowed in an unquoted CSS url.
func FormatURL(target, suffix string) string {
	arg := target + suffix
	if !needsQuotes(arg) {
		return "url(" + arg + ")"
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `).Replace(arg)
	return `url("` + escaped + `")`
}

// needsQuotes reports whether s cannot appear in an unquoted url().
func needsQuotes(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '"', '\'', '(', ')', '\\':
			return true
		}
		return r < 0x20 || r == 0x7f
	})
}
