// Package pathfmt renders merge paths as jq-style selectors for logs and
// CLI output.
package pathfmt

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/speakeasy-api/remerge/merge"
)

// Format renders a path as a selector, e.g. .a."odd key".b[2].
// The empty path renders as "." (the root).
func Format(path []merge.Step) string {
	if len(path) == 0 {
		return "."
	}

	var b strings.Builder
	for _, s := range path {
		switch k := s.Key.(type) {
		case string:
			b.WriteByte('.')
			if needsQuote(k) {
				fmt.Fprintf(&b, "%q", k)
			} else {
				b.WriteString(k)
			}
		case int:
			fmt.Fprintf(&b, "[%d]", k)
		default:
			fmt.Fprintf(&b, ".%v", k)
		}
	}
	return b.String()
}

// Truncate shortens s to the given display width, appending "..." when it
// had to cut. Width is measured in terminal cells, not bytes, so wide runes
// count double.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// needsQuote reports whether a key cannot appear bare in a selector.
func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return true
			}
		default:
			return true
		}
	}
	return false
}
