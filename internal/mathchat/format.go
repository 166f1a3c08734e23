package mathchat

import (
	"regexp"
	"strings"
)

var (
	bracketDisplayRe = regexp.MustCompile(`(?s)\\\[(.*?)\\\]`)
	toInfinityRe     = regexp.MustCompile(`(\\to)\s*oo`)
	limInfinityRe    = regexp.MustCompile(`\\lim_\{([^}]*)\\to\s*oo\}`)
)

// FormatReply normalizes mixed text/LaTeX for display: bracketed display
// math becomes $$...$$, plain `oo` after \to becomes \infty, and doubled
// delimiters collapse. Idempotent on already-clean input.
func FormatReply(reply string) string {
	s := bracketDisplayRe.ReplaceAllString(reply, `$$$$${1}$$$$`)
	s = toInfinityRe.ReplaceAllString(s, `${1} \infty`)
	s = limInfinityRe.ReplaceAllString(s, `\lim_{${1}\to \infty}`)
	s = strings.ReplaceAll(s, "$$$$", "$$")
	return strings.TrimSpace(s)
}
