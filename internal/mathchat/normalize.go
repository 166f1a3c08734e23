// Package mathchat turns free-form math questions into computed, LaTeX-ready
// replies. A layered engine tries cheap local strategies first (concept
// lookup, typo-tolerant intent detection, bare expression evaluation) and
// only then consults the language-model collaborator.
package mathchat

import "strings"

// operator vocabulary recognized by the intent detector; typos in the
// leading tokens are snapped to the closest entry.
var opKeywords = []string{
	"derivative", "differentiate", "d/dx",
	"integral", "integrate",
	"limit",
	"solve", "solution", "roots",
	"simplify", "factor", "expand", "explain",
}

const keywordCutoff = 0.75

// FixOperatorTypos lowercases and fuzzy-corrects the first two whitespace
// tokens against the operator vocabulary. Only the leading tokens are
// touched: the rest of the text is the operand and must stay verbatim.
func FixOperatorTypos(text string) string {
	toks := strings.Fields(text)
	if len(toks) == 0 {
		return text
	}
	toks[0] = fuzzyKeyword(strings.ToLower(toks[0]))
	if len(toks) > 1 {
		toks[1] = fuzzyKeyword(strings.ToLower(toks[1]))
	}
	return strings.Join(toks, " ")
}

// fuzzyKeyword returns the closest vocabulary entry when its similarity
// ratio clears the cutoff, otherwise the word unchanged.
func fuzzyKeyword(word string) string {
	best := ""
	bestScore := 0.0
	for _, kw := range opKeywords {
		if kw == word {
			return word
		}
		if s := similarity(word, kw); s >= keywordCutoff && s > bestScore {
			best, bestScore = kw, s
		}
	}
	if best == "" {
		return word
	}
	return best
}

// similarity is the Ratcliff-Obershelp ratio: twice the total length of the
// recursively matched blocks over the combined length.
func similarity(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}
	return 2 * float64(matchTotal(a, b)) / float64(len(a)+len(b))
}

func matchTotal(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size + matchTotal(a[:ai], b[:bi]) + matchTotal(a[ai+size:], b[bi+size:])
}

func longestCommonSubstring(a, b string) (ai, bi, size int) {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > size {
					size = curr[j]
					ai = i - size
					bi = j - size
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return ai, bi, size
}
