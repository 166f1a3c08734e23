package mathchat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatReplyBracketDisplayMath(t *testing.T) {
	require.Equal(t, "$$x^2$$", FormatReply(`\[x^2\]`))
	require.Equal(t, "before $$a+b$$ after", FormatReply(`before \[a+b\] after`))
}

func TestFormatReplyInfinity(t *testing.T) {
	require.Equal(t, `$$\lim_{n\to \infty} f(n)$$`, FormatReply(`$$\lim_{n\to oo} f(n)$$`))
	require.Equal(t, `x \to \infty`, FormatReply(`x \to oo`))
}

func TestFormatReplyCollapsesDoubledDelimiters(t *testing.T) {
	require.Equal(t, "$$x$$", FormatReply("$$$$x$$$$"))
}

func TestFormatReplyIdempotent(t *testing.T) {
	for _, s := range []string{
		"$$x^2$$",
		`$$\lim_{n\to \infty} f(n) = e$$`,
		"plain text with no math",
		"Solutions: [-2, 2]",
	} {
		require.Equal(t, s, FormatReply(s), "format %q", s)
	}
}
