package mathchat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixOperatorTypos(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"derivitive of x^2", "derivative of x^2"},
		{"integrat x^2", "integrate x^2"},
		{"simplfy (x+1)^2", "simplify (x+1)^2"},
		{"solve x^2 - 4 = 0", "solve x^2 - 4 = 0"},
		{"pls integrate x", "pls integrate x"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FixOperatorTypos(tc.in), "fix %q", tc.in)
	}
}

func TestFixOperatorTyposOnlyTouchesLeadingTokens(t *testing.T) {
	// Beyond the first two tokens the text is operand and stays verbatim.
	got := FixOperatorTypos("solve x + derivitive = 0")
	require.Equal(t, "solve x + derivitive = 0", got)
}

func TestSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, similarity("limit", "limit"), 1e-9)
	require.Greater(t, similarity("derivitive", "derivative"), 0.75)
	require.Less(t, similarity("banana", "limit"), 0.75)
}
