package symbolic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lectura/server/internal/symbolic"
)

func mustParse(t *testing.T, text string) symbolic.Expr {
	t.Helper()
	e, err := symbolic.Parse(text)
	require.NoError(t, err)
	return e
}

func TestSimplifyCollectsLikeTerms(t *testing.T) {
	e := mustParse(t, "2x + 3x")
	require.Equal(t, "5*x", symbolic.Simplify(e).String())
}

func TestSimplifyMergesPowers(t *testing.T) {
	e := mustParse(t, "x*x^2")
	require.Equal(t, "x^3", symbolic.Simplify(e).String())
}

func TestSimplifyCancelsRationalQuotient(t *testing.T) {
	e := mustParse(t, "(x^2-1)/(x-1)")
	require.Equal(t, "x + 1", symbolic.Simplify(e).String())
}

func TestSimplifyKeepsExactSpecialValues(t *testing.T) {
	// sin(1) must stay symbolic; only exact identities fold.
	require.Equal(t, "sin(1)", mustParse(t, "sin(1)").String())
	require.Equal(t, "0", mustParse(t, "sin(0)").String())
	require.Equal(t, "1", mustParse(t, "ln(e)").String())
	require.Equal(t, "x", mustParse(t, "log(e^x)").String())
}

func TestDiff(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"x^3 + 2x", "3*x^2 + 2"},
		{"sin(x)", "cos(x)"},
		{"e^x", "e^x"},
		{"log(x)", "1/x"},
		{"5", "0"},
	}
	for _, tc := range cases {
		got := symbolic.Diff(mustParse(t, tc.in), "x")
		require.Equal(t, tc.want, got.String(), "d/dx %s", tc.in)
	}
}

func TestSubVarEvaluates(t *testing.T) {
	e := mustParse(t, "x^2 + 1")
	got := symbolic.SubVar(e, "x", symbolic.N(3))
	require.Equal(t, "10", got.String())
}

func TestLaTeXRendering(t *testing.T) {
	require.Equal(t, "\\frac{x^{2}}{x + 1}", symbolic.LaTeX(mustParse(t, "x^2/(x+1)")))
	require.Equal(t, "\\sqrt{x}", symbolic.LaTeX(mustParse(t, "sqrt(x)")))
	require.Equal(t, "\\sin\\left(x\\right)", symbolic.LaTeX(mustParse(t, "sin(x)")))
	require.Equal(t, "\\frac{1}{2}", symbolic.LaTeX(symbolic.Frac(1, 2)))
}

func TestExpand(t *testing.T) {
	require.Equal(t, "x^2 + 2*x + 1", symbolic.Expand(mustParse(t, "(x+1)^2")).String())
	require.Equal(t, "x^2 - 1", symbolic.Expand(mustParse(t, "(x+1)(x-1)")).String())
}

func TestExpandIntegerPowers(t *testing.T) {
	require.Equal(t, "x^2", symbolic.Expand(mustParse(t, "x^2")).String())
	require.Equal(t, "x^3 + 3*x^2 + 3*x + 1", symbolic.Expand(mustParse(t, "(x+1)^3")).String())
	require.Equal(t, "1", symbolic.Expand(mustParse(t, "(x+1)^0")).String())
}

func TestFactorQuadratic(t *testing.T) {
	got, err := symbolic.Factor(mustParse(t, "x^2 - 1"), "x")
	require.NoError(t, err)
	require.Equal(t, "(x - 1)*(x + 1)", got.String())
}

func TestFactorIrrationalRootsFails(t *testing.T) {
	_, err := symbolic.Factor(mustParse(t, "x^2 - 2"), "x")
	require.Error(t, err)
}

func TestFreeSymbols(t *testing.T) {
	// Named constants are not free symbols.
	require.Equal(t, []string{"x", "y"}, symbolic.SortedFreeSymbols(mustParse(t, "x*y + pi + e")))
}
