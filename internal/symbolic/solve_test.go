package symbolic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lectura/server/internal/symbolic"
)

func solveText(t *testing.T, text, varName string) []symbolic.Expr {
	t.Helper()
	eq, err := symbolic.ParseEquation(text)
	require.NoError(t, err)
	roots, err := symbolic.SolveEquation(eq, varName)
	require.NoError(t, err)
	return roots
}

func rootStrings(roots []symbolic.Expr) []string {
	out := make([]string, len(roots))
	for i, r := range roots {
		out[i] = r.String()
	}
	return out
}

func TestSolveLinear(t *testing.T) {
	require.Equal(t, []string{"2"}, rootStrings(solveText(t, "2x + 3 = 7", "x")))
}

func TestSolveWithoutEqualsSolvesForZero(t *testing.T) {
	require.Equal(t, []string{"-3"}, rootStrings(solveText(t, "x + 3", "x")))
}

func TestSolveQuadraticRationalRoots(t *testing.T) {
	require.Equal(t, []string{"-2", "2"}, rootStrings(solveText(t, "x^2 - 4 = 0", "x")))
}

func TestSolveQuadraticDoubleRoot(t *testing.T) {
	require.Equal(t, []string{"1"}, rootStrings(solveText(t, "x^2 - 2x + 1 = 0", "x")))
}

func TestSolveQuadraticRadicalRoots(t *testing.T) {
	roots := solveText(t, "x^2 = 2", "x")
	require.Len(t, roots, 2)
	// Roots stay exact: +-sqrt(8)/2 style radicals, not floats.
	for _, r := range roots {
		_, isNum := r.(*symbolic.Num)
		require.False(t, isNum, "expected radical form, got %s", r.String())
	}
}

func TestSolveQuadraticNegativeDiscriminant(t *testing.T) {
	eq, err := symbolic.ParseEquation("x^2 + 1 = 0")
	require.NoError(t, err)
	_, err = symbolic.SolveEquation(eq, "x")
	require.Error(t, err)
}

func TestSolveCubic(t *testing.T) {
	got := rootStrings(solveText(t, "x^3 - 6x^2 + 11x - 6 = 0", "x"))
	require.Equal(t, []string{"1", "2", "3"}, got)
}

func TestSolveSymbolicLinear(t *testing.T) {
	require.Equal(t, []string{"-b/a"}, rootStrings(solveText(t, "ax + b = 0", "x")))
}

func TestSolveMissingVariable(t *testing.T) {
	eq, err := symbolic.ParseEquation("y + 1 = 0")
	require.NoError(t, err)
	_, err = symbolic.SolveEquation(eq, "x")
	require.Error(t, err)
}

func TestSolveSystem(t *testing.T) {
	eq1, err := symbolic.ParseEquation("x + y = 3")
	require.NoError(t, err)
	eq2, err := symbolic.ParseEquation("x - y = 1")
	require.NoError(t, err)

	sol, err := symbolic.SolveSystem([]symbolic.Equation{eq1, eq2})
	require.NoError(t, err)
	require.Equal(t, "2", sol["x"].String())
	require.Equal(t, "1", sol["y"].String())
}

func TestSolveSystemThreeUnknowns(t *testing.T) {
	texts := []string{"x + y + z = 6", "2x - y = 0", "y + z = 5"}
	eqs := make([]symbolic.Equation, len(texts))
	for i, s := range texts {
		eq, err := symbolic.ParseEquation(s)
		require.NoError(t, err)
		eqs[i] = eq
	}
	sol, err := symbolic.SolveSystem(eqs)
	require.NoError(t, err)
	require.Equal(t, "1", sol["x"].String())
	require.Equal(t, "2", sol["y"].String())
	require.Equal(t, "3", sol["z"].String())
}

func TestSolveSystemOrderInsensitive(t *testing.T) {
	forward := []string{"x + y = 3", "x - y = 1"}
	backward := []string{"x - y = 1", "x + y = 3"}
	for _, texts := range [][]string{forward, backward} {
		eqs := make([]symbolic.Equation, len(texts))
		for i, s := range texts {
			eq, err := symbolic.ParseEquation(s)
			require.NoError(t, err)
			eqs[i] = eq
		}
		sol, err := symbolic.SolveSystem(eqs)
		require.NoError(t, err)
		require.Equal(t, "2", sol["x"].String())
		require.Equal(t, "1", sol["y"].String())
	}
}

func TestSolveSystemInconsistent(t *testing.T) {
	eq1, err := symbolic.ParseEquation("x + y = 1")
	require.NoError(t, err)
	eq2, err := symbolic.ParseEquation("x + y = 2")
	require.NoError(t, err)
	_, err = symbolic.SolveSystem([]symbolic.Equation{eq1, eq2})
	require.Error(t, err)
}
