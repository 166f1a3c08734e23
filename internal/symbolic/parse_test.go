package symbolic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	errx "github.com/lectura/server/internal/core/error"
	"github.com/lectura/server/internal/symbolic"
)

func TestRepairFunctionCalls(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"sinx", "sin(x)"},
		{"sin x", "sin(x)"},
		{"cos 2x", "cos(2x)"},
		{"sqrtx", "sqrt(x)"},
		{"ln x", "log(x)"},
		{"sin(x)", "sin(x)"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, symbolic.RepairFunctionCalls(tc.in), "repair %q", tc.in)
	}
}

func TestBalanceParens(t *testing.T) {
	require.Equal(t, "sin(x)", symbolic.BalanceParens("sin(x"))
	require.Equal(t, "((x+1)*2)", symbolic.BalanceParens("((x+1)*2"))
	// Excess closers are left alone.
	require.Equal(t, "x))", symbolic.BalanceParens("x))"))
}

func TestParseImplicitMultiplication(t *testing.T) {
	require.Equal(t, "3*x", mustParse(t, "3x").String())
	require.Equal(t, "x*y", mustParse(t, "xy").String())
	require.Equal(t, "2*(x + 1)", mustParse(t, "2(x+1)").String())
}

func TestParseDoubleStarPower(t *testing.T) {
	require.Equal(t, "2*x^2", symbolic.Simplify(mustParse(t, "x**2 + x^2")).String())
}

func TestParseUnaryMinusInExponent(t *testing.T) {
	require.Equal(t, "1/x^2", mustParse(t, "x^-2").String())
}

func TestParseConstantsAndInfinity(t *testing.T) {
	require.True(t, mustParse(t, "e").Equal(symbolic.E))
	require.True(t, mustParse(t, "pi").Equal(symbolic.Pi))
	for _, s := range []string{"oo", "inf", "infinity", "infty"} {
		neg, ok := symbolic.IsInf(mustParse(t, s))
		require.True(t, ok, "parse %q", s)
		require.False(t, neg)
	}
}

func TestParseUnbalancedInputRepaired(t *testing.T) {
	require.Equal(t, "sin(x)", mustParse(t, "sin(x").String())
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "2 +", "@#$", "sin"} {
		_, err := symbolic.Parse(in)
		require.Error(t, err, "parse %q", in)
		require.True(t, errx.IsParse(err), "parse %q tags ErrParse", in)
	}
}
