package symbolic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	errx "github.com/lectura/server/internal/core/error"
	"github.com/lectura/server/internal/symbolic"
)

func TestIntegrate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"x^2", "1/3*x^3"},
		{"sin(x)", "-cos(x)"},
		{"1/x", "log(abs(x))"},
		{"cos(2x+1)", "1/2*sin(2*x + 1)"},
		{"e^x", "e^x"},
		{"3", "3*x"},
	}
	for _, tc := range cases {
		got, err := symbolic.Integrate(mustParse(t, tc.in), "x")
		require.NoError(t, err, "integrate %s", tc.in)
		require.Equal(t, tc.want, got.String(), "integrate %s", tc.in)
	}
}

func TestIntegrateExpandsProducts(t *testing.T) {
	got, err := symbolic.Integrate(mustParse(t, "x(x+1)"), "x")
	require.NoError(t, err)
	require.Equal(t, "1/3*x^3 + 1/2*x^2", got.String())
}

func TestIntegrateUnsupportedProduct(t *testing.T) {
	_, err := symbolic.Integrate(mustParse(t, "x*sin(x)"), "x")
	require.Error(t, err)
	require.True(t, errx.IsCompute(err))
}

func TestDefiniteIntegrate(t *testing.T) {
	got, err := symbolic.DefiniteIntegrate(mustParse(t, "x^2"), "x", symbolic.N(0), symbolic.N(1))
	require.NoError(t, err)
	require.Equal(t, "1/3", got.String())
}

func TestDefiniteIntegrateSymbolicBounds(t *testing.T) {
	got, err := symbolic.DefiniteIntegrate(mustParse(t, "2x"), "x", symbolic.N(0), symbolic.S("a"))
	require.NoError(t, err)
	require.Equal(t, "a^2", got.String())
}

func TestLimitFinite(t *testing.T) {
	cases := []struct {
		expr string
		at   string
		want string
	}{
		{"sin(x)/x", "0", "1"},
		{"(x^2-1)/(x-1)", "1", "2"},
		{"x^2 + 3", "2", "7"},
		{"(1-cos(x))/x^2", "0", "1/2"},
	}
	for _, tc := range cases {
		point := mustParse(t, tc.at)
		got, err := symbolic.Limit(mustParse(t, tc.expr), "x", point)
		require.NoError(t, err, "limit %s at %s", tc.expr, tc.at)
		require.Equal(t, tc.want, got.String(), "limit %s at %s", tc.expr, tc.at)
	}
}

func TestLimitSingular(t *testing.T) {
	_, err := symbolic.Limit(mustParse(t, "1/x"), "x", symbolic.N(0))
	require.Error(t, err)
	require.True(t, errx.IsCompute(err))
}

func TestLimitAtInfinity(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"1/x", "0"},
		{"(3x^2+1)/(2x^2)", "3/2"},
		{"(x^2+1)/x", "oo"},
		{"x/(x^2+1)", "0"},
		{"x^2", "oo"},
	}
	for _, tc := range cases {
		got, err := symbolic.Limit(mustParse(t, tc.expr), "x", symbolic.PosInf)
		require.NoError(t, err, "limit %s at oo", tc.expr)
		require.Equal(t, tc.want, got.String(), "limit %s at oo", tc.expr)
	}
}

func TestLimitEulerForm(t *testing.T) {
	got, err := symbolic.Limit(mustParse(t, "(1+1/n)^n"), "n", symbolic.PosInf)
	require.NoError(t, err)
	require.True(t, got.Equal(symbolic.E), "got %s", got.String())
	require.Equal(t, "e", got.LaTeX())
}

func TestLimitAtNegativeInfinity(t *testing.T) {
	got, err := symbolic.Limit(mustParse(t, "x^3"), "x", symbolic.NegInf)
	require.NoError(t, err)
	neg, ok := symbolic.IsInf(got)
	require.True(t, ok)
	require.True(t, neg)

	got, err = symbolic.Limit(mustParse(t, "1/x"), "x", symbolic.NegInf)
	require.NoError(t, err)
	require.Equal(t, "0", got.String())
}
