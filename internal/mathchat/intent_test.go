package mathchat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectIntentDerivative(t *testing.T) {
	for _, in := range []string{
		"derivative of sin(x)^2",
		"what's the derivative of sin(x)^2",
		"differentiate sin(x)^2",
		"d/dx sin(x)^2",
	} {
		plan := DetectIntent(in)
		require.Equal(t, OpDerivative, plan.Op, "detect %q", in)
		require.Equal(t, "sin(x)^2", plan.Expr, "detect %q", in)
	}
}

func TestDetectIntentIntegralWithBounds(t *testing.T) {
	plan := DetectIntent("integrate x^2 from 0 to 1")
	require.Equal(t, OpIntegral, plan.Op)
	require.Equal(t, "x^2", plan.Expr)
	require.Equal(t, "0", plan.A)
	require.Equal(t, "1", plan.B)
}

func TestDetectIntentIntegralIndefinite(t *testing.T) {
	plan := DetectIntent("integral of x^2")
	require.Equal(t, OpIntegral, plan.Op)
	require.Equal(t, "x^2", plan.Expr)
	require.Empty(t, plan.A)
	require.Empty(t, plan.B)
}

func TestDetectIntentLimit(t *testing.T) {
	plan := DetectIntent("limit (1+1/n)^n as n->oo")
	require.Equal(t, OpLimit, plan.Op)
	require.Equal(t, "(1+1/n)^n", plan.Expr)
	require.Equal(t, "n", plan.Var)
	require.Equal(t, "oo", plan.To)
}

func TestDetectIntentSolve(t *testing.T) {
	plan := DetectIntent("solve x^2 - 4 = 0")
	require.Equal(t, OpSolve, plan.Op)
	require.Equal(t, "x^2 - 4 = 0", plan.Expr)

	plan = DetectIntent("roots of... solve {x+y=3, x-y=1}")
	require.Equal(t, OpSolve, plan.Op)
}

func TestDetectIntentRestructure(t *testing.T) {
	plan := DetectIntent("simplify (x^2 - 1)/(x-1)")
	require.Equal(t, OpSimplify, plan.Op)
	require.Equal(t, "(x^2 - 1)/(x-1)", plan.Expr)

	plan = DetectIntent("factor x^2 - 1")
	require.Equal(t, OpFactor, plan.Op)

	plan = DetectIntent("expand (x+1)^2")
	require.Equal(t, OpExpand, plan.Op)
}

func TestDetectIntentExplain(t *testing.T) {
	plan := DetectIntent("explain eigenvalues?")
	require.Equal(t, OpExplain, plan.Op)
	require.Equal(t, "eigenvalues", plan.Topic)
}

func TestDetectIntentTypoTolerance(t *testing.T) {
	plan := DetectIntent("derivitive of x^2")
	require.Equal(t, OpDerivative, plan.Op)
	require.Equal(t, "x^2", plan.Expr)
}

func TestDetectIntentNoMatch(t *testing.T) {
	require.Equal(t, OpNone, DetectIntent("9+10").Op)
	require.Equal(t, OpNone, DetectIntent("").Op)
}

func TestConceptTrigger(t *testing.T) {
	topic, ok := ConceptTrigger("what is a derivative?")
	require.True(t, ok)
	require.Equal(t, "a derivative", topic)

	topic, ok = ConceptTrigger("Explain complex numbers")
	require.True(t, ok)
	require.Equal(t, "complex numbers", topic)

	_, ok = ConceptTrigger("derivative of x^2")
	require.False(t, ok)

	// Trigger word mid-sentence does not count.
	_, ok = ConceptTrigger("solve then explain x")
	require.False(t, ok)
}
