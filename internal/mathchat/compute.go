package mathchat

import (
	"fmt"
	"sort"
	"strings"

	errx "github.com/lectura/server/internal/core/error"
	"github.com/lectura/server/internal/symbolic"
)

// Compute executes a Plan against the symbolic engine and renders the result
// as display math. Parse failures carry ErrParse, algebra failures ErrCompute;
// the orchestrator treats both as a signal to fall through.
func Compute(plan Plan) (string, error) {
	switch plan.Op {
	case OpDerivative:
		return computeDerivative(plan)
	case OpIntegral:
		return computeIntegral(plan)
	case OpLimit:
		return computeLimit(plan)
	case OpSolve:
		return computeSolve(plan)
	case OpSimplify, OpFactor, OpExpand:
		return computeRestructure(plan)
	}
	return "", errx.Computef("unsupported operation %q", plan.Op)
}

// Differentiation and integration always act with respect to x; expressions
// free of x are treated as constants.
const defaultVar = "x"

func computeDerivative(plan Plan) (string, error) {
	expr, err := symbolic.Parse(plan.Expr)
	if err != nil {
		return "", err
	}
	varName := defaultVar
	deriv := symbolic.Diff(expr, varName)
	return fmt.Sprintf(`$$\frac{d}{d%s}\,%s = %s$$`, varName, symbolic.LaTeX(expr), symbolic.LaTeX(deriv)), nil
}

func computeIntegral(plan Plan) (string, error) {
	expr, err := symbolic.Parse(plan.Expr)
	if err != nil {
		return "", err
	}
	varName := defaultVar
	if plan.A != "" && plan.B != "" {
		a, err := symbolic.Parse(plan.A)
		if err != nil {
			return "", err
		}
		b, err := symbolic.Parse(plan.B)
		if err != nil {
			return "", err
		}
		val, err := symbolic.DefiniteIntegrate(expr, varName, a, b)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`$$\int_{%s}^{%s} %s\,d%s = %s$$`,
			symbolic.LaTeX(a), symbolic.LaTeX(b), symbolic.LaTeX(expr), varName, symbolic.LaTeX(val)), nil
	}
	anti, err := symbolic.Integrate(expr, varName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`$$\int %s\,d%s = %s + C$$`,
		symbolic.LaTeX(expr), varName, symbolic.LaTeX(anti)), nil
}

func computeLimit(plan Plan) (string, error) {
	expr, err := symbolic.Parse(plan.Expr)
	if err != nil {
		return "", err
	}
	varName := plan.Var
	if varName == "" {
		varName = defaultVar
	}
	target, pretty, err := limitTarget(plan.To)
	if err != nil {
		return "", err
	}
	res, err := symbolic.Limit(expr, varName, target)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`$$\lim_{%s\to %s} %s = %s$$`,
		varName, pretty, symbolic.LaTeX(expr), symbolic.LaTeX(res)), nil
}

// limitTarget resolves the textual limit target; bare infinity spellings map
// to directed infinities before the parser sees them.
func limitTarget(to string) (symbolic.Expr, string, error) {
	switch strings.TrimSpace(to) {
	case "", "oo", "+oo", "+inf", "+infty", "infinity":
		return symbolic.PosInf, `\infty`, nil
	case "-oo", "-inf":
		return symbolic.NegInf, `-\infty`, nil
	}
	target, err := symbolic.Parse(to)
	if err != nil {
		return nil, "", err
	}
	if neg, ok := symbolic.IsInf(target); ok {
		if neg {
			return target, `-\infty`, nil
		}
		return target, `\infty`, nil
	}
	return target, symbolic.LaTeX(target), nil
}

func computeSolve(plan Plan) (string, error) {
	txt := plan.Expr
	if strings.Contains(txt, "{") && strings.Contains(txt, "}") {
		return solveSystemText(txt)
	}
	eq, err := symbolic.ParseEquation(txt)
	if err != nil {
		return "", err
	}
	varName := primaryVar(symbolic.SubOf(eq.LHS, eq.RHS))
	roots, err := symbolic.SolveEquation(eq, varName)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(roots))
	for i, r := range roots {
		parts[i] = r.String()
	}
	return "Solutions: [" + strings.Join(parts, ", ") + "]", nil
}

func solveSystemText(txt string) (string, error) {
	inside := txt[strings.Index(txt, "{")+1 : strings.LastIndex(txt, "}")]
	pieces := strings.Split(inside, ",")
	eqs := make([]symbolic.Equation, 0, len(pieces))
	for _, piece := range pieces {
		eq, err := symbolic.ParseEquation(strings.TrimSpace(piece))
		if err != nil {
			return "", err
		}
		eqs = append(eqs, eq)
	}
	sol, err := symbolic.SolveSystem(eqs)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(sol))
	for name := range sol {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, sol[name].String())
	}
	return "Solutions: {" + strings.Join(parts, ", ") + "}", nil
}

func computeRestructure(plan Plan) (string, error) {
	expr, err := symbolic.Parse(plan.Expr)
	if err != nil {
		return "", err
	}
	var result symbolic.Expr
	switch plan.Op {
	case OpFactor:
		result, err = symbolic.Factor(expr, primaryVar(expr))
		if err != nil {
			return "", err
		}
	case OpExpand:
		result = symbolic.Expand(expr)
	default:
		result = symbolic.Simplify(expr)
	}
	return fmt.Sprintf(`$$\mathrm{%s}\big(%s\big) = %s$$`,
		plan.Op, symbolic.LaTeX(expr), symbolic.LaTeX(result)), nil
}

// primaryVar picks the variable solving and factoring act on: the lexically
// first free symbol, or x for constant expressions.
func primaryVar(e symbolic.Expr) string {
	if names := symbolic.SortedFreeSymbols(e); len(names) > 0 {
		return names[0]
	}
	return "x"
}
