package symbolic

import (
	"math/big"
	"sort"
	"strings"

	errx "github.com/lectura/server/internal/core/error"
)

// Equation is lhs = rhs.
type Equation struct {
	LHS Expr
	RHS Expr
}

// ParseEquation splits text on a single `=` and parses both sides; text
// without `=` is treated as expr = 0.
func ParseEquation(text string) (Equation, error) {
	parts := strings.SplitN(text, "=", 2)
	lhs, err := Parse(parts[0])
	if err != nil {
		return Equation{}, err
	}
	if len(parts) == 1 {
		return Equation{LHS: lhs, RHS: N(0)}, nil
	}
	rhs, err := Parse(parts[1])
	if err != nil {
		return Equation{}, err
	}
	return Equation{LHS: lhs, RHS: rhs}, nil
}

func (eq Equation) residual() Expr { return Simplify(SubOf(eq.LHS, eq.RHS)) }

// SolveEquation solves a polynomial equation of degree 1..3 in varName.
// Degree one admits symbolic coefficients; higher degrees need rational
// coefficients, with quadratics falling back to the exact radical form when
// the discriminant is not a perfect square.
func SolveEquation(eq Equation, varName string) ([]Expr, error) {
	res := eq.residual()
	if !dependsOn(res, varName) {
		return nil, errx.Computef("equation does not involve %s", varName)
	}

	if roots, ok := solveSymbolicLinear(res, varName); ok {
		return roots, nil
	}

	coeffs, ok := numCoeffs(res, varName)
	if !ok {
		return nil, errx.Computef("cannot solve %s = 0 for %s: non-numeric coefficients", res.String(), varName)
	}
	deg := maxDegree(coeffs)
	a := func(d int) *Num { return coeffAt(coeffs, d) }

	switch deg {
	case 0:
		return nil, errx.Computef("equation reduces to %s = 0 with no %s left", res.String(), varName)
	case 1:
		return []Expr{numDiv(numNeg(a(0)), a(1))}, nil
	case 2:
		return solveQuadratic(a(2), a(1), a(0))
	case 3:
		return solveCubic(coeffs, varName)
	}
	return nil, errx.Computef("cannot solve degree-%d equation %s = 0", deg, res.String())
}

// solveSymbolicLinear handles a*x + b = 0 where a and b may carry other
// symbols, e.g. solving a*x + b = 0 for x gives -b/a.
func solveSymbolicLinear(res Expr, varName string) ([]Expr, bool) {
	coeffs := PolyCoeffs(Expand(res), varName)
	for d := range coeffs {
		if d > 1 {
			return nil, false
		}
	}
	a, hasA := coeffs[1]
	if !hasA {
		return nil, false
	}
	a = Simplify(a)
	if dependsOn(a, varName) {
		return nil, false
	}
	if n, ok := a.(*Num); ok && n.IsZero() {
		return nil, false
	}
	b, hasB := coeffs[0]
	if !hasB {
		return []Expr{N(0)}, true
	}
	b = Simplify(b)
	if dependsOn(b, varName) {
		return nil, false
	}
	if _, aNumeric := a.(*Num); aNumeric {
		if _, bNumeric := b.(*Num); bNumeric {
			// Purely numeric; let the main path own it so quadratics that
			// degenerate to linears report consistently.
			return nil, false
		}
	}
	return []Expr{Simplify(DivOf(MulOf(N(-1), b), a))}, true
}

func solveQuadratic(a, b, c *Num) ([]Expr, error) {
	if r1, r2, ok := rationalQuadraticRoots(a, b, c); ok {
		if r1.Equal(r2) {
			return []Expr{r1}, nil
		}
		return sortRoots(r1, r2), nil
	}
	disc := numSub(numMul(b, b), numMul(N(4), numMul(a, c)))
	if disc.IsNegative() {
		return nil, errx.Computef("no real solutions: discriminant %s is negative", disc.String())
	}
	// Exact radical form: (-b ± sqrt(disc)) / 2a.
	twoA := numMul(N(2), a)
	sq := SqrtOf(disc)
	r1 := Simplify(DivOf(AddOf(numNeg(b), sq), twoA))
	r2 := Simplify(DivOf(SubOf(numNeg(b), sq), twoA))
	return []Expr{r1, r2}, nil
}

func solveCubic(coeffs map[int]*Num, varName string) ([]Expr, error) {
	a := coeffAt(coeffs, 3)
	b := coeffAt(coeffs, 2)
	c := coeffAt(coeffs, 1)
	d := coeffAt(coeffs, 0)
	root, ok := rationalCubicRoot(a, b, c, d)
	if !ok {
		return nil, errx.Computef("no rational root found for the cubic")
	}
	q, ok := polyDivide(coeffs, map[int]*Num{1: N(1), 0: numNeg(root)})
	if !ok {
		return nil, errx.Computef("cubic deflation failed")
	}
	rest, err := solveQuadratic(coeffAt(q, 2), coeffAt(q, 1), coeffAt(q, 0))
	if err != nil {
		// Real rational root stands alone when the quadratic has no real roots.
		return []Expr{root}, nil
	}
	out := []Expr{root}
	for _, r := range rest {
		dup := false
		for _, seen := range out {
			if seen.Equal(r) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return rootLess(out[i], out[j]) })
	return out, nil
}

func sortRoots(r1, r2 *Num) []Expr {
	if r2.val.Cmp(r1.val) < 0 {
		r1, r2 = r2, r1
	}
	return []Expr{r1, r2}
}

func rootLess(a, b Expr) bool {
	an, aok := a.(*Num)
	bn, bok := b.(*Num)
	if aok && bok {
		return an.val.Cmp(bn.val) < 0
	}
	if aok != bok {
		return aok
	}
	return a.String() < b.String()
}

// SolveSystem solves a system of linear equations by Gaussian elimination
// over exact rationals. The unknowns are the union of free symbols across
// all equations, in lexical order; every equation must be linear in them.
func SolveSystem(eqs []Equation) (map[string]Expr, error) {
	if len(eqs) == 0 {
		return nil, errx.Computef("empty system")
	}
	varSet := map[string]struct{}{}
	residuals := make([]Expr, len(eqs))
	for i, eq := range eqs {
		residuals[i] = eq.residual()
		for name := range FreeSymbols(residuals[i]) {
			varSet[name] = struct{}{}
		}
	}
	vars := make([]string, 0, len(varSet))
	for name := range varSet {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	if len(vars) == 0 {
		return nil, errx.Computef("system has no unknowns")
	}
	if len(eqs) < len(vars) {
		return nil, errx.Computef("underdetermined system: %d equations, %d unknowns", len(eqs), len(vars))
	}

	// Build the augmented matrix. Linear coefficients come from partial
	// derivatives, which must be constant for a linear system.
	rows := make([][]*big.Rat, len(eqs))
	for i, res := range residuals {
		row := make([]*big.Rat, len(vars)+1)
		remainder := res
		for j, name := range vars {
			cExpr := Diff(res, name)
			cNum, ok := cExpr.(*Num)
			if !ok {
				return nil, errx.Computef("equation %d is not linear in %s", i+1, name)
			}
			row[j] = cNum.Rat()
			remainder = Simplify(SubOf(remainder, MulOf(cNum, S(name))))
		}
		constNum, ok := remainder.(*Num)
		if !ok {
			return nil, errx.Computef("equation %d has a non-constant remainder %s", i+1, remainder.String())
		}
		// a1 x1 + ... + k = 0  =>  a1 x1 + ... = -k.
		row[len(vars)] = new(big.Rat).Neg(constNum.Rat())
		rows[i] = row
	}

	n := len(vars)
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < len(rows); r++ {
			if rows[r][col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return nil, errx.Computef("singular system: no unique solution")
		}
		rows[col], rows[pivot] = rows[pivot], rows[col]
		inv := new(big.Rat).Inv(rows[col][col])
		for j := col; j <= n; j++ {
			rows[col][j] = new(big.Rat).Mul(rows[col][j], inv)
		}
		for r := 0; r < len(rows); r++ {
			if r == col || rows[r][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(rows[r][col])
			for j := col; j <= n; j++ {
				scaled := new(big.Rat).Mul(factor, rows[col][j])
				rows[r][j] = new(big.Rat).Sub(rows[r][j], scaled)
			}
		}
	}
	// Extra equations must have reduced to 0 = 0.
	for r := n; r < len(rows); r++ {
		if rows[r][n].Sign() != 0 {
			return nil, errx.Computef("inconsistent system: no solution")
		}
	}

	out := make(map[string]Expr, n)
	for i, name := range vars {
		out[name] = NumFromRat(rows[i][n])
	}
	return out, nil
}
