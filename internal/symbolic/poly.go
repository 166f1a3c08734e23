package symbolic

import (
	"math/big"
	"sort"

	errx "github.com/lectura/server/internal/core/error"
)

// Expand distributes products over sums and opens small integer powers.
func Expand(e Expr) Expr { return expandExpr(e).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		expanded := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			expanded[i] = expandExpr(f)
		}
		for i, f := range expanded {
			a, ok := f.(*Add)
			if !ok {
				continue
			}
			rest := make([]Expr, 0, len(expanded)-1)
			for j, ef := range expanded {
				if j != i {
					rest = append(rest, ef)
				}
			}
			terms := make([]Expr, len(a.terms))
			for k, t := range a.terms {
				terms[k] = expandExpr(MulOf(append([]Expr{t}, rest...)...))
			}
			return expandExpr(AddOf(terms...))
		}
		return MulOf(expanded...)
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandExpr(t)
		}
		return AddOf(terms...)
	case *Pow:
		base := expandExpr(v.base)
		if n, ok := v.exp.(*Num); ok && n.IsInteger() {
			k := n.val.Num().Int64()
			if k == 0 {
				return N(1)
			}
			if a, isAdd := base.(*Add); isAdd && k >= 1 && k <= 10 {
				// Multiply the term lists pairwise. Individual terms are
				// never sums, so their products need no further expansion.
				terms := append([]Expr(nil), a.terms...)
				for i := int64(1); i < k; i++ {
					next := make([]Expr, 0, len(terms)*len(a.terms))
					for _, t := range terms {
						for _, u := range a.terms {
							next = append(next, MulOf(t, u))
						}
					}
					terms = next
				}
				return AddOf(terms...)
			}
		}
		return PowOf(base, expandExpr(v.exp))
	}
	return e
}

// Degree returns the polynomial degree of expr in varName, 0 when the
// variable is absent or the expression is not polynomial in it.
func Degree(expr Expr, varName string) int {
	switch v := expr.Simplify().(type) {
	case *Sym:
		if v.name == varName {
			return 1
		}
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == varName {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() {
				return int(n.val.Num().Int64())
			}
		}
	case *Add:
		max := 0
		for _, t := range v.terms {
			if d := Degree(t, varName); d > max {
				max = d
			}
		}
		return max
	case *Mul:
		total := 0
		for _, f := range v.factors {
			total += Degree(f, varName)
		}
		return total
	}
	return 0
}

// PolyCoeffs maps degree -> coefficient for expr viewed as a polynomial in
// varName. Non-polynomial parts land in degree 0.
func PolyCoeffs(expr Expr, varName string) map[int]Expr {
	out := map[int]Expr{}
	extractCoeffs(expr.Simplify(), varName, out)
	return out
}

func extractCoeffs(e Expr, varName string, out map[int]Expr) {
	switch v := e.(type) {
	case *Sym:
		if v.name == varName {
			addCoeff(out, 1, N(1))
			return
		}
		addCoeff(out, 0, v)
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == varName {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() && n.IsPositive() {
				addCoeff(out, int(n.val.Num().Int64()), N(1))
				return
			}
		}
		addCoeff(out, 0, e)
	case *Mul:
		deg := 0
		coeffFactors := []Expr{}
		for _, f := range v.factors {
			if d := Degree(f, varName); d > 0 {
				deg += d
			} else {
				coeffFactors = append(coeffFactors, f)
			}
		}
		var coeff Expr
		switch len(coeffFactors) {
		case 0:
			coeff = N(1)
		case 1:
			coeff = coeffFactors[0]
		default:
			coeff = MulOf(coeffFactors...)
		}
		addCoeff(out, deg, coeff)
	case *Add:
		for _, t := range v.terms {
			extractCoeffs(t, varName, out)
		}
	default:
		addCoeff(out, 0, e)
	}
}

func addCoeff(out map[int]Expr, deg int, val Expr) {
	if existing, ok := out[deg]; ok {
		out[deg] = AddOf(existing, val)
	} else {
		out[deg] = val.Simplify()
	}
}

// Collect groups terms of expr by descending powers of varName.
func Collect(expr Expr, varName string) Expr {
	coeffs := PolyCoeffs(Expand(expr), varName)
	degrees := make([]int, 0, len(coeffs))
	for d := range coeffs {
		degrees = append(degrees, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degrees)))
	terms := make([]Expr, 0, len(degrees))
	for _, d := range degrees {
		c := coeffs[d]
		if cn, ok := c.(*Num); ok && cn.IsZero() {
			continue
		}
		switch d {
		case 0:
			terms = append(terms, c)
		case 1:
			terms = append(terms, MulOf(c, S(varName)))
		default:
			terms = append(terms, MulOf(c, PowOf(S(varName), N(int64(d)))))
		}
	}
	if len(terms) == 0 {
		return N(0)
	}
	return AddOf(terms...)
}

// numCoeffs extracts rational coefficients; fails when any coefficient
// involves symbols or constants.
func numCoeffs(expr Expr, varName string) (map[int]*Num, bool) {
	raw := PolyCoeffs(Expand(expr), varName)
	out := make(map[int]*Num, len(raw))
	for d, c := range raw {
		n, ok := c.Simplify().(*Num)
		if !ok {
			return nil, false
		}
		out[d] = n
	}
	return out, true
}

func maxDegree(coeffs map[int]*Num) int {
	max := 0
	for d, c := range coeffs {
		if d > max && !c.IsZero() {
			max = d
		}
	}
	return max
}

// polyDivide performs exact long division of n by d; ok is false when the
// remainder is nonzero or d is zero.
func polyDivide(n, d map[int]*Num) (map[int]*Num, bool) {
	dd := maxDegree(d)
	lead, has := d[dd]
	if !has || lead.IsZero() {
		return nil, false
	}
	rem := make(map[int]*Num, len(n))
	for k, v := range n {
		rem[k] = v
	}
	quot := map[int]*Num{}
	for {
		nd := maxDegree(rem)
		top, hasTop := rem[nd]
		if !hasTop || top.IsZero() {
			if polyIsZero(rem) {
				return quot, true
			}
			return nil, false
		}
		if nd < dd {
			return nil, false
		}
		factor := numDiv(top, lead)
		quot[nd-dd] = factor
		for k, v := range d {
			cur, ok := rem[k+nd-dd]
			if !ok {
				cur = N(0)
			}
			rem[k+nd-dd] = numSub(cur, numMul(factor, v))
		}
	}
}

func polyIsZero(coeffs map[int]*Num) bool {
	for _, c := range coeffs {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

func buildPoly(coeffs map[int]*Num, varName string) Expr {
	degrees := make([]int, 0, len(coeffs))
	for d := range coeffs {
		degrees = append(degrees, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degrees)))
	terms := make([]Expr, 0, len(degrees))
	for _, d := range degrees {
		c := coeffs[d]
		if c.IsZero() {
			continue
		}
		switch d {
		case 0:
			terms = append(terms, c)
		case 1:
			terms = append(terms, MulOf(c, S(varName)))
		default:
			terms = append(terms, MulOf(c, PowOf(S(varName), N(int64(d)))))
		}
	}
	if len(terms) == 0 {
		return N(0)
	}
	return AddOf(terms...)
}

// cancelQuotients rewrites rational sub-expressions whose denominator
// divides the numerator exactly, so (x^2-1)/(x-1) collapses to x+1.
func cancelQuotients(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = cancelQuotients(t)
		}
		return AddOf(terms...)
	case *Mul:
		num, den := v.quotientParts()
		if den == nil {
			return v
		}
		var numExpr Expr
		switch len(num) {
		case 0:
			numExpr = N(1)
		case 1:
			numExpr = num[0]
		default:
			numExpr = (&Mul{factors: num}).Simplify()
		}
		if reduced, ok := polyCancel(numExpr, den); ok {
			return reduced
		}
		return v
	}
	return e
}

func polyCancel(num, den Expr) (Expr, bool) {
	denSyms := SortedFreeSymbols(den)
	if len(denSyms) != 1 {
		return nil, false
	}
	varName := denSyms[0]
	nc, ok := numCoeffs(num, varName)
	if !ok {
		return nil, false
	}
	dc, ok := numCoeffs(den, varName)
	if !ok {
		return nil, false
	}
	q, ok := polyDivide(nc, dc)
	if !ok {
		return nil, false
	}
	return buildPoly(q, varName), true
}

// Factor writes a polynomial in varName as a product of linear (and, for
// cubics, quadratic) factors with rational roots. Fails when the roots are
// irrational or the input is not a numeric-coefficient polynomial.
func Factor(expr Expr, varName string) (Expr, error) {
	coeffs, ok := numCoeffs(expr, varName)
	if !ok {
		return nil, errx.Computef("factor: %s is not a polynomial in %s with numeric coefficients", expr.String(), varName)
	}
	deg := maxDegree(coeffs)
	x := S(varName)
	get := func(d int) *Num {
		if c, has := coeffs[d]; has {
			return c
		}
		return N(0)
	}
	switch deg {
	case 2:
		a, b, c := get(2), get(1), get(0)
		r1, r2, ok := rationalQuadraticRoots(a, b, c)
		if !ok {
			return nil, errx.Computef("factor: no rational roots for %s", expr.String())
		}
		factors := []Expr{SubOf(x, r1), SubOf(x, r2)}
		if !a.IsOne() {
			factors = append([]Expr{a}, factors...)
		}
		return productOf(factors), nil
	case 3:
		a, b, c, d := get(3), get(2), get(1), get(0)
		root, ok := rationalCubicRoot(a, b, c, d)
		if !ok {
			return nil, errx.Computef("factor: no rational roots for %s", expr.String())
		}
		// Deflate by (x - root).
		q, ok := polyDivide(coeffs, map[int]*Num{1: N(1), 0: numNeg(root)})
		if !ok {
			return nil, errx.Computef("factor: deflation failed for %s", expr.String())
		}
		qa, qb, qc := N(0), N(0), N(0)
		if v, has := q[2]; has {
			qa = v
		}
		if v, has := q[1]; has {
			qb = v
		}
		if v, has := q[0]; has {
			qc = v
		}
		linear := SubOf(x, root)
		if r1, r2, ok := rationalQuadraticRoots(qa, qb, qc); ok {
			factors := []Expr{linear, SubOf(x, r1), SubOf(x, r2)}
			if !qa.IsOne() {
				factors = append([]Expr{qa}, factors...)
			}
			return productOf(factors), nil
		}
		return productOf([]Expr{linear, buildPoly(q, varName)}), nil
	}
	return nil, errx.Computef("factor: unsupported degree %d", deg)
}

func productOf(factors []Expr) Expr {
	wrapped := make([]Expr, len(factors))
	copy(wrapped, factors)
	return &Mul{factors: wrapped}
}

// rationalQuadraticRoots solves a x^2 + b x + c = 0 over the rationals.
func rationalQuadraticRoots(a, b, c *Num) (r1, r2 *Num, ok bool) {
	if a.IsZero() {
		return nil, nil, false
	}
	disc := numSub(numMul(b, b), numMul(N(4), numMul(a, c)))
	if disc.IsNegative() {
		return nil, nil, false
	}
	p, pok := intSqrt(disc.val.Num())
	q, qok := intSqrt(disc.val.Denom())
	if !pok || !qok {
		return nil, nil, false
	}
	sq := NumFromRat(new(big.Rat).SetFrac(p, q))
	twoA := numMul(N(2), a)
	r1 = numDiv(numAdd(numNeg(b), sq), twoA)
	r2 = numDiv(numSub(numNeg(b), sq), twoA)
	return r1, r2, true
}

// rationalCubicRoot searches divisors of the constant and leading terms for
// a rational root of a x^3 + b x^2 + c x + d.
func rationalCubicRoot(a, b, c, d *Num) (*Num, bool) {
	if a.IsZero() {
		return nil, false
	}
	if d.IsZero() {
		return N(0), true
	}
	if !a.IsInteger() || !b.IsInteger() || !c.IsInteger() || !d.IsInteger() {
		return nil, false
	}
	eval := func(r *Num) bool {
		v := numAdd(numMul(a, numMul(r, numMul(r, r))),
			numAdd(numMul(b, numMul(r, r)), numAdd(numMul(c, r), d)))
		return v.IsZero()
	}
	an := a.val.Num().Int64()
	dn := d.val.Num().Int64()
	for _, p := range divisors(dn) {
		for _, q := range divisors(an) {
			for _, sign := range []int64{1, -1} {
				r := Frac(sign*p, q)
				if eval(r) {
					return r, true
				}
			}
		}
	}
	return nil, false
}

func divisors(n int64) []int64 {
	if n < 0 {
		n = -n
	}
	var out []int64
	for d := int64(1); d*d <= n && d <= 10000; d++ {
		if n%d == 0 {
			out = append(out, d)
			if other := n / d; other != d {
				out = append(out, other)
			}
		}
	}
	return out
}
