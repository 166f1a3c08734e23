package symbolic

import (
	errx "github.com/lectura/server/internal/core/error"
)

// ============================================================
// Integration (rule based)
// ============================================================

// Integrate returns an antiderivative of expr with respect to varName.
func Integrate(expr Expr, varName string) (Expr, error) {
	if anti, ok := integrate(Simplify(expr), varName, true); ok {
		return Simplify(anti), nil
	}
	return nil, errx.Computef("no antiderivative rule for %s", expr.String())
}

// DefiniteIntegrate evaluates the integral of expr from a to b; the bounds
// may themselves be symbolic expressions.
func DefiniteIntegrate(expr Expr, varName string, a, b Expr) (Expr, error) {
	anti, err := Integrate(expr, varName)
	if err != nil {
		return nil, err
	}
	return Simplify(SubOf(anti.Sub(varName, b), anti.Sub(varName, a))), nil
}

func integrate(e Expr, varName string, allowExpand bool) (Expr, bool) {
	if !dependsOn(e, varName) {
		return MulOf(e, S(varName)), true
	}
	switch v := e.(type) {
	case *Sym:
		// v.name == varName, constants were handled above
		return MulOf(Frac(1, 2), PowOf(S(varName), N(2))), true
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			anti, ok := integrate(t, varName, allowExpand)
			if !ok {
				return nil, false
			}
			terms[i] = anti
		}
		return AddOf(terms...), true
	case *Mul:
		constPart := []Expr{}
		varPart := []Expr{}
		for _, f := range v.factors {
			if dependsOn(f, varName) {
				varPart = append(varPart, f)
			} else {
				constPart = append(constPart, f)
			}
		}
		if len(varPart) == 1 {
			anti, ok := integrate(varPart[0], varName, allowExpand)
			if !ok {
				return nil, false
			}
			return MulOf(append(constPart, anti)...), true
		}
		if allowExpand {
			expanded := Expand(e)
			if !expanded.Equal(e) {
				return integrate(expanded, varName, false)
			}
		}
		return nil, false
	case *Pow:
		return integratePow(v, varName)
	case *Func:
		return integrateFunc(v, varName)
	}
	return nil, false
}

func integratePow(p *Pow, varName string) (Expr, bool) {
	// u^n for linear u.
	if n, ok := p.exp.(*Num); ok {
		a, _, linear := linearIn(p.base, varName)
		if linear && !a.IsZero() {
			if n.IsNegOne() {
				return MulOf(numRecip(a), LogOf(AbsOf(p.base))), true
			}
			next := numAdd(n, N(1))
			return MulOf(numRecip(numMul(a, next)), PowOf(p.base, next)), true
		}
		return nil, false
	}
	// c^u for constant base and linear u; covers e^x via Pow(E, x).
	baseConst := !dependsOn(p.base, varName)
	a, _, linear := linearIn(p.exp, varName)
	if baseConst && linear && !a.IsZero() {
		anti := MulOf(numRecip(a), PowOf(p.base, p.exp))
		if !p.base.Equal(E) {
			anti = MulOf(anti, PowOf(LogOf(p.base), N(-1)))
		}
		return anti, true
	}
	return nil, false
}

func integrateFunc(f *Func, varName string) (Expr, bool) {
	a, _, linear := linearIn(f.arg, varName)
	if !linear || a.IsZero() {
		return nil, false
	}
	inv := numRecip(a)
	switch f.name {
	case "sin":
		return MulOf(N(-1), inv, CosOf(f.arg)), true
	case "cos":
		return MulOf(inv, SinOf(f.arg)), true
	case "tan":
		return MulOf(N(-1), inv, LogOf(AbsOf(CosOf(f.arg)))), true
	case "log":
		// ∫ log(ax+b) dx = (ax+b)(log(ax+b) - 1)/a
		return MulOf(inv, f.arg, SubOf(LogOf(f.arg), N(1))), true
	}
	return nil, false
}

// linearIn decomposes e as a*var + b with rational a, b.
func linearIn(e Expr, varName string) (a, b *Num, ok bool) {
	coeffs, valid := numCoeffs(e, varName)
	if !valid {
		return nil, nil, false
	}
	if maxDegree(coeffs) > 1 {
		return nil, nil, false
	}
	a, b = N(0), N(0)
	if c, has := coeffs[1]; has {
		a = c
	}
	if c, has := coeffs[0]; has {
		b = c
	}
	return a, b, true
}

func coeffAt(coeffs map[int]*Num, deg int) *Num {
	if c, ok := coeffs[deg]; ok {
		return c
	}
	return N(0)
}

func dependsOn(e Expr, varName string) bool {
	_, ok := FreeSymbols(e)[varName]
	return ok
}

// ============================================================
// Limits
// ============================================================

// Limit computes lim_{varName -> target} expr. The target may be a finite
// expression or a directed infinity.
func Limit(expr Expr, varName string, target Expr) (Expr, error) {
	if inf, ok := target.(*Inf); ok {
		if inf.neg {
			// Reduce x -> -oo to t -> +oo via x = -t.
			flipped := Simplify(expr.Sub(varName, MulOf(N(-1), S(varName))))
			return limitAtInfinity(flipped, varName)
		}
		return limitAtInfinity(Simplify(expr), varName)
	}
	return limitFinite(Simplify(expr), varName, target, 5)
}

func limitFinite(expr Expr, varName string, point Expr, depth int) (Expr, error) {
	// Quotients are inspected before substitution: plugging the point into
	// 0/0 would collapse through the zero numerator and hide the form.
	if m, ok := expr.(*Mul); ok && depth > 0 {
		numF, den := m.quotientParts()
		if den != nil {
			num := productOf(numF).Simplify()
			numAt := Simplify(num.Sub(varName, point))
			denAt := Simplify(den.Sub(varName, point))
			nv, nok := numAt.Eval()
			dv, dok := denAt.Eval()
			if nok && dok && dv.IsZero() {
				if nv.IsZero() {
					// 0/0: L'Hopital.
					next := Simplify(DivOf(Diff(num, varName), Diff(den, varName)))
					return limitFinite(next, varName, point, depth-1)
				}
				return nil, errx.Computef("limit is singular at %s = %s", varName, point.String())
			}
		}
	}
	subbed := Simplify(expr.Sub(varName, point))
	if _, ok := subbed.Eval(); ok {
		return subbed, nil
	}
	if !dependsOn(subbed, varName) {
		// Substitution succeeded symbolically (other free symbols remain).
		return subbed, nil
	}
	return nil, errx.Computef("limit of %s as %s -> %s could not be determined", expr.String(), varName, point.String())
}

func limitAtInfinity(expr Expr, varName string) (Expr, error) {
	if !dependsOn(expr, varName) {
		return expr, nil
	}
	switch v := expr.(type) {
	case *Sym:
		return PosInf, nil
	case *Pow:
		return powLimitAtInfinity(v, varName)
	case *Add:
		return addLimitAtInfinity(v, varName)
	case *Mul:
		return mulLimitAtInfinity(v, varName)
	case *Func:
		inner, err := limitAtInfinity(v.arg, varName)
		if err != nil {
			return nil, err
		}
		if v.name == "log" {
			if inf, ok := inner.(*Inf); ok && !inf.neg {
				return PosInf, nil
			}
			if _, isInf := inner.(*Inf); !isInf {
				return LogOf(inner), nil
			}
		}
		return nil, errx.Computef("limit of %s at infinity could not be determined", expr.String())
	}
	return nil, errx.Computef("limit of %s at infinity could not be determined", expr.String())
}

func powLimitAtInfinity(p *Pow, varName string) (Expr, error) {
	baseLim, baseErr := limitAtInfinity(p.base, varName)
	expLim, expErr := limitAtInfinity(p.exp, varName)

	// 1^oo: rewrite through the exponential, using log(1+u) ~ u.
	if baseErr == nil && expErr == nil {
		if bn, ok := baseLim.(*Num); ok && bn.IsOne() {
			if _, isInf := expLim.(*Inf); isInf {
				l, err := limitAtInfinity(Simplify(MulOf(p.exp, SubOf(p.base, N(1)))), varName)
				if err != nil {
					return nil, err
				}
				if inf, isInf2 := l.(*Inf); isInf2 {
					if inf.neg {
						return N(0), nil
					}
					return PosInf, nil
				}
				return Simplify(PowOf(E, l)), nil
			}
		}
	}
	if baseErr != nil || expErr != nil {
		return nil, errx.Computef("limit of %s at infinity could not be determined", p.String())
	}

	if binf, ok := baseLim.(*Inf); ok {
		if en, ok2 := expLim.(*Num); ok2 {
			switch {
			case en.IsNegative():
				return N(0), nil
			case binf.neg && en.IsInteger() && en.val.Num().Bit(0) == 1:
				return NegInf, nil
			default:
				return PosInf, nil
			}
		}
		if einf, ok2 := expLim.(*Inf); ok2 && !binf.neg {
			if einf.neg {
				return N(0), nil
			}
			return PosInf, nil
		}
		return nil, errx.Computef("limit of %s at infinity could not be determined", p.String())
	}
	if _, ok := expLim.(*Inf); ok {
		// finite^(+-oo) by magnitude of the base.
		bv, ok2 := baseLim.Eval()
		if !ok2 {
			return nil, errx.Computef("limit of %s at infinity could not be determined", p.String())
		}
		growing := bv.Float64() > 1
		einf := expLim.(*Inf)
		switch {
		case growing && !einf.neg:
			return PosInf, nil
		case growing && einf.neg:
			return N(0), nil
		case !growing && bv.IsPositive() && !einf.neg:
			return N(0), nil
		case !growing && bv.IsPositive() && einf.neg:
			return PosInf, nil
		}
		return nil, errx.Computef("limit of %s at infinity could not be determined", p.String())
	}
	return Simplify(PowOf(baseLim, expLim)), nil
}

func addLimitAtInfinity(a *Add, varName string) (Expr, error) {
	// Rational in the variable: decide by leading term.
	if coeffs, ok := numCoeffs(a, varName); ok {
		deg := maxDegree(coeffs)
		if deg == 0 {
			return buildPoly(coeffs, varName), nil
		}
		if coeffs[deg].IsNegative() {
			return NegInf, nil
		}
		return PosInf, nil
	}
	finite := []Expr{}
	infSign := 0
	for _, t := range a.terms {
		l, err := limitAtInfinity(t, varName)
		if err != nil {
			return nil, err
		}
		if inf, ok := l.(*Inf); ok {
			s := 1
			if inf.neg {
				s = -1
			}
			if infSign != 0 && infSign != s {
				return nil, errx.Computef("limit of %s at infinity is indeterminate (oo - oo)", a.String())
			}
			infSign = s
			continue
		}
		finite = append(finite, l)
	}
	if infSign > 0 {
		return PosInf, nil
	}
	if infSign < 0 {
		return NegInf, nil
	}
	return Simplify(AddOf(finite...)), nil
}

func mulLimitAtInfinity(m *Mul, varName string) (Expr, error) {
	// Rational function: compare numerator and denominator degrees.
	numF, den := m.quotientParts()
	if den != nil {
		num := productOf(numF).Simplify()
		nc, nok := numCoeffs(num, varName)
		dc, dok := numCoeffs(den, varName)
		if nok && dok && !polyIsZero(dc) {
			nd, dd := maxDegree(nc), maxDegree(dc)
			lead := numDiv(coeffAt(nc, nd), coeffAt(dc, dd))
			switch {
			case nd > dd:
				if lead.IsNegative() {
					return NegInf, nil
				}
				return PosInf, nil
			case nd == dd:
				return lead, nil
			default:
				return N(0), nil
			}
		}
	}
	if coeffs, ok := numCoeffs(m, varName); ok {
		deg := maxDegree(coeffs)
		if deg == 0 {
			return buildPoly(coeffs, varName), nil
		}
		if coeffs[deg].IsNegative() {
			return NegInf, nil
		}
		return PosInf, nil
	}
	// Constant times a single varying factor.
	sign := 1
	varying := []Expr{}
	for _, f := range m.factors {
		if !dependsOn(f, varName) {
			if n, ok := f.(*Num); ok && n.IsNegative() {
				sign = -sign
			}
			continue
		}
		varying = append(varying, f)
	}
	if len(varying) == 1 {
		l, err := limitAtInfinity(varying[0], varName)
		if err != nil {
			return nil, err
		}
		if inf, ok := l.(*Inf); ok {
			if (sign < 0) != inf.neg {
				return NegInf, nil
			}
			return PosInf, nil
		}
		if sign < 0 {
			return Simplify(MulOf(N(-1), l)), nil
		}
		return l, nil
	}
	return nil, errx.Computef("limit of %s at infinity could not be determined", m.String())
}
