// Package symbolic is a small deterministic computer-algebra kernel: exact
// rational arithmetic over math/big, rule-based simplification, stable
// output, and LaTeX rendering. It backs the math chat engine's derivative,
// integral, limit, solve, simplify, factor and expand operations.
package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
)

// Expr is a simplifiable, differentiable symbolic expression node.
type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
}

// ============================================================
// Num — exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func Frac(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func NumFromRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func NFloat(f float64) *Num { return &Num{val: new(big.Rat).SetFloat64(f)} }

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }

var (
	ratOne    = big.NewRat(1, 1)
	ratNegOne = big.NewRat(-1, 1)
)

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }

func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbolic: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }

// intSqrt returns the exact integer square root of n, if n is a perfect square.
func intSqrt(n *big.Int) (*big.Int, bool) {
	if n.Sign() < 0 {
		return nil, false
	}
	r := new(big.Int).Sqrt(n)
	if new(big.Int).Mul(r, r).Cmp(n) == 0 {
		return r, true
	}
	return nil, false
}

// ============================================================
// Sym — symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr     { return s }
func (s *Sym) String() string     { return s.name }
func (s *Sym) LaTeX() string      { return s.name }
func (s *Sym) Eval() (*Num, bool) { return nil, false }
func (s *Sym) Name() string       { return s.name }
func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }

// ============================================================
// Const — named transcendental constant (e, pi)
// ============================================================

type Const struct {
	name  string
	latex string
	val   float64
}

var (
	// E is Euler's number.
	E = &Const{name: "e", latex: "e", val: math.E}
	// Pi is the circle constant.
	Pi = &Const{name: "pi", latex: "\\pi", val: math.Pi}
)

func (c *Const) Simplify() Expr        { return c }
func (c *Const) String() string        { return c.name }
func (c *Const) LaTeX() string         { return c.latex }
func (c *Const) Sub(string, Expr) Expr { return c }
func (c *Const) Diff(string) Expr      { return N(0) }
func (c *Const) Eval() (*Num, bool)    { return NFloat(c.val), true }
func (c *Const) Equal(other Expr) bool {
	o, ok := other.(*Const)
	return ok && c.name == o.name
}

// ============================================================
// Inf — directed infinity, used as a limit target or result
// ============================================================

type Inf struct{ neg bool }

var (
	PosInf = &Inf{}
	NegInf = &Inf{neg: true}
)

func (i *Inf) Simplify() Expr { return i }
func (i *Inf) String() string {
	if i.neg {
		return "-oo"
	}
	return "oo"
}
func (i *Inf) LaTeX() string {
	if i.neg {
		return "-\\infty"
	}
	return "\\infty"
}
func (i *Inf) Sub(string, Expr) Expr { return i }
func (i *Inf) Diff(string) Expr      { return N(0) }
func (i *Inf) Eval() (*Num, bool)    { return nil, false }
func (i *Inf) Equal(other Expr) bool {
	o, ok := other.(*Inf)
	return ok && i.neg == o.neg
}
func (i *Inf) Negative() bool { return i.neg }

// IsInf reports whether e is a directed infinity and its sign.
func IsInf(e Expr) (negative, ok bool) {
	i, ok := e.(*Inf)
	if !ok {
		return false, false
	}
	return i.neg, true
}

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// SubOf builds a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, MulOf(N(-1), b)) }

func (a *Add) Terms() []Expr { return a.terms }

// splitCoeff rewrites t as coeff*rest with rest carrying no leading numeric
// factor. For a plain number the rest is 1.
func splitCoeff(t Expr) (*Num, Expr) {
	switch v := t.(type) {
	case *Num:
		return v, N(1)
	case *Mul:
		if len(v.factors) > 0 {
			if c, ok := v.factors[0].(*Num); ok {
				rest := v.factors[1:]
				if len(rest) == 1 {
					return c, rest[0]
				}
				return c, &Mul{factors: rest}
			}
		}
		return N(1), v
	default:
		return N(1), t
	}
}

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	// Collect like terms by their coefficient-free part.
	numAccum := N(0)
	coeffs := map[string]*Num{}
	rests := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, v)
			continue
		}
		if inf, ok := t.(*Inf); ok {
			// Infinities swallow finite terms; conflicting signs stay symbolic.
			key := inf.String()
			if _, seen := coeffs[key]; !seen {
				order = append(order, key)
				coeffs[key] = N(1)
				rests[key] = inf
			}
			continue
		}
		c, rest := splitCoeff(t)
		key := rest.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = N(0)
			rests[key] = rest
		}
		coeffs[key] = numAdd(coeffs[key], c)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(order)))
	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		c := coeffs[key]
		if c.IsZero() {
			continue
		}
		rest := rests[key]
		if c.IsOne() {
			result = append(result, rest)
		} else {
			result = append(result, MulOf(c, rest))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

// negated splits a rendered term into its sign and unsigned form so sums can
// print "a - b" instead of "a + -1*b".
func negated(t Expr) (Expr, bool) {
	c, rest := splitCoeff(t)
	if !c.IsNegative() {
		return t, false
	}
	pos := numNeg(c)
	if _, isOne := rest.(*Num); isOne && rest.Equal(N(1)) {
		return pos, true
	}
	if pos.IsOne() {
		return rest, true
	}
	return MulOf(pos, rest), true
}

func (a *Add) String() string { return a.render(func(e Expr) string { return e.String() }) }
func (a *Add) LaTeX() string  { return a.render(func(e Expr) string { return e.LaTeX() }) }

func (a *Add) render(f func(Expr) string) string {
	if len(a.terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range a.terms {
		u, neg := negated(t)
		switch {
		case i == 0 && neg:
			b.WriteString("-")
			b.WriteString(f(u))
		case i == 0:
			b.WriteString(f(u))
		case neg:
			b.WriteString(" - ")
			b.WriteString(f(u))
		default:
			b.WriteString(" + ")
			b.WriteString(f(u))
		}
	}
	return b.String()
}

func (a *Add) Sub(varName string, value Expr) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Sub(varName, value)
	}
	return AddOf(terms...)
}

func (a *Add) Diff(varName string) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Diff(varName)
	}
	return AddOf(terms...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// DivOf builds a / b.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := N(1)
	// Merge repeated bases: x * x^2 -> x^3, u * u^-1 -> 1.
	type entry struct {
		base Expr
		exps []Expr
	}
	order := []string{}
	bases := map[string]*entry{}
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
			continue
		}
		var base, exp Expr
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		} else {
			base, exp = f, N(1)
		}
		key := base.String()
		e, seen := bases[key]
		if !seen {
			e = &entry{base: base}
			bases[key] = e
			order = append(order, key)
		}
		e.exps = append(e.exps, exp)
	}
	if coeff.IsZero() {
		return N(0)
	}

	others := make([]Expr, 0, len(order))
	for _, key := range order {
		e := bases[key]
		var merged Expr
		if len(e.exps) == 1 {
			merged = rawPow(e.base, e.exps[0])
		} else {
			merged = PowOf(e.base, AddOf(e.exps...))
		}
		switch v := merged.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Mul:
			for _, inner := range v.factors {
				if n, ok := inner.(*Num); ok {
					coeff = numMul(coeff, n)
				} else {
					others = append(others, inner)
				}
			}
		default:
			others = append(others, merged)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })
	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

// rawPow keeps an unmerged factor as written: it only rebuilds base^exp
// without re-running the exponent merge that produced it.
func rawPow(base, exp Expr) Expr {
	if n, ok := exp.(*Num); ok && n.IsOne() {
		return base
	}
	return (&Pow{base: base, exp: exp}).Simplify()
}

func (m *Mul) String() string {
	num, den := m.quotientParts()
	if den != nil {
		return mulRenderString(num) + "/" + parenString(den)
	}
	return mulRenderString(m.factors)
}

func mulRenderString(factors []Expr) string {
	if len(factors) == 0 {
		return "1"
	}
	if n, ok := factors[0].(*Num); ok && n.IsNegOne() && len(factors) > 1 {
		return "-" + mulRenderString(factors[1:])
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func parenString(e Expr) string {
	switch e.(type) {
	case *Add, *Mul:
		return "(" + e.String() + ")"
	}
	return e.String()
}

// quotientParts splits the factors into numerator factors and a denominator
// expression when any factor carries a negative numeric exponent.
func (m *Mul) quotientParts() (num []Expr, den Expr) {
	var denFactors []Expr
	for _, f := range m.factors {
		if p, ok := f.(*Pow); ok {
			if n, ok2 := p.exp.(*Num); ok2 && n.IsNegative() {
				if n.IsNegOne() {
					denFactors = append(denFactors, p.base)
				} else {
					denFactors = append(denFactors, &Pow{base: p.base, exp: numNeg(n)})
				}
				continue
			}
		}
		num = append(num, f)
	}
	if len(denFactors) == 0 {
		return m.factors, nil
	}
	if len(denFactors) == 1 {
		return num, denFactors[0]
	}
	return num, &Mul{factors: denFactors}
}

func (m *Mul) LaTeX() string {
	num, den := m.quotientParts()
	if den != nil {
		return "\\frac{" + mulRenderLaTeX(num) + "}{" + den.LaTeX() + "}"
	}
	return mulRenderLaTeX(m.factors)
}

func mulRenderLaTeX(factors []Expr) string {
	if len(factors) == 0 {
		return "1"
	}
	if n, ok := factors[0].(*Num); ok && n.IsNegOne() && len(factors) > 1 {
		return "-" + mulRenderLaTeX(factors[1:])
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "\\left(" + f.LaTeX() + "\\right)"
		} else {
			parts[i] = f.LaTeX()
		}
	}
	return strings.Join(parts, " ")
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	factors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		factors[i] = f.Sub(varName, value)
	}
	return MulOf(factors...)
}

func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(varName)
		rest := make([]Expr, 0, len(m.factors)-1)
		for j, fj := range m.factors {
			if j != i {
				rest = append(rest, fj)
			}
		}
		if len(rest) == 0 {
			terms[i] = dfi
		} else {
			terms[i] = MulOf(append([]Expr{dfi}, rest...)...)
		}
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// SqrtOf builds base^(1/2).
func SqrtOf(base Expr) Expr { return PowOf(base, Frac(1, 2)) }

// ExpOf builds e^arg.
func ExpOf(arg Expr) Expr { return PowOf(E, arg) }

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			if en, ok2 := exp.(*Num); ok2 && (en.IsZero() || en.IsNegative()) {
				// 0^0 and 0^negative stay unevaluated.
				return &Pow{base: base, exp: exp}
			}
			return N(0)
		}
		if bn.IsOne() {
			return N(1)
		}
		if en, ok2 := exp.(*Num); ok2 {
			if folded, ok3 := powNum(bn, en); ok3 {
				return folded
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	// (a*b)^n distributes for integer exponents.
	if m, ok := base.(*Mul); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			factors := make([]Expr, len(m.factors))
			for i, f := range m.factors {
				factors[i] = PowOf(f, en)
			}
			return MulOf(factors...)
		}
	}
	return &Pow{base: base, exp: exp}
}

// powNum folds base^exp for rational base and exponent where the result is
// exact: integer exponents up to a size bound, and square roots of perfect
// squares.
func powNum(base, exp *Num) (Expr, bool) {
	if exp.IsInteger() {
		e := exp.val.Num()
		if e.IsInt64() {
			k := e.Int64()
			if k >= -64 && k <= 64 {
				result := N(1)
				abs := k
				if abs < 0 {
					abs = -abs
				}
				for i := int64(0); i < abs; i++ {
					result = numMul(result, base)
				}
				if k < 0 {
					result = numRecip(result)
				}
				return result, true
			}
		}
		return nil, false
	}
	// Perfect-square roots: n^(1/2) and n^(-1/2).
	half := big.NewRat(1, 2)
	negHalf := big.NewRat(-1, 2)
	if exp.val.Cmp(half) == 0 || exp.val.Cmp(negHalf) == 0 {
		if base.IsNegative() {
			return nil, false
		}
		p, pok := intSqrt(base.val.Num())
		q, qok := intSqrt(base.val.Denom())
		if pok && qok {
			r := NumFromRat(new(big.Rat).SetFrac(p, q))
			if exp.val.Sign() < 0 {
				r = numRecip(r)
			}
			return r, true
		}
	}
	return nil, false
}

func (p *Pow) String() string {
	if n, ok := p.exp.(*Num); ok && n.IsNegative() {
		inv := &Pow{base: p.base, exp: numNeg(n)}
		var body string
		if n.IsNegOne() {
			body = parenString(p.base)
		} else {
			body = inv.String()
		}
		return "1/" + body
	}
	baseStr := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul:
		baseStr = "(" + baseStr + ")"
	}
	expStr := p.exp.String()
	switch p.exp.(type) {
	case *Add, *Mul:
		expStr = "(" + expStr + ")"
	default:
		if n, ok := p.exp.(*Num); ok && !n.IsInteger() {
			expStr = "(" + expStr + ")"
		}
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	if n, ok := p.exp.(*Num); ok && n.IsNegative() {
		if n.IsNegOne() {
			return "\\frac{1}{" + p.base.LaTeX() + "}"
		}
		inv := &Pow{base: p.base, exp: numNeg(n)}
		return "\\frac{1}{" + inv.LaTeX() + "}"
	}
	if n, ok := p.exp.(*Num); ok && n.val.Cmp(big.NewRat(1, 2)) == 0 {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	baseStr := p.base.LaTeX()
	switch p.base.(type) {
	case *Add, *Mul:
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if _, ok := p.exp.(*Num); ok {
		// Power rule with chain rule.
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), du)
	}
	baseConst := false
	switch p.base.(type) {
	case *Num, *Const:
		baseConst = true
	}
	if baseConst {
		// d/dx a^v = a^v ln(a) v'. ln(e) folds away.
		return MulOf(PowOf(p.base, p.exp), LogOf(p.base), dv).Simplify()
	}
	// General case: u^v (v' ln u + v u'/u).
	logTerm := MulOf(dv, LogOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 {
		return nil, false
	}
	v := math.Pow(b.Float64(), e.Float64())
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return NFloat(v), true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

// ============================================================
// Func — named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr { return funcOf("tan", arg).Simplify() }
func CotOf(arg Expr) Expr { return funcOf("cot", arg).Simplify() }
func SecOf(arg Expr) Expr { return funcOf("sec", arg).Simplify() }
func CscOf(arg Expr) Expr { return funcOf("csc", arg).Simplify() }

// LogOf is the natural logarithm.
func LogOf(arg Expr) Expr { return funcOf("log", arg).Simplify() }
func AbsOf(arg Expr) Expr { return funcOf("abs", arg).Simplify() }

func (f *Func) Name() string { return f.name }
func (f *Func) Arg() Expr    { return f.arg }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	// Only exact special values fold; no float folding, so sin(1) stays
	// symbolic instead of decaying to an unreadable rational.
	switch f.name {
	case "sin", "tan":
		if isZero(arg) {
			return N(0)
		}
	case "cos", "sec":
		if isZero(arg) {
			return N(1)
		}
	case "log":
		if n, ok := arg.(*Num); ok && n.IsOne() {
			return N(0)
		}
		if arg.Equal(E) {
			return N(1)
		}
		if p, ok := arg.(*Pow); ok && p.base.Equal(E) {
			return p.exp
		}
	case "abs":
		if n, ok := arg.(*Num); ok {
			if n.IsNegative() {
				return numNeg(n)
			}
			return n
		}
		if c, rest := splitCoeff(arg); c.IsNegative() {
			return AbsOf(MulOf(numNeg(c), rest))
		}
	}
	return &Func{name: f.name, arg: arg}
}

func isZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case "sin", "cos", "tan", "cot", "sec", "csc", "log":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case "abs":
		return "\\left|" + f.arg.LaTeX() + "\\right|"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(f.arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(f.arg))
	case "tan":
		outer = PowOf(SecOf(f.arg), N(2))
	case "cot":
		outer = MulOf(N(-1), PowOf(CscOf(f.arg), N(2)))
	case "sec":
		outer = MulOf(SecOf(f.arg), TanOf(f.arg))
	case "csc":
		outer = MulOf(N(-1), CscOf(f.arg), CotOf(f.arg))
	case "log":
		outer = PowOf(f.arg, N(-1))
	case "abs":
		outer = funcOf("sign", f.arg)
	default:
		outer = funcOf("D["+f.name+"]", f.arg)
	}
	return MulOf(outer, du).Simplify()
}

func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	v := n.Float64()
	var r float64
	switch f.name {
	case "sin":
		r = math.Sin(v)
	case "cos":
		r = math.Cos(v)
	case "tan":
		r = math.Tan(v)
	case "cot":
		r = 1 / math.Tan(v)
	case "sec":
		r = 1 / math.Cos(v)
	case "csc":
		r = 1 / math.Sin(v)
	case "log":
		if v <= 0 {
			return nil, false
		}
		r = math.Log(v)
	case "abs":
		r = math.Abs(v)
	case "sign":
		switch {
		case v > 0:
			r = 1
		case v < 0:
			r = -1
		default:
			r = 0
		}
	default:
		return nil, false
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, false
	}
	return NFloat(r), true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

// ============================================================
// Package-level helpers
// ============================================================

// Simplify runs node simplification plus rational cancellation to a fixpoint.
func Simplify(e Expr) Expr {
	prev := ""
	curr := e.Simplify()
	for i := 0; i < 5; i++ {
		s := curr.String()
		if s == prev {
			break
		}
		prev = s
		curr = cancelQuotients(curr).Simplify()
	}
	return curr
}

// Diff differentiates and simplifies.
func Diff(expr Expr, varName string) Expr {
	return Simplify(expr.Diff(varName))
}

// SubVar substitutes and simplifies.
func SubVar(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}

// LaTeX renders any expression.
func LaTeX(e Expr) string { return e.LaTeX() }

// FreeSymbols collects variable names, excluding named constants.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

// SortedFreeSymbols returns the free symbols in lexical order.
func SortedFreeSymbols(e Expr) []string {
	set := FreeSymbols(e)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
