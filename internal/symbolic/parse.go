package symbolic

import (
	"math/big"
	"regexp"
	"strings"
	"unicode"

	errx "github.com/lectura/server/internal/core/error"
)

// Parse converts expression text into an Expr. The grammar follows informal
// math-chat conventions rather than Go syntax: `^` (or `**`) is
// exponentiation, multiplication may be implicit (`2x`, `x y`, `2(x+1)`,
// `(x+1)(x-1)`), `e` and `pi` are constants, and `ln` is an alias for the
// natural log. Function-call repair and close-paren balancing run first so
// the parser can be invoked standalone on raw operand fragments.
func Parse(text string) (Expr, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, errx.Parsef("empty expression")
	}
	s = RepairFunctionCalls(s)
	s = BalanceParens(s)

	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, errx.Parsef("unexpected %q in %q", p.peek().text, text)
	}
	return e.Simplify(), nil
}

// RepairFunctionCalls rewrites shorthand applications like `sinx`, `sin 2x`
// or `sqrtx` into proper calls, and `ln` into `log`. Pure text transform.
func RepairFunctionCalls(expr string) string {
	expr = lnWord.ReplaceAllString(expr, "log")
	for _, f := range callableFuncs {
		expr = repairOne(expr, f)
	}
	return expr
}

var callableFuncs = []string{"sin", "cos", "tan", "cot", "sec", "csc", "log", "sqrt"}

var (
	lnWord      = regexp.MustCompile(`\bln\b`)
	funcRepairs = buildFuncRepairs()
)

func buildFuncRepairs() map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(callableFuncs))
	for _, f := range callableFuncs {
		out[f] = []*regexp.Regexp{
			regexp.MustCompile(`\b` + f + `\s*([a-zA-Z]\b)`),
			regexp.MustCompile(`\b` + f + `([a-zA-Z])\b`),
			regexp.MustCompile(`\b` + f + `\s*(\d+[a-zA-Z])`),
		}
	}
	return out
}

func repairOne(expr, fn string) string {
	for _, re := range funcRepairs[fn] {
		expr = re.ReplaceAllString(expr, fn+"($1)")
	}
	return expr
}

// BalanceParens appends the missing close parens when opens outnumber
// closes. Excess close parens are left alone; trimming them risks eating a
// paren the user meant.
func BalanceParens(expr string) string {
	opens := strings.Count(expr, "(")
	closes := strings.Count(expr, ")")
	if opens > closes {
		expr += strings.Repeat(")", opens-closes)
	}
	return expr
}

// ============================================================
// Lexer
// ============================================================

type tokKind int

const (
	tokNum tokKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokKind
	text string
}

// multi-letter identifiers that survive as a single token; any other alpha
// run is split into single-letter symbols (`xy` means x*y).
var namedIdents = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true,
	"csc": true, "log": true, "ln": true, "sqrt": true, "exp": true,
	"abs": true, "pi": true, "oo": true, "inf": true, "infinity": true,
	"infty": true,
}

func lex(s string) ([]token, error) {
	var toks []token
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c) || c == '.':
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			toks = append(toks, token{tokNum, string(runes[i:j])})
			i = j
		case unicode.IsLetter(c):
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			word := string(runes[i:j])
			toks = append(toks, splitIdent(word)...)
			i = j
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case c == '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				toks = append(toks, token{tokOp, "^"})
				i += 2
			} else {
				toks = append(toks, token{tokOp, "*"})
				i++
			}
		case c == '+' || c == '-' || c == '/' || c == '^':
			toks = append(toks, token{tokOp, string(c)})
			i++
		default:
			return nil, errx.Parsef("unexpected character %q", string(c))
		}
	}
	toks = append(toks, token{tokEOF, ""})
	return toks, nil
}

// splitIdent keeps known names whole and otherwise breaks an alpha run into
// single-letter symbols, peeling known prefixes first so `logx` still lexes
// as log, x after upstream repair missed it.
func splitIdent(word string) []token {
	lower := strings.ToLower(word)
	if namedIdents[lower] {
		return []token{{tokIdent, lower}}
	}
	var toks []token
	for len(lower) > 0 {
		matched := ""
		for name := range namedIdents {
			if strings.HasPrefix(lower, name) && len(name) > len(matched) {
				matched = name
			}
		}
		if matched != "" {
			toks = append(toks, token{tokIdent, matched})
			lower = lower[len(matched):]
			continue
		}
		toks = append(toks, token{tokIdent, lower[:1]})
		lower = lower[1:]
	}
	return toks
}

// ============================================================
// Parser
// ============================================================

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token  { return p.toks[p.pos] }
func (p *parser) next() token  { t := p.toks[p.pos]; p.pos++; return t }
func (p *parser) atEnd() bool  { return p.peek().kind == tokEOF }
func (p *parser) accept(op string) bool {
	if p.peek().kind == tokOp && p.peek().text == op {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept("+"):
			right, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			left = AddOf(left, right)
		case p.accept("-"):
			right, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			left = SubOf(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept("*"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = MulOf(left, right)
		case p.accept("/"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = DivOf(left, right)
		case p.peek().kind == tokNum || p.peek().kind == tokIdent || p.peek().kind == tokLParen:
			// Implicit multiplication: 2x, x y, 2(x+1), (x+1)(x-1).
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = MulOf(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.accept("-") {
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), e), nil
	}
	if p.accept("+") {
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.accept("^") {
		// Right associative; unary minus binds the whole exponent (x^-2).
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	}
	return base, nil
}

func (p *parser) parseAtom() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		r, ok := new(big.Rat).SetString(t.text)
		if !ok {
			return nil, errx.Parsef("bad number %q", t.text)
		}
		return NumFromRat(r), nil
	case tokIdent:
		return p.parseIdent(t.text)
	case tokLParen:
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.peek().kind == tokRParen {
			p.next()
		}
		return e, nil
	}
	return nil, errx.Parsef("unexpected token %q", t.text)
}

func (p *parser) parseIdent(name string) (Expr, error) {
	switch name {
	case "e":
		return E, nil
	case "pi":
		return Pi, nil
	case "oo", "inf", "infinity", "infty":
		return PosInf, nil
	}
	if isFuncName(name) {
		if p.peek().kind != tokLParen {
			return nil, errx.Parsef("function %q needs an argument", name)
		}
		p.next()
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.peek().kind == tokRParen {
			p.next()
		}
		return applyFunc(name, arg), nil
	}
	return S(name), nil
}

func isFuncName(name string) bool {
	switch name {
	case "sin", "cos", "tan", "cot", "sec", "csc", "log", "ln", "sqrt", "exp", "abs":
		return true
	}
	return false
}

func applyFunc(name string, arg Expr) Expr {
	switch name {
	case "sin":
		return SinOf(arg)
	case "cos":
		return CosOf(arg)
	case "tan":
		return TanOf(arg)
	case "cot":
		return CotOf(arg)
	case "sec":
		return SecOf(arg)
	case "csc":
		return CscOf(arg)
	case "log", "ln":
		return LogOf(arg)
	case "sqrt":
		return SqrtOf(arg)
	case "exp":
		return ExpOf(arg)
	case "abs":
		return AbsOf(arg)
	}
	return funcOf(name, arg).Simplify()
}
