package mathchat

import (
	"regexp"
	"strings"
)

// Operation names shared by the local detector and the remote plan JSON.
const (
	OpNone       = "none"
	OpDerivative = "derivative"
	OpIntegral   = "integral"
	OpLimit      = "limit"
	OpSolve      = "solve"
	OpSimplify   = "simplify"
	OpFactor     = "factor"
	OpExpand     = "expand"
	OpExplain    = "explain"
)

// Plan is one executable math instruction. The JSON tags match the compact
// plan format the language model is asked to emit.
type Plan struct {
	Op    string `json:"op"`
	Expr  string `json:"expr,omitempty"`
	A     string `json:"a,omitempty"`
	B     string `json:"b,omitempty"`
	Var   string `json:"var,omitempty"`
	To    string `json:"to,omitempty"`
	Topic string `json:"-"`
}

var (
	explainQueryRe = regexp.MustCompile(`^(explain|what\s+is|define|why\s+is|intuition\s+for)\s+(.+)$`)
	derivativeRe   = regexp.MustCompile(`(?:what'?s\s+the\s+)?(?:derivative|differentiate|d/dx)\s+(?:of\s+)?(.+)`)
	integralRe     = regexp.MustCompile(`(?:integral|integrate)\s+(?:of\s+)?(.+?)\s*(?:from\s+(\S+)\s+to\s+(\S+))?$`)
	limitRe        = regexp.MustCompile(`limit\s*(.+?)\s*as\s*([a-zA-Z])\s*->\s*(\S+)`)
	solveRe        = regexp.MustCompile(`(?:solve|roots|solution)\s+(.+)`)
	restructureRe  = regexp.MustCompile(`(simplify|factor|expand)\s+(.+)`)

	conceptTriggerRe = regexp.MustCompile(`(?i)\b(explain|what\s+is|define|why\s+is|intuition\s+for)\b`)
)

// ConceptTrigger reports whether raw opens with an explanation request and
// extracts the topic. Runs on the raw text, before any normalization, so
// concept questions never reach the algebra tiers.
func ConceptTrigger(raw string) (topic string, ok bool) {
	loc := conceptTriggerRe.FindStringIndex(raw)
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	topic = strings.Trim(conceptTriggerRe.ReplaceAllString(raw, ""), " ?.")
	if topic == "" {
		topic = raw
	}
	return topic, true
}

// DetectIntent runs the typo-tolerant local detector. Patterns are tried in
// a fixed priority order; operand capture is greedy so the detector never
// guesses where an expression ends. No match yields Op none.
func DetectIntent(raw string) Plan {
	t := FixOperatorTypos(strings.ToLower(strings.TrimSpace(raw)))

	if m := explainQueryRe.FindStringSubmatch(t); m != nil {
		return Plan{Op: OpExplain, Topic: strings.Trim(m[2], " ?.")}
	}
	if m := derivativeRe.FindStringSubmatch(t); m != nil {
		return Plan{Op: OpDerivative, Expr: strings.TrimSpace(m[1])}
	}
	if m := integralRe.FindStringSubmatch(t); m != nil {
		return Plan{Op: OpIntegral, Expr: strings.TrimSpace(m[1]), A: m[2], B: m[3]}
	}
	if m := limitRe.FindStringSubmatch(t); m != nil {
		return Plan{Op: OpLimit, Expr: strings.TrimSpace(m[1]), Var: m[2], To: m[3]}
	}
	if m := solveRe.FindStringSubmatch(t); m != nil {
		return Plan{Op: OpSolve, Expr: strings.TrimSpace(m[1])}
	}
	if m := restructureRe.FindStringSubmatch(t); m != nil {
		return Plan{Op: m[1], Expr: strings.TrimSpace(m[2])}
	}
	return Plan{Op: OpNone}
}
