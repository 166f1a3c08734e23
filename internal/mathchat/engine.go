package mathchat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/lectura/server/internal/symbolic"
	logx "github.com/lectura/server/pkg/logger"
)

// Completer is the slice of the chat client the engine needs: a gated,
// single-shot completion call.
type Completer interface {
	Available() bool
	Complete(ctx context.Context, system, user string) (string, error)
}

// HistoryCompleter is optionally implemented by collaborators that accept
// prior conversation turns.
type HistoryCompleter interface {
	CompleteHistory(ctx context.Context, system string, history []*schema.Message, user string) (string, error)
}

// Engine resolves math queries through ordered tiers: concept check, local
// intent detection, bare expression evaluation, remote-assisted parsing, and
// finally the help text. Parse and compute failures never surface to the
// user; they only move resolution down a tier.
type Engine struct {
	llm Completer
}

func NewEngine(llm Completer) *Engine {
	return &Engine{llm: llm}
}

// Resolve answers a single query. allowRemote false keeps resolution fully
// local; a missing or failing collaborator degrades to the same behavior.
func (e *Engine) Resolve(ctx context.Context, query string, allowRemote bool) string {
	return e.ResolveConversation(ctx, query, allowRemote, nil)
}

// ResolveConversation is Resolve with prior turns: the remote tiers pass the
// history along when the collaborator supports it, so follow-up questions
// keep their context. The algebra tiers ignore history.
func (e *Engine) ResolveConversation(ctx context.Context, query string, allowRemote bool, history []*schema.Message) string {
	raw := strings.TrimSpace(query)
	if raw == "" {
		return helpReply()
	}

	// Concept questions are terminal: never routed into the algebra tiers.
	if topic, ok := ConceptTrigger(raw); ok {
		return FormatReply(e.explainConcept(ctx, topic, allowRemote, history))
	}

	plan := DetectIntent(raw)
	if plan.Op == OpExplain {
		topic := plan.Topic
		if topic == "" {
			topic = raw
		}
		return FormatReply(e.explainConcept(ctx, topic, allowRemote, history))
	}
	if plan.Op != OpNone {
		result, err := Compute(plan)
		if err == nil {
			return FormatReply(result)
		}
		logx.Debug().Err(err).Str("op", plan.Op).Msg("local plan failed, falling through")
	}

	if reply, ok := bareExpression(raw); ok {
		return FormatReply(reply)
	}

	if allowRemote && e.remoteAvailable() {
		if reply, ok := e.remoteAssisted(ctx, raw, history); ok {
			return FormatReply(reply)
		}
	}

	return helpReply()
}

// complete routes through CompleteHistory when turns exist and the
// collaborator accepts them.
func (e *Engine) complete(ctx context.Context, system, user string, history []*schema.Message) (string, error) {
	if len(history) > 0 {
		if hc, ok := e.llm.(HistoryCompleter); ok {
			return hc.CompleteHistory(ctx, system, history, user)
		}
	}
	return e.llm.Complete(ctx, system, user)
}

func helpReply() string {
	return "I couldn't parse that.\n\n" + MathHelp
}

func (e *Engine) remoteAvailable() bool {
	return e.llm != nil && e.llm.Available()
}

// explainConcept prefers the collaborator and falls back to the offline
// knowledge base, then to a fixed unavailability note.
func (e *Engine) explainConcept(ctx context.Context, topic string, allowRemote bool, history []*schema.Message) string {
	if allowRemote && e.remoteAvailable() {
		reply, err := e.complete(ctx, conceptSystemPrompt, "Explain this concept: "+topic, history)
		if err == nil && strings.TrimSpace(reply) != "" {
			return strings.TrimSpace(reply)
		}
		if err != nil {
			logx.Debug().Err(err).Msg("concept explanation via model failed, using offline notes")
		}
	}
	if note, ok := LookupConcept(topic); ok {
		return note
	}
	return conceptUnavailable(topic)
}

// bareExpression treats the whole query as one expression: numbers come back
// bare, simplifiable input as `original = simplified`, anything else echoed
// in LaTeX.
func bareExpression(raw string) (string, bool) {
	expr, err := symbolic.Parse(raw)
	if err != nil {
		return "", false
	}
	val := symbolic.Simplify(expr)
	if _, isNum := val.(*symbolic.Num); isNum {
		return "$$" + symbolic.LaTeX(val) + "$$", true
	}
	if val.String() != expr.String() {
		return "$$" + symbolic.LaTeX(expr) + " = " + symbolic.LaTeX(val) + "$$", true
	}
	return "$$" + symbolic.LaTeX(expr) + "$$", true
}

// remoteAssisted asks the collaborator for a structured plan, computes it
// locally, and decorates the result with a short explanation. If the plan
// cannot be computed the collaborator answers conversationally instead.
func (e *Engine) remoteAssisted(ctx context.Context, raw string, history []*schema.Message) (string, bool) {
	plan := e.remotePlan(ctx, raw)
	if plan.Op == "" || plan.Op == OpNone {
		return "", false
	}
	result, err := Compute(plan)
	if err == nil {
		if expl, err2 := e.llm.Complete(ctx, explainSystemPrompt,
			fmt.Sprintf("Question: %s\nComputed result: %s", raw, result)); err2 == nil {
			if expl = strings.TrimSpace(expl); expl != "" {
				result += "\n\n" + expl
			}
		}
		return result, true
	}
	logx.Debug().Err(err).Str("op", plan.Op).Msg("remote plan failed to compute")

	reply, err := e.complete(ctx, tutorSystemPrompt, raw, history)
	if err != nil || strings.TrimSpace(reply) == "" {
		return "", false
	}
	return strings.TrimSpace(reply), true
}

// remotePlan extracts the first {...} block from the model reply; anything
// malformed degrades to an op-none plan.
func (e *Engine) remotePlan(ctx context.Context, raw string) Plan {
	text, err := e.llm.Complete(ctx, planSystemPrompt, raw)
	if err != nil {
		logx.Debug().Err(err).Msg("remote plan request failed")
		return Plan{Op: OpNone}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return Plan{Op: OpNone}
	}
	var plan Plan
	if err := json.Unmarshal([]byte(text[start:end+1]), &plan); err != nil {
		logx.Debug().Err(err).Msg("remote plan is not valid JSON")
		return Plan{Op: OpNone}
	}
	if plan.Op == "" {
		plan.Op = OpNone
	}
	return plan
}
