package mathchat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"
)

// stubModel scripts the collaborator: one canned reply per system prompt.
type stubModel struct {
	available bool
	replies   map[string]string
	err       error
	calls     []string
}

func (s *stubModel) Available() bool { return s.available }

func (s *stubModel) Complete(_ context.Context, system, _ string) (string, error) {
	s.calls = append(s.calls, system)
	if s.err != nil {
		return "", s.err
	}
	return s.replies[system], nil
}

func TestResolveLocalIntent(t *testing.T) {
	e := NewEngine(nil)
	got := e.Resolve(context.Background(), "derivative of x^2", false)
	require.Equal(t, `$$\frac{d}{dx}\,x^{2} = 2 x$$`, got)
}

func TestResolveTypoStillResolvesLocally(t *testing.T) {
	e := NewEngine(nil)
	got := e.Resolve(context.Background(), "derivitive of x^2", false)
	require.Contains(t, got, "2 x")
}

func TestResolveBareExpression(t *testing.T) {
	e := NewEngine(nil)
	require.Equal(t, "$$19$$", e.Resolve(context.Background(), "9+10", false))
}

func TestResolveBareExpressionShowsSimplification(t *testing.T) {
	e := NewEngine(nil)
	got := e.Resolve(context.Background(), "(x^2-1)/(x-1)", false)
	require.Equal(t, `$$\frac{x^{2} - 1}{x - 1} = x + 1$$`, got)
}

func TestResolveConceptOffline(t *testing.T) {
	e := NewEngine(nil)
	got := e.Resolve(context.Background(), "what is a derivative?", false)
	require.Contains(t, got, "instantaneous rate of change")
}

func TestResolveConceptUnknownOffline(t *testing.T) {
	e := NewEngine(nil)
	got := e.Resolve(context.Background(), "explain sheaf cohomology", false)
	require.Contains(t, got, "unavailable offline")
}

func TestResolveExhaustedGivesHelp(t *testing.T) {
	e := NewEngine(nil)
	got := e.Resolve(context.Background(), "???", false)
	require.True(t, strings.HasPrefix(got, "I couldn't parse that."))
	require.Contains(t, got, "I can help with:")
}

func TestResolveOfflineNeverCallsModel(t *testing.T) {
	stub := &stubModel{available: true, replies: map[string]string{}}
	e := NewEngine(stub)
	e.Resolve(context.Background(), "please solve this for me???", false)
	require.Empty(t, stub.calls)
}

func TestResolveRemotePlan(t *testing.T) {
	stub := &stubModel{
		available: true,
		replies: map[string]string{
			planSystemPrompt:    `{"op":"derivative","expr":"x^2"}`,
			explainSystemPrompt: "- power rule brings the exponent down",
		},
	}
	e := NewEngine(stub)
	got := e.Resolve(context.Background(), "please compute the slope thing for x squared???", true)
	require.Contains(t, got, "2 x")
	require.Contains(t, got, "power rule")
}

func TestResolveRemotePlanRefusal(t *testing.T) {
	stub := &stubModel{available: true, replies: map[string]string{
		planSystemPrompt: `{"op":"none"}`,
	}}
	e := NewEngine(stub)
	got := e.Resolve(context.Background(), "???", true)
	require.True(t, strings.HasPrefix(got, "I couldn't parse that."))
}

func TestResolveRemoteConversationalFallback(t *testing.T) {
	stub := &stubModel{
		available: true,
		replies: map[string]string{
			planSystemPrompt:  `{"op":"integral","expr":"@@@"}`,
			tutorSystemPrompt: "That one needs pen and paper, but here is the idea.",
		},
	}
	e := NewEngine(stub)
	got := e.Resolve(context.Background(), "???", true)
	require.Equal(t, "That one needs pen and paper, but here is the idea.", got)
}

func TestResolveRemoteUnavailableFallsBack(t *testing.T) {
	stub := &stubModel{available: false}
	e := NewEngine(stub)
	got := e.Resolve(context.Background(), "???", true)
	require.True(t, strings.HasPrefix(got, "I couldn't parse that."))
	require.Empty(t, stub.calls)
}

func TestResolveRemoteErrorFallsBack(t *testing.T) {
	stub := &stubModel{available: true, err: errors.New("network down")}
	e := NewEngine(stub)
	got := e.Resolve(context.Background(), "???", true)
	require.True(t, strings.HasPrefix(got, "I couldn't parse that."))
}

func TestResolveConceptPrefersModel(t *testing.T) {
	stub := &stubModel{available: true, replies: map[string]string{
		conceptSystemPrompt: "- a limit describes approach behavior",
	}}
	e := NewEngine(stub)
	got := e.Resolve(context.Background(), "what is a limit?", true)
	require.Equal(t, "- a limit describes approach behavior", got)
}

// historyStub additionally accepts prior turns and records how many it saw.
type historyStub struct {
	stubModel
	historyLen int
}

func (s *historyStub) CompleteHistory(_ context.Context, system string, history []*schema.Message, _ string) (string, error) {
	s.calls = append(s.calls, system)
	s.historyLen = len(history)
	return s.replies[system], nil
}

func TestResolveConversationPassesHistory(t *testing.T) {
	stub := &historyStub{stubModel: stubModel{available: true, replies: map[string]string{
		conceptSystemPrompt: "as discussed, it measures slope",
	}}}
	e := NewEngine(stub)
	history := []*schema.Message{
		schema.UserMessage("derivative of x^2"),
		schema.AssistantMessage("$$2 x$$", nil),
	}
	got := e.ResolveConversation(context.Background(), "what is a derivative?", true, history)
	require.Equal(t, "as discussed, it measures slope", got)
	require.Equal(t, 2, stub.historyLen)
}

func TestResolveEmptyQuery(t *testing.T) {
	e := NewEngine(nil)
	got := e.Resolve(context.Background(), "   ", false)
	require.True(t, strings.HasPrefix(got, "I couldn't parse that."))
}
