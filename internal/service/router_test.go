package service

import (
	"context"
	"errors"
	"testing"

	"github.com/JothiRam-cm/elevix/internal/domain"
	"go.uber.org/zap"
)

// mockRetrievalCapability implements domain.RetrievalCapability for testing.
type mockRetrievalCapability struct {
	result *domain.RetrievalResult
	err    error
	calls  []string
}

func (m *mockRetrievalCapability) Run(ctx context.Context, query string, history []domain.Message) (*domain.RetrievalResult, error) {
	m.calls = append(m.calls, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockSearchCapability implements domain.WebSearchCapability for testing.
type mockSearchCapability struct {
	result *domain.SearchResult
	err    error
	calls  []string
}

func (m *mockSearchCapability) Run(ctx context.Context, query string) (*domain.SearchResult, error) {
	m.calls = append(m.calls, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func TestRouter_Decide_DeterministicAndTotal(t *testing.T) {
	router := NewRouter(&mockRetrievalCapability{}, &mockSearchCapability{}, zap.NewNop())

	cases := []struct {
		intent domain.Intent
		action domain.Action
	}{
		{domain.IntentHRPolicy, domain.ActionRetrieve},
		{domain.IntentGeneralFact, domain.ActionSearch},
		{domain.IntentSmallTalk, domain.ActionDirectReply},
		{domain.IntentAmbiguous, domain.ActionClarify},
	}

	for _, tc := range cases {
		d := router.Decide(tc.intent, 0.8)
		if d.Action != tc.action {
			t.Errorf("intent %s: expected action %s, got %s", tc.intent, tc.action, d.Action)
		}
		// Same intent must always map to the same action.
		if again := router.Decide(tc.intent, 0.8); again.Action != d.Action {
			t.Errorf("intent %s: decision not deterministic", tc.intent)
		}
	}
}

func TestRouter_HRPolicy_WithContext(t *testing.T) {
	retrieval := &mockRetrievalCapability{
		result: &domain.RetrievalResult{Answer: "12 weeks paid", HasContext: true},
	}
	search := &mockSearchCapability{}
	router := NewRouter(retrieval, search, zap.NewNop())

	decision := router.Decide(domain.IntentHRPolicy, 0.9)
	outcome := router.Execute(context.Background(), decision, "maternity leave policy", nil)

	if outcome.State != domain.StateRetrieved {
		t.Fatalf("expected state %s, got %s", domain.StateRetrieved, outcome.State)
	}
	if outcome.Answer != "12 weeks paid" {
		t.Errorf("expected verbatim answer, got %q", outcome.Answer)
	}
	if len(retrieval.calls) != 1 || retrieval.calls[0] != "maternity leave policy" {
		t.Errorf("expected one retrieval call with the query, got %v", retrieval.calls)
	}
	if len(search.calls) != 0 {
		t.Errorf("web search must never run for HR_POLICY, got %d calls", len(search.calls))
	}
}

func TestRouter_HRPolicy_NoContext_RefusesWithoutFallback(t *testing.T) {
	retrieval := &mockRetrievalCapability{
		// Answer text present but HasContext=false: the flag is authoritative.
		result: &domain.RetrievalResult{Answer: "some guessed text", HasContext: false},
	}
	search := &mockSearchCapability{
		result: &domain.SearchResult{Answer: "web says otherwise"},
	}
	router := NewRouter(retrieval, search, zap.NewNop())

	decision := router.Decide(domain.IntentHRPolicy, 0.9)
	outcome := router.Execute(context.Background(), decision, "sabbatical policy", nil)

	if outcome.State != domain.StateRefused {
		t.Fatalf("expected state %s, got %s", domain.StateRefused, outcome.State)
	}
	if outcome.Answer != "" {
		t.Errorf("refusal must not carry the capability's answer, got %q", outcome.Answer)
	}
	if outcome.Action() != domain.ActionRefuse {
		t.Errorf("expected action %s, got %s", domain.ActionRefuse, outcome.Action())
	}
	if len(search.calls) != 0 {
		t.Errorf("web search must never run when retrieval has no context, got %d calls", len(search.calls))
	}
}

func TestRouter_GeneralFact_NeverRetrieves(t *testing.T) {
	retrieval := &mockRetrievalCapability{
		result: &domain.RetrievalResult{Answer: "from docs", HasContext: true},
	}
	search := &mockSearchCapability{
		result: &domain.SearchResult{Answer: "Emmanuel Macron"},
	}
	router := NewRouter(retrieval, search, zap.NewNop())

	decision := router.Decide(domain.IntentGeneralFact, 0.9)
	outcome := router.Execute(context.Background(), decision, "president of France", nil)

	if outcome.State != domain.StateSearched {
		t.Fatalf("expected state %s, got %s", domain.StateSearched, outcome.State)
	}
	if outcome.Answer != "Emmanuel Macron" {
		t.Errorf("expected search answer, got %q", outcome.Answer)
	}
	if len(retrieval.calls) != 0 {
		t.Errorf("retrieval must never run for GENERAL_FACT, got %d calls", len(retrieval.calls))
	}
}

func TestRouter_AtMostOneCapabilityPerTurn(t *testing.T) {
	for _, intent := range []domain.Intent{
		domain.IntentHRPolicy, domain.IntentGeneralFact,
		domain.IntentSmallTalk, domain.IntentAmbiguous,
	} {
		retrieval := &mockRetrievalCapability{result: &domain.RetrievalResult{HasContext: true, Answer: "a"}}
		search := &mockSearchCapability{result: &domain.SearchResult{Answer: "b"}}
		router := NewRouter(retrieval, search, zap.NewNop())

		router.Execute(context.Background(), router.Decide(intent, 0.9), "query", nil)

		if total := len(retrieval.calls) + len(search.calls); total > 1 {
			t.Errorf("intent %s: %d capability calls in one turn, want at most 1", intent, total)
		}
	}
}

func TestRouter_RetrievalError_NoChainingIntoSearch(t *testing.T) {
	retrieval := &mockRetrievalCapability{err: errors.New("timeout")}
	search := &mockSearchCapability{result: &domain.SearchResult{Answer: "web"}}
	router := NewRouter(retrieval, search, zap.NewNop())

	outcome := router.Execute(context.Background(), router.Decide(domain.IntentHRPolicy, 0.9), "leave policy", nil)

	if outcome.State != domain.StateToolError {
		t.Fatalf("expected state %s, got %s", domain.StateToolError, outcome.State)
	}
	if len(retrieval.calls) != 1 {
		t.Errorf("expected exactly one retrieval attempt (no retry), got %d", len(retrieval.calls))
	}
	if len(search.calls) != 0 {
		t.Errorf("a retrieval failure must not trigger web search, got %d calls", len(search.calls))
	}
}

func TestRouter_SearchError_NoChainingIntoRetrieval(t *testing.T) {
	retrieval := &mockRetrievalCapability{result: &domain.RetrievalResult{HasContext: true, Answer: "docs"}}
	search := &mockSearchCapability{err: errors.New("no results")}
	router := NewRouter(retrieval, search, zap.NewNop())

	outcome := router.Execute(context.Background(), router.Decide(domain.IntentGeneralFact, 0.9), "weather", nil)

	if outcome.State != domain.StateToolError {
		t.Fatalf("expected state %s, got %s", domain.StateToolError, outcome.State)
	}
	if len(search.calls) != 1 {
		t.Errorf("expected exactly one search attempt (no retry), got %d", len(search.calls))
	}
	if len(retrieval.calls) != 0 {
		t.Errorf("a search failure must not trigger retrieval, got %d calls", len(retrieval.calls))
	}
}

func TestRouter_SmallTalkAndClarify_NoCapability(t *testing.T) {
	retrieval := &mockRetrievalCapability{}
	search := &mockSearchCapability{}
	router := NewRouter(retrieval, search, zap.NewNop())

	direct := router.Execute(context.Background(), router.Decide(domain.IntentSmallTalk, 0.9), "hey", nil)
	clarify := router.Execute(context.Background(), router.Decide(domain.IntentAmbiguous, 0.2), "policy", nil)

	if direct.State != domain.StateDirect {
		t.Errorf("expected state %s, got %s", domain.StateDirect, direct.State)
	}
	if clarify.State != domain.StateClarifying {
		t.Errorf("expected state %s, got %s", domain.StateClarifying, clarify.State)
	}
	if len(retrieval.calls) != 0 || len(search.calls) != 0 {
		t.Error("no capability may run for small talk or clarification")
	}
}
