package service

import (
	"context"

	"github.com/JothiRam-cm/elevix/internal/domain"
	"go.uber.org/zap"
)

// Router is the decision core. The action is a total, deterministic
// function of intent alone; which capability runs is fixed before either
// is touched, so a turn can never invoke both and a failed capability can
// never cascade into the other one.
type Router struct {
	retrieval domain.RetrievalCapability
	webSearch domain.WebSearchCapability
	logger    *zap.Logger
}

func NewRouter(retrieval domain.RetrievalCapability, webSearch domain.WebSearchCapability, logger *zap.Logger) *Router {
	return &Router{
		retrieval: retrieval,
		webSearch: webSearch,
		logger:    logger,
	}
}

// Decide maps a classified intent to the single action for this turn.
func (r *Router) Decide(intent domain.Intent, confidence float64) domain.RoutingDecision {
	d := domain.RoutingDecision{Intent: intent, Confidence: confidence}
	switch intent {
	case domain.IntentHRPolicy:
		d.Action = domain.ActionRetrieve
		d.Rationale = "HR-domain query answers only from company documents"
	case domain.IntentGeneralFact:
		d.Action = domain.ActionSearch
		d.Rationale = "general fact answers only from web search"
	case domain.IntentSmallTalk:
		d.Action = domain.ActionDirectReply
		d.Rationale = "conversational input needs no tool"
	default:
		d.Action = domain.ActionClarify
		d.Rationale = "intent unclear, asking instead of guessing"
	}
	return d
}

// Execute runs the decided action, invoking at most one capability.
// Capability failures terminate the turn in the tool-error state: no retry,
// no switch to the other capability, no raw error surfaced.
func (r *Router) Execute(ctx context.Context, decision domain.RoutingDecision, query string, history []domain.Message) domain.TurnOutcome {
	outcome := domain.TurnOutcome{Decision: decision}

	switch decision.Action {
	case domain.ActionRetrieve:
		res, err := r.retrieval.Run(ctx, query, history)
		if err != nil {
			r.logger.Warn("retrieval capability failed", zap.Error(err))
			outcome.State = domain.StateToolError
			return outcome
		}
		// HasContext=false is authoritative: refuse. The search capability
		// is not reachable from this branch.
		if !res.HasContext {
			outcome.State = domain.StateRefused
			return outcome
		}
		outcome.State = domain.StateRetrieved
		outcome.Answer = res.Answer
		outcome.Sources = res.Sources

	case domain.ActionSearch:
		res, err := r.webSearch.Run(ctx, query)
		if err != nil {
			r.logger.Warn("web search capability failed", zap.Error(err))
			outcome.State = domain.StateToolError
			return outcome
		}
		outcome.State = domain.StateSearched
		outcome.Answer = res.Answer
		outcome.Sources = res.Sources

	case domain.ActionDirectReply:
		outcome.State = domain.StateDirect

	default:
		outcome.State = domain.StateClarifying
	}

	return outcome
}
