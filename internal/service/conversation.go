package service

import (
	"context"
	"strings"
	"time"

	"github.com/JothiRam-cm/elevix/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConversationService processes one turn at a time per session:
// classify, route, execute at most one capability, compose, append.
type ConversationService struct {
	sessions   *SessionManager
	classifier *Classifier
	router     *Router
	composer   *Composer
	window     int
	logger     *zap.Logger
}

func NewConversationService(sessions *SessionManager, classifier *Classifier, router *Router, composer *Composer, window int, logger *zap.Logger) *ConversationService {
	if window <= 0 {
		window = 5
	}
	return &ConversationService{
		sessions:   sessions,
		classifier: classifier,
		router:     router,
		composer:   composer,
		window:     window,
		logger:     logger,
	}
}

// HandleQuery processes a user utterance for the given session. Every
// failure kind terminates at this turn with a composed, user-readable
// message; the only error returned is an unknown session.
func (s *ConversationService) HandleQuery(ctx context.Context, sessionID uuid.UUID, text string) (*domain.ChatResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	// One turn at a time per session, append included.
	sess.turnMu.Lock()
	defer sess.turnMu.Unlock()

	receivedAt := time.Now()
	query := strings.TrimSpace(text)
	history := sess.Window(s.window)

	var outcome domain.TurnOutcome
	if query == "" {
		// Rejected before classification.
		outcome = domain.TurnOutcome{
			Decision: domain.RoutingDecision{
				Intent:    domain.IntentAmbiguous,
				Action:    domain.ActionClarify,
				Rationale: "empty input rejected before classification",
			},
			State: domain.StateRejected,
		}
	} else {
		intent, confidence := s.classifier.Classify(query, history)
		decision := s.router.Decide(intent, confidence)
		s.logger.Info("routing decision",
			zap.String("session_id", sessionID.String()),
			zap.String("intent", string(decision.Intent)),
			zap.Float64("confidence", decision.Confidence),
			zap.String("action", string(decision.Action)),
			zap.String("rationale", decision.Rationale),
		)
		outcome = s.router.Execute(ctx, decision, query, history)
	}

	message := s.composer.Compose(ctx, outcome, query, history)

	sess.append(domain.ConversationTurn{
		User:   domain.Utterance{Sender: domain.SenderUser, Text: text, Timestamp: receivedAt},
		Agent:  domain.Utterance{Sender: domain.SenderAgent, Text: message, Timestamp: time.Now()},
		Intent: outcome.Decision.Intent,
		Action: outcome.Action(),
		State:  outcome.State,
	})

	return &domain.ChatResult{
		SessionID: sess.ID,
		Message:   message,
		Intent:    outcome.Decision.Intent,
		Action:    outcome.Action(),
		State:     outcome.State,
		Sources:   outcome.Sources,
	}, nil
}
