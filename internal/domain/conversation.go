package domain

import (
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Utterance is a single message in a conversation. Immutable once created.
type Utterance struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Message is the role/content pair handed to the retrieval capability and
// the intent classifier as conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationTurn pairs one user utterance with the agent's reply, plus
// the routing that produced it. Read-only once appended.
type ConversationTurn struct {
	User   Utterance `json:"user"`
	Agent  Utterance `json:"agent"`
	Intent Intent    `json:"intent"`
	Action Action    `json:"action"`
	State  TurnState `json:"state"`
}

// RoutingDecision is the router's per-turn choice. Ephemeral; logged but
// never persisted.
type RoutingDecision struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Action     Action  `json:"action"`
	Rationale  string  `json:"rationale"`
}

// TurnOutcome is the result of executing a routing decision: the terminal
// state plus the raw text from whichever source the action selected.
// Answer carries only what the selected source produced; the composer
// turns it into the user-facing message.
type TurnOutcome struct {
	Decision RoutingDecision
	State    TurnState
	Answer   string
	Sources  []Citation
}

// Action reports the action the turn actually took. A retrieval that came
// back without context was a refusal, and a rejected empty input resolves
// to a clarification prompt.
func (o TurnOutcome) Action() Action {
	switch o.State {
	case StateRefused:
		return ActionRefuse
	case StateRejected:
		return ActionClarify
	default:
		return o.Decision.Action
	}
}

// ChatResult is what a processed turn exposes to the caller.
type ChatResult struct {
	SessionID uuid.UUID  `json:"session_id"`
	Message   string     `json:"message"`
	Intent    Intent     `json:"intent"`
	Action    Action     `json:"action"`
	State     TurnState  `json:"state"`
	Sources   []Citation `json:"sources,omitempty"`
}
