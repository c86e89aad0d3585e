package domain

type Intent string

const (
	IntentHRPolicy    Intent = "HR_POLICY"
	IntentGeneralFact Intent = "GENERAL_FACT"
	IntentSmallTalk   Intent = "SMALL_TALK"
	IntentAmbiguous   Intent = "AMBIGUOUS"
)

func ValidIntent(i string) bool {
	switch Intent(i) {
	case IntentHRPolicy, IntentGeneralFact, IntentSmallTalk, IntentAmbiguous:
		return true
	}
	return false
}

// Action is the single external move the router commits to for a turn.
// Exactly one action is chosen per turn, as a function of intent alone.
type Action string

const (
	ActionRetrieve    Action = "RETRIEVE"
	ActionSearch      Action = "SEARCH"
	ActionDirectReply Action = "DIRECT_REPLY"
	ActionClarify     Action = "CLARIFY"
	ActionRefuse      Action = "REFUSE"
)

// TurnState is the terminal state a turn ends in after the chosen action
// has been executed.
type TurnState string

const (
	StateRetrieved  TurnState = "routed_retrieve"
	StateSearched   TurnState = "routed_search"
	StateDirect     TurnState = "routed_direct"
	StateClarifying TurnState = "clarifying"
	StateRefused    TurnState = "refused"
	StateToolError  TurnState = "tool_error"
	StateRejected   TurnState = "rejected_empty"
)
