package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/JothiRam-cm/elevix/internal/domain"
	"github.com/JothiRam-cm/elevix/internal/llm"
	"go.uber.org/zap"
)

// Fixed policy strings. The refusal text is part of the routing contract
// and must be emitted byte for byte when retrieval reports no context.
const (
	RefusalMessage    = "I couldn't find this information in the company documents."
	ToolErrorMessage  = "I'm sorry, I'm unable to process that right now."
	EmptyInputMessage = "I didn't catch anything there. Could you type your question?"
	ClarifyMessage    = "I want to make sure I understand. Are you asking about a company HR policy, or is it a general question I should look up for you? A little more detail would help."

	fallbackGreeting = "Hello! I'm Ray, your HR assistant. How can I help you today?"

	searchFraming = "Here's what I found on the web:\n\n"
)

// Composer turns a turn outcome into the user-facing message. It never adds
// content beyond what the selected source produced; retrieval answers pass
// through verbatim and search answers only gain attribution framing.
type Composer struct {
	llm    domain.LLMClient
	logger *zap.Logger
}

func NewComposer(llmClient domain.LLMClient, logger *zap.Logger) *Composer {
	return &Composer{llm: llmClient, logger: logger}
}

func (c *Composer) Compose(ctx context.Context, outcome domain.TurnOutcome, query string, history []domain.Message) string {
	switch outcome.State {
	case domain.StateRetrieved:
		return outcome.Answer
	case domain.StateSearched:
		return searchFraming + outcome.Answer
	case domain.StateRefused:
		return RefusalMessage
	case domain.StateToolError:
		return ToolErrorMessage
	case domain.StateClarifying:
		return ClarifyMessage
	case domain.StateRejected:
		return EmptyInputMessage
	case domain.StateDirect:
		return c.smallTalk(ctx, query, history)
	default:
		return ToolErrorMessage
	}
}

// smallTalk generates a short conversational reply. The LLM is not one of
// the routed capabilities; if it fails the reply degrades to a canned
// greeting rather than a tool error.
func (c *Composer) smallTalk(ctx context.Context, query string, history []domain.Message) string {
	if c.llm == nil {
		return fallbackGreeting
	}

	var hist strings.Builder
	for _, m := range history {
		fmt.Fprintf(&hist, "%s: %s\n", m.Role, m.Content)
	}

	reply, err := c.llm.Generate(ctx, fmt.Sprintf(llm.SmallTalkPrompt, hist.String(), query))
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			c.logger.Warn("small talk generation failed, using fallback", zap.Error(err))
		}
		return fallbackGreeting
	}
	return reply
}
