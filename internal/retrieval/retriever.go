// Package retrieval implements the document-grounded answering capability:
// embed the query, pull the nearest HR passages from the vector index, and
// generate an answer constrained to those passages. When the index returns
// nothing, HasContext=false is reported and no answer is invented.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/JothiRam-cm/elevix/internal/domain"
	"github.com/JothiRam-cm/elevix/internal/llm"
	"go.uber.org/zap"
)

const DefaultTopK = 5

type Retriever struct {
	passages domain.PassageStore
	embedder domain.EmbeddingClient
	llm      domain.LLMClient
	topK     int
	logger   *zap.Logger
}

func NewRetriever(passages domain.PassageStore, embedder domain.EmbeddingClient, llmClient domain.LLMClient, topK int, logger *zap.Logger) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		passages: passages,
		embedder: embedder,
		llm:      llmClient,
		topK:     topK,
		logger:   logger,
	}
}

// ErrClientsUnavailable means the embedding or LLM client never came up.
// Callers see it as a capability failure, not a crash.
var ErrClientsUnavailable = errors.New("retrieval clients unavailable")

// Run answers the query from the indexed documents. A zero-passage result
// yields HasContext=false without consulting the LLM.
func (r *Retriever) Run(ctx context.Context, query string, history []domain.Message) (*domain.RetrievalResult, error) {
	if r.embedder == nil || r.llm == nil {
		return nil, ErrClientsUnavailable
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.passages.Search(ctx, embedding, domain.SearchOpts{TopK: r.topK})
	if err != nil {
		return nil, fmt.Errorf("search passages: %w", err)
	}

	if len(hits) == 0 {
		r.logger.Info("retrieval found no context", zap.String("query", query))
		return &domain.RetrievalResult{HasContext: false}, nil
	}

	answer, err := r.llm.Generate(ctx, buildPrompt(query, history, hits))
	if err != nil {
		return nil, fmt.Errorf("generate grounded answer: %w", err)
	}

	sources := make([]domain.Citation, 0, len(hits))
	for _, h := range hits {
		sources = append(sources, domain.Citation{
			File:     h.SourceFile,
			Type:     h.FileType,
			Location: h.Location,
			Snippet:  snippet(h.Content, 200),
		})
	}

	r.logger.Info("retrieval answered",
		zap.String("query", query),
		zap.Int("passages", len(hits)),
	)

	return &domain.RetrievalResult{
		Answer:     answer,
		HasContext: true,
		Sources:    sources,
	}, nil
}

func buildPrompt(query string, history []domain.Message, hits []domain.PassageWithScore) string {
	var ctx strings.Builder
	for i, h := range hits {
		fmt.Fprintf(&ctx, "[%d] %s (%s): %s\n", i+1, h.SourceFile, h.Location, h.Content)
	}
	if len(history) > 0 {
		ctx.WriteString("\nRecent conversation:\n")
		for _, m := range history {
			fmt.Fprintf(&ctx, "%s: %s\n", m.Role, m.Content)
		}
	}
	return fmt.Sprintf(llm.GroundedAnswerPrompt, ctx.String(), query)
}

func snippet(content string, max int) string {
	if len(content) <= max {
		return content
	}
	// Back up to a rune boundary so the cut never splits a UTF-8 sequence.
	cut := max
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "..."
}
