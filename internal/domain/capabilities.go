package domain

import (
	"context"

	"github.com/google/uuid"
)

// RetrievalCapability answers a query from the indexed HR documents.
type RetrievalCapability interface {
	Run(ctx context.Context, query string, history []Message) (*RetrievalResult, error)
}

// WebSearchCapability answers a query from the open web. An empty result is
// an error, never a silent blank answer.
type WebSearchCapability interface {
	Run(ctx context.Context, query string) (*SearchResult, error)
}

// LLMClient is a provider-polymorphic text generator, selected by
// configuration at construction time.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmbeddingClient turns text into a vector for passage search.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type SearchOpts struct {
	TopK int
}

type PassageStore interface {
	Create(ctx context.Context, p *Passage) error
	GetByID(ctx context.Context, id uuid.UUID) (*Passage, error)
	Search(ctx context.Context, embedding []float32, opts SearchOpts) ([]PassageWithScore, error)
	Count(ctx context.Context) (int, error)
	DeleteBySourceFile(ctx context.Context, sourceFile string) (int64, error)
}
