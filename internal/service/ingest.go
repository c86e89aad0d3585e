package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JothiRam-cm/elevix/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrPassageContentEmpty = errors.New("passage content is required")
	ErrPassageSourceEmpty  = errors.New("passage source_file is required")
)

// PassageInput is one pre-split document passage to index. Splitting
// happens upstream; ingestion only embeds and stores.
type PassageInput struct {
	SourceFile string `json:"source_file"`
	FileType   string `json:"file_type,omitempty"`
	Location   string `json:"location,omitempty"`
	Content    string `json:"content"`
}

// IngestService embeds and indexes HR document passages for the retrieval
// capability.
type IngestService struct {
	passages domain.PassageStore
	embedder domain.EmbeddingClient
	logger   *zap.Logger
}

func NewIngestService(passages domain.PassageStore, embedder domain.EmbeddingClient, logger *zap.Logger) *IngestService {
	return &IngestService{
		passages: passages,
		embedder: embedder,
		logger:   logger,
	}
}

// Ingest validates, embeds, and stores the passages. Returns how many were
// indexed; fails fast on the first bad passage so partial batches are easy
// to spot.
func (s *IngestService) Ingest(ctx context.Context, inputs []PassageInput) (int, error) {
	for i, in := range inputs {
		if strings.TrimSpace(in.Content) == "" {
			return 0, fmt.Errorf("passage %d: %w", i, ErrPassageContentEmpty)
		}
		if strings.TrimSpace(in.SourceFile) == "" {
			return 0, fmt.Errorf("passage %d: %w", i, ErrPassageSourceEmpty)
		}
	}

	stored := 0
	for _, in := range inputs {
		embedding, err := s.embedder.Embed(ctx, in.Content)
		if err != nil {
			return stored, fmt.Errorf("embed passage: %w", err)
		}

		p := &domain.Passage{
			SourceFile: in.SourceFile,
			FileType:   in.FileType,
			Location:   in.Location,
			Content:    in.Content,
			Embedding:  embedding,
		}
		if err := s.passages.Create(ctx, p); err != nil {
			return stored, fmt.Errorf("store passage: %w", err)
		}
		stored++
	}

	s.logger.Info("passages ingested", zap.Int("count", stored))
	return stored, nil
}

// RemoveSource drops every passage that came from the given file.
func (s *IngestService) RemoveSource(ctx context.Context, sourceFile string) (int64, error) {
	if strings.TrimSpace(sourceFile) == "" {
		return 0, ErrPassageSourceEmpty
	}
	return s.passages.DeleteBySourceFile(ctx, sourceFile)
}
