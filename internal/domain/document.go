package domain

import (
	"time"

	"github.com/google/uuid"
)

// Passage is one pre-split piece of an HR document, stored with its
// embedding. Splitting happens upstream of ingestion; the service only
// embeds and indexes what it is given.
type Passage struct {
	ID         uuid.UUID `json:"id"`
	SourceFile string    `json:"source_file"`
	FileType   string    `json:"file_type,omitempty"`
	Location   string    `json:"location,omitempty"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

type PassageWithScore struct {
	Passage
	Score float32 `json:"score"`
}

// Citation points at where an answer came from: a document passage for
// retrieval, a result page for web search.
type Citation struct {
	File     string `json:"file,omitempty"`
	Type     string `json:"type,omitempty"`
	Location string `json:"location,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
	Title    string `json:"title,omitempty"`
	URL      string `json:"url,omitempty"`
}

// RetrievalResult is the retrieval capability's answer. HasContext=false is
// authoritative: it means the documents had nothing relevant, and the router
// must refuse rather than second-guess it.
type RetrievalResult struct {
	Answer     string     `json:"answer"`
	HasContext bool       `json:"has_context"`
	Sources    []Citation `json:"sources,omitempty"`
}

// SearchResult is the web search capability's answer.
type SearchResult struct {
	Answer  string     `json:"answer"`
	Sources []Citation `json:"sources,omitempty"`
}
