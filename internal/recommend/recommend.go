// Package recommend hosts the advisory heuristics around the matching
// engine: price recommendations, proposal quality scoring, and resume
// summaries. These are fixed rule tables; only proposal relevance touches
// the embedding provider.
package recommend

import (
	"log/slog"

	"gigmatch/internal/embeddings"
)

// Service evaluates pricing, proposals, and resume summaries.
type Service struct {
	embedder embeddings.Embedder
	log      *slog.Logger
}

func New(embedder embeddings.Embedder, log *slog.Logger) *Service {
	return &Service{embedder: embedder, log: log}
}
