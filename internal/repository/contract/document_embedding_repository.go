package contract

import (
	"context"

	"clinic-assist-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredDocumentEmbedding pairs an embedding row with its cosine similarity
// against the query vector.
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64
}

type DocumentEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DocumentEmbedding) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error

	// SearchSimilarWithScore returns the closest chunks ordered by similarity
	// descending, keeping only rows at or above threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredDocumentEmbedding, error)
}
