package retrieval

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"clinic-assist-be/internal/repository/contract"
	"clinic-assist-be/internal/repository/specification"
	"clinic-assist-be/internal/repository/unitofwork"
	"clinic-assist-be/pkg/embedding"

	"github.com/patrickmn/go-cache"
)

// Passage is one retrieved corpus chunk, scored against the query.
type Passage struct {
	Text     string
	Score    float64
	SourceID string
	Source   string // human-readable origin (document title or file name)
}

// Searcher is the retrieval capability consumed by the answer flow.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]Passage, error)
}

// Config encapsulates search parameters
type Config struct {
	DBThreshold    float64 // applied in SQL, keep low to let LogicThreshold decide
	LogicThreshold float64
	TopK           int
}

// DefaultConfig returns default search configuration
func DefaultConfig() Config {
	return Config{
		DBThreshold:    0.0,
		LogicThreshold: 0.35,
		TopK:           5,
	}
}

// Orchestrator runs vector search over the ingested document corpus.
type Orchestrator struct {
	embeddingProvider embedding.Provider
	uowFactory        unitofwork.RepositoryFactory
	queryCache        *cache.Cache
	config            Config
	logger            *log.Logger
}

func NewOrchestrator(
	embeddingProvider embedding.Provider,
	uowFactory unitofwork.RepositoryFactory,
	config Config,
	logger *log.Logger,
) *Orchestrator {
	// Query embeddings are deterministic per model, so a short-lived cache
	// avoids re-embedding repeated questions.
	c := cache.New(15*time.Minute, 30*time.Minute)
	return &Orchestrator{
		embeddingProvider: embeddingProvider,
		uowFactory:        uowFactory,
		queryCache:        c,
		config:            config,
		logger:            logger,
	}
}

var _ Searcher = &Orchestrator{}

// Search embeds the query, runs pgvector similarity search and returns
// deduplicated passages ordered by score descending. An empty result is a
// valid outcome, not an error.
func (o *Orchestrator) Search(ctx context.Context, query string, topK int) ([]Passage, error) {
	if topK <= 0 {
		topK = o.config.TopK
	}

	vector, err := o.embedQuery(query)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	uow := o.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.DocumentEmbeddingRepository().SearchSimilarWithScore(
		ctx,
		vector,
		topK*2, // overfetch so dedupe still fills topK
		o.config.DBThreshold,
	)
	if err != nil {
		o.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	o.logger.Printf("[DEBUG] Raw search results: %d chunks", len(scored))

	titles := o.resolveSourceTitles(ctx, uow, scored)

	passages := make([]Passage, 0, len(scored))
	seen := make(map[string]bool)
	for _, s := range scored {
		if s.Similarity < o.config.LogicThreshold {
			continue
		}
		// Near-duplicate chunks collapse onto one key; results arrive score
		// descending, so the first occurrence keeps the highest score.
		key := dedupeKey(s.Embedding.Chunk)
		if seen[key] {
			continue
		}
		seen[key] = true

		passages = append(passages, Passage{
			Text:     s.Embedding.Chunk,
			Score:    s.Similarity,
			SourceID: s.Embedding.DocumentId.String(),
			Source:   titles[s.Embedding.DocumentId.String()],
		})
		if len(passages) >= topK {
			break
		}
	}

	o.logger.Printf("[DEBUG] Passages after filter+dedupe: %d", len(passages))
	return passages, nil
}

func (o *Orchestrator) embedQuery(query string) ([]float32, error) {
	cacheKey := strings.ToLower(strings.TrimSpace(query))
	if cached, found := o.queryCache.Get(cacheKey); found {
		return cached.([]float32), nil
	}

	res, err := o.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}

	o.queryCache.Set(cacheKey, res.Values, cache.DefaultExpiration)
	return res.Values, nil
}

func (o *Orchestrator) resolveSourceTitles(ctx context.Context, uow unitofwork.UnitOfWork, scored []*contract.ScoredDocumentEmbedding) map[string]string {
	titles := make(map[string]string)
	for _, s := range scored {
		id := s.Embedding.DocumentId
		if _, ok := titles[id.String()]; ok {
			continue
		}
		doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil || doc == nil {
			titles[id.String()] = "Document"
			continue
		}
		titles[id.String()] = doc.Title
	}
	return titles
}

// dedupeKey normalizes a chunk so near-identical text maps to one key.
func dedupeKey(text string) string {
	key := strings.ToLower(strings.TrimSpace(text))
	key = strings.Join(strings.Fields(key), " ")
	if len(key) > 160 {
		key = key[:160]
	}
	return key
}
