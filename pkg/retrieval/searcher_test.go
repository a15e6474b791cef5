package retrieval

import (
	"context"
	"io"
	"log"
	"testing"

	"clinic-assist-be/internal/entity"
	"clinic-assist-be/internal/repository/contract"
	"clinic-assist-be/internal/repository/specification"
	"clinic-assist-be/internal/repository/unitofwork"
	"clinic-assist-be/pkg/embedding"

	"github.com/google/uuid"
)

type fakeEmbeddingProvider struct {
	calls int
}

func (p *fakeEmbeddingProvider) Generate(text, taskType string) (*embedding.Response, error) {
	p.calls++
	return &embedding.Response{Values: []float32{0.1, 0.2, 0.3}}, nil
}

type fakeEmbeddingRepo struct {
	scored []*contract.ScoredDocumentEmbedding
}

func (r *fakeEmbeddingRepo) Create(ctx context.Context, e *entity.DocumentEmbedding) error {
	return nil
}

func (r *fakeEmbeddingRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (r *fakeEmbeddingRepo) SearchSimilarWithScore(ctx context.Context, vec []float32, limit int, threshold float64) ([]*contract.ScoredDocumentEmbedding, error) {
	if limit > len(r.scored) {
		limit = len(r.scored)
	}
	return r.scored[:limit], nil
}

type fakeDocumentRepo struct {
	titles map[uuid.UUID]string
}

func (r *fakeDocumentRepo) Create(ctx context.Context, d *entity.Document) error { return nil }
func (r *fakeDocumentRepo) Update(ctx context.Context, d *entity.Document) error { return nil }
func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return nil, nil
}
func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if title, found := r.titles[byID.ID]; found {
				return &entity.Document{Id: byID.ID, Title: title}, nil
			}
		}
	}
	return nil, nil
}

type fakeUow struct {
	embeddings *fakeEmbeddingRepo
	documents  *fakeDocumentRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }
func (u *fakeUow) AppointmentRepository() contract.AppointmentRepository {
	return nil
}
func (u *fakeUow) DocumentRepository() contract.DocumentRepository {
	return u.documents
}
func (u *fakeUow) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return u.embeddings
}
func (u *fakeUow) ToolAuditRepository() contract.ToolAuditRepository {
	return nil
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func scoredChunk(docId uuid.UUID, chunk string, similarity float64) *contract.ScoredDocumentEmbedding {
	return &contract.ScoredDocumentEmbedding{
		Embedding: &entity.DocumentEmbedding{
			Id:         uuid.New(),
			Chunk:      chunk,
			DocumentId: docId,
		},
		Similarity: similarity,
	}
}

func newTestOrchestrator(scored []*contract.ScoredDocumentEmbedding, titles map[uuid.UUID]string) (*Orchestrator, *fakeEmbeddingProvider) {
	provider := &fakeEmbeddingProvider{}
	factory := &fakeUowFactory{uow: &fakeUow{
		embeddings: &fakeEmbeddingRepo{scored: scored},
		documents:  &fakeDocumentRepo{titles: titles},
	}}
	o := NewOrchestrator(provider, factory, DefaultConfig(), log.New(io.Discard, "", 0))
	return o, provider
}

func TestSearchFiltersBelowThreshold(t *testing.T) {
	docId := uuid.New()
	o, _ := newTestOrchestrator([]*contract.ScoredDocumentEmbedding{
		scoredChunk(docId, "Cardiology offers ECG and stress tests.", 0.82),
		scoredChunk(docId, "Our cafeteria serves lunch at noon.", 0.10),
	}, map[uuid.UUID]string{docId: "Services Guide"})

	passages, err := o.Search(context.Background(), "cardiology services", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(passages) != 1 {
		t.Fatalf("len(passages) = %d, want 1", len(passages))
	}
	if passages[0].Score != 0.82 {
		t.Errorf("Score = %v, want 0.82", passages[0].Score)
	}
	if passages[0].Source != "Services Guide" {
		t.Errorf("Source = %q, want Services Guide", passages[0].Source)
	}
}

func TestSearchDedupesNearIdenticalChunks(t *testing.T) {
	docId := uuid.New()
	o, _ := newTestOrchestrator([]*contract.ScoredDocumentEmbedding{
		scoredChunk(docId, "Opening hours are 8:00 to 18:00.", 0.90),
		scoredChunk(docId, "  opening   hours are 8:00 to 18:00.", 0.70),
		scoredChunk(docId, "We offer dermatology consultations.", 0.60),
	}, map[uuid.UUID]string{docId: "Handbook"})

	passages, err := o.Search(context.Background(), "when are you open", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(passages) != 2 {
		t.Fatalf("len(passages) = %d, want 2 after dedupe", len(passages))
	}
	// First occurrence keeps the highest score
	if passages[0].Score != 0.90 {
		t.Errorf("kept Score = %v, want 0.90", passages[0].Score)
	}
	if passages[0].Score < passages[1].Score {
		t.Error("passages not ordered by score descending")
	}
}

func TestSearchRespectsTopK(t *testing.T) {
	docId := uuid.New()
	var scored []*contract.ScoredDocumentEmbedding
	chunks := []string{
		"Chunk about cardiology.",
		"Chunk about dermatology.",
		"Chunk about radiology.",
		"Chunk about pediatrics.",
	}
	for i, chunk := range chunks {
		scored = append(scored, scoredChunk(docId, chunk, 0.9-float64(i)*0.05))
	}
	o, _ := newTestOrchestrator(scored, map[uuid.UUID]string{docId: "Guide"})

	passages, err := o.Search(context.Background(), "departments", 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(passages) != 2 {
		t.Errorf("len(passages) = %d, want 2", len(passages))
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	o, _ := newTestOrchestrator(nil, nil)

	passages, err := o.Search(context.Background(), "do you sell spaceships", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(passages) != 0 {
		t.Errorf("len(passages) = %d, want 0", len(passages))
	}
}

func TestSearchCachesQueryEmbedding(t *testing.T) {
	o, provider := newTestOrchestrator(nil, nil)

	for i := 0; i < 3; i++ {
		if _, err := o.Search(context.Background(), "Opening Hours?", 5); err != nil {
			t.Fatalf("Search() error = %v", err)
		}
	}
	if provider.calls != 1 {
		t.Errorf("embedding calls = %d, want 1 (cached afterwards)", provider.calls)
	}
}
