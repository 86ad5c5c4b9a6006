package vectordb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/philippgille/chromem-go"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/nchouhan/ogni-scan/internal/config"
	"github.com/nchouhan/ogni-scan/internal/models"
)

// Manager encapsulates the chromem-go vector index: one collection of
// resume chunks, addressed by "<resume_id>-<ordinal>" document IDs.
type Manager struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// Hit is one retrieval result with enough provenance for the generator
// to cite the owning candidate.
type Hit struct {
	ChunkID    int64
	ResumeID   int64
	Ordinal    int
	Candidate  string
	Section    string
	Content    string
	Similarity float32
}

func NewManager(cfg *config.VectorConfig, embedder *embeddings.EmbedderImpl) (*Manager, error) {
	var (
		db  *chromem.DB
		err error
	)
	if cfg.InMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(cfg.Path, false)
		if err != nil {
			return nil, fmt.Errorf("failed to create vector database: %v", err)
		}
	}

	embedFn := chromem.EmbeddingFunc(func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedQuery(ctx, text)
	})

	collection, err := db.GetOrCreateCollection(cfg.Collection, nil, embedFn)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}

	return &Manager{db: db, collection: collection}, nil
}

// UpsertChunk indexes one chunk and returns its vector handle.
func (m *Manager) UpsertChunk(ctx context.Context, resume *models.Resume, chunk *models.ResumeChunk) (string, error) {
	id := fmt.Sprintf("%d-%d", resume.ID, chunk.Ordinal)
	doc := chromem.Document{
		ID:      id,
		Content: chunk.Content,
		Metadata: map[string]string{
			"resume_id": strconv.FormatInt(resume.ID, 10),
			"chunk_id":  strconv.FormatInt(chunk.ID, 10),
			"ordinal":   strconv.Itoa(chunk.Ordinal),
			"section":   chunk.Section,
			"candidate": resume.CandidateName,
		},
	}
	if err := m.collection.AddDocuments(ctx, []chromem.Document{doc}, 1); err != nil {
		return "", fmt.Errorf("failed to add document: %v", err)
	}
	return id, nil
}

// Query ranks chunks by similarity to the query text. chromem's return
// order is authoritative: equal scores keep their native order.
func (m *Manager) Query(ctx context.Context, query string, topK int) ([]Hit, error) {
	if query == "" {
		return nil, fmt.Errorf("query must be provided")
	}
	count := m.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := m.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryText: query,
		NResults:  topK,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		hit := Hit{
			Content:    r.Content,
			Similarity: r.Similarity,
			Candidate:  r.Metadata["candidate"],
			Section:    r.Metadata["section"],
		}
		hit.ResumeID, _ = strconv.ParseInt(r.Metadata["resume_id"], 10, 64)
		hit.ChunkID, _ = strconv.ParseInt(r.Metadata["chunk_id"], 10, 64)
		hit.Ordinal, _ = strconv.Atoi(r.Metadata["ordinal"])
		hits = append(hits, hit)
	}
	return hits, nil
}

// DeleteResume removes every vector belonging to a resume, so
// reprocessing supersedes the prior chunk set instead of accumulating
// duplicates.
func (m *Manager) DeleteResume(ctx context.Context, resumeID int64) error {
	where := map[string]string{"resume_id": strconv.FormatInt(resumeID, 10)}
	if err := m.collection.Delete(ctx, where, nil); err != nil {
		return fmt.Errorf("failed to delete resume vectors: %v", err)
	}
	return nil
}

// Count reports the number of indexed chunks.
func (m *Manager) Count() int {
	return m.collection.Count()
}
