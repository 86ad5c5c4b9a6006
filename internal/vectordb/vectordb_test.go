package vectordb

import (
	"context"
	"hash/fnv"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/nchouhan/ogni-scan/internal/config"
	"github.com/nchouhan/ogni-scan/internal/models"
)

// fakeEmbeddingClient maps text deterministically onto a normalized
// vector so similarity queries work without a model endpoint.
type fakeEmbeddingClient struct{}

func (fakeEmbeddingClient) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		h := fnv.New64a()
		_, _ = h.Write([]byte(text))
		seed := h.Sum64()

		vec := make([]float32, 4)
		var norm float64
		for j := range vec {
			seed = seed*6364136223846793005 + 1442695040888963407
			vec[j] = float32(seed%1000) + 1
			norm += float64(vec[j]) * float64(vec[j])
		}
		norm = math.Sqrt(norm)
		for j := range vec {
			vec[j] = float32(float64(vec[j]) / norm)
		}
		out[i] = vec
	}
	return out, nil
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	embedder, err := embeddings.NewEmbedder(fakeEmbeddingClient{})
	require.NoError(t, err)

	m, err := NewManager(&config.VectorConfig{Collection: "test_chunks", InMemory: true}, embedder)
	require.NoError(t, err)
	return m
}

func upsert(t *testing.T, m *Manager, resume *models.Resume, ordinal int, content string) {
	t.Helper()
	chunk := &models.ResumeChunk{ID: int64(100 + ordinal), ResumeID: resume.ID, Ordinal: ordinal, Content: content, Section: models.SectionGeneral}
	id, err := m.UpsertChunk(context.Background(), resume, chunk)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestManagerUpsertAndQuery(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	jane := &models.Resume{ID: 1, CandidateName: "Jane Doe"}
	raj := &models.Resume{ID: 2, CandidateName: "Raj Kumar"}
	upsert(t, m, jane, 0, "Python and Django backend services")
	upsert(t, m, jane, 1, "Led a data platform migration")
	upsert(t, m, raj, 0, "Go and PostgreSQL microservices")

	assert.Equal(t, 3, m.Count())

	// topK above the collection size is clamped, not an error
	hits, err := m.Query(ctx, "backend engineer", 10)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	byID := map[int64]int{}
	for _, h := range hits {
		byID[h.ResumeID]++
		assert.NotEmpty(t, h.Candidate)
		assert.NotEmpty(t, h.Content)
		assert.Equal(t, models.SectionGeneral, h.Section)
	}
	assert.Equal(t, 2, byID[1])
	assert.Equal(t, 1, byID[2])
}

func TestManagerQueryEmptyCollection(t *testing.T) {
	m := newTestManager(t)

	hits, err := m.Query(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Nil(t, hits)
}

func TestManagerDeleteResume(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	jane := &models.Resume{ID: 1, CandidateName: "Jane Doe"}
	raj := &models.Resume{ID: 2, CandidateName: "Raj Kumar"}
	upsert(t, m, jane, 0, "Python services")
	upsert(t, m, jane, 1, "Django APIs")
	upsert(t, m, raj, 0, "Go services")

	require.NoError(t, m.DeleteResume(ctx, jane.ID))

	assert.Equal(t, 1, m.Count())
	hits, err := m.Query(ctx, "services", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, int64(2), hits[0].ResumeID)
	assert.Equal(t, 0, hits[0].Ordinal)
}
