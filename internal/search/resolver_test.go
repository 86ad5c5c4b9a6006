package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nchouhan/ogni-scan/internal/config"
	"github.com/nchouhan/ogni-scan/internal/models"
	"github.com/nchouhan/ogni-scan/internal/vectordb"
)

type stubRetriever struct {
	hits      []vectordb.Hit
	err       error
	lastTopK  int
	lastQuery string
}

func (s *stubRetriever) Query(_ context.Context, query string, topK int) ([]vectordb.Hit, error) {
	s.lastQuery = query
	s.lastTopK = topK
	if s.err != nil {
		return nil, s.err
	}
	if len(s.hits) > topK {
		return s.hits[:topK], nil
	}
	return s.hits, nil
}

type stubMeta struct {
	resumes map[int64]models.Resume
	err     error
}

func (s *stubMeta) ResumesByIDs(_ context.Context, ids []int64) (map[int64]models.Resume, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[int64]models.Resume, len(ids))
	for _, id := range ids {
		if r, ok := s.resumes[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

type stubExtractor struct {
	filters   *models.SearchFilters
	err       error
	callCount int
}

func (s *stubExtractor) ExtractFilters(_ context.Context, _ string) (*models.SearchFilters, error) {
	s.callCount++
	return s.filters, s.err
}

func testRAGConfig() config.RAGConfig {
	return config.RAGConfig{
		TopK:            10,
		FetchFactor:     3,
		MaxContextChars: 12000,
		TimeoutSeconds:  5,
	}
}

func makeHits(n int, resumeOf func(i int) int64) []vectordb.Hit {
	hits := make([]vectordb.Hit, n)
	for i := range hits {
		hits[i] = vectordb.Hit{
			ResumeID:   resumeOf(i),
			Ordinal:    i,
			Candidate:  fmt.Sprintf("Candidate %d", resumeOf(i)),
			Section:    models.SectionGeneral,
			Content:    fmt.Sprintf("chunk %d content", i),
			Similarity: 1 - float32(i)/100,
		}
	}
	return hits
}

func TestResolveDefaultsAndOverfetch(t *testing.T) {
	ret := &stubRetriever{hits: makeHits(4, func(i int) int64 { return int64(i) })}
	r := NewResolver(ret, &stubMeta{}, nil, testRAGConfig(), zerolog.Nop())

	payload, err := r.Resolve(context.Background(), models.Query{Text: "backend engineer"})

	require.NoError(t, err)
	assert.Equal(t, 30, ret.lastTopK)
	assert.Equal(t, "backend engineer", ret.lastQuery)
	assert.Len(t, payload.Entries, 4)
}

func TestResolveRespectsLimit(t *testing.T) {
	ret := &stubRetriever{hits: makeHits(9, func(i int) int64 { return int64(i) })}
	r := NewResolver(ret, &stubMeta{}, nil, testRAGConfig(), zerolog.Nop())

	payload, err := r.Resolve(context.Background(), models.Query{Text: "q", Limit: 3})

	require.NoError(t, err)
	assert.Equal(t, 9, ret.lastTopK)
	require.Len(t, payload.Entries, 3)
	// a truncated result is a strict prefix of the ranked hits
	for i, e := range payload.Entries {
		assert.Equal(t, fmt.Sprintf("chunk %d content", i), e.Content)
	}
}

func TestResolveMetadataFiltering(t *testing.T) {
	// 10 chunks across 6 resumes, 2 resumes in the wanted domain
	resumeOf := func(i int) int64 { return int64(i % 6) }
	ret := &stubRetriever{hits: makeHits(10, resumeOf)}
	meta := &stubMeta{resumes: map[int64]models.Resume{}}
	for id := int64(0); id < 6; id++ {
		domain := "ecommerce"
		if id == 1 || id == 4 {
			domain = "fintech"
		}
		meta.resumes[id] = models.Resume{ID: id, Domain: domain, Skills: []string{"Go"}}
	}
	r := NewResolver(ret, meta, nil, testRAGConfig(), zerolog.Nop())

	payload, err := r.Resolve(context.Background(), models.Query{
		Text:    "payments engineer",
		Filters: models.SearchFilters{Domain: "fintech"},
	})

	require.NoError(t, err)
	// hits 1, 4, 7 belong to resumes 1 and 4
	require.Len(t, payload.Entries, 3)
	for _, e := range payload.Entries {
		assert.Contains(t, []int64{1, 4}, e.ResumeID)
	}
	// retrieval order preserved through filtering
	assert.Equal(t, "chunk 1 content", payload.Entries[0].Content)
	assert.Equal(t, "chunk 4 content", payload.Entries[1].Content)
	assert.Equal(t, "chunk 7 content", payload.Entries[2].Content)
}

func TestResolveSkillAndExperienceFilters(t *testing.T) {
	ret := &stubRetriever{hits: makeHits(3, func(i int) int64 { return int64(i) })}
	min := 5.0
	meta := &stubMeta{resumes: map[int64]models.Resume{
		0: {ID: 0, Skills: []string{"go", "sql"}, YearsExperience: 7},
		1: {ID: 1, Skills: []string{"Go"}, YearsExperience: 9},
		2: {ID: 2, Skills: []string{"Go", "SQL"}, YearsExperience: 3},
	}}
	r := NewResolver(ret, meta, nil, testRAGConfig(), zerolog.Nop())

	payload, err := r.Resolve(context.Background(), models.Query{
		Text:    "q",
		Filters: models.SearchFilters{Skills: []string{"Go", "SQL"}, MinExperience: &min},
	})

	require.NoError(t, err)
	// resume 1 lacks SQL, resume 2 lacks experience, resume 0 passes
	// with case-insensitive skill matching
	require.Len(t, payload.Entries, 1)
	assert.Equal(t, int64(0), payload.Entries[0].ResumeID)
}

func TestResolveEmptyResultIsNotAnError(t *testing.T) {
	r := NewResolver(&stubRetriever{}, &stubMeta{}, nil, testRAGConfig(), zerolog.Nop())

	payload, err := r.Resolve(context.Background(), models.Query{Text: "nobody"})

	require.NoError(t, err)
	assert.True(t, payload.Empty())

	system, user := payload.Prompt()
	assert.NotEmpty(t, system)
	assert.Contains(t, user, "nobody")
}

func TestResolveRetrievalErrorSurfaces(t *testing.T) {
	ret := &stubRetriever{err: errors.New("index offline")}
	r := NewResolver(ret, &stubMeta{}, nil, testRAGConfig(), zerolog.Nop())

	_, err := r.Resolve(context.Background(), models.Query{Text: "q"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "semantic retrieval")
}

func TestResolveExtractsFiltersWhenNoneGiven(t *testing.T) {
	ret := &stubRetriever{hits: makeHits(2, func(i int) int64 { return int64(i) })}
	meta := &stubMeta{resumes: map[int64]models.Resume{
		0: {ID: 0, Domain: "fintech"},
		1: {ID: 1, Domain: "gaming"},
	}}
	ext := &stubExtractor{filters: &models.SearchFilters{Domain: "fintech"}}
	r := NewResolver(ret, meta, ext, testRAGConfig(), zerolog.Nop())

	payload, err := r.Resolve(context.Background(), models.Query{Text: "fintech backend folks"})

	require.NoError(t, err)
	assert.Equal(t, 1, ext.callCount)
	assert.Equal(t, "fintech", payload.Filters.Domain)
	require.Len(t, payload.Entries, 1)
	assert.Equal(t, int64(0), payload.Entries[0].ResumeID)
}

func TestResolveExplicitFiltersSkipExtraction(t *testing.T) {
	ret := &stubRetriever{hits: makeHits(1, func(i int) int64 { return 0 })}
	meta := &stubMeta{resumes: map[int64]models.Resume{0: {ID: 0, Domain: "fintech"}}}
	ext := &stubExtractor{filters: &models.SearchFilters{Domain: "gaming"}}
	r := NewResolver(ret, meta, ext, testRAGConfig(), zerolog.Nop())

	payload, err := r.Resolve(context.Background(), models.Query{
		Text:    "q",
		Filters: models.SearchFilters{Domain: "fintech"},
	})

	require.NoError(t, err)
	assert.Zero(t, ext.callCount)
	assert.Equal(t, "fintech", payload.Filters.Domain)
	assert.Len(t, payload.Entries, 1)
}

func TestResolveExtractionFailureDegradesToUnfiltered(t *testing.T) {
	ret := &stubRetriever{hits: makeHits(3, func(i int) int64 { return int64(i) })}
	ext := &stubExtractor{err: errors.New("model unavailable")}
	r := NewResolver(ret, &stubMeta{}, ext, testRAGConfig(), zerolog.Nop())

	payload, err := r.Resolve(context.Background(), models.Query{Text: "q"})

	require.NoError(t, err)
	assert.True(t, payload.Filters.IsZero())
	assert.Len(t, payload.Entries, 3)
}

func TestBuildPayloadContextBudget(t *testing.T) {
	hits := []vectordb.Hit{
		{ResumeID: 1, Candidate: "A", Content: strings.Repeat("a", 80)},
		{ResumeID: 2, Candidate: "B", Content: strings.Repeat("b", 80)},
		{ResumeID: 3, Candidate: "C", Content: strings.Repeat("c", 80)},
	}

	payload := buildPayload("q", models.SearchFilters{}, hits, 100)

	require.Len(t, payload.Entries, 2)
	assert.Len(t, payload.Entries[0].Content, 80)
	// the overflowing entry is truncated to the remaining budget
	assert.Len(t, payload.Entries[1].Content, 20)
}

func TestFiltersMerge(t *testing.T) {
	min := 4.0
	explicit := models.SearchFilters{Domain: "fintech"}
	extracted := models.SearchFilters{Domain: "gaming", Skills: []string{"Go"}, MinExperience: &min}

	merged := explicit.Merge(extracted)

	assert.Equal(t, "fintech", merged.Domain)
	assert.Equal(t, []string{"Go"}, merged.Skills)
	require.NotNil(t, merged.MinExperience)
	assert.Equal(t, 4.0, *merged.MinExperience)
}
