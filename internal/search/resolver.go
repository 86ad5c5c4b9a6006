package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nchouhan/ogni-scan/internal/config"
	"github.com/nchouhan/ogni-scan/internal/models"
	"github.com/nchouhan/ogni-scan/internal/vectordb"
)

// Retriever ranks chunks by similarity to the query text. The returned
// order is the index's native order and is never re-sorted here.
type Retriever interface {
	Query(ctx context.Context, query string, topK int) ([]vectordb.Hit, error)
}

// MetadataStore loads the owning resumes for retrieved chunks.
type MetadataStore interface {
	ResumesByIDs(ctx context.Context, ids []int64) (map[int64]models.Resume, error)
}

// FilterExtractor derives structured filters from free text, best effort.
type FilterExtractor interface {
	ExtractFilters(ctx context.Context, query string) (*models.SearchFilters, error)
}

// Resolver turns a recruiter query into a bounded context payload:
// semantic retrieval with over-fetch, client-side metadata filtering,
// truncation to the requested limit.
type Resolver struct {
	retriever Retriever
	meta      MetadataStore
	extractor FilterExtractor
	cfg       config.RAGConfig
	log       zerolog.Logger
}

func NewResolver(retriever Retriever, meta MetadataStore, extractor FilterExtractor, cfg config.RAGConfig, log zerolog.Logger) *Resolver {
	return &Resolver{
		retriever: retriever,
		meta:      meta,
		extractor: extractor,
		cfg:       cfg,
		log:       log,
	}
}

// Resolve builds the context payload for a query. A payload with zero
// entries is a normal terminal case, not a fault.
func (r *Resolver) Resolve(ctx context.Context, q models.Query) (*ContextPayload, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = r.cfg.TopK
	}
	fetch := limit * r.cfg.FetchFactor

	// Filter extraction depends only on the raw query text, so it can run
	// alongside retrieval. Filtering below joins both.
	var (
		wg        sync.WaitGroup
		hits      []vectordb.Hit
		retErr    error
		extracted *models.SearchFilters
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		hits, retErr = r.retriever.Query(ctx, q.Text, fetch)
	}()

	if r.extractor != nil && q.Filters.IsZero() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := r.extractor.ExtractFilters(ctx, q.Text)
			if err != nil {
				// extraction is best effort: fall back to unfiltered search
				r.log.Warn().Err(err).Msg("filter extraction failed, searching unfiltered")
				return
			}
			extracted = f
		}()
	}
	wg.Wait()

	if retErr != nil {
		return nil, fmt.Errorf("semantic retrieval: %w", retErr)
	}

	filters := q.Filters
	if extracted != nil {
		filters = filters.Merge(*extracted)
	}

	filtered, err := r.applyFilters(ctx, hits, filters)
	if err != nil {
		return nil, err
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	payload := buildPayload(q.Text, filters, filtered, r.cfg.MaxContextChars)
	r.log.Debug().
		Int("retrieved", len(hits)).
		Int("after_filter", len(filtered)).
		Int("entries", len(payload.Entries)).
		Msg("resolved query context")
	return payload, nil
}

// applyFilters drops hits whose owning resume fails any predicate,
// preserving relative retrieval order. Filtering happens after retrieval
// because the vector index has no native structured filters.
func (r *Resolver) applyFilters(ctx context.Context, hits []vectordb.Hit, filters models.SearchFilters) ([]vectordb.Hit, error) {
	preds := buildPredicates(filters)
	if len(preds) == 0 || len(hits) == 0 {
		return hits, nil
	}

	resumes, err := r.meta.ResumesByIDs(ctx, resumeIDs(hits))
	if err != nil {
		return nil, fmt.Errorf("loading resume metadata: %w", err)
	}

	kept := make([]vectordb.Hit, 0, len(hits))
	for _, hit := range hits {
		resume, ok := resumes[hit.ResumeID]
		if !ok {
			continue
		}
		pass := true
		for _, p := range preds {
			if !p.keep(resume) {
				pass = false
				break
			}
		}
		if pass {
			kept = append(kept, hit)
		}
	}

	r.log.Debug().
		Int("initial", len(hits)).
		Int("dropped", len(hits)-len(kept)).
		Int("left", len(kept)).
		Msg("metadata filter step")
	return kept, nil
}

func resumeIDs(hits []vectordb.Hit) []int64 {
	seen := make(map[int64]bool, len(hits))
	var ids []int64
	for _, h := range hits {
		if !seen[h.ResumeID] {
			seen[h.ResumeID] = true
			ids = append(ids, h.ResumeID)
		}
	}
	return ids
}
