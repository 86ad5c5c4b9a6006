package chunker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nchouhan/ogni-scan/internal/models"
)

// VectorUpserter submits one chunk to the external vector index and
// returns the index's handle for it.
type VectorUpserter interface {
	UpsertChunk(ctx context.Context, resume *models.Resume, chunk *models.ResumeChunk) (string, error)
}

// ChunkRecorder persists the vector handle once an upsert succeeds.
type ChunkRecorder interface {
	MarkChunkIndexed(ctx context.Context, chunkID int64, vectorID string) error
}

// Indexer pushes a resume's chunks into the vector index. Chunk upserts
// run concurrently; the aggregate indexed flag only flips after every
// call has resolved.
type Indexer struct {
	vec         VectorUpserter
	rec         ChunkRecorder
	log         zerolog.Logger
	retries     int
	backoff     time.Duration
	concurrency int
	timeout     time.Duration
}

func NewIndexer(vec VectorUpserter, rec ChunkRecorder, log zerolog.Logger, retries, concurrency int, timeout time.Duration) *Indexer {
	if retries < 1 {
		retries = 1
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Indexer{
		vec:         vec,
		rec:         rec,
		log:         log,
		retries:     retries,
		backoff:     500 * time.Millisecond,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// IndexResume indexes every chunk and returns the ordinals that
// permanently failed. A per-chunk failure never aborts the others;
// the caller marks the resume indexed only when the result is empty.
// Ordinals must already be assigned; completion order never changes them.
func (ix *Indexer) IndexResume(ctx context.Context, resume *models.Resume, chunks []models.ResumeChunk) []int {
	if len(chunks) == 0 {
		return nil
	}

	var (
		mu     sync.Mutex
		failed []int
		wg     sync.WaitGroup
	)
	sem := make(chan struct{}, ix.concurrency)

	for i := range chunks {
		chunk := &chunks[i]
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := ix.indexChunk(ctx, resume, chunk); err != nil {
				ix.log.Error().Err(err).
					Int64("resume_id", resume.ID).
					Int("ordinal", chunk.Ordinal).
					Msg("chunk indexing failed permanently")
				mu.Lock()
				failed = append(failed, chunk.Ordinal)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Ints(failed)
	return failed
}

func (ix *Indexer) indexChunk(ctx context.Context, resume *models.Resume, chunk *models.ResumeChunk) error {
	var lastErr error
	for attempt := 1; attempt <= ix.retries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, ix.timeout)
		vectorID, err := ix.vec.UpsertChunk(callCtx, resume, chunk)
		cancel()
		if err == nil {
			// the upsert is idempotent per document ID, so a failed
			// record retries the whole step
			if err = ix.rec.MarkChunkIndexed(ctx, chunk.ID, vectorID); err == nil {
				chunk.VectorID = vectorID
				chunk.Indexed = true
				return nil
			}
			err = fmt.Errorf("recording vector id: %w", err)
		}
		lastErr = err
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ix.log.Warn().Err(err).
			Int64("resume_id", resume.ID).
			Int("ordinal", chunk.Ordinal).
			Int("attempt", attempt).
			Msg("chunk indexing attempt failed, backing off")
		if attempt < ix.retries {
			select {
			case <-time.After(ix.backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}
