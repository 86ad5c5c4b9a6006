package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/nchouhan/ogni-scan/internal/models"
)

// ErrNotFound is returned when a resume does not exist.
var ErrNotFound = errors.New("resume not found")

// Store wraps bun with the resume and chunk queries the pipeline needs.
type Store struct {
	db *bun.DB
}

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *bun.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) CreateResume(ctx context.Context, r *models.Resume) error {
	_, err := s.db.NewInsert().Model(r).Exec(ctx)
	return err
}

func (s *Store) GetResume(ctx context.Context, id int64) (*models.Resume, error) {
	r := new(models.Resume)
	err := s.db.NewSelect().Model(r).Where("r.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) UpdateResume(ctx context.Context, r *models.Resume) error {
	_, err := s.db.NewUpdate().Model(r).WherePK().Exec(ctx)
	return err
}

func (s *Store) ListResumes(ctx context.Context, offset, limit int) ([]models.Resume, int, error) {
	var resumes []models.Resume
	count, err := s.db.NewSelect().
		Model(&resumes).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return resumes, count, nil
}

// ResumesByIDs loads resume metadata for post-retrieval filtering.
func (s *Store) ResumesByIDs(ctx context.Context, ids []int64) (map[int64]models.Resume, error) {
	if len(ids) == 0 {
		return map[int64]models.Resume{}, nil
	}
	var resumes []models.Resume
	if err := s.db.NewSelect().Model(&resumes).Where("r.id IN (?)", bun.In(ids)).Scan(ctx); err != nil {
		return nil, err
	}
	out := make(map[int64]models.Resume, len(resumes))
	for _, r := range resumes {
		out[r.ID] = r
	}
	return out, nil
}

// ChunksByResume returns all chunks of a resume in ordinal order.
func (s *Store) ChunksByResume(ctx context.Context, resumeID int64) ([]models.ResumeChunk, error) {
	var chunks []models.ResumeChunk
	err := s.db.NewSelect().
		Model(&chunks).
		Where("c.resume_id = ?", resumeID).
		Order("ordinal ASC").
		Scan(ctx)
	return chunks, err
}

// ReplaceChunks deletes any prior chunk set for the resume and writes the
// new one in a single transaction, so reprocessing supersedes instead of
// appending duplicates.
func (s *Store) ReplaceChunks(ctx context.Context, resumeID int64, chunks []models.ResumeChunk) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.ResumeChunk)(nil)).
			Where("resume_id = ?", resumeID).
			Exec(ctx); err != nil {
			return fmt.Errorf("deleting prior chunks: %w", err)
		}
		if len(chunks) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&chunks).Exec(ctx); err != nil {
			return fmt.Errorf("inserting chunks: %w", err)
		}
		return nil
	})
}

// MarkChunkIndexed records the vector handle for a chunk. The handle is
// written once; an already indexed chunk is left untouched.
func (s *Store) MarkChunkIndexed(ctx context.Context, chunkID int64, vectorID string) error {
	_, err := s.db.NewUpdate().
		Model((*models.ResumeChunk)(nil)).
		Set("vector_id = ?", vectorID).
		Set("indexed = TRUE").
		Where("id = ?", chunkID).
		Where("indexed = FALSE").
		Exec(ctx)
	return err
}
