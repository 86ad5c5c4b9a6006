package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nchouhan/ogni-scan/internal/chunker"
	"github.com/nchouhan/ogni-scan/internal/config"
	"github.com/nchouhan/ogni-scan/internal/db"
	"github.com/nchouhan/ogni-scan/internal/extract"
	"github.com/nchouhan/ogni-scan/internal/models"
	"github.com/nchouhan/ogni-scan/internal/parser"
	"github.com/nchouhan/ogni-scan/internal/storage"
)

// VectorIndex is the slice of the vector boundary the pipeline needs:
// chunk upserts plus whole-resume deletion for reprocessing.
type VectorIndex interface {
	chunker.VectorUpserter
	DeleteResume(ctx context.Context, resumeID int64) error
}

// Service drives a resume through the ingestion pipeline:
// raw -> parsed -> chunked -> indexed, or the terminal processed /
// failed states. It is the only writer of resume state.
type Service struct {
	store   *db.Store
	blobs   storage.Store
	vec     VectorIndex
	indexer *chunker.Indexer
	cfg     *config.Config
	log     zerolog.Logger
}

func NewService(store *db.Store, blobs storage.Store, vec VectorIndex, cfg *config.Config, log zerolog.Logger) *Service {
	indexer := chunker.NewIndexer(vec, store, log,
		cfg.RAG.IndexRetries, cfg.RAG.IndexConcurrency, cfg.RAG.Timeout())
	return &Service{
		store:   store,
		blobs:   blobs,
		vec:     vec,
		indexer: indexer,
		cfg:     cfg,
		log:     log,
	}
}

// Upload validates and stores an uploaded file and creates the resume
// row in the raw state. Processing happens separately so the upload
// endpoint can return immediately.
func (s *Service) Upload(ctx context.Context, filename string, data []byte) (*models.Resume, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !s.extensionAllowed(ext) {
		return nil, fmt.Errorf("file type %q not allowed (allowed: %s)",
			ext, strings.Join(s.cfg.Server.AllowedExtensions, ", "))
	}
	if int64(len(data)) > s.cfg.Server.MaxUploadBytes {
		return nil, fmt.Errorf("file size %d exceeds maximum %d bytes", len(data), s.cfg.Server.MaxUploadBytes)
	}

	key, err := s.blobs.Put(data, ext)
	if err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}

	resume := &models.Resume{
		StorageKey:       key,
		OriginalFilename: filename,
		FileType:         ext,
		FileSize:         int64(len(data)),
		Status:           models.StatusRaw,
		CreatedAt:        time.Now(),
	}
	if err := s.store.CreateResume(ctx, resume); err != nil {
		return nil, fmt.Errorf("creating resume record: %w", err)
	}

	s.log.Info().Int64("resume_id", resume.ID).Str("filename", filename).Msg("resume uploaded")
	return resume, nil
}

func (s *Service) extensionAllowed(ext string) bool {
	for _, allowed := range s.cfg.Server.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

// Process runs the full pipeline for one resume. Reprocessing an
// already indexed resume supersedes its prior chunk set: old vectors
// and chunk rows are removed before the new ones are written.
func (s *Service) Process(ctx context.Context, resumeID int64) error {
	resume, err := s.store.GetResume(ctx, resumeID)
	if err != nil {
		return err
	}

	text, err := s.extractText(resume)
	if err != nil {
		return s.fail(ctx, resume, err)
	}
	text = parser.NormalizeText(text)

	meta := extract.Parse(text)
	resume.CandidateName = meta.Name
	resume.Email = meta.Email
	resume.Phone = meta.Phone
	resume.CurrentRole = meta.CurrentRole
	resume.CurrentCompany = meta.CurrentCompany
	resume.YearsExperience = meta.YearsExperience
	resume.Domain = meta.Domain
	resume.Skills = meta.Skills
	resume.Status = models.StatusParsed
	resume.ProcessingError = ""
	if err := s.store.UpdateResume(ctx, resume); err != nil {
		return err
	}

	// supersede any previous index state before writing the new set
	if resume.ChunkCount > 0 || resume.Indexed {
		if err := s.vec.DeleteResume(ctx, resume.ID); err != nil {
			return s.fail(ctx, resume, fmt.Errorf("removing stale vectors: %w", err))
		}
	}

	chunks := chunker.Split(text, chunker.Options{
		MinSize: s.cfg.RAG.ChunkMinSize,
		MaxSize: s.cfg.RAG.ChunkMaxSize,
	})
	for i := range chunks {
		chunks[i].ResumeID = resume.ID
	}
	if err := s.store.ReplaceChunks(ctx, resume.ID, chunks); err != nil {
		return s.fail(ctx, resume, err)
	}

	resume.ChunkCount = len(chunks)
	resume.Indexed = false

	if len(chunks) == 0 {
		// empty text is a distinguishable terminal state, not an error
		resume.Status = models.StatusProcessed
		return s.finish(ctx, resume)
	}

	resume.Status = models.StatusChunked
	if err := s.store.UpdateResume(ctx, resume); err != nil {
		return err
	}

	// chunks persisted by ReplaceChunks carry no IDs back; reload so the
	// indexer can record vector handles against real rows
	stored, err := s.store.ChunksByResume(ctx, resume.ID)
	if err != nil {
		return s.fail(ctx, resume, err)
	}

	failed := s.indexer.IndexResume(ctx, resume, stored)
	if len(failed) > 0 {
		s.log.Warn().Int64("resume_id", resume.ID).Ints("failed_ordinals", failed).
			Msg("resume partially indexed")
		return s.finish(ctx, resume)
	}

	resume.Indexed = true
	resume.Status = models.StatusIndexed
	s.log.Info().Int64("resume_id", resume.ID).Int("chunks", len(stored)).Msg("resume indexed")
	return s.finish(ctx, resume)
}

func (s *Service) extractText(resume *models.Resume) (string, error) {
	data, err := s.blobs.Get(resume.StorageKey)
	if err != nil {
		return "", fmt.Errorf("fetching blob: %w", err)
	}

	// the format libraries want a file path
	tmp, err := os.CreateTemp("", "ogni-*."+resume.FileType)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	tmp.Close()

	return parser.ExtractText(tmp.Name())
}

func (s *Service) fail(ctx context.Context, resume *models.Resume, cause error) error {
	s.log.Error().Err(cause).Int64("resume_id", resume.ID).Msg("resume processing failed")
	resume.Status = models.StatusFailed
	resume.ProcessingError = cause.Error()
	if err := s.finish(ctx, resume); err != nil {
		return err
	}
	return cause
}

func (s *Service) finish(ctx context.Context, resume *models.Resume) error {
	now := time.Now()
	resume.ProcessedAt = &now
	return s.store.UpdateResume(ctx, resume)
}
