package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Status tracks a resume through the ingestion pipeline.
type Status string

const (
	StatusRaw     Status = "raw"
	StatusParsed  Status = "parsed"
	StatusChunked Status = "chunked"
	StatusIndexed Status = "indexed"
	StatusFailed  Status = "failed"
	// StatusProcessed marks a resume whose text was empty after normalization.
	// Terminal: zero chunks, never indexed, not an error.
	StatusProcessed Status = "processed"
)

// Resume is a single uploaded resume and the metadata extracted from it.
// Owned by the ingestion path; the query path only reads it.
type Resume struct {
	bun.BaseModel `bun:"table:resumes,alias:r"`

	ID               int64  `bun:"id,pk,autoincrement" json:"id"`
	StorageKey       string `bun:"storage_key,notnull" json:"-"`
	OriginalFilename string `bun:"original_filename,notnull" json:"original_filename"`
	FileType         string `bun:"file_type,notnull" json:"file_type"`
	FileSize         int64  `bun:"file_size,notnull" json:"file_size"`

	// Extracted candidate fields. All optional: extraction is best effort.
	CandidateName   string   `bun:"candidate_name" json:"candidate_name,omitempty"`
	Email           string   `bun:"email" json:"email,omitempty"`
	Phone           string   `bun:"phone" json:"phone,omitempty"`
	CurrentRole     string   `bun:"current_role" json:"current_role,omitempty"`
	CurrentCompany  string   `bun:"current_company" json:"current_company,omitempty"`
	YearsExperience float64  `bun:"years_experience" json:"years_experience,omitempty"`
	Domain          string   `bun:"domain" json:"domain,omitempty"`
	Skills          []string `bun:"skills,array" json:"skills,omitempty"`

	Status          Status     `bun:"status,notnull,default:'raw'" json:"status"`
	Indexed         bool       `bun:"indexed,notnull,default:false" json:"indexed"`
	ChunkCount      int        `bun:"chunk_count,notnull,default:0" json:"chunk_count"`
	ProcessingError string     `bun:"processing_error" json:"processing_error,omitempty"`
	CreatedAt       time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	ProcessedAt     *time.Time `bun:"processed_at" json:"processed_at,omitempty"`
}

// ResumeChunk is a bounded span of a resume's normalized text.
// Ordinals are contiguous from zero per resume. VectorID is set at most
// once; re-indexing replaces the whole chunk set instead of mutating it.
type ResumeChunk struct {
	bun.BaseModel `bun:"table:resume_chunks,alias:c"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	ResumeID int64  `bun:"resume_id,notnull" json:"resume_id"`
	Ordinal  int    `bun:"ordinal,notnull" json:"ordinal"`
	Content  string `bun:"content,notnull" json:"content"`
	CharLen  int    `bun:"char_len,notnull" json:"char_len"`
	Section  string `bun:"section,notnull,default:'general'" json:"section"`
	VectorID string `bun:"vector_id" json:"vector_id,omitempty"`
	Indexed  bool   `bun:"indexed,notnull,default:false" json:"indexed"`
}

// SectionGeneral is the fallback section tag so downstream filtering never
// has to special-case absence.
const SectionGeneral = "general"
