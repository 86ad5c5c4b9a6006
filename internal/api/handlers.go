package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nchouhan/ogni-scan/internal/answer"
	"github.com/nchouhan/ogni-scan/internal/models"
)

type uploadResponse struct {
	Resume *models.Resume `json:"resume"`
	Status string         `json:"status"`
}

// handleUpload accepts one multipart file and returns immediately;
// parsing, chunking and indexing run in the background.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes+1024)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, BadRequest("missing multipart field \"file\""))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, BadRequest("reading upload: "+err.Error()))
		return
	}

	resume, err := s.ingest.Upload(r.Context(), header.Filename, data)
	if err != nil {
		writeError(w, BadRequest(err.Error()))
		return
	}

	// The request context dies with the response, so processing gets
	// its own lifetime.
	go func(id int64, log zerolog.Logger) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.ingest.Process(log.WithContext(ctx), id); err != nil {
			log.Error().Err(err).Int64("resume_id", id).Msg("background processing failed")
		}
	}(resume.ID, log.With().Int64("resume_id", resume.ID).Logger())

	writeJSON(w, http.StatusAccepted, uploadResponse{Resume: resume, Status: "processing"})
}

type listResponse struct {
	Resumes []models.Resume `json:"resumes"`
	Total   int             `json:"total"`
	Offset  int             `json:"offset"`
	Limit   int             `json:"limit"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	resumes, total, err := s.store.ListResumes(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Resumes: resumes,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, BadRequest("resume id must be an integer"))
		return
	}
	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resume)
}

type searchRequest struct {
	Query    string               `json:"query"`
	Filters  models.SearchFilters `json:"filters"`
	Limit    int                  `json:"limit"`
	Sequence int64                `json:"sequence"`
}

type searchResponse struct {
	Sequence     int64                     `json:"sequence"`
	Query        string                    `json:"query"`
	Filters      models.SearchFilters      `json:"filters"`
	Answer       string                    `json:"answer"`
	Structured   bool                      `json:"structured"`
	Candidates   []models.CandidateProfile `json:"candidates"`
	Blocks       []answer.ParsedBlock      `json:"blocks"`
	SearchTimeMs int64                     `json:"search_time_ms"`
}

// handleSearch runs the full retrieve-generate-normalize path for one
// recruiter query. The sequence value is echoed back untouched so the
// client can discard responses that arrive out of order.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, BadRequest("invalid JSON body: "+err.Error()))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, BadRequest("query must not be empty"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RAG.Timeout())
	defer cancel()

	start := time.Now()
	payload, err := s.resolver.Resolve(ctx, models.Query{
		Text:    req.Query,
		Filters: req.Filters,
		Limit:   req.Limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	system, user := payload.Prompt()
	raw, err := s.llm.Complete(ctx, system, user)
	if err != nil {
		writeError(w, err)
		return
	}

	parsed := answer.Normalize(raw)
	writeJSON(w, http.StatusOK, searchResponse{
		Sequence:     req.Sequence,
		Query:        req.Query,
		Filters:      payload.Filters,
		Answer:       raw,
		Structured:   parsed.Structured,
		Candidates:   parsed.Candidates,
		Blocks:       parsed.Blocks,
		SearchTimeMs: time.Since(start).Milliseconds(),
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
