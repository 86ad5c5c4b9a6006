package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nchouhan/ogni-scan/internal/config"
	"github.com/nchouhan/ogni-scan/internal/db"
	"github.com/nchouhan/ogni-scan/internal/ingest"
	"github.com/nchouhan/ogni-scan/internal/models"
	"github.com/nchouhan/ogni-scan/internal/search"
)

// Completer produces the generator's raw answer for a prompt pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Resolver builds the retrieval context for a recruiter query.
type Resolver interface {
	Resolve(ctx context.Context, q models.Query) (*search.ContextPayload, error)
}

// Server is the recruiter-facing HTTP surface.
type Server struct {
	cfg      *config.Config
	log      zerolog.Logger
	ingest   *ingest.Service
	resolver Resolver
	llm      Completer
	store    *db.Store
}

func NewServer(cfg *config.Config, log zerolog.Logger, ingestSvc *ingest.Service, resolver Resolver, completer Completer, store *db.Store) *Server {
	return &Server{
		cfg:      cfg,
		log:      log,
		ingest:   ingestSvc,
		resolver: resolver,
		llm:      completer,
		store:    store,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/resumes/upload", s.handleUpload)
	mux.HandleFunc("GET /api/resumes", s.handleList)
	mux.HandleFunc("GET /api/resumes/{id}", s.handleGet)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	return s.withLogging(s.withAuth(mux))
}

// ListenAndServe blocks serving the API.
func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.cfg.Server.Addr).Msg("starting api server")
	return http.ListenAndServe(s.cfg.Server.Addr, s.Handler())
}
