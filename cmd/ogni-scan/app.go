package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nchouhan/ogni-scan/internal/config"
	"github.com/nchouhan/ogni-scan/internal/db"
	"github.com/nchouhan/ogni-scan/internal/embedding"
	"github.com/nchouhan/ogni-scan/internal/ingest"
	"github.com/nchouhan/ogni-scan/internal/llm"
	"github.com/nchouhan/ogni-scan/internal/logger"
	"github.com/nchouhan/ogni-scan/internal/search"
	"github.com/nchouhan/ogni-scan/internal/storage"
	"github.com/nchouhan/ogni-scan/internal/vectordb"
)

// app bundles the wired components every command needs.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    *db.Store
	blobs    *storage.FileStore
	vec      *vectordb.Manager
	chat     *llm.Client
	ingest   *ingest.Service
	resolver *search.Resolver
}

func buildApp(ctx context.Context) (*app, error) {
	log := logger.Setup(debug)

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	sqldb, err := db.ConnectDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	bunDB := db.NewDB(sqldb, cfg.Database.Debug)
	if err := db.InitDB(ctx, bunDB); err != nil {
		return nil, err
	}
	store := db.NewStore(bunDB)

	blobs, err := storage.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		return nil, err
	}
	vec, err := vectordb.NewManager(&cfg.Vector, embedder)
	if err != nil {
		return nil, err
	}

	chat, err := llm.NewClient(&cfg.ChatLLM, log, cfg.RAG.Timeout())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		blobs:    blobs,
		vec:      vec,
		chat:     chat,
		ingest:   ingest.NewService(store, blobs, vec, cfg, log),
		resolver: search.NewResolver(vec, store, chat, cfg.RAG, log),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing database")
	}
}
