package db

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/nchouhan/ogni-scan/internal/config"
	"github.com/nchouhan/ogni-scan/internal/models"
)

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

func ConnectDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	dsn := cfg.URL
	if !strings.Contains(dsn, "?") {
		dsn += "?sslmode=disable"
	}
	opts := []pgdriver.Option{pgdriver.WithDSN(dsn)}
	if cfg.Key != "" {
		opts = append(opts, pgdriver.WithPassword(cfg.Key))
	}
	return sql.OpenDB(pgdriver.NewConnector(opts...)), nil
}

func InitDB(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*models.Resume)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	if _, err := db.NewCreateTable().Model((*models.ResumeChunk)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	// ordinal-ordered chunk lookup per resume
	_, err := db.NewCreateIndex().
		Model((*models.ResumeChunk)(nil)).
		Index("idx_resume_chunks_resume_ordinal").
		IfNotExists().
		Column("resume_id", "ordinal").
		Exec(ctx)
	return err
}
