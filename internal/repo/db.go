// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and schema migrations.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/4Furki4/turkish-dictionary/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// EnableTracing attaches the GORM OpenTelemetry plugin so database spans are
// reported alongside HTTP spans. Metrics are disabled; the Prometheus HTTP
// middleware covers request-level metrics.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// AutoMigrate creates or migrates every table the application owns: the
// contribution pipeline (requests, votes, contribution keys), the live
// dictionary entity tables, and the product tables around them.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Word{},
		&domain.Meaning{},
		&domain.Author{},
		&domain.WordAttribute{},
		&domain.MeaningAttribute{},
		&domain.RelatedWord{},
		&domain.RelatedPhrase{},
		&domain.Request{},
		&domain.RequestVote{},
		&domain.ContributionKey{},
		&domain.Announcement{},
		&domain.Feedback{},
		&domain.FeedbackVote{},
	)
}
