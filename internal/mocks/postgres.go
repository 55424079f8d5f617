package mocks

import (
	"github.com/Billy-Davies-2/expansion-draft/internal/dal"
	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
)

// MockPostgresDAL stands in for Postgres using SQLite for local development
type MockPostgresDAL struct {
	dal.BlobStore
}

// NewMockPostgresDAL creates a mock Postgres blob store backed by sqliteFile
func NewMockPostgresDAL(sqliteFile string) (*MockPostgresDAL, error) {
	logger.Info("Using MOCK Postgres (SQLite) for local development", "file", sqliteFile)

	sqliteDAL, err := dal.NewSQLiteDAL(sqliteFile)
	if err != nil {
		return nil, err
	}

	return &MockPostgresDAL{BlobStore: sqliteDAL}, nil
}
