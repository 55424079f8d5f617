package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDAL implements BlobStore using SQLite
type SQLiteDAL struct {
	db *sql.DB
}

// NewSQLiteDAL creates a new SQLite data access layer
func NewSQLiteDAL(dbPath string) (*SQLiteDAL, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	dal := &SQLiteDAL{db: db}

	if err := dal.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return dal, nil
}

var _ BlobStore = (*SQLiteDAL)(nil)

func (s *SQLiteDAL) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create sqlite schema: %w", err)
	}
	return nil
}

func (s *SQLiteDAL) Get(ctx context.Context, name BlobName) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE name = ?`, string(name)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (s *SQLiteDAL) Set(ctx context.Context, name BlobName, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, string(name), string(data))
	return err
}

func (s *SQLiteDAL) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range AllBlobs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM blobs WHERE name = ?`, string(name)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteDAL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteDAL) Close() error {
	return s.db.Close()
}
