package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// PostgresDAL implements BlobStore using PostgreSQL JSONB columns
type PostgresDAL struct {
	db *sql.DB
}

// NewPostgresDAL creates a new PostgreSQL data access layer optimized for CloudNativePG
func NewPostgresDAL(connString string) (*PostgresDAL, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	// CloudNativePG default max_connections is 100
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Retry the first ping while cluster DNS settles
	maxRetries := 5
	retryDelay := 5 * time.Second
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		lastErr = db.PingContext(ctx)
		cancel()

		if lastErr == nil {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if lastErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres after %d retries: %w", maxRetries, lastErr)
	}

	dal := &PostgresDAL{db: db}

	if err := dal.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return dal, nil
}

var _ BlobStore = (*PostgresDAL)(nil)

func (p *PostgresDAL) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS draft_blobs (
		name TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := p.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create postgres schema: %w", err)
	}
	return nil
}

func (p *PostgresDAL) Get(ctx context.Context, name BlobName) ([]byte, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx, `SELECT data::text FROM draft_blobs WHERE name = $1`, string(name)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (p *PostgresDAL) Set(ctx context.Context, name BlobName, data []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO draft_blobs (name, data, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, string(name), string(data))
	return err
}

func (p *PostgresDAL) Reset(ctx context.Context) error {
	names := make([]string, len(AllBlobs))
	for i, n := range AllBlobs {
		names[i] = string(n)
	}
	_, err := p.db.ExecContext(ctx, `DELETE FROM draft_blobs WHERE name = ANY($1)`, pq.Array(names))
	return err
}

func (p *PostgresDAL) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgresDAL) Close() error {
	return p.db.Close()
}
