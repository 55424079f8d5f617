package clickhouse

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// DefaultTable holds ranking snapshots
const DefaultTable = "player_rankings"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config holds ClickHouse connection settings
type Config struct {
	Addr     string
	Database string
	Username string
	Password string
	Table    string
}

// conn is the part of driver.Conn the ranking client uses
type conn interface {
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
	Exec(ctx context.Context, query string, args ...any) error
	PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error)
	Close() error
}

// RankingClient stores and serves ranking snapshots from ClickHouse
type RankingClient struct {
	conn  conn
	table string
}

// NewRankingClient connects to ClickHouse and pings it
func NewRankingClient(ctx context.Context, cfg Config) (*RankingClient, error) {
	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid ClickHouse table name %q", table)
	}

	c, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		DialTimeout: 10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	logger.Info("Connected to ClickHouse", "addr", cfg.Addr, "table", table)
	return &RankingClient{conn: c, table: table}, nil
}

// EnsureSchema creates the snapshot table if it does not exist
func (c *RankingClient) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			player_id     String,
			overall_rank  Int32,
			position_rank Int32,
			source        LowCardinality(String),
			captured_at   DateTime
		) ENGINE = MergeTree
		ORDER BY (player_id, captured_at)
	`, c.table)
	if err := c.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create %s: %w", c.table, err)
	}
	return nil
}

func (c *RankingClient) latestQuery() string {
	return fmt.Sprintf(`
		SELECT
			player_id,
			argMax(overall_rank, captured_at)  AS overall_rank,
			argMax(position_rank, captured_at) AS position_rank
		FROM %s
		GROUP BY player_id
	`, c.table)
}

// FetchRankings returns the most recent ranking of every player
func (c *RankingClient) FetchRankings(ctx context.Context) (models.Rankings, error) {
	rows, err := c.conn.Query(ctx, c.latestQuery())
	if err != nil {
		return nil, fmt.Errorf("clickhouse rankings query: %w", err)
	}
	defer rows.Close()

	return scanRankings(rows)
}

type rankingRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRankings(rows rankingRows) (models.Rankings, error) {
	rankings := models.Rankings{}
	for rows.Next() {
		var (
			id              string
			overall, posRnk int32
		)
		if err := rows.Scan(&id, &overall, &posRnk); err != nil {
			return nil, err
		}
		rankings[id] = models.Ranking{OverallRank: int(overall), PositionRank: int(posRnk)}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rankings, nil
}

// Record appends a ranking snapshot tagged with its source
func (c *RankingClient) Record(ctx context.Context, source string, rankings models.Rankings, at time.Time) error {
	if len(rankings) == 0 {
		return nil
	}

	batch, err := c.conn.PrepareBatch(ctx, fmt.Sprintf("INSERT INTO %s", c.table))
	if err != nil {
		return fmt.Errorf("prepare ranking batch: %w", err)
	}
	for id, rk := range rankings {
		if err := batch.Append(id, int32(rk.OverallRank), int32(rk.PositionRank), source, at); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append ranking %s: %w", id, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send ranking batch: %w", err)
	}

	logger.Debug("Recorded ranking snapshot", "source", source, "players", len(rankings))
	return nil
}

// Close closes the ClickHouse connection
func (c *RankingClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
