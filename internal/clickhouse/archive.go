package clickhouse

import (
	"context"
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/league"
	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// snapshotStore is implemented by RankingClient
type snapshotStore interface {
	league.RankingSource
	Record(ctx context.Context, source string, rankings models.Rankings, at time.Time) error
}

// ArchivingSource fetches live rankings, archives every successful fetch and
// serves the last archived snapshot when the live source fails
type ArchivingSource struct {
	Live   league.RankingSource
	Store  snapshotStore
	Source string
	Now    func() time.Time
}

// FetchRankings implements league.RankingSource
func (a *ArchivingSource) FetchRankings(ctx context.Context) (models.Rankings, error) {
	rankings, err := a.Live.FetchRankings(ctx)
	if err != nil {
		logger.Warn("Live rankings failed, using archived snapshot", "source", a.Source, "error", err)
		return a.Store.FetchRankings(ctx)
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	if err := a.Store.Record(ctx, a.Source, rankings, now().UTC()); err != nil {
		logger.Warn("Failed to archive rankings", "source", a.Source, "error", err)
	}
	return rankings, nil
}
