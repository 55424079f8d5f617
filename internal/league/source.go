package league

import (
	"context"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// Source loads the league snapshot. Callers treat failure as fatal.
type Source interface {
	FetchLeague(ctx context.Context) (*models.League, error)
}

// RankingSource loads a ranking snapshot
type RankingSource interface {
	FetchRankings(ctx context.Context) (models.Rankings, error)
}

// LoadRankings fetches rankings, falling back to an empty map on any failure
func LoadRankings(ctx context.Context, src RankingSource) models.Rankings {
	if src == nil {
		return models.Rankings{}
	}
	rankings, err := src.FetchRankings(ctx)
	if err != nil {
		logger.Warn("Rankings unavailable, continuing unranked", "error", err)
		return models.Rankings{}
	}
	if rankings == nil {
		return models.Rankings{}
	}
	logger.Info("Rankings loaded", "players", len(rankings))
	return rankings
}

// Static serves a fixed league and ranking snapshot
type Static struct {
	League   *models.League
	Rankings models.Rankings
}

// FetchLeague returns the fixed league
func (s Static) FetchLeague(context.Context) (*models.League, error) {
	if s.League == nil {
		return &models.League{}, nil
	}
	return s.League, nil
}

// FetchRankings returns the fixed rankings
func (s Static) FetchRankings(context.Context) (models.Rankings, error) {
	return s.Rankings, nil
}
