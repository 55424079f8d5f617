package league

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// DefaultSleeperURL is the public Sleeper API
const DefaultSleeperURL = "https://api.sleeper.app/v1"

type sleeperRoster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
}

type sleeperUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
}

type sleeperPlayer struct {
	PlayerID  string `json:"player_id"`
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
}

// SleeperClient loads rosters, owners and the NFL player catalogue for one league
type SleeperClient struct {
	HTTP      *http.Client
	BaseURL   string
	LeagueID  string
	UserAgent string
}

// NewSleeperClient creates a client for leagueID against the public API
func NewSleeperClient(leagueID string) *SleeperClient {
	return &SleeperClient{
		HTTP:      newHTTPClient(),
		BaseURL:   DefaultSleeperURL,
		LeagueID:  leagueID,
		UserAgent: defaultUserAgent,
	}
}

// FetchLeague fetches the three league resources concurrently
func (c *SleeperClient) FetchLeague(ctx context.Context) (*models.League, error) {
	if c.LeagueID == "" {
		return nil, fmt.Errorf("sleeper: league id is required")
	}

	var (
		rosters []sleeperRoster
		users   []sleeperUser
		players map[string]sleeperPlayer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return getJSON(gctx, c.HTTP, fmt.Sprintf("%s/league/%s/rosters", c.BaseURL, c.LeagueID), c.UserAgent, &rosters)
	})
	g.Go(func() error {
		return getJSON(gctx, c.HTTP, fmt.Sprintf("%s/league/%s/users", c.BaseURL, c.LeagueID), c.UserAgent, &users)
	})
	g.Go(func() error {
		return getJSON(gctx, c.HTTP, c.BaseURL+"/players/nfl", c.UserAgent, &players)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sleeper: %w", err)
	}

	l := buildLeague(rosters, users, players)
	logger.Info("League loaded from Sleeper",
		"league_id", c.LeagueID,
		"rosters", len(l.Rosters),
		"players", len(l.Players))
	return l, nil
}

func buildLeague(rosters []sleeperRoster, users []sleeperUser, players map[string]sleeperPlayer) *models.League {
	l := &models.League{
		Rosters:    make([]models.Roster, 0, len(rosters)),
		OwnerNames: make(map[string]string, len(users)),
		Players:    make(map[string]models.Player, len(players)),
	}

	for _, u := range users {
		name := u.DisplayName
		if name == "" {
			name = u.Username
		}
		if name != "" {
			l.OwnerNames[u.UserID] = name
		}
	}

	for _, r := range rosters {
		owner := r.OwnerID
		if owner == "" {
			// orphaned roster
			owner = fmt.Sprintf("roster-%d", r.RosterID)
		}
		ids := r.Players
		if ids == nil {
			ids = []string{}
		}
		l.Rosters = append(l.Rosters, models.Roster{OwnerID: owner, PlayerIDs: ids})
	}

	for id, p := range players {
		name := p.FullName
		if name == "" {
			name = strings.TrimSpace(p.FirstName + " " + p.LastName)
		}
		l.Players[id] = models.Player{ID: id, FullName: name, Position: p.Position, Team: p.Team}
	}

	return l
}
