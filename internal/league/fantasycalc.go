package league

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// DefaultFantasyCalcURL is the public FantasyCalc API
const DefaultFantasyCalcURL = "https://api.fantasycalc.com"

// sleeperID accepts the Sleeper id as either a JSON string or number
type sleeperID string

func (s *sleeperID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = sleeperID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = sleeperID(n.String())
	return nil
}

type fantasyCalcValue struct {
	Player struct {
		SleeperID sleeperID `json:"sleeperId"`
	} `json:"player"`
	OverallRank  int `json:"overallRank"`
	PositionRank int `json:"positionRank"`
}

// FantasyCalcClient fetches dynasty superflex rankings keyed by Sleeper id
type FantasyCalcClient struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	NumQBs    int
	NumTeams  int
	PPR       int
}

// NewFantasyCalcClient returns a client for 2-QB, 10-team, full-PPR dynasty values
func NewFantasyCalcClient() *FantasyCalcClient {
	return &FantasyCalcClient{
		HTTP:      newHTTPClient(),
		BaseURL:   DefaultFantasyCalcURL,
		UserAgent: defaultUserAgent,
		NumQBs:    2,
		NumTeams:  10,
		PPR:       1,
	}
}

func (c *FantasyCalcClient) valuesURL() string {
	q := url.Values{}
	q.Set("isDynasty", "true")
	q.Set("numQbs", fmt.Sprint(c.NumQBs))
	q.Set("numTeams", fmt.Sprint(c.NumTeams))
	q.Set("ppr", fmt.Sprint(c.PPR))
	return c.BaseURL + "/values/current?" + q.Encode()
}

// FetchRankings returns rankings keyed by Sleeper player id. Missing ranks
// become the unranked defaults.
func (c *FantasyCalcClient) FetchRankings(ctx context.Context) (models.Rankings, error) {
	var values []fantasyCalcValue
	if err := getJSON(ctx, c.HTTP, c.valuesURL(), c.UserAgent, &values); err != nil {
		return nil, fmt.Errorf("fantasycalc: %w", err)
	}

	rankings := make(models.Rankings, len(values))
	for _, v := range values {
		id := string(v.Player.SleeperID)
		if id == "" {
			continue
		}
		rk := models.Ranking{OverallRank: v.OverallRank, PositionRank: v.PositionRank}
		if rk.OverallRank <= 0 {
			rk.OverallRank = models.UnrankedOverall
		}
		if rk.PositionRank <= 0 {
			rk.PositionRank = models.UnrankedPosition
		}
		rankings[id] = rk
	}
	return rankings, nil
}
