package coordinator

import (
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/draft"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// Player statuses on the league view
const (
	PlayerAvailable = "available"
	PlayerProtected = "protected"
	PlayerDrafted   = "drafted"
)

// LeaguePlayer is one rostered player on the league view
type LeaguePlayer struct {
	models.Player
	OverallRank  int    `json:"overallRank"`
	PositionRank int    `json:"positionRank"`
	Status       string `json:"status"`
	DraftedBy    string `json:"draftedBy,omitempty"`
	PickLabel    string `json:"pickLabel,omitempty"`
}

// OwnerSummary is one roster on the league view
type OwnerSummary struct {
	OwnerID   string            `json:"ownerId"`
	OwnerName string            `json:"ownerName"`
	Status    draft.OwnerStatus `json:"status"`
	Locked    bool              `json:"locked"`
	PicksLost int               `json:"picksLost"`
	Players   []LeaguePlayer    `json:"players"`
}

// LeagueView lists every roster with per-player status
type LeagueView struct {
	Owners []OwnerSummary `json:"owners"`
}

// BucketCount is a protection count against its limit
type BucketCount struct {
	Bucket draft.Bucket `json:"bucket"`
	Count  int          `json:"count"`
	Limit  int          `json:"limit"`
}

// RosterPlayer is one player on the protection view
type RosterPlayer struct {
	models.Player
	OverallRank  int  `json:"overallRank"`
	PositionRank int  `json:"positionRank"`
	Protected    bool `json:"protected"`
}

// ProtectionView is an owner's roster and protection state
type ProtectionView struct {
	OwnerID   string            `json:"ownerId"`
	OwnerName string            `json:"ownerName"`
	Status    draft.OwnerStatus `json:"status"`
	State     string            `json:"state"`
	Locked    bool              `json:"locked"`
	Players   []RosterPlayer    `json:"players"`
	Counts    []BucketCount     `json:"counts"`
	Overages  []string          `json:"overages"`
	Valid     bool              `json:"valid"`
}

// OwnerHint names a dispersed owner that could join the draft order
type OwnerHint struct {
	OwnerID   string `json:"ownerId"`
	OwnerName string `json:"ownerName"`
}

// OrderView is the draft order with dispersed owners as hints
type OrderView struct {
	Order          []string    `json:"order"`
	DispersedHints []OwnerHint `json:"dispersedHints"`
}

// TimerView is the countdown as shown to clients
type TimerView struct {
	Active           bool   `json:"active"`
	RemainingSeconds int    `json:"remainingSeconds"`
	Clock            string `json:"clock"`
	Expired          bool   `json:"expired"`
}

// PickView is a ledger entry with display details
type PickView struct {
	models.Pick
	Label      string `json:"label"`
	PlayerName string `json:"playerName"`
	Position   string `json:"position"`
	OwnerName  string `json:"ownerName"`
}

// DraftView is the live draft status
type DraftView struct {
	PickNumber int              `json:"pickNumber"`
	PickLabel  string           `json:"pickLabel,omitempty"`
	OnTheClock string           `json:"onTheClock,omitempty"`
	Order      []string         `json:"order"`
	Timer      TimerView        `json:"timer"`
	Selected   *draft.PoolEntry `json:"selected,omitempty"`
	Picks      []PickView       `json:"picks"`
}

// TeamBoard is one expansion team's filled lineup
type TeamBoard struct {
	TeamID string            `json:"teamId"`
	Slots  []draft.BoardSlot `json:"slots"`
}

// LeagueView builds the league overview
func (c *Coordinator) LeagueView() LeagueView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lg := c.env.League
	s := c.state
	teams := len(s.Order)

	view := LeagueView{Owners: make([]OwnerSummary, 0, len(lg.Rosters))}
	for _, r := range lg.Rosters {
		protected := draft.ActiveProtected(r.OwnerID, s.Protections, s.Dispersed)
		owner := OwnerSummary{
			OwnerID:   r.OwnerID,
			OwnerName: lg.OwnerName(r.OwnerID),
			Status:    draft.OwnerStatusOf(r.OwnerID, s.Protections, s.Dispersed),
			Locked:    s.Protections.Get(r.OwnerID).IsLocked(),
			PicksLost: s.Picks.CountFromOwner(r.OwnerID),
			Players:   make([]LeaguePlayer, 0, len(r.PlayerIDs)),
		}
		for _, id := range draft.SortByPosition(r.PlayerIDs, lg, c.env.Rankings) {
			rk := c.env.Rankings.Lookup(id)
			p := LeaguePlayer{
				Player:       lg.Player(id),
				OverallRank:  rk.OverallRank,
				PositionRank: rk.PositionRank,
				Status:       PlayerAvailable,
			}
			if pick, ok := s.Picks.Find(id); ok {
				p.Status = PlayerDrafted
				p.DraftedBy = pick.TeamID
				p.PickLabel, _ = draft.PickLabel(pick.PickNumber, teams)
			} else if _, ok := protected[id]; ok {
				p.Status = PlayerProtected
			}
			owner.Players = append(owner.Players, p)
		}
		view.Owners = append(view.Owners, owner)
	}
	return view
}

// ProtectionView builds an owner's protection screen. Counts and overages
// describe the saved candidate list.
func (c *Coordinator) ProtectionView(ownerID string) (ProtectionView, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lg := c.env.League
	roster, ok := lg.Roster(ownerID)
	if !ok {
		return ProtectionView{}, draft.ErrUnknownOwner
	}

	s := c.state
	rec := s.Protections.Get(ownerID)
	chosen := make(map[string]struct{}, len(rec.Players))
	for _, id := range rec.Players {
		chosen[id] = struct{}{}
	}

	view := ProtectionView{
		OwnerID:   ownerID,
		OwnerName: lg.OwnerName(ownerID),
		Status:    draft.OwnerStatusOf(ownerID, s.Protections, s.Dispersed),
		State:     rec.State.String(),
		Locked:    rec.IsLocked(),
		Players:   make([]RosterPlayer, 0, len(roster.PlayerIDs)),
		Overages:  []string{},
	}
	for _, id := range draft.SortByPosition(roster.PlayerIDs, lg, c.env.Rankings) {
		rk := c.env.Rankings.Lookup(id)
		_, protected := chosen[id]
		view.Players = append(view.Players, RosterPlayer{
			Player:       lg.Player(id),
			OverallRank:  rk.OverallRank,
			PositionRank: rk.PositionRank,
			Protected:    protected,
		})
	}

	limits := c.env.Rules.Limits
	counts := draft.Allocate(rec.Players, lg, limits)
	for _, b := range draft.LimitOrder {
		view.Counts = append(view.Counts, BucketCount{Bucket: b, Count: counts[b], Limit: limits[b]})
	}
	if n := counts[draft.BucketUnclassified]; n > 0 {
		view.Counts = append(view.Counts, BucketCount{Bucket: draft.BucketUnclassified, Count: n, Limit: -1})
	}
	for _, o := range counts.Overages(limits) {
		view.Overages = append(view.Overages, o.String())
	}
	view.Valid = len(view.Overages) == 0
	return view, nil
}

// OrderView returns the draft order and dispersed owner hints
func (c *Coordinator) OrderView() OrderView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	view := OrderView{
		Order:          append([]string{}, c.state.Order...),
		DispersedHints: []OwnerHint{},
	}
	for _, id := range c.state.Dispersed.List() {
		view.DispersedHints = append(view.DispersedHints, OwnerHint{OwnerID: id, OwnerName: c.env.League.OwnerName(id)})
	}
	return view
}

// DraftView returns the live draft status at now
func (c *Coordinator) DraftView(now time.Time) DraftView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.state
	lg := c.env.League
	teams := len(s.Order)
	made := s.CurrentPick()

	view := DraftView{
		PickNumber: made + 1,
		Order:      append([]string{}, s.Order...),
		Picks:      make([]PickView, 0, len(s.Picks)),
	}
	if team, err := draft.CurrentDrafter(s.Order, made); err == nil {
		view.OnTheClock = team
		view.PickLabel, _ = draft.PickLabel(made+1, teams)
	}

	if draft.TimerActive(made, c.env.Rules.TimerCutoff) {
		remaining := s.Timer.Remaining(now)
		view.Timer = TimerView{
			Active:           true,
			RemainingSeconds: int(remaining / time.Second),
			Clock:            draft.FormatClock(remaining),
			Expired:          s.Timer.Expired(now),
		}
	}

	if s.Selected != "" {
		if entry, ok := draft.FindInPool(c.env.Pool(s), s.Selected); ok {
			view.Selected = &entry
		}
	}

	for _, p := range s.Picks {
		player := lg.Player(p.PlayerID)
		label, _ := draft.PickLabel(p.PickNumber, teams)
		view.Picks = append(view.Picks, PickView{
			Pick:       p,
			Label:      label,
			PlayerName: player.FullName,
			Position:   player.Position,
			OwnerName:  lg.OwnerName(p.OriginalOwnerID),
		})
	}
	return view
}

// Pool returns the available players, optionally filtered by exact position
func (c *Coordinator) Pool(position string) []draft.PoolEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pool := draft.FilterByPosition(c.env.Pool(c.state), position)
	if pool == nil {
		pool = []draft.PoolEntry{}
	}
	return pool
}

// Board fills the lineup of every team in draft order
func (c *Coordinator) Board() []TeamBoard {
	c.mu.RLock()
	defer c.mu.RUnlock()

	boards := make([]TeamBoard, 0, len(c.state.Order))
	for _, team := range c.state.Order {
		boards = append(boards, TeamBoard{
			TeamID: team,
			Slots:  draft.FillSlots(c.state.Picks.ForTeam(team), c.env.League, c.env.Rules.Slots),
		})
	}
	return boards
}
