package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Billy-Davies-2/expansion-draft/internal/dal"
	"github.com/Billy-Davies-2/expansion-draft/internal/dependencies/clock"
	"github.com/Billy-Davies-2/expansion-draft/internal/dependencies/random"
	"github.com/Billy-Davies-2/expansion-draft/internal/draft"
	"github.com/Billy-Davies-2/expansion-draft/internal/league"
	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
	"github.com/Billy-Davies-2/expansion-draft/internal/pubsub"
)

// ErrPersist is returned when a command was applied but could not be saved
var ErrPersist = errors.New("failed to persist draft state")

// Deps are the collaborators a Coordinator is built from
type Deps struct {
	Store    *dal.Store
	Bus      pubsub.Bus
	League   league.Source
	Rankings league.RankingSource
	Rules    draft.Rules
	Clock    clock.Clock
	Random   random.Random
	Hasher   draft.Hasher
	// Origin tags published snapshots; a random id is used when empty
	Origin string
}

// Coordinator owns one draft session. Commands are serialized behind a mutex,
// persisted to the blob store and announced on the bus.
type Coordinator struct {
	mu     sync.RWMutex
	state  draft.State
	env    draft.Env
	store  *dal.Store
	bus    pubsub.Bus
	feed   *pubsub.LedgerFeed
	origin string
	log    *slog.Logger
}

// New loads the league, rankings and the four draft documents. A league
// failure is fatal; rankings degrade to empty.
func New(ctx context.Context, deps Deps) (*Coordinator, error) {
	if deps.Store == nil {
		return nil, errors.New("coordinator: store is required")
	}
	if deps.League == nil {
		return nil, errors.New("coordinator: league source is required")
	}
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Random == nil {
		deps.Random = random.New()
	}
	if deps.Rules.Limits == nil {
		deps.Rules = draft.DefaultRules()
	}
	if deps.Origin == "" {
		deps.Origin = uuid.NewString()
	}

	lg, err := deps.League.FetchLeague(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load league: %w", err)
	}
	if lg == nil {
		return nil, errors.New("failed to load league: source returned no league")
	}

	c := &Coordinator{
		env: draft.Env{
			League:   lg,
			Rankings: league.LoadRankings(ctx, deps.Rankings),
			Rules:    deps.Rules,
			Clock:    deps.Clock,
			Random:   deps.Random,
			Hasher:   deps.Hasher,
		},
		store:  deps.Store,
		bus:    deps.Bus,
		origin: deps.Origin,
		log:    logger.With("coordinator").With("origin", deps.Origin),
	}

	if c.state, err = c.load(ctx); err != nil {
		return nil, err
	}

	if c.bus != nil {
		c.feed = pubsub.NewLedgerFeed(c.bus, c.origin)
	}

	c.log.Info("Draft session loaded",
		"owners", len(lg.Rosters),
		"teams", len(c.state.Order),
		"picks", len(c.state.Picks),
		"ranked_players", len(c.env.Rankings))
	return c, nil
}

func (c *Coordinator) load(ctx context.Context) (draft.State, error) {
	s := draft.NewState()
	var err error
	if s.Protections, err = c.store.LoadProtections(ctx); err != nil {
		return s, err
	}
	if s.Order, err = c.store.LoadOrder(ctx); err != nil {
		return s, err
	}
	var picks []models.Pick
	if picks, err = c.store.LoadPicks(ctx); err != nil {
		return s, err
	}
	s.Picks = draft.Ledger(picks)
	if s.Dispersed, err = c.store.LoadDispersed(ctx); err != nil {
		return s, err
	}
	s.Timer = draft.Countdown{StartedAt: c.env.Clock.Now(), Limit: c.env.Rules.PickTimeLimit}
	return s, nil
}

// Origin identifies this coordinator on the bus
func (c *Coordinator) Origin() string {
	return c.origin
}

// Dispatch applies a command, saves the documents it changed and publishes
// the change. If saving fails the in-memory state is rolled back, nothing is
// published and the error wraps ErrPersist.
func (c *Coordinator) Dispatch(ctx context.Context, cmd draft.Command) ([]draft.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	events, next, err := draft.Apply(c.state, cmd, c.env)
	if err != nil {
		c.log.Debug("Command rejected", "command", cmd.Type, "owner_id", cmd.OwnerID, "player_id", cmd.PlayerID, "error", err)
		return nil, err
	}
	prev := c.state
	c.state = next

	if err := c.persist(ctx, events); err != nil {
		c.log.Error("Failed to persist draft state", "command", cmd.Type, "error", err)
		c.state = prev
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	for _, e := range events {
		if e.Type == draft.EvtPickMade && e.Pick != nil {
			c.log.Info("Pick made",
				"pick_number", e.Pick.PickNumber,
				"team_id", e.Pick.TeamID,
				"player_id", e.Pick.PlayerID,
				"original_owner_id", e.Pick.OriginalOwnerID)
		}
	}
	c.publish(events)
	return events, nil
}

func (c *Coordinator) persist(ctx context.Context, events []draft.Event) error {
	var picks, protections, dispersed, order bool
	for _, e := range events {
		switch e.Type {
		case draft.EvtAllReset:
			return c.store.ResetAll(ctx)
		case draft.EvtPickMade, draft.EvtDraftReset:
			picks = true
		case draft.EvtProtectionsChanged:
			protections = true
		case draft.EvtDispersedChanged:
			dispersed = true
		case draft.EvtOrderChanged:
			order = true
		}
	}

	if picks {
		if err := c.store.SavePicks(ctx, c.state.Picks); err != nil {
			return err
		}
	}
	if protections {
		if err := c.store.SaveProtections(ctx, c.state.Protections); err != nil {
			return err
		}
	}
	if dispersed {
		if err := c.store.SaveDispersed(ctx, c.state.Dispersed); err != nil {
			return err
		}
	}
	if order {
		if err := c.store.SaveOrder(ctx, c.state.Order); err != nil {
			return err
		}
	}
	return nil
}

type ownerPayload struct {
	OwnerID string `json:"ownerId"`
}

type selectionPayload struct {
	PlayerID string `json:"playerId"`
}

func (c *Coordinator) publish(events []draft.Event) {
	if c.bus == nil {
		return
	}

	emit := func(eventType string, v any) {
		e, err := pubsub.NewEvent(eventType, c.origin, v)
		if err != nil {
			c.log.Error("Failed to build bus event", "type", eventType, "error", err)
			return
		}
		c.bus.Publish(e)
	}

	picksChanged := false
	for _, e := range events {
		switch e.Type {
		case draft.EvtPickMade, draft.EvtDraftReset:
			picksChanged = true
		case draft.EvtAllReset:
			picksChanged = true
			emit(pubsub.EventReset, nil)
		case draft.EvtProtectionsChanged:
			emit(pubsub.EventProtectionsUpdated, ownerPayload{OwnerID: e.OwnerID})
		case draft.EvtDispersedChanged:
			emit(pubsub.EventDispersedUpdated, c.state.Dispersed)
		case draft.EvtOrderChanged:
			emit(pubsub.EventOrderUpdated, c.state.Order)
		case draft.EvtPlayerSelected:
			emit(pubsub.EventSelectionUpdated, selectionPayload{PlayerID: e.PlayerID})
		}
	}

	if picksChanged {
		e, err := pubsub.NewPicksEvent(c.origin, c.state.Picks)
		if err != nil {
			c.log.Error("Failed to build picks snapshot", "error", err)
			return
		}
		c.bus.Publish(e)
	}
}

// Run replaces the local ledger with every snapshot published by other
// coordinators until ctx is done. Remote ledgers are not saved again.
func (c *Coordinator) Run(ctx context.Context) {
	if c.feed == nil {
		<-ctx.Done()
		return
	}

	go c.feed.Run(ctx)

	for picks := range c.feed.C() {
		c.applyRemote(picks)
	}
}

func (c *Coordinator) applyRemote(picks []models.Pick) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, next, err := draft.Apply(c.state, draft.Command{Type: draft.CmdReplacePicks, Picks: picks}, c.env)
	if err != nil {
		c.log.Error("Failed to apply remote ledger", "error", err)
		return
	}
	c.state = next
	c.log.Debug("Applied remote ledger", "picks", len(picks))
}

// Ping checks the blob store
func (c *Coordinator) Ping(ctx context.Context) error {
	return c.store.Blobs().Ping(ctx)
}

// Snapshot returns a copy of the current state
func (c *Coordinator) Snapshot() draft.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// League returns the league snapshot
func (c *Coordinator) League() *models.League {
	return c.env.League
}

// Rules returns the active draft rules
func (c *Coordinator) Rules() draft.Rules {
	return c.env.Rules
}
