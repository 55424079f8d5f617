package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Billy-Davies-2/expansion-draft/internal/coordinator"
	"github.com/Billy-Davies-2/expansion-draft/internal/dependencies/clock"
	"github.com/Billy-Davies-2/expansion-draft/internal/draft"
	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/Billy-Davies-2/expansion-draft/internal/pubsub"
)

const maxBodyBytes = 1 << 20

// Draft is the coordinator surface the API needs
type Draft interface {
	Dispatch(ctx context.Context, cmd draft.Command) ([]draft.Event, error)
	LeagueView() coordinator.LeagueView
	ProtectionView(ownerID string) (coordinator.ProtectionView, error)
	OrderView() coordinator.OrderView
	DraftView(now time.Time) coordinator.DraftView
	Pool(position string) []draft.PoolEntry
	Board() []coordinator.TeamBoard
	Ping(ctx context.Context) error
}

// Subscriber is the bus surface the SSE stream needs
type Subscriber interface {
	Subscribe() chan pubsub.Event
	Unsubscribe(chan pubsub.Event)
}

// APIHandlers contains all API handler methods
type APIHandlers struct {
	draft     Draft
	events    Subscriber
	clock     clock.Clock
	keepalive time.Duration
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(d Draft, events Subscriber, clk clock.Clock) *APIHandlers {
	if clk == nil {
		clk = clock.New()
	}
	return &APIHandlers{
		draft:     d,
		events:    events,
		clock:     clk,
		keepalive: 30 * time.Second,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to write response", "error", err)
	}
}

// decode reads an optional JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func badRequest(w http.ResponseWriter, err error) {
	logger.Warn("Failed to decode request", "error", err)
	writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
}

// dispatch runs cmd and writes an error response when it fails
func (h *APIHandlers) dispatch(w http.ResponseWriter, r *http.Request, cmd draft.Command) bool {
	if _, err := h.draft.Dispatch(r.Context(), cmd); err != nil {
		writeError(w, err)
		return false
	}
	return true
}

// GetLeague returns every roster with player status
func (h *APIHandlers) GetLeague(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.draft.LeagueView())
}

// GetOwner returns an owner's protection screen
func (h *APIHandlers) GetOwner(w http.ResponseWriter, r *http.Request) {
	h.writeProtection(w, chi.URLParam(r, "ownerID"))
}

func (h *APIHandlers) writeProtection(w http.ResponseWriter, ownerID string) {
	view, err := h.draft.ProtectionView(ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ChooseProtect marks an owner as protecting, undoing a dispersal
func (h *APIHandlers) ChooseProtect(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdChooseProtect, OwnerID: ownerID}) {
		return
	}
	h.writeProtection(w, ownerID)
}

// SaveProtections saves and locks an owner's protected players
func (h *APIHandlers) SaveProtections(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Players  []string `json:"players"`
		Password string   `json:"password"`
	}
	if err := decode(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	ownerID := chi.URLParam(r, "ownerID")
	cmd := draft.Command{Type: draft.CmdSaveProtections, OwnerID: ownerID, PlayerIDs: req.Players, Password: req.Password}
	if !h.dispatch(w, r, cmd) {
		return
	}
	logger.Info("Protections locked", "owner_id", ownerID, "players", len(req.Players))
	h.writeProtection(w, ownerID)
}

// UnlockProtections unlocks an owner's protections with the lock password
func (h *APIHandlers) UnlockProtections(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decode(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	ownerID := chi.URLParam(r, "ownerID")
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdUnlockProtections, OwnerID: ownerID, Password: req.Password}) {
		return
	}
	h.writeProtection(w, ownerID)
}

// ClearProtections deletes an unlocked protection record
func (h *APIHandlers) ClearProtections(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdClearProtections, OwnerID: ownerID}) {
		return
	}
	h.writeProtection(w, ownerID)
}

// Disperse releases an owner's whole roster into the pool
func (h *APIHandlers) Disperse(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdDisperse, OwnerID: ownerID}) {
		return
	}
	logger.Info("Owner dispersed", "owner_id", ownerID)
	h.writeProtection(w, ownerID)
}

// GetOrder returns the draft order
func (h *APIHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.draft.OrderView())
}

type teamRequest struct {
	Name string `json:"name"`
}

// AddTeam appends a team to the draft order
func (h *APIHandlers) AddTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := decode(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdAddTeam, Name: req.Name}) {
		return
	}
	writeJSON(w, http.StatusCreated, h.draft.OrderView())
}

func orderIndex(r *http.Request) (int, error) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, fmt.Errorf("invalid team index: %w", err)
	}
	return idx, nil
}

// RenameTeam renames the team at an order index
func (h *APIHandlers) RenameTeam(w http.ResponseWriter, r *http.Request) {
	idx, err := orderIndex(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	var req teamRequest
	if err := decode(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdRenameTeam, Index: idx, Name: req.Name}) {
		return
	}
	writeJSON(w, http.StatusOK, h.draft.OrderView())
}

// RemoveTeam removes the team at an order index
func (h *APIHandlers) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	idx, err := orderIndex(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdRemoveTeam, Index: idx}) {
		return
	}
	writeJSON(w, http.StatusOK, h.draft.OrderView())
}

// ShuffleOrder randomizes the draft order
func (h *APIHandlers) ShuffleOrder(w http.ResponseWriter, r *http.Request) {
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdShuffleOrder}) {
		return
	}
	writeJSON(w, http.StatusOK, h.draft.OrderView())
}

// GetDraft returns the live draft status
func (h *APIHandlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.draft.DraftView(h.clock.Now()))
}

// GetPool returns available players, optionally filtered by ?position=
func (h *APIHandlers) GetPool(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.draft.Pool(r.URL.Query().Get("position")))
}

type playerRequest struct {
	PlayerID string `json:"playerId"`
}

// SelectPlayer sets the pending selection
func (h *APIHandlers) SelectPlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decode(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdSelectPlayer, PlayerID: req.PlayerID}) {
		return
	}
	writeJSON(w, http.StatusOK, h.draft.DraftView(h.clock.Now()))
}

// MakePick drafts a player for the team on the clock. Without a playerId
// the pending selection is used.
func (h *APIHandlers) MakePick(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decode(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdMakePick, PlayerID: req.PlayerID}) {
		return
	}
	writeJSON(w, http.StatusCreated, h.draft.DraftView(h.clock.Now()))
}

// ResetDraft clears the pick ledger
func (h *APIHandlers) ResetDraft(w http.ResponseWriter, r *http.Request) {
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdResetDraft}) {
		return
	}
	logger.Info("Draft reset")
	writeJSON(w, http.StatusOK, h.draft.DraftView(h.clock.Now()))
}

// GetBoard returns every team's filled lineup
func (h *APIHandlers) GetBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.draft.Board())
}

// ResetAll clears protections, order, picks and dispersals
func (h *APIHandlers) ResetAll(w http.ResponseWriter, r *http.Request) {
	if !h.dispatch(w, r, draft.Command{Type: draft.CmdResetAll}) {
		return
	}
	logger.Warn("All draft data reset")
	w.WriteHeader(http.StatusNoContent)
}
