package draft

import (
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/dependencies/clock"
	"github.com/Billy-Davies-2/expansion-draft/internal/dependencies/random"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// DefaultTeamName is used when a team is added to the order without a name
const DefaultTeamName = "New Team"

// OwnerStatus is an owner's expansion decision
type OwnerStatus string

const (
	StatusUndecided  OwnerStatus = "undecided"
	StatusProtecting OwnerStatus = "protecting"
	StatusDispersed  OwnerStatus = "dispersed"
)

// OwnerStatusOf derives the status shown for an owner on load
func OwnerStatusOf(ownerID string, protections models.Protections, dispersed models.DispersedSet) OwnerStatus {
	if dispersed.Has(ownerID) {
		return StatusDispersed
	}
	if len(protections.Get(ownerID).Players) > 0 {
		return StatusProtecting
	}
	return StatusUndecided
}

// State is the mutable part of a draft session
type State struct {
	Protections models.Protections
	Dispersed   models.DispersedSet
	Order       []string
	Picks       Ledger
	// Selected is the pending player choice, empty when nothing is selected
	Selected string
	Timer    Countdown
}

// NewState returns an empty session
func NewState() State {
	return State{
		Protections: models.Protections{},
		Dispersed:   models.DispersedSet{},
		Order:       []string{},
		Picks:       Ledger{},
	}
}

// CurrentPick is the number of picks made so far
func (s State) CurrentPick() int {
	return len(s.Picks)
}

// Clone deep-copies every container
func (s State) Clone() State {
	out := s
	out.Protections = s.Protections.Clone()
	out.Dispersed = s.Dispersed.Clone()
	out.Order = append([]string{}, s.Order...)
	out.Picks = append(Ledger{}, s.Picks...)
	return out
}

// Hasher seals protection lists behind a lock password and checks it
type Hasher interface {
	Seal(players []string, password string) (models.ProtectionRecord, error)
	Verify(rec models.ProtectionRecord, password string) bool
}

// Env carries the read-only snapshots and side-effect sources a command needs
type Env struct {
	League   *models.League
	Rankings models.Rankings
	Rules    Rules
	Clock    clock.Clock
	Random   random.Random
	Hasher   Hasher
}

func (e Env) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

// Pool derives the available player pool for a state
func (e Env) Pool(s State) []PoolEntry {
	return BuildPool(PoolInput{
		League:      e.League,
		Rankings:    e.Rankings,
		Protections: s.Protections,
		Dispersed:   s.Dispersed,
		Picks:       s.Picks,
		MaxPerOwner: e.Rules.MaxPicksPerOriginalOwner,
	})
}

type CommandType string

const (
	CmdSelectPlayer      CommandType = "SelectPlayer"
	CmdMakePick          CommandType = "MakePick"
	CmdResetDraft        CommandType = "ResetDraft"
	CmdReplacePicks      CommandType = "ReplacePicks"
	CmdChooseProtect     CommandType = "ChooseProtect"
	CmdSaveProtections   CommandType = "SaveProtections"
	CmdUnlockProtections CommandType = "UnlockProtections"
	CmdClearProtections  CommandType = "ClearProtections"
	CmdDisperse          CommandType = "Disperse"
	CmdAddTeam           CommandType = "AddTeam"
	CmdRenameTeam        CommandType = "RenameTeam"
	CmdRemoveTeam        CommandType = "RemoveTeam"
	CmdShuffleOrder      CommandType = "ShuffleOrder"
	CmdResetAll          CommandType = "ResetAll"
)

/*
	CmdSelectPlayer      -> EvtPlayerSelected
	CmdMakePick          -> EvtPickMade -> EvtTimerStarted
	CmdResetDraft        -> EvtDraftReset -> EvtTimerStarted
	CmdReplacePicks      -> EvtPicksReplaced (remote ledger, never persisted again)
	CmdChooseProtect     -> EvtDispersedChanged
	CmdSaveProtections   -> EvtProtectionsChanged (+ EvtDispersedChanged)
	CmdUnlockProtections -> EvtProtectionsChanged
	CmdClearProtections  -> EvtProtectionsChanged
	CmdDisperse          -> EvtDispersedChanged -> EvtProtectionsChanged
	CmdAddTeam / CmdRenameTeam / CmdRemoveTeam / CmdShuffleOrder -> EvtOrderChanged
	CmdResetAll          -> EvtAllReset -> EvtTimerStarted
*/

type Command struct {
	Type      CommandType
	OwnerID   string
	PlayerID  string
	PlayerIDs []string
	Password  string
	Index     int
	Name      string
	Picks     []models.Pick
}

type EventType string

const (
	EvtPlayerSelected     EventType = "PlayerSelected"
	EvtPickMade           EventType = "PickMade"
	EvtDraftReset         EventType = "DraftReset"
	EvtPicksReplaced      EventType = "PicksReplaced"
	EvtTimerStarted       EventType = "TimerStarted"
	EvtProtectionsChanged EventType = "ProtectionsChanged"
	EvtDispersedChanged   EventType = "DispersedChanged"
	EvtOrderChanged       EventType = "OrderChanged"
	EvtAllReset           EventType = "AllReset"
)

type Event struct {
	Type     EventType
	OwnerID  string
	PlayerID string
	Pick     *models.Pick
}

// Apply runs a command against s. The input state is never modified; on
// error the original state is returned unchanged.
func Apply(s State, cmd Command, env Env) ([]Event, State, error) {
	next := s.Clone()

	switch cmd.Type {
	case CmdSelectPlayer:
		entry, err := draftableEntry(next, cmd.PlayerID, env)
		if err != nil {
			return nil, s, err
		}
		next.Selected = entry.PlayerID
		return []Event{{Type: EvtPlayerSelected, PlayerID: entry.PlayerID}}, next, nil

	case CmdMakePick:
		playerID := cmd.PlayerID
		if playerID == "" {
			playerID = s.Selected
		}
		if playerID == "" {
			return nil, s, ErrNoSelection
		}

		teamID, err := CurrentDrafter(next.Order, next.CurrentPick())
		if err != nil {
			return nil, s, err
		}
		entry, err := draftableEntry(next, playerID, env)
		if err != nil {
			return nil, s, err
		}

		next.Picks = next.Picks.Append(entry.PlayerID, entry.OriginalOwnerID, teamID)
		next.Selected = ""
		next.Timer = Countdown{StartedAt: env.now(), Limit: env.Rules.PickTimeLimit}

		pick := next.Picks[len(next.Picks)-1]
		return []Event{
			{Type: EvtPickMade, PlayerID: pick.PlayerID, OwnerID: pick.OriginalOwnerID, Pick: &pick},
			{Type: EvtTimerStarted},
		}, next, nil

	case CmdResetDraft:
		next.Picks = Ledger{}
		next.Selected = ""
		next.Timer = Countdown{StartedAt: env.now(), Limit: env.Rules.PickTimeLimit}
		return []Event{{Type: EvtDraftReset}, {Type: EvtTimerStarted}}, next, nil

	case CmdReplacePicks:
		next.Picks = append(Ledger{}, cmd.Picks...)
		if next.Selected != "" {
			if _, err := draftableEntry(next, next.Selected, env); err != nil {
				next.Selected = ""
			}
		}
		return []Event{{Type: EvtPicksReplaced}}, next, nil

	case CmdChooseProtect:
		if err := checkOwner(cmd.OwnerID, env); err != nil {
			return nil, s, err
		}
		if !next.Dispersed.Has(cmd.OwnerID) {
			return nil, next, nil
		}
		delete(next.Dispersed, cmd.OwnerID)
		return []Event{{Type: EvtDispersedChanged, OwnerID: cmd.OwnerID}}, next, nil

	case CmdSaveProtections:
		return saveProtections(s, next, cmd, env)

	case CmdUnlockProtections:
		if err := checkOwner(cmd.OwnerID, env); err != nil {
			return nil, s, err
		}
		rec := next.Protections.Get(cmd.OwnerID)
		if !rec.IsLocked() {
			return nil, s, ErrNotLocked
		}
		if env.Hasher == nil || !env.Hasher.Verify(rec, cmd.Password) {
			return nil, s, ErrIncorrectPassword
		}
		next.Protections[cmd.OwnerID] = models.OpenProtection(rec.Players)
		return []Event{{Type: EvtProtectionsChanged, OwnerID: cmd.OwnerID}}, next, nil

	case CmdClearProtections:
		if err := checkOwner(cmd.OwnerID, env); err != nil {
			return nil, s, err
		}
		if next.Protections.Get(cmd.OwnerID).IsLocked() {
			return nil, s, ErrProtectionLocked
		}
		delete(next.Protections, cmd.OwnerID)
		return []Event{{Type: EvtProtectionsChanged, OwnerID: cmd.OwnerID}}, next, nil

	case CmdDisperse:
		if err := checkOwner(cmd.OwnerID, env); err != nil {
			return nil, s, err
		}
		if next.Protections.Get(cmd.OwnerID).IsLocked() {
			return nil, s, ErrProtectionLocked
		}
		next.Dispersed[cmd.OwnerID] = struct{}{}
		next.Protections[cmd.OwnerID] = models.OpenProtection([]string{})
		return []Event{
			{Type: EvtDispersedChanged, OwnerID: cmd.OwnerID},
			{Type: EvtProtectionsChanged, OwnerID: cmd.OwnerID},
		}, next, nil

	case CmdAddTeam:
		name := cmd.Name
		if name == "" {
			name = DefaultTeamName
		}
		next.Order = append(next.Order, name)
		return []Event{{Type: EvtOrderChanged}}, next, nil

	case CmdRenameTeam:
		if cmd.Index < 0 || cmd.Index >= len(next.Order) {
			return nil, s, ErrOrderIndex
		}
		next.Order[cmd.Index] = cmd.Name
		return []Event{{Type: EvtOrderChanged}}, next, nil

	case CmdRemoveTeam:
		if cmd.Index < 0 || cmd.Index >= len(next.Order) {
			return nil, s, ErrOrderIndex
		}
		next.Order = append(next.Order[:cmd.Index], next.Order[cmd.Index+1:]...)
		return []Event{{Type: EvtOrderChanged}}, next, nil

	case CmdShuffleOrder:
		r := env.Random
		if r == nil {
			r = random.New()
		}
		random.Shuffle(r, next.Order)
		return []Event{{Type: EvtOrderChanged}}, next, nil

	case CmdResetAll:
		fresh := NewState()
		fresh.Timer = Countdown{StartedAt: env.now(), Limit: env.Rules.PickTimeLimit}
		return []Event{{Type: EvtAllReset}, {Type: EvtTimerStarted}}, fresh, nil
	}

	return nil, s, ErrUnsupportedCommand
}

func saveProtections(s, next State, cmd Command, env Env) ([]Event, State, error) {
	if err := checkOwner(cmd.OwnerID, env); err != nil {
		return nil, s, err
	}
	if next.Protections.Get(cmd.OwnerID).IsLocked() {
		return nil, s, ErrProtectionLocked
	}
	if cmd.Password == "" {
		return nil, s, ErrPasswordRequired
	}

	players := dedupe(cmd.PlayerIDs)
	if env.League != nil {
		roster, _ := env.League.Roster(cmd.OwnerID)
		onRoster := make(map[string]struct{}, len(roster.PlayerIDs))
		for _, id := range roster.PlayerIDs {
			onRoster[id] = struct{}{}
		}
		for _, id := range players {
			if _, ok := onRoster[id]; !ok {
				return nil, s, ErrNotOnRoster
			}
		}
	}

	if _, err := CheckLimits(players, env.League, env.Rules.Limits); err != nil {
		return nil, s, err
	}

	if env.Hasher == nil {
		return nil, s, ErrPasswordRequired
	}
	rec, err := env.Hasher.Seal(players, cmd.Password)
	if err != nil {
		return nil, s, err
	}

	next.Protections[cmd.OwnerID] = rec
	events := []Event{{Type: EvtProtectionsChanged, OwnerID: cmd.OwnerID}}
	if next.Dispersed.Has(cmd.OwnerID) {
		delete(next.Dispersed, cmd.OwnerID)
		events = append(events, Event{Type: EvtDispersedChanged, OwnerID: cmd.OwnerID})
	}
	return events, next, nil
}

func draftableEntry(s State, playerID string, env Env) (PoolEntry, error) {
	entry, ok := FindInPool(env.Pool(s), playerID)
	if !ok {
		return PoolEntry{}, ErrNotInPool
	}
	limit := env.Rules.MaxPicksPerOriginalOwner
	if limit > 0 && s.Picks.CountFromOwner(entry.OriginalOwnerID) >= limit {
		return PoolEntry{}, ErrOwnerCapReached
	}
	return entry, nil
}

func checkOwner(ownerID string, env Env) error {
	if env.League == nil {
		return nil
	}
	if !env.League.HasOwner(ownerID) {
		return ErrUnknownOwner
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
