package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ProtectionState discriminates the ProtectionRecord variants
type ProtectionState int

const (
	ProtectionUnset ProtectionState = iota
	ProtectionOpen
	ProtectionLocked
)

func (s ProtectionState) String() string {
	switch s {
	case ProtectionOpen:
		return "open"
	case ProtectionLocked:
		return "locked"
	default:
		return "unset"
	}
}

// ProtectionRecord is an owner's declared protected player list.
// A Locked record can only change through a successful unlock.
type ProtectionRecord struct {
	State   ProtectionState
	Players []string
	// PasswordHash is a bcrypt hash of the lock password
	PasswordHash string
	// LegacyPassword holds a plaintext password, read from older stored data or
	// written in plaintext storage mode
	LegacyPassword string
}

// OpenProtection builds an unlocked record
func OpenProtection(players []string) ProtectionRecord {
	return ProtectionRecord{State: ProtectionOpen, Players: cloneStrings(players)}
}

// LockedProtection builds a locked record
func LockedProtection(players []string, passwordHash string) ProtectionRecord {
	return ProtectionRecord{State: ProtectionLocked, Players: cloneStrings(players), PasswordHash: passwordHash}
}

// PlaintextLockedProtection builds a locked record holding the password as
// older clients store it
func PlaintextLockedProtection(players []string, password string) ProtectionRecord {
	return ProtectionRecord{State: ProtectionLocked, Players: cloneStrings(players), LegacyPassword: password}
}

// IsLocked reports whether the record is locked
func (r ProtectionRecord) IsLocked() bool {
	return r.State == ProtectionLocked
}

// Clone returns a deep copy
func (r ProtectionRecord) Clone() ProtectionRecord {
	r.Players = cloneStrings(r.Players)
	return r
}

type protectionWire struct {
	Players        []string `json:"players"`
	Locked         bool     `json:"locked"`
	PasswordHash   string   `json:"passwordHash,omitempty"`
	LegacyPassword string   `json:"_password,omitempty"`
	LegacyLocked   bool     `json:"_locked,omitempty"`
}

type protectionLegacyWire struct {
	Players      []string `json:"players"`
	Locked       *bool    `json:"locked"`
	LegacyLocked *bool    `json:"_locked"`
	PasswordHash string   `json:"passwordHash"`
	Password     string   `json:"password"`
	LegacyPass   string   `json:"_password"`
}

// MarshalJSON writes {players, locked, passwordHash}. Locked records also carry
// _locked (and _password when stored in plaintext) for older clients. Unset
// records encode as null.
func (r ProtectionRecord) MarshalJSON() ([]byte, error) {
	if r.State == ProtectionUnset {
		return []byte("null"), nil
	}
	w := protectionWire{Players: r.Players, Locked: r.IsLocked()}
	if w.Players == nil {
		w.Players = []string{}
	}
	if r.IsLocked() {
		w.PasswordHash = r.PasswordHash
		w.LegacyPassword = r.LegacyPassword
		w.LegacyLocked = true
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts the current object form, a bare player list and the
// older {players, _password, _locked} shape.
func (r *ProtectionRecord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ProtectionRecord{}
		return nil
	}

	if data[0] == '[' {
		var players []string
		if err := json.Unmarshal(data, &players); err != nil {
			return err
		}
		*r = OpenProtection(players)
		return nil
	}

	var w protectionLegacyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	locked := false
	if w.Locked != nil {
		locked = *w.Locked
	} else if w.LegacyLocked != nil {
		locked = *w.LegacyLocked
	}

	if !locked {
		*r = OpenProtection(w.Players)
		return nil
	}

	rec := LockedProtection(w.Players, w.PasswordHash)
	if rec.PasswordHash == "" {
		rec.LegacyPassword = w.LegacyPass
		if rec.LegacyPassword == "" {
			rec.LegacyPassword = w.Password
		}
	}
	*r = rec
	return nil
}

// Protections maps owner IDs to their protection record. A missing entry is Unset.
type Protections map[string]ProtectionRecord

// Get returns the record for ownerID, Unset when absent
func (p Protections) Get(ownerID string) ProtectionRecord {
	if rec, ok := p[ownerID]; ok {
		return rec
	}
	return ProtectionRecord{}
}

// Clone returns a deep copy
func (p Protections) Clone() Protections {
	out := make(Protections, len(p))
	for k, v := range p {
		out[k] = v.Clone()
	}
	return out
}

// UnmarshalJSON drops null entries so that absence stays the only Unset form
func (p *Protections) UnmarshalJSON(data []byte) error {
	var raw map[string]ProtectionRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Protections, len(raw))
	for k, v := range raw {
		if v.State != ProtectionUnset {
			out[k] = v
		}
	}
	*p = out
	return nil
}

// DispersedSet is the set of owners whose rosters are fully released
type DispersedSet map[string]struct{}

// NewDispersedSet builds a set from owner IDs
func NewDispersedSet(ownerIDs ...string) DispersedSet {
	s := make(DispersedSet, len(ownerIDs))
	for _, id := range ownerIDs {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership
func (s DispersedSet) Has(ownerID string) bool {
	_, ok := s[ownerID]
	return ok
}

// List returns the members in sorted order
func (s DispersedSet) List() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clone returns a copy
func (s DispersedSet) Clone() DispersedSet {
	out := make(DispersedSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// MarshalJSON writes the set as a sorted list
func (s DispersedSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

// UnmarshalJSON reads a list of owner IDs
func (s *DispersedSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewDispersedSet(ids...)
	return nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
