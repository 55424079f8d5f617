package draft

import (
	"sort"

	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// BoardSlot is one lineup spot on a team's draft board. Pick is nil when empty.
type BoardSlot struct {
	Slot Slot         `json:"slot"`
	Pick *models.Pick `json:"pick,omitempty"`
}

// FillSlots places a team's picks into the slot template in pick order.
// Each pick takes the first empty slot that accepts its position; picks that
// fit nowhere are left off the board.
func FillSlots(picks []models.Pick, players PlayerLookup, template []Slot) []BoardSlot {
	board := make([]BoardSlot, len(template))
	for i, s := range template {
		board[i] = BoardSlot{Slot: s}
	}

	ordered := make([]models.Pick, len(picks))
	copy(ordered, picks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PickNumber < ordered[j].PickNumber
	})

	for i := range ordered {
		pos := players.Player(ordered[i].PlayerID).Position
		for j := range board {
			if board[j].Pick == nil && board[j].Slot.Accepts(pos) {
				pick := ordered[i]
				board[j].Pick = &pick
				break
			}
		}
	}
	return board
}
