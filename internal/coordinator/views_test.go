package coordinator

import (
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/draft"
)

func (s *CoordinatorSuite) TestLeagueViewStatuses() {
	c := s.newCoordinator()
	s.dispatch(c, draft.Command{Type: draft.CmdAddTeam, Name: "Expansion A"})
	s.dispatch(c, draft.Command{Type: draft.CmdAddTeam, Name: "Expansion B"})
	s.dispatch(c, draft.Command{Type: draft.CmdSaveProtections, OwnerID: "o1", PlayerIDs: []string{"q1"}, Password: "pw"})
	s.dispatch(c, draft.Command{Type: draft.CmdDisperse, OwnerID: "o3"})
	s.dispatch(c, draft.Command{Type: draft.CmdMakePick, PlayerID: "r2"})

	view := c.LeagueView()
	s.Require().Len(view.Owners, 3)

	o1 := view.Owners[0]
	s.Equal("Alice", o1.OwnerName)
	s.Equal(draft.StatusProtecting, o1.Status)
	s.True(o1.Locked)
	s.Equal("q1", o1.Players[0].ID, "QBs sort first, best rank first")
	s.Equal(PlayerProtected, o1.Players[0].Status)
	s.Equal(PlayerAvailable, o1.Players[1].Status)

	o2 := view.Owners[1]
	s.Equal(draft.StatusUndecided, o2.Status)
	s.Equal(1, o2.PicksLost)
	var drafted *LeaguePlayer
	for i := range o2.Players {
		if o2.Players[i].ID == "r2" {
			drafted = &o2.Players[i]
		}
	}
	s.Require().NotNil(drafted)
	s.Equal(PlayerDrafted, drafted.Status)
	s.Equal("Expansion A", drafted.DraftedBy)
	s.Equal("1.01", drafted.PickLabel)

	s.Equal(draft.StatusDispersed, view.Owners[2].Status)
}

func (s *CoordinatorSuite) TestProtectionViewCounts() {
	c := s.newCoordinator()
	s.dispatch(c, draft.Command{Type: draft.CmdSaveProtections, OwnerID: "o3", PlayerIDs: []string{"w2", "x1", "db1"}, Password: "pw"})

	view, err := c.ProtectionView("o3")
	s.Require().NoError(err)
	s.Equal("Cara", view.OwnerName)
	s.Equal("locked", view.State)
	s.True(view.Valid)
	s.Empty(view.Overages)

	counts := map[draft.Bucket]BucketCount{}
	for _, bc := range view.Counts {
		counts[bc.Bucket] = bc
	}
	s.Equal(1, counts[draft.BucketWR].Count)
	s.Equal(3, counts[draft.BucketWR].Limit)
	s.Equal(1, counts[draft.BucketIDP].Count)
	s.Equal(1, counts[draft.BucketUnclassified].Count)
	s.Equal(-1, counts[draft.BucketUnclassified].Limit)

	protected := 0
	for _, p := range view.Players {
		if p.Protected {
			protected++
		}
	}
	s.Equal(3, protected)

	_, err = c.ProtectionView("nobody")
	s.ErrorIs(err, draft.ErrUnknownOwner)

	empty, err := c.ProtectionView("o2")
	s.Require().NoError(err)
	s.Equal("unset", empty.State)
	s.Equal(draft.StatusUndecided, empty.Status)
}

func (s *CoordinatorSuite) TestOrderViewListsDispersedHints() {
	c := s.newCoordinator()
	s.dispatch(c, draft.Command{Type: draft.CmdDisperse, OwnerID: "o2"})
	s.dispatch(c, draft.Command{Type: draft.CmdAddTeam})

	view := c.OrderView()
	s.Equal([]string{draft.DefaultTeamName}, view.Order)
	s.Equal([]OwnerHint{{OwnerID: "o2", OwnerName: "Bob"}}, view.DispersedHints)
}

func (s *CoordinatorSuite) TestDraftViewTimerAndLabels() {
	c := s.newCoordinator()
	for _, name := range []string{"A", "B"} {
		s.dispatch(c, draft.Command{Type: draft.CmdAddTeam, Name: name})
	}

	view := c.DraftView(s.clock.Now())
	s.Equal(1, view.PickNumber)
	s.Equal("1.01", view.PickLabel)
	s.Equal("A", view.OnTheClock)
	s.True(view.Timer.Active)
	s.Equal("10:00", view.Timer.Clock)

	s.dispatch(c, draft.Command{Type: draft.CmdMakePick, PlayerID: "q1"})
	s.dispatch(c, draft.Command{Type: draft.CmdSelectPlayer, PlayerID: "w2"})

	view = c.DraftView(s.clock.Now().Add(11 * time.Minute))
	s.Equal(2, view.PickNumber)
	s.Equal("1.02", view.PickLabel)
	s.Equal("B", view.OnTheClock)
	s.True(view.Timer.Expired)
	s.Equal(0, view.Timer.RemainingSeconds)
	s.Require().NotNil(view.Selected)
	s.Equal("w2", view.Selected.PlayerID)
	s.Require().Len(view.Picks, 1)
	s.Equal("Quarter One", view.Picks[0].PlayerName)
	s.Equal("Alice", view.Picks[0].OwnerName)
	s.Equal("1.01", view.Picks[0].Label)
}

func (s *CoordinatorSuite) TestDraftViewWithoutOrder() {
	c := s.newCoordinator()
	view := c.DraftView(s.clock.Now())
	s.Empty(view.OnTheClock)
	s.Empty(view.PickLabel)
	s.NotNil(view.Picks)
}

func (s *CoordinatorSuite) TestPoolFilterAndBoard() {
	c := s.newCoordinator()
	s.dispatch(c, draft.Command{Type: draft.CmdAddTeam, Name: "A"})
	s.dispatch(c, draft.Command{Type: draft.CmdMakePick, PlayerID: "q1"})
	s.dispatch(c, draft.Command{Type: draft.CmdMakePick, PlayerID: "q2"})
	s.dispatch(c, draft.Command{Type: draft.CmdMakePick, PlayerID: "d1"})

	qbs := c.Pool("QB")
	s.Empty(qbs)
	s.NotEmpty(c.Pool(draft.AllPositions))
	s.NotNil(c.Pool("K"))

	boards := c.Board()
	s.Require().Len(boards, 1)
	b := boards[0]
	s.Equal("A", b.TeamID)
	s.Require().Len(b.Slots, len(draft.DefaultSlots()))
	s.Equal("q1", b.Slots[0].Pick.PlayerID)
	s.Equal(draft.SlotSuperflex, b.Slots[9].Slot)
	s.Equal("q2", b.Slots[9].Pick.PlayerID)
	for _, slot := range b.Slots {
		if slot.Pick != nil {
			s.NotEqual("d1", slot.Pick.PlayerID, "DE never fills DL")
		}
	}
}
