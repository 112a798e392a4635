package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlayCard(t *testing.T) {
	t.Run("capturing OH with two zone plays", func(t *testing.T) {
		gs, rules := newTestState(t, []Card{zoneCard("z1", 2), zoneCard("z2", 2)}, nil)

		require.NoError(t, PlayCard(gs, rules, "z1", "OH", 1))
		require.Equal(t, 2, gs.Pressure["OH"].P1)
		require.False(t, gs.Players[P1].Owns("OH"), "OH should not be owned yet")

		require.NoError(t, PlayCard(gs, rules, "z2", "OH", 1))
		require.True(t, gs.Players[P1].Owns("OH"), "Net pressure 4 should capture defense 3")
		require.Equal(t, Pressure{}, gs.Pressure["OH"], "Both OH counters should reset")
		require.Equal(t, 8, gs.Players[P1].IP, "Each play should cost 1 IP")
		require.Equal(t, 2, gs.PlaysThisTurn)
		require.Len(t, gs.TurnPlays, 2)
		require.Len(t, gs.Players[P1].Discard, 2)
	})

	t.Run("rejecting a fourth play with a limit of three", func(t *testing.T) {
		hand := []Card{mediaCard("m1", 1), mediaCard("m2", 1), mediaCard("m3", 1), mediaCard("m4", 1)}
		gs, rules := newTestState(t, hand, nil)
		for _, id := range []string{"m1", "m2", "m3"} {
			require.NoError(t, PlayCard(gs, rules, id, "", 1))
		}

		err := PlayCard(gs, rules, "m4", "", 1)

		require.ErrorIs(t, err, ErrIllegalAction)
		require.Equal(t, 3, gs.PlaysThisTurn, "Rejected play should not count")
		require.Equal(t, 53, gs.Truth)
		require.Len(t, gs.Players[P1].Hand, 1)
	})

	t.Run("rejecting unaffordable plays without mutation", func(t *testing.T) {
		expensive := MustCard("big", "Big", TruthFaction, Rare, 11, MediaEffect{TruthDelta: 9})
		gs, rules := newTestState(t, []Card{expensive}, nil)
		before := gs.Clone()

		err := PlayCard(gs, rules, "big", "", 1)

		require.ErrorIs(t, err, ErrIllegalAction)
		require.Equal(t, before, gs)
	})

	t.Run("rejecting cards not in hand and missing targets", func(t *testing.T) {
		gs, rules := newTestState(t, []Card{zoneCard("z", 1)}, nil)

		require.ErrorIs(t, PlayCard(gs, rules, "nope", "", 1), ErrIllegalAction)
		require.ErrorIs(t, PlayCard(gs, rules, "z", "", 1), ErrIllegalAction)
		require.Equal(t, 0, gs.PlaysThisTurn)
	})

	t.Run("rejecting plays outside the ACT phase", func(t *testing.T) {
		gs, rules := newTestState(t, []Card{mediaCard("m", 1)}, nil)
		gs.Phase = StartPhase

		require.ErrorIs(t, PlayCard(gs, rules, "m", "", 1), ErrIllegalAction)
	})

	t.Run("declaring a winner when truth crosses the threshold", func(t *testing.T) {
		gs, rules := newTestState(t, []Card{mediaCard("m", 9)}, nil)
		gs.Truth = 85

		require.NoError(t, PlayCard(gs, rules, "m", "", 1))

		require.Equal(t, P1, gs.Winner())
		require.ErrorIs(t, EndTurn(gs, rules, nil), ErrIllegalAction, "Finished matches accept no actions")
	})
}

func TestStartTurn(t *testing.T) {
	deck := func() []Card {
		return []Card{mediaCard("d1", 1), mediaCard("d2", 1), mediaCard("d3", 1), mediaCard("d4", 1), mediaCard("d5", 1), mediaCard("d6", 1)}
	}

	t.Run("drawing up to the hand ceiling", func(t *testing.T) {
		rules := NewStandardRules()
		gs, err := NewGameState(Setup{
			Territories: testTerritories,
			Truth:       50,
			P1:          PlayerSetup{Faction: TruthFaction, IP: 10, Deck: deck(), Hand: []Card{mediaCard("h", 1)}},
			P2:          PlayerSetup{Faction: GovernmentFaction, IP: 10},
		})
		require.NoError(t, err)

		require.NoError(t, StartTurn(gs, rules))

		require.Len(t, gs.Players[P1].Hand, 5)
		require.Equal(t, "d1", gs.Players[P1].Hand[1].ID, "Cards should come off the top of the deck")
		require.Len(t, gs.Players[P1].Deck, 2)
		require.Equal(t, ActPhase, gs.Phase)
	})

	t.Run("drawing a fixed count", func(t *testing.T) {
		rules := NewStandardRules()
		rules.DrawMode = DrawFixed
		rules.DrawCount = 2
		gs, err := NewGameState(Setup{
			Territories: testTerritories,
			P1:          PlayerSetup{Faction: TruthFaction, Deck: deck()},
			P2:          PlayerSetup{Faction: GovernmentFaction},
		})
		require.NoError(t, err)

		require.NoError(t, StartTurn(gs, rules))

		require.Len(t, gs.Players[P1].Hand, 2)
	})

	t.Run("stopping on an exhausted deck", func(t *testing.T) {
		gs, _ := newTestState(t, nil, nil)

		require.Empty(t, gs.Players[P1].Hand)
		require.Equal(t, ActPhase, gs.Phase)
	})

	t.Run("refusing to start twice", func(t *testing.T) {
		gs, rules := newTestState(t, nil, nil)

		require.ErrorIs(t, StartTurn(gs, rules), ErrIllegalAction)
	})
}

func TestEndTurn(t *testing.T) {
	t.Run("granting income and handing over", func(t *testing.T) {
		gs, rules := newTestState(t, nil, nil)
		gs.Players[P1].States["CA"] = true

		require.NoError(t, EndTurn(gs, rules, nil))

		require.Equal(t, 16, gs.Players[P1].IP, "Base income plus one state")
		require.Equal(t, 15, gs.Players[P2].IP)
		require.Equal(t, P2, gs.CurrentPlayer)
		require.Equal(t, 2, gs.Turn)
		require.Equal(t, StartPhase, gs.Phase)
		require.Zero(t, gs.PlaysThisTurn)
		require.Empty(t, gs.TurnPlays)
	})

	t.Run("discarding chosen cards", func(t *testing.T) {
		gs, rules := newTestState(t, []Card{mediaCard("a", 1), mediaCard("b", 1)}, nil)

		require.NoError(t, EndTurn(gs, rules, []string{"b"}))

		require.Equal(t, "a", gs.Players[P1].Hand[0].ID)
		require.Equal(t, "b", gs.Players[P1].Discard[0].ID)
	})

	t.Run("rejecting unknown discards before any change", func(t *testing.T) {
		gs, rules := newTestState(t, []Card{mediaCard("a", 1)}, nil)
		before := gs.Clone()

		require.ErrorIs(t, EndTurn(gs, rules, []string{"zzz"}), ErrIllegalAction)
		require.ErrorIs(t, EndTurn(gs, rules, []string{"a", "a"}), ErrIllegalAction)
		require.Equal(t, before, gs)
	})

	t.Run("requiring the ACT phase", func(t *testing.T) {
		gs, rules := newTestState(t, nil, nil)
		require.NoError(t, EndTurn(gs, rules, nil))
		before := gs.Clone()

		require.ErrorIs(t, EndTurn(gs, rules, nil), ErrIllegalAction, "START must run before the turn can end")
		require.Equal(t, before, gs)
		require.Empty(t, gs.LegalActions(rules))
	})

	t.Run("applying a pending skip to the next player", func(t *testing.T) {
		gs, rules := newTestState(t, nil, []Card{mediaCard("m", 1)})
		QueueSkip(gs, P2, 1)

		require.NoError(t, EndTurn(gs, rules, nil))
		require.True(t, gs.ActionsBlocked)
		require.Zero(t, gs.SkipActions[P2], "Skip counter should be consumed")

		require.NoError(t, StartTurn(gs, rules))
		require.ErrorIs(t, PlayCard(gs, rules, "m", "", 1), ErrIllegalAction, "Skipped player cannot act")
		require.Equal(t, []Action{EndTurnAction()}, gs.LegalActions(rules))

		require.NoError(t, EndTurn(gs, rules, nil), "Ending a skipped turn is allowed")
		require.False(t, gs.ActionsBlocked)
	})
}

func TestLegalActions(t *testing.T) {
	t.Run("listing affordable plays per target plus end turn", func(t *testing.T) {
		expensive := MustCard("big", "Big", TruthFaction, Rare, 11, MediaEffect{TruthDelta: 9})
		gs, rules := newTestState(t, []Card{zoneCard("z", 1), mediaCard("m", 1), expensive}, nil)

		actions := gs.LegalActions(rules)

		require.Equal(t, []Action{
			PlayCardAction("z", "CA"),
			PlayCardAction("z", "OH"),
			PlayCardAction("z", "TX"),
			PlayCardAction("m", ""),
			EndTurnAction(),
		}, actions)
	})

	t.Run("only ending once the limit is reached", func(t *testing.T) {
		gs, rules := newTestState(t, []Card{mediaCard("m", 1)}, nil)
		gs.PlaysThisTurn = rules.MaxPlaysPerTurn

		require.Equal(t, []Action{EndTurnAction()}, gs.LegalActions(rules))
	})
}

func TestApply(t *testing.T) {
	t.Run("rejecting an unknown action kind", func(t *testing.T) {
		gs, rules := newTestState(t, []Card{mediaCard("m", 1)}, nil)
		before := gs.Clone()

		err := Apply(gs, rules, Action{Kind: ActionKind(9), CardID: "m"})

		require.ErrorIs(t, err, ErrIllegalAction)
		require.Equal(t, before, gs)
	})
}

func TestPlay(t *testing.T) {
	t.Run("returning a new state and leaving the receiver alone", func(t *testing.T) {
		gs, rules := newTestState(t, []Card{zoneCard("z", 2)}, nil)

		next, err := gs.Play(rules, PlayCardAction("z", "OH"))

		require.NoError(t, err)
		require.Equal(t, 2, next.Pressure["OH"].P1)
		require.Zero(t, gs.Pressure["OH"].P1)
		require.Len(t, gs.Players[P1].Hand, 1)
	})

	t.Run("returning the rejection", func(t *testing.T) {
		gs, rules := newTestState(t, nil, nil)

		next, err := gs.Play(rules, PlayCardAction("z", "OH"))

		require.ErrorIs(t, err, ErrIllegalAction)
		require.Nil(t, next)
	})
}
