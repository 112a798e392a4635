package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func zoneCard(id string, delta int) Card {
	return MustCard(id, "Zone "+id, TruthFaction, Common, 1, ZoneEffect{PressureDelta: delta})
}

func mediaCard(id string, delta int) Card {
	return MustCard(id, "Media "+id, TruthFaction, Common, 0, MediaEffect{TruthDelta: delta})
}

func attackCard(id string, ip, discard int) Card {
	return MustCard(id, "Attack "+id, GovernmentFaction, Uncommon, 2, AttackEffect{IPDelta: ip, DiscardOpponent: discard})
}

var testTerritories = map[string]int{"OH": 3, "TX": 4, "CA": 2}

// newTestState returns a started turn for P1 (truth, 10 IP) vs P2 (government, 10 IP).
func newTestState(t *testing.T, p1Hand, p2Hand []Card) (*GameState, Rules) {
	t.Helper()
	rules := NewStandardRules()
	gs, err := NewGameState(Setup{
		Territories: testTerritories,
		Truth:       50,
		P1:          PlayerSetup{Faction: TruthFaction, IP: 10, Hand: p1Hand},
		P2:          PlayerSetup{Faction: GovernmentFaction, IP: 10, Hand: p2Hand},
	})
	require.NoError(t, err, "Setup should be valid")
	require.NoError(t, StartTurn(gs, rules), "First turn should start")
	return gs, rules
}
