package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"conspiracy/game"
)

func TestLoadCards(t *testing.T) {
	t.Run("loading a valid card set", func(t *testing.T) {
		raw := `[
			{"id":"memo","name":"Memo","faction":"truth","type":"MEDIA","rarity":"common","cost":1,"effects":{"truthDelta":2}},
			{"id":"raid","name":"Raid","faction":"government","type":"ATTACK","rarity":"rare","cost":4,"effects":{"ipDelta":{"opponent":4},"discardOpponent":2}}
		]`

		cards, err := LoadCards(strings.NewReader(raw))

		require.NoError(t, err)
		require.Len(t, cards, 2)
		require.Equal(t, game.AttackEffect{IPDelta: 4, DiscardOpponent: 2}, cards[1].Effects)
		require.Equal(t, []game.Card{cards[0]}, ByFaction(cards, game.TruthFaction))
	})

	t.Run("rejecting cards with unknown effect keys", func(t *testing.T) {
		raw := `[{"id":"memo","name":"Memo","faction":"truth","type":"MEDIA","cost":1,"effects":{"truthDelta":2,"ipDelta":{"opponent":1}}}]`

		_, err := LoadCards(strings.NewReader(raw))

		require.ErrorIs(t, err, game.ErrInvalidEffectSchema)
	})

	t.Run("rejecting duplicate ids", func(t *testing.T) {
		raw := `[
			{"id":"memo","faction":"truth","type":"MEDIA","cost":1,"effects":{"truthDelta":2}},
			{"id":"memo","faction":"truth","type":"MEDIA","cost":1,"effects":{"truthDelta":3}}
		]`

		_, err := LoadCards(strings.NewReader(raw))

		require.Error(t, err)
	})
}

func TestStarterDecks(t *testing.T) {
	t.Run("building unique instance ids", func(t *testing.T) {
		deck := BuildDeck(Templates(game.TruthFaction), 2, rand.New(rand.NewSource(1)))

		seen := map[string]bool{}
		for _, c := range deck {
			require.False(t, seen[c.ID], "Duplicate id %s", c.ID)
			seen[c.ID] = true
			require.NoError(t, c.Validate())
		}
		require.Len(t, deck, 2*len(Templates(game.TruthFaction)))
	})

	t.Run("standard setup is reproducible from its seed", func(t *testing.T) {
		a, err := game.NewGameState(StandardSetup(7))
		require.NoError(t, err)
		b, err := game.NewGameState(StandardSetup(7))
		require.NoError(t, err)

		require.Equal(t, a, b)
		require.Equal(t, game.TruthFaction, a.Players[game.P1].Faction)
		require.Equal(t, StartingIP, a.Players[game.P2].IP)
	})

	t.Run("loaded card sets replace the starter decks", func(t *testing.T) {
		cards := append(Templates(game.TruthFaction)[:2], Templates(game.GovernmentFaction)[:3]...)
		setup, err := SetupFromCards(cards, 3)
		require.NoError(t, err)
		require.Len(t, setup.P1.Deck, 2*DeckCopies)
		require.Len(t, setup.P2.Deck, 3*DeckCopies)

		_, err = SetupFromCards(Templates(game.TruthFaction), 3)
		require.Error(t, err, "Both factions need cards")
	})
}
