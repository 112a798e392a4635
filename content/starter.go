package content

import (
	"fmt"

	"golang.org/x/exp/rand"

	"conspiracy/game"
)

const (
	StartingIP    = 10
	StartingTruth = 50
	DeckCopies    = 3
)

var truthTemplates = []game.Card{
	game.MustCard("leaked-memo", "Leaked Memo", game.TruthFaction, game.Common, 2, game.MediaEffect{TruthDelta: 3}),
	game.MustCard("viral-thread", "Viral Thread", game.TruthFaction, game.Common, 1, game.MediaEffect{TruthDelta: 2}),
	game.MustCard("pirate-broadcast", "Pirate Broadcast", game.TruthFaction, game.Rare, 5, game.MediaEffect{TruthDelta: 6}),
	game.MustCard("town-hall", "Town Hall Uprising", game.TruthFaction, game.Common, 2, game.ZoneEffect{PressureDelta: 2}),
	game.MustCard("grassroots", "Grassroots Network", game.TruthFaction, game.Uncommon, 3, game.ZoneEffect{PressureDelta: 3}),
	game.MustCard("foia-flood", "FOIA Flood", game.TruthFaction, game.Uncommon, 3, game.AttackEffect{IPDelta: 3, DiscardOpponent: 1}),
	game.MustCard("whistleblower", "Whistleblower", game.TruthFaction, game.Legendary, 6, game.AttackEffect{IPDelta: 6, DiscardOpponent: 2}),
	game.MustCard("tinfoil", "Tinfoil Lining", game.TruthFaction, game.Common, 0, game.DefensiveEffect{}),
}

var governmentTemplates = []game.Card{
	game.MustCard("press-briefing", "Press Briefing", game.GovernmentFaction, game.Common, 2, game.MediaEffect{TruthDelta: 3}),
	game.MustCard("weather-balloon", "Weather Balloon", game.GovernmentFaction, game.Common, 1, game.MediaEffect{TruthDelta: 2}),
	game.MustCard("national-address", "National Address", game.GovernmentFaction, game.Rare, 5, game.MediaEffect{TruthDelta: 6}),
	game.MustCard("black-helicopters", "Black Helicopters", game.GovernmentFaction, game.Common, 2, game.ZoneEffect{PressureDelta: 2}),
	game.MustCard("field-office", "Field Office", game.GovernmentFaction, game.Uncommon, 3, game.ZoneEffect{PressureDelta: 3}),
	game.MustCard("audit-notice", "Audit Notice", game.GovernmentFaction, game.Uncommon, 3, game.AttackEffect{IPDelta: 3, DiscardOpponent: 1}),
	game.MustCard("men-in-black", "Men in Black", game.GovernmentFaction, game.Legendary, 6, game.AttackEffect{IPDelta: 6, DiscardOpponent: 2}),
	game.MustCard("plausible-deniability", "Plausible Deniability", game.GovernmentFaction, game.Common, 0, game.DefensiveEffect{}),
}

// Templates returns the starter card templates of a faction.
func Templates(f game.Faction) []game.Card {
	if f == game.TruthFaction {
		return append([]game.Card(nil), truthTemplates...)
	}
	return append([]game.Card(nil), governmentTemplates...)
}

// BuildDeck makes copies of every template with unique instance ids
// ("leaked-memo#2") and shuffles them with the given source.
func BuildDeck(templates []game.Card, copies int, rng *rand.Rand) []game.Card {
	deck := make([]game.Card, 0, len(templates)*copies)
	for n := 1; n <= copies; n++ {
		for _, tpl := range templates {
			c := tpl
			c.ID = fmt.Sprintf("%s#%d", tpl.ID, n)
			deck = append(deck, c)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// StandardSetup seats the truth faction as P1 and the government as P2 on the
// default board, each with a shuffled starter deck.
func StandardSetup(seed uint64) game.Setup {
	return NewSetup(truthTemplates, governmentTemplates, seed)
}

// NewSetup builds a default-board setup from per-faction templates, dealing
// DeckCopies of each into a shuffled deck.
func NewSetup(truth, government []game.Card, seed uint64) game.Setup {
	rng := rand.New(rand.NewSource(seed))
	return game.Setup{
		Truth: StartingTruth,
		First: game.P1,
		P1: game.PlayerSetup{
			Faction: game.TruthFaction,
			IP:      StartingIP,
			Deck:    BuildDeck(truth, DeckCopies, rng),
		},
		P2: game.PlayerSetup{
			Faction: game.GovernmentFaction,
			IP:      StartingIP,
			Deck:    BuildDeck(government, DeckCopies, rng),
		},
	}
}

// SetupFromCards splits a loaded card set by faction and builds a setup from it.
func SetupFromCards(cards []game.Card, seed uint64) (game.Setup, error) {
	truth, government := ByFaction(cards, game.TruthFaction), ByFaction(cards, game.GovernmentFaction)
	if len(truth) == 0 || len(government) == 0 {
		return game.Setup{}, fmt.Errorf("card set needs cards for both factions, got %d truth and %d government", len(truth), len(government))
	}
	return NewSetup(truth, government, seed), nil
}
