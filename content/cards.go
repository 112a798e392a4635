// Package content supplies card records to the rules engine: a strict JSON
// loader for authored card sets and the built-in starter decks.
package content

import (
	"encoding/json"
	"fmt"
	"io"

	"conspiracy/game"
)

// LoadCards decodes a JSON array of cards. Every card's effects are checked
// against the whitelist of its type; ids must be unique.
func LoadCards(r io.Reader) ([]game.Card, error) {
	var cards []game.Card
	if err := json.NewDecoder(r).Decode(&cards); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}
	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate card id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return cards, nil
}

// ByFaction filters cards to one faction, keeping their order.
func ByFaction(cards []game.Card, f game.Faction) []game.Card {
	var out []game.Card
	for _, c := range cards {
		if c.Faction == f {
			out = append(out, c)
		}
	}
	return out
}
