package searcher

import (
	"fmt"
	"sort"

	"conspiracy/game"

	"golang.org/x/exp/rand"
)

// MaxZoneTargets bounds how many territories a single zone card is tried on.
const MaxZoneTargets = 6

// candidates returns the actions worth simulating for the current player.
// Plays are ordered by static impact; interchangeable copies of a card are
// collapsed, zone targets are narrowed to the territories closest to capture,
// and end turn always comes last.
func candidates(gs *game.GameState, rules game.Rules) []game.Action {
	legal := gs.LegalActions(rules)
	if len(legal) == 0 {
		return nil
	}
	ps := gs.Current()
	targets := zoneTargets(gs, gs.CurrentPlayer)

	type scored struct {
		action game.Action
		impact float64
	}
	var plays []scored
	seen := make(map[string]bool)
	for _, a := range legal {
		if a.IsEnd() {
			continue
		}
		card := ps.Hand[ps.HandIndex(a.CardID)]
		if game.NeedsTarget(card.Type) && !targets[a.Target] {
			continue
		}
		key := fmt.Sprintf("%s/%d/%v/%s", card.Type, card.Cost, card.Effects, a.Target)
		if seen[key] {
			continue
		}
		seen[key] = true
		plays = append(plays, scored{action: a, impact: game.Impact(card)})
	}
	sort.SliceStable(plays, func(i, j int) bool {
		return plays[i].impact > plays[j].impact
	})

	out := make([]game.Action, 0, len(plays)+1)
	for _, p := range plays {
		out = append(out, p.action)
	}
	return append(out, game.EndTurnAction())
}

// zoneTargets picks the territories the player does not own that need the
// least additional pressure to capture. Opponent-held territories win ties.
func zoneTargets(gs *game.GameState, player game.PlayerID) map[string]bool {
	type target struct {
		id        string
		remaining int
		held      bool
	}
	var ts []target
	for _, id := range gs.Territories() {
		if gs.Players[player].Owns(id) {
			continue
		}
		owner, owned := gs.Owner(id)
		ts = append(ts, target{
			id:        id,
			remaining: gs.StateDefense[id] - game.NetPressure(gs, id, player),
			held:      owned && owner != player,
		})
	}
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].remaining != ts[j].remaining {
			return ts[i].remaining < ts[j].remaining
		}
		return ts[i].held && !ts[j].held
	})

	out := make(map[string]bool, MaxZoneTargets)
	for i := 0; i < len(ts) && i < MaxZoneTargets; i++ {
		out[ts[i].id] = true
	}
	return out
}

// RandomAction picks a legal action for the current player: each playable
// card and end turn are equally likely, and a targeted card gets a uniformly
// random territory. Returns false once the match is over.
func RandomAction(gs *game.GameState, rules game.Rules, rng *rand.Rand) (game.Action, bool) {
	legal := gs.LegalActions(rules)
	if len(legal) == 0 {
		return game.Action{}, false
	}
	var cards []string
	targets := make(map[string][]string)
	for _, a := range legal {
		if a.IsEnd() {
			continue
		}
		if _, ok := targets[a.CardID]; !ok {
			cards = append(cards, a.CardID)
		}
		targets[a.CardID] = append(targets[a.CardID], a.Target)
	}
	i := rng.Intn(len(cards) + 1)
	if i == len(cards) {
		return game.EndTurnAction(), true
	}
	ts := targets[cards[i]]
	return game.PlayCardAction(cards[i], ts[rng.Intn(len(ts))]), true
}
