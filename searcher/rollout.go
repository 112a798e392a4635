package searcher

import (
	"conspiracy/experiments/metrics"
	"conspiracy/game"

	"golang.org/x/exp/rand"
)

// DefaultRolloutCutoff is the number of random actions a rollout plays
// before the value function takes over.
const DefaultRolloutCutoff = 8

// rollout plays random actions from gs for both sides and scores the result
// for actor. gs is never modified.
func (b *Beam) rollout(gs *game.GameState, rules game.Rules, actor game.PlayerID, d Difficulty, rng *rand.Rand, m metrics.Collector) float64 {
	sim := gs.Clone()
	conceal(sim, actor, d.PeekTopCard, rng)

	for depth := 0; depth < b.cutoff && sim.Won == ""; depth++ {
		if sim.Phase == game.StartPhase {
			if err := game.StartTurn(sim, rules); err != nil {
				break
			}
		}
		action, ok := RandomAction(sim, rules, rng)
		if !ok {
			break
		}
		if err := game.Apply(sim, rules, action); err != nil {
			break
		}
	}
	m.AddRollout()
	return b.evaluate(sim, rules, actor, d.Weights())
}

// conceal replaces what actor cannot know with a random guess: the
// opponent's hand and deck are redealt from their combined pool, and the
// actor's own deck is shuffled unless peeking is allowed.
func conceal(gs *game.GameState, actor game.PlayerID, peek bool, rng *rand.Rand) {
	opp := gs.Players[actor.Opponent()]
	pool := append(append([]game.Card{}, opp.Hand...), opp.Deck...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	n := len(opp.Hand)
	opp.Hand = pool[:n:n]
	opp.Deck = pool[n:]

	if !peek {
		own := gs.Players[actor]
		rng.Shuffle(len(own.Deck), func(i, j int) { own.Deck[i], own.Deck[j] = own.Deck[j], own.Deck[i] })
	}
}
