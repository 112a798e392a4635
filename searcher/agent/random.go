package agent

import (
	"context"
	"sync"

	"conspiracy/experiments/metrics"
	"conspiracy/game"
	"conspiracy/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly random legal
// actions until it picks end turn.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindActions(ctx context.Context, state *game.GameState, rules game.Rules) ([]game.Action, metrics.SearchMetric, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sim := state.Clone()
	var actions []game.Action
	for sim.Won == "" {
		if err := ctx.Err(); err != nil {
			return nil, metrics.SearchMetric{}, err
		}
		action, ok := searcher.RandomAction(sim, rules, a.rng)
		if !ok {
			break
		}
		if err := game.Apply(sim, rules, action); err != nil {
			return nil, metrics.SearchMetric{}, err
		}
		actions = append(actions, action)
		if action.IsEnd() {
			break
		}
	}
	return actions, metrics.SearchMetric{}, nil
}
