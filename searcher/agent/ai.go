package agent

import (
	"context"

	"conspiracy/experiments/metrics"
	"conspiracy/game"
	"conspiracy/searcher"
)

type aiAgent struct {
	beam       *searcher.Beam
	difficulty searcher.Difficulty
}

// NewAIAgent returns an agent that plans each turn with a beam search at the
// given difficulty.
func NewAIAgent(beam *searcher.Beam, difficulty searcher.Difficulty) Agent {
	return aiAgent{beam: beam, difficulty: difficulty}
}

func (a aiAgent) FindActions(ctx context.Context, state *game.GameState, rules game.Rules) ([]game.Action, metrics.SearchMetric, error) {
	plan, err := a.beam.Search(ctx, state, rules, a.difficulty)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	return plan.Actions, plan.Metric, nil
}
