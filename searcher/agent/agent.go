package agent

import (
	"context"

	"conspiracy/experiments/metrics"
	"conspiracy/game"
)

type Agent interface {
	// FindActions plans the current player's turn. state is the live match and
	// must not be modified; metrics are empty unless the agent collects them.
	FindActions(ctx context.Context, state *game.GameState, rules game.Rules) ([]game.Action, metrics.SearchMetric, error)
}
