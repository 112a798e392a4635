package engine

import (
	"context"

	"conspiracy/experiments/metrics"
	"conspiracy/game"

	"github.com/google/uuid"
)

type Engine interface {
	// Run plays the match until there's a winner or the turn limit is reached
	Run(ctx context.Context) (Result, error)
}

type Result struct {
	MatchID uuid.UUID
	Winner  game.PlayerID // empty when the turn limit was reached
	Turns   int
	Truth   int
	States  map[game.PlayerID]int
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric
}
