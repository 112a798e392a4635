package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conspiracy/experiments/metrics"
	"conspiracy/game"
	"conspiracy/meta"
	"conspiracy/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// Local runs a match in-process. It owns the live state: agents only ever see
// clones, and every action goes through the turn controller.
type Local struct {
	State    *game.GameState
	rules    game.Rules
	agents   map[game.PlayerID]agent.Agent
	maxTurns int
}

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func LocalEngine(state *game.GameState, rules game.Rules, agents map[game.PlayerID]agent.Agent, options ...Option) (*Local, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	for _, id := range []game.PlayerID{game.P1, game.P2} {
		if agents[id] == nil {
			return nil, fmt.Errorf("no agent for player %s", id)
		}
	}
	if _, err := game.Audit(state, rules); err != nil {
		return nil, err
	}
	e := &Local{
		State:    state,
		rules:    rules,
		agents:   agents,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run executes the entire match loop until a winner is found.
func (e *Local) Run(ctx context.Context) (Result, error) {
	id := uuid.New()
	logger := log.With().Str("match", id.String()).Logger()
	startTime := time.Now()
	startingPlayer := e.State.CurrentPlayer
	logger.Info().Msgf("player %s is starting", startingPlayer)

	var moves []metrics.MoveMetric
	totalMoves := 0
	for e.State.Won == "" && e.State.Turn <= e.maxTurns {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if e.State.Phase == game.StartPhase {
			if err := game.StartTurn(e.State, e.rules); err != nil {
				return Result{}, err
			}
		}

		player := e.State.CurrentPlayer
		turn := e.State.Turn
		actions, searchMetric, err := e.agents[player].FindActions(ctx, e.State.Clone(), e.rules)
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			logger.Warn().Err(err).Str("player", string(player)).Msg("agent failed, ending turn")
			actions = []game.Action{game.EndTurnAction()}
		}
		moves = append(moves, metrics.MoveMetric{
			Step:         len(moves) + 1,
			Turn:         turn,
			Player:       string(player),
			PlanLength:   len(actions),
			SearchMetric: searchMetric,
		})

		applied, err := e.playTurn(player, actions)
		totalMoves += applied
		if err != nil {
			return Result{}, err
		}
	}

	if e.State.Won != "" {
		logger.Info().Msgf("match won by %s after %d turns (truth %d)", e.State.Won, len(moves), e.State.Truth)
	} else {
		logger.Info().Msgf("stopped after %d turns without a winner", e.maxTurns)
	}

	endTime := time.Now()
	return Result{
		MatchID: id,
		Winner:  e.State.Won,
		Turns:   len(moves),
		Truth:   e.State.Truth,
		States: map[game.PlayerID]int{
			game.P1: e.State.OwnedCount(game.P1),
			game.P2: e.State.OwnedCount(game.P2),
		},
		Game: metrics.GameMetric{
			MatchID:        id.String(),
			StartingPlayer: string(startingPlayer),
			Winner:         string(e.State.Won),
			StartTime:      startTime,
			EndTime:        endTime,
			Duration:       endTime.Sub(startTime),
			TotalMoves:     totalMoves,
			Turns:          len(moves),
			Truth:          e.State.Truth,
		},
		Moves: moves,
	}, nil
}

// playTurn applies the agent's actions for player. The first illegal action
// ends the turn in its place, and a plan without end turn is closed off.
// A broken state invariant aborts the match.
func (e *Local) playTurn(player game.PlayerID, actions []game.Action) (int, error) {
	applied := 0
	for _, action := range actions {
		if e.State.Won != "" || e.State.CurrentPlayer != player {
			break
		}
		if err := game.Apply(e.State, e.rules, action); err != nil {
			if !errors.Is(err, game.ErrIllegalAction) && !errors.Is(err, game.ErrInvalidEffectSchema) {
				return applied, err
			}
			log.Warn().Err(err).Str("player", string(player)).Msgf("illegal action %s, ending turn", action)
			break
		}
		applied++
		if err := e.audit(); err != nil {
			return applied, err
		}
	}

	if e.State.Won == "" && e.State.CurrentPlayer == player {
		if err := game.EndTurn(e.State, e.rules, nil); err != nil {
			return applied, err
		}
		applied++
		if err := e.audit(); err != nil {
			return applied, err
		}
	}
	return applied, nil
}

func (e *Local) audit() error {
	findings, err := game.Audit(e.State, e.rules)
	if err != nil {
		return fmt.Errorf("turn %d: %w", e.State.Turn, err)
	}
	for _, f := range findings {
		log.Debug().Str("code", f.Code).Msg(f.Detail)
	}
	return nil
}
