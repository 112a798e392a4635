package engine

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"conspiracy/content"
	"conspiracy/experiments/metrics"
	"conspiracy/game"
	"conspiracy/searcher"
	"conspiracy/searcher/agent"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// scripted replays fixed plans, one per call, then ends turns.
type scripted struct {
	plans [][]game.Action
	err   error
	calls int
}

func (s *scripted) FindActions(_ context.Context, _ *game.GameState, _ game.Rules) ([]game.Action, metrics.SearchMetric, error) {
	s.calls++
	if s.err != nil {
		return nil, metrics.SearchMetric{}, s.err
	}
	if len(s.plans) == 0 {
		return []game.Action{game.EndTurnAction()}, metrics.SearchMetric{}, nil
	}
	plan := s.plans[0]
	s.plans = s.plans[1:]
	return plan, metrics.SearchMetric{}, nil
}

func standardState(t *testing.T, seed uint64) *game.GameState {
	t.Helper()
	gs, err := game.NewGameState(content.StandardSetup(seed))
	require.NoError(t, err)
	return gs
}

func TestLocalEngine(t *testing.T) {
	rules := game.NewStandardRules()

	t.Run("Random agents finish within the turn limit", func(t *testing.T) {
		gs := standardState(t, 1)
		e, err := LocalEngine(gs, rules, map[game.PlayerID]agent.Agent{
			game.P1: agent.NewRandomAgent(1),
			game.P2: agent.NewRandomAgent(2),
		}, WithMaxTurns(40))
		require.NoError(t, err)

		result, err := e.Run(context.Background())
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, result.MatchID)
		require.LessOrEqual(t, result.Turns, 40)
		require.Len(t, result.Moves, result.Turns)
		require.Equal(t, string(game.P1), result.Game.StartingPlayer)
		require.Equal(t, string(result.Winner), result.Game.Winner)
		_, err = game.Audit(e.State, rules)
		require.NoError(t, err, "Final state should be consistent")
	})

	t.Run("AI takes an immediate win", func(t *testing.T) {
		gs, err := game.NewGameState(game.Setup{
			Territories: map[string]int{"OH": 3, "TX": 4},
			Truth:       85,
			P1: game.PlayerSetup{Faction: game.TruthFaction, IP: 5, Hand: []game.Card{
				game.MustCard("leak", "Leak", game.TruthFaction, game.Common, 1, game.MediaEffect{TruthDelta: 5}),
			}},
			P2: game.PlayerSetup{Faction: game.GovernmentFaction, IP: 5},
		})
		require.NoError(t, err)
		d, err := searcher.Preset(searcher.Hard)
		require.NoError(t, err)

		e, err := LocalEngine(gs, rules, map[game.PlayerID]agent.Agent{
			game.P1: agent.NewAIAgent(searcher.NewBeam(searcher.WithSeed(1)), d),
			game.P2: &scripted{},
		})
		require.NoError(t, err)
		result, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, game.P1, result.Winner)
		require.Equal(t, 1, result.Turns)
		require.Equal(t, 90, result.Truth)
	})

	t.Run("Illegal action ends the turn", func(t *testing.T) {
		gs := standardState(t, 2)
		cheat := &scripted{plans: [][]game.Action{{game.PlayCardAction("not-in-hand", ""), game.PlayCardAction("nor-this", "")}}}
		e, err := LocalEngine(gs, rules, map[game.PlayerID]agent.Agent{
			game.P1: cheat,
			game.P2: &scripted{},
		}, WithMaxTurns(2))
		require.NoError(t, err)

		result, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, result.Turns)
		require.Equal(t, 2, result.Game.TotalMoves, "Only the forced end turn and P2's end turn apply")
		require.Equal(t, 50, e.State.Truth)
	})

	t.Run("Unknown action kind ends the turn", func(t *testing.T) {
		gs := standardState(t, 2)
		garbled := &scripted{plans: [][]game.Action{{{Kind: game.ActionKind(9)}}}}
		e, err := LocalEngine(gs, rules, map[game.PlayerID]agent.Agent{
			game.P1: garbled,
			game.P2: &scripted{},
		}, WithMaxTurns(2))
		require.NoError(t, err)

		var result Result
		require.NotPanics(t, func() {
			result, err = e.Run(context.Background())
		})
		require.NoError(t, err)
		require.Equal(t, 2, result.Game.TotalMoves, "Only the forced end turn and P2's end turn apply")
		require.Equal(t, game.P1, e.State.CurrentPlayer)
	})

	t.Run("Agent failure ends the turn", func(t *testing.T) {
		gs := standardState(t, 3)
		broken := &scripted{err: errors.New("planner crashed")}
		e, err := LocalEngine(gs, rules, map[game.PlayerID]agent.Agent{
			game.P1: broken,
			game.P2: &scripted{},
		}, WithMaxTurns(4))
		require.NoError(t, err)

		result, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, 4, result.Turns)
		require.Equal(t, 2, broken.calls)
	})

	t.Run("Agents plan on clones", func(t *testing.T) {
		gs := standardState(t, 4)
		e, err := LocalEngine(gs, rules, map[game.PlayerID]agent.Agent{
			game.P1: vandal{},
			game.P2: vandal{},
		}, WithMaxTurns(2))
		require.NoError(t, err)
		_, err = e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, 50, e.State.Truth)
	})

	t.Run("Remote agent through the plan server", func(t *testing.T) {
		srv := httptest.NewServer(agent.NewServer(agent.NewRandomAgent(5), rules))
		defer srv.Close()

		gs := standardState(t, 5)
		e, err := LocalEngine(gs, rules, map[game.PlayerID]agent.Agent{
			game.P1: RemoteAgent(srv.URL, srv.Client()),
			game.P2: agent.NewRandomAgent(6),
		}, WithMaxTurns(6))
		require.NoError(t, err)
		result, err := e.Run(context.Background())
		require.NoError(t, err)
		require.LessOrEqual(t, result.Turns, 6)
	})

	t.Run("Cancelled context stops the match", func(t *testing.T) {
		gs := standardState(t, 6)
		e, err := LocalEngine(gs, rules, map[game.PlayerID]agent.Agent{
			game.P1: &scripted{},
			game.P2: &scripted{},
		})
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Missing agent", func(t *testing.T) {
		_, err := LocalEngine(standardState(t, 7), rules, map[game.PlayerID]agent.Agent{game.P1: &scripted{}})
		require.Error(t, err)
	})
}

// vandal scribbles over the state it is given.
type vandal struct{}

func (vandal) FindActions(_ context.Context, gs *game.GameState, _ game.Rules) ([]game.Action, metrics.SearchMetric, error) {
	gs.Truth = 0
	gs.Players[game.P1].IP = 999
	return []game.Action{game.EndTurnAction()}, metrics.SearchMetric{}, nil
}
