package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"conspiracy/config"
	"conspiracy/engine"
	"conspiracy/experiments"
	"conspiracy/experiments/metrics"
	"conspiracy/game"
	"conspiracy/meta"
	"conspiracy/searcher/agent"

	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	mode := flag.String("mode", "match", "One of match, serve, experiment, throughput")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Logging.Apply(os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "match":
		err = runMatch(ctx, cfg)
	case "serve":
		err = runServer(cfg)
	case "experiment":
		_, err = experiments.RunDifficultyExperiment(ctx, cfg)
	case "throughput":
		_, err = experiments.RunThroughputExperiment(ctx, cfg, cfg.Match.Truth, []int{1, 2, 4, meta.GO_ROUTINES, 2 * meta.GO_ROUTINES})
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func runMatch(ctx context.Context, cfg config.Config) error {
	seed := cfg.Match.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	setup, err := experiments.NewSetup(cfg, seed)
	if err != nil {
		return err
	}
	state, err := game.NewGameState(setup)
	if err != nil {
		return err
	}

	agents := map[game.PlayerID]agent.Agent{}
	for i, seat := range []struct {
		id         game.PlayerID
		difficulty string
	}{{game.P1, cfg.Match.Truth}, {game.P2, cfg.Match.Government}} {
		a, err := experiments.NewAgent(cfg, metrics.AgentConfig{
			ID:            i + 1,
			Difficulty:    seat.difficulty,
			Goroutines:    cfg.Match.Goroutines,
			RolloutCutoff: cfg.Match.RolloutCutoff,
		}, seed)
		if err != nil {
			return err
		}
		agents[seat.id] = a
	}

	e, err := engine.LocalEngine(state, cfg.Rules, agents, engine.WithMaxTurns(cfg.Match.MaxTurns))
	if err != nil {
		return err
	}
	result, err := e.Run(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Str("match", result.MatchID.String()).
		Str("winner", string(result.Winner)).
		Int("turns", result.Turns).
		Int("truth", result.Truth).
		Int("p1_states", result.States[game.P1]).
		Int("p2_states", result.States[game.P2]).
		Msg("match finished")
	return nil
}

func runServer(cfg config.Config) error {
	a, err := experiments.NewAgent(cfg, metrics.AgentConfig{
		ID:            1,
		Difficulty:    cfg.Server.Difficulty,
		Goroutines:    cfg.Match.Goroutines,
		RolloutCutoff: cfg.Match.RolloutCutoff,
	}, uint64(time.Now().UnixNano()))
	if err != nil {
		return err
	}
	return agent.StartServer(cfg.Server.Addr, a, cfg.Rules)
}
