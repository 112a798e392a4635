package experiments

import (
	"context"
	"fmt"
	"os"

	"conspiracy/config"
	"conspiracy/content"
	"conspiracy/engine"
	"conspiracy/experiments/metrics"
	"conspiracy/game"
	"conspiracy/searcher"
	"conspiracy/searcher/agent"

	"github.com/rs/zerolog/log"
)

// RunDifficultyExperiment plays every configured difficulty against every
// other one, on both sides of the table.
func RunDifficultyExperiment(ctx context.Context, cfg config.Config) (string, error) {
	configs := make([]metrics.AgentConfig, 0, len(cfg.Experiment.Difficulty))
	for i, name := range cfg.Experiment.Difficulty {
		configs = append(configs, metrics.AgentConfig{
			ID:            i + 1,
			Difficulty:    name,
			Goroutines:    cfg.Match.Goroutines,
			RolloutCutoff: cfg.Match.RolloutCutoff,
		})
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, truth := range configs {
		for _, government := range configs {
			if truth.ID != government.ID {
				matchUps = append(matchUps, []metrics.AgentConfig{truth, government})
			}
		}
	}
	return runExperiment(ctx, cfg, "difficulty", configs, matchUps, cfg.Experiment.Games)
}

// RunThroughputExperiment mirrors one difficulty at increasing parallelism
// to measure search speedup.
func RunThroughputExperiment(ctx context.Context, cfg config.Config, difficulty string, goroutines []int) (string, error) {
	configs := make([]metrics.AgentConfig, 0, len(goroutines))
	matchUps := [][]metrics.AgentConfig{}
	for i, n := range goroutines {
		c := metrics.AgentConfig{ID: i + 1, Difficulty: difficulty, Goroutines: n, RolloutCutoff: cfg.Match.RolloutCutoff}
		configs = append(configs, c)
		// Same config for both players in each game
		// for the same playing strength and similar game length
		matchUps = append(matchUps, []metrics.AgentConfig{c, c})
	}
	return runExperiment(ctx, cfg, "throughput", configs, matchUps, 1)
}

func runExperiment(ctx context.Context, cfg config.Config, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, games int) (string, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < games; i++ {
			count++
			result, err := runGame(ctx, cfg, config1, config2, cfg.Match.Seed+uint64(count))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: result.Game,
			})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(matchUps), i+1, result.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(cfg.Experiment.OutputDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored %s results in %s", name, writer.Dir())
	return writer.Dir(), nil
}

// runGame plays a single match with config1 as truth and config2 as government
func runGame(ctx context.Context, cfg config.Config, config1, config2 metrics.AgentConfig, seed uint64) (engine.Result, error) {
	setup, err := NewSetup(cfg, seed)
	if err != nil {
		return engine.Result{}, err
	}
	state, err := game.NewGameState(setup)
	if err != nil {
		return engine.Result{}, err
	}

	agents := map[game.PlayerID]agent.Agent{}
	for id, c := range map[game.PlayerID]metrics.AgentConfig{game.P1: config1, game.P2: config2} {
		a, err := NewAgent(cfg, c, seed)
		if err != nil {
			return engine.Result{}, err
		}
		agents[id] = a
	}

	e, err := engine.LocalEngine(state, cfg.Rules, agents, engine.WithMaxTurns(cfg.Match.MaxTurns))
	if err != nil {
		return engine.Result{}, err
	}
	return e.Run(ctx)
}

// NewSetup deals the starter decks, or the configured card file when set.
func NewSetup(cfg config.Config, seed uint64) (game.Setup, error) {
	if cfg.Match.CardsFile == "" {
		return content.StandardSetup(seed), nil
	}
	f, err := os.Open(cfg.Match.CardsFile)
	if err != nil {
		return game.Setup{}, err
	}
	defer f.Close()
	cards, err := content.LoadCards(f)
	if err != nil {
		return game.Setup{}, err
	}
	return content.SetupFromCards(cards, seed)
}

// NewAgent builds the agent an AgentConfig describes.
func NewAgent(cfg config.Config, c metrics.AgentConfig, seed uint64) (agent.Agent, error) {
	if c.Difficulty == config.RandomAgent {
		return agent.NewRandomAgent(seed), nil
	}
	d, err := cfg.Difficulty(c.Difficulty)
	if err != nil {
		return nil, err
	}
	evaluate, err := game.Evaluation(cfg.Match.Evaluation)
	if err != nil {
		return nil, err
	}
	beam := searcher.NewBeam(
		searcher.WithEvaluationFn(evaluate),
		searcher.WithGoroutines(c.Goroutines),
		searcher.WithRolloutCutoff(c.RolloutCutoff),
		searcher.WithSeed(seed+uint64(c.ID)),
		searcher.WithMetrics(),
	)
	return agent.NewAIAgent(beam, d), nil
}
