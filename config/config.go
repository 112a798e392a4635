// Package config loads match settings from a YAML file and CONSPIRACY_*
// environment variables on top of built-in defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"conspiracy/game"
	"conspiracy/meta"
	"conspiracy/searcher"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const EnvPrefix = "CONSPIRACY"

type Config struct {
	Rules        game.Rules                     `mapstructure:"rules"`
	Difficulties map[string]searcher.Difficulty `mapstructure:"difficulties"`
	Match        Match                          `mapstructure:"match"`
	Experiment   Experiment                     `mapstructure:"experiment"`
	Server       Server                         `mapstructure:"server"`
	Logging      Logging                        `mapstructure:"logging"`
}

type Match struct {
	Seed          uint64 `mapstructure:"seed"` // 0 picks a seed from the clock
	MaxTurns      int    `mapstructure:"max_turns"`
	Goroutines    int    `mapstructure:"goroutines"`
	RolloutCutoff int    `mapstructure:"rollout_cutoff"`
	Truth         string `mapstructure:"truth"`      // difficulty or "random" for P1
	Government    string `mapstructure:"government"` // difficulty or "random" for P2
	CardsFile     string `mapstructure:"cards_file"` // optional JSON card list replacing the starter decks
	Evaluation    string `mapstructure:"evaluation"` // "weighted" or "material"
}

type Experiment struct {
	Games      int      `mapstructure:"games"` // per matchup
	Difficulty []string `mapstructure:"difficulties"`
	OutputDir  string   `mapstructure:"output_dir"`
}

type Server struct {
	Addr       string `mapstructure:"addr"`
	Difficulty string `mapstructure:"difficulty"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads path (if not empty) over the defaults. Environment variables
// override both, e.g. CONSPIRACY_RULES_MAX_PLAYS_PER_TURN=4.
func Load(path string) (Config, error) {
	v := viper.New()
	if err := setDefaults(v); err != nil {
		return Config{}, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	for name, d := range c.Difficulties {
		if d.Name == "" {
			d.Name = name
			c.Difficulties[name] = d
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) error {
	if err := setStruct(v, "rules", game.NewStandardRules()); err != nil {
		return err
	}
	for _, d := range searcher.Presets() {
		if err := setStruct(v, "difficulties."+d.Name, d); err != nil {
			return err
		}
	}

	v.SetDefault("match.seed", 0)
	v.SetDefault("match.max_turns", meta.MAX_TURNS)
	v.SetDefault("match.goroutines", meta.GO_ROUTINES)
	v.SetDefault("match.rollout_cutoff", meta.ROLLOUT_CUTOFF)
	v.SetDefault("match.truth", meta.DIFFICULTY)
	v.SetDefault("match.government", meta.DIFFICULTY)
	v.SetDefault("match.cards_file", "")
	v.SetDefault("match.evaluation", meta.EVALUATION)

	v.SetDefault("experiment.games", 10)
	v.SetDefault("experiment.difficulties", []string{searcher.Easy, searcher.Normal, searcher.Hard})
	v.SetDefault("experiment.output_dir", "experiments")

	v.SetDefault("server.addr", meta.AGENT_ADDR)
	v.SetDefault("server.difficulty", meta.DIFFICULTY)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", true)
	return nil
}

// setStruct registers every field of value as a default under prefix, so
// files and env vars can override single fields.
func setStruct(v *viper.Viper, prefix string, value any) error {
	var fields map[string]any
	if err := mapstructure.Decode(value, &fields); err != nil {
		return fmt.Errorf("failed to flatten defaults for %s: %w", prefix, err)
	}
	for key, val := range fields {
		v.SetDefault(prefix+"."+key, val)
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	for name, d := range c.Difficulties {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("difficulties.%s: %w", name, err)
		}
	}
	for _, seat := range []string{c.Match.Truth, c.Match.Government, c.Server.Difficulty} {
		if seat == RandomAgent {
			continue
		}
		if _, err := c.Difficulty(seat); err != nil {
			return err
		}
	}
	for _, name := range c.Experiment.Difficulty {
		if _, err := c.Difficulty(name); err != nil {
			return err
		}
	}
	if _, err := game.Evaluation(c.Match.Evaluation); err != nil {
		return fmt.Errorf("match.evaluation: %w", err)
	}
	if c.Match.MaxTurns < 1 {
		return fmt.Errorf("match.max_turns must be positive, got %d", c.Match.MaxTurns)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// RandomAgent names the baseline agent in place of a difficulty.
const RandomAgent = "random"

// Difficulty looks up a configured difficulty by name.
func (c Config) Difficulty(name string) (searcher.Difficulty, error) {
	d, ok := c.Difficulties[name]
	if !ok {
		return searcher.Difficulty{}, fmt.Errorf("unknown difficulty %q", name)
	}
	return d, nil
}

// Apply installs the logging settings on the global zerolog logger.
func (l Logging) Apply(w io.Writer) error {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stderr
	}
	zerolog.SetGlobalLevel(level)
	if l.Pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}
