package searcher

import (
	"fmt"
	"sort"

	"conspiracy/game"
)

// Difficulty tunes the strategist. It is passed into every search; nothing
// in the search reads difficulty from anywhere else.
type Difficulty struct {
	Name              string  `mapstructure:"name"`
	LookaheadDepth    int     `mapstructure:"lookahead_depth"`     // extra plies beyond the current one, 0-3
	BeamWidth         int     `mapstructure:"beam_width"`          // branches kept per ply, 1-8
	RolloutsPerBranch int     `mapstructure:"rollouts_per_branch"` // random playouts averaged per branch, 0-24
	Randomness        float64 `mapstructure:"randomness"`          // score noise, 0-1
	RiskTolerance     float64 `mapstructure:"risk_tolerance"`      // 1 ignores rollout variance
	Aggression        float64 `mapstructure:"aggression"`          // extra weight on IP damage and pressure
	DenialPriority    float64 `mapstructure:"denial_priority"`     // weight on blocking the opponent's win paths
	TruthWeight       float64 `mapstructure:"truth_weight"`
	ResourceWeight    float64 `mapstructure:"resource_weight"`
	PeekTopCard       bool    `mapstructure:"peek_top_card"` // rollouts keep the real order of the own deck
}

const (
	Easy      = "easy"
	Normal    = "normal"
	Hard      = "hard"
	Legendary = "legendary"
)

var presets = map[string]Difficulty{
	Easy: {
		Name: Easy, LookaheadDepth: 0, BeamWidth: 1, RolloutsPerBranch: 0,
		Randomness: 0.6, RiskTolerance: 0.8, Aggression: 0.3, DenialPriority: 0.1,
		TruthWeight: 1, ResourceWeight: 0.5,
	},
	Normal: {
		Name: Normal, LookaheadDepth: 1, BeamWidth: 3, RolloutsPerBranch: 4,
		Randomness: 0.3, RiskTolerance: 0.5, Aggression: 0.5, DenialPriority: 0.4,
		TruthWeight: 1, ResourceWeight: 0.8,
	},
	Hard: {
		Name: Hard, LookaheadDepth: 2, BeamWidth: 5, RolloutsPerBranch: 12,
		Randomness: 0.1, RiskTolerance: 0.4, Aggression: 0.6, DenialPriority: 0.7,
		TruthWeight: 1.2, ResourceWeight: 1,
	},
	Legendary: {
		Name: Legendary, LookaheadDepth: 3, BeamWidth: 8, RolloutsPerBranch: 24,
		Randomness: 0, RiskTolerance: 0.3, Aggression: 0.7, DenialPriority: 1,
		TruthWeight: 1.3, ResourceWeight: 1.1, PeekTopCard: true,
	},
}

// Preset returns a built-in difficulty by name.
func Preset(name string) (Difficulty, error) {
	d, ok := presets[name]
	if !ok {
		return Difficulty{}, fmt.Errorf("unknown difficulty %q", name)
	}
	return d, nil
}

// Presets returns a copy of all built-in difficulties, easiest first.
func Presets() []Difficulty {
	out := make([]Difficulty, 0, len(presets))
	for _, d := range presets {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LookaheadDepth < out[j].LookaheadDepth
	})
	return out
}

func (d Difficulty) Validate() error {
	switch {
	case d.LookaheadDepth < 0 || d.LookaheadDepth > 3:
		return fmt.Errorf("difficulty %s: lookahead depth %d outside [0,3]", d.Name, d.LookaheadDepth)
	case d.BeamWidth < 1 || d.BeamWidth > 8:
		return fmt.Errorf("difficulty %s: beam width %d outside [1,8]", d.Name, d.BeamWidth)
	case d.RolloutsPerBranch < 0 || d.RolloutsPerBranch > 24:
		return fmt.Errorf("difficulty %s: rollouts per branch %d outside [0,24]", d.Name, d.RolloutsPerBranch)
	}
	for name, v := range map[string]float64{
		"randomness":      d.Randomness,
		"risk tolerance":  d.RiskTolerance,
		"aggression":      d.Aggression,
		"denial priority": d.DenialPriority,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("difficulty %s: %s %v outside [0,1]", d.Name, name, v)
		}
	}
	if d.TruthWeight < 0 || d.ResourceWeight < 0 {
		return fmt.Errorf("difficulty %s: weights must not be negative", d.Name)
	}
	return nil
}

// Weights translates the difficulty knobs into value function weights.
// Aggression leans on IP damage and pressure; denial on the opponent's win paths.
func (d Difficulty) Weights() game.Weights {
	return game.Weights{
		Truth:     d.TruthWeight,
		Resource:  d.ResourceWeight * (1 + d.Aggression),
		Territory: 1,
		Pressure:  0.5 * (1 + d.Aggression),
		Denial:    d.DenialPriority,
	}
}
