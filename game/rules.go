package game

import "fmt"

// DrawMode selects the draw policy applied at the start of a turn.
type DrawMode string

const (
	DrawUpTo  DrawMode = "up_to" // draw until the hand reaches HandSize
	DrawFixed DrawMode = "fixed" // draw DrawCount cards
)

// Rules are the immutable knobs of a match.
type Rules struct {
	MaxPlaysPerTurn int      `mapstructure:"max_plays_per_turn"`
	DrawMode        DrawMode `mapstructure:"draw_mode"`
	HandSize        int      `mapstructure:"hand_size"`
	DrawCount       int      `mapstructure:"draw_count"`
	PassiveIncome   bool     `mapstructure:"passive_income"`
	BaseIncome      int      `mapstructure:"base_income"`
	IncomePerState  int      `mapstructure:"income_per_state"`
	TruthWinAt      int      `mapstructure:"truth_win_at"`
	GovernmentWinAt int      `mapstructure:"government_win_at"`
	StatesToWin     int      `mapstructure:"states_to_win"`
	IPToWin         int      `mapstructure:"ip_to_win"`
}

func NewStandardRules() Rules {
	return Rules{
		MaxPlaysPerTurn: 3,
		DrawMode:        DrawUpTo,
		HandSize:        5,
		DrawCount:       1,
		PassiveIncome:   true,
		BaseIncome:      5,
		IncomePerState:  1,
		TruthWinAt:      90,
		GovernmentWinAt: 10,
		StatesToWin:     10,
		IPToWin:         200,
	}
}

func (r Rules) Validate() error {
	if r.MaxPlaysPerTurn < 1 {
		return fmt.Errorf("max plays per turn must be at least 1, got %d", r.MaxPlaysPerTurn)
	}
	switch r.DrawMode {
	case DrawUpTo:
		if r.HandSize < 1 {
			return fmt.Errorf("hand size must be at least 1, got %d", r.HandSize)
		}
	case DrawFixed:
		if r.DrawCount < 0 {
			return fmt.Errorf("draw count must not be negative, got %d", r.DrawCount)
		}
	default:
		return fmt.Errorf("unknown draw mode %q", r.DrawMode)
	}
	if r.BaseIncome < 0 || r.IncomePerState < 0 {
		return fmt.Errorf("income must not be negative")
	}
	if r.GovernmentWinAt >= r.TruthWinAt {
		return fmt.Errorf("government win threshold %d must be below truth win threshold %d", r.GovernmentWinAt, r.TruthWinAt)
	}
	return nil
}

// Income is the passive IP a player receives at the end of a turn.
func (r Rules) Income(ps *PlayerState) int {
	if !r.PassiveIncome {
		return 0
	}
	return r.BaseIncome + r.IncomePerState*len(ps.States)
}
