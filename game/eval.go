package game

import (
	"fmt"
	"math"
	"sort"
)

var evaluations = map[string]Evaluate{
	"weighted": EvaluateWeighted,
	"material": EvaluateMaterial,
}

// Evaluation looks up a value function by its config name.
func Evaluation(name string) (Evaluate, error) {
	fn, ok := evaluations[name]
	if !ok {
		names := make([]string, 0, len(evaluations))
		for n := range evaluations {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown evaluation %q, want one of %v", name, names)
	}
	return fn, nil
}

// EvaluateWeighted combines truth position, IP, territories, capture progress
// and denial of the opponent's win paths into one weighted score.
func EvaluateWeighted(gs *GameState, rules Rules, perspective PlayerID, w Weights) float64 {
	if score, over := terminalScore(gs, perspective); over {
		return score
	}
	total := w.total()
	if total <= 0 {
		return 0
	}
	score := w.Truth*gs.truthScore(perspective) +
		w.Resource*gs.resourceScore(perspective) +
		w.Territory*gs.territoryScore(perspective) +
		w.Pressure*gs.pressureScore(perspective) +
		w.Denial*gs.denialScore(rules, perspective)
	return score / total
}

// EvaluateMaterial only tallies truth, IP and territories, ignoring pressure
// in flight and win proximity.
func EvaluateMaterial(gs *GameState, _ Rules, perspective PlayerID, _ Weights) float64 {
	if score, over := terminalScore(gs, perspective); over {
		return score
	}
	return (gs.truthScore(perspective) + gs.resourceScore(perspective) + gs.territoryScore(perspective)) / 3.0
}

func terminalScore(gs *GameState, perspective PlayerID) (float64, bool) {
	switch gs.Won {
	case "":
		return 0, false
	case perspective:
		return 1, true
	default:
		return -1, true
	}
}

// truthScore maps the meter to [-1,1] in the direction the player's faction pushes it.
func (gs *GameState) truthScore(perspective PlayerID) float64 {
	mid := float64(MaxTruth+MinTruth) / 2
	score := (float64(gs.Truth) - mid) / (float64(MaxTruth) - mid)
	if gs.Players[perspective].Faction == GovernmentFaction {
		return -score
	}
	return score
}

func (gs *GameState) resourceScore(perspective PlayerID) float64 {
	return normalize(float64(gs.Players[perspective].IP), float64(gs.Players[perspective.Opponent()].IP))
}

func (gs *GameState) territoryScore(perspective PlayerID) float64 {
	return normalize(float64(gs.OwnedCount(perspective)), float64(gs.OwnedCount(perspective.Opponent())))
}

// pressureScore compares how close each side is to its next captures.
func (gs *GameState) pressureScore(perspective PlayerID) float64 {
	return normalize(gs.captureProgress(perspective), gs.captureProgress(perspective.Opponent()))
}

func (gs *GameState) captureProgress(player PlayerID) float64 {
	progress := 0.0
	for _, t := range gs.Territories() {
		if gs.Players[player].States[t] {
			continue
		}
		progress += math.Min(1, float64(NetPressure(gs, t, player))/float64(gs.StateDefense[t]))
	}
	return progress
}

// denialScore is 0 when the opponent is nowhere near a win condition and -1
// when they are about to reach one.
func (gs *GameState) denialScore(rules Rules, perspective PlayerID) float64 {
	return -gs.winProximity(rules, perspective.Opponent())
}

func (gs *GameState) winProximity(rules Rules, player PlayerID) float64 {
	ps := gs.Players[player]
	proximity := 0.0
	if rules.StatesToWin > 0 {
		proximity = math.Max(proximity, float64(len(ps.States))/float64(rules.StatesToWin))
	}
	if rules.IPToWin > 0 {
		proximity = math.Max(proximity, float64(ps.IP)/float64(rules.IPToWin))
	}
	mid := float64(MaxTruth+MinTruth) / 2
	if ps.Faction == TruthFaction && rules.TruthWinAt > int(mid) {
		proximity = math.Max(proximity, (float64(gs.Truth)-mid)/(float64(rules.TruthWinAt)-mid))
	}
	if ps.Faction == GovernmentFaction && rules.GovernmentWinAt < int(mid) {
		proximity = math.Max(proximity, (mid-float64(gs.Truth))/(mid-float64(rules.GovernmentWinAt)))
	}
	return math.Max(0, math.Min(1, proximity))
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
