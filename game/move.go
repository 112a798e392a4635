package game

import "fmt"

// Action is one step of a turn, issued by a human or the AI.
type Action struct {
	Kind       ActionKind `json:"kind"`
	CardID     string     `json:"cardId,omitempty"`
	Target     string     `json:"target,omitempty"`
	Multiplier float64    `json:"multiplier,omitempty"` // combo bonus for MEDIA plays
	Discards   []string   `json:"discards,omitempty"`   // card ids discarded on end turn
}

func PlayCardAction(cardID, target string) Action {
	return Action{Kind: PlayAction, CardID: cardID, Target: target}
}

func EndTurnAction(discards ...string) Action {
	return Action{Kind: EndAction, Discards: discards}
}

func (a Action) IsEnd() bool {
	return a.Kind == EndAction
}

func (a Action) String() string {
	switch a.Kind {
	case PlayAction:
		if a.Target != "" {
			return fmt.Sprintf("play %s -> %s", a.CardID, a.Target)
		}
		return fmt.Sprintf("play %s", a.CardID)
	case EndAction:
		return "end turn"
	}
	return "unknown action"
}
