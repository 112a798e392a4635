package game

// ActionKind represents the type of action a player can perform.
type ActionKind int

const (
	PlayAction ActionKind = iota
	EndAction
)

func (k ActionKind) String() string {
	switch k {
	case PlayAction:
		return "play"
	case EndAction:
		return "end"
	}
	return "unknown"
}

// Phase is the turn state machine position.
type Phase int

const (
	StartPhase Phase = iota
	ActPhase
	EndPhase
)

func (p Phase) String() string {
	switch p {
	case StartPhase:
		return "START"
	case ActPhase:
		return "ACT"
	case EndPhase:
		return "END"
	}
	return "UNKNOWN"
}
