package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"

	"conspiracy/utils"
)

const (
	MinTruth = 0
	MaxTruth = 100
)

// PlayerState is everything a seat owns. Deck is in draw order (index 0 is the top).
type PlayerState struct {
	ID      PlayerID        `json:"id"`
	Faction Faction         `json:"faction"`
	IP      int             `json:"ip"`
	Deck    []Card          `json:"deck"`
	Hand    []Card          `json:"hand"`
	Discard []Card          `json:"discard"`
	States  map[string]bool `json:"states"`
}

// Owns reports whether the player owns the territory.
func (ps *PlayerState) Owns(territory string) bool {
	return ps.States[territory]
}

// HandIndex returns the position of a card in hand, or -1.
func (ps *PlayerState) HandIndex(cardID string) int {
	for i, c := range ps.Hand {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

func (ps *PlayerState) clone() *PlayerState {
	states := make(map[string]bool, len(ps.States))
	for t, owned := range ps.States {
		states[t] = owned
	}
	return &PlayerState{
		ID:      ps.ID,
		Faction: ps.Faction,
		IP:      ps.IP,
		Deck:    cloneCards(ps.Deck),
		Hand:    cloneCards(ps.Hand),
		Discard: cloneCards(ps.Discard),
		States:  states,
	}
}

// Pressure holds the two independent counters of one territory.
type Pressure struct {
	P1 int `json:"P1"`
	P2 int `json:"P2"`
}

func (p Pressure) Of(player PlayerID) int {
	if player == P1 {
		return p.P1
	}
	return p.P2
}

func (p Pressure) add(player PlayerID, delta int) Pressure {
	if player == P1 {
		p.P1 += delta
	} else {
		p.P2 += delta
	}
	return p
}

// PlayRecord is one resolved card play of the current turn.
type PlayRecord struct {
	Player   PlayerID `json:"player"`
	CardID   string   `json:"cardId"`
	CardType CardType `json:"cardType"`
	Target   string   `json:"target,omitempty"`
}

// GameState is the single mutable aggregate of a match. The live instance is
// only mutated by the turn controller; the searcher works on clones.
type GameState struct {
	Turn           int                       `json:"turn"`
	CurrentPlayer  PlayerID                  `json:"currentPlayer"`
	Phase          Phase                     `json:"phase"`
	Truth          int                       `json:"truth"`
	Players        map[PlayerID]*PlayerState `json:"players"`
	Pressure       map[string]Pressure       `json:"pressureByState"`
	StateDefense   map[string]int            `json:"stateDefense"`
	PlaysThisTurn  int                       `json:"playsThisTurn"`
	TurnPlays      []PlayRecord              `json:"turnPlays"`
	Log            []string                  `json:"log"`
	SkipActions    map[PlayerID]int          `json:"skipActions"`
	ActionsBlocked bool                      `json:"actionsBlocked"`
	Won            PlayerID                  `json:"won,omitempty"`
}

// PlayerSetup is the starting position of one seat.
type PlayerSetup struct {
	Faction Faction
	IP      int
	Deck    []Card
	Hand    []Card
	States  []string
}

// Setup describes a match at turn 1. Deck assembly happens elsewhere.
type Setup struct {
	Territories map[string]int // territory id -> defense; nil uses DefaultDefense
	Truth       int
	First       PlayerID
	P1          PlayerSetup
	P2          PlayerSetup
}

// NewGameState seeds defense and pressure tracking for every territory and
// places both players.
func NewGameState(setup Setup) (*GameState, error) {
	territories := setup.Territories
	if territories == nil {
		territories = DefaultDefense()
	}
	if setup.P1.Faction == setup.P2.Faction || !setup.P1.Faction.Valid() || !setup.P2.Faction.Valid() {
		return nil, fmt.Errorf("players need opposing factions, got %q and %q", setup.P1.Faction, setup.P2.Faction)
	}
	first := setup.First
	if first == "" {
		first = P1
	}
	if !first.Valid() {
		return nil, fmt.Errorf("unknown starting player %q", first)
	}

	gs := &GameState{
		Turn:          1,
		CurrentPlayer: first,
		Phase:         StartPhase,
		Truth:         utils.Clamp(setup.Truth, MinTruth, MaxTruth),
		Players:       make(map[PlayerID]*PlayerState, 2),
		Pressure:      make(map[string]Pressure, len(territories)),
		StateDefense:  make(map[string]int, len(territories)),
		TurnPlays:     []PlayRecord{},
		SkipActions:   map[PlayerID]int{P1: 0, P2: 0},
	}
	for t, defense := range territories {
		if defense <= 0 {
			return nil, fmt.Errorf("territory %s: defense must be positive, got %d", t, defense)
		}
		gs.StateDefense[t] = defense
		gs.Pressure[t] = Pressure{}
	}

	for _, seat := range []struct {
		id    PlayerID
		setup PlayerSetup
	}{{P1, setup.P1}, {P2, setup.P2}} {
		if seat.setup.IP < 0 {
			return nil, fmt.Errorf("player %s: negative starting IP %d", seat.id, seat.setup.IP)
		}
		ps := &PlayerState{
			ID:      seat.id,
			Faction: seat.setup.Faction,
			IP:      seat.setup.IP,
			Deck:    cloneCards(seat.setup.Deck),
			Hand:    cloneCards(seat.setup.Hand),
			Discard: []Card{},
			States:  make(map[string]bool, len(seat.setup.States)),
		}
		for _, t := range seat.setup.States {
			if _, ok := gs.StateDefense[t]; !ok {
				return nil, fmt.Errorf("player %s: unknown starting territory %s", seat.id, t)
			}
			ps.States[t] = true
		}
		gs.Players[seat.id] = ps
	}
	for t := range gs.Players[P1].States {
		if gs.Players[P2].States[t] {
			return nil, fmt.Errorf("territory %s assigned to both players", t)
		}
	}

	gs.Logf("match started: %s (%s) vs %s (%s), truth %d",
		P1, gs.Players[P1].Faction, P2, gs.Players[P2].Faction, gs.Truth)
	return gs, nil
}

// Current returns the acting player's state.
func (gs *GameState) Current() *PlayerState {
	return gs.Players[gs.CurrentPlayer]
}

// PlayerOf returns the seat playing the given faction.
func (gs *GameState) PlayerOf(f Faction) PlayerID {
	if gs.Players[P1].Faction == f {
		return P1
	}
	return P2
}

// Logf appends a narrative entry. The log is never read by game logic.
func (gs *GameState) Logf(format string, args ...any) {
	gs.Log = append(gs.Log, fmt.Sprintf(format, args...))
}

// Clone returns a fully independent deep copy: no map, slice or player struct
// is shared with the receiver.
func (gs *GameState) Clone() *GameState {
	players := make(map[PlayerID]*PlayerState, len(gs.Players))
	for id, ps := range gs.Players {
		players[id] = ps.clone()
	}

	pressure := make(map[string]Pressure, len(gs.Pressure))
	for t, p := range gs.Pressure {
		pressure[t] = p
	}

	defense := make(map[string]int, len(gs.StateDefense))
	for t, d := range gs.StateDefense {
		defense[t] = d
	}

	skips := make(map[PlayerID]int, len(gs.SkipActions))
	for id, n := range gs.SkipActions {
		skips[id] = n
	}

	turnPlays := make([]PlayRecord, len(gs.TurnPlays))
	copy(turnPlays, gs.TurnPlays)

	log := make([]string, len(gs.Log))
	copy(log, gs.Log)

	return &GameState{
		Turn:           gs.Turn,
		CurrentPlayer:  gs.CurrentPlayer,
		Phase:          gs.Phase,
		Truth:          gs.Truth,
		Players:        players,
		Pressure:       pressure,
		StateDefense:   defense,
		PlaysThisTurn:  gs.PlaysThisTurn,
		TurnPlays:      turnPlays,
		Log:            log,
		SkipActions:    skips,
		ActionsBlocked: gs.ActionsBlocked,
		Won:            gs.Won,
	}
}

// Territories returns the territory ids in a stable order.
func (gs *GameState) Territories() []string {
	ids := make([]string, 0, len(gs.StateDefense))
	for t := range gs.StateDefense {
		ids = append(ids, t)
	}
	sort.Strings(ids)
	return ids
}

// StateHash identifies a game position for deduplication during search.
type StateHash uint64

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.Turn))
	hasher.Write([]byte(gs.CurrentPlayer))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Phase))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Truth))
	binary.Write(hasher, binary.LittleEndian, int64(gs.PlaysThisTurn))
	binary.Write(hasher, binary.LittleEndian, gs.ActionsBlocked)
	hasher.Write([]byte(gs.Won))
	hasher.Write([]byte{0})

	for _, id := range []PlayerID{P1, P2} {
		ps := gs.Players[id]
		binary.Write(hasher, binary.LittleEndian, int64(gs.SkipActions[id]))
		binary.Write(hasher, binary.LittleEndian, int64(ps.IP))
		binary.Write(hasher, binary.LittleEndian, int64(len(ps.Deck)))
		for _, c := range ps.Hand {
			hasher.Write([]byte(c.ID))
		}
		hasher.Write([]byte{0})
	}

	for _, t := range gs.Territories() {
		hasher.Write([]byte(t))
		p := gs.Pressure[t]
		binary.Write(hasher, binary.LittleEndian, int64(p.P1))
		binary.Write(hasher, binary.LittleEndian, int64(p.P2))
		owner, _ := gs.Owner(t)
		hasher.Write([]byte(owner))
	}

	return StateHash(hasher.Sum64())
}

func cloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
