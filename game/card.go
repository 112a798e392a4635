package game

import "fmt"

// PlayerID identifies one of the two seats of a match.
type PlayerID string

const (
	P1 PlayerID = "P1"
	P2 PlayerID = "P2"
)

// Opponent returns the other seat.
func (p PlayerID) Opponent() PlayerID {
	if p == P1 {
		return P2
	}
	return P1
}

func (p PlayerID) Valid() bool {
	return p == P1 || p == P2
}

type Faction string

const (
	TruthFaction      Faction = "truth"
	GovernmentFaction Faction = "government"
)

func (f Faction) Valid() bool {
	return f == TruthFaction || f == GovernmentFaction
}

type Rarity string

const (
	Common    Rarity = "common"
	Uncommon  Rarity = "uncommon"
	Rare      Rarity = "rare"
	Legendary Rarity = "legendary"
)

func (r Rarity) Valid() bool {
	switch r {
	case Common, Uncommon, Rare, Legendary:
		return true
	}
	return false
}

// CardType selects the effect variant a card carries.
type CardType string

const (
	Attack    CardType = "ATTACK"
	Media     CardType = "MEDIA"
	Zone      CardType = "ZONE"
	Defensive CardType = "DEFENSIVE" // reactive placeholder, resolves to nothing
)

// Effect is the closed set of card effect variants. Each variant reports the
// card type it belongs to, so a card can never carry a mismatched effect.
type Effect interface {
	Type() CardType
	check() error
}

// AttackEffect drains the opponent's IP and optionally discards from their hand.
type AttackEffect struct {
	IPDelta         int // ipDelta.opponent
	DiscardOpponent int
}

func (AttackEffect) Type() CardType { return Attack }

func (e AttackEffect) check() error {
	if e.IPDelta <= 0 {
		return fmt.Errorf("ipDelta.opponent must be positive, got %d", e.IPDelta)
	}
	if e.DiscardOpponent < 0 || e.DiscardOpponent > 2 {
		return fmt.Errorf("discardOpponent must be within [0,2], got %d", e.DiscardOpponent)
	}
	return nil
}

// MediaEffect moves the truth meter; the sign is relative to the truth faction.
type MediaEffect struct {
	TruthDelta int
}

func (MediaEffect) Type() CardType { return Media }

func (e MediaEffect) check() error { return nil }

// ZoneEffect adds pressure on a target territory.
type ZoneEffect struct {
	PressureDelta int
}

func (ZoneEffect) Type() CardType { return Zone }

func (e ZoneEffect) check() error {
	if e.PressureDelta <= 0 {
		return fmt.Errorf("pressureDelta must be positive, got %d", e.PressureDelta)
	}
	return nil
}

type DefensiveEffect struct{}

func (DefensiveEffect) Type() CardType { return Defensive }

func (DefensiveEffect) check() error { return nil }

// Card is an immutable card record. Effects always matches Type.
type Card struct {
	ID      string
	Name    string
	Faction Faction
	Type    CardType
	Rarity  Rarity
	Cost    int
	Effects Effect
}

// NewCard builds a card whose type is taken from the effect variant.
func NewCard(id, name string, faction Faction, rarity Rarity, cost int, effects Effect) (Card, error) {
	if effects == nil {
		return Card{}, &SchemaError{CardID: id, Reason: "missing effects"}
	}
	c := Card{
		ID:      id,
		Name:    name,
		Faction: faction,
		Type:    effects.Type(),
		Rarity:  rarity,
		Cost:    cost,
		Effects: effects,
	}
	if err := c.Validate(); err != nil {
		return Card{}, err
	}
	return c, nil
}

// MustCard is NewCard for static card tables.
func MustCard(id, name string, faction Faction, rarity Rarity, cost int, effects Effect) Card {
	c, err := NewCard(id, name, faction, rarity, cost, effects)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks the mechanical shape of the card.
func (c Card) Validate() error {
	if c.ID == "" {
		return &SchemaError{Type: c.Type, Reason: "missing card id"}
	}
	if _, ok := kinds[c.Type]; !ok {
		return &SchemaError{CardID: c.ID, Type: c.Type, Reason: "unknown card type"}
	}
	if c.Effects == nil {
		return &SchemaError{CardID: c.ID, Type: c.Type, Reason: "missing effects"}
	}
	if c.Effects.Type() != c.Type {
		return &SchemaError{CardID: c.ID, Type: c.Type, Reason: fmt.Sprintf("effects belong to %s", c.Effects.Type())}
	}
	if err := c.Effects.check(); err != nil {
		return &SchemaError{CardID: c.ID, Type: c.Type, Reason: err.Error()}
	}
	if c.Cost < 0 {
		return &SchemaError{CardID: c.ID, Type: c.Type, Reason: fmt.Sprintf("negative cost %d", c.Cost)}
	}
	return nil
}
