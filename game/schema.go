package game

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"conspiracy/utils"
)

// effectKeys is the whitelist of top-level effect keys per card type.
var effectKeys = map[CardType][]string{
	Attack:    {"ipDelta", "discardOpponent"},
	Media:     {"truthDelta"},
	Zone:      {"pressureDelta"},
	Defensive: {},
}

var requiredKeys = map[CardType][]string{
	Attack: {"ipDelta"},
	Media:  {"truthDelta"},
	Zone:   {"pressureDelta"},
}

// ParseEffects converts an untyped effect bag (as decoded from card content)
// into the effect variant of the given type. Unknown, missing and mistyped keys
// are rejected; nothing is dropped silently.
func ParseEffects(cardID string, t CardType, raw map[string]any) (Effect, error) {
	allowed, ok := effectKeys[t]
	if !ok {
		return nil, &SchemaError{CardID: cardID, Type: t, Reason: "unknown card type"}
	}
	for _, key := range sortedKeys(raw) {
		if utils.FindIndex(allowed, key) < 0 {
			return nil, &SchemaError{CardID: cardID, Type: t, Key: key, Reason: "not allowed for this card type"}
		}
	}
	for _, key := range requiredKeys[t] {
		if _, ok := raw[key]; !ok {
			return nil, &SchemaError{CardID: cardID, Type: t, Key: key, Reason: "required"}
		}
	}

	var effect Effect
	switch t {
	case Attack:
		nested, ok := raw["ipDelta"].(map[string]any)
		if !ok {
			return nil, &SchemaError{CardID: cardID, Type: t, Key: "ipDelta", Reason: "must be an object"}
		}
		for _, key := range sortedKeys(nested) {
			if key != "opponent" {
				return nil, &SchemaError{CardID: cardID, Type: t, Key: "ipDelta." + key, Reason: "not allowed for this card type"}
			}
		}
		opponent, err := intField(nested, "opponent", true)
		if err != nil {
			return nil, &SchemaError{CardID: cardID, Type: t, Key: "ipDelta.opponent", Reason: err.Error()}
		}
		discard, err := intField(raw, "discardOpponent", false)
		if err != nil {
			return nil, &SchemaError{CardID: cardID, Type: t, Key: "discardOpponent", Reason: err.Error()}
		}
		effect = AttackEffect{IPDelta: opponent, DiscardOpponent: discard}
	case Media:
		delta, err := intField(raw, "truthDelta", true)
		if err != nil {
			return nil, &SchemaError{CardID: cardID, Type: t, Key: "truthDelta", Reason: err.Error()}
		}
		effect = MediaEffect{TruthDelta: delta}
	case Zone:
		delta, err := intField(raw, "pressureDelta", true)
		if err != nil {
			return nil, &SchemaError{CardID: cardID, Type: t, Key: "pressureDelta", Reason: err.Error()}
		}
		effect = ZoneEffect{PressureDelta: delta}
	case Defensive:
		effect = DefensiveEffect{}
	}

	if err := effect.check(); err != nil {
		return nil, &SchemaError{CardID: cardID, Type: t, Reason: err.Error()}
	}
	return effect, nil
}

// EffectFields is the inverse of ParseEffects.
func EffectFields(e Effect) map[string]any {
	switch e := e.(type) {
	case AttackEffect:
		fields := map[string]any{"ipDelta": map[string]any{"opponent": e.IPDelta}}
		if e.DiscardOpponent > 0 {
			fields["discardOpponent"] = e.DiscardOpponent
		}
		return fields
	case MediaEffect:
		return map[string]any{"truthDelta": e.TruthDelta}
	case ZoneEffect:
		return map[string]any{"pressureDelta": e.PressureDelta}
	default:
		return map[string]any{}
	}
}

type cardJSON struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Faction Faction        `json:"faction"`
	Type    CardType       `json:"type"`
	Rarity  Rarity         `json:"rarity,omitempty"`
	Cost    int            `json:"cost"`
	Effects map[string]any `json:"effects"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{
		ID:      c.ID,
		Name:    c.Name,
		Faction: c.Faction,
		Type:    c.Type,
		Rarity:  c.Rarity,
		Cost:    c.Cost,
		Effects: EffectFields(c.Effects),
	})
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var aux cardJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	effects, err := ParseEffects(aux.ID, aux.Type, aux.Effects)
	if err != nil {
		return err
	}
	card := Card{
		ID:      aux.ID,
		Name:    aux.Name,
		Faction: aux.Faction,
		Type:    aux.Type,
		Rarity:  aux.Rarity,
		Cost:    aux.Cost,
		Effects: effects,
	}
	if err := card.Validate(); err != nil {
		return err
	}
	*c = card
	return nil
}

func intField(m map[string]any, key string, required bool) (int, error) {
	v, ok := m[key]
	if !ok {
		if required {
			return 0, fmt.Errorf("required")
		}
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("must be an integer, got %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("must be an integer, got %s", n)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("must be a number, got %T", v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
