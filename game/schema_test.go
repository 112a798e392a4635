package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEffects(t *testing.T) {
	t.Run("parsing every card type", func(t *testing.T) {
		attack, err := ParseEffects("a", Attack, map[string]any{
			"ipDelta":         map[string]any{"opponent": 3.0},
			"discardOpponent": 1.0,
		})
		require.NoError(t, err)
		require.Equal(t, AttackEffect{IPDelta: 3, DiscardOpponent: 1}, attack)

		media, err := ParseEffects("m", Media, map[string]any{"truthDelta": -4.0})
		require.NoError(t, err)
		require.Equal(t, MediaEffect{TruthDelta: -4}, media)

		zone, err := ParseEffects("z", Zone, map[string]any{"pressureDelta": 2})
		require.NoError(t, err)
		require.Equal(t, ZoneEffect{PressureDelta: 2}, zone)

		defensive, err := ParseEffects("d", Defensive, map[string]any{})
		require.NoError(t, err)
		require.Equal(t, DefensiveEffect{}, defensive)
	})

	t.Run("rejecting keys outside the type whitelist", func(t *testing.T) {
		_, err := ParseEffects("m", Media, map[string]any{"truthDelta": 2.0, "pressureDelta": 1.0})

		require.ErrorIs(t, err, ErrInvalidEffectSchema, "Unknown keys should never be dropped silently")
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		require.Equal(t, "pressureDelta", schemaErr.Key)
	})

	t.Run("rejecting unknown nested keys", func(t *testing.T) {
		_, err := ParseEffects("a", Attack, map[string]any{
			"ipDelta": map[string]any{"opponent": 2.0, "self": 1.0},
		})

		require.ErrorIs(t, err, ErrInvalidEffectSchema)
	})

	t.Run("rejecting missing and out of range values", func(t *testing.T) {
		_, err := ParseEffects("z", Zone, map[string]any{})
		require.ErrorIs(t, err, ErrInvalidEffectSchema, "pressureDelta is required")

		_, err = ParseEffects("z", Zone, map[string]any{"pressureDelta": 0.0})
		require.ErrorIs(t, err, ErrInvalidEffectSchema, "pressureDelta must be positive")

		_, err = ParseEffects("a", Attack, map[string]any{
			"ipDelta":         map[string]any{"opponent": 2.0},
			"discardOpponent": 3.0,
		})
		require.ErrorIs(t, err, ErrInvalidEffectSchema, "discardOpponent is capped at 2")

		_, err = ParseEffects("m", Media, map[string]any{"truthDelta": 1.5})
		require.ErrorIs(t, err, ErrInvalidEffectSchema, "fractional deltas are invalid")
	})

	t.Run("rejecting an unknown card type", func(t *testing.T) {
		_, err := ParseEffects("x", CardType("RITUAL"), map[string]any{})

		require.ErrorIs(t, err, ErrInvalidEffectSchema)
	})
}

func TestCardJSON(t *testing.T) {
	t.Run("decoding a card validates its effects", func(t *testing.T) {
		raw := `{"id":"leak","name":"Leaked Memo","faction":"truth","type":"MEDIA","rarity":"rare","cost":3,"effects":{"truthDelta":4}}`

		var card Card
		require.NoError(t, json.Unmarshal([]byte(raw), &card))

		require.Equal(t, Media, card.Type)
		require.Equal(t, MediaEffect{TruthDelta: 4}, card.Effects)
		require.Equal(t, 3, card.Cost)
	})

	t.Run("decoding a card with mismatched effects fails", func(t *testing.T) {
		raw := `{"id":"bad","name":"Bad","faction":"truth","type":"ZONE","cost":1,"effects":{"truthDelta":4}}`

		var card Card
		err := json.Unmarshal([]byte(raw), &card)

		require.ErrorIs(t, err, ErrInvalidEffectSchema)
	})

	t.Run("encoding keeps the whitelisted shape", func(t *testing.T) {
		card := attackCard("hit", 3, 1)

		data, err := json.Marshal(card)
		require.NoError(t, err)

		var decoded Card
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, card, decoded)
	})
}

func TestNewCard(t *testing.T) {
	t.Run("type follows the effect variant", func(t *testing.T) {
		card, err := NewCard("z", "Rally", TruthFaction, Common, 2, ZoneEffect{PressureDelta: 1})

		require.NoError(t, err)
		require.Equal(t, Zone, card.Type)
	})

	t.Run("rejecting a card whose type disagrees with its effects", func(t *testing.T) {
		card := Card{ID: "x", Type: Attack, Effects: MediaEffect{TruthDelta: 1}}

		require.ErrorIs(t, card.Validate(), ErrInvalidEffectSchema)
	})
}
