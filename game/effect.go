package game

import (
	"math"

	"conspiracy/utils"
)

// cardKind is the single dispatch entry for a card type. The resolver, the
// auditor and the AI move ordering all go through this table.
type cardKind struct {
	needsTarget bool
	resolve     func(gs *GameState, actor PlayerID, card Card, target string, multiplier float64)
	// impact is a static estimate of how much the effect moves the game, used
	// to order candidate plays before any simulation.
	impact func(e Effect) float64
}

var kinds = map[CardType]cardKind{
	Attack: {
		resolve: resolveAttack,
		impact: func(e Effect) float64 {
			a := e.(AttackEffect)
			return float64(a.IPDelta) + 2*float64(a.DiscardOpponent)
		},
	},
	Media: {
		resolve: resolveMedia,
		impact: func(e Effect) float64 {
			return math.Abs(float64(e.(MediaEffect).TruthDelta))
		},
	},
	Zone: {
		needsTarget: true,
		resolve:     resolveZone,
		impact: func(e Effect) float64 {
			return 2 * float64(e.(ZoneEffect).PressureDelta)
		},
	},
	Defensive: {
		resolve: func(gs *GameState, actor PlayerID, card Card, _ string, _ float64) {
			gs.Logf("%s plays %s (defensive, no effect)", actor, card.Name)
		},
		impact: func(Effect) float64 { return 0 },
	},
}

// NeedsTarget reports whether cards of this type require a target territory.
func NeedsTarget(t CardType) bool {
	return kinds[t].needsTarget
}

// Impact is the static heuristic weight of a card's effect.
func Impact(c Card) float64 {
	k, ok := kinds[c.Type]
	if !ok || c.Effects == nil {
		return 0
	}
	return k.impact(c.Effects)
}

// Resolve applies a card's effect for actor against gs. The input contract is
// checked before anything is mutated. A multiplier <= 0 means no bonus.
func Resolve(gs *GameState, actor PlayerID, card Card, target string, multiplier float64) error {
	if err := card.Validate(); err != nil {
		return err
	}
	if !actor.Valid() {
		return illegal(actor, card.ID, "unknown player")
	}
	k := kinds[card.Type]
	if err := checkTarget(gs, actor, card, k, target); err != nil {
		return err
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	k.resolve(gs, actor, card, target, multiplier)
	return nil
}

func checkTarget(gs *GameState, actor PlayerID, card Card, k cardKind, target string) error {
	if !k.needsTarget {
		if target != "" {
			return illegal(actor, card.ID, "%s cards take no target, got %q", card.Type, target)
		}
		return nil
	}
	if target == "" {
		return illegal(actor, card.ID, "%s cards require a target territory", card.Type)
	}
	if _, ok := gs.StateDefense[target]; !ok {
		return illegal(actor, card.ID, "unknown target territory %q", target)
	}
	return nil
}

// MediaSwing is the signed truth change a MEDIA delta produces for a faction
// under a multiplier, and the part of it contributed by the multiplier.
func MediaSwing(faction Faction, truthDelta int, multiplier float64) (swing, bonus int) {
	base := truthDelta
	if faction == GovernmentFaction {
		base = -base
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	// math.Round rounds half away from zero, keeping both factions symmetric.
	swing = int(math.Round(float64(base) * multiplier))
	return swing, swing - base
}

func resolveMedia(gs *GameState, actor PlayerID, card Card, _ string, multiplier float64) {
	e := card.Effects.(MediaEffect)
	faction := gs.Players[actor].Faction
	swing, bonus := MediaSwing(faction, e.TruthDelta, multiplier)
	before := gs.Truth
	gs.Truth = utils.Clamp(gs.Truth+swing, MinTruth, MaxTruth)
	gs.Logf("%s plays %s: truth %d -> %d (%+d)", actor, card.Name, before, gs.Truth, swing-bonus)
	if bonus != 0 {
		gs.Logf("%s combo bonus on %s: %+d truth (x%.2f)", actor, card.Name, bonus, multiplier)
	}
}

func resolveAttack(gs *GameState, actor PlayerID, card Card, _ string, _ float64) {
	e := card.Effects.(AttackEffect)
	opp := gs.Players[actor.Opponent()]
	before := opp.IP
	opp.IP = max(0, opp.IP-e.IPDelta)
	gs.Logf("%s plays %s: %s IP %d -> %d", actor, card.Name, opp.ID, before, opp.IP)

	n := min(e.DiscardOpponent, len(opp.Hand))
	if n == 0 {
		return
	}
	// Oldest cards sit at the front of the hand.
	discarded := cloneCards(opp.Hand[:n])
	opp.Hand = cloneCards(opp.Hand[n:])
	opp.Discard = append(opp.Discard, discarded...)
	for _, c := range discarded {
		gs.Logf("%s discards %s", opp.ID, c.Name)
	}
}

func resolveZone(gs *GameState, actor PlayerID, card Card, target string, _ float64) {
	e := card.Effects.(ZoneEffect)
	gs.Pressure[target] = gs.Pressure[target].add(actor, e.PressureDelta)
	gs.Logf("%s plays %s on %s: pressure %d (defense %d)",
		actor, card.Name, target, gs.Pressure[target].Of(actor), gs.StateDefense[target])
	Capture(gs, target)
}
