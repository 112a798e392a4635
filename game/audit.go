package game

import (
	"fmt"
	"sort"
)

// Finding is an informational audit observation that does not break an invariant.
type Finding struct {
	Code   string
	Detail string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Detail)
}

// Audit checks gs against the state invariants without mutating it. The first
// violated invariant is returned as an *AuditError; softer observations come
// back as findings. Callers decide whether an error aborts the match.
func Audit(gs *GameState, rules Rules) ([]Finding, error) {
	if gs.Truth < MinTruth || gs.Truth > MaxTruth {
		return nil, &AuditError{Code: AuditTruthOutOfRange, Detail: fmt.Sprintf("truth %d outside [%d,%d]", gs.Truth, MinTruth, MaxTruth)}
	}

	if gs.CurrentPlayer != P1 && gs.CurrentPlayer != P2 {
		return nil, &AuditError{Code: AuditCurrentPlayer, Detail: fmt.Sprintf("current player %q is not a seat", gs.CurrentPlayer)}
	}
	for _, t := range gs.Territories() {
		if d := gs.StateDefense[t]; d <= 0 {
			return nil, &AuditError{Code: AuditDefense, Detail: fmt.Sprintf("territory %s has defense %d", t, d)}
		}
	}

	owners := make(map[string]PlayerID)
	for _, id := range []PlayerID{P1, P2} {
		ps, ok := gs.Players[id]
		if !ok {
			return nil, &AuditError{Code: AuditMissingPlayer, Detail: fmt.Sprintf("player %s missing", id)}
		}
		if ps == nil {
			return nil, &AuditError{Code: AuditNilPlayer, Detail: fmt.Sprintf("player %s has no state", id)}
		}
		if ps.IP < 0 {
			return nil, &AuditError{Code: AuditNegativeIP, Detail: fmt.Sprintf("player %s has %d IP", id, ps.IP)}
		}
		for _, t := range sortedOwned(ps) {
			if _, ok := gs.StateDefense[t]; !ok {
				return nil, &AuditError{Code: AuditUnknownTerritory, Detail: fmt.Sprintf("player %s owns unknown territory %s", id, t)}
			}
			if _, ok := gs.Pressure[t]; !ok {
				return nil, &AuditError{Code: AuditMissingPressure, Detail: fmt.Sprintf("territory %s owned by %s has no pressure entry", t, id)}
			}
			if prior, ok := owners[t]; ok {
				return nil, &AuditError{Code: AuditDoubleOwnership, Detail: fmt.Sprintf("territory %s owned by %s and %s", t, prior, id)}
			}
			owners[t] = id
		}
	}

	var findings []Finding
	if gs.PlaysThisTurn > rules.MaxPlaysPerTurn {
		findings = append(findings, Finding{Code: "plays_above_limit", Detail: fmt.Sprintf("%d plays with limit %d", gs.PlaysThisTurn, rules.MaxPlaysPerTurn)})
	}
	if len(gs.TurnPlays) != gs.PlaysThisTurn {
		findings = append(findings, Finding{Code: "play_count_mismatch", Detail: fmt.Sprintf("%d records for %d plays", len(gs.TurnPlays), gs.PlaysThisTurn)})
	}
	for _, rec := range gs.TurnPlays {
		k, ok := kinds[rec.CardType]
		switch {
		case !ok:
			findings = append(findings, Finding{Code: "unknown_card_type", Detail: fmt.Sprintf("play of %s has type %q", rec.CardID, rec.CardType)})
		case k.needsTarget && rec.Target == "":
			findings = append(findings, Finding{Code: "missing_target", Detail: fmt.Sprintf("play of %s has no target", rec.CardID)})
		}
	}
	for _, id := range []PlayerID{P1, P2} {
		ps := gs.Players[id]
		if rules.DrawMode == DrawUpTo && len(ps.Hand) > rules.HandSize {
			findings = append(findings, Finding{Code: "hand_above_ceiling", Detail: fmt.Sprintf("%s holds %d cards (ceiling %d)", id, len(ps.Hand), rules.HandSize)})
		}
		if len(ps.Deck) == 0 {
			findings = append(findings, Finding{Code: "deck_exhausted", Detail: fmt.Sprintf("%s has no cards left to draw", id)})
		}
	}
	return findings, nil
}

func sortedOwned(ps *PlayerState) []string {
	ids := make([]string, 0, len(ps.States))
	for t, owned := range ps.States {
		if owned {
			ids = append(ids, t)
		}
	}
	sort.Strings(ids)
	return ids
}
