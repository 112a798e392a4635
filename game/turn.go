package game

// StartTurn runs the START phase for the current player: applies the draw
// policy, clears per-turn bookkeeping and opens the ACT phase.
func StartTurn(gs *GameState, rules Rules) error {
	if gs.Won != "" {
		return illegal(gs.CurrentPlayer, "", "match is over")
	}
	if gs.Phase != StartPhase {
		return illegal(gs.CurrentPlayer, "", "cannot start a turn in phase %s", gs.Phase)
	}
	ps := gs.Current()

	drawn := 0
	switch rules.DrawMode {
	case DrawFixed:
		for drawn < rules.DrawCount && draw(ps) {
			drawn++
		}
	default:
		for len(ps.Hand) < rules.HandSize && draw(ps) {
			drawn++
		}
	}

	gs.PlaysThisTurn = 0
	gs.TurnPlays = gs.TurnPlays[:0]
	gs.Phase = ActPhase
	gs.Logf("turn %d: %s draws %d (hand %d, deck %d)", gs.Turn, ps.ID, drawn, len(ps.Hand), len(ps.Deck))
	if gs.ActionsBlocked {
		gs.Logf("%s is skipped this turn", ps.ID)
	}
	return nil
}

func draw(ps *PlayerState) bool {
	if len(ps.Deck) == 0 {
		return false
	}
	ps.Hand = append(ps.Hand, ps.Deck[0])
	ps.Deck = ps.Deck[1:]
	return true
}

// CheckPlay reports why the current player cannot play cardID on target, or nil.
// It never mutates the state.
func CheckPlay(gs *GameState, rules Rules, cardID, target string) error {
	actor := gs.CurrentPlayer
	if gs.Won != "" {
		return illegal(actor, cardID, "match is over")
	}
	if gs.Phase != ActPhase {
		return illegal(actor, cardID, "cards can only be played in phase %s, not %s", ActPhase, gs.Phase)
	}
	if gs.ActionsBlocked {
		return illegal(actor, cardID, "actions are skipped this turn")
	}
	if gs.PlaysThisTurn >= rules.MaxPlaysPerTurn {
		return illegal(actor, cardID, "play limit of %d reached", rules.MaxPlaysPerTurn)
	}
	ps := gs.Current()
	i := ps.HandIndex(cardID)
	if i < 0 {
		return illegal(actor, cardID, "card not in hand")
	}
	card := ps.Hand[i]
	if card.Cost > ps.IP {
		return illegal(actor, cardID, "costs %d IP, only %d available", card.Cost, ps.IP)
	}
	k, ok := kinds[card.Type]
	if !ok {
		return &SchemaError{CardID: card.ID, Type: card.Type, Reason: "unknown card type"}
	}
	return checkTarget(gs, actor, card, k, target)
}

// PlayCard runs one ACT-phase play for the current player. A rejected play
// leaves gs untouched; an accepted one is applied as a whole.
func PlayCard(gs *GameState, rules Rules, cardID, target string, multiplier float64) error {
	if err := CheckPlay(gs, rules, cardID, target); err != nil {
		return err
	}

	next := gs.Clone()
	actor := next.CurrentPlayer
	ps := next.Current()
	i := ps.HandIndex(cardID)
	card := ps.Hand[i]

	ps.IP -= card.Cost
	ps.Hand = append(ps.Hand[:i], ps.Hand[i+1:]...)
	ps.Discard = append(ps.Discard, card)
	if err := Resolve(next, actor, card, target, multiplier); err != nil {
		return err
	}
	next.PlaysThisTurn++
	next.TurnPlays = append(next.TurnPlays, PlayRecord{Player: actor, CardID: card.ID, CardType: card.Type, Target: target})
	next.Won = next.CheckWinner(rules)

	*gs = *next
	return nil
}

// EndTurn closes the turn: optional discards, passive income, hand-over to the
// other player and any pending skip for them.
func EndTurn(gs *GameState, rules Rules, discards []string) error {
	actor := gs.CurrentPlayer
	if gs.Won != "" {
		return illegal(actor, "", "match is over")
	}
	if gs.Phase != ActPhase {
		return illegal(actor, "", "turns can only end in phase %s, not %s", ActPhase, gs.Phase)
	}
	ps := gs.Current()
	seen := make(map[string]bool, len(discards))
	for _, id := range discards {
		if seen[id] {
			return illegal(actor, id, "discarded twice")
		}
		seen[id] = true
		if ps.HandIndex(id) < 0 {
			return illegal(actor, id, "cannot discard a card that is not in hand")
		}
	}

	gs.Phase = EndPhase
	for _, id := range discards {
		i := ps.HandIndex(id)
		ps.Discard = append(ps.Discard, ps.Hand[i])
		ps.Hand = append(ps.Hand[:i], ps.Hand[i+1:]...)
	}

	for _, id := range []PlayerID{P1, P2} {
		p := gs.Players[id]
		if income := rules.Income(p); income > 0 {
			p.IP += income
			gs.Logf("%s gains %d IP (%d states)", id, income, len(p.States))
		}
	}

	gs.PlaysThisTurn = 0
	gs.TurnPlays = gs.TurnPlays[:0]
	gs.ActionsBlocked = false
	gs.CurrentPlayer = actor.Opponent()
	gs.Turn++

	if gs.SkipActions[gs.CurrentPlayer] > 0 {
		gs.SkipActions[gs.CurrentPlayer]--
		gs.ActionsBlocked = true
	}

	gs.Phase = StartPhase
	gs.Won = gs.CheckWinner(rules)
	gs.Logf("%s ends turn", actor)
	return nil
}

// QueueSkip makes the player's next n turns action-less. Ending those turns is
// still allowed.
func QueueSkip(gs *GameState, player PlayerID, n int) {
	if n <= 0 {
		return
	}
	gs.SkipActions[player] += n
	gs.Logf("%s will skip %d turn(s)", player, n)
}

// Apply dispatches an action through the turn controller.
func Apply(gs *GameState, rules Rules, action Action) error {
	switch action.Kind {
	case PlayAction:
		return PlayCard(gs, rules, action.CardID, action.Target, action.Multiplier)
	case EndAction:
		return EndTurn(gs, rules, action.Discards)
	default:
		return illegal(gs.CurrentPlayer, action.CardID, "unknown action kind %d", action.Kind)
	}
}

// Play returns the state after action without touching gs.
func (gs *GameState) Play(rules Rules, action Action) (*GameState, error) {
	next := gs.Clone()
	if err := Apply(next, rules, action); err != nil {
		return nil, err
	}
	return next, nil
}

// LegalActions returns every affordable play for the current player, with one
// entry per valid target, followed by end turn. Outside the ACT phase nothing
// is legal.
func (gs *GameState) LegalActions(rules Rules) []Action {
	if gs.Won != "" || gs.Phase != ActPhase {
		return nil
	}
	actions := []Action{}
	if !gs.ActionsBlocked && gs.PlaysThisTurn < rules.MaxPlaysPerTurn {
		ps := gs.Current()
		var territories []string
		for _, card := range ps.Hand {
			if card.Cost > ps.IP {
				continue
			}
			if !NeedsTarget(card.Type) {
				actions = append(actions, PlayCardAction(card.ID, ""))
				continue
			}
			if territories == nil {
				territories = gs.Territories()
			}
			for _, t := range territories {
				actions = append(actions, PlayCardAction(card.ID, t))
			}
		}
	}
	return append(actions, EndTurnAction())
}

// Winner returns the winning player, or "" while the match is running.
func (gs *GameState) Winner() PlayerID {
	return gs.Won
}

// CheckWinner evaluates the win conditions without mutating gs.
func (gs *GameState) CheckWinner(rules Rules) PlayerID {
	if rules.TruthWinAt > 0 && gs.Truth >= rules.TruthWinAt {
		return gs.PlayerOf(TruthFaction)
	}
	if gs.Truth <= rules.GovernmentWinAt {
		return gs.PlayerOf(GovernmentFaction)
	}
	for _, id := range []PlayerID{gs.CurrentPlayer, gs.CurrentPlayer.Opponent()} {
		ps := gs.Players[id]
		if rules.StatesToWin > 0 && len(ps.States) >= rules.StatesToWin {
			return id
		}
		if rules.IPToWin > 0 && ps.IP >= rules.IPToWin {
			return id
		}
	}
	return ""
}
