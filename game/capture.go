package game

// Capture re-evaluates ownership of a territory. A player captures it when
// their pressure exceeds the opponent's by at least the territory's defense;
// both counters then reset. Returns the capturing player, if any.
func Capture(gs *GameState, territory string) (PlayerID, bool) {
	defense, ok := gs.StateDefense[territory]
	if !ok {
		return "", false
	}
	for _, x := range []PlayerID{P1, P2} {
		if NetPressure(gs, territory, x) < defense {
			continue
		}
		prior, owned := gs.Owner(territory)
		for _, ps := range gs.Players {
			delete(ps.States, territory)
		}
		gs.Players[x].States[territory] = true
		gs.Pressure[territory] = Pressure{}
		if owned && prior != x {
			gs.Logf("%s captures %s from %s", x, territory, prior)
		} else {
			gs.Logf("%s captures %s", x, territory)
		}
		return x, true
	}
	return "", false
}

// NetPressure is player's pressure minus the opponent's, floored at 0.
func NetPressure(gs *GameState, territory string, player PlayerID) int {
	p := gs.Pressure[territory]
	return max(0, p.Of(player)-p.Of(player.Opponent()))
}

// Owner returns the owner of a territory.
func (gs *GameState) Owner(territory string) (PlayerID, bool) {
	for _, id := range []PlayerID{P1, P2} {
		if ps, ok := gs.Players[id]; ok && ps.States[territory] {
			return id, true
		}
	}
	return "", false
}

// Contested lists territories where either side holds pressure, in stable order.
func (gs *GameState) Contested() []string {
	var out []string
	for _, t := range gs.Territories() {
		p := gs.Pressure[t]
		if p.P1 > 0 || p.P2 > 0 {
			out = append(out, t)
		}
	}
	return out
}

// OwnedCount returns how many territories a player owns.
func (gs *GameState) OwnedCount(player PlayerID) int {
	return len(gs.Players[player].States)
}
