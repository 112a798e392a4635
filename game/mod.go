package game

// Evaluate scores a position between -1 and 1 from perspective's point of
// view; positive favours perspective.
type Evaluate func(gs *GameState, rules Rules, perspective PlayerID, w Weights) float64

// Weights scale the components of the value function. Zero weights drop a
// component entirely.
type Weights struct {
	Truth     float64
	Resource  float64
	Territory float64
	Pressure  float64
	Denial    float64
}

func (w Weights) total() float64 {
	return w.Truth + w.Resource + w.Territory + w.Pressure + w.Denial
}

// DefaultWeights weighs every component equally.
func DefaultWeights() Weights {
	return Weights{Truth: 1, Resource: 1, Territory: 1, Pressure: 1, Denial: 1}
}
