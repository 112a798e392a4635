package game

// Territory is a static contested region of the board.
type Territory struct {
	ID      string // two-letter abbreviation
	Name    string
	Defense int // net pressure needed to capture
}

// DefaultDefense returns a fresh territory -> defense table for the standard board.
func DefaultDefense() map[string]int {
	defense := make(map[string]int, len(territoryAbbreviations))
	for i, abbrev := range territoryAbbreviations {
		defense[abbrev] = territoryDefense[i]
	}
	return defense
}

// DefaultTerritories lists the standard board in its canonical order.
func DefaultTerritories() []Territory {
	out := make([]Territory, len(territoryAbbreviations))
	for i, abbrev := range territoryAbbreviations {
		out[i] = Territory{ID: abbrev, Name: territoryNames[i], Defense: territoryDefense[i]}
	}
	return out
}

// Standard board: the fifty states and DC. Populous states are harder to flip.
var territoryAbbreviations = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

var territoryNames = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut", "Delaware", "District of Columbia", "Florida",
	"Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana", "Maine",
	"Maryland", "Massachusetts", "Michigan", "Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire",
	"New Jersey", "New Mexico", "New York", "North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon", "Pennsylvania", "Rhode Island",
	"South Carolina", "South Dakota", "Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington", "West Virginia", "Wisconsin",
	"Wyoming",
}

var territoryDefense = []int{
	2, 2, 3, 2, 4, 2, 2, 1, 3, 4,
	3, 2, 1, 3, 2, 2, 2, 2, 2, 1,
	2, 3, 3, 2, 2, 2, 1, 1, 2, 1,
	3, 2, 4, 3, 1, 3, 2, 2, 3, 1,
	2, 1, 2, 4, 2, 1, 3, 3, 1, 2,
	1,
}
