// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines scoring search branches.
const GO_ROUTINES = 8

// ROLLOUT_CUTOFF defines how many random actions a rollout plays.
const ROLLOUT_CUTOFF = 8

// MAX_TURNS stops a match that nobody has won after this many turns.
const MAX_TURNS = 300

// DIFFICULTY is the preset used when none is configured.
const DIFFICULTY = "normal"

// AGENT_ADDR is where the plan server listens by default.
const AGENT_ADDR = ":8080"

// EVALUATION names the value function scoring search positions.
const EVALUATION = "weighted"
