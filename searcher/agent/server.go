package agent

import (
	"encoding/json"
	"errors"
	"net/http"

	"conspiracy/game"

	"github.com/rs/zerolog/log"
)

type PlanRequest struct {
	State game.GameState `json:"state"`
}

type PlanResponse struct {
	Actions []game.Action `json:"actions"`
}

type server struct {
	agent Agent
	rules game.Rules
}

// NewServer exposes an agent over HTTP. POST /plan takes a game state in its
// ACT phase and answers with the actions for the current player's turn.
func NewServer(agent Agent, rules game.Rules) http.Handler {
	s := &server{agent: agent, rules: rules}
	// Create a local mux rather than using the global DefaultServeMux
	mux := http.NewServeMux()
	mux.HandleFunc("POST /plan", s.handlePlan)
	return mux
}

// StartServer serves NewServer on addr until it fails.
func StartServer(addr string, agent Agent, rules game.Rules) error {
	log.Info().Msgf("Starting agent server on %s", addr)
	return http.ListenAndServe(addr, NewServer(agent, rules))
}

func (s *server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var payload PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	state := &payload.State
	if state.SkipActions == nil {
		state.SkipActions = map[game.PlayerID]int{}
	}
	for _, ps := range state.Players {
		if ps != nil && ps.States == nil {
			ps.States = map[string]bool{}
		}
	}
	if _, err := game.Audit(state, s.rules); err != nil {
		http.Error(w, "inconsistent state: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	actions, _, err := s.agent.FindActions(r.Context(), state, s.rules)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, game.ErrIllegalAction) {
			status = http.StatusConflict
		}
		log.Warn().Err(err).Msg("Failed to plan turn")
		http.Error(w, "failed to plan: "+err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(PlanResponse{Actions: actions}); err != nil {
		http.Error(w, "failed to encode actions: "+err.Error(), http.StatusInternalServerError)
	}
}
