package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"conspiracy/experiments/metrics"
	"conspiracy/game"
	"conspiracy/searcher/agent"
)

type remoteAgent struct {
	url    string
	client *http.Client
}

// RemoteAgent asks an agent server at baseURL to plan each turn.
func RemoteAgent(baseURL string, client *http.Client) agent.Agent {
	if client == nil {
		client = http.DefaultClient
	}
	return remoteAgent{url: baseURL + "/plan", client: client}
}

// FindActions encodes the current state in JSON and posts it to /plan on the agent side
func (r remoteAgent) FindActions(ctx context.Context, state *game.GameState, _ game.Rules) ([]game.Action, metrics.SearchMetric, error) {
	body, err := json.Marshal(agent.PlanRequest{State: *state})
	if err != nil {
		return nil, metrics.SearchMetric{}, fmt.Errorf("failed to encode state: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return nil, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}
	var plan agent.PlanResponse
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, metrics.SearchMetric{}, fmt.Errorf("failed to decode actions: %w", err)
	}
	return plan.Actions, metrics.SearchMetric{}, nil
}
