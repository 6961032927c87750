package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tilemerge/communication"
	"tilemerge/experiments/metrics"
	"tilemerge/game"
	"tilemerge/searcher"
)

// Client asks a remote agent server for moves. It implements agent.Agent.
type Client struct {
	serverURL  string
	httpClient *http.Client
}

func New(serverURL string) *Client {
	return &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *Client) FindMove(ctx context.Context, board *game.Board) (game.Direction, metrics.SearchMetric, error) {
	body, err := json.Marshal(communication.FindMoveRequest{Board: board.Values()})
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+communication.FindMovePath, bytes.NewReader(body))
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e communication.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if resp.StatusCode == http.StatusUnprocessableEntity {
			return 0, metrics.SearchMetric{}, searcher.ErrNoLegalMove
		}
		return 0, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, e.Error)
	}

	var res communication.FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("failed to decode move: %w", err)
	}
	return res.Direction, res.Metric, nil
}

// Healthy reports whether the agent server answers its health check.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+communication.HealthPath, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
