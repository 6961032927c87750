// Package communication holds the wire types shared by the agent server
// and its client.
package communication

import (
	"tilemerge/experiments/metrics"
	"tilemerge/game"
)

const (
	FindMovePath = "/findmove"
	HealthPath   = "/healthz"
)

// FindMoveRequest carries the board as exponents, 0 for an empty cell.
type FindMoveRequest struct {
	Board [game.Size][game.Size]int8 `json:"board"`
}

type FindMoveResponse struct {
	Direction game.Direction       `json:"direction"`
	Metric    metrics.SearchMetric `json:"metric"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
