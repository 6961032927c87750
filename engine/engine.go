package engine

import (
	"context"

	"tilemerge/experiments/metrics"
)

type Engine interface {
	// Run plays the current game until game over or the move limit is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
	// Restart clears the board for a new game with the same agent
	Restart()
}
