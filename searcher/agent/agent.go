package agent

import (
	"context"

	"tilemerge/experiments/metrics"
	"tilemerge/game"
)

// Agent picks the next direction for the host loop. The board must not be
// mutated by the agent.
type Agent interface {
	// FindMove returns a direction and performance metrics (if collected) from the search
	FindMove(ctx context.Context, board *game.Board) (game.Direction, metrics.SearchMetric, error)
}
