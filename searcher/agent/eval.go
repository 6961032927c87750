package agent

import (
	"context"

	"tilemerge/experiments/metrics"
	"tilemerge/game"
	"tilemerge/searcher"
)

type evaluationAgent struct {
	rollout *searcher.Rollout
}

// NewEvaluationAgent returns an agent that plays the move chosen by rollouts.
func NewEvaluationAgent(rollout *searcher.Rollout) Agent {
	return evaluationAgent{rollout: rollout}
}

func (a evaluationAgent) FindMove(ctx context.Context, board *game.Board) (game.Direction, metrics.SearchMetric, error) {
	return a.rollout.SelectMove(ctx, board)
}
