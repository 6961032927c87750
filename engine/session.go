package engine

import (
	"context"

	"tilemerge/experiments/metrics"
)

// Session plays games on e until again declines, restarting in the same
// mode after every game over.
func Session(ctx context.Context, e Engine, again func(metrics.GameMetric) bool) error {
	for {
		gameMetric, _, err := e.Run(ctx)
		if err != nil {
			return err
		}
		if !again(gameMetric) {
			return nil
		}
		e.Restart()
	}
}
