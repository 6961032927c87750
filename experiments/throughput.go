package experiments

import (
	"context"

	"tilemerge/experiments/metrics"
)

// ThroughputConfigs keep the search budget fixed and only vary the number of
// rollout workers.
func ThroughputConfigs(depth, rollouts int) []metrics.AgentConfig {
	goroutines := []int{1, 2, 4, 8, 16}
	configs := make([]metrics.AgentConfig, len(goroutines))
	for i, n := range goroutines {
		configs[i] = metrics.AgentConfig{ID: i + 1, Kind: KindRollout, Goroutines: n, Depth: depth, Rollouts: rollouts}
	}
	return configs
}

// RunThroughput measures search time per move across worker counts. With
// equal seeds every config plays the identical game, so only durations differ.
func RunThroughput(ctx context.Context, depth, rollouts int, opts Options) ([]metrics.Summary, error) {
	// Parallel games would compete with the rollout workers for cores
	opts.Parallel = 1
	return Run(ctx, "throughput", ThroughputConfigs(depth, rollouts), opts)
}
