package experiments

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"tilemerge/engine"
	"tilemerge/experiments/metrics"
	"tilemerge/searcher"
	"tilemerge/searcher/agent"
)

const (
	KindRollout = "rollout"
	KindRandom  = "random"
)

// ReachedTiles are the max-tile thresholds counted in summaries.
var ReachedTiles = []int{256, 512, 1024, 2048, 4096}

type Options struct {
	Games    int    // Per agent config
	Dir      string // Root directory for records, nothing is written when empty
	MaxMoves int    // Per game, 0 means play until game over
	Seed     uint64 // Game i of every config spawns tiles from Seed+i
	Parallel int    // Games played at the same time
}

// StrengthConfigs pits rollout budgets against the random baseline.
func StrengthConfigs(goroutines, depth int) []metrics.AgentConfig {
	return []metrics.AgentConfig{
		{ID: 0, Kind: KindRandom},
		{ID: 1, Kind: KindRollout, Goroutines: goroutines, Depth: depth, Rollouts: 25},
		{ID: 2, Kind: KindRollout, Goroutines: goroutines, Depth: depth, Rollouts: 100},
		{ID: 3, Kind: KindRollout, Goroutines: goroutines, Depth: depth, Rollouts: 400},
	}
}

func RunStrength(ctx context.Context, goroutines, depth int, opts Options) ([]metrics.Summary, error) {
	return Run(ctx, "strength", StrengthConfigs(goroutines, depth), opts)
}

// Run plays opts.Games games for every config, stores the records under
// opts.Dir and returns one summary per config.
func Run(ctx context.Context, name string, configs []metrics.AgentConfig, opts Options) ([]metrics.Summary, error) {
	if opts.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", opts.Games)
	}
	parallel := max(opts.Parallel, 1)

	log.Info().Msgf("starting %s experiment with %d configs and %d games each...", name, len(configs), opts.Games)

	// Every game owns its slot, so records come out in the same order
	// however the games were scheduled
	gameRecords := make([]metrics.GameRecord, len(configs)*opts.Games)
	moveRecords := make([][]metrics.MoveRecord, len(gameRecords))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for ci, config := range configs {
		for i := 0; i < opts.Games; i++ {
			id := ci*opts.Games + i + 1
			seed := opts.Seed + uint64(i)
			g.Go(func() error {
				e := engine.LocalEngine(newAgent(config, seed), seed, engine.WithMaxMoves(opts.MaxMoves))
				gameMetric, moveMetrics, err := e.Run(ctx)
				if err != nil {
					return fmt.Errorf("agent %d game %d: %w", config.ID, i+1, err)
				}

				gameRecords[id-1] = metrics.GameRecord{ID: id, Agent: config.ID, GameMetric: gameMetric}
				moveRecords[id-1] = lo.Map(moveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
					return metrics.MoveRecord{Game: id, MoveMetric: mm}
				})

				log.Info().Msgf("completed agent %d game %d of %d with score %d", config.ID, i+1, opts.Games, gameMetric.Score)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s experiment", name)

	summaries := Summarize(configs, gameRecords)
	if opts.Dir == "" {
		return summaries, nil
	}
	if err := store(name, opts.Dir, configs, gameRecords, lo.Flatten(moveRecords), summaries); err != nil {
		return summaries, err
	}
	return summaries, nil
}

// Summarize reduces the game records of every config to score statistics.
func Summarize(configs []metrics.AgentConfig, records []metrics.GameRecord) []metrics.Summary {
	return lo.Map(configs, func(config metrics.AgentConfig, _ int) metrics.Summary {
		games := lo.Filter(records, func(r metrics.GameRecord, _ int) bool {
			return r.Agent == config.ID
		})
		summary := metrics.Summary{
			Agent:   config.ID,
			Games:   len(games),
			Reached: map[int]int{},
		}
		if len(games) == 0 {
			return summary
		}

		scores := lo.Map(games, func(r metrics.GameRecord, _ int) float64 {
			return float64(r.Score)
		})
		summary.MeanScore, summary.StdScore = stat.MeanStdDev(scores, nil)
		if math.IsNaN(summary.StdScore) {
			summary.StdScore = 0
		}
		summary.BestScore = lo.MaxBy(games, func(a, b metrics.GameRecord) bool {
			return a.Score > b.Score
		}).Score
		summary.MeanMoves = float64(lo.SumBy(games, func(r metrics.GameRecord) int {
			return r.TotalMoves
		})) / float64(len(games))
		summary.BestTile = lo.MaxBy(games, func(a, b metrics.GameRecord) bool {
			return a.MaxTile > b.MaxTile
		}).MaxTile
		for _, tile := range ReachedTiles {
			summary.Reached[tile] = lo.CountBy(games, func(r metrics.GameRecord) bool {
				return r.MaxTile >= tile
			})
		}
		return summary
	})
}

func newAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	switch config.Kind {
	case KindRandom:
		return agent.NewRandomAgent(seed)
	case KindRollout:
		return agent.NewEvaluationAgent(createRollout(config, seed))
	default:
		panic(fmt.Sprintf("unknown agent kind %q", config.Kind))
	}
}

func createRollout(config metrics.AgentConfig, seed uint64) *searcher.Rollout {
	options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}

	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Rollouts >= 0 {
		options = append(options, searcher.WithRollouts(config.Rollouts))
	}

	return searcher.NewRollout(max(config.Goroutines, 1), options...)
}

func store(name, dir string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord, summaries []metrics.Summary) error {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return err
	}
	log.Info().Msg("stored move records")

	if err := writer.WriteSummaries(summaries, ReachedTiles); err != nil {
		return err
	}
	log.Info().Msgf("stored summaries in %s", writer.Dir())
	return nil
}
