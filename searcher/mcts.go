package searcher

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"tilemerge/experiments/metrics"
	"tilemerge/game"
	"tilemerge/meta"
)

type Option func(r *Rollout)

// Rollout is the move selection policy. Searches on one Rollout are
// serialized; run several Rollouts to search boards concurrently.
type Rollout struct {
	mu         sync.Mutex
	goroutines int
	depth      int
	rollouts   int
	batchSize  int
	seeds      *rand.Rand
	metrics    metrics.Collector
}

// WithDepth bounds each simulation to depth moves, the first move included.
// Depths below 1 play no random moves, like depth 1.
func WithDepth(depth int) Option {
	return func(r *Rollout) {
		r.depth = max(depth, 1)
	}
}

// WithRollouts sets the number of simulations per legal first move. Zero or
// less ranks first moves by their own score only.
func WithRollouts(rollouts int) Option {
	return func(r *Rollout) {
		r.rollouts = max(rollouts, 0)
	}
}

func WithBatchSize(size int) Option {
	return func(r *Rollout) {
		if size > 0 {
			r.batchSize = size
		}
	}
}

// WithSeed makes the sequence of searches reproducible.
func WithSeed(seed uint64) Option {
	return func(r *Rollout) {
		r.seeds = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(r *Rollout) {
		r.metrics = metrics.NewCollector()
	}
}

func NewRollout(goroutines int, options ...Option) *Rollout {
	if goroutines <= 0 {
		panic("goroutines must be positive")
	}
	r := &Rollout{ // Default values
		goroutines: goroutines,
		depth:      meta.RolloutDepth,
		rollouts:   meta.RolloutsPerMove,
		batchSize:  DefaultBatchSize,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(r)
	}
	if r.seeds == nil {
		r.seeds = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}
	return r
}

// SelectMove sequentially evaluates board with a fresh Rollout and returns
// the best direction.
func SelectMove(board *game.Board, depth, rollouts int) (game.Direction, error) {
	r := NewRollout(1, WithDepth(depth), WithRollouts(rollouts))
	move, _, err := r.SelectMove(context.Background(), board)
	return move, err
}

// SelectMove returns the direction whose first move plus rollouts scored the
// highest total. It returns ErrNoLegalMove on a terminal board.
func (r *Rollout) SelectMove(ctx context.Context, board *game.Board) (game.Direction, metrics.SearchMetric, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.metrics.Start(r.goroutines, r.depth, r.rollouts)
	candidates, err := r.evaluate(ctx, board)
	metric := r.metrics.Complete()
	if err != nil {
		return 0, metric, err
	}

	move, err := best(candidates)
	if err != nil {
		return 0, metric, err
	}

	event := log.Debug().Stringer("move", move)
	for _, c := range candidates {
		if c.Legal {
			event = event.Int64(c.Direction.String(), c.Total)
		}
	}
	event.Msg("selected move")

	return move, metric, nil
}

// Evaluate returns the candidate for every direction without selecting one.
func (r *Rollout) Evaluate(ctx context.Context, board *game.Board) ([4]Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.evaluate(ctx, board)
}

type batch struct {
	candidate int
	index     int
	count     int
}

func (r *Rollout) evaluate(ctx context.Context, board *game.Board) ([4]Candidate, error) {
	seed := r.seeds.Uint64()

	// Play every first move once on its own copy
	var candidates [4]Candidate
	var starts [4]game.Board
	var batches []batch
	legal := 0
	for i, d := range game.Directions {
		starts[i] = board.Copy()
		score, changed := game.ExecuteMove(&starts[i], d)
		if !changed {
			candidates[i] = illegal(d)
			continue
		}

		rng := rand.New(rand.NewSource(mix(seed, firstMoveSalt, uint64(i))))
		if err := game.SpawnTile(&starts[i], rng); err != nil {
			return candidates, fmt.Errorf("first move %v: %w", d, err)
		}
		candidates[i] = scored(d, int64(score))
		legal++

		for k := 0; k*r.batchSize < r.rollouts; k++ {
			batches = append(batches, batch{
				candidate: i,
				index:     k,
				count:     min(r.batchSize, r.rollouts-k*r.batchSize),
			})
		}
	}
	r.metrics.SetLegal(legal)

	// Each batch writes only its own slot, totals are reduced afterwards
	totals := make([]int64, len(batches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.goroutines)
	for j, b := range batches {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(mix(seed, batchSalt+uint64(b.candidate), uint64(b.index))))
			full := 0
			for n := 0; n < b.count; n++ {
				score, ended := playout(starts[b.candidate], r.depth, rng)
				totals[j] += score
				if ended {
					full++
				}
			}
			r.metrics.AddEpisodes(b.count)
			r.metrics.AddFullPlayouts(full)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return candidates, err
	}

	for j, b := range batches {
		candidates[b.candidate].Total += totals[j]
	}
	return candidates, nil
}

// playout plays uniformly random directions on its own copy of board. It
// stops once depth moves were made, counting the first move, or as soon as
// a direction changes nothing. ended reports the latter.
func playout(board game.Board, depth int, rng *rand.Rand) (score int64, ended bool) {
	for moves := 1; moves < depth; moves++ {
		d := game.Directions[rng.Intn(len(game.Directions))]
		points, changed := game.ExecuteMove(&board, d)
		if !changed {
			return score, true
		}
		// A board that just changed always has an empty cell
		_ = game.SpawnTile(&board, rng)
		score += int64(points)
	}
	return score, false
}

// mix derives an independent generator seed (splitmix64 finalizer).
func mix(seed, salt, index uint64) uint64 {
	z := seed ^ (salt + index*firstMoveSalt)
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return z
}
