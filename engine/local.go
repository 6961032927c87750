package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tilemerge/experiments/metrics"
	"tilemerge/game"
	"tilemerge/searcher/agent"
)

type Option func(e *localEngine)

// WithMaxMoves stops Run after max agent decisions, 0 means no limit.
func WithMaxMoves(max int) Option {
	return func(e *localEngine) {
		if max >= 0 {
			e.maxMoves = max
		}
	}
}

// WithDelay pauses between moves so a watcher can follow the game.
func WithDelay(delay time.Duration) Option {
	return func(e *localEngine) {
		if delay >= 0 {
			e.delay = delay
		}
	}
}

// WithOutput renders the board to out before every move and at game over.
func WithOutput(out io.Writer) Option {
	return func(e *localEngine) {
		e.out = out
	}
}

type localEngine struct {
	agent    agent.Agent
	seed     uint64
	game     *game.Game
	step     int
	maxMoves int
	delay    time.Duration
	out      io.Writer
	color    bool
}

// LocalEngine hosts one game at a time for a. Tile spawns are drawn from a
// generator seeded with seed, so a deterministic agent replays the same game.
func LocalEngine(a agent.Agent, seed uint64, options ...Option) Engine {
	if a == nil {
		panic("agent must not be nil")
	}
	e := &localEngine{
		agent: a,
		seed:  seed,
		game:  game.NewGame(rand.New(rand.NewSource(seed))),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *localEngine) Restart() {
	e.game.Restart()
	e.step = 0
}

// Run executes the select, apply, spawn, terminal cycle once per iteration.
func (e *localEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		Seed:      e.seed,
		StartTime: time.Now(),
	}
	if e.game.IsOver() {
		return e.complete(gameMetric), nil, game.ErrGameOver
	}

	log.Info().Msgf("starting game at move %d", e.step)

	var moveMetrics []metrics.MoveMetric
	for !e.game.IsOver() && (e.maxMoves == 0 || e.step < e.maxMoves) {
		e.render()

		move, searchMetric, err := e.agent.FindMove(ctx, e.game.Board())
		if err != nil {
			return e.complete(gameMetric), moveMetrics, fmt.Errorf("move %d: %w", e.step+1, err)
		}

		score, changed, err := e.game.Step(move)
		if err != nil {
			return e.complete(gameMetric), moveMetrics, fmt.Errorf("move %d: %w", e.step+1, err)
		}
		e.step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         e.step,
			Direction:    move.String(),
			Score:        score,
			Changed:      changed,
			SearchMetric: searchMetric,
		})

		log.Debug().Int("step", e.step).Stringer("move", move).Int("score", e.game.Score()).Msg("played move")

		if e.delay > 0 && !e.game.IsOver() {
			select {
			case <-ctx.Done():
				return e.complete(gameMetric), moveMetrics, ctx.Err()
			case <-time.After(e.delay):
			}
		}
	}
	e.render()

	gameMetric = e.complete(gameMetric)
	if gameMetric.Terminal {
		log.Info().Msgf("game over after %d moves with score %d and max tile %d", gameMetric.TotalMoves, gameMetric.Score, gameMetric.MaxTile)
	} else {
		log.Info().Msgf("stopped after %d moves (no game over yet) with score %d", gameMetric.TotalMoves, gameMetric.Score)
	}
	return gameMetric, moveMetrics, nil
}

func (e *localEngine) complete(gameMetric metrics.GameMetric) metrics.GameMetric {
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.game.Moves()
	gameMetric.Score = e.game.Score()
	gameMetric.MaxTile = e.game.MaxTile()
	gameMetric.Terminal = e.game.IsOver()
	return gameMetric
}
