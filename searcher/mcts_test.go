package searcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tilemerge/game"
)

func board(t *testing.T, values [game.Size][game.Size]int8) *game.Board {
	t.Helper()
	b, err := game.BoardFromValues(values)
	require.NoError(t, err)
	return b
}

var lockedValues = [game.Size][game.Size]int8{
	{1, 2, 1, 2},
	{2, 1, 2, 1},
	{1, 2, 1, 2},
	{2, 1, 2, 1},
}

func TestNewRollout(t *testing.T) {
	t.Run("panics with zero goroutines", func(t *testing.T) {
		require.Panics(t, func() {
			NewRollout(0)
		})
	})

	t.Run("clamping out of range budgets", func(t *testing.T) {
		r := NewRollout(2, WithDepth(0), WithRollouts(-1), WithBatchSize(0))

		require.Equal(t, 2, r.goroutines)
		require.Equal(t, DefaultBatchSize, r.batchSize)
		require.Equal(t, 1, r.depth, "A depth below one plays no random moves")
		require.Zero(t, r.rollouts, "Negative rollouts run no simulations")
	})
}

func TestSelectMove(t *testing.T) {
	t.Run("choosing the only legal direction", func(t *testing.T) {
		values := lockedValues
		values[0][3] = 0
		values[1][3] = 0
		values[2][3] = 0
		values[3][3] = 0
		// Only right changes this board: column 3 is empty and no pairs exist
		b := board(t, values)
		r := NewRollout(4, WithDepth(20), WithRollouts(50), WithSeed(1))

		move, metric, err := r.SelectMove(context.Background(), b)

		require.NoError(t, err)
		require.Equal(t, game.Right, move)
		require.Zero(t, metric.Episodes, "Metrics are off by default")
	})

	t.Run("never choosing an illegal direction", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		r := NewRollout(4, WithDepth(10), WithRollouts(8), WithSeed(3))
		for n := 0; n < 100; n++ {
			g := game.NewGame(rng)
			for k := rng.Intn(60); k > 0 && !g.IsOver(); k-- {
				g.Step(game.Directions[rng.Intn(4)])
			}
			if g.IsOver() {
				continue
			}
			before := g.Board().Values()

			move, _, err := r.SelectMove(context.Background(), g.Board())

			require.NoError(t, err)
			require.Contains(t, game.LegalMoves(g.Board()), move)
			require.Equal(t, before, g.Board().Values(), "Search should not touch the board")
		}
	})

	t.Run("failing on a terminal board", func(t *testing.T) {
		r := NewRollout(2, WithDepth(5), WithRollouts(5))

		_, _, err := r.SelectMove(context.Background(), board(t, lockedValues))

		require.ErrorIs(t, err, ErrNoLegalMove)
	})

	t.Run("taking the merge without rollouts", func(t *testing.T) {
		// Left and right both merge the pair, left wins the tie by order
		b := board(t, [game.Size][game.Size]int8{{3, 3, 0, 0}})

		move, err := SelectMove(b, 1, 0)

		require.NoError(t, err)
		require.Equal(t, game.Left, move)
	})

	t.Run("preferring the direction that scores", func(t *testing.T) {
		// Up merges both columns, left and right merge nothing
		b := board(t, [game.Size][game.Size]int8{{5, 6, 0, 0}, {5, 6, 0, 0}})

		move, err := SelectMove(b, 1, 0)

		require.NoError(t, err)
		require.Equal(t, game.Up, move)
	})

	t.Run("treating depth zero like depth one", func(t *testing.T) {
		values := [game.Size][game.Size]int8{{1, 1, 2, 0}, {0, 3, 0, 1}, {2, 0, 0, 0}, {0, 0, 1, 0}}

		zero, err := SelectMove(board(t, values), 0, 50)
		require.NoError(t, err)
		one, err := SelectMove(board(t, values), 1, 50)
		require.NoError(t, err)

		require.Equal(t, one, zero)
		require.Equal(t, game.Left, zero)
	})

	t.Run("running no rollouts for a negative count", func(t *testing.T) {
		r := NewRollout(1, WithDepth(5), WithRollouts(-1), WithMetrics(), WithSeed(4))

		_, metric, err := r.SelectMove(context.Background(), board(t, [game.Size][game.Size]int8{{1, 1}}))

		require.NoError(t, err)
		require.Zero(t, metric.Episodes)
	})

	t.Run("honouring a canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := NewRollout(2, WithDepth(50), WithRollouts(500))

		_, _, err := r.SelectMove(ctx, board(t, [game.Size][game.Size]int8{{1, 1}}))

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestEvaluate(t *testing.T) {
	start := [game.Size][game.Size]int8{{1, 1, 2, 0}, {0, 3, 0, 1}, {2, 0, 0, 0}, {0, 0, 1, 0}}

	t.Run("marking illegal candidates", func(t *testing.T) {
		values := lockedValues
		values[0][3] = 0
		r := NewRollout(1, WithDepth(5), WithRollouts(3), WithSeed(5))

		candidates, err := r.Evaluate(context.Background(), board(t, values))

		require.NoError(t, err)
		require.False(t, candidates[game.Left].Legal)
		require.True(t, candidates[game.Right].Legal)
		require.True(t, candidates[game.Up].Legal)
		require.False(t, candidates[game.Down].Legal)
		for i, c := range candidates {
			require.Equal(t, game.Directions[i], c.Direction)
		}
	})

	t.Run("independent of the number of goroutines", func(t *testing.T) {
		sequential := NewRollout(1, WithDepth(40), WithRollouts(300), WithSeed(42))
		parallel := NewRollout(8, WithDepth(40), WithRollouts(300), WithSeed(42))

		want, err := sequential.Evaluate(context.Background(), board(t, start))
		require.NoError(t, err)
		got, err := parallel.Evaluate(context.Background(), board(t, start))
		require.NoError(t, err)

		require.Equal(t, want, got, "Same seed should give the same totals")
	})

	t.Run("accumulating rather than averaging", func(t *testing.T) {
		few := NewRollout(4, WithDepth(30), WithRollouts(10), WithSeed(7))
		many := NewRollout(4, WithDepth(30), WithRollouts(1000), WithSeed(7))

		small, err := few.Evaluate(context.Background(), board(t, start))
		require.NoError(t, err)
		large, err := many.Evaluate(context.Background(), board(t, start))
		require.NoError(t, err)

		for i := range small {
			require.Greater(t, large[i].Total, small[i].Total, "More rollouts should add to the total of %v", game.Directions[i])
		}
	})

	t.Run("counting only the first move at depth zero", func(t *testing.T) {
		r := NewRollout(1, WithDepth(0), WithRollouts(5), WithSeed(9))

		candidates, err := r.Evaluate(context.Background(), board(t, start))

		require.NoError(t, err)
		require.Equal(t, int64(4), candidates[game.Left].Total)
		require.Equal(t, int64(0), candidates[game.Up].Total)
	})

	t.Run("counting only the first move at depth one", func(t *testing.T) {
		r := NewRollout(2, WithDepth(1), WithRollouts(100), WithSeed(9))

		candidates, err := r.Evaluate(context.Background(), board(t, start))

		require.NoError(t, err)
		require.Equal(t, int64(4), candidates[game.Left].Total, "Left merges the pair of 2s")
		require.Equal(t, int64(0), candidates[game.Up].Total)
	})
}

func TestSelectMoveMetrics(t *testing.T) {
	values := lockedValues
	values[0][3] = 0
	r := NewRollout(3, WithDepth(6), WithRollouts(130), WithBatchSize(16), WithMetrics(), WithSeed(11))

	_, metric, err := r.SelectMove(context.Background(), board(t, values))

	require.NoError(t, err)
	require.Equal(t, 3, metric.Goroutines)
	require.Equal(t, 6, metric.Depth)
	require.Equal(t, 130, metric.Rollouts)
	require.Equal(t, 2, metric.Legal)
	require.Equal(t, 2*130, metric.Episodes, "Every legal candidate plays all its rollouts")
	require.LessOrEqual(t, metric.FullPlayouts, metric.Episodes)
}

func TestBest(t *testing.T) {
	t.Run("keeping the first of equal totals", func(t *testing.T) {
		candidates := [4]Candidate{
			illegal(game.Left),
			scored(game.Right, 10),
			scored(game.Up, 10),
			scored(game.Down, 3),
		}

		move, err := best(candidates)

		require.NoError(t, err)
		require.Equal(t, game.Right, move)
	})

	t.Run("preferring a zero total over an illegal move", func(t *testing.T) {
		candidates := [4]Candidate{
			illegal(game.Left),
			illegal(game.Right),
			illegal(game.Up),
			scored(game.Down, 0),
		}

		move, err := best(candidates)

		require.NoError(t, err)
		require.Equal(t, game.Down, move)
	})

	t.Run("failing when all candidates are illegal", func(t *testing.T) {
		candidates := [4]Candidate{
			illegal(game.Left),
			illegal(game.Right),
			illegal(game.Up),
			illegal(game.Down),
		}

		_, err := best(candidates)

		require.ErrorIs(t, err, ErrNoLegalMove)
	})
}

func TestPlayout(t *testing.T) {
	t.Run("stopping at the depth budget", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		b := board(t, [game.Size][game.Size]int8{{1}})

		score, ended := playout(b.Copy(), 1, rng)

		require.Zero(t, score)
		require.False(t, ended, "Depth one leaves no room for random moves")
	})

	t.Run("ending on a move that changes nothing", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		b := board(t, lockedValues)

		score, ended := playout(b.Copy(), 100, rng)

		require.Zero(t, score)
		require.True(t, ended)
	})

	t.Run("leaving the start board untouched", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		b := board(t, [game.Size][game.Size]int8{{1, 1}, {2}})
		before := b.Values()

		playout(b.Copy(), 100, rng)

		require.Equal(t, before, b.Values())
	})
}
