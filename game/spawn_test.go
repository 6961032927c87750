package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func nonzero(b *Board) int {
	return Size*Size - b.EmptyCount()
}

func TestSpawnTile(t *testing.T) {
	t.Run("filling exactly one empty cell", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		b := NewBoard()
		for n := 1; n <= Size*Size; n++ {
			before := b.Values()

			require.NoError(t, SpawnTile(b, rng))

			require.Equal(t, n, nonzero(b), "Exactly one more cell should be occupied")
			after := b.Values()
			for i := 0; i < Size; i++ {
				for j := 0; j < Size; j++ {
					if before[i][j] != 0 {
						require.Equal(t, before[i][j], after[i][j], "Occupied cells should not change")
					} else if after[i][j] != 0 {
						require.Contains(t, []int8{1, 2}, after[i][j], "Spawned value should be 1 or 2")
					}
				}
			}
		}
	})

	t.Run("refusing a full board", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		b := NewBoard()
		for i := 0; i < Size; i++ {
			for j := 0; j < Size; j++ {
				b.Set(i, j, 3)
			}
		}
		before := b.Values()

		err := SpawnTile(b, rng)

		require.ErrorIs(t, err, ErrBoardFull)
		require.Equal(t, before, b.Values(), "Full board should be left untouched")
	})

	t.Run("drawing a 4 about one time in ten", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		const trials = 20000
		fours := 0
		for n := 0; n < trials; n++ {
			b := NewBoard()
			require.NoError(t, SpawnTile(b, rng))
			if b.MaxValue() == 2 {
				fours++
			}
		}

		require.InDelta(t, 0.1, float64(fours)/trials, 0.01)
	})

	t.Run("choosing the single empty cell", func(t *testing.T) {
		rng := rand.New(rand.NewSource(4))
		b := NewBoard()
		for i := 0; i < Size; i++ {
			for j := 0; j < Size; j++ {
				b.Set(i, j, 5)
			}
		}
		b.Set(2, 1, 0)

		require.NoError(t, SpawnTile(b, rng))

		require.NotZero(t, b.Tile(2, 1).Value)
		require.Zero(t, b.EmptyCount())
	})

	t.Run("covering every empty cell", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		hits := map[[2]int]int{}
		for n := 0; n < 3200; n++ {
			b := NewBoard()
			require.NoError(t, SpawnTile(b, rng))
			for _, tile := range b.Tiles() {
				if !tile.Empty() {
					hits[[2]int{tile.Row, tile.Col}]++
				}
			}
		}

		require.Len(t, hits, Size*Size, "Every cell should be chosen at some point")
		for cell, count := range hits {
			require.InDelta(t, 200, count, 80, "Cell %v should be chosen uniformly", cell)
		}
	})
}
