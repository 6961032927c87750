package agent

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"tilemerge/experiments/metrics"
	"tilemerge/game"
	"tilemerge/searcher"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays a uniformly random
// direction among those that change the board.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(ctx context.Context, board *game.Board) (game.Direction, metrics.SearchMetric, error) {
	start := time.Now()
	moves := game.LegalMoves(board)
	if len(moves) == 0 {
		return 0, metrics.SearchMetric{}, searcher.ErrNoLegalMove
	}

	a.mu.Lock()
	move := moves[a.rng.Intn(len(moves))]
	a.mu.Unlock()

	return move, metrics.SearchMetric{Duration: time.Since(start), Legal: len(moves)}, nil
}
