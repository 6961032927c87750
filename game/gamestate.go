package game

// Phase is the lifecycle state of a Game.
type Phase int

const (
	Playing Phase = iota
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Game is one play session: a single long-lived board, the running score
// and the move counter. It is not safe for concurrent use.
type Game struct {
	board *Board
	rng   Rand
	score int
	moves int
	phase Phase
}

// NewGame allocates the board and starts the first game.
func NewGame(rng Rand) *Game {
	g := &Game{
		board: NewBoard(),
		rng:   rng,
	}
	g.Restart()
	return g
}

// Restart clears the board in place, resets the score and spawns the two
// opening tiles.
func (g *Game) Restart() {
	g.board.Clear()
	g.score = 0
	g.moves = 0
	g.phase = Playing
	// An empty board always has room for two tiles
	_ = SpawnTile(g.board, g.rng)
	_ = SpawnTile(g.board, g.rng)
}

// Step applies d, spawns a tile if the board changed and moves to GameOver
// once no direction can change the board any more.
func (g *Game) Step(d Direction) (score int, changed bool, err error) {
	if g.phase == GameOver {
		return 0, false, ErrGameOver
	}

	score, changed = ExecuteMove(g.board, d)
	if changed {
		g.score += score
		g.moves++
		if err := SpawnTile(g.board, g.rng); err != nil {
			return score, changed, err
		}
	}

	if IsTerminal(g.board) {
		g.phase = GameOver
	}
	return score, changed, nil
}

// Board exposes the live board for rendering. Callers must not mutate it.
func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Moves() int {
	return g.moves
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) IsOver() bool {
	return g.phase == GameOver
}

// MaxTile is the highest displayed number on the board.
func (g *Game) MaxTile() int {
	v := g.board.MaxValue()
	if v == 0 {
		return 0
	}
	return 1 << v
}
