package game

import "errors"

// Size is the side length of the grid.
const Size = 4

// MaxValue is the largest exponent a tile can reach on a 4x4 grid (2^17).
const MaxValue = 17

var (
	ErrBoardFull        = errors.New("board has no empty cell")
	ErrGameOver         = errors.New("game is over")
	ErrInvalidValue     = errors.New("tile value out of range")
	ErrUnknownDirection = errors.New("unknown direction")
)

// Rand is the only facility the rules consume from the host: uniform
// integers in [0, n). *rand.Rand from golang.org/x/exp/rand satisfies it.
//
// A Rand is not safe for concurrent use, give every goroutine its own.
type Rand interface {
	Intn(n int) int
}
