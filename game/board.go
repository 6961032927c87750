package game

import (
	"fmt"
	"strings"
)

// Tile is one cell of the grid. Row and Col are assigned once by NewBoard.
// Value is an exponent: 0 is empty, n >= 1 displays as 2^n.
type Tile struct {
	Row   int
	Col   int
	Value int8
}

func (t Tile) Empty() bool {
	return t.Value == 0
}

// Number is the displayed number of the tile, 0 when empty.
func (t Tile) Number() int {
	if t.Value == 0 {
		return 0
	}
	return 1 << t.Value
}

// Color is derived from Value on every call, it is never stored.
func (t Tile) Color() Color {
	return TileColor(t.Value)
}

// Board is the 4x4 grid. The zero value is not usable, use NewBoard.
// A Board is a plain array so assigning it (or calling Copy) yields an
// independent private copy.
type Board struct {
	tiles [Size][Size]Tile
}

// NewBoard allocates an empty grid with fixed tile positions.
func NewBoard() *Board {
	b := &Board{}
	for i := range b.tiles {
		for j := range b.tiles[i] {
			b.tiles[i][j] = Tile{Row: i, Col: j}
		}
	}
	return b
}

// BoardFromValues builds a board from raw exponents, e.g. when decoding a
// request. Values must lie in [0, MaxValue].
func BoardFromValues(values [Size][Size]int8) (*Board, error) {
	b := NewBoard()
	for i := range values {
		for j, v := range values[i] {
			if v < 0 || v > MaxValue {
				return nil, fmt.Errorf("cell (%d,%d)=%d: %w", i, j, v, ErrInvalidValue)
			}
			b.tiles[i][j].Value = v
		}
	}
	return b, nil
}

// Clear empties every cell without reallocating the grid.
func (b *Board) Clear() {
	for i := range b.tiles {
		for j := range b.tiles[i] {
			b.tiles[i][j].Value = 0
		}
	}
}

func (b *Board) Copy() Board {
	return *b
}

func (b *Board) Tile(row, col int) Tile {
	return b.tiles[row][col]
}

func (b *Board) Set(row, col int, value int8) {
	b.tiles[row][col].Value = value
}

// Tiles returns all tiles in row-major order for rendering.
func (b *Board) Tiles() []Tile {
	tiles := make([]Tile, 0, Size*Size)
	for i := range b.tiles {
		tiles = append(tiles, b.tiles[i][:]...)
	}
	return tiles
}

func (b *Board) Values() [Size][Size]int8 {
	var values [Size][Size]int8
	for i := range b.tiles {
		for j := range b.tiles[i] {
			values[i][j] = b.tiles[i][j].Value
		}
	}
	return values
}

func (b *Board) EmptyCount() int {
	count := 0
	for i := range b.tiles {
		for j := range b.tiles[i] {
			if b.tiles[i][j].Value == 0 {
				count++
			}
		}
	}
	return count
}

// MaxValue returns the highest exponent on the board.
func (b *Board) MaxValue() int8 {
	var max int8
	for i := range b.tiles {
		for j := range b.tiles[i] {
			if v := b.tiles[i][j].Value; v > max {
				max = v
			}
		}
	}
	return max
}

func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("+------+------+------+------+\n")
	for i := range b.tiles {
		sb.WriteString("|")
		for j := range b.tiles[i] {
			if n := b.tiles[i][j].Number(); n > 0 {
				fmt.Fprintf(&sb, "%6d|", n)
			} else {
				sb.WriteString("      |")
			}
		}
		sb.WriteString("\n+------+------+------+------+\n")
	}
	return sb.String()
}
