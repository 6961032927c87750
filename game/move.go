package game

import "fmt"

// ExecuteMove pushes every tile towards d, merging equal neighbours once.
// The board is mutated in place. It returns the points earned by merges
// and whether any value changed.
//
// Every direction is reduced to the left case: right flips the rows,
// up transposes, down transposes then flips. The transforms are undone
// in reverse order afterwards.
func ExecuteMove(b *Board, d Direction) (score int, changed bool) {
	switch d {
	case Left:
		score, changed = b.slideLeft()
	case Right:
		b.flipX()
		score, changed = b.slideLeft()
		b.flipX()
	case Up:
		b.transpose()
		score, changed = b.slideLeft()
		b.transpose()
	case Down:
		b.transpose()
		b.flipX()
		score, changed = b.slideLeft()
		b.flipX()
		b.transpose()
	default:
		panic(fmt.Sprintf("execute move: %v", d))
	}
	return score, changed
}

func (b *Board) slideLeft() (int, bool) {
	moved := b.compress()
	score, merged := b.merge()
	if merged {
		b.compress()
	}
	return score, moved || merged
}

// compress slides each nonzero value as far left as the run of empty
// cells ahead of it allows, keeping the order within the row.
func (b *Board) compress() bool {
	moved := false
	for i := range b.tiles {
		row := &b.tiles[i]
		for j := 1; j < Size; j++ {
			col := j
			for row[col].Value != 0 && col > 0 && row[col-1].Value == 0 {
				row[col-1].Value = row[col].Value
				row[col].Value = 0
				col--
				moved = true
			}
		}
	}
	return moved
}

// merge makes one left-to-right pass. A cell equal to its left neighbour
// doubles that neighbour and empties itself. The emptied cell cannot take
// part in another merge during the same pass.
func (b *Board) merge() (int, bool) {
	score := 0
	merged := false
	for i := range b.tiles {
		row := &b.tiles[i]
		for j := 1; j < Size; j++ {
			v := row[j].Value
			if v == 0 || row[j-1].Value != v {
				continue
			}
			row[j-1].Value = v + 1
			row[j].Value = 0
			score += 1 << (v + 1)
			merged = true
		}
	}
	return score, merged
}

// flipX mirrors every row: columns 0<->3 and 1<->2.
// Only values move, tile positions stay fixed.
func (b *Board) flipX() {
	for i := range b.tiles {
		row := &b.tiles[i]
		for j := 0; j < Size/2; j++ {
			k := Size - 1 - j
			row[j].Value, row[k].Value = row[k].Value, row[j].Value
		}
	}
}

// transpose swaps values across the main diagonal.
func (b *Board) transpose() {
	for i := 0; i < Size; i++ {
		for j := i + 1; j < Size; j++ {
			b.tiles[i][j].Value, b.tiles[j][i].Value = b.tiles[j][i].Value, b.tiles[i][j].Value
		}
	}
}
