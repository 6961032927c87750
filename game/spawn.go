package game

// SpawnTile puts a new tile on a uniformly chosen empty cell: value 2
// (a "4") with probability 1/10, otherwise value 1 (a "2").
// It returns ErrBoardFull and leaves the board untouched if no cell is empty.
func SpawnTile(b *Board, r Rand) error {
	var empty [Size * Size]*Tile
	n := 0
	for i := range b.tiles {
		for j := range b.tiles[i] {
			if b.tiles[i][j].Value == 0 {
				empty[n] = &b.tiles[i][j]
				n++
			}
		}
	}
	if n == 0 {
		return ErrBoardFull
	}

	tile := empty[r.Intn(n)]
	if r.Intn(10) == 0 {
		tile.Value = 2
	} else {
		tile.Value = 1
	}
	return nil
}
