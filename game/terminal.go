package game

// IsTerminal reports whether no direction changes the board. It works on a
// private copy and stops at the first direction that would change it.
func IsTerminal(b *Board) bool {
	probe := b.Copy()
	for _, d := range Directions {
		if _, changed := ExecuteMove(&probe, d); changed {
			return false
		}
	}
	return true
}

// LegalMoves returns, in enumeration order, the directions that change b.
func LegalMoves(b *Board) []Direction {
	moves := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		probe := b.Copy()
		if _, changed := ExecuteMove(&probe, d); changed {
			moves = append(moves, d)
		}
	}
	return moves
}
