// Package searcher picks moves by flat Monte-Carlo rollouts: every first
// move is played once, then followed by many random games whose scores
// are summed per candidate.
package searcher

import (
	"errors"

	"tilemerge/game"
)

var ErrNoLegalMove = errors.New("no move changes the board")

// Candidate is the outcome for one first move. An illegal candidate
// (first move changed nothing) carries no total and is never selected.
type Candidate struct {
	Direction game.Direction
	Legal     bool
	Total     int64 // First move score plus every rollout score
}

func illegal(d game.Direction) Candidate {
	return Candidate{Direction: d}
}

func scored(d game.Direction, total int64) Candidate {
	return Candidate{Direction: d, Legal: true, Total: total}
}

// best returns the legal candidate with the strictly highest total.
// Ties keep the earliest candidate in enumeration order.
func best(candidates [4]Candidate) (game.Direction, error) {
	bestIndex := -1
	for i, c := range candidates {
		if !c.Legal {
			continue
		}
		if bestIndex < 0 || c.Total > candidates[bestIndex].Total {
			bestIndex = i
		}
	}
	if bestIndex < 0 {
		return 0, ErrNoLegalMove
	}
	return candidates[bestIndex].Direction, nil
}
