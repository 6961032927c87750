package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Direction is one of the four moves. The order of the constants is the
// enumeration order used for tie-breaks.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

var Directions = [4]Direction{Left, Right, Up, Down}

var directionNames = []string{"left", "right", "up", "down"}

// Keys accepted by ParseDirection besides the full names, in Directions order.
var (
	wasdKeys = []string{"a", "d", "w", "s"}
	vimKeys  = []string{"h", "l", "k", "j"}
)

func (d Direction) Valid() bool {
	return d <= Down
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// ParseDirection accepts a direction name or a wasd / hjkl key.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, keys := range [][]string{directionNames, wasdKeys, vimKeys} {
		if i := lo.IndexOf(keys, s); i >= 0 {
			return Directions[i], nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownDirection)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%d: %w", uint8(d), ErrUnknownDirection)
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
