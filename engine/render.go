package engine

import (
	"fmt"
	"io"
	"strings"

	"tilemerge/game"
)

// WithColor paints rendered tiles with their background and label colors
// using 24-bit ANSI escapes.
func WithColor() Option {
	return func(e *localEngine) {
		e.color = true
	}
}

func (e *localEngine) render() {
	if e.out == nil {
		return
	}
	fmt.Fprintf(e.out, "Score: %d  Moves: %d\n", e.game.Score(), e.game.Moves())
	if e.color {
		writeColored(e.out, e.game.Board())
	} else {
		fmt.Fprint(e.out, e.game.Board())
	}
	if e.game.IsOver() {
		fmt.Fprintln(e.out, "Game over!")
	}
}

// writeColored prints one line per row, every cell padded to six columns.
func writeColored(w io.Writer, b *game.Board) {
	var sb strings.Builder
	for _, tile := range b.Tiles() {
		bg := tile.Color()
		fg := game.TextColor(tile.Value)
		label := ""
		if !tile.Empty() {
			label = fmt.Sprint(tile.Number())
		}
		fmt.Fprintf(&sb, "\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm%6s \x1b[0m",
			channel(bg.R), channel(bg.G), channel(bg.B),
			channel(fg.R), channel(fg.G), channel(fg.B),
			label)
		if tile.Col == game.Size-1 {
			sb.WriteString("\n")
		}
	}
	io.WriteString(w, sb.String())
}

func channel(c float32) uint8 {
	return uint8(c*255 + 0.5)
}
