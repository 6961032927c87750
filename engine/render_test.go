package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tilemerge/game"
	"tilemerge/searcher/agent"
)

func TestWriteColored(t *testing.T) {
	b, err := game.BoardFromValues([game.Size][game.Size]int8{{1}})
	require.NoError(t, err)
	var out bytes.Buffer

	writeColored(&out, b)

	require.Equal(t, game.Size, strings.Count(out.String(), "\n"), "One line per row")
	require.Contains(t, out.String(), "\x1b[48;2;237;227;219m\x1b[38;2;117;110;102m     2 \x1b[0m", "A 2 is dark text on its palette color")
	require.Equal(t, game.Size*game.Size, strings.Count(out.String(), "\x1b[0m"))
}

func TestRenderWithColor(t *testing.T) {
	var out bytes.Buffer
	e := LocalEngine(agent.NewRandomAgent(3), 3, WithMaxMoves(1), WithOutput(&out), WithColor())

	_, _, err := e.Run(context.Background())

	require.NoError(t, err)
	require.Contains(t, out.String(), "\x1b[48;2;")
	require.NotContains(t, out.String(), "+------+")
}
