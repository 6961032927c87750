package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"

	"tilemerge/experiments/metrics"
	"tilemerge/game"
)

var ErrQuit = errors.New("player quit")

// Console is a human player reading one direction per line. It implements
// the agent interface so the engine can drive it like any search.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole creates a player reading keys from in and writing prompts to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// FindMove prompts until a direction that changes the board is entered.
// It returns ErrQuit on "q" or when the input ends.
func (p *Console) FindMove(ctx context.Context, board *game.Board) (game.Direction, metrics.SearchMetric, error) {
	start := time.Now()
	legal := game.LegalMoves(board)
	for {
		if err := ctx.Err(); err != nil {
			return 0, metrics.SearchMetric{}, err
		}
		fmt.Fprint(p.out, "Move (w/a/s/d, q to quit): ")
		line, err := p.readLine()
		if err != nil {
			return 0, metrics.SearchMetric{}, err
		}

		d, err := game.ParseDirection(line)
		if err != nil {
			fmt.Fprintf(p.out, "%v\n", err)
			continue
		}
		if !lo.Contains(legal, d) {
			fmt.Fprintf(p.out, "%v does not move any tile\n", d)
			continue
		}
		return d, metrics.SearchMetric{Duration: time.Since(start), Legal: len(legal)}, nil
	}
}

// PlayAgain asks whether to start a new game after game over.
func (p *Console) PlayAgain() bool {
	fmt.Fprint(p.out, "Play again? (y/n): ")
	line, err := p.readLine()
	if err != nil {
		return false
	}
	return line == "y" || line == "yes" || line == "r"
}

func (p *Console) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrQuit
	}
	line := strings.ToLower(strings.TrimSpace(p.in.Text()))
	if line == "q" || line == "quit" {
		return "", ErrQuit
	}
	return line, nil
}
