package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentConfig struct {
	ID         int
	Kind       string // "rollout" or "random"
	Goroutines int
	Depth      int
	Rollouts   int
}

type GameRecord struct {
	ID    int
	Agent int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Summary struct {
	Agent     int // AgentConfig.ID
	Games     int
	MeanScore float64
	StdScore  float64
	BestScore int
	MeanMoves float64
	BestTile  int
	Reached   map[int]int // Games whose max tile reached the key
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the experiment files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "goroutines", "depth", "rollouts"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Goroutines),
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Rollouts),
		})
	}
	if err := w.write("agent_configs.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent", "seed", "start_time", "end_time", "duration", "moves", "score", "max_tile", "terminal"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent),
			strconv.FormatUint(record.Seed, 10),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Score),
			strconv.Itoa(record.MaxTile),
			strconv.FormatBool(record.Terminal),
		})
	}
	if err := w.write("game_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "direction", "score", "changed", "duration", "episodes", "full_playouts", "legal"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Direction,
			strconv.Itoa(record.Score),
			strconv.FormatBool(record.Changed),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.Legal),
		})
	}
	if err := w.write("move_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

// WriteSummaries writes one row per agent. tiles lists the max-tile
// thresholds reported as reached_<tile> columns.
func (w *Writer) WriteSummaries(summaries []Summary, tiles []int) error {
	header := []string{"agent", "games", "mean_score", "std_score", "best_score", "mean_moves", "best_tile"}
	for _, tile := range tiles {
		header = append(header, "reached_"+strconv.Itoa(tile))
	}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		row := []string{
			strconv.Itoa(s.Agent),
			strconv.Itoa(s.Games),
			strconv.FormatFloat(s.MeanScore, 'f', 2, 64),
			strconv.FormatFloat(s.StdScore, 'f', 2, 64),
			strconv.Itoa(s.BestScore),
			strconv.FormatFloat(s.MeanMoves, 'f', 2, 64),
			strconv.Itoa(s.BestTile),
		}
		for _, tile := range tiles {
			row = append(row, strconv.Itoa(s.Reached[tile]))
		}
		rows = append(rows, row)
	}
	if err := w.write("summaries.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write summaries: %w", err)
	}
	return nil
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
