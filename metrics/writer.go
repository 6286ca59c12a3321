package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"mcts/game"
)

// MatchRecord describes one finished match between two agents.
type MatchRecord struct {
	ID        uuid.UUID
	Agent1    string
	Agent2    string
	Winner    game.Player // NoPlayer on a draw
	Plies     int
	StartTime time.Time
	Duration  time.Duration
}

// MoveRecord describes one searched move within a match.
type MoveRecord struct {
	Match  uuid.UUID
	Step   int
	Player game.Player
	SearchMetric
}

// Summary aggregates move records across a run.
type Summary struct {
	Moves            int
	MeanSearchMillis float64
	StdSearchMillis  float64
	MeanPlayoutPlies float64
}

// Summarize computes run-level statistics over the recorded searches.
func Summarize(records []MoveRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	millis := make([]float64, len(records))
	plies := make([]float64, len(records))
	for i, r := range records {
		millis[i] = float64(r.Duration.Microseconds()) / 1e3
		if r.Iterations > 0 {
			plies[i] = float64(r.PlayoutPlies) / float64(r.Iterations)
		}
	}

	return Summary{
		Moves:            len(records),
		MeanSearchMillis: stat.Mean(millis, nil),
		StdSearchMillis:  stat.StdDev(millis, nil),
		MeanPlayoutPlies: stat.Mean(plies, nil),
	}
}

// Writer persists match and move records as CSV under a timestamped run
// directory.
type Writer struct {
	baseDir string
}

func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteMatchRecords(records []MatchRecord) error {
	path := filepath.Join(w.baseDir, "match_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create match records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "agent1", "agent2", "winner", "plies", "start_time", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write match records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID.String(),
			record.Agent1,
			record.Agent2,
			strconv.Itoa(int(record.Winner)),
			strconv.Itoa(record.Plies),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write match record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"match", "step", "player", "duration", "iterations", "playout_plies", "heuristic_hits"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Match.String(),
			strconv.Itoa(record.Step),
			strconv.Itoa(int(record.Player)),
			record.Duration.String(),
			strconv.FormatInt(record.Iterations, 10),
			strconv.FormatInt(record.PlayoutPlies, 10),
			strconv.FormatInt(record.HeuristicHits, 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	return nil
}
