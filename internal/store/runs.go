package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LCLAMEDIA/openorders/internal/model"
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

// InitiateRun records the start of a processing run and returns it.
func (s *Store) InitiateRun(inputFile string, start time.Time) (*model.Run, error) {
	run := &model.Run{
		ID:        uuid.NewString(),
		InputFile: inputFile,
		Status:    model.RunStatusRunning,
		Progress:  0.1,
		StartTime: start,
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (id, input_file, status, progress, start_time)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.InputFile, run.Status, run.Progress, run.StartTime.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run done and records its final statistics.
func (s *Store) CompleteRun(id string, stats *model.RunStats) error {
	return s.finishRun(id, model.RunStatusDone, 1.0, stats, "")
}

// FailRun marks a run failed, keeping the partial statistics gathered before
// the failure.
func (s *Store) FailRun(id string, stats *model.RunStats, errMsg string) error {
	return s.finishRun(id, model.RunStatusFailed, 1.0, stats, errMsg)
}

func (s *Store) finishRun(id, status string, progress float64, stats *model.RunStats, errMsg string) error {
	res, err := s.db.Exec(`
		UPDATE runs SET
			status = ?,
			progress = ?,
			total_rows = ?,
			removed_returns = ?,
			removed_non_primary_samples = ?,
			remaining_rows = ?,
			output_file = ?,
			error = ?,
			end_time = ?,
			duration_seconds = ?
		WHERE id = ?
	`, status, progress,
		stats.TotalRows, stats.RemovedReturns, stats.RemovedNonPrimarySamples, stats.RemainingRows,
		stats.OutputFile, errMsg,
		stats.EndTime.Format(time.RFC3339), stats.Duration, id)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRunNotFound
	}
	return nil
}

// GetRun fetches one run by id.
func (s *Store) GetRun(id string) (*model.Run, error) {
	row := s.db.QueryRow(`
		SELECT id, input_file, status, progress, total_rows, removed_returns,
		       removed_non_primary_samples, remaining_rows, output_file, error,
		       start_time, end_time, duration_seconds
		FROM runs WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return run, err
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]*model.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, input_file, status, progress, total_rows, removed_returns,
		       removed_non_primary_samples, remaining_rows, output_file, error,
		       start_time, end_time, duration_seconds
		FROM runs ORDER BY start_time DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*model.Run, error) {
	var run model.Run
	var start, end string
	err := row.Scan(&run.ID, &run.InputFile, &run.Status, &run.Progress,
		&run.TotalRows, &run.RemovedReturns, &run.RemovedNonPrimarySamples,
		&run.RemainingRows, &run.OutputFile, &run.Error,
		&start, &end, &run.Duration)
	if err != nil {
		return nil, err
	}
	if run.StartTime, err = time.Parse(time.RFC3339, start); err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	if end != "" {
		if run.EndTime, err = time.Parse(time.RFC3339, end); err != nil {
			return nil, fmt.Errorf("failed to parse end time: %w", err)
		}
	}
	return &run, nil
}
