package model

import "time"

// Run statuses persisted in the run store.
const (
	RunStatusRunning = "running"
	RunStatusDone    = "done"
	RunStatusFailed  = "failed"
)

// RunStats collects the statistics of one processing run. Error paths keep
// whatever was gathered up to the failure point.
type RunStats struct {
	InputFile string `json:"input_file"`

	TotalRows                int `json:"total_rows"`
	RemovedReturns           int `json:"removed_returns"`
	RemovedNonPrimarySamples int `json:"removed_non_primary_samples"`
	RemainingRows            int `json:"remaining_rows"`
	LabeledRows              int `json:"labeled_rows"`
	StockMatchedRows         int `json:"stock_matched_rows"`

	NoteCounts map[string]int `json:"note_counts"`

	OutputFile  string `json:"output_file,omitempty"`
	SummaryFile string `json:"summary_file,omitempty"`

	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  float64   `json:"duration_seconds"`
}

// NewRunStats starts a stats record for an input file.
func NewRunStats(inputFile string, start time.Time) *RunStats {
	return &RunStats{
		InputFile:  inputFile,
		NoteCounts: make(map[string]int),
		StartTime:  start,
	}
}

// Finish stamps the end time and duration.
func (s *RunStats) Finish(end time.Time, success bool) {
	s.Success = success
	s.EndTime = end
	s.Duration = end.Sub(s.StartTime).Seconds()
}

// Run is one persisted processing run.
type Run struct {
	ID                       string    `json:"id"`
	InputFile                string    `json:"input_file"`
	Status                   string    `json:"status"`
	Progress                 float64   `json:"progress"`
	TotalRows                int       `json:"total_rows"`
	RemovedReturns           int       `json:"removed_returns"`
	RemovedNonPrimarySamples int       `json:"removed_non_primary_samples"`
	RemainingRows            int       `json:"remaining_rows"`
	OutputFile               string    `json:"output_file,omitempty"`
	Error                    string    `json:"error,omitempty"`
	StartTime                time.Time `json:"start_time"`
	EndTime                  time.Time `json:"end_time,omitempty"`
	Duration                 float64   `json:"duration_seconds"`
}
