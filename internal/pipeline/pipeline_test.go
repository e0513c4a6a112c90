package pipeline

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/LCLAMEDIA/openorders/internal/config"
	"github.com/LCLAMEDIA/openorders/internal/model"
	"github.com/LCLAMEDIA/openorders/internal/store"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Data.DataDir = t.TempDir()
	cfg.Business.Timezone = "UTC"
	cfg.Reference.MappingPath = cfg.DataPath("uploads", "missing_mapping.xlsx")
	cfg.Reference.InventoryPath = cfg.DataPath("uploads", "missing_stock.csv")
	if err := cfg.EnsureDataDir(); err != nil {
		t.Fatalf("EnsureDataDir: %v", err)
	}
	return cfg
}

func testProcessor(t *testing.T, cfg *config.AppConfig) (*Processor, *store.Store) {
	t.Helper()
	st, err := store.New(cfg.DBPath())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	p := New(cfg, st, nil)
	p.clock = func() time.Time { return time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC) }
	return p, st
}

func reportBytes(t *testing.T, dataRows ...[]interface{}) []byte {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()

	header := make([]interface{}, len(model.RequiredColumns))
	for i, col := range model.RequiredColumns {
		header[i] = col
	}
	rows := append([][]interface{}{header}, dataRows...)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := wb.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	return buf.Bytes()
}

func TestProcess(t *testing.T) {
	cfg := testConfig(t)
	p, st := testProcessor(t, cfg)

	data := reportBytes(t,
		[]interface{}{"SAK-1001", "Fashion Biz", "10", "", "62: CANCEL", "", "", "", "", ""},
		[]interface{}{"BW-77", "PNW", "-1", "", "", "", "", "", "", ""},
	)
	outcome := p.Process(context.Background(), "orders.xlsx", data, false)

	if outcome.ErrorKind != "" {
		t.Fatalf("unexpected failure: %s (%s)", outcome.ErrorKind, outcome.Stats.Error)
	}
	if !outcome.Stats.Success {
		t.Error("Stats.Success should be true")
	}
	if outcome.Stats.TotalRows != 2 || outcome.Stats.RemainingRows != 1 {
		t.Errorf("rows = (%d, %d), want (2, 1)", outcome.Stats.TotalRows, outcome.Stats.RemainingRows)
	}

	if !strings.Contains(outcome.OutputPath, "PROCESSED_OOR_") {
		t.Errorf("OutputPath = %q", outcome.OutputPath)
	}
	if _, err := os.Stat(outcome.OutputPath); err != nil {
		t.Errorf("output workbook missing: %v", err)
	}
	if _, err := os.Stat(outcome.SummaryPath); err != nil {
		t.Errorf("summary missing: %v", err)
	}

	run, err := st.GetRun(outcome.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Status != model.RunStatusDone {
		t.Errorf("run status = %q, want done", run.Status)
	}
	if run.OutputFile != outcome.Stats.OutputFile {
		t.Errorf("run OutputFile = %q, want %q", run.OutputFile, outcome.Stats.OutputFile)
	}
}

func TestProcessValidationFailureIsRecorded(t *testing.T) {
	cfg := testConfig(t)
	p, st := testProcessor(t, cfg)

	outcome := p.Process(context.Background(), "orders.csv", []byte("a,b\n1,2\n"), false)

	if outcome.ErrorKind != model.ValidationError {
		t.Fatalf("ErrorKind = %q, want validation_error", outcome.ErrorKind)
	}
	if outcome.Stats.Success {
		t.Error("Stats.Success should be false")
	}
	if outcome.Stats.EndTime.IsZero() || outcome.Stats.Duration < 0 {
		t.Error("failure should still stamp end time and duration")
	}
	if outcome.OutputPath != "" {
		t.Errorf("no output expected, got %q", outcome.OutputPath)
	}

	run, err := st.GetRun(outcome.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Status != model.RunStatusFailed || run.Error == "" {
		t.Errorf("run = (%q, %q), want failed with message", run.Status, run.Error)
	}
}

func TestProcessDryRun(t *testing.T) {
	cfg := testConfig(t)
	p, st := testProcessor(t, cfg)

	data := reportBytes(t, []interface{}{"SAK-1", "Fashion Biz", "1", "", "", "", "", "", "", ""})
	outcome := p.Process(context.Background(), "orders.xlsx", data, true)

	if outcome.ErrorKind != "" {
		t.Fatalf("unexpected failure: %s", outcome.ErrorKind)
	}
	if outcome.RunID != "" || outcome.OutputPath != "" || outcome.SummaryPath != "" {
		t.Errorf("dry run should produce no artifacts: %+v", outcome)
	}
	if runs, err := st.ListRuns(10); err != nil || len(runs) != 0 {
		t.Errorf("dry run persisted a run: %v, %v", runs, err)
	}

	exports, err := os.ReadDir(cfg.DataPath("exports", ""))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(exports) != 0 {
		t.Errorf("dry run wrote files: %v", exports)
	}
}

func TestRenderSummary(t *testing.T) {
	stats := model.NewRunStats("orders.xlsx", time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))
	stats.TotalRows = 5
	stats.RemainingRows = 4
	stats.NoteCounts["PO OVERDUE"] = 2
	stats.OutputFile = "PROCESSED_OOR_x_row_4.xlsx"
	stats.Finish(stats.StartTime.Add(3*time.Second), true)

	text := RenderSummary(stats)
	for _, want := range []string{"orders.xlsx", "PO OVERDUE", "Total rows:", "Duration: 3.00s"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}
