// Package pipeline runs a complete processing pass: load reference data, parse
// the uploaded report, annotate it and write the output artifacts.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/LCLAMEDIA/openorders/internal/config"
	"github.com/LCLAMEDIA/openorders/internal/excel"
	"github.com/LCLAMEDIA/openorders/internal/labeling"
	"github.com/LCLAMEDIA/openorders/internal/loader"
	"github.com/LCLAMEDIA/openorders/internal/model"
	"github.com/LCLAMEDIA/openorders/internal/store"
)

// Processor orchestrates one run per uploaded report.
type Processor struct {
	cfg   *config.AppConfig
	store *store.Store
	log   *zap.Logger

	// clock is replaced in tests; runs capture one reference time from it.
	clock func() time.Time
}

// New builds a processor. The store may be nil, in which case runs are not
// persisted.
func New(cfg *config.AppConfig, st *store.Store, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{cfg: cfg, store: st, log: log, clock: time.Now}
}

// Outcome is the structured result of a processing run. Failures are carried
// in Stats rather than escalated.
type Outcome struct {
	RunID       string          `json:"run_id,omitempty"`
	Stats       *model.RunStats `json:"stats"`
	ErrorKind   model.ErrorKind `json:"error_kind,omitempty"`
	OutputPath  string          `json:"output_path,omitempty"`
	SummaryPath string          `json:"summary_path,omitempty"`
}

// Process annotates one uploaded report. With dryRun set, no artifacts are
// written and no run is persisted; the statistics are still produced.
func (p *Processor) Process(ctx context.Context, filename string, data []byte, dryRun bool) *Outcome {
	loc, err := p.cfg.Location()
	if err != nil {
		loc = time.UTC
	}
	now := p.clock().In(loc)

	outcome := &Outcome{Stats: model.NewRunStats(filename, now)}

	var runID string
	if p.store != nil && !dryRun {
		run, err := p.store.InitiateRun(filename, now)
		if err != nil {
			p.log.Error("failed to record run start", zap.Error(err))
		} else {
			runID = run.ID
			outcome.RunID = runID
		}
	}

	ref := loader.New(p.cfg.Reference.MappingPath, p.cfg.Reference.InventoryPath, p.log).Load(ctx)

	table, err := excel.ReadOrderReport(filename, data, loc)
	if err != nil {
		return p.fail(outcome, runID, err, loc)
	}

	engine := labeling.NewEngine(labeling.Options{
		Mapping:       ref.Mapping,
		FieldOrder:    ref.FieldOrder,
		Inventory:     ref.Inventory,
		PrimaryVendor: p.cfg.Business.PrimaryVendor,
		Now:           now,
		Logger:        p.log,
	})
	result, err := engine.Run(table)
	if err != nil {
		return p.fail(outcome, runID, err, loc)
	}
	outcome.Stats = result.Stats

	if !dryRun {
		if err := p.writeArtifacts(outcome, result, now); err != nil {
			return p.fail(outcome, runID, err, loc)
		}
	}

	outcome.Stats.Finish(p.clock().In(loc), true)
	if !dryRun {
		if summaryPath, err := writeSummary(p.cfg, outcome.Stats, now); err != nil {
			// The processed workbook already exists; a missing summary is
			// not worth failing the run over.
			p.log.Warn("failed to write summary report", zap.Error(err))
		} else {
			outcome.SummaryPath = summaryPath
		}
	}
	if p.store != nil && runID != "" {
		if err := p.store.CompleteRun(runID, outcome.Stats); err != nil {
			p.log.Error("failed to record run completion", zap.Error(err))
		}
	}
	return outcome
}

func (p *Processor) writeArtifacts(outcome *Outcome, result *labeling.Result, now time.Time) error {
	outputName := excel.OutputFilename(now, len(result.Table.Records))
	outputPath := p.cfg.DataPath("exports", outputName)

	f, err := excel.WriteProcessedReport(result.Table, result.Schema)
	if err != nil {
		return model.NewProcessError(model.ProcessingError, "failed to render output workbook", err)
	}
	defer f.Close()
	if err := f.SaveAs(outputPath); err != nil {
		return model.NewProcessError(model.ProcessingError,
			fmt.Sprintf("failed to save %s", outputPath), err)
	}
	outcome.Stats.OutputFile = outputName
	outcome.OutputPath = outputPath
	return nil
}

// fail closes out a run after a classified failure, keeping the statistics
// gathered so far.
func (p *Processor) fail(outcome *Outcome, runID string, err error, loc *time.Location) *Outcome {
	kind := model.KindOf(err)
	outcome.ErrorKind = kind
	outcome.Stats.Error = err.Error()
	outcome.Stats.Finish(p.clock().In(loc), false)

	p.log.Error("processing run failed",
		zap.String("input", outcome.Stats.InputFile),
		zap.String("kind", string(kind)),
		zap.Error(err))

	if p.store != nil && runID != "" {
		if storeErr := p.store.FailRun(runID, outcome.Stats, err.Error()); storeErr != nil {
			p.log.Error("failed to record run failure", zap.Error(storeErr))
		}
	}
	return outcome
}
