package labeling

import (
	"time"

	"go.uber.org/zap"

	"github.com/LCLAMEDIA/openorders/internal/model"
)

// Engine annotates an order table: preprocess, then per row assign the
// customer label, the checking note and the robot stock-on-hand quantity.
// The mapping table, inventory and run clock are read-only for the whole run,
// so classification is a pure function of (row, table, inventory, now) and
// re-running on its own output reproduces the same values.
type Engine struct {
	matcher       *Matcher
	inventory     model.InventoryLookup
	primaryVendor string
	now           time.Time
	log           *zap.Logger
}

// Options configures an engine run.
type Options struct {
	Mapping       *model.CustomerMappingTable
	FieldOrder    []string
	Inventory     model.InventoryLookup
	PrimaryVendor string
	// Now is the shared reference clock, captured once per run.
	Now    time.Time
	Logger *zap.Logger
}

// NewEngine builds an engine for one processing run.
func NewEngine(opts Options) *Engine {
	mapping := opts.Mapping
	if mapping == nil {
		mapping = model.NewCustomerMappingTable()
	}
	inventory := opts.Inventory
	if inventory == nil {
		inventory = model.InventoryLookup{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		matcher:       NewMatcher(mapping, opts.FieldOrder),
		inventory:     inventory,
		primaryVendor: opts.PrimaryVendor,
		now:           opts.Now,
		log:           logger,
	}
}

// Result is an annotated table plus its output schema and statistics.
type Result struct {
	Table  *model.OrderTable
	Schema *model.OutputSchema
	Stats  *model.RunStats
}

// Run annotates the table in place and returns the result. Rows dropped by
// preprocessing are removed from the table; all surviving rows keep their
// relative order.
func (e *Engine) Run(table *model.OrderTable) (*Result, error) {
	stats := model.NewRunStats(table.SourceFile, e.now)
	stats.TotalRows = len(table.Records)

	pre := Preprocess(table.Records, e.primaryVendor)
	table.Records = pre.Records
	stats.RemovedReturns = pre.RemovedReturns
	stats.RemovedNonPrimarySamples = pre.RemovedNonPrimarySamples
	stats.RemainingRows = len(pre.Records)

	for _, rec := range table.Records {
		rec.CustomerLabel = e.matcher.Label(table, rec)
		rec.CheckingNote = ClassifyNote(rec, e.now)
		rec.RobotSOH = StockOnHand(rec, e.inventory)

		if rec.CustomerLabel != "" {
			stats.LabeledRows++
		}
		if rec.CheckingNote != "" {
			stats.NoteCounts[rec.CheckingNote]++
		}
		if rec.RobotSOH != "" {
			stats.StockMatchedRows++
		}
	}

	e.log.Info("labeling run complete",
		zap.String("input", table.SourceFile),
		zap.Int("total_rows", stats.TotalRows),
		zap.Int("removed_returns", stats.RemovedReturns),
		zap.Int("removed_non_primary_samples", stats.RemovedNonPrimarySamples),
		zap.Int("remaining_rows", stats.RemainingRows),
		zap.Int("labeled_rows", stats.LabeledRows),
	)

	return &Result{
		Table:  table,
		Schema: model.NewOutputSchema(table.Header),
		Stats:  stats,
	}, nil
}
