// Package loader reads the reference data a labeling run depends on: the
// customer mapping workbook and the robot inventory export. Both loads are
// best-effort; a missing or malformed file degrades to an empty result so the
// run still produces output.
package loader

import (
	"context"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LCLAMEDIA/openorders/internal/model"
)

// Loader fetches reference data for a run.
type Loader struct {
	mappingPath   string
	inventoryPath string
	log           *zap.Logger
}

// New builds a loader over the configured reference file paths.
func New(mappingPath, inventoryPath string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{mappingPath: mappingPath, inventoryPath: inventoryPath, log: log}
}

// Reference is the loaded reference data set.
type Reference struct {
	Mapping    *model.CustomerMappingTable
	FieldOrder []string
	Inventory  model.InventoryLookup
}

// Load fetches the mapping table and the inventory lookup concurrently.
// Failures are logged and replaced with empty collaborators, never escalated.
func (l *Loader) Load(ctx context.Context) *Reference {
	ref := &Reference{
		Mapping:   model.NewCustomerMappingTable(),
		Inventory: model.InventoryLookup{},
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		table, fields, err := l.loadMapping()
		if err != nil {
			l.log.Warn("customer mapping unavailable, labeling disabled for this run",
				zap.String("path", l.mappingPath), zap.Error(err))
			return nil
		}
		ref.Mapping = table
		ref.FieldOrder = fields
		l.log.Info("customer mapping loaded",
			zap.String("path", l.mappingPath),
			zap.Int("labels", table.Len()),
			zap.Int("fields", len(fields)))
		return nil
	})
	g.Go(func() error {
		lookup, err := l.loadInventory()
		if err != nil {
			l.log.Warn("inventory unavailable, stock lookup disabled for this run",
				zap.String("path", l.inventoryPath), zap.Error(err))
			return nil
		}
		ref.Inventory = lookup
		l.log.Info("inventory loaded",
			zap.String("path", l.inventoryPath),
			zap.Int("barcodes", len(lookup)))
		return nil
	})
	g.Wait()

	return ref
}

func (l *Loader) loadMapping() (*model.CustomerMappingTable, []string, error) {
	f, err := os.Open(l.mappingPath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadCustomerMapping(f)
}

func (l *Loader) loadInventory() (model.InventoryLookup, error) {
	f, err := os.Open(l.inventoryPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadInventory(f)
}
