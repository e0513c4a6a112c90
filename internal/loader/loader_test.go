package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()

	inventoryPath := filepath.Join(dir, "robot_stock.csv")
	csv := "Barcode,stockonhandST\n9312345678901,12\n"
	if err := os.WriteFile(inventoryPath, []byte(csv), 0o644); err != nil {
		t.Fatalf("write inventory: %v", err)
	}

	// The mapping file does not exist; the inventory does. Both loads must
	// complete, with the missing one degrading to an empty collaborator.
	l := New(filepath.Join(dir, "missing_mapping.xlsx"), inventoryPath, nil)
	ref := l.Load(context.Background())

	if ref.Mapping == nil || ref.Mapping.Len() != 0 {
		t.Errorf("missing mapping should load empty, got %v", ref.Mapping)
	}
	if len(ref.FieldOrder) != 0 {
		t.Errorf("missing mapping should have no field order, got %v", ref.FieldOrder)
	}
	if ref.Inventory["9312345678901"] != 12 {
		t.Errorf("inventory = %v, want barcode mapped to 12", ref.Inventory)
	}
}

func TestLoadAllMissing(t *testing.T) {
	dir := t.TempDir()

	l := New(filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.csv"), nil)
	ref := l.Load(context.Background())

	if ref.Mapping.Len() != 0 || len(ref.Inventory) != 0 {
		t.Errorf("expected empty reference data, got %+v", ref)
	}
}
