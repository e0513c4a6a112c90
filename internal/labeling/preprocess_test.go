package labeling

import (
	"testing"

	"github.com/LCLAMEDIA/openorders/internal/model"
)

func TestPreprocess(t *testing.T) {
	records := []*model.OrderRecord{
		{ProductNum: "SAK-1", Vendor: "Fashion Biz", QtyOrdered: 10},
		{ProductNum: "BW-2", Vendor: "PNW", QtyOrdered: -3},
		{ProductNum: "GENERIC-SAMPLE-N/A-O/S", Vendor: "Fashion Biz", QtyOrdered: 1},
		{ProductNum: "GENERIC-SAMPLE-N/A-O/S", Vendor: " PNW ", QtyOrdered: 2},
		{ProductNum: "GENERIC-UNIFORM-001", Vendor: "Fashion Biz", QtyOrdered: 5},
	}

	result := Preprocess(records, "PNW")

	if result.RemovedReturns != 1 {
		t.Errorf("RemovedReturns = %d, want 1", result.RemovedReturns)
	}
	if result.RemovedNonPrimarySamples != 1 {
		t.Errorf("RemovedNonPrimarySamples = %d, want 1", result.RemovedNonPrimarySamples)
	}

	// Row-count conservation.
	remaining := len(records) - result.RemovedReturns - result.RemovedNonPrimarySamples
	if len(result.Records) != remaining {
		t.Errorf("remaining rows = %d, want %d", len(result.Records), remaining)
	}

	// Survivors keep their relative order.
	wantOrder := []string{"SAK-1", "GENERIC-SAMPLE-N/A-O/S", "GENERIC-UNIFORM-001"}
	for i, want := range wantOrder {
		if result.Records[i].ProductNum != want {
			t.Errorf("row %d = %q, want %q", i, result.Records[i].ProductNum, want)
		}
	}
}

func TestPreprocessEmpty(t *testing.T) {
	result := Preprocess(nil, "PNW")
	if len(result.Records) != 0 || result.RemovedReturns != 0 || result.RemovedNonPrimarySamples != 0 {
		t.Errorf("empty input should produce empty result, got %+v", result)
	}
}

func TestNormalizeBarcode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9312345678901", "9312345678901"},
		{" 9312345678901 ", "9312345678901"},
		{"9312345678901.0", "9312345678901"},
		{"9312345678901.7", "9312345678901"},
		{"", ""},
		{"no.barcode", "no.barcode"},
	}

	for _, tt := range tests {
		if got := NormalizeBarcode(tt.in); got != tt.want {
			t.Errorf("NormalizeBarcode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStockOnHand(t *testing.T) {
	inventory := model.InventoryLookup{"9312345678901": 42}

	tests := []struct {
		name    string
		barcode string
		want    string
	}{
		{"known barcode", "9312345678901", "42"},
		{"float formatted", "9312345678901.0", "42"},
		{"unknown barcode", "111", ""},
		{"missing barcode", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &model.OrderRecord{Barcode: tt.barcode}
			if got := StockOnHand(rec, inventory); got != tt.want {
				t.Errorf("StockOnHand(%q) = %q, want %q", tt.barcode, got, tt.want)
			}
		})
	}
}
