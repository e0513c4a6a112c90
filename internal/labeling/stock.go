package labeling

import (
	"strconv"
	"strings"

	"github.com/LCLAMEDIA/openorders/internal/model"
)

// NormalizeBarcode trims a barcode cell and collapses float-formatted values
// ("9312345.0") to their integer representation. Non-integral floats are
// truncated.
func NormalizeBarcode(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || !strings.Contains(value, ".") {
		return value
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	return strconv.FormatInt(int64(f), 10)
}

// StockOnHand looks up a record's barcode in the inventory and returns the
// quantity as a string, or "" when the barcode is absent or unknown.
func StockOnHand(rec *model.OrderRecord, inventory model.InventoryLookup) string {
	barcode := NormalizeBarcode(rec.Barcode)
	if barcode == "" {
		return ""
	}
	qty, ok := inventory[barcode]
	if !ok {
		return ""
	}
	return strconv.Itoa(qty)
}
