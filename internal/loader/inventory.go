package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/LCLAMEDIA/openorders/internal/model"
)

// inventoryRow is one line of the robot stock export.
type inventoryRow struct {
	Barcode     string `csv:"Barcode"`
	StockOnHand string `csv:"stockonhandST"`
}

// ReadInventory parses the robot inventory export into a barcode lookup.
// Rows with a missing barcode or a non-integral quantity are dropped.
func ReadInventory(r io.Reader) (model.InventoryLookup, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory header: %w", err)
	}

	lookup := make(model.InventoryLookup)
	for {
		var row inventoryRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to decode inventory row: %w", err)
		}

		barcode := strings.TrimSpace(row.Barcode)
		if barcode == "" {
			continue
		}
		qty, ok := parseQuantity(row.StockOnHand)
		if !ok {
			continue
		}
		lookup[barcode] = qty
	}
	return lookup, nil
}

// parseQuantity accepts integers and integral floats ("12", "12.0"), and
// rejects everything else.
func parseQuantity(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
