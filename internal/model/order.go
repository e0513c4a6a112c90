package model

import (
	"strings"
	"time"
)

// Column names required in the input report.
const (
	ColProductNum  = "ProductNum"
	ColVendors     = "Vendors"
	ColQtyOrdered  = "QtyOrdered"
	ColDateIssued  = "DateIssued"
	ColTaskQueue   = "TaskQueue"
	ColQID         = "QID"
	ColQIDDate     = "QIDDate"
	ColOurRef      = "OurRef"
	ColBarcode     = "barcodeupc"
	ColStockOnHand = "StockOnHand"
)

// Derived columns added to the output report.
const (
	ColActioned      = "ACTIONED"
	ColCheckingNotes = "CHECKING NOTES"
	ColCustomer      = "CUSTOMER"
	ColRobotSOH      = "ROBOT SOH"
)

// RequiredColumns lists every column the input report must carry.
var RequiredColumns = []string{
	ColProductNum, ColVendors, ColQtyOrdered, ColDateIssued, ColTaskQueue,
	ColQID, ColQIDDate, ColOurRef, ColBarcode, ColStockOnHand,
}

// OrderRecord is one purchase-order line item.
//
// Cells carries the raw input row in original column order; the typed fields
// are parsed from it at load time. Zero time values mean the date was absent
// or unparsable, and every rule depending on it is skipped.
type OrderRecord struct {
	ProductNum string
	Vendor     string
	QtyOrdered int
	DateIssued time.Time
	TaskQueue  string
	QID        int
	HasQID     bool
	QIDDate    time.Time
	OurRef     string
	Barcode    string

	// Derived outputs, empty until the engine assigns them.
	CustomerLabel string
	CheckingNote  string
	RobotSOH      string

	Cells []string
}

// OrderTable is a parsed input report: header plus one record per data row.
type OrderTable struct {
	SourceFile string
	Header     []string
	Records    []*OrderRecord

	colIndex map[string]int
}

// NewOrderTable builds a table and its column lookup from a header row.
func NewOrderTable(sourceFile string, header []string) *OrderTable {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	return &OrderTable{
		SourceFile: sourceFile,
		Header:     header,
		colIndex:   idx,
	}
}

// ColumnIndex returns the position of a column, or -1 when absent.
func (t *OrderTable) ColumnIndex(name string) int {
	if i, ok := t.colIndex[name]; ok {
		return i
	}
	return -1
}

// Field returns a record's raw cell value for a named input column.
func (t *OrderTable) Field(rec *OrderRecord, column string) string {
	i := t.ColumnIndex(column)
	if i < 0 || i >= len(rec.Cells) {
		return ""
	}
	return rec.Cells[i]
}

// OutputSchema tracks where the derived columns sit in the output report.
// ACTIONED, CHECKING NOTES and CUSTOMER lead the table; ROBOT SOH follows the
// input's StockOnHand column.
type OutputSchema struct {
	Columns  []string
	robotIdx int
}

// NewOutputSchema derives the output column layout from an input header.
func NewOutputSchema(header []string) *OutputSchema {
	stockIdx := -1
	for i, col := range header {
		if strings.TrimSpace(col) == ColStockOnHand {
			stockIdx = i
			break
		}
	}

	columns := make([]string, 0, len(header)+4)
	columns = append(columns, ColActioned, ColCheckingNotes, ColCustomer)
	robotIdx := -1
	for i, col := range header {
		columns = append(columns, col)
		if i == stockIdx {
			columns = append(columns, ColRobotSOH)
			robotIdx = len(columns) - 1
		}
	}
	if robotIdx < 0 {
		// No StockOnHand column: ROBOT SOH goes last.
		columns = append(columns, ColRobotSOH)
		robotIdx = len(columns) - 1
	}

	return &OutputSchema{Columns: columns, robotIdx: robotIdx}
}

// OutputRow lays out one record's cells in output column order.
func (s *OutputSchema) OutputRow(rec *OrderRecord) []string {
	row := make([]string, 0, len(s.Columns))
	row = append(row, "", rec.CheckingNote, rec.CustomerLabel)
	for _, cell := range rec.Cells {
		row = append(row, cell)
		if len(row) == s.robotIdx {
			row = append(row, rec.RobotSOH)
		}
	}
	// Short input rows still need the ROBOT SOH slot filled.
	for len(row) < len(s.Columns) {
		if len(row) == s.robotIdx {
			row = append(row, rec.RobotSOH)
		} else {
			row = append(row, "")
		}
	}
	return row
}
