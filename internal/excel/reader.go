// Package excel parses open-order reports and renders the annotated output
// workbook.
package excel

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/LCLAMEDIA/openorders/internal/calendar"
	"github.com/LCLAMEDIA/openorders/internal/model"
)

// ReadOrderReport parses an uploaded open-orders report into an order table.
// Dates inside cells are interpreted in loc.
//
// Failures are classified: wrong extension or missing columns are validation
// errors, a corrupt file is a parser error and a file without data rows is an
// empty-data error.
func ReadOrderReport(filename string, data []byte, loc *time.Location) (*model.OrderTable, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, model.NewProcessError(model.ValidationError,
			fmt.Sprintf("unsupported file extension %q, expected .xlsx or .xls", ext), nil)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, model.NewProcessError(model.ParserError,
			fmt.Sprintf("failed to open %s", filename), err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, model.NewProcessError(model.ParserError,
			fmt.Sprintf("%s contains no sheets", filename), nil)
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, model.NewProcessError(model.ParserError,
			fmt.Sprintf("failed to read sheet %q", sheets[0]), err)
	}
	if len(rows) < 2 {
		return nil, model.NewProcessError(model.EmptyDataError,
			fmt.Sprintf("%s contains no data rows", filename), nil)
	}

	header := rows[0]
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, model.NewProcessError(model.ValidationError,
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil)
	}

	table := model.NewOrderTable(filename, header)
	table.Records = make([]*model.OrderRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		table.Records = append(table.Records, parseRecord(table, row, loc))
	}
	return table, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = true
	}
	var missing []string
	for _, col := range model.RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// parseRecord builds a typed record from one raw row. Unparsable dates leave
// the field zero so downstream rules skip them; unparsable numbers leave zero.
func parseRecord(table *model.OrderTable, row []string, loc *time.Location) *model.OrderRecord {
	// Short rows are padded so positional cell access stays valid.
	cells := make([]string, len(table.Header))
	copy(cells, row)

	rec := &model.OrderRecord{Cells: cells}
	rec.ProductNum = table.Field(rec, model.ColProductNum)
	rec.Vendor = table.Field(rec, model.ColVendors)
	rec.QtyOrdered = parseInt(table.Field(rec, model.ColQtyOrdered))
	rec.TaskQueue = table.Field(rec, model.ColTaskQueue)
	rec.OurRef = table.Field(rec, model.ColOurRef)
	rec.Barcode = table.Field(rec, model.ColBarcode)

	if d, ok := calendar.ParseCellDate(table.Field(rec, model.ColDateIssued), loc); ok {
		rec.DateIssued = d
	}
	if d, ok := calendar.ParseCellDate(table.Field(rec, model.ColQIDDate), loc); ok {
		rec.QIDDate = d
	}
	if qidCell := strings.TrimSpace(table.Field(rec, model.ColQID)); qidCell != "" {
		rec.QID = parseInt(qidCell)
		rec.HasQID = true
	}
	return rec
}

// parseInt reads an integer cell, tolerating the float formatting spreadsheet
// exports apply to numeric columns ("10.0").
func parseInt(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return 0
}
