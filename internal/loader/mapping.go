package loader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/LCLAMEDIA/openorders/internal/model"
)

// Customer mapping workbook layout: one sheet whose name contains both
// "customer" and "mapping", an instruction row, then the header row carrying
// the label column plus one or more matching-field columns.
const (
	labelColumn        = "CUSTOMER LABEL"
	unnamedPlaceholder = "Unnamed"
)

// ReadCustomerMapping parses the customer mapping workbook into the mapping
// table and the ordered matching-field list.
func ReadCustomerMapping(r io.Reader) (*model.CustomerMappingTable, []string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open mapping workbook: %w", err)
	}
	defer wb.Close()

	sheet := findMappingSheet(wb)
	if sheet == "" {
		return nil, nil, errors.New("no sheet named like customer mapping found")
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	// Row 1 is instructions, row 2 is the header.
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	header := rows[1]
	labelIdx := -1
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), labelColumn) {
			labelIdx = i
			break
		}
	}
	if labelIdx < 0 {
		return nil, nil, fmt.Errorf("sheet %q has no %s column", sheet, labelColumn)
	}

	type fieldCol struct {
		name string
		idx  int
	}
	fields := make([]fieldCol, 0, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		if i == labelIdx || name == "" || strings.Contains(name, unnamedPlaceholder) {
			continue
		}
		fields = append(fields, fieldCol{name: name, idx: i})
	}

	table := model.NewCustomerMappingTable()
	for _, row := range rows[2:] {
		label := cellAt(row, labelIdx)
		if label == "" {
			continue
		}
		for _, f := range fields {
			table.Add(label, f.name, cellAt(row, f.idx))
		}
	}

	fieldOrder := make([]string, len(fields))
	for i, f := range fields {
		fieldOrder[i] = f.name
	}
	return table, fieldOrder, nil
}

func findMappingSheet(wb *excelize.File) string {
	for _, name := range wb.GetSheetList() {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "customer") && strings.Contains(lower, "mapping") {
			return name
		}
	}
	return ""
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
