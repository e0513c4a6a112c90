package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/LCLAMEDIA/openorders/internal/model"
)

const outputSheet = "Open Orders"

// noteColors maps a checking note to its row background fill.
var noteColors = map[string]string{
	"PO OVERDUE":                     "#fae2d5",
	"PO OK":                          "#ffffcc",
	"DECO OK":                        "#ccccff",
	"DECO OVERDUE":                   "#9999ff",
	"SHOULD SHIP THIS WEEK":          "#d9f2d0",
	"PO RECEIVED PLEASE SHIP":        "#92d050",
	"DIRECT PO RECEIVED PLEASE SHIP": "#ffc000",
}

// OutputFilename names the processed artifact after the run time and the
// surviving row count.
func OutputFilename(now time.Time, rowCount int) string {
	return fmt.Sprintf("PROCESSED_OOR_%s_row_%d.xlsx", now.Format("2006-01-02_15-04-05"), rowCount)
}

// WriteProcessedReport renders the annotated table into a workbook, with each
// row filled according to its checking note.
func WriteProcessedReport(table *model.OrderTable, schema *model.OutputSchema) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", outputSheet); err != nil {
		return nil, fmt.Errorf("failed to name output sheet: %w", err)
	}

	header := make([]interface{}, len(schema.Columns))
	for i, col := range schema.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(outputSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build header style: %w", err)
	}
	f.SetRowStyle(outputSheet, 1, 1, headerStyle)

	// One style per distinct note colour, built lazily.
	fillStyles := make(map[string]int, len(noteColors))
	for i, rec := range table.Records {
		rowNum := i + 2

		cells := schema.OutputRow(rec)
		row := make([]interface{}, len(cells))
		for j, cell := range cells {
			row[j] = cell
		}
		if err := f.SetSheetRow(outputSheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}

		color, ok := noteColors[rec.CheckingNote]
		if !ok {
			continue
		}
		styleID, ok := fillStyles[color]
		if !ok {
			styleID, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			})
			if err != nil {
				return nil, fmt.Errorf("failed to build fill style for %s: %w", color, err)
			}
			fillStyles[color] = styleID
		}
		f.SetRowStyle(outputSheet, rowNum, rowNum, styleID)
	}

	f.SetColWidth(outputSheet, "A", "C", 22)
	return f, nil
}
