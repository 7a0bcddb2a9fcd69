// Package export produces XLSX review workbooks from extraction results, so
// a human can check and correct low-confidence fields before they feed the
// prediction model.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dami-akins/formintake/internal/catalog"
	"github.com/dami-akins/formintake/internal/extract"
)

const (
	fieldsSheet    = "Fields"
	unmatchedSheet = "Unmatched"
)

// Service turns DocumentResults into XLSX bytes.
type Service struct {
	cat    *catalog.Catalog
	logger *slog.Logger
}

func NewService(cat *catalog.Catalog, logger *slog.Logger) *Service {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cat: cat, logger: logger}
}

// ReviewWorkbook writes one Fields sheet (a row per catalog field per
// document, in catalog order) and one Unmatched sheet (every line that
// matched no field, with its source document).
func (s *Service) ReviewWorkbook(results []*extract.DocumentResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", fieldsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(unmatchedSheet); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}

	headers := []string{"Document", "Field", "Value", "Confidence", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(fieldsSheet, cell, h)
	}

	row := 2
	fieldRows := 0
	for _, res := range results {
		for _, name := range s.cat.Names() {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(fieldsSheet, cell, v)
			}
			write(1, res.Filename)
			write(2, name)
			if v := res.Fields[name]; v != nil {
				write(3, fmt.Sprintf("%v", v))
			} else {
				write(3, "")
			}
			write(4, res.FieldConfidences[name])
			write(5, string(res.FieldStatuses[name]))
			row++
			fieldRows++
		}
	}

	for i, h := range []string{"Document", "Line"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(unmatchedSheet, cell, h)
	}
	urow := 2
	for _, res := range results {
		for _, line := range res.UnmatchedLines {
			cell, _ := excelize.CoordinatesToCellName(1, urow)
			_ = f.SetCellValue(unmatchedSheet, cell, res.Filename)
			cell, _ = excelize.CoordinatesToCellName(2, urow)
			_ = f.SetCellValue(unmatchedSheet, cell, line)
			urow++
		}
	}

	_ = f.SetColWidth(fieldsSheet, "A", "A", 28) // document
	_ = f.SetColWidth(fieldsSheet, "B", "B", 26) // field
	_ = f.SetColWidth(fieldsSheet, "C", "C", 30) // value
	_ = f.SetColWidth(fieldsSheet, "D", "E", 12)
	_ = f.SetColWidth(unmatchedSheet, "A", "A", 28)
	_ = f.SetColWidth(unmatchedSheet, "B", "B", 80)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"documents", len(results),
		"field_rows", fieldRows,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
