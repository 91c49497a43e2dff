package storage

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const quotesSheet = "Quotes"

var quoteHeaders = []string{
	"ID", "Reference", "User ID", "Shape", "Size", "Width (ft)", "Length (ft)",
	"Material", "Protection", "Pad", "Area (sq ft)", "Raw Price", "Final Price",
	"Status", "Created At",
}

// BuildQuotesWorkbook renders quotes into a single-sheet xlsx file.
func BuildQuotesWorkbook(quotes []QuoteRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quotesSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	// Заголовки
	for col, header := range quoteHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(quotesSheet, cell, header)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(quoteHeaders), 1)
	f.SetCellStyle(quotesSheet, "A1", last, style)

	// Данные
	for row, q := range quotes {
		data := []interface{}{
			q.ID,
			q.Reference,
			q.UserID,
			q.Shape,
			q.DisplaySize,
			q.WidthFt,
			q.LengthFt,
			q.Material,
			q.Protection,
			q.PadType,
			q.AreaSqFt,
			q.RawPrice,
			q.FinalPrice,
			q.Status,
			q.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(quotesSheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
