package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"reporttable/pkg/contracts/domain"
)

// XLSXSheet is the worksheet the table is written to
const XLSXSheet = "Sheet1"

type xlsxFormatter struct{}

func newXLSXFormatter() *xlsxFormatter { return &xlsxFormatter{} }

func (f *xlsxFormatter) Name() string          { return "xlsx" }
func (f *xlsxFormatter) DefaultIndent() string { return TextIndent }
func (f *xlsxFormatter) Binary() bool          { return true }

// Render writes a single-sheet workbook. The header row and group headers are bold.
func (f *xlsxFormatter) Render(w io.Writer, t *domain.Table) error {
	book := excelize.NewFile()
	defer book.Close()

	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	rowIdx := 1
	if t.HasHeader() {
		if err := writeXLSXRow(book, rowIdx, t.Header, bold); err != nil {
			return err
		}
		rowIdx++
	}
	for _, row := range t.Rows {
		style := 0
		if row.Kind == domain.RowGroupHeader {
			style = bold
		}
		if err := writeXLSXRow(book, rowIdx, row.Cells(), style); err != nil {
			return err
		}
		rowIdx++
	}

	if err := book.SetColWidth(XLSXSheet, "A", "A", float64(labelColumnWidth(t))); err != nil {
		return fmt.Errorf("failed to size label column: %w", err)
	}

	if err := book.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeXLSXRow(book *excelize.File, rowIdx int, cells []string, style int) error {
	for c, v := range cells {
		cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
		if err != nil {
			return err
		}
		if err := book.SetCellValue(XLSXSheet, cell, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", cell, err)
		}
		if style != 0 {
			if err := book.SetCellStyle(XLSXSheet, cell, cell, style); err != nil {
				return fmt.Errorf("failed to style %s: %w", cell, err)
			}
		}
	}
	return nil
}

func labelColumnWidth(t *domain.Table) int {
	var header []string
	if t.HasHeader() {
		header = t.Header
	}
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, r.Cells())
	}
	width := columnWidths(header, rows)[0] + 2
	if width > 255 {
		width = 255
	}
	return width
}
