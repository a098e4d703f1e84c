// =============================================================================
// Tow Ticket Billing Converter - XLSX Sheet Parser
// =============================================================================
//
// This module streams rows out of a tow-ticket spreadsheet export. The sheet
// layout mirrors the CSV export:
//
//   | Ticket # | Date Time        | Bill To/Pilot | Airport | Category | ... |
//   |----------|------------------|---------------|---------|----------|-----|
//   | 123      | 2024-06-01 12:00 | Smith, John   | 10R4    | Intro    | ... |
//
// Cells are read as raw values so that number formats ("$50.00", "1.5 hrs")
// do not leak into parsing. Date cells stored as Excel serial numbers are
// converted to "YYYY-MM-DD HH:MM:SS" text for the columns listed in
// Options.DateColumns.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls how a sheet is read.
type Options struct {
	// Sheet is the sheet to read. Empty means the first sheet.
	Sheet string

	// DateColumns lists headers whose numeric cells are Excel date serials.
	DateColumns []string
}

// =============================================================================
// SHEET READER
// =============================================================================

// SheetReader reads a worksheet row by row. It has the same shape as
// csvparser.StreamingParser, so both can back a ticket reader.
type SheetReader struct {
	file       *excelize.File
	rows       *excelize.Rows
	headers    []string
	dateCols   map[string]bool
	currentRow map[string]string
	rowNumber  int
	err        error
}

// Open opens an XLSX workbook and reads the header row of the sheet.
func Open(path string, opts Options) (*SheetReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		f.Close()
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read sheet '%s': %w", sheet, err)
	}

	r := &SheetReader{
		file:     f,
		rows:     rows,
		dateCols: make(map[string]bool, len(opts.DateColumns)),
	}
	for _, c := range opts.DateColumns {
		r.dateCols[c] = true
	}

	if err := r.readHeaders(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *SheetReader) readHeaders() error {
	if !r.rows.Next() {
		if err := r.rows.Error(); err != nil {
			return fmt.Errorf("error reading header row: %w", err)
		}
		return fmt.Errorf("sheet is empty")
	}
	cols, err := r.rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("error reading header row: %w", err)
	}
	r.rowNumber++
	r.headers = make([]string, len(cols))
	for i, h := range cols {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		r.headers[i] = h
	}
	return nil
}

// Next advances to the next non-blank row.
func (r *SheetReader) Next() bool {
	if r.err != nil {
		return false
	}
	for r.rows.Next() {
		r.rowNumber++
		cols, err := r.rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			r.err = fmt.Errorf("error reading row %d: %w", r.rowNumber, err)
			return false
		}
		if isRowEmpty(cols) {
			continue
		}

		row := make(map[string]string, len(r.headers))
		for i, header := range r.headers {
			value := ""
			if i < len(cols) {
				value = strings.TrimSpace(cols[i])
			}
			if r.dateCols[header] {
				value, err = convertSerialDate(value)
				if err != nil {
					r.err = fmt.Errorf("row %d, column '%s': %w", r.rowNumber, header, err)
					return false
				}
			}
			row[header] = value
		}
		r.currentRow = row
		return true
	}
	if err := r.rows.Error(); err != nil {
		r.err = fmt.Errorf("error reading rows: %w", err)
	}
	return false
}

func (r *SheetReader) Row() map[string]string { return r.currentRow }
func (r *SheetReader) Headers() []string      { return r.headers }
func (r *SheetReader) RowNumber() int         { return r.rowNumber }
func (r *SheetReader) Err() error             { return r.err }

// Close releases the row iterator and the workbook.
func (r *SheetReader) Close() error {
	if r.file == nil {
		return nil
	}
	var rowsErr error
	if r.rows != nil {
		rowsErr = r.rows.Close()
	}
	err := r.file.Close()
	r.file = nil
	if err != nil {
		return err
	}
	return rowsErr
}

// =============================================================================
// HELPERS
// =============================================================================

// convertSerialDate turns an Excel date serial into timestamp text.
// Values that are not numbers are returned unchanged.
func convertSerialDate(value string) (string, error) {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value, nil
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", fmt.Errorf("invalid date serial %s: %w", value, err)
	}
	return t.Format("2006-01-02 15:04:05"), nil
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
