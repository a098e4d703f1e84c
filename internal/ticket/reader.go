// =============================================================================
// Tow Ticket Billing Converter - Tow Ticket Reader
// =============================================================================
//
// This module turns header-keyed rows from a tow-ticket export into Records.
//
// PROCESSING FLOW:
//   1. Open the export (CSV or XLSX) and check the required headers
//   2. For each non-blank row, decode the cells into a Record
//   3. Validate the Record (see New)
//   4. Yield it to the caller, or stop the whole read on the first error
//
// Optional columns only override a default when the column is present and
// the cell is non-empty. Extra columns (Month, Tow Raw, ...) are ignored.
//
// =============================================================================

package ticket

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/towbill/internal/csvparser"
	"github.com/ginjaninja78/towbill/internal/name"
	"github.com/ginjaninja78/towbill/internal/validation"
	"github.com/ginjaninja78/towbill/internal/xlsxparser"
)

// Input column headers.
const (
	ColTicket         = "Ticket #"
	ColDateTime       = "Date Time"
	ColPilot          = "Bill To/Pilot"
	ColAirport        = "Airport"
	ColCategory       = "Category"
	ColGliderID       = "Glider ID"
	ColTowType        = "Tow Type"
	ColFlightBrief    = "Flight Brief"
	ColCFIG           = "CFIG"
	ColGuest          = "Guest"
	ColBillableRental = "Billable Rental"
	ColBillableTow    = "Billable Tow"
	ColTowSpeed       = "Tow Speed"
	ColAltRequired    = "Alt Required"
	ColReleaseAlt     = "Release Alt"
	ColGliderTime     = "Glider Time"
	ColTowFee         = "Tow Fee"
	ColGliderRental   = "Glider Rental"
	ColRemarks        = "Remarks"
	ColCertificate    = "Certificate"
	ColTowPilot       = "Tow Pilot"
	ColTowPlane       = "Tow Plane"
	ColFlownFlag      = "Flown Flag"
	ColClosedFlag     = "Closed Flag"
)

// RequiredColumns must be present in the header row and non-empty in every
// data row.
var RequiredColumns = []string{
	ColTicket,
	ColDateTime,
	ColPilot,
	ColAirport,
	ColCategory,
	ColGliderID,
	ColTowType,
}

// ErrConsumed is yielded when All is called on a Reader that has already
// been iterated. Open the file again to read it again.
var ErrConsumed = errors.New("ticket reader already consumed")

// =============================================================================
// ROW SOURCES
// =============================================================================

// rowSource is satisfied by csvparser.StreamingParser and
// xlsxparser.SheetReader.
type rowSource interface {
	Next() bool
	Row() map[string]string
	Headers() []string
	RowNumber() int
	Err() error
	Close() error
}

// Options selects how a ticket export is opened.
type Options struct {
	CSV   csvparser.Settings
	Sheet string // XLSX only; empty means the first sheet
}

// DefaultOptions returns options for the standard comma-separated export.
func DefaultOptions() Options {
	return Options{CSV: csvparser.DefaultSettings()}
}

// =============================================================================
// READER
// =============================================================================

// Reader produces the tickets of one export file, in file order. It can be
// iterated once.
type Reader struct {
	src      rowSource
	path     string
	consumed bool
}

// Open opens a ticket export, choosing the parser from the file extension
// (.xlsx or .xlsm for workbooks, anything else is read as CSV).
func Open(path string, opts Options) (*Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return openXLSX(path, opts.Sheet)
	default:
		return openCSV(path, opts.CSV)
	}
}

// ReadFromCSV opens a comma-separated ticket export.
func ReadFromCSV(path string) (*Reader, error) {
	return openCSV(path, csvparser.DefaultSettings())
}

// ReadFromXLSX opens the first sheet of a ticket workbook.
func ReadFromXLSX(path string) (*Reader, error) {
	return openXLSX(path, "")
}

func openCSV(path string, settings csvparser.Settings) (*Reader, error) {
	p, err := csvparser.Open(path, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open ticket file: %w", err)
	}
	return newReader(p, path)
}

func openXLSX(path, sheet string) (*Reader, error) {
	p, err := xlsxparser.Open(path, xlsxparser.Options{
		Sheet:       sheet,
		DateColumns: []string{ColDateTime},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open ticket workbook: %w", err)
	}
	return newReader(p, path)
}

func newReader(src rowSource, path string) (*Reader, error) {
	if err := checkHeaders(src.Headers()); err != nil {
		src.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Reader{src: src, path: path}, nil
}

func checkHeaders(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	for _, col := range RequiredColumns {
		if !present[col] {
			return &validation.ValidationError{Field: col, Message: "required column is missing"}
		}
	}
	return nil
}

// All returns the tickets as a sequence. Iteration stops at the first row
// that fails to decode or validate; that error is yielded with a zero Record.
// The underlying file is closed when iteration ends, including on early break.
func (r *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		if r.consumed {
			yield(Record{}, ErrConsumed)
			return
		}
		r.consumed = true
		defer r.Close()

		for r.src.Next() {
			rec, err := decodeRow(r.src.Row())
			if err != nil {
				yield(Record{}, fmt.Errorf("%s, row %d: %w", r.path, r.src.RowNumber(), err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := r.src.Err(); err != nil {
			yield(Record{}, fmt.Errorf("%s: %w", r.path, err))
		}
	}
}

// Close releases the file. It is safe to call more than once.
func (r *Reader) Close() error {
	return r.src.Close()
}

// ReadAll drains r into a slice and closes it.
func ReadAll(r *Reader) ([]Record, error) {
	var records []Record
	for rec, err := range r.All() {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// =============================================================================
// ROW DECODING
// =============================================================================

// decodeRow builds a validated Record from one row.
func decodeRow(row map[string]string) (Record, error) {
	rec := Defaults()
	var err error

	// Required fields
	ticketText, err := validation.Required(ColTicket, row[ColTicket])
	if err != nil {
		return Record{}, err
	}
	if rec.Ticket, err = validation.ParseInt(ColTicket, ticketText); err != nil {
		return Record{}, err
	}

	dateText, err := validation.Required(ColDateTime, row[ColDateTime])
	if err != nil {
		return Record{}, err
	}
	if rec.DateTime, err = validation.ParseDateTime(ColDateTime, dateText); err != nil {
		return Record{}, err
	}

	pilotText, err := validation.Required(ColPilot, row[ColPilot])
	if err != nil {
		return Record{}, err
	}
	if rec.Pilot, err = parseName(ColPilot, pilotText); err != nil {
		return Record{}, err
	}

	if rec.Airport, err = validation.Required(ColAirport, row[ColAirport]); err != nil {
		return Record{}, err
	}

	categoryText, err := validation.Required(ColCategory, row[ColCategory])
	if err != nil {
		return Record{}, err
	}
	if rec.Category, err = ParseCategory(categoryText); err != nil {
		return Record{}, err
	}

	if rec.GliderID, err = validation.Required(ColGliderID, row[ColGliderID]); err != nil {
		return Record{}, err
	}
	if rec.TowType, err = validation.Required(ColTowType, row[ColTowType]); err != nil {
		return Record{}, err
	}

	// Optional text fields
	if v, ok := optional(row, ColFlightBrief); ok {
		rec.FlightBrief = v
	}
	if v, ok := optional(row, ColGuest); ok {
		rec.Guest = v
	}
	if v, ok := optional(row, ColRemarks); ok {
		rec.Remarks = v
	}
	if v, ok := optional(row, ColCertificate); ok {
		rec.Certificate = v
	}
	if v, ok := optional(row, ColTowPlane); ok {
		rec.TowPlane = v
	}
	if v, ok := optional(row, ColCFIG); ok {
		if rec.CFIG, err = parseName(ColCFIG, v); err != nil {
			return Record{}, err
		}
	}
	if v, ok := optional(row, ColTowPilot); ok {
		if rec.TowPilot, err = parseName(ColTowPilot, v); err != nil {
			return Record{}, err
		}
	}

	// Flags
	if v, ok := optional(row, ColBillableRental); ok {
		rec.BillableRental = validation.ParseFlag(v)
	}
	if v, ok := optional(row, ColBillableTow); ok {
		rec.BillableTow = validation.ParseFlag(v)
	}
	rec.Flown = validation.ParseFlag(row[ColFlownFlag])
	rec.Closed = validation.ParseFlag(row[ColClosedFlag])

	// Numbers
	for _, f := range []struct {
		col string
		dst *int
	}{
		{ColTowSpeed, &rec.TowSpeed},
		{ColAltRequired, &rec.AltRequired},
		{ColReleaseAlt, &rec.ReleaseAlt},
	} {
		if v, ok := optional(row, f.col); ok {
			if *f.dst, err = validation.ParseInt(f.col, v); err != nil {
				return Record{}, err
			}
		}
	}
	if v, ok := optional(row, ColGliderTime); ok {
		if rec.GliderTime, err = validation.ParseFloat(ColGliderTime, v); err != nil {
			return Record{}, err
		}
	}
	if v, ok := optional(row, ColTowFee); ok {
		if rec.TowFee, err = validation.ParseMoney(ColTowFee, v); err != nil {
			return Record{}, err
		}
	}
	if v, ok := optional(row, ColGliderRental); ok {
		if rec.RentalFee, err = validation.ParseMoney(ColGliderRental, v); err != nil {
			return Record{}, err
		}
	}

	return New(rec)
}

// optional returns the trimmed cell and whether it is present and non-empty.
func optional(row map[string]string, col string) (string, bool) {
	v := strings.TrimSpace(row[col])
	return v, v != ""
}

func parseName(col, raw string) (name.Name, error) {
	n, err := name.Parse(raw)
	if err != nil {
		var fe *validation.FormatError
		if errors.As(err, &fe) {
			fe.Field = col
		}
		return name.Name{}, err
	}
	return n, nil
}
