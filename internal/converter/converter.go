// =============================================================================
// Tow Ticket Billing Converter - Converter Module
// =============================================================================
//
// This module orchestrates one conversion run, from the ticket export to the
// two billing files.
//
// CONVERSION PIPELINE:
//   1. Read every ticket from the export (CSV or XLSX)
//   2. Derive member invoice items from each ticket
//   3. Derive vendor bill items from each ticket
//   4. Write the member invoice file
//   5. Write the vendor bill file
//   6. Optionally write XLSX copies of both
//
// All tickets are read and derived before any output is written, because
// grouping needs the complete item set. Any ticket error aborts the run and
// no output is written.
//
// =============================================================================

package converter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/towbill/internal/export"
	"github.com/ginjaninja78/towbill/internal/invoice"
	"github.com/ginjaninja78/towbill/internal/ticket"
	"github.com/ginjaninja78/towbill/pkg/utils"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls a conversion run.
type Options struct {
	// DueDays is the invoice due offset in days.
	// Default: 30
	DueDays int

	// Input selects the ticket export parser settings.
	Input ticket.Options

	// WriteXLSX also writes an .xlsx copy next to each CSV output.
	WriteXLSX bool

	// Now returns the run time used as invoice date. Default: time.Now.
	Now func() time.Time
}

// DefaultOptions returns the options for a standard run.
func DefaultOptions() Options {
	return Options{
		DueDays: invoice.DefaultDueDays,
		Input:   ticket.DefaultOptions(),
		Now:     time.Now,
	}
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// TicketFile is the input that was processed.
	TicketFile string

	// MemberInvoiceFile and VendorBillFile are the written outputs.
	// Both are empty if the run failed or was a validation run.
	MemberInvoiceFile string
	VendorBillFile    string

	// XLSXFiles lists the spreadsheet copies, if any were written.
	XLSXFiles []string

	// Success indicates whether the run completed.
	Success bool

	// Error is the reason the run failed, nil on success.
	Error error

	Stats ProcessingStats
}

// ProcessingStats contains statistics about a run.
type ProcessingStats struct {
	// TicketsRead is the number of valid tickets in the export.
	TicketsRead int

	// BillableTickets passed the completion gate.
	BillableTickets int

	// MemberItems and VendorItems are the derived line items.
	MemberItems int
	VendorItems int

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter runs conversions with a fixed set of options.
type Converter struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Converter. Zero-valued options fall back to their defaults.
func New(opts Options) *Converter {
	def := DefaultOptions()
	if opts.DueDays <= 0 {
		opts.DueDays = def.DueDays
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}
	return &Converter{opts: opts}
}

// ConvertAll reads ticketFile and writes both billing files.
func ConvertAll(ticketFile, memberInvoiceFile, vendorBillFile string, opts Options) (Result, error) {
	result := New(opts).Run(ticketFile, memberInvoiceFile, vendorBillFile)
	return result, result.Error
}

// Run executes the conversion pipeline.
//
// PARAMETERS:
//   - ticketFile: the tow-ticket export to read.
//   - memberInvoiceFile: where to write the member invoice CSV.
//   - vendorBillFile: where to write the vendor bill CSV.
//
// RETURNS:
//   - A Result; check Result.Error.
func (c *Converter) Run(ticketFile, memberInvoiceFile, vendorBillFile string) Result {
	startTime := time.Now()
	result := c.newResult(ticketFile)
	log := c.logger

	log.Info("Converting tickets", "file", ticketFile)

	// =========================================================================
	// STEP 1: READ TICKETS
	// =========================================================================

	records, err := c.readTickets(ticketFile)
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.TicketsRead = len(records)
	log.Debug("Read tickets", "count", len(records))

	// =========================================================================
	// STEP 2-3: DERIVE LINE ITEMS
	// =========================================================================
	// The vendor derivation is the one that reports unbillable tickets.

	now := c.opts.Now()
	memberOpts := invoice.Options{DueDays: c.opts.DueDays, WarnUnbillable: false}
	vendorOpts := invoice.Options{DueDays: c.opts.DueDays, WarnUnbillable: true}

	var memberItems []invoice.MemberItem
	var vendorItems []invoice.VendorItem
	for _, rec := range records {
		log.Debug("Deriving items", "ticket", rec.String())
		if invoice.IsTicketBillable(rec, false) {
			result.Stats.BillableTickets++
		}

		m, err := invoice.MemberItemsFromTicket(rec, now, memberOpts)
		if err != nil {
			result.Error = fmt.Errorf("failed to derive member items: %w", err)
			return result
		}
		memberItems = append(memberItems, m...)

		v, err := invoice.VendorItemsFromTicket(rec, now, vendorOpts)
		if err != nil {
			result.Error = fmt.Errorf("failed to derive vendor items: %w", err)
			return result
		}
		vendorItems = append(vendorItems, v...)
	}
	result.Stats.MemberItems = len(memberItems)
	result.Stats.VendorItems = len(vendorItems)

	// =========================================================================
	// STEP 4-5: WRITE OUTPUT FILES
	// =========================================================================

	memberTable := export.MemberInvoiceTable(memberItems)
	vendorTable := export.VendorBillTable(vendorItems)

	if err := export.WriteCSVFile(memberInvoiceFile, memberTable); err != nil {
		result.Error = fmt.Errorf("failed to write member invoices: %w", err)
		return result
	}
	result.MemberInvoiceFile = memberInvoiceFile
	log.Info("Wrote member invoices", "file", memberInvoiceFile, "items", len(memberItems))

	if err := export.WriteCSVFile(vendorBillFile, vendorTable); err != nil {
		result.Error = fmt.Errorf("failed to write vendor bills: %w", err)
		return result
	}
	result.VendorBillFile = vendorBillFile
	log.Info("Wrote vendor bills", "file", vendorBillFile, "items", len(vendorItems))

	// =========================================================================
	// STEP 6: XLSX COPIES
	// =========================================================================

	if c.opts.WriteXLSX {
		copies := []struct {
			path  string
			sheet string
			table export.Table
		}{
			{utils.XLSXPath(memberInvoiceFile), export.MemberInvoiceSheet, memberTable},
			{utils.XLSXPath(vendorBillFile), export.VendorBillSheet, vendorTable},
		}
		for _, cp := range copies {
			if err := export.WriteXLSXFile(cp.path, cp.sheet, cp.table); err != nil {
				result.Error = fmt.Errorf("failed to write spreadsheet copy: %w", err)
				return result
			}
			result.XLSXFiles = append(result.XLSXFiles, cp.path)
			log.Debug("Wrote spreadsheet copy", "file", cp.path)
		}
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	log.Info("Conversion complete",
		"tickets", result.Stats.TicketsRead,
		"billable", result.Stats.BillableTickets,
		"duration", result.Stats.ProcessingTime)
	return result
}

// Validate reads and checks every ticket without writing anything. Gate
// warnings are logged for unbillable tickets.
func (c *Converter) Validate(ticketFile string) Result {
	startTime := time.Now()
	result := c.newResult(ticketFile)

	records, err := c.readTickets(ticketFile)
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.TicketsRead = len(records)

	now := c.opts.Now()
	opts := invoice.Options{DueDays: c.opts.DueDays}
	for _, rec := range records {
		if invoice.IsTicketBillable(rec, true) {
			result.Stats.BillableTickets++
		}
		m, err := invoice.MemberItemsFromTicket(rec, now, opts)
		if err != nil {
			result.Error = err
			return result
		}
		v, err := invoice.VendorItemsFromTicket(rec, now, opts)
		if err != nil {
			result.Error = err
			return result
		}
		result.Stats.MemberItems += len(m)
		result.Stats.VendorItems += len(v)
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func (c *Converter) newResult(ticketFile string) Result {
	runID := uuid.New().String()
	c.logger = slog.Default().With("component", "converter", "run", runID)
	return Result{RunID: runID, TicketFile: ticketFile}
}

// readTickets materializes the whole export. The reader is closed on every
// path, including a mid-file validation failure.
func (c *Converter) readTickets(ticketFile string) ([]ticket.Record, error) {
	r, err := ticket.Open(ticketFile, c.opts.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open tickets: %w", err)
	}
	defer r.Close()

	records, err := ticket.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tickets: %w", err)
	}
	return records, nil
}
