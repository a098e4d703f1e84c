// =============================================================================
// Tow Ticket Billing Converter - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a conversion run:
//   - Output path naming (<base>_member_invoice.csv, <base>_vendor_bill.csv)
//   - Input and overwrite pre-checks
//   - Directory management
//   - Run summary output
//
// OVERWRITE POLICY:
//   The exporters always truncate. Refusing to replace existing outputs is
//   done here, before the converter is started.
//
// =============================================================================

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrInputMissing is returned when the ticket export does not exist.
	ErrInputMissing = errors.New("input file does not exist")

	// ErrOutputExists is returned when an output exists and overwrite is off.
	ErrOutputExists = errors.New("output file already exists")
)

// Default output name suffixes.
const (
	DefaultMemberInvoiceSuffix = "_member_invoice"
	DefaultVendorBillSuffix    = "_vendor_bill"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager names and checks the files of a conversion run.
type FileManager struct {
	// OutputDir is where outputs are written. Empty means next to the input.
	OutputDir string

	// MemberInvoiceSuffix is appended to the input base name.
	// Default: "_member_invoice"
	MemberInvoiceSuffix string

	// VendorBillSuffix is appended to the input base name.
	// Default: "_vendor_bill"
	VendorBillSuffix string
}

// NewFileManager creates a FileManager. Empty suffixes get the defaults.
func NewFileManager(outputDir, memberInvoiceSuffix, vendorBillSuffix string) *FileManager {
	if memberInvoiceSuffix == "" {
		memberInvoiceSuffix = DefaultMemberInvoiceSuffix
	}
	if vendorBillSuffix == "" {
		vendorBillSuffix = DefaultVendorBillSuffix
	}
	return &FileManager{
		OutputDir:           outputDir,
		MemberInvoiceSuffix: memberInvoiceSuffix,
		VendorBillSuffix:    vendorBillSuffix,
	}
}

// OutputPaths are the two files a run writes.
type OutputPaths struct {
	MemberInvoice string
	VendorBill    string
}

// All returns both paths in write order.
func (p OutputPaths) All() []string {
	return []string{p.MemberInvoice, p.VendorBill}
}

// OutputPaths derives the output file names from the input path.
//
// EXAMPLE:
//
//	input:  /data/tickets/june.csv
//	output: /data/tickets/june_member_invoice.csv
//	        /data/tickets/june_vendor_bill.csv
func (fm *FileManager) OutputPaths(inputPath string) OutputPaths {
	dir := fm.OutputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return OutputPaths{
		MemberInvoice: filepath.Join(dir, base+fm.MemberInvoiceSuffix+".csv"),
		VendorBill:    filepath.Join(dir, base+fm.VendorBillSuffix+".csv"),
	}
}

// =============================================================================
// PRE-CHECKS
// =============================================================================

// CheckInput returns ErrInputMissing unless path is an existing regular file.
func CheckInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputMissing, path)
		}
		return fmt.Errorf("failed to stat input: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input is a directory: %s", path)
	}
	return nil
}

// CheckOutputs returns ErrOutputExists for the first existing path, unless
// overwrite is set.
func CheckOutputs(paths []string, overwrite bool) error {
	if overwrite {
		return nil
	}
	for _, p := range paths {
		if FileExists(p) {
			return fmt.Errorf("%w: %s (use --overwrite to replace it)", ErrOutputExists, p)
		}
	}
	return nil
}

// EnsureDir creates dir if it does not exist. An empty dir is a no-op.
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// RunSummary is what the CLI reports after a run.
type RunSummary struct {
	RunID           string
	InputFile       string
	OutputFiles     []string
	Tickets         int
	BillableTickets int
	MemberItems     int
	VendorItems     int
	Duration        time.Duration
}

// WriteRunSummary writes a human readable summary of a run to w.
func WriteRunSummary(w io.Writer, s RunSummary) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Run:              %s\n", s.RunID)
	fmt.Fprintf(bw, "Input:            %s\n", s.InputFile)
	fmt.Fprintf(bw, "Tickets:          %d\n", s.Tickets)
	fmt.Fprintf(bw, "Billable tickets: %d\n", s.BillableTickets)
	fmt.Fprintf(bw, "Member items:     %d\n", s.MemberItems)
	fmt.Fprintf(bw, "Vendor items:     %d\n", s.VendorItems)
	fmt.Fprintf(bw, "Duration:         %s\n", s.Duration.Round(time.Millisecond))
	for _, f := range s.OutputFiles {
		fmt.Fprintf(bw, "Wrote:            %s\n", f)
	}
	return bw.Flush()
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// XLSXPath returns path with its extension replaced by ".xlsx".
func XLSXPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
}
