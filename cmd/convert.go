// =============================================================================
// Tow Ticket Billing Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main command of the tool.
//
// COMMAND USAGE:
//   towbill convert <ticket-file> [flags]
//
// FLAGS:
//   --overwrite   : Replace existing billing files
//   --output-dir  : Write the billing files to this directory
//   --xlsx        : Also write .xlsx copies of both billing files
//   --due-days    : Days from invoice date to due date
//
// PROCESSING PIPELINE:
//   1. Check that the ticket export exists
//   2. Derive the two output paths and refuse to replace them unless asked
//   3. Run the converter
//   4. Print a run summary
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/towbill/internal/converter"
	"github.com/ginjaninja78/towbill/internal/ticket"
	"github.com/ginjaninja78/towbill/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// overwrite allows existing billing files to be replaced.
var overwrite bool

// outputDir overrides the configured output directory.
var outputDir string

// writeXLSX also writes spreadsheet copies.
var writeXLSX bool

// dueDays overrides the configured due offset.
var dueDays int

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert <ticket-file>",
	Short: "Convert a tow-ticket export into member invoices and vendor bills",
	Long: `The convert command reads every ticket in the export, derives the member
charges and vendor payments of each billable ticket and writes them, grouped
by billed party, to two CSV files next to the export:

  june.csv -> june_member_invoice.csv, june_vendor_bill.csv

Existing billing files are never replaced unless --overwrite is given. If any
ticket is invalid the run stops and no billing file is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(
		&overwrite,
		"overwrite",
		false,
		"Replace existing billing files",
	)
	convertCmd.Flags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Write the billing files to this directory (default is next to the input)",
	)
	convertCmd.Flags().BoolVar(
		&writeXLSX,
		"xlsx",
		false,
		"Also write .xlsx copies of both billing files",
	)
	convertCmd.Flags().IntVar(
		&dueDays,
		"due-days",
		0,
		"Days from invoice date to due date (default from config, 30)",
	)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runConvert(cmd *cobra.Command, ticketFile string) error {
	cfg := appConfig

	// =========================================================================
	// STEP 1: PRE-CHECKS
	// =========================================================================

	if err := utils.CheckInput(ticketFile); err != nil {
		return err
	}

	dir := cfg.OutputDir
	if outputDir != "" {
		dir = outputDir
	}
	fm := utils.NewFileManager(dir, cfg.MemberInvoiceSuffix, cfg.VendorBillSuffix)
	paths := fm.OutputPaths(ticketFile)

	xlsx := cfg.WriteXLSX || writeXLSX
	targets := paths.All()
	if xlsx {
		targets = append(targets, utils.XLSXPath(paths.MemberInvoice), utils.XLSXPath(paths.VendorBill))
	}
	if err := utils.CheckOutputs(targets, overwrite); err != nil {
		return err
	}
	if err := utils.EnsureDir(fm.OutputDir); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: CONVERT
	// =========================================================================

	opts := converter.DefaultOptions()
	opts.DueDays = cfg.DueDays
	if dueDays > 0 {
		opts.DueDays = dueDays
	}
	opts.Input = ticket.Options{CSV: cfg.CSVSettings.Parser()}
	opts.WriteXLSX = xlsx

	result, err := converter.ConvertAll(ticketFile, paths.MemberInvoice, paths.VendorBill, opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	// =========================================================================
	// STEP 3: SUMMARY
	// =========================================================================

	return utils.WriteRunSummary(cmd.OutOrStdout(), utils.RunSummary{
		RunID:           result.RunID,
		InputFile:       result.TicketFile,
		OutputFiles:     append([]string{result.MemberInvoiceFile, result.VendorBillFile}, result.XLSXFiles...),
		Tickets:         result.Stats.TicketsRead,
		BillableTickets: result.Stats.BillableTickets,
		MemberItems:     result.Stats.MemberItems,
		VendorItems:     result.Stats.VendorItems,
		Duration:        result.Stats.ProcessingTime,
	})
}
