// =============================================================================
// Tow Ticket Billing Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   towbill convert <ticket-file>   - Write member invoices and vendor bills
//   towbill validate <ticket-file>  - Check a ticket export without writing
//   towbill version                 - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : ticket parsing, billing rules and exporters
//   - pkg/       : file handling shared by the commands
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/towbill/cmd"
)

func main() {
	cmd.Execute()
}
