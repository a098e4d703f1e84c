package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/towbill/internal/converter"
	"github.com/ginjaninja78/towbill/internal/ticket"
	"github.com/ginjaninja78/towbill/pkg/utils"
)

// validateCmd reads a ticket export and reports what a conversion would
// produce, without writing any file.
var validateCmd = &cobra.Command{
	Use:   "validate <ticket-file>",
	Short: "Check a tow-ticket export without writing billing files",
	Long: `The validate command parses and checks every ticket in the export and
reports how many are billable and how many line items a conversion would
create. Unbillable tickets are logged as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticketFile := args[0]
		if err := utils.CheckInput(ticketFile); err != nil {
			return err
		}

		opts := converter.DefaultOptions()
		opts.DueDays = appConfig.DueDays
		opts.Input = ticket.Options{CSV: appConfig.CSVSettings.Parser()}

		result := converter.New(opts).Validate(ticketFile)
		if result.Error != nil {
			return fmt.Errorf("validation failed: %w", result.Error)
		}
		return utils.WriteRunSummary(cmd.OutOrStdout(), utils.RunSummary{
			RunID:           result.RunID,
			InputFile:       result.TicketFile,
			Tickets:         result.Stats.TicketsRead,
			BillableTickets: result.Stats.BillableTickets,
			MemberItems:     result.Stats.MemberItems,
			VendorItems:     result.Stats.VendorItems,
			Duration:        result.Stats.ProcessingTime,
		})
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
