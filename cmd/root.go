// =============================================================================
// Tow Ticket Billing Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (towbill)
//   ├── convertCmd (towbill convert <ticket-file>)
//   ├── validateCmd (towbill validate <ticket-file>)
//   └── versionCmd (towbill version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the configuration file (--config), if there is one
//   2. Applies the global flags on top of it
//   3. Sets up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/towbill/internal/config"
	"github.com/ginjaninja78/towbill/internal/logging"
	"github.com/ginjaninja78/towbill/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging.
var verbose bool

// logFile overrides the configured log file.
var logFile string

// appConfig is the loaded configuration, available to every subcommand.
var appConfig *config.Config

// closeLog releases the log file opened by setup.
var closeLog = func() error { return nil }

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "towbill",
	Short: "Tow Ticket Billing Converter - Turn tow tickets into member invoices and vendor bills",
	Long: `Tow Ticket Billing Converter reads a tow-ticket export (CSV or XLSX) from
the club's tow-ticket system and writes two files for the accounting system:

  <base>_member_invoice.csv  charges to pilots for tows and glider rental
  <base>_vendor_bill.csv     payments owed to tow pilots and instructors

Only tickets that were flown and closed are billed. Private glider tickets
do not need to be closed. Any invalid ticket stops the run and nothing is
written.

Example Usage:
  towbill convert june.csv                 # Write the two billing files
  towbill convert june.csv --overwrite     # Replace existing billing files
  towbill validate june.csv                # Check the export, write nothing`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file, used only if it exists unless set explicitly",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
	rootCmd.PersistentFlags().StringVar(
		&logFile,
		"log-file",
		"",
		"Write logs to this file instead of the console",
	)
}

// setup loads the configuration and starts logging.
func setup(cmd *cobra.Command) error {
	path := cfgFile
	if !cmd.Flags().Changed("config") && !utils.FileExists(path) {
		path = ""
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}

	if verbose {
		c.LogLevel = "debug"
	}
	if logFile != "" {
		c.LogFile = logFile
	}
	appConfig = c

	closeLog = logging.Setup(logging.Options{
		Level:   c.LogLevel,
		File:    c.LogFile,
		Console: cmd.ErrOrStderr(),
	})
	return nil
}
