// =============================================================================
// Tow Ticket Billing Converter - Configuration Module
// =============================================================================
//
// This module loads the optional config.yaml. Every setting has a default,
// so the tool runs without any configuration file at all.
//
// EXAMPLE:
//
//	log_level: info
//	log_file: ./logs/towbill.log
//	due_days: 30
//	output_dir: ""
//	member_invoice_suffix: _member_invoice
//	vendor_bill_suffix: _vendor_bill
//	write_xlsx: false
//	csv_settings:
//	  delimiter: ","
//
// Command line flags override the values loaded here.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/towbill/internal/csvparser"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFile is an optional log file. When set, logs go to a rotating file
	// instead of the console.
	// Default: "" (console only)
	LogFile string `yaml:"log_file"`

	// =========================================================================
	// BILLING SETTINGS
	// =========================================================================

	// DueDays is the number of days from invoice date to due date.
	// Default: 30
	DueDays int `yaml:"due_days"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is where the billing files are written.
	// Default: "" (next to the ticket export)
	OutputDir string `yaml:"output_dir"`

	// MemberInvoiceSuffix is appended to the export base name.
	// Default: "_member_invoice"
	MemberInvoiceSuffix string `yaml:"member_invoice_suffix"`

	// VendorBillSuffix is appended to the export base name.
	// Default: "_vendor_bill"
	VendorBillSuffix string `yaml:"vendor_bill_suffix"`

	// WriteXLSX also writes .xlsx copies of both billing files.
	// Default: false
	WriteXLSX bool `yaml:"write_xlsx"`

	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	CSVSettings CSVSettings `yaml:"csv_settings"`
}

// CSVSettings contains settings for parsing the ticket CSV export.
type CSVSettings struct {
	// Delimiter is the field separator.
	// Common values: "," (comma), "|" (pipe), "\t" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter"`
}

// Parser returns the csvparser settings for these values.
func (s CSVSettings) Parser() csvparser.Settings {
	return csvparser.Settings{Delimiter: s.Delimiter}
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)
	return c
}

// Load reads, defaults and validates a configuration file. An empty path
// returns Default.
//
// RETURNS:
//   - An error if the file cannot be read, parsed or fails validation.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

// applyDefaults sets default values for any unset option.
func applyDefaults(c *Config) {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DueDays == 0 {
		c.DueDays = 30
	}
	if c.MemberInvoiceSuffix == "" {
		c.MemberInvoiceSuffix = "_member_invoice"
	}
	if c.VendorBillSuffix == "" {
		c.VendorBillSuffix = "_vendor_bill"
	}
	if c.CSVSettings.Delimiter == "" {
		c.CSVSettings.Delimiter = ","
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level '%s' is not one of debug, info, warn, error", c.LogLevel)
	}
	if c.DueDays <= 0 {
		return fmt.Errorf("due_days must be greater than 0, got %d", c.DueDays)
	}
	if c.MemberInvoiceSuffix == c.VendorBillSuffix {
		return fmt.Errorf("member_invoice_suffix and vendor_bill_suffix must differ, both are '%s'", c.MemberInvoiceSuffix)
	}
	if !validDelimiter(c.CSVSettings.Delimiter) {
		return fmt.Errorf("csv_settings.delimiter '%s' must be a single character", c.CSVSettings.Delimiter)
	}
	return nil
}

func validDelimiter(d string) bool {
	switch d {
	case "tab", "TAB", "\\t", "pipe", "PIPE", "semicolon":
		return true
	}
	return utf8.RuneCountInString(d) == 1
}
