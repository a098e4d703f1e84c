// =============================================================================
// Tow Ticket Billing Converter - Field Validators
// =============================================================================
//
// Typed parsers for the raw string cells of a tow-ticket row. Each parser
// returns the typed value or one of the errors from errors.go, so the record
// decoder never has to reason about strconv or time errors directly.
//
// DATA TYPES:
//   - required strings : must be present and non-empty
//   - integers         : base-10, non-negative
//   - decimals         : float64, non-negative
//   - money            : optional leading '$', exact decimal
//   - flags            : true only for the literal "1"
//   - date/time        : six fixed layouts, then ISO-8601
//
// =============================================================================

package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATE LAYOUTS
// =============================================================================

// dateTimeLayouts are tried in order. US layouts accept one or two digit
// months, days and hours.
var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02 15:04:05",
}

// isoLayouts is the generic ISO-8601 fallback.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// =============================================================================
// PARSERS
// =============================================================================

// Required returns the trimmed value of a required field.
func Required(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &ValidationError{
			Field:   field,
			Message: "required field is empty",
		}
	}
	return value, nil
}

// ParseInt parses a non-negative integer.
func ParseInt(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &FormatError{Field: field, Value: value, Message: "not a valid integer", Err: err}
	}
	if n < 0 {
		return 0, &ValidationError{Field: field, Value: value, Message: "must not be negative"}
	}
	return n, nil
}

// ParseFloat parses a non-negative decimal number.
func ParseFloat(field, value string) (float64, error) {
	value = strings.TrimSpace(value)
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &FormatError{Field: field, Value: value, Message: "not a valid number", Err: err}
	}
	if f < 0 {
		return 0, &ValidationError{Field: field, Value: value, Message: "must not be negative"}
	}
	return f, nil
}

// ParseMoney parses a dollar amount such as "$50.00" or "50".
// A single leading '$' is stripped before parsing.
func ParseMoney(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	raw := strings.TrimSpace(strings.TrimPrefix(value, "$"))
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &FormatError{Field: field, Value: value, Message: "not a valid amount", Err: err}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: field, Value: value, Message: "must not be negative"}
	}
	return d, nil
}

// ParseFlag reports whether a flag cell is set. Only the literal "1" is true.
func ParseFlag(value string) bool {
	return strings.TrimSpace(value) == "1"
}

// ParseDateTime parses a ticket timestamp.
//
// The fixed layouts are tried first, then the generic ISO-8601 forms.
// Timestamps without a zone are returned in UTC.
func ParseDateTime(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &FormatError{
		Field:   field,
		Value:   value,
		Message: "unrecognized date/time format",
	}
}
