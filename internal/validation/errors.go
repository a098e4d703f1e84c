// =============================================================================
// Tow Ticket Billing Converter - Validation Errors
// =============================================================================
//
// This file defines the error taxonomy shared by every stage of the
// conversion. Each type carries enough context (field, value, ticket) to point
// the operator at the offending cell in the tow-ticket export.
//
//   ValidationError : a required field is missing or a business rule failed
//   FormatError     : a value could not be parsed (date, number, name)
//   LookupError     : a value is not one of an enumerated set
//
// All three abort the conversion run. Callers match them with errors.As.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"
)

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError reports a missing required field or a violated invariant.
type ValidationError struct {
	// Field is the column or record field that failed validation.
	Field string

	// Value is the offending value, if any.
	Value string

	// Message is a human-readable description of the failure.
	Message string

	// Ticket is the ticket number the failure belongs to.
	// Zero when the ticket number itself is unknown.
	Ticket int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Ticket > 0 {
		fmt.Fprintf(&b, "ticket %d: ", e.Ticket)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "field '%s': ", e.Field)
	}
	b.WriteString(e.Message)
	if e.Value != "" {
		fmt.Fprintf(&b, " (value: '%s')", e.Value)
	}
	return b.String()
}

// =============================================================================
// FORMAT ERROR
// =============================================================================

// FormatError reports a value that could not be parsed.
type FormatError struct {
	Field   string
	Value   string
	Message string

	// Err is the underlying parse error, if any.
	Err error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("field '%s': %s (value: '%s')", e.Field, e.Message, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// =============================================================================
// LOOKUP ERROR
// =============================================================================

// LookupError reports a value that is not a member of an enumerated set.
type LookupError struct {
	Field string
	Value string

	// Allowed lists the accepted values, for the error message.
	Allowed []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("field '%s': '%s' is not one of [%s]",
		e.Field, e.Value, strings.Join(e.Allowed, ", "))
}
