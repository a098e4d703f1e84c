// =============================================================================
// Tow Ticket Billing Converter - Invoice Line Items
// =============================================================================
//
// This module holds what member invoice items and vendor bill items share:
//
//   - Item: the read-only shape the exporters consume
//   - Line: a validated line (billed party, dates, memo, amount)
//   - IsTicketBillable: the completion gate both derivations apply first
//
// Items are derived from exactly one ticket and never modified afterwards.
//
// =============================================================================

package invoice

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/towbill/internal/name"
	"github.com/ginjaninja78/towbill/internal/ticket"
	"github.com/ginjaninja78/towbill/internal/validation"
)

// DefaultDueDays is the number of days between invoice date and due date.
const DefaultDueDays = 30

// =============================================================================
// ITEM
// =============================================================================

// Item is a billable line as seen by an exporter.
type Item interface {
	Name() name.Name
	InvoiceDate() time.Time
	DueDate() time.Time
	ServiceDate() time.Time
	Description() string
	Amount() decimal.Decimal
}

// LineParams are the inputs to NewLine.
type LineParams struct {
	Name        name.Name
	InvoiceDate time.Time
	DueDate     time.Time
	ServiceDate time.Time
	Description string
	Amount      decimal.Decimal
}

// Line is the validated core of every line item. It implements Item.
type Line struct {
	name        name.Name
	invoiceDate time.Time
	dueDate     time.Time
	serviceDate time.Time
	description string
	amount      decimal.Decimal
}

// NewLine validates p and builds a Line.
//
// RETURNS:
//   - *validation.ValidationError when the billed party is missing or the
//     amount is negative
func NewLine(p LineParams) (Line, error) {
	if p.Name.IsZero() {
		return Line{}, &validation.ValidationError{Field: "name", Message: "billed party is required"}
	}
	if p.Amount.IsNegative() {
		return Line{}, &validation.ValidationError{
			Field:   "amount",
			Value:   p.Amount.String(),
			Message: "amount must not be negative",
		}
	}
	return Line{
		name:        p.Name,
		invoiceDate: p.InvoiceDate,
		dueDate:     p.DueDate,
		serviceDate: p.ServiceDate,
		description: p.Description,
		amount:      p.Amount,
	}, nil
}

func (l Line) Name() name.Name         { return l.name }
func (l Line) InvoiceDate() time.Time  { return l.invoiceDate }
func (l Line) DueDate() time.Time      { return l.dueDate }
func (l Line) ServiceDate() time.Time  { return l.serviceDate }
func (l Line) Description() string     { return l.description }
func (l Line) Amount() decimal.Decimal { return l.amount }

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls item derivation.
type Options struct {
	// DueDays is added to the invoice date to get the due date.
	DueDays int

	// WarnUnbillable logs a warning for every ticket the completion gate
	// rejects. Turn it off for the second derivation over the same tickets.
	WarnUnbillable bool
}

// DefaultOptions returns a 30 day due offset with gate warnings on.
func DefaultOptions() Options {
	return Options{DueDays: DefaultDueDays, WarnUnbillable: true}
}

// dates returns the invoice and due dates for a run started at now.
func (o Options) dates(now time.Time) (time.Time, time.Time) {
	days := o.DueDays
	if days <= 0 {
		days = DefaultDueDays
	}
	return now, now.AddDate(0, 0, days)
}

// =============================================================================
// COMPLETION GATE
// =============================================================================

// IsTicketBillable reports whether a ticket may produce line items.
//
// A ticket must have been flown. It must also be closed, unless it is a
// private glider flight. When warn is set, a rejected ticket is logged at
// warning level with the condition it failed.
func IsTicketBillable(rec ticket.Record, warn bool) bool {
	reason := ""
	switch {
	case !rec.Flown:
		reason = "not flown"
	case !rec.Closed && rec.Category != ticket.CategoryPrivate:
		reason = "not closed"
	default:
		return true
	}
	if warn {
		logger().Warn("Ticket is not billable, no items will be created",
			"ticket", rec.Ticket, "reason", reason)
	}
	return false
}

func logger() *slog.Logger {
	return slog.Default().With("component", "invoice")
}

// describe formats an item memo. Every memo starts with the ticket number.
func describe(rec ticket.Record, format string, args ...any) string {
	return fmt.Sprintf("Ticket #: %d, ", rec.Ticket) + fmt.Sprintf(format, args...)
}
