package invoice

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/towbill/internal/ticket"
)

// Product is the accounting product a member is charged for.
type Product string

const (
	ProductTow    Product = "Towing"
	ProductGlider Product = "Glider Rental"
)

// MemberClass is the CLASS column of a member invoice.
type MemberClass string

const (
	MemberClassTow    MemberClass = "TOW"
	MemberClassGlider MemberClass = "GLIDER"
)

// MemberItem is one charge to the pilot named on a ticket.
type MemberItem struct {
	Line
	product Product
	class   MemberClass
}

func (m MemberItem) Product() Product   { return m.product }
func (m MemberItem) Class() MemberClass { return m.class }

// MemberItemsFromTicket derives the member charges of one ticket: a glider
// rental item if rental is billable, then a tow item if the tow is billable.
// Tickets rejected by the completion gate yield no items.
func MemberItemsFromTicket(rec ticket.Record, now time.Time, opts Options) ([]MemberItem, error) {
	if !IsTicketBillable(rec, opts.WarnUnbillable) {
		return nil, nil
	}
	invoiceDate, dueDate := opts.dates(now)

	var items []MemberItem
	if rec.BillableRental {
		line, err := NewLine(LineParams{
			Name:        rec.Pilot,
			InvoiceDate: invoiceDate,
			DueDate:     dueDate,
			ServiceDate: rec.DateTime,
			Description: describe(rec, "Glider: %s, Glider Time: %.1f hours", rec.GliderID, rec.GliderTime),
			Amount:      rec.RentalFee,
		})
		if err != nil {
			return nil, fmt.Errorf("ticket %d: rental item: %w", rec.Ticket, err)
		}
		items = append(items, MemberItem{Line: line, product: ProductGlider, class: MemberClassGlider})
	}
	if rec.BillableTow {
		line, err := NewLine(LineParams{
			Name:        rec.Pilot,
			InvoiceDate: invoiceDate,
			DueDate:     dueDate,
			ServiceDate: rec.DateTime,
			Description: describe(rec, "Release Alt: %d", rec.ReleaseAlt),
			Amount:      rec.TowFee,
		})
		if err != nil {
			return nil, fmt.Errorf("ticket %d: tow item: %w", rec.Ticket, err)
		}
		items = append(items, MemberItem{Line: line, product: ProductTow, class: MemberClassTow})
	}
	return items, nil
}
