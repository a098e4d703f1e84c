package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/towbill/internal/name"
	"github.com/ginjaninja78/towbill/internal/ticket"
)

// VendorClass is the CLASS column of a vendor bill.
type VendorClass string

const (
	VendorClassTow   VendorClass = "TOW"
	VendorClassIntro VendorClass = "INTRO RIDES"
	VendorClassPack  VendorClass = "5 PACKS"
)

// VendorCategory is the expense category of a vendor bill.
type VendorCategory string

const (
	VendorCategoryTow   VendorCategory = "Tow Pilot Expense"
	VendorCategoryIntro VendorCategory = "Intro Pilot Expense"
	VendorCategoryPack  VendorCategory = "5 Pack Expense"
)

// rates are the fixed amounts paid per vendor class.
var rates = map[VendorClass]decimal.Decimal{
	VendorClassTow:   decimal.RequireFromString("10.00"),
	VendorClassIntro: decimal.RequireFromString("10.00"),
	VendorClassPack:  decimal.RequireFromString("40.00"),
}

// Rate returns the fixed amount paid for class, or zero for an unknown class.
func Rate(class VendorClass) decimal.Decimal {
	return rates[class]
}

// VendorItem is one payment owed to a tow pilot or instructor.
type VendorItem struct {
	Line
	category VendorCategory
	class    VendorClass
}

func (v VendorItem) Category() VendorCategory { return v.category }
func (v VendorItem) Class() VendorClass       { return v.class }

// VendorItemsFromTicket derives the vendor payments of one ticket.
//
// Each rule is checked on its own, in this order:
//   - a tow pilot flew the tow:  TOW, billed to the tow pilot
//   - an Intro flight:           INTRO, billed to the pilot
//   - a 5-Pack flight:           PACK, billed to the CFIG
//
// A 5-Pack ticket without a CFIG logs an error and gets no PACK item; the
// other items of the ticket are kept.
func VendorItemsFromTicket(rec ticket.Record, now time.Time, opts Options) ([]VendorItem, error) {
	if !IsTicketBillable(rec, opts.WarnUnbillable) {
		return nil, nil
	}
	invoiceDate, dueDate := opts.dates(now)

	var items []VendorItem
	add := func(party name.Name, class VendorClass, category VendorCategory, memo string) error {
		line, err := NewLine(LineParams{
			Name:        party,
			InvoiceDate: invoiceDate,
			DueDate:     dueDate,
			ServiceDate: rec.DateTime,
			Description: memo,
			Amount:      Rate(class),
		})
		if err != nil {
			return fmt.Errorf("ticket %d: %s item: %w", rec.Ticket, class, err)
		}
		items = append(items, VendorItem{Line: line, category: category, class: class})
		return nil
	}

	if !rec.TowPilot.IsZero() {
		memo := describe(rec, "Release Alt: %d, %s, Pilot: %s", rec.ReleaseAlt, rec.TowPlane, rec.Pilot)
		if err := add(rec.TowPilot, VendorClassTow, VendorCategoryTow, memo); err != nil {
			return nil, err
		}
	}

	if rec.Category == ticket.CategoryIntro {
		memo := describe(rec, "Release Alt: %d, Glider: %s, %s", rec.ReleaseAlt, rec.GliderID, rec.Guest)
		if err := add(rec.Pilot, VendorClassIntro, VendorCategoryIntro, memo); err != nil {
			return nil, err
		}
	}

	if rec.Category == ticket.CategoryPack {
		if rec.CFIG.IsZero() {
			logger().Error("5-Pack ticket has no CFIG, skipping instructor bill", "ticket", rec.Ticket)
		} else {
			memo := describe(rec, "Release Alt: %d, Glider: %s, %s", rec.ReleaseAlt, rec.GliderID, rec.Pilot)
			if err := add(rec.CFIG, VendorClassPack, VendorCategoryPack, memo); err != nil {
				return nil, err
			}
		}
	}

	return items, nil
}
