// =============================================================================
// Tow Ticket Billing Converter - Tow Ticket Record
// =============================================================================
//
// A Record is one validated tow ticket from the club's tow-ticket system.
// Records are values: once New has accepted one it is never modified, and
// the invoice derivations only read from it.
//
// INVARIANTS (checked by New):
//   - Ticket > 0
//   - Pilot is present
//   - integer and money fields are never negative
//   - BillableRental => RentalFee > 0 and GliderTime > 0
//   - BillableTow    => TowFee > 0, ReleaseAlt > 0 and TowSpeed > 0
//
// =============================================================================

package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/towbill/internal/name"
	"github.com/ginjaninja78/towbill/internal/validation"
)

// =============================================================================
// CATEGORY
// =============================================================================

// Category is the kind of flight a ticket was written for.
type Category string

const (
	CategoryClubGlider    Category = "Club Glider"
	CategoryIntro         Category = "Intro"
	CategoryPack          Category = "5-Pack"
	CategoryComplementary Category = "Complementary"
	CategoryPrivate       Category = "Private Glider"
	CategorySafari        Category = "Safari"
)

// Categories lists every recognized category in export order.
var Categories = []Category{
	CategoryClubGlider,
	CategoryIntro,
	CategoryPack,
	CategoryComplementary,
	CategoryPrivate,
	CategorySafari,
}

// ParseCategory matches s, after trimming, against the known categories.
// Matching is exact and case-sensitive.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	allowed := make([]string, len(Categories))
	for i, c := range Categories {
		allowed[i] = string(c)
	}
	return "", &validation.LookupError{Field: ColCategory, Value: s, Allowed: allowed}
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one tow ticket.
type Record struct {
	Ticket   int
	DateTime time.Time
	Pilot    name.Name
	Airport  string
	Category Category
	GliderID string
	TowType  string

	FlightBrief string
	CFIG        name.Name // zero when no instructor flew
	Guest       string

	BillableRental bool
	BillableTow    bool

	TowSpeed    int     // knots
	AltRequired int     // feet
	ReleaseAlt  int     // feet
	GliderTime  float64 // hours
	TowFee      decimal.Decimal
	RentalFee   decimal.Decimal

	Remarks     string
	Certificate string
	TowPilot    name.Name // zero when self-launched
	TowPlane    string

	Flown  bool
	Closed bool
}

// DefaultFlightBrief is used when a ticket does not name a brief.
const DefaultFlightBrief = "Standard"

// DefaultGliderTime is the glider time assumed when none is recorded.
const DefaultGliderTime = 0.1

// Defaults returns a Record with the optional fields set to their defaults:
// both billable flags on, a standard flight brief and 0.1 hours glider time.
func Defaults() Record {
	return Record{
		FlightBrief:    DefaultFlightBrief,
		BillableRental: true,
		BillableTow:    true,
		GliderTime:     DefaultGliderTime,
		TowFee:         decimal.Zero,
		RentalFee:      decimal.Zero,
	}
}

// New validates r and returns it. The whole record is rejected on the first
// violated invariant.
func New(r Record) (Record, error) {
	fail := func(field, value, msg string) (Record, error) {
		return Record{}, &validation.ValidationError{Field: field, Value: value, Message: msg, Ticket: r.Ticket}
	}

	if r.Ticket <= 0 {
		return fail(ColTicket, fmt.Sprint(r.Ticket), "ticket number must be greater than 0")
	}
	if r.Pilot.IsZero() {
		return fail(ColPilot, "", "pilot is required")
	}
	for _, f := range []struct {
		col string
		v   int
	}{
		{ColTowSpeed, r.TowSpeed},
		{ColAltRequired, r.AltRequired},
		{ColReleaseAlt, r.ReleaseAlt},
	} {
		if f.v < 0 {
			return fail(f.col, fmt.Sprint(f.v), "must not be negative")
		}
	}
	if r.GliderTime < 0 {
		return fail(ColGliderTime, fmt.Sprint(r.GliderTime), "must not be negative")
	}
	if r.TowFee.IsNegative() {
		return fail(ColTowFee, r.TowFee.String(), "must not be negative")
	}
	if r.RentalFee.IsNegative() {
		return fail(ColGliderRental, r.RentalFee.String(), "must not be negative")
	}

	if r.BillableRental {
		if !r.RentalFee.IsPositive() {
			return fail(ColGliderRental, r.RentalFee.String(), "rental fee must be greater than 0 when billable rental is set")
		}
		if r.GliderTime <= 0 {
			return fail(ColGliderTime, fmt.Sprint(r.GliderTime), "glider time must be greater than 0 when billable rental is set")
		}
	}
	if r.BillableTow {
		if !r.TowFee.IsPositive() {
			return fail(ColTowFee, r.TowFee.String(), "tow fee must be greater than 0 when billable tow is set")
		}
		if r.ReleaseAlt <= 0 {
			return fail(ColReleaseAlt, fmt.Sprint(r.ReleaseAlt), "release altitude must be greater than 0 when billable tow is set")
		}
		if r.TowSpeed <= 0 {
			return fail(ColTowSpeed, fmt.Sprint(r.TowSpeed), "tow speed must be greater than 0 when billable tow is set")
		}
	}
	return r, nil
}

// String returns a one-line summary for logs.
func (r Record) String() string {
	return fmt.Sprintf("TOW Ticket: %d, Date/Time: %s, Pilot: %s, Airport: %s, Category: %s, "+
		"Glider ID: %s, Tow Type: %s, Tow Pilot: %s, Tow Fee: $%s, Rental Fee: $%s, "+
		"Flown: %t, Closed: %t",
		r.Ticket, r.DateTime.Format(time.RFC3339), r.Pilot, r.Airport, r.Category,
		r.GliderID, r.TowType, r.TowPilot, r.TowFee.StringFixed(2), r.RentalFee.StringFixed(2),
		r.Flown, r.Closed)
}
