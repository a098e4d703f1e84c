package invoice_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/towbill/internal/invoice"
	"github.com/ginjaninja78/towbill/internal/name"
	"github.com/ginjaninja78/towbill/internal/ticket"
	"github.com/ginjaninja78/towbill/internal/validation"
)

var now = time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

func billableTicket() ticket.Record {
	r := ticket.Defaults()
	r.Ticket = 123
	r.DateTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r.Pilot = name.MustParse("Smith, John")
	r.Airport = "10R4"
	r.Category = ticket.CategoryClubGlider
	r.GliderID = "G1"
	r.TowType = "Aerotow"
	r.TowSpeed = 60
	r.ReleaseAlt = 3000
	r.GliderTime = 1.5
	r.TowFee = decimal.NewFromInt(75)
	r.RentalFee = decimal.NewFromInt(50)
	r.Flown = true
	r.Closed = true
	rec, err := ticket.New(r)
	if err != nil {
		panic(err)
	}
	return rec
}

// captureLogs redirects the default logger for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func TestNewLine(t *testing.T) {
	t.Run("should reject a negative amount", func(t *testing.T) {
		_, err := invoice.NewLine(invoice.LineParams{
			Name:   name.MustParse("Doe, Jane"),
			Amount: decimal.NewFromInt(-1),
		})
		var ve *validation.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "amount", ve.Field)
	})
	t.Run("should reject a missing party", func(t *testing.T) {
		_, err := invoice.NewLine(invoice.LineParams{Amount: decimal.NewFromInt(1)})
		assert.Error(t, err)
	})
	t.Run("should accept a zero amount", func(t *testing.T) {
		l, err := invoice.NewLine(invoice.LineParams{Name: name.MustParse("Cher"), Amount: decimal.Zero})
		require.NoError(t, err)
		assert.True(t, l.Amount().IsZero())
	})
}

func TestIsTicketBillable(t *testing.T) {
	cases := []struct {
		name     string
		flown    bool
		closed   bool
		category ticket.Category
		want     bool
		reason   string
	}{
		{"flown and closed", true, true, ticket.CategoryClubGlider, true, ""},
		{"not flown", false, true, ticket.CategoryClubGlider, false, "not flown"},
		{"not closed", true, false, ticket.CategoryIntro, false, "not closed"},
		{"private glider need not be closed", true, false, ticket.CategoryPrivate, true, ""},
		{"private glider must be flown", false, false, ticket.CategoryPrivate, false, "not flown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureLogs(t)
			rec := billableTicket()
			rec.Flown = tc.flown
			rec.Closed = tc.closed
			rec.Category = tc.category

			assert.Equal(t, tc.want, invoice.IsTicketBillable(rec, true))
			if tc.reason != "" {
				assert.Contains(t, buf.String(), "level=WARN")
				assert.Contains(t, buf.String(), "ticket=123")
				assert.Contains(t, buf.String(), "reason=\""+tc.reason+"\"")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
	t.Run("should stay quiet when warnings are off", func(t *testing.T) {
		buf := captureLogs(t)
		rec := billableTicket()
		rec.Flown = false
		assert.False(t, invoice.IsTicketBillable(rec, false))
		assert.Empty(t, buf.String())
	})
}

func TestMemberItemsFromTicket(t *testing.T) {
	t.Run("should create rental then tow items", func(t *testing.T) {
		items, err := invoice.MemberItemsFromTicket(billableTicket(), now, invoice.DefaultOptions())
		require.NoError(t, err)
		require.Len(t, items, 2)

		rental, tow := items[0], items[1]
		assert.Equal(t, invoice.ProductGlider, rental.Product())
		assert.Equal(t, invoice.MemberClassGlider, rental.Class())
		assert.Equal(t, "Ticket #: 123, Glider: G1, Glider Time: 1.5 hours", rental.Description())
		assert.Equal(t, "50.00", rental.Amount().StringFixed(2))

		assert.Equal(t, invoice.ProductTow, tow.Product())
		assert.Equal(t, invoice.MemberClassTow, tow.Class())
		assert.Equal(t, "Ticket #: 123, Release Alt: 3000", tow.Description())
		assert.Equal(t, "75.00", tow.Amount().StringFixed(2))

		for _, it := range items {
			assert.Equal(t, "Smith, John", it.Name().String())
			assert.Equal(t, now, it.InvoiceDate())
			assert.Equal(t, now.AddDate(0, 0, 30), it.DueDate())
			assert.Equal(t, billableTicket().DateTime, it.ServiceDate())
		}
	})
	t.Run("should honour the due offset", func(t *testing.T) {
		items, err := invoice.MemberItemsFromTicket(billableTicket(), now, invoice.Options{DueDays: 15})
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, 15), items[0].DueDate())
	})
	t.Run("should format glider time with one decimal", func(t *testing.T) {
		rec := billableTicket()
		rec.GliderTime = 0.25
		items, err := invoice.MemberItemsFromTicket(rec, now, invoice.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "Ticket #: 123, Glider: G1, Glider Time: 0.2 hours", items[0].Description())
	})
	t.Run("should only bill what is billable", func(t *testing.T) {
		rec := billableTicket()
		rec.BillableRental = false
		items, err := invoice.MemberItemsFromTicket(rec, now, invoice.DefaultOptions())
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, invoice.MemberClassTow, items[0].Class())

		rec.BillableTow = false
		items, err = invoice.MemberItemsFromTicket(rec, now, invoice.DefaultOptions())
		require.NoError(t, err)
		assert.Empty(t, items)
	})
	t.Run("should create nothing for an unbillable ticket", func(t *testing.T) {
		captureLogs(t)
		for _, rec := range []ticket.Record{
			func() ticket.Record { r := billableTicket(); r.Flown = false; return r }(),
			func() ticket.Record { r := billableTicket(); r.Closed = false; return r }(),
		} {
			items, err := invoice.MemberItemsFromTicket(rec, now, invoice.DefaultOptions())
			require.NoError(t, err)
			assert.Empty(t, items)
		}
	})
}

func TestVendorItemsFromTicket(t *testing.T) {
	t.Run("should pay the tow pilot", func(t *testing.T) {
		rec := billableTicket()
		rec.TowPilot = name.MustParse("Pilot, Tow")
		rec.TowPlane = "N123"
		items, err := invoice.VendorItemsFromTicket(rec, now, invoice.DefaultOptions())
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Pilot, Tow", items[0].Name().String())
		assert.Equal(t, invoice.VendorClassTow, items[0].Class())
		assert.Equal(t, invoice.VendorCategoryTow, items[0].Category())
		assert.Equal(t, "Ticket #: 123, Release Alt: 3000, N123, Pilot: Smith, John", items[0].Description())
		assert.Equal(t, "10.00", items[0].Amount().StringFixed(2))
	})
	t.Run("should pay tow then intro for an intro flight", func(t *testing.T) {
		rec := billableTicket()
		rec.Category = ticket.CategoryIntro
		rec.TowPilot = name.MustParse("Pilot, Tow")
		rec.Guest = "my Guest"
		items, err := invoice.VendorItemsFromTicket(rec, now, invoice.DefaultOptions())
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, invoice.VendorClassTow, items[0].Class())
		assert.Equal(t, invoice.VendorClassIntro, items[1].Class())
		assert.Equal(t, invoice.VendorCategoryIntro, items[1].Category())
		assert.Equal(t, "Smith, John", items[1].Name().String())
		assert.Equal(t, "Ticket #: 123, Release Alt: 3000, Glider: G1, my Guest", items[1].Description())
		assert.Equal(t, "10.00", items[1].Amount().StringFixed(2))
	})
	t.Run("should pay the instructor for a 5-pack flight", func(t *testing.T) {
		rec := billableTicket()
		rec.Category = ticket.CategoryPack
		rec.CFIG = name.MustParse("Jane Instructor")
		items, err := invoice.VendorItemsFromTicket(rec, now, invoice.DefaultOptions())
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Instructor, Jane", items[0].Name().String())
		assert.Equal(t, invoice.VendorClassPack, items[0].Class())
		assert.Equal(t, invoice.VendorCategoryPack, items[0].Category())
		assert.Equal(t, "Ticket #: 123, Release Alt: 3000, Glider: G1, Smith, John", items[0].Description())
		assert.Equal(t, "40.00", items[0].Amount().StringFixed(2))
	})
	t.Run("should skip only the pack item when the CFIG is missing", func(t *testing.T) {
		buf := captureLogs(t)
		rec := billableTicket()
		rec.Category = ticket.CategoryPack
		rec.TowPilot = name.MustParse("Pilot, Tow")
		items, err := invoice.VendorItemsFromTicket(rec, now, invoice.DefaultOptions())
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, invoice.VendorClassTow, items[0].Class())
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "ticket=123")
	})
	t.Run("should create nothing for a self-launched club flight", func(t *testing.T) {
		items, err := invoice.VendorItemsFromTicket(billableTicket(), now, invoice.DefaultOptions())
		require.NoError(t, err)
		assert.Empty(t, items)
	})
	t.Run("should create nothing for an unbillable ticket", func(t *testing.T) {
		buf := captureLogs(t)
		rec := billableTicket()
		rec.Category = ticket.CategoryIntro
		rec.TowPilot = name.MustParse("Pilot, Tow")
		rec.Flown = false
		items, err := invoice.VendorItemsFromTicket(rec, now, invoice.DefaultOptions())
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Contains(t, buf.String(), "not flown")
	})
}

func TestRate(t *testing.T) {
	assert.Equal(t, "10.00", invoice.Rate(invoice.VendorClassTow).StringFixed(2))
	assert.Equal(t, "10.00", invoice.Rate(invoice.VendorClassIntro).StringFixed(2))
	assert.Equal(t, "40.00", invoice.Rate(invoice.VendorClassPack).StringFixed(2))
	assert.True(t, invoice.Rate("UNKNOWN").IsZero())
}
