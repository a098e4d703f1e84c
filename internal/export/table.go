// =============================================================================
// Tow Ticket Billing Converter - Export Tables
// =============================================================================
//
// This module lays out line items as the two accounting import sheets.
//
// LAYOUT:
//   Items are grouped by billed party. Groups are ordered by name, items in
//   a group by service date (ties keep their derivation order). Only the
//   first row of a group carries the party, invoice date and due date:
//
//   | Display Name | Invoice Date | Due Date   | Service Date     | ...
//   |--------------|--------------|------------|------------------|----
//   | Doe, Jane    | 07/01/2024   | 07/31/2024 | 06/01/2024 12:00 | ...
//   |              |              |            | 06/02/2024 09:30 | ...
//   | Smith, John  | 07/01/2024   | 07/31/2024 | 06/01/2024 10:15 | ...
//
// The same Table is written as CSV (csv.go) and optionally XLSX (xlsx.go).
//
// =============================================================================

package export

import (
	"slices"

	"github.com/ginjaninja78/towbill/internal/invoice"
	"github.com/ginjaninja78/towbill/internal/name"
)

// Output date and amount formats.
const (
	DateLayout        = "01/02/2006"
	ServiceDateLayout = "01/02/2006 15:04"
)

// MemberInvoiceHeader is the header row of the member invoice export.
var MemberInvoiceHeader = []string{
	"Display Name",
	"Invoice Date",
	"Due Date",
	"Service Date",
	"Description or Memo",
	"Product",
	"CLASS",
	"SORT Last Name",
	"SORT First Name",
	"Sum of Tow Fee",
}

// VendorBillHeader is the header row of the vendor bill export.
var VendorBillHeader = []string{
	"Vendor Name",
	"Bill Date",
	"Due Date2",
	"Service Date",
	"Category Details - Memo",
	"Category Details - Category",
	"CLASS",
	"SORT NAME",
	"Sum of Category Details - Amount",
}

// =============================================================================
// TABLE
// =============================================================================

// Table is an export sheet: one header row and the data rows under it.
type Table struct {
	Header []string
	Rows   [][]string
}

// MemberInvoiceTable lays out member items.
func MemberInvoiceTable(items []invoice.MemberItem) Table {
	t := Table{Header: MemberInvoiceHeader}
	for _, g := range groupByParty(items) {
		for i, it := range g.items {
			display, invoiceDate, dueDate := "", "", ""
			if i == 0 {
				display = g.party.String()
				invoiceDate = it.InvoiceDate().Format(DateLayout)
				dueDate = it.DueDate().Format(DateLayout)
			}
			last, first := sortNames(it.Name())
			t.Rows = append(t.Rows, []string{
				display,
				invoiceDate,
				dueDate,
				it.ServiceDate().Format(ServiceDateLayout),
				it.Description(),
				string(it.Product()),
				string(it.Class()),
				last,
				first,
				FormatAmount(it),
			})
		}
	}
	return t
}

// VendorBillTable lays out vendor items. The vendor name on the first row of
// a group ends with a period.
func VendorBillTable(items []invoice.VendorItem) Table {
	t := Table{Header: VendorBillHeader}
	for _, g := range groupByParty(items) {
		for i, it := range g.items {
			vendor, billDate, dueDate := "", "", ""
			if i == 0 {
				vendor = g.party.String() + "."
				billDate = it.InvoiceDate().Format(DateLayout)
				dueDate = it.DueDate().Format(DateLayout)
			}
			t.Rows = append(t.Rows, []string{
				vendor,
				billDate,
				dueDate,
				it.ServiceDate().Format(ServiceDateLayout),
				it.Description(),
				string(it.Category()),
				string(it.Class()),
				it.Name().String(),
				FormatAmount(it),
			})
		}
	}
	return t
}

// FormatAmount renders an amount as "$X.XX".
func FormatAmount(it invoice.Item) string {
	return "$" + it.Amount().StringFixed(2)
}

// sortNames returns the SORT Last Name and SORT First Name cells. A name
// that has no parts sorts under its raw text.
func sortNames(n name.Name) (string, string) {
	if n.Last() == "" && n.First() == "" {
		return n.Raw(), ""
	}
	return n.Last(), n.First()
}

// =============================================================================
// GROUPING
// =============================================================================

type group[T invoice.Item] struct {
	party name.Name
	items []T
}

// groupByParty groups items by billed party. Groups come back ordered by
// name.Compare and each group's items by service date, stable.
func groupByParty[T invoice.Item](items []T) []group[T] {
	index := make(map[name.Key]int)
	var groups []group[T]

	for _, it := range items {
		key := it.Name().Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group[T]{party: it.Name()})
		}
		groups[i].items = append(groups[i].items, it)
	}

	slices.SortFunc(groups, func(a, b group[T]) int {
		return name.Compare(a.party, b.party)
	})
	for _, g := range groups {
		slices.SortStableFunc(g.items, func(a, b T) int {
			return a.ServiceDate().Compare(b.ServiceDate())
		})
	}
	return groups
}
