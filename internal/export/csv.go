package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/towbill/internal/invoice"
)

// WriteMemberInvoices writes the member invoice export to path, creating or
// truncating it.
func WriteMemberInvoices(path string, items []invoice.MemberItem) error {
	return WriteCSVFile(path, MemberInvoiceTable(items))
}

// WriteVendorBills writes the vendor bill export to path, creating or
// truncating it.
func WriteVendorBills(path string, items []invoice.VendorItem) error {
	return WriteCSVFile(path, VendorBillTable(items))
}

// WriteCSVFile writes t to path. The file is closed on every return path.
func WriteCSVFile(path string, t Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := WriteCSV(f, t); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes the header row and data rows of t to w.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}
