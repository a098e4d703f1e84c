package utils_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/towbill/pkg/utils"
)

func TestOutputPaths(t *testing.T) {
	t.Run("should place outputs next to the input", func(t *testing.T) {
		fm := utils.NewFileManager("", "", "")
		got := fm.OutputPaths(filepath.Join("data", "june.csv"))
		assert.Equal(t, filepath.Join("data", "june_member_invoice.csv"), got.MemberInvoice)
		assert.Equal(t, filepath.Join("data", "june_vendor_bill.csv"), got.VendorBill)
	})
	t.Run("should honour output dir and suffixes", func(t *testing.T) {
		fm := utils.NewFileManager("out", "_members", "_vendors")
		got := fm.OutputPaths(filepath.Join("data", "june.xlsx"))
		assert.Equal(t, []string{
			filepath.Join("out", "june_members.csv"),
			filepath.Join("out", "june_vendors.csv"),
		}, got.All())
	})
}

func TestCheckInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.NoError(t, utils.CheckInput(path))
	assert.ErrorIs(t, utils.CheckInput(filepath.Join(dir, "nope.csv")), utils.ErrInputMissing)
	assert.Error(t, utils.CheckInput(dir))
}

func TestCheckOutputs(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))
	missing := filepath.Join(dir, "b.csv")

	assert.NoError(t, utils.CheckOutputs([]string{missing}, false))
	assert.ErrorIs(t, utils.CheckOutputs([]string{missing, existing}, false), utils.ErrOutputExists)
	assert.NoError(t, utils.CheckOutputs([]string{existing}, true))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, utils.EnsureDir(dir))
	assert.True(t, utils.FileExists(dir))
	assert.NoError(t, utils.EnsureDir(""))
}

func TestXLSXPath(t *testing.T) {
	assert.Equal(t, "june_member_invoice.xlsx", utils.XLSXPath("june_member_invoice.csv"))
	assert.Equal(t, "noext.xlsx", utils.XLSXPath("noext"))
}

func TestWriteRunSummary(t *testing.T) {
	var buf bytes.Buffer
	err := utils.WriteRunSummary(&buf, utils.RunSummary{
		RunID:       "abc",
		InputFile:   "june.csv",
		OutputFiles: []string{"m.csv", "v.csv"},
		Tickets:     3,
		MemberItems: 4,
		Duration:    1500 * time.Microsecond,
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Run:              abc\n")
	assert.Contains(t, out, "Tickets:          3\n")
	assert.Contains(t, out, "Member items:     4\n")
	assert.Contains(t, out, "Duration:         2ms\n")
	assert.Contains(t, out, "Wrote:            v.csv\n")
}
