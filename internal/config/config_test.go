package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/towbill/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("should return defaults without a file", func(t *testing.T) {
		c, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, "info", c.LogLevel)
		assert.Equal(t, 30, c.DueDays)
		assert.Equal(t, "_member_invoice", c.MemberInvoiceSuffix)
		assert.Equal(t, "_vendor_bill", c.VendorBillSuffix)
		assert.Equal(t, ",", c.CSVSettings.Delimiter)
		assert.False(t, c.WriteXLSX)
	})
	t.Run("should read values and default the rest", func(t *testing.T) {
		path := writeConfig(t, "log_level: debug\ndue_days: 15\nwrite_xlsx: true\ncsv_settings:\n  delimiter: \";\"\n")
		c, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", c.LogLevel)
		assert.Equal(t, 15, c.DueDays)
		assert.True(t, c.WriteXLSX)
		assert.Equal(t, ";", c.CSVSettings.Parser().Delimiter)
		assert.Equal(t, "_vendor_bill", c.VendorBillSuffix)
	})
	t.Run("should fail for a missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("should fail for malformed yaml", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "due_days: [1, 2"))
		assert.Error(t, err)
	})
	invalid := map[string]string{
		"negative due days":  "due_days: -1\n",
		"unknown log level":  "log_level: loud\n",
		"identical suffixes": "member_invoice_suffix: _x\nvendor_bill_suffix: _x\n",
		"long delimiter":     "csv_settings:\n  delimiter: ab\n",
	}
	for name, content := range invalid {
		t.Run("should reject "+name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, content))
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}
