package services

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var invoiceNumberPattern = regexp.MustCompile(`^([A-Z]+)(\d{8})-(\d{4})$`)

func TestMakeInvoiceNumber(t *testing.T) {
	t.Run("Shape", func(t *testing.T) {
		n := MakeInvoiceNumber("TY")
		m := invoiceNumberPattern.FindStringSubmatch(n)
		require.NotNil(t, m, "unexpected invoice number %q", n)

		assert.Equal(t, "TY", m[1])
		assert.Equal(t, time.Now().UTC().Format("20060102"), m[2])

		suffix, err := strconv.Atoi(m[3])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, suffix, 1000)
		assert.LessOrEqual(t, suffix, 9999)
	})

	t.Run("Empty Prefix Falls Back To Default", func(t *testing.T) {
		n := MakeInvoiceNumber("")
		m := invoiceNumberPattern.FindStringSubmatch(n)
		require.NotNil(t, m, "unexpected invoice number %q", n)
		assert.Equal(t, DefaultInvoicePrefix, m[1])
	})

	t.Run("Custom Prefix", func(t *testing.T) {
		n := MakeInvoiceNumber("INV")
		m := invoiceNumberPattern.FindStringSubmatch(n)
		require.NotNil(t, m, "unexpected invoice number %q", n)
		assert.Equal(t, "INV", m[1])
	})

	t.Run("Suffix In Range Across Many Draws", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			n := MakeInvoiceNumber("TY")
			m := invoiceNumberPattern.FindStringSubmatch(n)
			require.NotNil(t, m, "unexpected invoice number %q", n)
		}
	})
}
