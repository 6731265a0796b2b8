package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transfer-backend/internal/models"
)

func renderedInvoice() *models.Invoice {
	due := time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)
	return &models.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "TY20250305-4821",
		IssueDate:     time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		DueDate:       &due,
		Status:        models.InvoiceStatusDraft,
		Total:         "150.50",
		Customer: &models.Customer{
			Name:  "Acme Travel",
			Phone: "+996700123456",
			Email: "billing@acme.example",
		},
		Items: []models.InvoiceItem{
			{Qty: 1, Description: "Transfer: Airport → Hotel Plaza", UnitPrice: "100.00", Amount: "100.00"},
			{Qty: 1, Description: "Transfer: Hotel Plaza → Airport", UnitPrice: "50.50", Amount: "50.50"},
		},
	}
}

func TestRenderHTML(t *testing.T) {
	t.Run("Full Document", func(t *testing.T) {
		html, err := RenderHTML(renderedInvoice(), &models.CompanyProfile{
			CompanyName: "ОсОО «Байсал Тревел»",
			Address:     "г. Бишкек, ул. Чуй 1",
			TaxID:       "01234567891234",
			BankName:    "Демир Банк",
			IBAN:        "KG12 3456 7890",
		})
		require.NoError(t, err)

		assert.Contains(t, html, "TY20250305-4821")
		assert.Contains(t, html, "Acme Travel")
		assert.Contains(t, html, "05.03.2025")
		assert.Contains(t, html, "19.03.2025")
		assert.Contains(t, html, "Transfer: Airport")
		assert.Contains(t, html, "150,50")
		assert.Contains(t, html, "Демир Банк")
	})

	t.Run("Nil Profile Uses Defaults", func(t *testing.T) {
		html, err := RenderHTML(renderedInvoice(), nil)
		require.NoError(t, err)
		assert.Contains(t, html, DefaultCompanyName)
	})

	t.Run("Missing Fields Become Dashes", func(t *testing.T) {
		inv := &models.Invoice{InvoiceNumber: "TY20250305-1000", Total: "0.00"}
		html, err := RenderHTML(inv, nil)
		require.NoError(t, err)
		assert.Contains(t, html, "—")
		// No items renders the placeholder row instead of an empty table.
		assert.Contains(t, html, "0,00")
	})

	t.Run("Default Payment Method", func(t *testing.T) {
		html, err := RenderHTML(renderedInvoice(), nil)
		require.NoError(t, err)
		assert.Contains(t, html, "Перечислением")

		inv := renderedInvoice()
		inv.PaymentMethod = "Наличными"
		html, err = RenderHTML(inv, nil)
		require.NoError(t, err)
		assert.Contains(t, html, "Наличными")
	})

	t.Run("Escapes Stored Markup", func(t *testing.T) {
		inv := renderedInvoice()
		inv.Customer.Name = `<script>alert("x")</script>`
		inv.Items[0].Description = `<img src=x onerror=alert(1)>`

		html, err := RenderHTML(inv, nil)
		require.NoError(t, err)
		assert.NotContains(t, html, `<script>alert`)
		assert.NotContains(t, html, `<img src=x`)
		assert.Contains(t, html, "&lt;script&gt;")
	})

	t.Run("Contact Person Falls Back To Customer Name", func(t *testing.T) {
		inv := renderedInvoice()
		inv.Customer.ContactPerson = ""
		html, err := RenderHTML(inv, nil)
		require.NoError(t, err)
		assert.Contains(t, html, "Acme Travel")
	})
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "150,50", formatMoney("150.50"))
	assert.Equal(t, "0,00", formatMoney("0.00"))
	assert.Equal(t, "not-a-number", formatMoney("not-a-number"))
}
