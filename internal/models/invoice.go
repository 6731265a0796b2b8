package models

import "time"

// Invoice lifecycle statuses
const (
	InvoiceStatusDraft    = "draft"
	InvoiceStatusSent     = "sent"
	InvoiceStatusPaid     = "paid"
	InvoiceStatusCanceled = "canceled"
)

// ValidInvoiceStatus reports whether s is one of the known invoice statuses.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCanceled:
		return true
	}
	return false
}

// Invoice represents a generated invoice. Total is a decimal string with two
// fractional digits, equal to the sum of all item amounts at creation time.
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	CustomerID    string        `json:"customer_id"`
	Customer      *Customer     `json:"customer,omitempty"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Status        string        `json:"status"`
	Total         string        `json:"total"`
	PDFPath       string        `json:"pdf_path,omitempty"`
	Items         []InvoiceItem `json:"items,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// InvoiceItem represents one billable line on an invoice. OrderID survives
// order deletion by becoming empty; items themselves are immutable after
// creation.
type InvoiceItem struct {
	ID          string `json:"id"`
	InvoiceID   string `json:"invoice_id"`
	OrderID     string `json:"order_id,omitempty"`
	Order       *Order `json:"order,omitempty"`
	Qty         int    `json:"qty"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price"`
	Amount      string `json:"amount"`
}

// CreateInvoiceRequest represents the request to build an invoice from orders
type CreateInvoiceRequest struct {
	CustomerID    string   `json:"customer_id"`
	OrderIDs      []string `json:"order_ids"`
	IssueDate     string   `json:"issue_date"`
	DueDate       string   `json:"due_date"`
	PaymentMethod string   `json:"payment_method"`
}
