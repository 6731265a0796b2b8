package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"transfer-backend/internal/metrics"
	"transfer-backend/internal/models"
	"transfer-backend/pkg/money"
)

// invoiceNumberAttempts bounds the regenerate-and-retry loop on invoice
// number collisions before the error is surfaced to the caller.
const invoiceNumberAttempts = 3

// InvoiceStore is the slice of the storage layer the invoice service needs.
type InvoiceStore interface {
	CreateWithItems(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error
	Get(ctx context.Context, id string) (*models.Invoice, error)
	List(ctx context.Context, customerID string) ([]*models.Invoice, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdatePDFPath(ctx context.Context, id, path string) error
}

// CustomerGetter loads single customers for reference checks.
type CustomerGetter interface {
	Get(ctx context.Context, id string) (*models.Customer, error)
}

// OrderBatchGetter loads the orders named by an invoice request, in a
// deterministic order.
type OrderBatchGetter interface {
	GetByIDs(ctx context.Context, ids []string) ([]*models.Order, error)
}

type InvoiceService struct {
	Invoices  InvoiceStore
	Customers CustomerGetter
	Orders    OrderBatchGetter
	Prefix    string
}

func NewInvoiceService(invoices InvoiceStore, customers CustomerGetter, orders OrderBatchGetter, prefix string) *InvoiceService {
	return &InvoiceService{Invoices: invoices, Customers: customers, Orders: orders, Prefix: prefix}
}

// CreateFromOrders validates the request, derives one line item per order,
// accumulates the total and persists the invoice with its items in one
// transaction. All validation happens before any write. A collision on the
// generated invoice number is retried with a fresh number a bounded number
// of times.
func (s *InvoiceService) CreateFromOrders(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	if req.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer_id is required", models.ErrValidation)
	}
	if len(req.OrderIDs) == 0 {
		return nil, fmt.Errorf("%w: order_ids must not be empty", models.ErrValidation)
	}
	// Screen ids before they reach a ::uuid cast in the storage layer,
	// where a malformed one would surface as a driver error.
	if uuid.Validate(req.CustomerID) != nil {
		return nil, fmt.Errorf("%w: unknown customer %s", models.ErrInvalidReference, req.CustomerID)
	}
	for _, id := range req.OrderIDs {
		if uuid.Validate(id) != nil {
			return nil, fmt.Errorf("%w: some orders were not found", models.ErrInvalidReference)
		}
	}
	issueDate, err := parseDateOnly(req.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad issue_date %q", models.ErrValidation, req.IssueDate)
	}
	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := parseDateOnly(req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad due_date %q", models.ErrValidation, req.DueDate)
		}
		dueDate = &d
	}

	customer, err := s.Customers.Get(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown customer %s", models.ErrInvalidReference, req.CustomerID)
		}
		return nil, err
	}

	orders, err := s.Orders.GetByIDs(ctx, req.OrderIDs)
	if err != nil {
		return nil, err
	}
	// Duplicate ids in the request collapse to one loaded order, so the size
	// check also rejects those.
	if len(orders) != len(req.OrderIDs) {
		return nil, fmt.Errorf("%w: some orders were not found", models.ErrInvalidReference)
	}
	for _, o := range orders {
		if o.CustomerID != customer.ID {
			return nil, fmt.Errorf("%w: order %s belongs to another customer", models.ErrCrossCustomer, o.ID)
		}
	}

	total := "0.00"
	items := make([]models.InvoiceItem, 0, len(orders))
	for _, o := range orders {
		item := models.InvoiceItem{
			OrderID:     o.ID,
			Qty:         1,
			Description: orderDescription(o),
			UnitPrice:   o.Price,
			Amount:      o.Price, // qty is always 1 in this workflow
		}
		total, err = money.Add(total, item.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: order %s has a non-decimal price", models.ErrValidation, o.ID)
		}
		items = append(items, item)
	}

	inv := &models.Invoice{
		CustomerID:    customer.ID,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		PaymentMethod: req.PaymentMethod,
		Status:        models.InvoiceStatusDraft,
		Total:         total,
	}

	for attempt := 0; ; attempt++ {
		inv.InvoiceNumber = MakeInvoiceNumber(s.Prefix)
		err = s.Invoices.CreateWithItems(ctx, inv, items)
		if err == nil {
			break
		}
		if errors.Is(err, models.ErrDuplicateInvoiceNumber) && attempt < invoiceNumberAttempts-1 {
			continue
		}
		return nil, err
	}

	metrics.InvoicesCreatedTotal.Inc()
	return s.FindOne(ctx, inv.ID)
}

// FindAll lists invoices newest first, capped at 200, optionally scoped to
// one customer.
func (s *InvoiceService) FindAll(ctx context.Context, customerID string) ([]*models.Invoice, error) {
	return s.Invoices.List(ctx, customerID)
}

// FindOne returns the invoice with customer, items and source orders loaded.
func (s *InvoiceService) FindOne(ctx context.Context, id string) (*models.Invoice, error) {
	return s.Invoices.Get(ctx, id)
}

// SetStatus overwrites the invoice status. There is no transition rule: any
// status may follow any other.
func (s *InvoiceService) SetStatus(ctx context.Context, id, status string) (*models.Invoice, error) {
	if !models.ValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: unknown invoice status %q", models.ErrValidation, status)
	}
	if err := s.Invoices.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id)
}

// RecordPDFPath stores the path of the last generated document.
func (s *InvoiceService) RecordPDFPath(ctx context.Context, id, path string) error {
	return s.Invoices.UpdatePDFPath(ctx, id, path)
}

func orderDescription(o *models.Order) string {
	return fmt.Sprintf("Transfer: %s → %s (%s)",
		o.FromLocation, o.ToLocation, o.PickupAt.UTC().Format(time.RFC3339))
}

// parseDateOnly accepts both plain dates and full timestamps, keeping the
// date-only portion.
func parseDateOnly(s string) (time.Time, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}
