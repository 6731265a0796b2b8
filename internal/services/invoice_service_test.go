package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transfer-backend/internal/models"
)

// Fixture ids are uuid-shaped because invoice creation screens ids before
// they reach the storage layer.
const (
	customerID        = "5b3f0f2e-8f43-4b0a-9f6c-2d1a7e9c4b10"
	otherCustomerID   = "6c4a1a3f-9054-4c1b-a07d-3e2b8fad5c21"
	unknownCustomerID = "7d5b2b4e-a165-4d2c-b18e-4f3c9abe6d32"
	orderID1          = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	orderID2          = "1b2c3d4e-5f6a-4b7c-8d9e-0f1a2b3c4d5e"
	unknownOrderID    = "2c3d4e5f-6a7b-4c8d-9e0f-1a2b3c4d5e6f"
)

type fakeInvoiceStore struct {
	CreateWithItemsFunc func(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error
	GetFunc             func(ctx context.Context, id string) (*models.Invoice, error)
	ListFunc            func(ctx context.Context, customerID string) ([]*models.Invoice, error)
	UpdateStatusFunc    func(ctx context.Context, id, status string) error
	UpdatePDFPathFunc   func(ctx context.Context, id, path string) error
}

func (f *fakeInvoiceStore) CreateWithItems(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error {
	return f.CreateWithItemsFunc(ctx, inv, items)
}

func (f *fakeInvoiceStore) Get(ctx context.Context, id string) (*models.Invoice, error) {
	return f.GetFunc(ctx, id)
}

func (f *fakeInvoiceStore) List(ctx context.Context, customerID string) ([]*models.Invoice, error) {
	return f.ListFunc(ctx, customerID)
}

func (f *fakeInvoiceStore) UpdateStatus(ctx context.Context, id, status string) error {
	return f.UpdateStatusFunc(ctx, id, status)
}

func (f *fakeInvoiceStore) UpdatePDFPath(ctx context.Context, id, path string) error {
	return f.UpdatePDFPathFunc(ctx, id, path)
}

type fakeCustomerGetter struct {
	GetFunc func(ctx context.Context, id string) (*models.Customer, error)
}

func (f *fakeCustomerGetter) Get(ctx context.Context, id string) (*models.Customer, error) {
	return f.GetFunc(ctx, id)
}

type fakeOrderGetter struct {
	GetByIDsFunc func(ctx context.Context, ids []string) ([]*models.Order, error)
}

func (f *fakeOrderGetter) GetByIDs(ctx context.Context, ids []string) ([]*models.Order, error) {
	return f.GetByIDsFunc(ctx, ids)
}

func testCustomer() *models.Customer {
	return &models.Customer{ID: customerID, Name: "Acme Travel"}
}

func testOrder(id, price string) *models.Order {
	return &models.Order{
		ID:           id,
		CustomerID:   customerID,
		PickupAt:     time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
		FromLocation: "Airport",
		ToLocation:   "Hotel Plaza",
		Price:        price,
		Status:       models.OrderStatusConfirmed,
	}
}

func newTestInvoiceService(store *fakeInvoiceStore, orders []*models.Order) *InvoiceService {
	return NewInvoiceService(
		store,
		&fakeCustomerGetter{GetFunc: func(ctx context.Context, id string) (*models.Customer, error) {
			if id == customerID {
				return testCustomer(), nil
			}
			return nil, models.ErrNotFound
		}},
		&fakeOrderGetter{GetByIDsFunc: func(ctx context.Context, ids []string) ([]*models.Order, error) {
			var found []*models.Order
			for _, id := range ids {
				for _, o := range orders {
					if o.ID == id {
						found = append(found, o)
						break
					}
				}
			}
			return found, nil
		}},
		"TY",
	)
}

func TestCreateFromOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy Path", func(t *testing.T) {
		var created *models.Invoice
		var createdItems []models.InvoiceItem
		store := &fakeInvoiceStore{
			CreateWithItemsFunc: func(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error {
				inv.ID = "inv-1"
				created = inv
				createdItems = items
				return nil
			},
			GetFunc: func(ctx context.Context, id string) (*models.Invoice, error) {
				require.Equal(t, "inv-1", id)
				out := *created
				out.Items = createdItems
				return &out, nil
			},
		}
		svc := newTestInvoiceService(store, []*models.Order{
			testOrder(orderID1, "100.00"),
			testOrder(orderID2, "50.50"),
		})

		inv, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: customerID,
			OrderIDs:   []string{orderID1, orderID2},
			IssueDate:  "2025-03-05",
			DueDate:    "2025-03-19",
		})
		require.NoError(t, err)

		assert.Equal(t, "150.50", inv.Total)
		assert.Equal(t, models.InvoiceStatusDraft, inv.Status)
		assert.True(t, strings.HasPrefix(inv.InvoiceNumber, "TY"))
		assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), inv.IssueDate)
		require.NotNil(t, inv.DueDate)
		assert.Equal(t, time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC), *inv.DueDate)

		require.Len(t, inv.Items, 2)
		first := inv.Items[0]
		assert.Equal(t, orderID1, first.OrderID)
		assert.Equal(t, 1, first.Qty)
		assert.Equal(t, "100.00", first.UnitPrice)
		assert.Equal(t, "100.00", first.Amount)
		assert.Contains(t, first.Description, "Airport")
		assert.Contains(t, first.Description, "Hotel Plaza")
	})

	t.Run("Timestamp Issue Date Is Accepted", func(t *testing.T) {
		store := &fakeInvoiceStore{
			CreateWithItemsFunc: func(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error {
				inv.ID = "inv-1"
				assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), inv.IssueDate)
				return nil
			},
			GetFunc: func(ctx context.Context, id string) (*models.Invoice, error) {
				return &models.Invoice{ID: id}, nil
			},
		}
		svc := newTestInvoiceService(store, []*models.Order{testOrder(orderID1, "10.00")})

		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: customerID,
			OrderIDs:   []string{orderID1},
			IssueDate:  "2025-03-05T12:30:00Z",
		})
		require.NoError(t, err)
	})

	t.Run("Missing Customer ID", func(t *testing.T) {
		svc := newTestInvoiceService(&fakeInvoiceStore{}, nil)
		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			OrderIDs:  []string{orderID1},
			IssueDate: "2025-03-05",
		})
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("Empty Order List", func(t *testing.T) {
		svc := newTestInvoiceService(&fakeInvoiceStore{}, nil)
		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: customerID,
			IssueDate:  "2025-03-05",
		})
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("Bad Issue Date", func(t *testing.T) {
		svc := newTestInvoiceService(&fakeInvoiceStore{}, nil)
		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: customerID,
			OrderIDs:   []string{orderID1},
			IssueDate:  "05.03.2025",
		})
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("Unknown Customer", func(t *testing.T) {
		svc := newTestInvoiceService(&fakeInvoiceStore{}, []*models.Order{testOrder(orderID1, "10.00")})
		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: unknownCustomerID,
			OrderIDs:   []string{orderID1},
			IssueDate:  "2025-03-05",
		})
		assert.ErrorIs(t, err, models.ErrInvalidReference)
	})

	t.Run("Unknown Order", func(t *testing.T) {
		svc := newTestInvoiceService(&fakeInvoiceStore{}, []*models.Order{testOrder(orderID1, "10.00")})
		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: customerID,
			OrderIDs:   []string{orderID1, unknownOrderID},
			IssueDate:  "2025-03-05",
		})
		assert.ErrorIs(t, err, models.ErrInvalidReference)
	})

	t.Run("Duplicate Order IDs Rejected", func(t *testing.T) {
		svc := newTestInvoiceService(&fakeInvoiceStore{}, []*models.Order{testOrder(orderID1, "10.00")})
		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: customerID,
			OrderIDs:   []string{orderID1, orderID1},
			IssueDate:  "2025-03-05",
		})
		assert.ErrorIs(t, err, models.ErrInvalidReference)
	})

	t.Run("Malformed Order ID", func(t *testing.T) {
		// Must come back as a reference error from the service, not as a
		// driver failure on the uuid cast downstream.
		svc := newTestInvoiceService(&fakeInvoiceStore{}, []*models.Order{testOrder(orderID1, "10.00")})
		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: customerID,
			OrderIDs:   []string{orderID1, "not-a-uuid"},
			IssueDate:  "2025-03-05",
		})
		assert.ErrorIs(t, err, models.ErrInvalidReference)
	})

	t.Run("Malformed Customer ID", func(t *testing.T) {
		svc := newTestInvoiceService(&fakeInvoiceStore{}, []*models.Order{testOrder(orderID1, "10.00")})
		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: "42",
			OrderIDs:   []string{orderID1},
			IssueDate:  "2025-03-05",
		})
		assert.ErrorIs(t, err, models.ErrInvalidReference)
	})

	t.Run("Cross Customer Order", func(t *testing.T) {
		foreign := testOrder(orderID2, "10.00")
		foreign.CustomerID = otherCustomerID
		svc := newTestInvoiceService(&fakeInvoiceStore{}, []*models.Order{
			testOrder(orderID1, "10.00"),
			foreign,
		})
		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: customerID,
			OrderIDs:   []string{orderID1, orderID2},
			IssueDate:  "2025-03-05",
		})
		assert.ErrorIs(t, err, models.ErrCrossCustomer)
	})

	t.Run("Retries On Duplicate Invoice Number", func(t *testing.T) {
		attempts := 0
		seen := map[string]bool{}
		store := &fakeInvoiceStore{
			CreateWithItemsFunc: func(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error {
				attempts++
				seen[inv.InvoiceNumber] = true
				if attempts < 3 {
					return models.ErrDuplicateInvoiceNumber
				}
				inv.ID = "inv-1"
				return nil
			},
			GetFunc: func(ctx context.Context, id string) (*models.Invoice, error) {
				return &models.Invoice{ID: id}, nil
			},
		}
		svc := newTestInvoiceService(store, []*models.Order{testOrder(orderID1, "10.00")})

		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: customerID,
			OrderIDs:   []string{orderID1},
			IssueDate:  "2025-03-05",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("Gives Up After Bounded Retries", func(t *testing.T) {
		attempts := 0
		store := &fakeInvoiceStore{
			CreateWithItemsFunc: func(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error {
				attempts++
				return models.ErrDuplicateInvoiceNumber
			},
		}
		svc := newTestInvoiceService(store, []*models.Order{testOrder(orderID1, "10.00")})

		_, err := svc.CreateFromOrders(ctx, &models.CreateInvoiceRequest{
			CustomerID: customerID,
			OrderIDs:   []string{orderID1},
			IssueDate:  "2025-03-05",
		})
		assert.ErrorIs(t, err, models.ErrDuplicateInvoiceNumber)
		assert.Equal(t, invoiceNumberAttempts, attempts)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Status", func(t *testing.T) {
		store := &fakeInvoiceStore{
			UpdateStatusFunc: func(ctx context.Context, id, status string) error {
				assert.Equal(t, models.InvoiceStatusPaid, status)
				return nil
			},
			GetFunc: func(ctx context.Context, id string) (*models.Invoice, error) {
				return &models.Invoice{ID: id, Status: models.InvoiceStatusPaid}, nil
			},
		}
		svc := newTestInvoiceService(store, nil)

		inv, err := svc.SetStatus(ctx, "inv-1", models.InvoiceStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, models.InvoiceStatusPaid, inv.Status)
	})

	t.Run("Any Transition Allowed", func(t *testing.T) {
		// paid back to draft is fine: statuses are labels, not a state machine
		store := &fakeInvoiceStore{
			UpdateStatusFunc: func(ctx context.Context, id, status string) error { return nil },
			GetFunc: func(ctx context.Context, id string) (*models.Invoice, error) {
				return &models.Invoice{ID: id, Status: models.InvoiceStatusDraft}, nil
			},
		}
		svc := newTestInvoiceService(store, nil)

		_, err := svc.SetStatus(ctx, "inv-1", models.InvoiceStatusDraft)
		require.NoError(t, err)
	})

	t.Run("Unknown Status", func(t *testing.T) {
		svc := newTestInvoiceService(&fakeInvoiceStore{}, nil)
		_, err := svc.SetStatus(ctx, "inv-1", "archived")
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestOrderDescription(t *testing.T) {
	o := testOrder(orderID1, "10.00")
	desc := orderDescription(o)
	assert.Equal(t, "Transfer: Airport → Hotel Plaza (2025-03-05T10:00:00Z)", desc)
}
