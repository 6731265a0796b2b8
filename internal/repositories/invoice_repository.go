package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transfer-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

const invoiceColumns = `i.id, i.invoice_number, i.customer_id, i.issue_date, i.due_date,
       COALESCE(i.payment_method, ''), i.status, i.total::text,
       COALESCE(i.pdf_path, ''), i.created_at, i.updated_at,
       c.id, c.name, COALESCE(c.contact_person, ''), COALESCE(c.phone, ''),
       COALESCE(c.email, ''), COALESCE(c.address, ''), c.created_at, c.updated_at`

func scanInvoiceWithCustomer(row pgx.Row) (*models.Invoice, error) {
	var inv models.Invoice
	var c models.Customer
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.IssueDate,
		&inv.DueDate, &inv.PaymentMethod, &inv.Status, &inv.Total, &inv.PDFPath,
		&inv.CreatedAt, &inv.UpdatedAt,
		&c.ID, &c.Name, &c.ContactPerson, &c.Phone, &c.Email, &c.Address,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	inv.Customer = &c
	return &inv, nil
}

// CreateWithItems persists the invoice header, its items and the final total
// in one transaction: a failure partway leaves nothing behind. The header is
// written first so items get a valid invoice reference, then the total is
// stamped on. A uniqueness violation on the invoice number surfaces as
// models.ErrDuplicateInvoiceNumber so the service can retry with a new one.
func (r *InvoiceRepository) CreateWithItems(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	inv.ID = uuid.NewString()
	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(id, invoice_number, customer_id, issue_date, due_date,
		     payment_method, status, total)
         VALUES($1, $2, $3, $4, $5, NULLIF($6, ''), $7, '0.00')
         RETURNING created_at, updated_at`,
		inv.ID, inv.InvoiceNumber, inv.CustomerID, inv.IssueDate, inv.DueDate,
		inv.PaymentMethod, inv.Status,
	).Scan(&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %s", models.ErrDuplicateInvoiceNumber, inv.InvoiceNumber)
		}
		return err
	}

	for idx := range items {
		items[idx].ID = uuid.NewString()
		items[idx].InvoiceID = inv.ID
		_, err = tx.Exec(ctx,
			`INSERT INTO invoice_items(id, invoice_id, order_id, position, qty, description, unit_price, amount)
			 VALUES($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8)`,
			items[idx].ID, inv.ID, items[idx].OrderID, idx,
			items[idx].Qty, items[idx].Description, items[idx].UnitPrice, items[idx].Amount)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE invoices SET total=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		inv.Total, inv.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Get retrieves an invoice with its customer, items in their original order
// and each item's source order when it still exists.
func (r *InvoiceRepository) Get(ctx context.Context, id string) (*models.Invoice, error) {
	inv, err := scanInvoiceWithCustomer(r.DB.QueryRow(ctx,
		`SELECT `+invoiceColumns+`
         FROM invoices i JOIN customers c ON i.customer_id = c.id
         WHERE i.id=$1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT it.id, it.invoice_id, COALESCE(it.order_id::text, ''), it.qty,
		        it.description, it.unit_price::text, it.amount::text,
		        o.id, o.customer_id, o.pickup_at, o.from_location, o.to_location,
		        COALESCE(o.vehicle_type, ''), o.cars_count, COALESCE(o.driver_name, ''),
		        o.price::text, o.status, o.payment_status, o.payment_due_date,
		        COALESCE(o.notes, ''), o.created_at, o.updated_at
		 FROM invoice_items it
		 LEFT JOIN orders o ON it.order_id = o.id
		 WHERE it.invoice_id = $1
		 ORDER BY it.position ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it models.InvoiceItem
		// Order columns are nullable as a whole because of the LEFT JOIN:
		// the source order may have been deleted since the item was created.
		var oID, oCustomerID, oFrom, oTo, oVehicle, oDriver, oPrice, oStatus, oPayStatus, oNotes *string
		var oCars *int
		var oPickup, oCreated, oUpdated, oPayDue *time.Time
		err := rows.Scan(&it.ID, &it.InvoiceID, &it.OrderID, &it.Qty,
			&it.Description, &it.UnitPrice, &it.Amount,
			&oID, &oCustomerID, &oPickup, &oFrom, &oTo,
			&oVehicle, &oCars, &oDriver, &oPrice, &oStatus, &oPayStatus,
			&oPayDue, &oNotes, &oCreated, &oUpdated)
		if err != nil {
			return nil, err
		}
		if oID != nil {
			it.Order = &models.Order{
				ID:             *oID,
				CustomerID:     *oCustomerID,
				PickupAt:       *oPickup,
				FromLocation:   *oFrom,
				ToLocation:     *oTo,
				VehicleType:    *oVehicle,
				CarsCount:      *oCars,
				DriverName:     *oDriver,
				Price:          *oPrice,
				Status:         *oStatus,
				PaymentStatus:  *oPayStatus,
				PaymentDueDate: oPayDue,
				Notes:          *oNotes,
				CreatedAt:      *oCreated,
				UpdatedAt:      *oUpdated,
			}
		}
		inv.Items = append(inv.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

// List returns invoices newest first, capped at 200 rows, optionally scoped
// to one customer.
func (r *InvoiceRepository) List(ctx context.Context, customerID string) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
       FROM invoices i JOIN customers c ON i.customer_id = c.id`
	var args []interface{}
	if customerID != "" {
		query += ` WHERE i.customer_id=$1`
		args = append(args, customerID)
	}
	query += ` ORDER BY i.created_at DESC LIMIT 200`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoiceWithCustomer(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// UpdateStatus overwrites the invoice status unconditionally; any status may
// follow any other.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdatePDFPath records where the last generated document was written.
// Deliberately does not touch updated_at: the rendered-PDF cache is keyed on
// the revision, and recording the output path is not a revision of the
// invoice itself.
func (r *InvoiceRepository) UpdatePDFPath(ctx context.Context, id, path string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE invoices SET pdf_path=NULLIF($1, '') WHERE id=$2`,
		path, id)
	return err
}
