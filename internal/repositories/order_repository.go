package repositories

import (
	"context"
	"errors"
	"fmt"

	"transfer-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `o.id, o.customer_id, o.pickup_at, o.from_location, o.to_location,
       COALESCE(o.vehicle_type, ''), o.cars_count, COALESCE(o.driver_name, ''),
       o.price::text, o.status, o.payment_status, o.payment_due_date,
       COALESCE(o.notes, ''), o.created_at, o.updated_at`

const orderJoinColumns = orderColumns + `,
       c.id, c.name, COALESCE(c.contact_person, ''), COALESCE(c.phone, ''),
       COALESCE(c.email, ''), COALESCE(c.address, ''), c.created_at, c.updated_at`

func scanOrderWithCustomer(row pgx.Row) (*models.Order, error) {
	var o models.Order
	var c models.Customer
	err := row.Scan(&o.ID, &o.CustomerID, &o.PickupAt, &o.FromLocation, &o.ToLocation,
		&o.VehicleType, &o.CarsCount, &o.DriverName, &o.Price, &o.Status,
		&o.PaymentStatus, &o.PaymentDueDate, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		&c.ID, &c.Name, &c.ContactPerson, &c.Phone, &c.Email, &c.Address,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	o.Customer = &c
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	o.ID = uuid.NewString()
	return r.DB.QueryRow(ctx,
		`INSERT INTO orders(id, customer_id, pickup_at, from_location, to_location,
		     vehicle_type, cars_count, driver_name, price, status, payment_status,
		     payment_due_date, notes)
         VALUES($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9, $10, $11,
             $12, NULLIF($13, ''))
         RETURNING created_at, updated_at`,
		o.ID, o.CustomerID, o.PickupAt, o.FromLocation, o.ToLocation,
		o.VehicleType, o.CarsCount, o.DriverName, o.Price, o.Status,
		o.PaymentStatus, o.PaymentDueDate, o.Notes,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	return scanOrderWithCustomer(r.DB.QueryRow(ctx,
		`SELECT `+orderJoinColumns+`
         FROM orders o JOIN customers c ON o.customer_id = c.id
         WHERE o.id=$1`, id))
}

// GetByIDs loads the orders whose id is in ids, in the order the ids appear
// in the slice. Unknown ids are simply absent from the result; the caller is
// responsible for comparing sizes.
func (r *OrderRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Order, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+orderJoinColumns+`
         FROM orders o JOIN customers c ON o.customer_id = c.id
         WHERE o.id = ANY($1::uuid[])
         ORDER BY array_position($1::uuid[], o.id)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrderWithCustomer(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// buildOrderListQuery assembles the filtered list statement. Each bound of
// the pickup date range applies on its own, so from-only and to-only
// requests narrow the result too.
func buildOrderListQuery(f models.OrderFilter) (string, []interface{}) {
	query := `SELECT ` + orderJoinColumns + `
       FROM orders o JOIN customers c ON o.customer_id = c.id WHERE 1=1`
	var args []interface{}

	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		query += fmt.Sprintf(" AND o.customer_id=$%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND o.status=$%d", len(args))
	}
	if f.From != "" {
		args = append(args, f.From)
		query += fmt.Sprintf(" AND o.pickup_at >= $%d::date", len(args))
	}
	if f.To != "" {
		args = append(args, f.To)
		query += fmt.Sprintf(" AND o.pickup_at < $%d::date + INTERVAL '1 day'", len(args))
	}
	query += " ORDER BY o.pickup_at DESC LIMIT 200"
	return query, args
}

// List returns orders by pickup time descending, capped at 200 rows.
func (r *OrderRepository) List(ctx context.Context, f models.OrderFilter) ([]*models.Order, error) {
	query, args := buildOrderListQuery(f)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrderWithCustomer(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Update(ctx context.Context, o *models.Order) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE orders
         SET customer_id=$1, pickup_at=$2, from_location=$3, to_location=$4,
             vehicle_type=NULLIF($5, ''), cars_count=$6, driver_name=NULLIF($7, ''),
             price=$8, status=$9, payment_status=$10, payment_due_date=$11,
             notes=NULLIF($12, ''), updated_at=CURRENT_TIMESTAMP
         WHERE id=$13`,
		o.CustomerID, o.PickupAt, o.FromLocation, o.ToLocation, o.VehicleType,
		o.CarsCount, o.DriverName, o.Price, o.Status, o.PaymentStatus,
		o.PaymentDueDate, o.Notes, o.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes an order. Invoice items referencing it keep existing with a
// NULL order reference (FK ON DELETE SET NULL).
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
