package repositories

import (
	"context"
	"errors"
	"fmt"

	"transfer-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, name, COALESCE(contact_person, ''), COALESCE(phone, ''),
       COALESCE(email, ''), COALESCE(address, ''), created_at, updated_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.ContactPerson, &c.Phone, &c.Email,
		&c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	c.ID = uuid.NewString()
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(id, name, contact_person, phone, email, address)
         VALUES($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
         RETURNING created_at, updated_at`,
		c.ID, c.Name, c.ContactPerson, c.Phone, c.Email, c.Address,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *CustomerRepository) Get(ctx context.Context, id string) (*models.Customer, error) {
	return scanCustomer(r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id=$1`, id))
}

// List returns customers newest first. A non-empty q filters by name, phone
// or email (case-insensitive substring) and caps the result at 50 rows.
func (r *CustomerRepository) List(ctx context.Context, q string) ([]*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC`
	args := []interface{}{}
	if q != "" {
		query = `SELECT ` + customerColumns + ` FROM customers
		 WHERE name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1
		 ORDER BY created_at DESC LIMIT 50`
		args = append(args, "%"+q+"%")
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE customers
         SET name=$1, contact_person=NULLIF($2, ''), phone=NULLIF($3, ''),
             email=NULLIF($4, ''), address=NULLIF($5, ''), updated_at=CURRENT_TIMESTAMP
         WHERE id=$6`,
		c.Name, c.ContactPerson, c.Phone, c.Email, c.Address, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a customer. Customers referenced by orders or invoices are
// protected by RESTRICT foreign keys; that rejection surfaces as ErrConflict.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: customer has orders or invoices", models.ErrConflict)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
