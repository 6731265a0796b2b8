package models

import "errors"

// Error kinds shared by repositories and services. Handlers map these onto
// HTTP status codes with errors.Is; anything else is a server error.
var (
	// ErrValidation covers malformed input caught before any storage call.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidReference means a referenced customer or order id is unknown.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrCrossCustomer means an order in an invoice request belongs to a
	// different customer than the invoice.
	ErrCrossCustomer = errors.New("all orders must belong to the same customer")

	// ErrNotFound means a lookup by id found nothing.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateInvoiceNumber is the storage uniqueness violation on the
	// invoice number. The assembly service retries it with a fresh number.
	ErrDuplicateInvoiceNumber = errors.New("duplicate invoice number")

	// ErrConflict means storage rejected the operation to preserve
	// referential integrity, e.g. deleting a customer that still has orders.
	ErrConflict = errors.New("operation conflicts with existing records")
)
