package services

import (
	"fmt"
	"math/rand"
	"time"
)

// DefaultInvoicePrefix is used when no prefix is configured.
const DefaultInvoicePrefix = "TY"

// MakeInvoiceNumber builds a human-readable invoice number from the prefix,
// the current UTC date and a random 4-digit suffix, e.g. TY20250305-4821.
// Uniqueness is not guaranteed by construction; the invoices table carries a
// unique index and the assembly service regenerates on collision.
func MakeInvoiceNumber(prefix string) string {
	if prefix == "" {
		prefix = DefaultInvoicePrefix
	}
	suffix := 1000 + rand.Intn(9000)
	return fmt.Sprintf("%s%s-%d", prefix, time.Now().UTC().Format("20060102"), suffix)
}
