package repository

import (
	"context"
	"errors"

	"github.com/andy/quotepad/internal/domain"
)

// DefaultKey is the key the editor snapshot is stored under.
const DefaultKey = "invoiceData"

// ErrNoSnapshot is returned by Load when nothing usable is stored.
var ErrNoSnapshot = errors.New("no saved invoice")

// InvoiceStore persists the single editor snapshot.
type InvoiceStore interface {
	// Load returns the saved invoice, or ErrNoSnapshot when the key is
	// missing or its value cannot be decoded.
	Load(ctx context.Context) (*domain.Invoice, error)
	Save(ctx context.Context, inv *domain.Invoice) error
	Delete(ctx context.Context) error
	Close() error
}
