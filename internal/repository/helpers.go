package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/andy/quotepad/internal/domain"
)

// encode serializes an invoice for storage
func encode(inv *domain.Invoice) ([]byte, error) {
	data, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice: %w", err)
	}
	return data, nil
}

// decode parses a stored snapshot. A malformed value is logged and reported
// as ErrNoSnapshot so the caller starts from defaults.
func decode(key string, data []byte) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		slog.Warn("discard malformed snapshot", "key", key, "err", err)
		return nil, ErrNoSnapshot
	}
	return &inv, nil
}
