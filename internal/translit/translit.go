// Package translit converts simplified Chinese text to traditional
// characters before printing.
package translit

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/andy/quotepad/internal/domain"
	"github.com/longbridgeapp/opencc"
)

// Transliterator maps one string to another. Implementations never fail;
// on error they return the input.
type Transliterator interface {
	Convert(s string) string
}

// Identity leaves text unchanged.
type Identity struct{}

func (Identity) Convert(s string) string { return s }

// OpenCC converts with an OpenCC dictionary set such as "s2t".
type OpenCC struct {
	mu sync.Mutex
	cc *opencc.OpenCC
}

// NewOpenCC loads the named conversion.
func NewOpenCC(conversion string) (*OpenCC, error) {
	cc, err := opencc.New(conversion)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s conversion: %w", conversion, err)
	}
	return &OpenCC{cc: cc}, nil
}

func (o *OpenCC) Convert(s string) string {
	if s == "" {
		return s
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	out, err := o.cc.Convert(s)
	if err != nil {
		slog.Warn("transliterate", "err", err)
		return s
	}
	return out
}

// Invoice applies t to every string field of inv.
func Invoice(t Transliterator, inv domain.Invoice) domain.Invoice {
	if t == nil {
		return inv.Clone()
	}
	return domain.MapStrings(inv, t.Convert)
}
