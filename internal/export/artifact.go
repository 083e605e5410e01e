// Package export turns invoice snapshots into downloadable PDF artifacts,
// debounced behind the editor.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/translit"
	"github.com/andy/quotepad/internal/view"
	"github.com/google/uuid"
)

// DefaultHeading names the file when the invoice has no heading.
const DefaultHeading = "發票"

// Artifact is one generated document.
type Artifact struct {
	ID        string
	FileName  string
	Data      []byte
	CreatedAt time.Time
}

// Save writes the artifact into dir and returns the full path.
func (a *Artifact) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(dir, a.FileName)
	if err := os.WriteFile(path, a.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// FileName is "<heading><invoiceNumber>.pdf", with path separators replaced.
func FileName(inv domain.Invoice) string {
	heading := inv.Heading
	if heading == "" {
		heading = DefaultHeading
	}
	name := heading + inv.InvoiceNumber + ".pdf"
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)
}

// Printer renders a print-mode tree.
type Printer interface {
	Print(doc *view.Node) ([]byte, error)
}

// Pipeline is the work done when an export fires: transliterate, compose in
// print mode, print.
type Pipeline struct {
	Printer  Printer
	Translit translit.Transliterator
	Profile  domain.Profile
	Now      func() time.Time
}

// Build produces the artifact for inv. The file name is taken from the
// snapshot as typed, before transliteration.
func (p *Pipeline) Build(inv domain.Invoice) (*Artifact, error) {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	snap := translit.Invoice(p.Translit, inv)
	tree := view.Compose(snap, view.Options{Mode: view.Print, Profile: p.Profile, Now: now})
	data, err := p.Printer.Print(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to print: %w", err)
	}
	return &Artifact{
		ID:        uuid.NewString(),
		FileName:  FileName(inv),
		Data:      data,
		CreatedAt: now,
	}, nil
}
