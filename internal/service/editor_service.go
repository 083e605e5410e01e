package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/export"
	"github.com/andy/quotepad/internal/repository"
)

// Scheduler is the export side of the editor: every change is handed over as
// a snapshot and the latest artifact can be fetched on demand.
type Scheduler interface {
	Schedule(inv domain.Invoice)
	Flush() (*export.Artifact, error)
	Status() export.Status
}

// EditorService owns the live invoice. It applies reducer operations,
// persists every change and feeds the export scheduler.
type EditorService interface {
	// Open loads the saved invoice, or the built-in template when nothing
	// usable is stored
	Open(ctx context.Context) (domain.Invoice, error)

	// Current returns the live invoice
	Current() domain.Invoice

	// Apply runs op against the live invoice. The updated invoice is returned
	// even when persisting it fails.
	Apply(ctx context.Context, op domain.Op) (domain.Invoice, error)

	// Reset deletes the saved snapshot and restores the template
	Reset(ctx context.Context) (domain.Invoice, error)

	// Export returns the PDF of the latest snapshot, building it if needed
	Export() (*export.Artifact, error)

	// ExportStatus reports the export scheduler state
	ExportStatus() export.Status
}

// Options control how the editor opens an invoice
type Options struct {
	NumberPrefix string
	Renumber     bool // assign a fresh invoice number on open
	Now          func() time.Time
}

type editorService struct {
	store     repository.InvoiceStore
	scheduler Scheduler
	opts      Options

	mu  sync.Mutex
	inv domain.Invoice
}

// NewEditorService creates a new editor service
func NewEditorService(store repository.InvoiceStore, scheduler Scheduler, opts Options) EditorService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &editorService{
		store:     store,
		scheduler: scheduler,
		opts:      opts,
		inv:       domain.DefaultInvoice(),
	}
}

func (s *editorService) Open(ctx context.Context) (domain.Invoice, error) {
	inv := domain.DefaultInvoice()
	saved, err := s.store.Load(ctx)
	switch {
	case err == nil:
		inv = *saved
	case errors.Is(err, repository.ErrNoSnapshot):
		slog.Info("no saved invoice, starting from template")
	default:
		return inv, fmt.Errorf("failed to open invoice: %w", err)
	}

	if s.opts.Renumber {
		inv.InvoiceNumber = domain.NewInvoiceNumber(s.opts.NumberPrefix, s.opts.Now())
	}

	s.mu.Lock()
	s.inv = inv
	s.mu.Unlock()

	if s.opts.Renumber {
		s.persist(ctx, inv)
	}
	s.scheduler.Schedule(inv)
	return inv.Clone(), nil
}

func (s *editorService) Current() domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.Clone()
}

func (s *editorService) Apply(ctx context.Context, op domain.Op) (domain.Invoice, error) {
	s.mu.Lock()
	if op == nil {
		inv := s.inv.Clone()
		s.mu.Unlock()
		return inv, nil
	}
	s.inv = domain.Reduce(s.inv, op)
	inv := s.inv.Clone()
	s.mu.Unlock()

	err := s.persist(ctx, inv)
	s.scheduler.Schedule(inv)
	return inv, err
}

func (s *editorService) Reset(ctx context.Context) (domain.Invoice, error) {
	if err := s.store.Delete(ctx); err != nil {
		return s.Current(), err
	}
	inv := domain.DefaultInvoice()
	s.mu.Lock()
	s.inv = inv
	s.mu.Unlock()
	s.scheduler.Schedule(inv)
	return inv.Clone(), nil
}

func (s *editorService) Export() (*export.Artifact, error) {
	return s.scheduler.Flush()
}

func (s *editorService) ExportStatus() export.Status {
	return s.scheduler.Status()
}

// persist writes inv. Failures are logged and returned for display; they
// never undo the edit.
func (s *editorService) persist(ctx context.Context, inv domain.Invoice) error {
	if err := s.store.Save(ctx, &inv); err != nil {
		slog.Warn("save snapshot", "err", err)
		return err
	}
	return nil
}
