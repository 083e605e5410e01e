package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/export"
	"github.com/andy/quotepad/internal/repository"
)

// mock implementations
type mockStore struct {
	saved   *domain.Invoice
	saves   int
	loadErr error
	saveErr error
	deleted bool
}

func (m *mockStore) Load(ctx context.Context) (*domain.Invoice, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return nil, repository.ErrNoSnapshot
	}
	inv := m.saved.Clone()
	return &inv, nil
}
func (m *mockStore) Save(ctx context.Context, inv *domain.Invoice) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	clone := inv.Clone()
	m.saved = &clone
	m.saves++
	return nil
}
func (m *mockStore) Delete(ctx context.Context) error {
	m.saved = nil
	m.deleted = true
	return nil
}
func (m *mockStore) Close() error { return nil }

type mockScheduler struct {
	scheduled []domain.Invoice
}

func (m *mockScheduler) Schedule(inv domain.Invoice) { m.scheduled = append(m.scheduled, inv) }
func (m *mockScheduler) Flush() (*export.Artifact, error) {
	if len(m.scheduled) == 0 {
		return nil, export.ErrNothingScheduled
	}
	last := m.scheduled[len(m.scheduled)-1]
	return &export.Artifact{FileName: export.FileName(last)}, nil
}
func (m *mockScheduler) Status() export.Status { return export.Status{} }

var fixedNow = func() time.Time { return time.Date(2024, time.January, 5, 15, 4, 5, 0, time.Local) }

func TestOpen_NoSnapshotUsesTemplate(t *testing.T) {
	store := &mockStore{}
	sched := &mockScheduler{}
	svc := NewEditorService(store, sched, Options{Now: fixedNow})

	inv, err := svc.Open(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(inv.ProductLines) != 2 || inv.SubTotalLabel != domain.DefaultInvoice().SubTotalLabel {
		t.Fatalf("expected template invoice, got %+v", inv)
	}
	if store.saves != 0 {
		t.Fatalf("expected no save without renumbering, got %d", store.saves)
	}
	if len(sched.scheduled) != 1 {
		t.Fatalf("expected initial export to be scheduled, got %d", len(sched.scheduled))
	}
}

func TestOpen_RenumbersAndPersists(t *testing.T) {
	saved := domain.DefaultInvoice()
	saved.ClientName = "陳大文"
	saved.InvoiceNumber = "G1"
	store := &mockStore{saved: &saved}
	svc := NewEditorService(store, &mockScheduler{}, Options{NumberPrefix: "G", Renumber: true, Now: fixedNow})

	inv, err := svc.Open(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inv.InvoiceNumber != "G20240105150405" {
		t.Fatalf("expected fresh number, got %s", inv.InvoiceNumber)
	}
	if inv.ClientName != "陳大文" {
		t.Fatal("expected saved fields to be kept")
	}
	if store.saved.InvoiceNumber != "G20240105150405" {
		t.Fatalf("expected renumbered snapshot to be saved, got %s", store.saved.InvoiceNumber)
	}
}

func TestOpen_StoreFailure(t *testing.T) {
	store := &mockStore{loadErr: errors.New("connection refused")}
	svc := NewEditorService(store, &mockScheduler{}, Options{})
	if _, err := svc.Open(context.Background()); err == nil {
		t.Fatal("expected store failure to surface")
	}
}

func TestApply_PersistsAndSchedules(t *testing.T) {
	store := &mockStore{}
	sched := &mockScheduler{}
	svc := NewEditorService(store, sched, Options{})
	ctx := context.Background()

	svc.Apply(ctx, domain.SetField{Name: "discountLabel", Value: "Discount (10%)"})
	svc.Apply(ctx, domain.UpdateLineItem{Index: 0, Field: domain.LineQuantity, Value: "2"})
	inv, err := svc.Apply(ctx, domain.UpdateLineItem{Index: 0, Field: domain.LineRate, Value: "50"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	totals := domain.ComputeTotals(inv)
	if domain.Money(totals.GrandTotal) != "90.00" {
		t.Fatalf("expected 90.00, got %s", domain.Money(totals.GrandTotal))
	}
	if store.saves != 3 || len(sched.scheduled) != 3 {
		t.Fatalf("expected 3 saves and schedules, got %d and %d", store.saves, len(sched.scheduled))
	}
	if sched.scheduled[2].ProductLines[0].Rate != "50" {
		t.Fatal("expected the scheduler to receive the latest snapshot")
	}
}

func TestApply_SaveFailureKeepsEdit(t *testing.T) {
	store := &mockStore{saveErr: errors.New("disk full")}
	sched := &mockScheduler{}
	svc := NewEditorService(store, sched, Options{})

	inv, err := svc.Apply(context.Background(), domain.SetField{Name: "clientName", Value: "李四"})
	if err == nil {
		t.Fatal("expected save error to be reported")
	}
	if inv.ClientName != "李四" || svc.Current().ClientName != "李四" {
		t.Fatal("expected edit to survive a failed save")
	}
	if len(sched.scheduled) != 1 {
		t.Fatal("expected export to be scheduled regardless of save failure")
	}
}

func TestApply_NilOp(t *testing.T) {
	store := &mockStore{}
	svc := NewEditorService(store, &mockScheduler{}, Options{})
	if _, err := svc.Apply(context.Background(), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.saves != 0 {
		t.Fatal("expected nil op to be ignored")
	}
}

func TestCurrentIsACopy(t *testing.T) {
	svc := NewEditorService(&mockStore{}, &mockScheduler{}, Options{})
	inv := svc.Current()
	inv.ProductLines[0].Description = "changed"
	if svc.Current().ProductLines[0].Description == "changed" {
		t.Fatal("expected Current to return a copy")
	}
}

func TestReset(t *testing.T) {
	saved := domain.DefaultInvoice()
	saved.ClientName = "陳大文"
	store := &mockStore{saved: &saved}
	svc := NewEditorService(store, &mockScheduler{}, Options{})
	ctx := context.Background()
	svc.Open(ctx)

	inv, err := svc.Reset(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !store.deleted || inv.ClientName != "" {
		t.Fatalf("expected snapshot deleted and template restored, got %+v", inv)
	}
}

func TestExport(t *testing.T) {
	svc := NewEditorService(&mockStore{}, &mockScheduler{}, Options{})
	if _, err := svc.Export(); !errors.Is(err, export.ErrNothingScheduled) {
		t.Fatalf("expected ErrNothingScheduled, got %v", err)
	}

	svc.Apply(context.Background(), domain.SetField{Name: "invoiceNumber", Value: "G7"})
	a, err := svc.Export()
	if err != nil {
		t.Fatalf("expected artifact, got %v", err)
	}
	if a.FileName != "發票G7.pdf" {
		t.Fatalf("unexpected file name %s", a.FileName)
	}
}
