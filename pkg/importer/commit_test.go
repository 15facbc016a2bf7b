package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"budgetctl/pkg/models"
)

type fakeBackend struct {
	created    []models.Operation
	failRows   map[int]bool // 1-based create calls that fail
	classified int
	calls      int
}

func (f *fakeBackend) CreateOperation(_ context.Context, op models.Operation) (models.Operation, error) {
	f.calls++
	if f.failRows[f.calls] {
		return models.Operation{}, errors.New("backend unavailable")
	}
	op.ID = f.calls
	f.created = append(f.created, op)
	return op, nil
}

func (f *fakeBackend) ClassifyUncategorized(context.Context) (int, error) {
	return f.classified, nil
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func validBatch(t *testing.T, n int) *Batch {
	t.Helper()
	rs := testResolver()
	m := NewMapping()
	m.Assign(RoleAmount, 0)
	m.Assign(RoleDate, 1)
	m.Assign(RoleSourceAccount, 2)

	doc := &Document{Headers: []string{"Kwota", "Data", "Konto"}}
	for i := 0; i < n; i++ {
		doc.Rows = append(doc.Rows, Row{fmt.Sprintf("%d0", i+1), "2025-01-01", "ING"})
	}
	return NewBatch(doc, m, rs)
}

func TestValidateBlocksWholeBatch(t *testing.T) {
	b := validBatch(t, 5)
	if err := b.SetAmount(2, 0); err != nil {
		t.Fatal(err)
	}

	err := Validate(b)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Rows) != 1 || verr.Rows[0].Row != 3 {
		t.Errorf("expected single error on row 3, got %+v", verr.Rows)
	}

	// Validation failure means zero backend calls.
	backend := &fakeBackend{}
	if _, err := Commit(context.Background(), b, backend, testLogger()); err == nil {
		t.Fatal("expected commit to fail validation")
	}
	if backend.calls != 0 {
		t.Errorf("no operations may be created for an invalid batch, got %d calls", backend.calls)
	}
}

func TestValidationErrorCollapsesReasons(t *testing.T) {
	verr := &ValidationError{Rows: []RowError{
		{1, "amount must be positive"},
		{2, "date is empty"},
		{3, "account not selected"},
		{4, "amount must be positive"},
		{5, "date is empty"},
	}}
	msg := verr.Error()
	if !strings.Contains(msg, "+2 more") {
		t.Errorf("expected collapsed tail, got %q", msg)
	}
	if strings.Contains(msg, "row 4") {
		t.Errorf("reasons past the cap must not be listed: %q", msg)
	}
}

func TestValidateEmptyBatch(t *testing.T) {
	b := validBatch(t, 0)
	if err := Validate(b); !errors.Is(err, ErrNothingToImport) {
		t.Errorf("expected ErrNothingToImport, got %v", err)
	}
}

func TestValidateAllRowsInvalid(t *testing.T) {
	b := validBatch(t, 2)
	for i := 0; i < b.Len(); i++ {
		if err := b.SetAmount(i, 0); err != nil {
			t.Fatal(err)
		}
	}

	// Every row failing is still a ValidationError, not the empty-batch
	// condition.
	err := Validate(b)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if errors.Is(err, ErrNothingToImport) {
		t.Error("all-invalid batch must not report ErrNothingToImport")
	}
	if len(verr.Rows) != 2 {
		t.Errorf("expected 2 row errors, got %+v", verr.Rows)
	}
}

func TestCommitPartialFailure(t *testing.T) {
	b := validBatch(t, 10)
	backend := &fakeBackend{failRows: map[int]bool{4: true}, classified: 2}

	out, err := Commit(context.Background(), b, backend, testLogger())
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if out.Attempted != 10 || out.Submitted != 9 || out.Failed != 1 {
		t.Errorf("expected 10/9/1, got %d/%d/%d", out.Attempted, out.Submitted, out.Failed)
	}
	if len(out.Errors) != 1 || out.Errors[0].Row != 4 {
		t.Errorf("expected failure recorded for row 4, got %+v", out.Errors)
	}
	if out.Reclassified != 2 {
		t.Errorf("expected 2 reclassified transfers, got %d", out.Reclassified)
	}
}

func TestCommitSubmitsInOrder(t *testing.T) {
	b := validBatch(t, 3)
	backend := &fakeBackend{}

	if _, err := Commit(context.Background(), b, backend, testLogger()); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if len(backend.created) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(backend.created))
	}
	for i, op := range backend.created {
		want := float64((i + 1) * 10)
		if op.Amount != want {
			t.Errorf("operation %d out of order: amount %v, want %v", i, op.Amount, want)
		}
		if op.AssetID != 1 {
			t.Errorf("operation %d lost its account: %d", i, op.AssetID)
		}
	}
}

func TestCommitCancellation(t *testing.T) {
	b := validBatch(t, 5)
	backend := &fakeBackend{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := Commit(ctx, b, backend, testLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out.Skipped != 5 || out.Submitted != 0 {
		t.Errorf("expected all rows skipped, got %+v", out)
	}
	if backend.calls != 0 {
		t.Errorf("no creates expected after cancellation, got %d", backend.calls)
	}
}
