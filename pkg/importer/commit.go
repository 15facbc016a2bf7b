package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"budgetctl/pkg/models"
)

// ErrNothingToImport is reported when the batch holds no rows at all.
var ErrNothingToImport = errors.New("nothing to import")

// RowError ties a human-readable reason to a 1-based row number.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ValidationError blocks the commit of the whole batch. No submission
// happens while any row is invalid.
type ValidationError struct {
	Rows []RowError
}

// maxListedReasons caps how many per-row reasons appear before the rest
// collapse into a count.
const maxListedReasons = 3

func (e *ValidationError) Error() string {
	var parts []string
	for i, re := range e.Rows {
		if i == maxListedReasons {
			parts = append(parts, fmt.Sprintf("+%d more", len(e.Rows)-maxListedReasons))
			break
		}
		parts = append(parts, re.String())
	}
	return "invalid rows: " + strings.Join(parts, "; ")
}

// Backend is the slice of the REST client the commit step needs.
type Backend interface {
	CreateOperation(ctx context.Context, op models.Operation) (models.Operation, error)
	ClassifyUncategorized(ctx context.Context) (int, error)
}

// Outcome is the final per-batch report: independent success and failure
// tallies plus the backend's transfer reclassification count.
type Outcome struct {
	Attempted    int
	Submitted    int
	Failed       int
	Skipped      int // rows not attempted because the context was cancelled
	Reclassified int
	Errors       []RowError // per-row submission failures
}

// ValidateRow applies the schema check to one row: amount strictly
// positive, date non-empty, account present, type one of the two allowed
// values. Returns the list of failure reasons, empty for a valid row.
func ValidateRow(r ResolvedRow) []string {
	var reasons []string
	if r.Amount <= 0 {
		reasons = append(reasons, "amount must be positive")
	}
	if strings.TrimSpace(r.Date) == "" {
		reasons = append(reasons, "date is empty")
	}
	if r.AccountID <= 0 {
		reasons = append(reasons, "account not selected")
	}
	if r.Type != models.TypeIncome && r.Type != models.TypeExpense {
		reasons = append(reasons, fmt.Sprintf("unknown operation type %q", r.Type))
	}
	return reasons
}

// Validate partitions the batch. It returns nil only when every row passes
// the schema check; otherwise the commit is blocked entirely.
// ErrNothingToImport covers only the empty batch. A batch where every row
// is invalid reports the per-row ValidationError instead, so the caller
// still sees what to fix.
func Validate(b *Batch) error {
	if b.Len() == 0 {
		return ErrNothingToImport
	}
	var verr ValidationError
	for i, r := range b.Rows() {
		for _, reason := range ValidateRow(r) {
			verr.Rows = append(verr.Rows, RowError{Row: i + 1, Reason: reason})
		}
	}
	if len(verr.Rows) > 0 {
		return &verr
	}
	return nil
}

// Operation converts a resolved row into the backend creation payload.
func (r ResolvedRow) Operation() models.Operation {
	return models.Operation{
		AssetID:       r.AccountID,
		Amount:        r.Amount,
		Description:   r.Description,
		CategoryID:    r.CategoryID,
		OperationType: r.Type,
		OperationDate: r.Date,
	}
}

// Commit validates the batch and, only when every row is valid, submits
// the rows one at a time in source order. A single row's backend failure
// does not abort the rest; success and failure are tallied independently.
// Cancelling ctx stops the loop between rows and the remainder is counted
// as skipped. After submission the backend's classify-uncategorized pass
// runs and its count is reported.
func Commit(ctx context.Context, b *Batch, backend Backend, logger *log.Logger) (Outcome, error) {
	if err := Validate(b); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Attempted: b.Len()}
	for i, r := range b.Rows() {
		if err := ctx.Err(); err != nil {
			out.Skipped = out.Attempted - out.Submitted - out.Failed
			logger.Warn("import cancelled", "submitted", out.Submitted, "skipped", out.Skipped)
			return out, err
		}
		if _, err := backend.CreateOperation(ctx, r.Operation()); err != nil {
			out.Failed++
			out.Errors = append(out.Errors, RowError{Row: i + 1, Reason: err.Error()})
			logger.Warn("row submission failed", "row", i+1, "error", err)
			continue
		}
		out.Submitted++
	}

	count, err := backend.ClassifyUncategorized(ctx)
	if err != nil {
		// Non-fatal: the operations are already created.
		logger.Warn("transfer classification failed", "error", err)
	} else {
		out.Reclassified = count
	}

	logger.Info("import finished",
		"attempted", out.Attempted,
		"submitted", out.Submitted,
		"failed", out.Failed,
		"reclassified", out.Reclassified)
	return out, nil
}
