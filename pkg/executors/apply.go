package executors

import (
	"context"
	"errors"
	"fmt"

	"budgetctl/pkg/importer"
)

// Apply validates and commits the batch against the backend, then prints
// a per-row result and the final tally. Validation failure aborts before
// any operation is created.
func (e *Executor) Apply(ctx context.Context, b *importer.Batch) (importer.Outcome, error) {
	e.logger.Debug("applying batch", "rows", b.Len())

	out, err := importer.Commit(ctx, b, e.api, e.logger)
	if err != nil {
		var verr *importer.ValidationError
		if errors.As(err, &verr) {
			fmt.Println(invalidStyle.Render("Apply blocked: " + verr.Error()))
		}
		return out, err
	}

	for _, re := range out.Errors {
		fmt.Println(invalidStyle.Render(fmt.Sprintf("! row %d failed: %s", re.Row, re.Reason)))
	}

	summary := fmt.Sprintf("Apply: %d created, %d failed", out.Submitted, out.Failed)
	if out.Reclassified > 0 {
		summary += fmt.Sprintf(", %d reclassified as transfers", out.Reclassified)
	}
	if out.Failed == 0 {
		fmt.Println(createStyle.Render(summary))
	} else {
		fmt.Println(invalidStyle.Render(summary))
	}
	return out, nil
}
