package executors

import (
	"context"
	"fmt"

	"budgetctl/pkg/importer"
	"budgetctl/pkg/models"
)

// Plan prints a human-readable preview of what Apply would submit. It is a
// dry run: the backend is only read, never written. Each row is rendered
// with a status marker, invalid rows carry their raw cells as a hint.
func (e *Executor) Plan(b *importer.Batch, accounts []models.Account, categories []models.Category) error {
	e.logger.Debug("planning batch", "rows", b.Len())

	idx := buildNameIndex(accounts, categories)
	m := b.Mapping()

	var toCreate, invalid int
	for _, r := range b.Rows() {
		reasons := importer.ValidateRow(r)
		switch {
		case len(reasons) > 0:
			invalid++
			fmt.Println(invalidStyle.Render("! " + rowLine(r, idx)))
			fmt.Println(helperStyle.Render(rawHint(r, m) + "  (" + reasons[0] + ")"))
		case edited(r):
			toCreate++
			fmt.Println(editedStyle.Render("= " + rowLine(r, idx)))
		default:
			toCreate++
			fmt.Println(createStyle.Render("+ " + rowLine(r, idx)))
		}
	}

	if invalid > 0 {
		fmt.Printf("\nPlan: %d row(s) invalid, nothing will be imported until all rows pass\n", invalid)
		return nil
	}
	fmt.Printf("\nPlan: %d operation(s) will be created\n", toCreate)
	return nil
}

// Refs fetches the account and category snapshots the preview needs.
func (e *Executor) Refs(ctx context.Context) ([]models.Account, []models.Category, error) {
	accounts, err := e.api.Accounts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	categories, err := e.api.Categories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return accounts, categories, nil
}
