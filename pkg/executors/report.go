package executors

// Row rendering shared by the plan preview and the apply summary. The
// reconciliation of a batch against the backend has three visible row
// states: valid rows that will be created, rows the user already edited
// by hand, and rows that still fail validation.

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"budgetctl/pkg/importer"
	"budgetctl/pkg/models"
)

var (
	createStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	editedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	helperStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// nameIndex resolves entity ids back to display names for the preview.
type nameIndex struct {
	accounts   map[int]string
	categories map[int]string
}

func buildNameIndex(accounts []models.Account, categories []models.Category) nameIndex {
	idx := nameIndex{
		accounts:   make(map[int]string, len(accounts)),
		categories: make(map[int]string, len(categories)),
	}
	for _, a := range accounts {
		idx.accounts[a.ID] = a.Name
	}
	for _, c := range categories {
		idx.categories[c.ID] = c.Name
	}
	return idx
}

func (idx nameIndex) account(id int) string {
	if name, ok := idx.accounts[id]; ok {
		return name
	}
	return "?"
}

func (idx nameIndex) category(id int) string {
	if name, ok := idx.categories[id]; ok {
		return name
	}
	return "-"
}

// rowLine renders one resolved row as a fixed-width preview line.
func rowLine(r importer.ResolvedRow, idx nameIndex) string {
	return fmt.Sprintf("%s | %-30s | %8.2f | %-7s | %-20s | %s",
		r.Date,
		truncate(r.Description, 30),
		r.Amount,
		r.Type,
		truncate(idx.account(r.AccountID), 20),
		idx.category(r.CategoryID))
}

// rawHint shows the original cells behind a row that needs attention.
func rawHint(r importer.ResolvedRow, m importer.Mapping) string {
	cells := []string{
		r.RawCell(m, importer.FieldDate),
		r.RawCell(m, importer.FieldDescription),
		r.RawCell(m, importer.FieldAmount),
		r.RawCell(m, importer.FieldAccount),
	}
	return "  raw: " + strings.Join(cells, " | ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// edited reports whether the user overrode any field of the row.
func edited(r importer.ResolvedRow) bool {
	return len(r.Overrides) > 0
}
