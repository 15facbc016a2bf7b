package importer

import (
	"strconv"
	"strings"
	"time"

	"budgetctl/pkg/i18n"
	"budgetctl/pkg/models"
)

// Field names an editable cell of a resolved row. Manual edits are tracked
// per field so re-resolution never clobbers user intent.
type Field string

const (
	FieldAmount      Field = "amount"
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldType        Field = "type"
	FieldAccount     Field = "account"
	FieldCategory    Field = "category"
)

// ResolvedRow is a raw row translated into a candidate operation. Raw and
// derived data live in separate fields; Overrides records which fields the
// user edited directly.
type ResolvedRow struct {
	Amount      float64
	Date        string // YYYY-MM-DD
	Description string
	Type        string // models.TypeIncome | models.TypeExpense
	AccountID   int    // 0 = unresolved, forces manual selection
	CategoryID  int    // 0 = unresolved

	Raw       Row
	Overrides map[Field]bool
}

// Overridden reports whether the user manually edited the given field.
func (r *ResolvedRow) Overridden(f Field) bool {
	return r.Overrides[f]
}

func (r *ResolvedRow) setOverride(f Field) {
	if r.Overrides == nil {
		r.Overrides = make(map[Field]bool)
	}
	r.Overrides[f] = true
}

// RawCell returns the original cell text behind a field, for display as
// helper text in the preview grid.
func (r *ResolvedRow) RawCell(m Mapping, f Field) string {
	switch f {
	case FieldAmount:
		return r.Raw.Get(m.Columns.Amount)
	case FieldDate:
		return r.Raw.Get(m.Columns.Date)
	case FieldDescription:
		return r.Raw.Get(m.Columns.Description)
	case FieldType:
		return r.Raw.Get(m.Columns.OperationType)
	case FieldAccount:
		return r.Raw.Get(m.Columns.SourceAccount)
	case FieldCategory:
		return r.Raw.Get(m.Columns.Category)
	}
	return ""
}

// Resolver converts raw rows into candidate operations against read-only
// account and category snapshots.
type Resolver struct {
	Accounts   []models.Account
	Categories []models.Category
	Lang       i18n.Lang
	Now        func() time.Time // defaults to time.Now
}

// Resolve derives a ResolvedRow from a raw row and the column mapping.
// When prev is non-nil its manual overrides are preserved: only fields the
// user has not touched are recomputed, which makes resolution idempotent
// and re-entrant.
func (rs *Resolver) Resolve(row Row, m Mapping, prev *ResolvedRow) ResolvedRow {
	out := ResolvedRow{Raw: row}
	if prev != nil {
		out = *prev
		out.Raw = row
	}

	if !out.Overridden(FieldAmount) {
		out.Amount = ParseAmount(row.Get(m.Columns.Amount))
	}
	if !out.Overridden(FieldDate) {
		out.Date = ParseDate(row.Get(m.Columns.Date), m.DateFormat, rs.Now)
	}
	if !out.Overridden(FieldDescription) {
		out.Description = row.Get(m.Columns.Description)
	}
	if !out.Overridden(FieldAccount) {
		out.AccountID = rs.resolveAccount(row.Get(m.Columns.SourceAccount))
	}
	if !out.Overridden(FieldCategory) {
		out.CategoryID = rs.resolveCategory(row.Get(m.Columns.Category))
	}
	if !out.Overridden(FieldType) {
		out.Type = rs.resolveType(row, m, out.Amount)
	}
	return out
}

// ParseAmount extracts a decimal amount from free-form cell text. Every
// character except digits, '.', ',' and '-' is stripped, ',' becomes '.',
// and an unparseable result defaults to 0. The sign is kept as parsed.
func ParseAmount(cell string) float64 {
	var b strings.Builder
	for _, r := range cell {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			b.WriteRune(r)
		}
	}
	s := strings.ReplaceAll(b.String(), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func (rs *Resolver) resolveAccount(cell string) int {
	names := make([]string, len(rs.Accounts))
	for i, a := range rs.Accounts {
		names[i] = a.Name
	}
	idx := matchName(cell, names)
	if idx < 0 {
		return 0
	}
	return rs.Accounts[idx].ID
}

func (rs *Resolver) resolveCategory(cell string) int {
	names := make([]string, len(rs.Categories))
	for i, c := range rs.Categories {
		names[i] = c.Name
	}
	idx := matchName(cell, names)
	if idx < 0 {
		return 0
	}
	return rs.Categories[idx].ID
}

// matchName finds the reference entry for a free-text cell. Exact
// case-insensitive matches win outright; otherwise a bidirectional
// substring pass runs (name contains cell, or cell contains name), where
// the longest candidate name wins and remaining ties keep list order.
// Returns -1 when nothing matches.
func matchName(cell string, names []string) int {
	needle := strings.ToLower(strings.TrimSpace(cell))
	if needle == "" {
		return -1
	}

	for i, name := range names {
		if strings.ToLower(strings.TrimSpace(name)) == needle {
			return i
		}
	}

	best := -1
	bestLen := 0
	for i, name := range names {
		candidate := strings.ToLower(strings.TrimSpace(name))
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			if len(candidate) > bestLen {
				best = i
				bestLen = len(candidate)
			}
		}
	}
	return best
}

// resolveType classifies the operation. A mapped type column is consulted
// first (income when it carries the income term, localized or not);
// without one the amount sign decides. The sign itself stays on the
// amount.
func (rs *Resolver) resolveType(row Row, m Mapping, amount float64) string {
	if m.Columns.OperationType != Unmapped {
		if i18n.IsIncomeTerm(rs.Lang, row.Get(m.Columns.OperationType)) {
			return models.TypeIncome
		}
		return models.TypeExpense
	}
	if amount < 0 {
		return models.TypeExpense
	}
	return models.TypeIncome
}
