// Package stats computes read-only summaries over already-fetched backend
// records. Everything here is a pure function so callers can reuse it on
// any slice regardless of where it came from.
package stats

import (
	"sort"

	"budgetctl/pkg/models"
)

// MonthSummary aggregates operations of one month.
type MonthSummary struct {
	Income     float64
	Expenses   float64
	Net        float64
	ByCategory map[int]float64 // expense totals keyed by category id
}

// Summarize tallies income and expense totals. Amount signs are ignored;
// the operation type decides the bucket.
func Summarize(ops []models.Operation) MonthSummary {
	s := MonthSummary{ByCategory: make(map[int]float64)}
	for _, op := range ops {
		amount := op.Amount
		if amount < 0 {
			amount = -amount
		}
		switch op.OperationType {
		case models.TypeIncome:
			s.Income += amount
		case models.TypeExpense:
			s.Expenses += amount
			s.ByCategory[op.CategoryID] += amount
		}
	}
	s.Net = s.Income - s.Expenses
	return s
}

// CategoryTotal pairs a category with its expense total, for ranked output.
type CategoryTotal struct {
	CategoryID int
	Name       string
	Total      float64
}

// TopCategories ranks expense categories by total, largest first. Ties
// keep category id order so output is stable.
func TopCategories(s MonthSummary, categories []models.Category, n int) []CategoryTotal {
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	out := make([]CategoryTotal, 0, len(s.ByCategory))
	for id, total := range s.ByCategory {
		out = append(out, CategoryTotal{CategoryID: id, Name: names[id], Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// AssetTotals sums balances per asset type. Liabilities count negative no
// matter how the backend stored their sign.
func AssetTotals(assets []models.Asset) map[models.AssetType]float64 {
	totals := make(map[models.AssetType]float64)
	for _, a := range assets {
		v := a.Balance
		if a.Type == models.AssetLiability && v > 0 {
			v = -v
		}
		totals[a.Type] += v
	}
	return totals
}

// NetWorth is the sum over AssetTotals.
func NetWorth(assets []models.Asset) float64 {
	var total float64
	for _, v := range AssetTotals(assets) {
		total += v
	}
	return total
}

// BudgetUsage compares a month's plan against actual expense totals.
// Categories with spending but no planned amount are included with a zero
// plan.
func BudgetUsage(plan models.BudgetPlan, s MonthSummary) []BudgetLine {
	seen := make(map[int]bool, len(plan.Entries))
	var lines []BudgetLine
	for _, e := range plan.Entries {
		lines = append(lines, BudgetLine{
			CategoryID: e.CategoryID,
			Planned:    e.Planned,
			Spent:      s.ByCategory[e.CategoryID],
		})
		seen[e.CategoryID] = true
	}
	for id, spent := range s.ByCategory {
		if !seen[id] {
			lines = append(lines, BudgetLine{CategoryID: id, Spent: spent})
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].CategoryID < lines[j].CategoryID })
	return lines
}

// BudgetLine is one category row of the plan-vs-actual view.
type BudgetLine struct {
	CategoryID int
	Planned    float64
	Spent      float64
}

// Overspent reports whether spending exceeded the planned amount.
func (l BudgetLine) Overspent() bool {
	return l.Spent > l.Planned
}
