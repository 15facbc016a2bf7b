package stats

import (
	"math"
	"testing"

	"budgetctl/pkg/models"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize(t *testing.T) {
	ops := []models.Operation{
		{Amount: 3000, OperationType: models.TypeIncome, CategoryID: 1},
		{Amount: 200, OperationType: models.TypeExpense, CategoryID: 2},
		{Amount: -150, OperationType: models.TypeExpense, CategoryID: 2}, // sign ignored
		{Amount: 50, OperationType: models.TypeExpense, CategoryID: 3},
	}

	s := Summarize(ops)
	if !almost(s.Income, 3000) || !almost(s.Expenses, 400) || !almost(s.Net, 2600) {
		t.Errorf("unexpected summary: %+v", s)
	}
	if !almost(s.ByCategory[2], 350) {
		t.Errorf("category 2 total: %v", s.ByCategory[2])
	}
	// Income never lands in the expense breakdown.
	if _, ok := s.ByCategory[1]; ok {
		t.Error("income category must not appear in ByCategory")
	}
}

func TestTopCategories(t *testing.T) {
	s := MonthSummary{ByCategory: map[int]float64{1: 100, 2: 300, 3: 100, 4: 50}}
	categories := []models.Category{
		{ID: 1, Name: "Groceries"},
		{ID: 2, Name: "Rent"},
		{ID: 3, Name: "Transport"},
	}

	top := TopCategories(s, categories, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].Name != "Rent" {
		t.Errorf("largest first, got %q", top[0].Name)
	}
	// Equal totals keep id order.
	if top[1].CategoryID != 1 || top[2].CategoryID != 3 {
		t.Errorf("tie order broken: %+v", top)
	}
}

func TestNetWorth(t *testing.T) {
	assets := []models.Asset{
		{Balance: 1000, Type: models.AssetLiquid},
		{Balance: 5000, Type: models.AssetInvestment},
		{Balance: 2000, Type: models.AssetLiability}, // stored positive
		{Balance: -500, Type: models.AssetLiability}, // stored negative
	}
	if got := NetWorth(assets); !almost(got, 3500) {
		t.Errorf("NetWorth = %v, want 3500", got)
	}

	totals := AssetTotals(assets)
	if !almost(totals[models.AssetLiability], -2500) {
		t.Errorf("liability total = %v, want -2500", totals[models.AssetLiability])
	}
	if !almost(totals[models.AssetLiquid], 1000) {
		t.Errorf("liquid total = %v, want 1000", totals[models.AssetLiquid])
	}
}

func TestBudgetUsage(t *testing.T) {
	plan := models.BudgetPlan{Entries: []models.BudgetEntry{
		{CategoryID: 1, Planned: 200},
		{CategoryID: 2, Planned: 100},
	}}
	s := MonthSummary{ByCategory: map[int]float64{1: 250, 3: 40}}

	lines := BudgetUsage(plan, s)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !lines[0].Overspent() {
		t.Error("category 1 should be overspent")
	}
	if lines[1].Overspent() {
		t.Error("category 2 has no spending")
	}
	// Unplanned spending shows up with a zero plan.
	if lines[2].CategoryID != 3 || lines[2].Planned != 0 || !lines[2].Overspent() {
		t.Errorf("unplanned category line wrong: %+v", lines[2])
	}
}
