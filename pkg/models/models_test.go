package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func validOperation() Operation {
	return Operation{
		AssetID:       1,
		Amount:        100,
		OperationType: TypeExpense,
		OperationDate: "2025-01-15",
	}
}

func TestOperationValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Operation)
		want   error
	}{
		{"valid", func(*Operation) {}, nil},
		{"zero amount", func(o *Operation) { o.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(o *Operation) { o.Amount = -5 }, ErrInvalidAmount},
		{"empty date", func(o *Operation) { o.OperationDate = "" }, ErrEmptyDate},
		{"malformed date", func(o *Operation) { o.OperationDate = "15/01/2025" }, ErrEmptyDate},
		{"missing asset", func(o *Operation) { o.AssetID = 0 }, ErrMissingAccount},
		{"bad type", func(o *Operation) { o.OperationType = "transfer" }, ErrInvalidType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			op := validOperation()
			tc.mutate(&op)
			if err := op.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestOperationSplitValidation(t *testing.T) {
	op := validOperation()
	op.SplitItems = []SplitItem{
		{CategoryID: 1, Amount: 60},
		{CategoryID: 2, Amount: 40},
	}
	if err := op.Validate(); err != nil {
		t.Errorf("matching split should pass: %v", err)
	}

	// Drift within tolerance is accepted.
	op.SplitItems[1].Amount = 39.995
	if err := op.Validate(); err != nil {
		t.Errorf("split within tolerance should pass: %v", err)
	}

	op.SplitItems[1].Amount = 30
	if err := op.Validate(); !errors.Is(err, ErrSplitMismatch) {
		t.Errorf("expected ErrSplitMismatch, got %v", err)
	}

	op.SplitItems[1].Amount = -10
	if err := op.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for negative split, got %v", err)
	}
}

func TestRecurringOperationValidate(t *testing.T) {
	r := RecurringOperation{Template: validOperation(), Interval: "monthly", NextDate: "2025-02-01"}
	if err := r.Validate(); err != nil {
		t.Errorf("valid recurring rejected: %v", err)
	}

	r.Interval = "fortnightly"
	if err := r.Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestTransferValidate(t *testing.T) {
	valid := Transfer{FromAssetID: 1, ToAssetID: 2, Amount: 50, Date: "2025-01-01"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid transfer rejected: %v", err)
	}

	same := valid
	same.ToAssetID = 1
	if err := same.Validate(); !errors.Is(err, ErrSameAsset) {
		t.Errorf("expected ErrSameAsset, got %v", err)
	}
}

func TestAssetValidate(t *testing.T) {
	if err := (Asset{Name: "Car", Type: AssetVehicle}).Validate(); err != nil {
		t.Errorf("valid asset rejected: %v", err)
	}
	if err := (Asset{Type: AssetLiquid}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Error("expected ErrEmptyName")
	}
	if err := (Asset{Name: "X", Type: "crypto"}).Validate(); err == nil {
		t.Error("expected invalid asset type error")
	}
}

func TestGoalProgress(t *testing.T) {
	cases := []struct {
		current, target, want float64
	}{
		{50, 200, 0.25},
		{200, 200, 1},
		{300, 200, 1}, // capped
		{-10, 200, 0},
		{10, 0, 0},
	}
	for _, tc := range cases {
		g := Goal{Current: tc.current, Target: tc.target}
		if got := g.Progress(); got != tc.want {
			t.Errorf("Progress(%v/%v) = %v, want %v", tc.current, tc.target, got, tc.want)
		}
	}
}

func TestBudgetPlanValidate(t *testing.T) {
	p := BudgetPlan{Year: 2025, Month: 3, Entries: []BudgetEntry{{CategoryID: 1, Planned: 100}}}
	if err := p.Validate(); err != nil {
		t.Errorf("valid plan rejected: %v", err)
	}

	p.Month = 13
	if err := p.Validate(); err == nil {
		t.Error("expected invalid month error")
	}

	p.Month = 3
	p.Entries[0].Planned = -1
	if err := p.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Error("expected ErrInvalidAmount for negative planned amount")
	}
}

func TestRoleMappingDecodeDefaults(t *testing.T) {
	var m RoleMapping
	if err := json.Unmarshal([]byte(`{"amount":0,"date":1}`), &m); err != nil {
		t.Fatal(err)
	}
	if m.Amount != 0 || m.Date != 1 {
		t.Errorf("explicit roles lost: %+v", m)
	}
	for name, got := range map[string]int{
		"description":    m.Description,
		"source_account": m.SourceAccount,
		"category":       m.Category,
		"operation_type": m.OperationType,
	} {
		if got != -1 {
			t.Errorf("omitted %s decoded as %d, want -1", name, got)
		}
	}
}
