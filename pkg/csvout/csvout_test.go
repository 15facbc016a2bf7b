package csvout

import (
	"strings"
	"testing"
)

type row struct {
	date, desc, typ, account, category string
	amount                             float64
}

func (r row) Date() string        { return r.date }
func (r row) Description() string { return r.desc }
func (r row) Amount() float64     { return r.amount }
func (r row) Type() string        { return r.typ }
func (r row) Account() string     { return r.account }
func (r row) Category() string    { return r.category }

func TestCreate(t *testing.T) {
	rows := []row{
		{date: "2025-01-01", desc: "Groceries", amount: -123.456, typ: "expense", account: "ING", category: "Food"},
		{date: "2025-01-02", desc: "Salary", amount: 5000, typ: "income", account: "ING"},
	}

	out := string(Create(rows, nil))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Date;Description;Amount;Type;Account;Category" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "2025-01-01;Groceries;-123.46;expense;ING;Food" {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestCreateFilter(t *testing.T) {
	rows := []row{
		{date: "2025-01-01", amount: 10},
		{date: "2025-01-02", amount: 100},
	}

	out := string(Create(rows, func(r row) bool { return r.amount >= 50 }))
	if strings.Contains(out, "2025-01-01") {
		t.Error("filtered row must not appear")
	}
	if !strings.Contains(out, "2025-01-02") {
		t.Error("kept row missing")
	}
}

func TestCreateEscapesDelimiter(t *testing.T) {
	rows := []row{{date: "2025-01-01", desc: `cafe "aha"; lunch`, amount: 1}}

	out := string(Create(rows, nil))
	if !strings.Contains(out, `"cafe ""aha""; lunch"`) {
		t.Errorf("field not escaped: %q", out)
	}
}
