package plan

import (
	"os"
	"path/filepath"
	"testing"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writePlan(t, `
server: http://localhost:8080
user_id: 7
imports:
  - file: january.csv
    template: my bank
  - file: february.csv
    date_format: DD/MM/YYYY
    default_account: ING
    mapping:
      amount: 2
      date: 0
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.UserID != 7 || len(p.Imports) != 2 {
		t.Fatalf("unexpected plan: %+v", p)
	}
	if p.Imports[0].Template != "my bank" {
		t.Errorf("template not read: %+v", p.Imports[0])
	}

	m := p.Imports[1].Mapping
	if m == nil {
		t.Fatal("inline mapping not read")
	}
	if m.Amount != 2 || m.Date != 0 {
		t.Errorf("mapped columns wrong: %+v", m)
	}
	// Omitted roles default to unassigned, not column 0.
	if m.Description != -1 || m.SourceAccount != -1 {
		t.Errorf("omitted roles should be -1: %+v", m)
	}
}

func TestLoadRejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no imports", "server: http://x\nimports: []\n"},
		{"missing file", "imports:\n  - template: t\n"},
		{"no mapping source", "imports:\n  - file: a.csv\n"},
		{"bad yaml", "imports: [\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writePlan(t, tc.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
