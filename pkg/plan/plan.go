package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ColumnSpec mirrors the mapping roles by header index. -1 leaves a role
// unassigned.
type ColumnSpec struct {
	Amount        int `yaml:"amount"`
	Date          int `yaml:"date"`
	Description   int `yaml:"description"`
	SourceAccount int `yaml:"source_account"`
	Category      int `yaml:"category"`
	OperationType int `yaml:"operation_type"`
}

// UnmarshalYAML defaults omitted roles to -1 so a column index of 0 can
// still be expressed explicitly.
func (c *ColumnSpec) UnmarshalYAML(value *yaml.Node) error {
	type raw ColumnSpec
	r := raw{Amount: -1, Date: -1, Description: -1, SourceAccount: -1, Category: -1, OperationType: -1}
	if err := value.Decode(&r); err != nil {
		return err
	}
	*c = ColumnSpec(r)
	return nil
}

// Import describes one CSV file to bring in. Either a stored template name
// or an inline mapping must be given.
type Import struct {
	File           string      `yaml:"file"`
	Template       string      `yaml:"template"`
	Mapping        *ColumnSpec `yaml:"mapping"`
	DateFormat     string      `yaml:"date_format"`
	DefaultAccount string      `yaml:"default_account"`
}

// Plan is a YAML-described batch of imports against one backend.
type Plan struct {
	Server  string   `yaml:"server"`
	UserID  int      `yaml:"user_id"`
	Imports []Import `yaml:"imports"`
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Imports) == 0 {
		return nil, fmt.Errorf("plan has no imports")
	}
	for i, imp := range p.Imports {
		if imp.File == "" {
			return nil, fmt.Errorf("import %d has no file", i+1)
		}
		if imp.Template == "" && imp.Mapping == nil {
			return nil, fmt.Errorf("import %d needs a template or an inline mapping", i+1)
		}
	}
	return &p, nil
}

func (p *Plan) Print() {
	fmt.Printf("server: %s user: %d\n", p.Server, p.UserID)
	for i, imp := range p.Imports {
		src := imp.Template
		if src == "" {
			src = "inline mapping"
		}
		fmt.Printf("[%d] file=%s mapping=%s\n", i+1, imp.File, src)
	}
}
