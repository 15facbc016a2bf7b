package models

import "encoding/json"

// RoleMapping assigns a semantic role to a raw CSV column index. Negative
// means unmapped.
type RoleMapping struct {
	Amount        int `json:"amount"`
	Date          int `json:"date"`
	Description   int `json:"description"`
	SourceAccount int `json:"source_account"`
	Category      int `json:"category"`
	OperationType int `json:"operation_type"`
}

// UnmappedRoles returns a mapping with every role unassigned.
func UnmappedRoles() RoleMapping {
	return RoleMapping{Amount: -1, Date: -1, Description: -1, SourceAccount: -1, Category: -1, OperationType: -1}
}

// UnmarshalJSON defaults omitted roles to -1 so a column index of 0 can
// still be expressed explicitly.
func (m *RoleMapping) UnmarshalJSON(data []byte) error {
	type raw RoleMapping
	r := raw(UnmappedRoles())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*m = RoleMapping(r)
	return nil
}

// TemplateData is the stored body of an import template.
type TemplateData struct {
	ColumnMapping RoleMapping `json:"columnMapping"`
	DateFormat    string      `json:"dateFormat"`
}

// ImportTemplate is a named, user-owned column mapping persisted by the
// backend and loaded back verbatim on reuse.
type ImportTemplate struct {
	ID           int          `json:"id,omitempty"`
	UserID       int          `json:"user_id"`
	Name         string       `json:"name"`
	TemplateData TemplateData `json:"template_data"`
}

func (t ImportTemplate) Validate() error {
	if t.Name == "" {
		return ErrEmptyName
	}
	return nil
}
