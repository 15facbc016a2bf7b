package importer

import (
	"fmt"
	"regexp"
	"time"

	"budgetctl/pkg/models"
)

// Unmapped marks a semantic role with no assigned column.
const Unmapped = -1

// Role names a semantic operation field a CSV column can be bound to.
type Role string

const (
	RoleAmount        Role = "amount"
	RoleDate          Role = "date"
	RoleDescription   Role = "description"
	RoleSourceAccount Role = "source_account"
	RoleCategory      Role = "category"
	RoleOperationType Role = "operation_type"
)

// Mapping assigns header indices to semantic roles plus the date format
// used to interpret the date column. Amount and date are the only
// mandatory roles.
type Mapping struct {
	Columns    models.RoleMapping
	DateFormat string
}

// NewMapping returns a mapping with every role unassigned.
func NewMapping() Mapping {
	return Mapping{
		Columns:    models.UnmappedRoles(),
		DateFormat: DateFormatISO,
	}
}

// Complete reports whether the mapping allows advancing past the mapping
// step: amount and date must both be assigned.
func (m Mapping) Complete() bool {
	return m.Columns.Amount != Unmapped && m.Columns.Date != Unmapped
}

// Assign binds a role to a header index (or Unmapped to clear it).
func (m *Mapping) Assign(role Role, index int) error {
	switch role {
	case RoleAmount:
		m.Columns.Amount = index
	case RoleDate:
		m.Columns.Date = index
	case RoleDescription:
		m.Columns.Description = index
	case RoleSourceAccount:
		m.Columns.SourceAccount = index
	case RoleCategory:
		m.Columns.Category = index
	case RoleOperationType:
		m.Columns.OperationType = index
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	return nil
}

// FromTemplate overwrites the in-progress mapping with a stored one,
// verbatim.
func (m *Mapping) FromTemplate(tpl models.ImportTemplate) {
	m.Columns = tpl.TemplateData.ColumnMapping
	if tpl.TemplateData.DateFormat != "" {
		m.DateFormat = tpl.TemplateData.DateFormat
	}
}

// Template packages the mapping for backend storage under the given name.
func (m Mapping) Template(name string) models.ImportTemplate {
	return models.ImportTemplate{
		Name: name,
		TemplateData: models.TemplateData{
			ColumnMapping: m.Columns,
			DateFormat:    m.DateFormat,
		},
	}
}

// Supported date-format tokens.
const (
	DateFormatISO      = "YYYY-MM-DD"
	DateFormatDMYSlash = "DD/MM/YYYY"
	DateFormatMDYSlash = "MM/DD/YYYY"
	DateFormatDMYDot   = "DD.MM.YYYY"
	DateFormatYMDSlash = "YYYY/MM/DD"
)

// dateFormats maps each token to an exact positional pattern and the Go
// layout used to parse a matching string.
var dateFormats = map[string]struct {
	re     *regexp.Regexp
	layout string
}{
	DateFormatISO:      {regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02"},
	DateFormatDMYSlash: {regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), "02/01/2006"},
	DateFormatMDYSlash: {regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), "01/02/2006"},
	DateFormatDMYDot:   {regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`), "02.01.2006"},
	DateFormatYMDSlash: {regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), "2006/01/02"},
}

// DateFormats lists the supported tokens in presentation order.
func DateFormats() []string {
	return []string{
		DateFormatISO,
		DateFormatDMYSlash,
		DateFormatMDYSlash,
		DateFormatDMYDot,
		DateFormatYMDSlash,
	}
}

// genericLayouts is the fallback chain tried when the cell does not match
// the selected token.
var genericLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02.01.2006",
	"2006-01-02T15:04:05Z07:00",
	"02-01-2006",
}

// ParseDate interprets cell according to the selected format token, falling
// back to generic parsing and finally to the current date. The result is
// always normalized to YYYY-MM-DD.
func ParseDate(cell, format string, now func() time.Time) string {
	cell = normalizeCell(cell)
	if f, ok := dateFormats[format]; ok && f.re.MatchString(cell) {
		if t, err := time.Parse(f.layout, cell); err == nil {
			return t.Format("2006-01-02")
		}
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if now == nil {
		now = time.Now
	}
	return now().Format("2006-01-02")
}
