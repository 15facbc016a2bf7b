package i18n

import "strings"

// Lang is a supported UI language.
type Lang string

const (
	English Lang = "en"
	Polish  Lang = "pl"
)

// Default is used whenever the configured language is unknown.
const Default = English

// incomeTerms holds the per-language word the operation-type classifier
// looks for in a mapped type column, alongside the literal "income".
var incomeTerms = map[Lang]string{
	English: "income",
	Polish:  "przychód",
}

var messages = map[Lang]map[string]string{
	English: {
		"import.nothing":       "nothing to import",
		"import.invalid_rows":  "batch contains invalid rows",
		"import.done":          "import finished",
		"template.save_failed": "saving template failed",
		"template.load_failed": "loading templates failed",
		"preview.unresolved":   "needs manual selection",
	},
	Polish: {
		"import.nothing":       "brak danych do importu",
		"import.invalid_rows":  "partia zawiera błędne wiersze",
		"import.done":          "import zakończony",
		"template.save_failed": "zapis szablonu nie powiódł się",
		"template.load_failed": "odczyt szablonów nie powiódł się",
		"preview.unresolved":   "wymaga ręcznego wyboru",
	},
}

// Valid reports whether l is a supported language.
func Valid(l Lang) bool {
	_, ok := messages[l]
	return ok
}

// T returns the message for key in the given language, falling back to the
// default language and finally to the key itself.
func T(l Lang, key string) string {
	if m, ok := messages[l]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[Default][key]; ok {
		return s
	}
	return key
}

// IsIncomeTerm reports whether the cell text of a mapped operation-type
// column designates income. The check is substring based and matches both
// the English term and the localized one.
func IsIncomeTerm(l Lang, cell string) bool {
	lower := strings.ToLower(strings.TrimSpace(cell))
	if strings.Contains(lower, incomeTerms[Default]) {
		return true
	}
	if term, ok := incomeTerms[l]; ok && strings.Contains(lower, strings.ToLower(term)) {
		return true
	}
	return false
}
