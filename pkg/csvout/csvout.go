// Package csvout renders operations back out as semicolon-separated CSV,
// matching the import side's delimiter.
package csvout

import (
	"bytes"
	"fmt"
	"strings"
)

// Record is any row exportable to the operations CSV shape.
type Record interface {
	Date() string
	Description() string
	Amount() float64
	Type() string
	Account() string
	Category() string
}

type FilterFunc[T Record] func(T) bool

// Create renders records to CSV bytes, skipping those the filter rejects.
// A nil filter keeps everything.
func Create[T Record](records []T, filter FilterFunc[T]) []byte {
	var buf bytes.Buffer
	buf.WriteString("Date;Description;Amount;Type;Account;Category\n")
	for _, r := range records {
		if filter == nil || filter(r) {
			buf.WriteString(fmt.Sprintf("%s;%s;%.2f;%s;%s;%s\n",
				r.Date(),
				escape(r.Description()),
				r.Amount(),
				r.Type(),
				escape(r.Account()),
				escape(r.Category())))
		}
	}
	return buf.Bytes()
}

// escape quotes a field containing the delimiter or quotes.
func escape(s string) string {
	if strings.ContainsAny(s, ";\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
