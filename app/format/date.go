package format

import (
	"strings"
	"time"

	"planillas/app/record"
)

// Missing is shown for empty detail values
const Missing = "-"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date renders epoch milliseconds or an ISO date as dd-mm-yyyy in UTC.
// Falsy values render as Missing and unparsable text is returned as is.
func Date(v record.Value) string {
	if v.IsFalsy() {
		return Missing
	}
	if ms, ok := v.Float(); ok {
		return time.UnixMilli(int64(ms)).UTC().Format("02-01-2006")
	}
	s := strings.TrimSpace(v.Text())
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("02-01-2006")
		}
	}
	return v.Text()
}
