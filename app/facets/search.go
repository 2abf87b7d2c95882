package facets

import (
	"fmt"
	"strings"

	"planillas/app/record"
)

// SearchGroup is a free-text search box over the concatenation of fields
type SearchGroup struct {
	Key    string
	Label  string
	Fields []int
}

// Standard search groups of the payroll dashboards
var (
	NameSearch = SearchGroup{Key: "name", Label: "RUT o nombre", Fields: []int{record.FieldNationalID, record.FieldName}}
	RoleSearch = SearchGroup{Key: "role", Label: "Cargo", Fields: []int{record.FieldRoleIn, record.FieldRoleOut}}
)

// UnknownSearchError is returned for a search group that is not configured
type UnknownSearchError struct {
	Key string
}

func (e *UnknownSearchError) Error() string {
	return fmt.Sprintf("unknown search group %q", e.Key)
}

// Tokenize lower-cases a query and splits it on whitespace. An empty or
// blank query yields no tokens and imposes no constraint.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Haystack builds the lower-cased text a search group matches against.
// Falsy fields (absent, empty, zero) contribute an empty string.
func Haystack(row *record.Row, fields []int) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(' ')
		}
		v := row.Get(f)
		if !v.IsFalsy() {
			b.WriteString(v.Lower())
		}
	}
	return b.String()
}

// MatchTokens reports whether every token is a substring of haystack
func MatchTokens(haystack string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}
