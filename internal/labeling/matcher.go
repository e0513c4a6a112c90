package labeling

import (
	"strings"

	"github.com/LCLAMEDIA/openorders/internal/model"
)

// matchFunc reports whether a configured pattern matches a row's field value.
type matchFunc func(value, pattern string) bool

// Matcher assigns customer labels from the configured mapping table. Matching
// behavior is keyed by field name: ProductNum uses code-prefix matching,
// OurRef uses code-reference matching, everything else is a plain
// case-insensitive substring test.
type Matcher struct {
	table      *model.CustomerMappingTable
	fieldOrder []string
	strategies map[string]matchFunc
}

// NewMatcher builds a matcher over a mapping table and the configured field
// order.
func NewMatcher(table *model.CustomerMappingTable, fieldOrder []string) *Matcher {
	return &Matcher{
		table:      table,
		fieldOrder: fieldOrder,
		strategies: map[string]matchFunc{
			model.ColProductNum: matchCodePrefix,
			model.ColOurRef:     matchCodeReference,
		},
	}
}

// Label returns the customer label for a record, or "" when nothing matches.
// Fields are tried in configured order and labels in table order; the first
// hit wins and ends all further matching for the row.
func (m *Matcher) Label(table *model.OrderTable, rec *model.OrderRecord) string {
	for _, field := range m.fieldOrder {
		match := m.strategies[field]
		if match == nil {
			match = matchSubstring
		}
		value := table.Field(rec, field)
		if strings.TrimSpace(value) == "" {
			continue
		}
		for _, label := range m.table.Labels() {
			for _, pattern := range m.table.Patterns(label, field) {
				if match(value, pattern) {
					return label
				}
			}
		}
	}
	return ""
}

// matchCodePrefix matches product codes of the form "CODE-..." or "CODE -...".
func matchCodePrefix(value, pattern string) bool {
	v := strings.ToUpper(value)
	p := strings.ToUpper(pattern)
	return strings.HasPrefix(v, p+"-") || strings.HasPrefix(v, p+" -")
}

// matchCodeReference finds "CODE-" or "CODE -" anywhere inside a free-text
// reference.
func matchCodeReference(value, pattern string) bool {
	v := strings.ToUpper(value)
	p := strings.ToUpper(pattern)
	return strings.Contains(v, p+"-") || strings.Contains(v, p+" -")
}

func matchSubstring(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}
