package model

import "strings"

// CustomerMappingTable maps a customer label to, per matching field, the
// ordered pattern strings configured for it. Label order is insertion order,
// which the matcher must respect.
type CustomerMappingTable struct {
	labels   []string
	patterns map[string]map[string][]string
}

// NewCustomerMappingTable creates an empty mapping table.
func NewCustomerMappingTable() *CustomerMappingTable {
	return &CustomerMappingTable{
		patterns: make(map[string]map[string][]string),
	}
}

// Add appends one pattern for a label/field pair. Empty values are ignored.
func (t *CustomerMappingTable) Add(label, field, pattern string) {
	label = strings.TrimSpace(label)
	pattern = strings.TrimSpace(pattern)
	if label == "" || pattern == "" {
		return
	}
	byField, ok := t.patterns[label]
	if !ok {
		byField = make(map[string][]string)
		t.patterns[label] = byField
		t.labels = append(t.labels, label)
	}
	byField[field] = append(byField[field], pattern)
}

// Labels returns customer labels in insertion order.
func (t *CustomerMappingTable) Labels() []string {
	return t.labels
}

// Patterns returns the patterns configured for a label and field, which may
// be empty.
func (t *CustomerMappingTable) Patterns(label, field string) []string {
	if byField, ok := t.patterns[label]; ok {
		return byField[field]
	}
	return nil
}

// Len reports the number of configured labels.
func (t *CustomerMappingTable) Len() int {
	return len(t.labels)
}

// InventoryLookup maps a trimmed barcode to its stock-on-hand quantity.
type InventoryLookup map[string]int
