package models

import (
	"sort"
	"strings"
)

// ComplianceCheck is the backend's verdict for one clause. JSON keys match
// the backend, including the space in "Legal Rule".
type ComplianceCheck struct {
	Clause    string `json:"Clause"`
	LegalRule string `json:"Legal Rule"`
	Reason    string `json:"Reason"`
	Violates  string `json:"Violates"`
}

// Violation reports whether the backend flagged the clause.
func (c ComplianceCheck) Violation() bool {
	return strings.EqualFold(strings.TrimSpace(c.Violates), "yes")
}

// ComplianceReport maps clause identifiers to their checks.
type ComplianceReport map[string]ComplianceCheck

// Keys returns the clause identifiers in a stable order.
func (r ComplianceReport) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r ComplianceReport) Violations() int {
	n := 0
	for _, check := range r {
		if check.Violation() {
			n++
		}
	}
	return n
}
