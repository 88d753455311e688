package classifier

import (
	"strings"

	"ledgerlens/internal/chart"
)

// Target names a well-known category the cascade assigns directly.
type Target string

const (
	TargetUtilities        Target = "utilities"
	TargetFinesPenalties   Target = "fines_penalties"
	TargetLoanInterest     Target = "loan_interest"
	TargetStaffMeals       Target = "staff_meals"
	TargetPayrollLiability Target = "payroll_liability"
	TargetSalaries         Target = "salaries"
)

// targetNames lists the normalized category names accepted for each target,
// checked in order.
var targetNames = map[Target][]string{
	TargetUtilities:        {"utilities", "utility expenses"},
	TargetFinesPenalties:   {"fines penalties", "fines and penalties", "fines"},
	TargetLoanInterest:     {"loan interest", "interest expense", "bank interest"},
	TargetStaffMeals:       {"staff meals", "staff welfare"},
	TargetPayrollLiability: {"salaries payable", "wages payable", "payroll liabilities"},
	TargetSalaries:         {"salaries wages", "salaries and wages", "salaries", "wages"},
}

type indexEntry struct {
	name string
	id   uint
}

// Index is the flattened lookup structure the classifier reads: category
// names normalized in tree insertion order, plus the resolved well-known
// target categories. Build one per classification batch from the shared
// tree so categories created mid-import are visible to later rows.
type Index struct {
	entries []indexEntry
	targets map[Target]uint
}

// BuildIndex flattens a chart tree into an Index.
func BuildIndex(t *chart.Tree) *Index {
	idx := &Index{targets: make(map[Target]uint)}
	for _, n := range t.Nodes() {
		name := Normalize(n.Name)
		if name == "" {
			continue
		}
		idx.entries = append(idx.entries, indexEntry{name: name, id: n.ID})
		for target, names := range targetNames {
			if _, taken := idx.targets[target]; taken {
				continue
			}
			if tokenIn(names, name) {
				idx.targets[target] = n.ID
			}
		}
	}
	return idx
}

// TargetNames returns the normalized category names accepted for a
// well-known target, in preference order. Callers must not mutate the
// returned slice.
func TargetNames(t Target) []string {
	return targetNames[t]
}

// Target returns the category ID resolved for a well-known target.
func (i *Index) Target(t Target) (uint, bool) {
	id, ok := i.targets[t]
	return id, ok
}

// Match returns the first indexed category whose name is a substring of the
// normalized text. When several names match, insertion order decides: the
// result can look arbitrary but is fully deterministic for a given tree.
func (i *Index) Match(text string) (uint, string, bool) {
	for _, e := range i.entries {
		if strings.Contains(text, e.name) {
			return e.id, e.name, true
		}
	}
	return 0, "", false
}
