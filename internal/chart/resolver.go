package chart

import (
	"sort"
	"strings"

	"ledgerlens/internal/logger"
	"ledgerlens/internal/models"
)

// Creator persists a new category and returns its assigned ID. Implemented
// by the category service; tests use an in-memory stub.
type Creator interface {
	CreateCategory(name string, typ models.CategoryType, parentID *uint) (uint, error)
}

// SheetRow is one parsed row from a structured report sheet. Depth is the
// indentation column of the label; YearAmounts maps year-labeled columns to
// their numeric values in cents.
type SheetRow struct {
	Label       string
	Depth       int
	YearAmounts map[int]int64
}

// AnnualFact is an annual amount attributed to a resolved category.
type AnnualFact struct {
	CategoryID uint
	Year       int
	Amount     int64
	Section    models.CategoryType
}

// Resolver materializes categories from report sheets into a shared Tree.
type Resolver struct {
	tree  *Tree
	store Creator
}

// NewResolver creates a resolver over the given cache and store.
func NewResolver(tree *Tree, store Creator) *Resolver {
	return &Resolver{tree: tree, store: store}
}

// sectionKeywords maps label substrings to the section type they switch to.
// Order matters: "revenue" must be checked before the generic fallthrough.
var sectionKeywords = []struct {
	token   string
	section models.CategoryType
}{
	{"income", models.CategoryTypeIncome},
	{"revenue", models.CategoryTypeIncome},
	{"expense", models.CategoryTypeExpense},
	{"liabilit", models.CategoryTypeLiability},
	{"asset", models.CategoryTypeAsset},
}

// ResolveSheet walks the rows of one report sheet, finding or creating a
// category per label and emitting annual facts for year-valued columns.
//
// A stack maps indentation depth to the last category seen at that depth;
// the parent of a row is the deepest stack entry shallower than it. Rows
// with empty labels are skipped, subtotal rows are skipped, and section
// headers switch the current section type for subsequent rows. This never
// fails: a row whose category cannot be persisted is dropped and the rest
// of the sheet continues, which at worst yields a shallower tree.
func (r *Resolver) ResolveSheet(rows []SheetRow, base models.CategoryType) []AnnualFact {
	section := base

	type frame struct {
		depth int
		id    uint
	}
	var stack []frame
	var facts []AnnualFact

	for _, row := range rows {
		label := strings.TrimSpace(row.Label)
		if label == "" {
			continue
		}

		lower := strings.ToLower(label)
		if s, ok := sectionFor(lower); ok {
			section = s
		}
		if isSubtotal(lower) {
			continue
		}

		// Entries at or below the current depth belong to a finished
		// branch and can no longer be parents.
		for len(stack) > 0 && stack[len(stack)-1].depth >= row.Depth {
			stack = stack[:len(stack)-1]
		}

		var parentID *uint
		if len(stack) > 0 {
			id := stack[len(stack)-1].id
			parentID = &id
		}

		node, ok := r.tree.Find(label, section, parentID)
		if !ok {
			id, err := r.store.CreateCategory(label, section, parentID)
			if err != nil {
				logger.Get().Warnw("failed to persist category, sheet row dropped",
					"label", label,
					"section", section,
					"error", err,
				)
				continue
			}
			node = &Node{ID: id, Name: label, Type: section, ParentID: parentID}
			r.tree.Add(node)
		}

		stack = append(stack, frame{depth: row.Depth, id: node.ID})

		for _, year := range sortedYears(row.YearAmounts) {
			facts = append(facts, AnnualFact{
				CategoryID: node.ID,
				Year:       year,
				Amount:     row.YearAmounts[year],
				Section:    section,
			})
		}
	}

	return facts
}

func sectionFor(lower string) (models.CategoryType, bool) {
	for _, kw := range sectionKeywords {
		if strings.Contains(lower, kw.token) {
			return kw.section, true
		}
	}
	return "", false
}

func isSubtotal(lower string) bool {
	return lower == "total" ||
		strings.HasPrefix(lower, "total ") ||
		strings.Contains(lower, "subtotal") ||
		strings.Contains(lower, "sub-total") ||
		strings.HasPrefix(lower, "net ")
}

func sortedYears(amounts map[int]int64) []int {
	years := make([]int, 0, len(amounts))
	for y := range amounts {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
