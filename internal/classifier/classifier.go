// Package classifier assigns chart-of-accounts categories to ledger rows.
// Classification is a priority cascade: an ordered table of rules evaluated
// first-match-wins over the normalized transaction text and the flattened
// category index. The classifier never mutates the category tree, so for a
// fixed (text, index) pair the outcome is always the same.
package classifier

import "strings"

// Outcome is the result of classifying one row. A zero CategoryID with
// Rejected set means no rule matched; the row stays uncategorized and is
// excluded from downstream aggregation.
type Outcome struct {
	CategoryID uint   `json:"category_id"`
	Rule       string `json:"rule"`
	Rejected   bool   `json:"rejected"`
	Reason     string `json:"reason,omitempty"`
}

// Rule is one cascade step: a named predicate that either assigns a
// category or passes the row to the next rule.
type Rule struct {
	Name  string
	Apply func(c *Classifier, text string, idx *Index) (uint, bool)
}

// Classifier evaluates the cascade over its configured keyword lists.
type Classifier struct {
	cfg   Config
	rules []Rule
}

// New creates a classifier with the given keyword configuration.
func New(cfg Config) *Classifier {
	return &Classifier{
		cfg: cfg,
		rules: []Rule{
			{Name: "utility_override", Apply: applyUtilityOverride},
			{Name: "entity_keywords", Apply: applyEntityKeywords},
			{Name: "category_name_match", Apply: applyNameMatch},
			{Name: "payroll_heuristic", Apply: applyPayrollHeuristic},
		},
	}
}

// Default creates a classifier with the production keyword sets.
func Default() *Classifier {
	return New(DefaultConfig())
}

// Config returns the classifier's keyword configuration.
func (c *Classifier) Config() Config {
	return c.cfg
}

// Classify runs the cascade over raw transaction text (payee plus memo).
// Rules fire in strict priority order; the first match wins.
func (c *Classifier) Classify(raw string, idx *Index) Outcome {
	text := Normalize(raw)
	if text == "" {
		return Outcome{Rejected: true, Reason: "empty description"}
	}

	for _, rule := range c.rules {
		if id, ok := rule.Apply(c, text, idx); ok {
			return Outcome{CategoryID: id, Rule: rule.Name}
		}
	}

	return Outcome{Rejected: true, Reason: "no rule matched: " + text}
}

// applyUtilityOverride assigns the utilities category when any utility
// provider token appears, regardless of other signals.
func applyUtilityOverride(c *Classifier, text string, idx *Index) (uint, bool) {
	if !containsAny(text, c.cfg.UtilityTokens) {
		return 0, false
	}
	return idx.Target(TargetUtilities)
}

// applyEntityKeywords maps government, banking, and food entities to their
// fixed categories.
func applyEntityKeywords(c *Classifier, text string, idx *Index) (uint, bool) {
	switch {
	case containsAny(text, c.cfg.GovernmentTokens):
		return idx.Target(TargetFinesPenalties)
	case containsAny(text, c.cfg.BankingTokens):
		return idx.Target(TargetLoanInterest)
	case containsAny(text, c.cfg.FoodTokens):
		return idx.Target(TargetStaffMeals)
	}
	return 0, false
}

// applyNameMatch assigns the first indexed category whose normalized name
// appears in the text.
func applyNameMatch(c *Classifier, text string, idx *Index) (uint, bool) {
	id, _, ok := idx.Match(text)
	return id, ok
}

// applyPayrollHeuristic detects rows whose payee looks like a person rather
// than a company: after stripping month names and leading procedural words,
// a short run of digit-free tokens with no business suffix is treated as an
// employee payment. Rows that fail the name shape but carry explicit salary
// tokens fall back to the salaries category.
func applyPayrollHeuristic(c *Classifier, text string, idx *Index) (uint, bool) {
	tokens := strings.Fields(text)

	remaining := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if c.cfg.IsMonthToken(tok) {
			continue
		}
		remaining = append(remaining, tok)
	}
	for len(remaining) > 0 && tokenIn(c.cfg.LeadingVerbs, remaining[0]) {
		remaining = remaining[1:]
	}

	if looksLikeHumanName(remaining, c.cfg) {
		return idx.Target(TargetPayrollLiability)
	}
	if containsAny(text, c.cfg.SalaryTokens) {
		return idx.Target(TargetSalaries)
	}
	return 0, false
}

func looksLikeHumanName(tokens []string, cfg Config) bool {
	if len(tokens) < 2 || len(tokens) > 5 {
		return false
	}
	for _, tok := range tokens {
		if hasDigit(tok) {
			return false
		}
		if tokenIn(cfg.BusinessSuffixes, tok) {
			return false
		}
	}
	return true
}
