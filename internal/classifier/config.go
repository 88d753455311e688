package classifier

// Config holds the keyword lists the cascade rules evaluate. All entries
// must already be normalized (lower-case, alphanumerics and single spaces).
type Config struct {
	// UtilityTokens trigger the utility override regardless of other signals.
	UtilityTokens []string
	// GovernmentTokens map a row to the fines & penalties category.
	GovernmentTokens []string
	// BankingTokens map a row to the loan interest category.
	BankingTokens []string
	// FoodTokens map a row to the staff meals category.
	FoodTokens []string
	// BusinessSuffixes disqualify a token run from being a person's name.
	BusinessSuffixes []string
	// SalaryTokens mark explicit wage payments.
	SalaryTokens []string
	// MonthTokens are recognized month names, used by the payroll heuristic
	// and by employee name extraction.
	MonthTokens []string
	// LeadingVerbs are procedural words stripped from the front of a payee.
	LeadingVerbs []string
}

// DefaultConfig returns the production keyword sets.
func DefaultConfig() Config {
	return Config{
		UtilityTokens: []string{
			"sp services", "sp group", "sp digital", "senoko", "geneco",
			"electricity", "water bill", "utilities", "utility",
		},
		GovernmentTokens: []string{
			"iras", "acra", "singapore customs", "traffic police",
			"lta", "hdb", "summons", "penalty", "fine", "composition",
		},
		BankingTokens: []string{
			"dbs", "ocbc", "uob", "maybank", "hsbc", "citibank",
			"standard chartered", "loan", "instalment", "installment",
			"hire purchase", "financing", "interest charge",
		},
		FoodTokens: []string{
			"kopitiam", "restaurant", "catering", "canteen", "bakery",
			"cafe", "coffee shop", "food court", "hawker",
		},
		BusinessSuffixes: []string{
			"pte", "ltd", "llp", "llc", "inc", "corp", "co",
			"enterprise", "enterprises", "trading", "holdings",
			"services", "engineering", "construction",
		},
		SalaryTokens: []string{
			"salary", "salaries", "wages", "payroll", "bonus",
		},
		MonthTokens: []string{
			"january", "february", "march", "april", "may", "june",
			"july", "august", "september", "october", "november", "december",
			"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep",
			"sept", "oct", "nov", "dec",
		},
		LeadingVerbs: []string{
			"being", "payment", "pay", "paid", "advance", "salary",
			"transfer", "to", "for",
		},
	}
}

// IsMonthToken reports whether tok is a recognized month name.
func (c Config) IsMonthToken(tok string) bool {
	return tokenIn(c.MonthTokens, tok)
}
