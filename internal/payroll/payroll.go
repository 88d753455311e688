// Package payroll derives employees and payroll records from classified
// payroll transaction text. Everything here is best-effort inference, not
// validated payroll: names that do not fit the expected pattern are skipped
// and amounts are estimates.
package payroll

import (
	"fmt"
	"strings"
	"time"

	"ledgerlens/internal/classifier"

	"github.com/shopspring/decimal"
)

// DefaultNetToGrossRatio is the fixed net-of-CPF approximation used to
// estimate gross salary from a net payment. It has no sourced tax basis;
// it is a carried-over heuristic constant and callers may override it on
// the Estimator.
const DefaultNetToGrossRatio = 0.8

// noiseTokens disqualify an extracted name: these show up in payroll-
// adjacent transactions that are not salary payments to a person.
var noiseTokens = []string{
	"levy", "cpf", "mom", "sdl", "transport", "claim", "claims",
	"reimbursement", "grab", "taxi", "medical",
}

// ExtractName pulls a candidate employee name out of a transaction memo.
// The expected shape is "<NAME> <MONTH>": the name is the run of tokens
// before the first recognized month name, with leading procedural words
// stripped. Returns false for memos that do not fit, names shorter than 3
// characters, and names containing digits or known noise tokens.
func ExtractName(description string, cfg classifier.Config) (string, bool) {
	tokens := strings.Fields(classifier.Normalize(description))

	monthIdx := -1
	for i, tok := range tokens {
		if cfg.IsMonthToken(tok) {
			monthIdx = i
			break
		}
	}
	if monthIdx <= 0 {
		return "", false
	}

	name := tokens[:monthIdx]
	for len(name) > 0 && leadingVerb(cfg, name[0]) {
		name = name[1:]
	}
	if len(name) == 0 {
		return "", false
	}

	for _, tok := range name {
		if containsDigit(tok) {
			return "", false
		}
		for _, noise := range noiseTokens {
			if tok == noise {
				return "", false
			}
		}
	}

	cleaned := titleCase(strings.Join(name, " "))
	if len(cleaned) < 3 {
		return "", false
	}
	return cleaned, true
}

// monthByToken maps normalized month tokens to calendar months.
var monthByToken = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// PeriodMonth returns the pay period named by the first month token in a
// transaction memo.
func PeriodMonth(description string, cfg classifier.Config) (time.Month, bool) {
	for _, tok := range strings.Fields(classifier.Normalize(description)) {
		if !cfg.IsMonthToken(tok) {
			continue
		}
		if m, ok := monthByToken[tok]; ok {
			return m, true
		}
	}
	return 0, false
}

// PeriodYear pins a pay period month to a year relative to the payment
// date: a December payment made in January belongs to the prior year.
func PeriodYear(paid time.Time, period time.Month) int {
	if period > paid.Month() && period-paid.Month() > 6 {
		return paid.Year() - 1
	}
	return paid.Year()
}

// Estimator computes gross/CPF estimates from net payments.
type Estimator struct {
	// NetToGrossRatio is the assumed net share of gross pay.
	NetToGrossRatio float64
}

// NewEstimator returns an estimator with the default ratio.
func NewEstimator() Estimator {
	return Estimator{NetToGrossRatio: DefaultNetToGrossRatio}
}

// Estimate holds the derived amounts for one payroll payment, in cents.
type Estimate struct {
	NetPay      int64
	GrossSalary int64
	CPFAmount   int64
}

// FromNet derives gross and CPF estimates from a net payment:
// gross = net / ratio, cpf = gross - net. Amounts are in cents and the
// gross is rounded to the nearest cent.
func (e Estimator) FromNet(netPay int64) Estimate {
	ratio := e.NetToGrossRatio
	if ratio <= 0 || ratio > 1 {
		ratio = DefaultNetToGrossRatio
	}
	gross := decimal.NewFromInt(netPay).
		Div(decimal.NewFromFloat(ratio)).
		Round(0).
		IntPart()
	return Estimate{
		NetPay:      netPay,
		GrossSalary: gross,
		CPFAmount:   gross - netPay,
	}
}

// GenerateCode builds a sequential employee code like "ACM-0003" from an
// organization prefix and a 1-based sequence number.
func GenerateCode(prefix string, seq int) string {
	if prefix == "" {
		prefix = "EMP"
	}
	return fmt.Sprintf("%s-%04d", strings.ToUpper(prefix), seq)
}

// CodePrefix derives the organization prefix from the user's email domain:
// the first three letters of the domain, upper-cased. Falls back to "EMP"
// when the email has no usable domain.
func CodePrefix(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return "EMP"
	}
	domain := email[at+1:]
	var letters []rune
	for _, r := range domain {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
			if len(letters) == 3 {
				break
			}
		}
	}
	if len(letters) == 0 {
		return "EMP"
	}
	return strings.ToUpper(string(letters))
}

func leadingVerb(cfg classifier.Config, tok string) bool {
	for _, v := range cfg.LeadingVerbs {
		if tok == v {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
