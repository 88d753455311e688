package classifier

import "strings"

// Normalize lower-cases text and replaces every non-alphanumeric rune with a
// space, collapsing runs of whitespace. All cascade rules and the category
// name index operate on normalized text only.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// containsAny reports whether the normalized text contains any of the given
// normalized tokens on word boundaries. Multi-word tokens are matched as
// phrases.
func containsAny(text string, tokens []string) bool {
	padded := " " + text + " "
	for _, tok := range tokens {
		if strings.Contains(padded, " "+tok+" ") {
			return true
		}
	}
	return false
}

// tokenIn reports whether tok appears in the list.
func tokenIn(list []string, tok string) bool {
	for _, v := range list {
		if v == tok {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
