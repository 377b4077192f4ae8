package textnorm

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

// Normalize canonicalizes a free-text token into its comparable form:
// accents transliterated to ASCII, lowercased, punctuation dropped,
// whitespace collapsed.
func Normalize(raw string) string {
	ascii := unidecode.Unidecode(raw)

	var b strings.Builder
	b.Grow(len(ascii))
	pendingSpace := false
	for _, r := range strings.ToLower(ascii) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		default:
			pendingSpace = true
		}
	}

	return b.String()
}

// Match minutes never exceed three digits; longer runs are bad data, not
// big numbers.
const maxLeadingDigits = 3

// LeadingInt extracts the leading decimal run of a token, tolerating
// annotations such as "45+2" or "90'". The bool reports whether a usable
// minute was found.
func LeadingInt(raw string) (int, bool) {
	token := strings.TrimSpace(raw)
	end := 0
	for end < len(token) && token[end] >= '0' && token[end] <= '9' {
		end++
	}
	if end == 0 || end > maxLeadingDigits {
		return 0, false
	}

	value := 0
	for _, c := range token[:end] {
		value = value*10 + int(c-'0')
	}

	return value, true
}
