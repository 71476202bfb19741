package text

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MatchCase adapts the letter casing of replacement to the casing of matched:
// all upper, all lower and Title are carried over; anything else leaves the
// replacement as written.
func MatchCase(matched, replacement string) string {
	switch {
	case isUpper(matched):
		return cases.Upper(language.Und).String(replacement)
	case isLower(matched):
		return cases.Lower(language.Und).String(replacement)
	case isTitle(matched):
		return toTitle(replacement)
	default:
		return replacement
	}
}

func letterCases(s string) (upper, lower bool) {
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
	}
	return upper, lower
}

func isUpper(s string) bool {
	upper, lower := letterCases(s)
	return upper && !lower
}

func isLower(s string) bool {
	upper, lower := letterCases(s)
	return lower && !upper
}

func isTitle(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsUpper(first) {
		return false
	}
	upper, _ := letterCases(s[size:])
	return !upper
}

func toTitle(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Title(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}
