package rule

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Boundary selects where the needle has to sit relative to a word.
type Boundary int

const (
	Whole Boundary = iota
	StartsWith
	EndsWith
	Contains
)

func (b Boundary) String() string {
	switch b {
	case Whole:
		return "whole"
	case StartsWith:
		return "startsWith"
	case EndsWith:
		return "endsWith"
	case Contains:
		return "contains"
	default:
		return "unknown"
	}
}

// Pattern is a compiled search. It is cheap to build and holds no state between
// calls, but it is never cached: every substitution pass compiles its own.
type Pattern struct {
	Needle        string
	Boundary      Boundary
	CaseSensitive bool
}

// Match is one occurrence, as byte offsets into the searched text. The prefix
// fragment is text[Start:NeedleStart] and the suffix fragment text[NeedleEnd:End];
// both are empty in Whole mode.
type Match struct {
	Start       int
	End         int
	NeedleStart int
	NeedleEnd   int
}

// Compile turns a raw search string into a Pattern. One leading and one trailing "*"
// select the boundary mode and are stripped; everything else is literal. It returns
// nil when nothing is left to search for.
func Compile(search string, caseSensitive bool) *Pattern {
	leading, trailing, needle := splitWildcards(search)
	if needle == "" {
		return nil
	}

	p := &Pattern{Needle: needle, Boundary: Whole, CaseSensitive: caseSensitive}
	switch {
	case leading && trailing:
		p.Boundary = Contains
	case leading:
		p.Boundary = EndsWith
	case trailing:
		p.Boundary = StartsWith
	}
	return p
}

func splitWildcards(search string) (leading, trailing bool, needle string) {
	leading = strings.HasPrefix(search, "*")
	trailing = strings.HasSuffix(search, "*")
	needle = strings.TrimPrefix(search, "*")
	needle = strings.TrimSuffix(needle, "*")
	return leading, trailing, needle
}

// IsWordRune reports whether r belongs to the word alphabet: letters, digits and
// underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// FindAll returns every non-overlapping match in text, scanning left to right.
//
// The search behaves like \b(W*)needle(W*)\b with W the word alphabet: a match must
// start and end on a word boundary, and at a given start the longest prefix fragment
// that still yields a match wins.
func (p *Pattern) FindAll(text string) []Match {
	var matches []Match
	for pos := 0; pos <= len(text); {
		m, ok := p.matchAt(text, pos)
		if ok {
			matches = append(matches, m)
			pos = m.End
			continue
		}
		if pos == len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return matches
}

// Count returns the number of matches in text.
func (p *Pattern) Count(text string) int {
	return len(p.FindAll(text))
}

func (p *Pattern) matchAt(text string, start int) (Match, bool) {
	if !isBoundary(text, start) {
		return Match{}, false
	}

	if p.Boundary == Whole || p.Boundary == StartsWith {
		return p.matchNeedleAt(text, start, start)
	}

	// Try the prefix fragment longest first, mirroring a greedy W* that backtracks.
	for k := wordRunEnd(text, start); k >= start; {
		if m, ok := p.matchNeedleAt(text, start, k); ok {
			return m, true
		}
		if k == start {
			break
		}
		_, size := utf8.DecodeLastRuneInString(text[start:k])
		k -= size
	}
	return Match{}, false
}

// matchNeedleAt checks the needle at k for a match that began at start, then
// applies the suffix fragment and the closing boundary.
func (p *Pattern) matchNeedleAt(text string, start, k int) (Match, bool) {
	e, ok := p.needleAt(text, k)
	if !ok {
		return Match{}, false
	}

	end := e
	if p.Boundary == StartsWith || p.Boundary == Contains {
		// Greedy W*: a non-empty fragment always ends on a boundary, so shorter
		// fragments never need to be tried.
		end = wordRunEnd(text, e)
	}
	if !isBoundary(text, end) {
		return Match{}, false
	}

	return Match{Start: start, End: end, NeedleStart: k, NeedleEnd: e}, true
}

// needleAt reports whether the needle occurs at byte offset i and where it ends.
func (p *Pattern) needleAt(text string, i int) (int, bool) {
	if p.CaseSensitive {
		if strings.HasPrefix(text[i:], p.Needle) {
			return i + len(p.Needle), true
		}
		return 0, false
	}

	j := i
	for _, nr := range p.Needle {
		if j >= len(text) {
			return 0, false
		}
		tr, size := utf8.DecodeRuneInString(text[j:])
		if !equalFold(nr, tr) {
			return 0, false
		}
		j += size
	}
	return j, true
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

func isBoundary(text string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		before = IsWordRune(r)
	}
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		after = IsWordRune(r)
	}
	return before != after
}

func wordRunEnd(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !IsWordRune(r) {
			break
		}
		i += size
	}
	return i
}
