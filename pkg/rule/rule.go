package rule

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrNoActiveRules is returned when a rule set has nothing to search for.
var ErrNoActiveRules = errors.Base("at least one rule with a search string is required")

// Rule is one search/replace row.
type Rule struct {
	Search        string `json:"search" yaml:"search"`
	Replacement   string `json:"replacement" yaml:"replacement"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty"`
}

// IsActive reports whether the rule has a needle left after wildcard stripping.
func (r Rule) IsActive() bool {
	_, _, needle := splitWildcards(r.Search)
	return needle != ""
}

// Compile is shorthand for Compile(r.Search, r.CaseSensitive).
func (r Rule) Compile() *Pattern {
	return Compile(r.Search, r.CaseSensitive)
}

func (r Rule) String() string {
	s := r.Search + " => " + r.Replacement
	if r.CaseSensitive {
		s += " (case sensitive)"
	}
	return s
}

// Active returns the rules that are not inert, preserving order.
func Active(rules []Rule) []Rule {
	active := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive() {
			active = append(active, r)
		}
	}
	return active
}

// Validate fails with ErrNoActiveRules when no rule is active.
func Validate(rules []Rule) error {
	if len(Active(rules)) == 0 {
		return errors.WithStack(ErrNoActiveRules)
	}
	return nil
}

// Parse reads the command line form "search=>replacement". A missing "=>" is an
// error; an empty replacement is allowed and deletes the match.
func Parse(expr string, caseSensitive bool) (Rule, error) {
	search, replacement, ok := strings.Cut(expr, "=>")
	if !ok {
		return Rule{}, errors.Errorf("rule %q: expected search=>replacement", expr)
	}
	if search == "" {
		return Rule{}, errors.Errorf("rule %q: search is empty", expr)
	}
	return Rule{Search: search, Replacement: replacement, CaseSensitive: caseSensitive}, nil
}
