package text

import (
	"context"
	"io"
	"strings"

	"github.com/walteh/reword/pkg/codec"
	"github.com/walteh/reword/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// Count returns how many times r matches text. Inert rules match nothing.
func Count(text string, r rule.Rule) int {
	p := r.Compile()
	if p == nil {
		return 0
	}
	return p.Count(text)
}

// Apply replaces every match of r in text.
func Apply(text string, r rule.Rule) string {
	out, _ := apply(text, r)
	return out
}

// ApplyAll applies rules one after another, each against the output of the previous
// one, and returns the final text with the total number of replacements.
func ApplyAll(text string, rules []rule.Rule) (string, int) {
	total := 0
	for _, r := range rules {
		var n int
		text, n = apply(text, r)
		total += n
	}
	return text, total
}

func apply(text string, r rule.Rule) (string, int) {
	p := r.Compile()
	if p == nil {
		return text, 0
	}

	matches := p.FindAll(text)
	if len(matches) == 0 {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		// prefix fragment is copied as part of text[last:NeedleStart], the suffix
		// fragment with the next chunk
		b.WriteString(text[last:m.NeedleStart])
		replacement := r.Replacement
		if !p.CaseSensitive {
			replacement = MatchCase(text[m.NeedleStart:m.NeedleEnd], replacement)
		}
		b.WriteString(replacement)
		last = m.NeedleEnd
	}
	b.WriteString(text[last:])

	return b.String(), len(matches)
}

// Replacer implements TextReplacer on top of the codec and rule packages
type Replacer struct{}

// NewReplacer creates a new Replacer
func NewReplacer() *Replacer {
	return &Replacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *Replacer) ReplaceText(ctx context.Context, content io.Reader, rules []rule.Rule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	decoded := codec.Read(originalContent)

	result := &ReplacementResult{
		Encoding:        decoded.Label(),
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
		RuleCounts:      make([]int, len(rules)),
	}

	current := decoded.Text
	for i, rl := range rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("applying rule %d: %w", i, err)
		}

		var n int
		current, n = apply(current, rl)
		result.RuleCounts[i] = n
		result.ReplacementCount += n
	}

	if result.ReplacementCount == 0 {
		return result, nil
	}

	modified, err := decoded.Encode(current)
	if err != nil {
		return nil, errors.Errorf("encoding %s: %w", decoded.Label(), err)
	}

	result.WasModified = true
	result.ModifiedContent = modified
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *Replacer) ValidateRules(rules []rule.Rule) error {
	return rule.Validate(rules)
}
