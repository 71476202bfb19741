package text

import (
	"context"
	"io"

	"github.com/walteh/reword/pkg/rule"
)

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made across all rules
	ReplacementCount int

	// RuleCounts holds the replacements made by each rule, in rule order
	RuleCounts []int

	// Encoding is the label of the detected byte encoding
	Encoding string

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements, in the original encoding
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies the rules to the content in order and re-encodes the
	// result the way the content was encoded
	ReplaceText(ctx context.Context, content io.Reader, rules []rule.Rule) (*ReplacementResult, error)

	// ValidateRules checks that at least one rule is active
	ValidateRules(rules []rule.Rule) error
}
