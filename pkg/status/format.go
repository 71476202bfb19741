package status

import (
	"fmt"

	"github.com/walteh/reword/pkg/operation"
)

// FormatBytes renders a byte count as B, KB or MB with two decimals above a KiB.
func FormatBytes(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	}
}

// FileFormatter defines how results, failures and progress are formatted
type FileFormatter interface {
	// FormatResult formats the summary of a rewritten file
	FormatResult(res operation.Result) string

	// FormatFailure formats a file that could not be processed
	FormatFailure(f operation.Failure) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// Title returns the "source → output" part of a summary
func Title(res operation.Result) string {
	return fmt.Sprintf("%s → %s", res.SourcePath, res.OutputName)
}

// Meta returns the details part of a summary
func Meta(res operation.Result) string {
	return fmt.Sprintf("Version: %d • Replacements: %d • Encoding: %s • Size: %s",
		res.Version, res.Replacements, res.Encoding, FormatBytes(res.Size))
}

// SummaryLine joins Title and Meta on one line
func SummaryLine(res operation.Result) string {
	return fmt.Sprintf("%s (%s)", Title(res), Meta(res))
}

// FormatResult formats a result as "📝 source → output (meta)"
func (f *DefaultFileFormatter) FormatResult(res operation.Result) string {
	return "📝 " + SummaryLine(res)
}

// FormatFailure formats a failed file with its error
func (f *DefaultFileFormatter) FormatFailure(fail operation.Failure) string {
	if fail.Err == nil {
		return fmt.Sprintf("❌ Failed %s", fail.SourcePath)
	}
	return fmt.Sprintf("❌ Failed %s: %v", fail.SourcePath, fail.Err)
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}
