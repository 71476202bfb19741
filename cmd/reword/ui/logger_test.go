package ui

import (
	"bytes"
	"context"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/reword/pkg/operation"
)

func TestLogSummary(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	buf := &bytes.Buffer{}
	u := NewUserLoggerTo(context.Background(), buf)

	err := u.LogSummary("out", []operation.Result{
		{SourcePath: "in/a.csv", OutputPath: "in/a-v1.csv", Version: 1, Replacements: 3, Encoding: "UTF-8", Size: 10},
		{SourcePath: "in/b.tsv", OutputPath: "in/b-v2.tsv", Version: 2, Replacements: 1, Encoding: "UTF-16 LE", Size: 2048},
	})
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{"Source", "in/a-v1.csv", "in/b-v2.tsv", "UTF-16 LE", "2.00 KB", "Wrote 2 files (4 replacements) to out"} {
		assert.Contains(t, out, want)
	}
}

func TestLogSummaryEmpty(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	buf := &bytes.Buffer{}
	u := NewUserLoggerTo(context.Background(), buf)

	require.NoError(t, u.LogSummary("out", nil))
	assert.Contains(t, buf.String(), "No file contained a match")
}
