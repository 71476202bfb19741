package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/reword/cmd/reword/opts"
)

func TestRootCmd(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	dir := filepath.Join(t.TempDir(), "batch")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ids-v4.csv"), []byte("id,ID\n"), 0644))
	out := filepath.Join(t.TempDir(), "out")

	buf := &bytes.Buffer{}
	cmd := newRootCmd(&opts.RootOpts{})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"process", dir, "--rule", "id=>key", "--out", out})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got, err := os.ReadFile(filepath.Join(out, "batch", "ids-v5.csv"))
	require.NoError(t, err)
	assert.Equal(t, "key,KEY\n", string(got))
	assert.Contains(t, buf.String(), "Wrote 1 files (2 replacements)")
}

func TestVersionCmd(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := newRootCmd(&opts.RootOpts{})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "reword version info")
	assert.Contains(t, buf.String(), "Platform:")
}

func TestFormatVersion(t *testing.T) {
	got := FormatVersion(&VersionInfo{
		Version:   "v1.2.3",
		Revision:  "abc123",
		Modified:  true,
		Time:      "2025-01-01T00:00:00Z",
		GoVersion: "go1.23.5",
		Platform:  "linux/amd64",
	})
	assert.Contains(t, got, "Version:   v1.2.3")
	assert.Contains(t, got, "Revision:  abc123 (modified)")
	assert.Contains(t, got, "Platform:  linux/amd64")
}
