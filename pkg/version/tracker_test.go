package version

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuffix(t *testing.T) {
	tests := []struct {
		filename string
		wantStem string
		wantVer  int
		wantOK   bool
	}{
		{filename: "report-v2.csv", wantStem: "report", wantVer: 2, wantOK: true},
		{filename: "report_v12.tsv", wantStem: "report", wantVer: 12, wantOK: true},
		{filename: "report.csv", wantStem: "report", wantVer: 0, wantOK: false},
		{filename: "report-v.csv", wantStem: "report-v", wantVer: 0, wantOK: false},
		{filename: "reportv2.csv", wantStem: "reportv2", wantVer: 0, wantOK: false},
		{filename: "a-v1-v3.csv", wantStem: "a-v1", wantVer: 3, wantOK: true},
		{filename: "noext-v4", wantStem: "noext", wantVer: 4, wantOK: true},
		{filename: "x-v99999999999999999999999.csv", wantStem: "x-v99999999999999999999999", wantVer: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			stem, v, ok := ParseSuffix(tt.filename)
			assert.Equal(t, tt.wantStem, stem)
			assert.Equal(t, tt.wantVer, v)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		filename string
		version  int
		want     string
	}{
		{filename: "report-v2.csv", version: 3, want: "report-v3.csv"},
		{filename: "data.csv", version: 1, want: "data-v1.csv"},
		{filename: "data_v7.TSV", version: 8, want: "data-v8.TSV"},
		{filename: "archive.tar.csv", version: 1, want: "archive.tar-v1.csv"},
		{filename: "README", version: 2, want: "README-v2"},
		{filename: ".csv", version: 1, want: "-v1.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.filename, tt.version))
		})
	}
}

func TestTracker_Next(t *testing.T) {
	t.Run("fresh_identity_starts_at_one", func(t *testing.T) {
		tr := NewTracker()
		assert.Equal(t, 1, tr.Next("data.csv"))
		assert.Equal(t, 2, tr.Next("data.csv"))
	})

	t.Run("continues_from_suffix", func(t *testing.T) {
		tr := NewTracker()
		assert.Equal(t, 3, tr.Next("data-v2.csv"))
		assert.Equal(t, 4, tr.Next("data-v2.csv"))
	})

	t.Run("folder_prefix_is_part_of_identity", func(t *testing.T) {
		tr := NewTracker()
		assert.Equal(t, 1, tr.Next("a/data.csv"))
		assert.Equal(t, 1, tr.Next("b/data.csv"))
		assert.Equal(t, 2, tr.Next("a/data.csv"))
	})

	t.Run("suffix_read_from_base_name_only", func(t *testing.T) {
		tr := NewTracker()
		assert.Equal(t, 1, tr.Next("run-v5/data.csv"))
	})

	t.Run("forget_and_clear", func(t *testing.T) {
		tr := NewTracker()
		tr.Next("x.csv")
		tr.Next("y.csv")

		v, ok := tr.Peek("x.csv")
		require.True(t, ok)
		assert.Equal(t, 1, v)

		tr.Forget("x.csv")
		_, ok = tr.Peek("x.csv")
		assert.False(t, ok)
		assert.Equal(t, 1, tr.Next("x.csv"))

		tr.Clear()
		assert.Equal(t, 1, tr.Next("y.csv"))
	})
}

func TestTracker_NextConcurrent(t *testing.T) {
	tr := NewTracker()

	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	seen := make(chan int, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				seen <- tr.Next("shared.csv")
				tr.Next(fmt.Sprintf("own-%d.csv", i))
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int]bool)
	for v := range seen {
		assert.False(t, unique[v], "version %d handed out twice", v)
		unique[v] = true
	}
	assert.Len(t, unique, workers*perWorker)

	last, ok := tr.Peek("shared.csv")
	require.True(t, ok)
	assert.Equal(t, workers*perWorker, last)
}

func TestEntryPath(t *testing.T) {
	assert.Equal(t, "in/data-v1.csv", EntryPath("in/data.csv", "data-v1.csv"))
	assert.Equal(t, "a/b/x-v2.tsv", EntryPath("a/b/x-v1.tsv", "x-v2.tsv"))
	assert.Equal(t, "data-v1.csv", EntryPath("data.csv", "data-v1.csv"))
}
