// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/pkg/blob"
	"github.com/walteh/reword/pkg/operation"
)

func storeResults(t *testing.T, entries map[string]string) (*blob.Store, []operation.Result) {
	t.Helper()
	store := blob.NewStore()
	var results []operation.Result
	for _, name := range []string{"a/data-v1.csv", "b/sub/list-v3.tsv", "top-v1.csv"} {
		content, ok := entries[name]
		if !ok {
			continue
		}
		results = append(results, operation.Result{
			OutputPath: name,
			Handle:     store.Put([]byte(content)),
		})
	}
	return store, results
}

func TestDirWriter(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "out")

	w, err := NewDirWriter(root)
	require.NoError(t, err)

	store, results := storeResults(t, map[string]string{
		"a/data-v1.csv":     "x,y\n",
		"b/sub/list-v3.tsv": "1\t2\n",
		"top-v1.csv":        "z\n",
	})

	n, err := WriteAll(ctx, w, store, results)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, 3, n)

	for name, want := range map[string]string{
		"a/data-v1.csv":     "x,y\n",
		"b/sub/list-v3.tsv": "1\t2\n",
		"top-v1.csv":        "z\n",
	} {
		got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
		require.NoError(t, err, name)
		assert.Equal(t, want, string(got), name)
	}

	_, err = os.Stat(filepath.Join(root, "top-v1.csv.tmp"))
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestDirWriterRejectsEscapingPaths(t *testing.T) {
	w, err := NewDirWriter(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../evil.csv", "/abs/evil.csv", "a/../../evil.csv"} {
		t.Run(name, func(t *testing.T) {
			err := w.Write(context.Background(), name, []byte("x"))
			assert.True(t, errors.Is(err, ErrUnsafePath))
		})
	}
}

func TestZipWriter(t *testing.T) {
	ctx := context.Background()
	archive := filepath.Join(t.TempDir(), "nested", "results.zip")

	w, err := NewZipWriter(archive)
	require.NoError(t, err)

	store, results := storeResults(t, map[string]string{
		"a/data-v1.csv":     "x,y\n",
		"b/sub/list-v3.tsv": "1\t2\n",
	})

	n, err := WriteAll(ctx, w, store, results)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, 2, n)

	zr, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer zr.Close()

	got := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		got[f.Name] = string(data)
	}

	assert.Equal(t, map[string]string{
		"a/data-v1.csv":     "x,y\n",
		"b/sub/list-v3.tsv": "1\t2\n",
	}, got)
}

func TestWriteAllRevokedHandle(t *testing.T) {
	w, err := NewDirWriter(t.TempDir())
	require.NoError(t, err)

	store, results := storeResults(t, map[string]string{
		"top-v1.csv": "z\n",
	})
	store.Revoke(results[0].Handle)

	n, err := WriteAll(context.Background(), w, store, results)
	require.Error(t, err)
	assert.True(t, errors.Is(err, blob.ErrRevoked))
	assert.Equal(t, 0, n)
}

func TestWriteAllCancelled(t *testing.T) {
	w, err := NewDirWriter(t.TempDir())
	require.NoError(t, err)

	store, results := storeResults(t, map[string]string{
		"top-v1.csv": "z\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := WriteAll(ctx, w, store, results)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
}
