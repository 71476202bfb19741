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

// Package output writes rewritten files to disk, either as a directory tree or
// as a single zip archive.
package output

import (
	"archive/zip"
	"context"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/pkg/blob"
	"github.com/walteh/reword/pkg/operation"
)

// ErrUnsafePath is returned for entry paths that would leave the output root.
var ErrUnsafePath = errors.Base("entry path escapes output root")

// 💾 Writer receives output entries by slash separated relative path
type Writer interface {
	Write(ctx context.Context, name string, data []byte) error
	Close() error
}

// DirWriter writes each entry as a file below Root
type DirWriter struct {
	Root string
}

// NewDirWriter creates a DirWriter, creating root if needed
func NewDirWriter(root string) (*DirWriter, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Errorf("creating output directory: %w", err)
	}
	return &DirWriter{Root: filepath.Clean(root)}, nil
}

// Write writes data through a temp file and a rename
func (w *DirWriter) Write(ctx context.Context, name string, data []byte) error {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return errors.WithDetails(ErrUnsafePath, "name", name)
	}

	target := filepath.Join(w.Root, local)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Errorf("creating parent directory: %w", err)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", target).Int("size", len(data)).Msg("wrote file")
	return nil
}

// Close is a no-op for directories
func (w *DirWriter) Close() error { return nil }

// 📦 ZipWriter collects entries into a zip archive
type ZipWriter struct {
	mu   sync.Mutex
	file *os.File
	zw   *zip.Writer
}

// NewZipWriter creates the archive file at p
func NewZipWriter(p string) (*ZipWriter, error) {
	if dir := filepath.Dir(p); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Errorf("creating archive directory: %w", err)
		}
	}

	f, err := os.Create(p)
	if err != nil {
		return nil, errors.Errorf("creating archive: %w", err)
	}
	return &ZipWriter{file: f, zw: zip.NewWriter(f)}, nil
}

// Write adds one entry to the archive
func (w *ZipWriter) Write(ctx context.Context, name string, data []byte) error {
	clean := path.Clean(name)
	if !filepath.IsLocal(filepath.FromSlash(clean)) {
		return errors.WithDetails(ErrUnsafePath, "name", name)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	fw, err := w.zw.CreateHeader(&zip.FileHeader{Name: clean, Method: zip.Deflate})
	if err != nil {
		return errors.Errorf("creating archive entry: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return errors.Errorf("writing archive entry: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("entry", clean).Int("size", len(data)).Msg("added archive entry")
	return nil
}

// Close finishes the archive and closes the file
func (w *ZipWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.zw.Close(); err != nil {
		w.file.Close()
		return errors.Errorf("finishing archive: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return errors.Errorf("closing archive: %w", err)
	}
	return nil
}

// WriteAll writes every result's content under its OutputPath
func WriteAll(ctx context.Context, w Writer, store *blob.Store, results []operation.Result) (int, error) {
	written := 0
	for _, res := range results {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		data, err := store.Get(res.Handle)
		if err != nil {
			return written, errors.Errorf("reading %s: %w", res.OutputPath, err)
		}

		if err := w.Write(ctx, res.OutputPath, data); err != nil {
			return written, errors.Errorf("writing %s: %w", res.OutputPath, err)
		}
		written++
	}
	return written, nil
}
