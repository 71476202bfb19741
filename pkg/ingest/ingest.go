// Package ingest collects the CSV/TSV files a batch runs over and keeps the queue of
// files waiting to be processed.
package ingest

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// AcceptPattern is the glob a file name has to match, compared case-insensitively.
const AcceptPattern = "*.{csv,tsv}"

// File is one ingested input.
type File struct {
	// Name is the file name without directories.
	Name string
	// SourcePath is the slash separated path at ingestion, including the folder the
	// file was found in. It is the file's identity for versioning.
	SourcePath string
	// Data is the raw content.
	Data []byte
}

// Accepts reports whether name has a CSV or TSV extension.
func Accepts(name string) bool {
	ok, err := doublestar.Match(AcceptPattern, strings.ToLower(path.Base(filepath.ToSlash(name))))
	return err == nil && ok
}

// Options filter the files Collect returns.
type Options struct {
	// Include globs are matched against SourcePath; empty means everything.
	Include []string
	// Exclude globs are matched against SourcePath.
	Exclude []string
}

func (o Options) allows(ctx context.Context, sourcePath string) bool {
	if len(o.Include) > 0 && !matchAny(ctx, o.Include, sourcePath) {
		return false
	}
	return !matchAny(ctx, o.Exclude, sourcePath)
}

func matchAny(ctx context.Context, patterns []string, p string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, p)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", p).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// Collect reads root, which may be a file or a directory. Files found inside a
// directory get a SourcePath starting with the directory's own name, the way a
// dropped folder is reported. Only CSV/TSV files that pass opts are returned.
func Collect(ctx context.Context, root string, opts Options) ([]File, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", root, err)
	}

	if !info.IsDir() {
		f, ok, err := readFile(ctx, root, info.Name(), opts)
		if err != nil || !ok {
			return nil, err
		}
		return []File{f}, nil
	}

	parent := filepath.Dir(filepath.Clean(root))

	var files []File
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", p, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(parent, p)
		if err != nil {
			return errors.Errorf("resolving %s: %w", p, err)
		}

		f, ok, err := readFile(ctx, p, filepath.ToSlash(rel), opts)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, f)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("collecting %s: %w", root, err)
	}

	logger.Debug().Str("root", root).Int("files", len(files)).Msg("collected files")
	return files, nil
}

func readFile(ctx context.Context, p, sourcePath string, opts Options) (File, bool, error) {
	if !Accepts(sourcePath) || !opts.allows(ctx, sourcePath) {
		zerolog.Ctx(ctx).Debug().Str("path", sourcePath).Msg("skipping file")
		return File{}, false, nil
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return File{}, false, errors.Errorf("reading %s: %w", p, err)
	}

	return File{
		Name:       path.Base(sourcePath),
		SourcePath: sourcePath,
		Data:       data,
	}, true, nil
}
