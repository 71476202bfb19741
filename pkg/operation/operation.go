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

package operation

import (
	"bytes"
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/reword/pkg/blob"
	"github.com/walteh/reword/pkg/ingest"
	"github.com/walteh/reword/pkg/rule"
	"github.com/walteh/reword/pkg/text"
	"github.com/walteh/reword/pkg/version"
	"gitlab.com/tozd/go/errors"
)

// 📄 Result describes one file that was rewritten
type Result struct {
	SourcePath   string      // Path at ingestion, the file's identity
	OutputName   string      // Versioned file name
	OutputPath   string      // SourcePath with the file name replaced by OutputName
	Version      int         // Version handed out for this output
	Replacements int         // Replacements across all rules
	Size         int         // Output size in bytes
	Encoding     string      // Encoding label of the source
	Handle       blob.Handle // Handle to the output content
}

// ❌ Failure records a file that could not be processed
type Failure struct {
	SourcePath string
	Err        error
}

// 📦 Run is the outcome of one ProcessAll call
type Run struct {
	Results  []Result
	Failures []Failure
}

// TotalReplacements sums the replacements over all results
func (r *Run) TotalReplacements() int {
	total := 0
	for _, res := range r.Results {
		total += res.Replacements
	}
	return total
}

// 🔧 Options contains configuration for the processor
type Options struct {
	// Tracker hands out versions; it outlives single runs
	Tracker *version.Tracker
	// Store keeps the output content of the current run
	Store *blob.Store
	// Replacer applies rules to file content, defaults to text.NewReplacer()
	Replacer text.TextReplacer
	// Concurrency limits the files processed at once, defaults to 1
	Concurrency int
}

// 🎮 Processor runs batches and owns the results of the latest one
type Processor struct {
	tracker     *version.Tracker
	store       *blob.Store
	replacer    text.TextReplacer
	concurrency int

	mu      sync.Mutex
	current *Run
}

// 🏭 New creates a new processor with the given options
func New(opts Options) (*Processor, error) {
	if opts.Tracker == nil {
		return nil, errors.Errorf("tracker is required")
	}
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewReplacer()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Processor{
		tracker:     opts.Tracker,
		store:       opts.Store,
		replacer:    opts.Replacer,
		concurrency: opts.Concurrency,
	}, nil
}

// 🏃 ProcessAll applies rules to every file and returns the run's results in queue
// order. Files without a single replacement produce no result and take no version.
func (p *Processor) ProcessAll(ctx context.Context, files []ingest.File, rules []rule.Rule) (*Run, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	logger := zerolog.Ctx(ctx)

	p.release()

	if err := p.replacer.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	active := rule.Active(rules)

	logger.Debug().Int("files", len(files)).Int("rules", len(active)).Msg("starting run")

	results := make([]*Result, len(files))
	failures := make([]*Failure, len(files))

	err := forEach(ctx, len(files), p.concurrency, func(ctx context.Context, i int) error {
		res, err := p.processFile(ctx, files[i], active)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			logger.Warn().Err(err).Str("file", files[i].SourcePath).Msg("skipping file")
			failures[i] = &Failure{SourcePath: files[i].SourcePath, Err: err}
			return nil
		}
		results[i] = res
		return nil
	})

	run := &Run{}
	for i := range files {
		if results[i] != nil {
			run.Results = append(run.Results, *results[i])
		}
		if failures[i] != nil {
			run.Failures = append(run.Failures, *failures[i])
		}
	}

	if err != nil {
		p.revoke(run)
		return nil, errors.Errorf("processing files: %w", err)
	}

	p.current = run

	logger.Debug().
		Int("results", len(run.Results)).
		Int("failures", len(run.Failures)).
		Int("replacements", run.TotalReplacements()).
		Msg("run complete")

	return run, nil
}

// 📄 processFile runs one file through decode, replace, encode and versioning
func (p *Processor) processFile(ctx context.Context, file ingest.File, rules []rule.Rule) (*Result, error) {
	res, err := p.replacer.ReplaceText(ctx, bytes.NewReader(file.Data), rules)
	if err != nil {
		return nil, errors.Errorf("replacing text in %s: %w", file.SourcePath, err)
	}

	if res.ReplacementCount == 0 {
		zerolog.Ctx(ctx).Debug().Str("file", file.SourcePath).Msg("no matches")
		return nil, nil
	}

	v := p.tracker.Next(file.SourcePath)
	name := version.Name(file.Name, v)

	return &Result{
		SourcePath:   file.SourcePath,
		OutputName:   name,
		OutputPath:   version.EntryPath(file.SourcePath, name),
		Version:      v,
		Replacements: res.ReplacementCount,
		Size:         len(res.ModifiedContent),
		Encoding:     res.Encoding,
		Handle:       p.store.Put(res.ModifiedContent),
	}, nil
}

// Results returns the results of the latest successful run
func (p *Processor) Results() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return nil
	}
	return append([]Result(nil), p.current.Results...)
}

// 🧹 Release revokes the handles of the latest run
func (p *Processor) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.release()
}

func (p *Processor) release() {
	if p.current == nil {
		return
	}
	p.revoke(p.current)
	p.current = nil
}

func (p *Processor) revoke(run *Run) {
	for _, res := range run.Results {
		p.store.Revoke(res.Handle)
	}
}
