package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/cmd/reword/opts"
	"github.com/walteh/reword/pkg/blob"
	"github.com/walteh/reword/pkg/config"
	"github.com/walteh/reword/pkg/ingest"
	"github.com/walteh/reword/pkg/log"
	"github.com/walteh/reword/pkg/operation"
	"github.com/walteh/reword/pkg/output"
	"github.com/walteh/reword/pkg/rule"
	"github.com/walteh/reword/pkg/version"
)

// ErrNoInput is returned when none of the given paths holds a CSV or TSV file
var ErrNoInput = errors.Base("no CSV or TSV files found")

type processFlags struct {
	rulesFile     string
	rules         []string
	caseSensitive bool
	out           string
	zip           string
	include       []string
	exclude       []string
	concurrency   int
	passes        int
}

// Summary is what a process invocation produced
type Summary struct {
	Destination string
	Results     []operation.Result
	Failures    []operation.Failure
}

// NewProcessCmd creates a new process command
func NewProcessCmd(root *opts.RootOpts) *cobra.Command {
	f := &processFlags{}

	cmd := &cobra.Command{
		Use:   "process [paths...]",
		Short: "Apply substitution rules to CSV and TSV files",
		Long: `Process reads every CSV/TSV file below the given paths, applies the rules in
order and writes each changed file as a new version next to its source path
inside the output directory (or zip archive).

Files without a single match are not written. Encodings (UTF-8, UTF-8 with BOM,
UTF-16 LE/BE) are preserved byte for byte outside the replaced text.`,
		Example: `  reword process data/ --rule 'user*=>account' --rule '*log*=>LOG' --case-sensitive
  reword process export.csv --rules rules.yaml --zip results.zip`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "process").Logger().WithContext(cmd.Context())

			cfg, err := f.config(ctx, cmd)
			if err != nil {
				return err
			}

			sum, err := Process(ctx, cfg, args, f.passes, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if root.UserLogger != nil {
				if err := root.UserLogger.LogSummary(sum.Destination, sum.Results); err != nil {
					return errors.Errorf("rendering summary: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.rulesFile, "rules", "r", "", "rule file (.yaml, .yml, .json or .hcl)")
	cmd.Flags().StringArrayVar(&f.rules, "rule", nil, "rule as 'search=>replacement', may be repeated")
	cmd.Flags().BoolVar(&f.caseSensitive, "case-sensitive", false, "match --rule rules case-sensitively")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output directory (default \""+config.DefaultOutput+"\")")
	cmd.Flags().StringVar(&f.zip, "zip", "", "write all outputs into this zip archive instead of a directory")
	cmd.Flags().StringArrayVar(&f.include, "include", nil, "only process source paths matching this glob")
	cmd.Flags().StringArrayVar(&f.exclude, "exclude", nil, "skip source paths matching this glob")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "j", 0, "files processed at once")
	cmd.Flags().IntVar(&f.passes, "passes", 1, "process the queue this many times, each pass producing the next version")

	return cmd
}

// config merges the rule file with command line flags
func (f *processFlags) config(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if f.rulesFile != "" {
		loaded, err := config.Load(ctx, f.rulesFile)
		if err != nil {
			return nil, errors.Errorf("loading rules: %w", err)
		}
		cfg = loaded
	}

	for _, expr := range f.rules {
		r, err := rule.Parse(expr, f.caseSensitive)
		if err != nil {
			return nil, err
		}
		cfg.Rules = append(cfg.Rules, config.RuleConfig{
			Search:        r.Search,
			Replacement:   r.Replacement,
			CaseSensitive: r.CaseSensitive,
		})
	}

	cfg.Include = append(cfg.Include, f.include...)
	cfg.Exclude = append(cfg.Exclude, f.exclude...)
	if cmd.Flags().Changed("out") {
		cfg.Output = f.out
	}
	if cmd.Flags().Changed("zip") {
		cfg.Archive = f.zip
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}
	return cfg, nil
}

// Process collects paths into one queue, runs it passes times and writes every
// result. Rules are validated before anything is read or written.
func Process(ctx context.Context, cfg *config.Config, paths []string, passes int, console io.Writer) (sum *Summary, err error) {
	rules := cfg.RuleSet()
	if err := rule.Validate(rules); err != nil {
		return nil, err
	}
	if passes < 1 {
		passes = 1
	}

	queue := ingest.NewQueue()
	for _, p := range paths {
		files, err := ingest.Collect(ctx, p, ingest.Options{Include: cfg.Include, Exclude: cfg.Exclude})
		if err != nil {
			return nil, err
		}
		queue.Merge(files...)
	}
	if queue.Len() == 0 {
		return nil, errors.WithDetails(ErrNoInput, "paths", paths)
	}

	store := blob.NewStore()
	processor, err := operation.New(operation.Options{
		Tracker:     version.NewTracker(),
		Store:       store,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return nil, err
	}
	defer processor.Release()

	var w output.Writer
	sum = &Summary{Destination: cfg.Output}
	if cfg.Archive != "" {
		sum.Destination = cfg.Archive
		w, err = output.NewZipWriter(cfg.Archive)
	} else {
		w, err = output.NewDirWriter(cfg.Output)
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			sum, err = nil, errors.Errorf("closing output: %w", cerr)
		}
	}()

	logger := log.New(console, zerolog.Ctx(ctx).GetLevel())

	for pass := 1; pass <= passes; pass++ {
		logger.StartBatch(ctx, log.BatchOperation{
			Pass:   pass,
			Files:  queue.Len(),
			Rules:  len(rule.Active(rules)),
			Output: sum.Destination,
		})

		run, err := processor.ProcessAll(ctx, queue.Files(), rules)
		if err != nil {
			return nil, err
		}

		for _, res := range run.Results {
			logger.LogResult(ctx, res)
		}
		for _, fail := range run.Failures {
			logger.LogFailure(ctx, fail)
		}
		logger.EndBatch(ctx)

		if _, err := output.WriteAll(ctx, w, store, run.Results); err != nil {
			return nil, errors.Errorf("writing pass %d: %w", pass, err)
		}

		sum.Results = append(sum.Results, run.Results...)
		sum.Failures = append(sum.Failures, run.Failures...)
	}

	return sum, nil
}
