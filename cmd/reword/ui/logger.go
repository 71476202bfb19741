package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/reword/pkg/operation"
	"github.com/walteh/reword/pkg/status"
)

// 📢 UserLogger provides user-friendly feedback about a run
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewUserLogger creates a new user logger writing to stdout
func NewUserLogger(ctx context.Context) *UserLogger {
	return NewUserLoggerTo(ctx, os.Stdout)
}

// NewUserLoggerTo creates a user logger writing to out
func NewUserLoggerTo(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// 📊 LogStateChange logs a change to the overall state
func (u *UserLogger) LogStateChange(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).WithWriter(u.out)
	printer.Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(u.out).Println(description)
		u.log.Info().Msg(description)
		return
	}

	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(u.out).Println(description)
		pterm.Error.WithWriter(u.out).Println(err)
		u.log.Error().Err(err).Msg(description)
		return
	}

	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(u.out).Println(description)
	u.log.Warn().Msg(description)
}

// 📋 LogSummary renders every rewritten file as a table row
func (u *UserLogger) LogSummary(destination string, results []operation.Result) error {
	if len(results) == 0 {
		u.LogValidation(false, "No file contained a match, nothing was written", nil)
		return nil
	}

	data := pterm.TableData{{"Source", "Output", "Version", "Replacements", "Encoding", "Size"}}
	total := 0
	for _, res := range results {
		total += res.Replacements
		data = append(data, []string{
			res.SourcePath,
			res.OutputPath,
			fmt.Sprint(res.Version),
			fmt.Sprint(res.Replacements),
			res.Encoding,
			status.FormatBytes(res.Size),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithWriter(u.out).WithData(data).Render(); err != nil {
		return err
	}

	u.LogValidation(true, fmt.Sprintf("Wrote %d files (%d replacements) to %s", len(results), total, destination), nil)
	return nil
}
