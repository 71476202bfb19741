package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/walteh/reword/cmd/reword/opts"
	"github.com/walteh/reword/cmd/reword/ui"
)

func main() {
	ctx := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().WithContext(context.Background())

	root := &opts.RootOpts{UserLogger: ui.NewUserLogger(ctx)}

	if err := newRootCmd(root).ExecuteContext(ctx); err != nil {
		root.UserLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
