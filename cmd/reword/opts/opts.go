package opts

import (
	"github.com/walteh/reword/cmd/reword/ui"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Debug      bool
	UserLogger *ui.UserLogger
}
