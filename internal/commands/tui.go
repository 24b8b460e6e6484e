package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/ui"
)

func init() {
	Register(&TuiCmd{})
}

// TuiCmd opens the full-screen task browser.
type TuiCmd struct{}

func (c *TuiCmd) Name() string      { return "tui" }
func (c *TuiCmd) Aliases() []string { return nil }
func (c *TuiCmd) Synopsis() string  { return "Browse tasks full-screen" }
func (c *TuiCmd) Usage() string     { return "taskman tui" }
func (c *TuiCmd) NeedsStore() bool  { return true }
func (c *TuiCmd) NeedsRemote() bool { return false }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TuiCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	err := ui.Run(ctx, env.Store, env.In, out)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return exitcode.Success
	default:
		// Store failures are shown inside the browser; what reaches here is
		// a terminal problem such as ui.ErrNoTTY.
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
}
