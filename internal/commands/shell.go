package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/shell"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd runs the interactive menu. It is what a bare `taskman` runs.
type ShellCmd struct{}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return nil }
func (c *ShellCmd) Synopsis() string  { return "Interactive menu" }
func (c *ShellCmd) Usage() string     { return "taskman [shell]" }
func (c *ShellCmd) NeedsStore() bool  { return true }
func (c *ShellCmd) NeedsRemote() bool { return false }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	sh := shell.New(env.Store, env.In, out, shell.WithLogger(env.Logger))

	err := sh.Run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return exitcode.Success
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StoreError
	}
}
