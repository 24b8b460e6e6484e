package commands

import (
	"context"
	"flag"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskman list" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) NeedsRemote() bool { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	tasks := env.Store.List()

	// Quiet mode suppresses the empty message only
	if len(tasks) == 0 && env.Config.Quiet {
		return exitcode.Success
	}

	output.NewPrinter(out).Tasks(tasks)
	return exitcode.Success
}
