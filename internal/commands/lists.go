package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print Google Tasks lists" }
func (c *ListsCmd) Usage() string     { return "taskman lists" }
func (c *ListsCmd) NeedsStore() bool  { return false }
func (c *ListsCmd) NeedsRemote() bool { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	lists, err := env.Remote.ListLists(ctx)
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	for _, list := range lists {
		if list.IsDefault {
			fmt.Fprintf(out, "%s [default]\n", list.Title)
			continue
		}
		fmt.Fprintln(out, list.Title)
	}
	return exitcode.Success
}
