package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskman/internal/backend/googletasks"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
type PushCmd struct {
	listName string
}

// SetListName sets the target list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Mirror tasks into Google Tasks" }
func (c *PushCmd) Usage() string     { return "taskman push [--list <list-name>]" }
func (c *PushCmd) NeedsStore() bool  { return true }
func (c *PushCmd) NeedsRemote() bool { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
}

func (c *PushCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	name := c.listName
	if name == "" {
		name = env.Config.GoogleList
	}

	// Generated ids must reach disk before they are written into remote notes.
	if err := env.Store.PersistIDs(); err != nil {
		return reportStoreError(errOut, err)
	}

	list, err := resolveList(ctx, env.Remote, name)
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	env.Logger.Debug("pushing tasks", "list", list.Title, "count", env.Store.Len())
	result, err := service.Push(ctx, env.Remote, list.ID, env.Store.List())
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "ok: %d created, %d completed, %d unchanged\n",
			result.Created, result.Completed, result.Unchanged)
	}
	return exitcode.Success
}

// resolveList resolves a list name, or the default list when name is empty.
func resolveList(ctx context.Context, remote service.Remote, name string) (service.TaskList, error) {
	if name == "" {
		return remote.DefaultList(ctx)
	}
	return remote.ResolveList(ctx, name)
}

// reportRemoteError prints a remote failure and returns the exit code.
func reportRemoteError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, googletasks.ErrAuth):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
