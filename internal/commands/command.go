// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/charmbracelet/log"

	"taskman/internal/config"
	"taskman/internal/service"
	"taskman/internal/store"
)

// Env carries what the dispatcher prepared for a command run.
type Env struct {
	// Config is always provided.
	Config *config.Config

	// Store is nil unless NeedsStore returns true.
	Store *store.Store

	// Remote is nil unless NeedsRemote returns true.
	Remote service.Remote

	// Logger is always provided.
	Logger *log.Logger

	// In is the interactive input (stdin in production).
	In io.Reader
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or writes tasks.
	NeedsStore() bool

	// NeedsRemote returns true if the command talks to Google Tasks.
	NeedsRemote() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
