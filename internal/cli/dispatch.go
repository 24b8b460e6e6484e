// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/logging"
	"taskman/internal/service"
	"taskman/internal/store"
)

// DefaultCommand runs when no command name is given.
const DefaultCommand = "shell"

// RemoteFactory creates the remote backend from config.
// It is only called for commands that need it.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (service.Remote, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  RemoteFactory
}

// NewDispatcher creates a new dispatcher with the given registry and remote factory.
// factory may be nil, in which case remote commands fail with a backend error.
func NewDispatcher(registry *commands.Registry, factory RemoteFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	storeFile string
	quiet     bool
	debug     bool
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.StringVar(&f.storeFile, "file", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
}

// Run parses arguments and dispatches to the appropriate command.
// in feeds interactive commands. Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	name := DefaultCommand
	var rest []string
	if len(args) > 0 {
		name, rest = args[0], args[1:]
	}

	// Flags require a command
	if strings.HasPrefix(name, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	return d.dispatch(ctx, cmd, rest, in, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmd commands.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") && positional[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug
	if common.storeFile != "" {
		cfg.StoreFile = common.storeFile
	}

	logger := logging.New(errOut, logging.Options{
		Level:           cfg.EffectiveLogLevel(),
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
	})
	logger.Debug("dispatch", "command", cmd.Name(), "config", cfg.Dir)

	env := &commands.Env{
		Config: cfg,
		Logger: logger,
		In:     in,
	}

	if cmd.NeedsStore() {
		st, err := store.Open(cfg.StorePath(), store.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.StoreError
		}
		env.Store = st
	}

	if cmd.NeedsRemote() {
		remote, code := d.remote(ctx, cfg, logger, errOut)
		if code != exitcode.Success {
			return code
		}
		env.Remote = remote
	}

	return cmd.Run(ctx, env, positional, out, errOut)
}

func (d *Dispatcher) remote(ctx context.Context, cfg *config.Config, logger *log.Logger, errOut io.Writer) (service.Remote, int) {
	if d.factory == nil {
		fmt.Fprintln(errOut, "error: remote backend not configured")
		return nil, exitcode.BackendError
	}
	remote, err := d.factory(ctx, cfg)
	if err != nil {
		logger.Debug("remote factory failed", "err", err)
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return nil, exitcode.AuthError
	}
	return remote, exitcode.Success
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	if errors.Is(err, flag.ErrHelp) {
		return "help flags are not supported (run: taskman help)"
	}
	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, "flag provided but not defined: "); ok {
		return "unknown flag: " + name
	}
	if name, ok := strings.CutPrefix(msg, "flag needs an argument: "); ok {
		return "flag needs an argument: " + name
	}
	return msg
}
