// Package main is the entry point for the nourish CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/spf13/pflag"
	"go.trai.ch/nourish/cmd/nourish/commands"
	"go.trai.ch/nourish/internal/adapters/config"
	"go.trai.ch/nourish/internal/app"
	"go.trai.ch/nourish/internal/core/domain"
	_ "go.trai.ch/nourish/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.App.Close() }, nil
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	path, progress := globalFlags(args)
	ctx = config.WithProgress(config.WithPath(ctx, path), progress)
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	if l, ok := components.Logger.(interface{ SetOutput(io.Writer) }); ok {
		l.SetOutput(stderr)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		// The codec logs malformed input itself.
		if errors.Is(err, domain.ErrMalformedTimestamp) || errors.Is(err, domain.ErrMalformedDate) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}

// globalFlags extracts --config and --progress ahead of command parsing, since
// the components are built before cobra runs.
func globalFlags(args []string) (path string, progress bool) {
	fs := pflag.NewFlagSet("nourish", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "")
	fs.BoolVar(&progress, "progress", false, "")
	_ = fs.Parse(args)
	return path, progress
}
