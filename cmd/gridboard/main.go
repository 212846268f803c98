// Command gridboard edits dashboard boards: widgets on a fixed grid that
// push each other aside when moved.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/internal/cli"
	gberrors "github.com/matzehuels/gridboard/pkg/errors"
)

// exit statuses
const (
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx)
	stop()
	os.Exit(exitStatus(err))
}

func execute(ctx context.Context) error {
	app := cli.New(os.Stderr, cli.LogInfo)
	root := app.RootCommand()
	root.SilenceErrors = true

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// --verbose is parsed after RootCommand builds the logger.
	if next := root.PersistentPreRunE; next != nil {
		root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
			if verbose {
				app.SetLogLevel(cli.LogDebug)
			}
			return next(cmd, args)
		}
	}
	return root.ExecuteContext(ctx)
}

func exitStatus(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	if gberrors.KindOf(err) == gberrors.KindInvalid {
		return exitUsage
	}
	return exitFailure
}
