// Package main provides the flightdeck CLI entrypoint.
//
// `export` is the only command that renders work; all other commands are
// read-only.
//
// Usage:
//
//	flightdeck <command> [subcommand] [options]
//
// Exit codes for `export`:
//   - 0: completed
//   - 1: render failure (zero frames survived)
//   - 2: encoding error
//   - 3: invalid configuration
//   - 4: cancelled
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/flightdeck-io/flightdeck/cli/cmd"
	"github.com/flightdeck-io/flightdeck/types"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	app := &cli.App{
		Name:           "flightdeck",
		Usage:          "Animated chart export for flight datasets",
		Version:        fmt.Sprintf("%s (commit: %s)", types.Version, commit),
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			cmd.ExportCommand(),
			cmd.TiersCommand(),
			cmd.InspectCommand(),
			cmd.StatsCommand(),
			cmd.ChatCommand(),
			cmd.VersionCommand(commit),
		},
	}

	if err := app.Run(os.Args); err != nil {
		// ExitErrHandler already handled cli.ExitCoder errors.
		// This branch handles unexpected errors that weren't wrapped.
		os.Exit(1)
	}
}

// exitErrHandler preserves exit codes from cli.Exit() so that the export
// outcome codes reach the caller intact.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()

		// cli.Exit("", N).Error() returns "exit status N"; skip those.
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
