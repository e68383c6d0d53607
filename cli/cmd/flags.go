// Package cmd provides CLI commands for the flightdeck binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared flags.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// TUIFlag enables Bubble Tea interactive mode.
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Enable interactive TUI mode",
	}

	// ConfigFlag points at a flightdeck.yaml config file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to flightdeck.yaml config file",
	}

	// HeaderRowFlag is the zero-based CSV header row index.
	HeaderRowFlag = &cli.IntFlag{
		Name:  "header-row",
		Usage: "Zero-based row index of the CSV header",
	}

	// SkipRowsFlag discards data rows after the header.
	SkipRowsFlag = &cli.IntFlag{
		Name:  "skip-rows",
		Usage: "Number of data rows to skip after the header",
	}
)

// ReadOnlyFlags returns the shared flags for all read-only commands.
// Includes --tui so unsupported commands can give an explicit error
// instead of a generic "flag not defined".
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		TUIFlag,
	}
}

// DatasetFlags returns the shared CSV loading flags.
func DatasetFlags() []cli.Flag {
	return []cli.Flag{
		HeaderRowFlag,
		SkipRowsFlag,
	}
}
