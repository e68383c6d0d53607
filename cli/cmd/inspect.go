package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/flightdeck-io/flightdeck/cli/render"
	"github.com/flightdeck-io/flightdeck/cli/view"
	"github.com/flightdeck-io/flightdeck/dataset"
)

// sampleRows is the number of preview rows included in inspect output.
const sampleRows = 5

// InspectCommand returns the inspect command with subcommands.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Inspect a dataset without exporting",
		Subcommands: []*cli.Command{
			inspectDatasetCommand(),
		},
	}
}

func inspectDatasetCommand() *cli.Command {
	return &cli.Command{
		Name:      "dataset",
		Usage:     "Show dataset shape, columns, and a sample",
		ArgsUsage: "<csv-file>",
		Flags:     append(ReadOnlyFlags(), DatasetFlags()...),
		Action:    inspectDatasetAction,
	}
}

func inspectDatasetAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("csv-file required", 1)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(c.Args().First(), dataset.LoadOptions{
		HeaderRow: c.Int("header-row"),
		SkipRows:  c.Int("skip-rows"),
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	resp := buildInspectResponse(ds)
	if c.Bool("tui") {
		return r.RenderTUI("inspect_dataset", resp)
	}
	return r.Render(resp)
}

func buildInspectResponse(ds *dataset.Dataset) *view.InspectDatasetResponse {
	missing := 0
	for _, n := range ds.MissingCells() {
		missing += n
	}

	resp := &view.InspectDatasetResponse{
		Name:           ds.Name,
		Encoding:       ds.Encoding,
		Rows:           len(ds.Rows),
		Columns:        len(ds.Columns),
		ColumnNames:    ds.Columns,
		NumericColumns: ds.NumericColumns(),
		MissingCells:   missing,
	}
	if col, ok := ds.DetectTimeColumn(); ok {
		resp.TimeColumn = col
	}

	n := sampleRows
	if n > len(ds.Rows) {
		n = len(ds.Rows)
	}
	resp.Sample = ds.Rows[:n]

	return resp
}
