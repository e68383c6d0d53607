package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/flightdeck-io/flightdeck/cli/render"
	"github.com/flightdeck-io/flightdeck/cli/view"
	"github.com/flightdeck-io/flightdeck/dataset"
)

// StatsCommand returns the stats command with subcommands.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Statistical reports over a dataset",
		Subcommands: []*cli.Command{
			statsDatasetCommand(),
		},
	}
}

func statsDatasetCommand() *cli.Command {
	return &cli.Command{
		Name:      "dataset",
		Usage:     "Descriptive statistics, outliers, correlations, insights",
		ArgsUsage: "<csv-file>",
		Flags: append(append([]cli.Flag{
			&cli.StringSliceFlag{
				Name:  "column",
				Usage: "Column to analyze (repeatable; defaults to all numeric columns)",
			},
		}, ReadOnlyFlags()...), DatasetFlags()...),
		Action: statsDatasetAction,
	}
}

func statsDatasetAction(c *cli.Context) error {
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

	resp, err := buildStatsResponse(ds, c.StringSlice("column"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("tui") {
		return r.RenderTUI("stats_dataset", resp)
	}
	return r.Render(resp)
}

func buildStatsResponse(ds *dataset.Dataset, columns []string) (*view.StatsDatasetResponse, error) {
	if len(columns) == 0 {
		columns = ds.NumericColumns()
	}

	resp := &view.StatsDatasetResponse{
		Name:    ds.Name,
		Rows:    len(ds.Rows),
		Columns: len(ds.Columns),
	}

	for _, name := range columns {
		values, err := ds.NumericColumn(name)
		if err != nil {
			return nil, err
		}

		// Columns without enough numeric data are skipped, not fatal;
		// the insights section already reports dataset-level gaps.
		if summary, err := dataset.Describe(values); err == nil {
			resp.Summaries = append(resp.Summaries, view.ColumnSummary{
				Column: name,
				Count:  summary.Count,
				Mean:   summary.Mean,
				Std:    summary.Std,
				Min:    summary.Min,
				Median: summary.Median,
				Max:    summary.Max,
			})
		}
		if outliers, err := dataset.Outliers(values); err == nil && outliers.Count > 0 {
			resp.Outliers = append(resp.Outliers, view.ColumnOutliers{
				Column:   name,
				Count:    outliers.Count,
				Fraction: outliers.Percentage / 100,
			})
		}
	}

	pairs, err := dataset.StrongCorrelations(ds)
	if err == nil {
		for _, p := range pairs {
			resp.Correlations = append(resp.Correlations, view.CorrelationInfo{
				ColumnA: p.A,
				ColumnB: p.B,
				R:       p.Correlation,
			})
		}
	}

	resp.Insights = dataset.Insights(ds)
	return resp, nil
}
