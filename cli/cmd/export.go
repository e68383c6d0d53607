package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/flightdeck-io/flightdeck/adapter"
	redisadapter "github.com/flightdeck-io/flightdeck/adapter/redis"
	"github.com/flightdeck-io/flightdeck/adapter/webhook"
	"github.com/flightdeck-io/flightdeck/chart"
	"github.com/flightdeck-io/flightdeck/cli/config"
	"github.com/flightdeck-io/flightdeck/cli/render"
	"github.com/flightdeck-io/flightdeck/cli/tui"
	"github.com/flightdeck-io/flightdeck/cli/view"
	"github.com/flightdeck-io/flightdeck/dataset"
	"github.com/flightdeck-io/flightdeck/export"
	"github.com/flightdeck-io/flightdeck/log"
	"github.com/flightdeck-io/flightdeck/metrics"
	"github.com/flightdeck-io/flightdeck/store"
	"github.com/flightdeck-io/flightdeck/stream"
	"github.com/flightdeck-io/flightdeck/types"
)

// Exit codes, one per terminal outcome.
const (
	exitCompleted     = 0
	exitRenderFailure = 1
	exitEncodingError = 2
	exitConfigInvalid = 3
	exitCancelled     = 4
)

// ExportCommand returns the export command.
// This is the only command that renders work; everything else is read-only.
func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Render a dataset into an animated chart GIF",
		ArgsUsage: "<csv-file>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "tier",
				Aliases: []string{"t"},
				Usage:   "Quality tier: fastest, fast-preview, standard, high",
				Value:   "standard",
			},
			&cli.StringSliceFlag{
				Name:  "column",
				Usage: "Column to plot (repeatable; defaults to all numeric columns)",
			},
			&cli.StringFlag{
				Name:  "export-id",
				Usage: "Export ID (generated when empty)",
			},
			&cli.BoolFlag{
				Name:  "dedup",
				Usage: "Remove exact duplicate rows before plotting",
			},
			&cli.StringFlag{
				Name:  "fill",
				Usage: "Missing-cell policy: drop, forward, backward, mean",
			},
			&cli.StringSliceFlag{
				Name:  "hash-column",
				Usage: "String column to convert into numeric codes (repeatable)",
			},
			// Profile overrides
			&cli.IntFlag{
				Name:  "width",
				Usage: "Override chart width in pixels",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "Override chart height in pixels",
			},
			&cli.Float64Flag{
				Name:  "scale",
				Usage: "Override raster scale factor",
			},
			&cli.DurationFlag{
				Name:  "delay",
				Usage: "Override per-frame display duration (e.g. 250ms)",
			},
			// Storage flags
			&cli.StringFlag{
				Name:  "store-backend",
				Usage: "Artifact storage backend: fs or s3",
				Value: "fs",
			},
			&cli.StringFlag{
				Name:  "store-path",
				Usage: "Storage path (fs: directory, s3: bucket/prefix)",
			},
			&cli.StringFlag{
				Name:  "s3-region",
				Usage: "AWS region for the s3 backend",
			},
			&cli.StringFlag{
				Name:  "s3-endpoint",
				Usage: "Custom S3 endpoint (MinIO, localstack)",
			},
			&cli.BoolFlag{
				Name:  "s3-path-style",
				Usage: "Use path-style S3 addressing",
			},
			// Notification flags
			&cli.StringFlag{
				Name:  "adapter",
				Usage: "Completion notification adapter: webhook or redis",
			},
			&cli.StringFlag{
				Name:  "adapter-url",
				Usage: "Adapter endpoint (webhook: HTTP URL, redis: redis:// URL)",
			},
			&cli.StringFlag{
				Name:  "adapter-channel",
				Usage: "Redis pub/sub channel name",
			},
			// Output flags
			&cli.BoolFlag{
				Name:  "progress-stream",
				Usage: "Write length-prefixed msgpack progress frames to stdout",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress result output",
			},
			TUIFlag,
			FormatFlag,
			NoColorFlag,
			ConfigFlag,
		}, DatasetFlags()...),
		Action: exportAction,
	}
}

func exportAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("csv-file required", exitConfigInvalid)
	}
	if c.Bool("tui") && c.Bool("progress-stream") {
		return cli.Exit("--tui and --progress-stream are mutually exclusive", exitConfigInvalid)
	}

	cfg, err := loadFileConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigInvalid)
	}

	ds, err := loadDataset(c, cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigInvalid)
	}

	series, err := buildSeries(c, ds)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigInvalid)
	}

	frames, err := chart.BuildFrames(series)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigInvalid)
	}

	tier := types.QualityTier(c.String("tier"))
	exportID := c.String("export-id")
	if exportID == "" {
		exportID = uuid.NewString()
	}
	collector := metrics.NewCollector(c.String("tier"), exportID)

	req := &export.Request{
		Frames:     frames,
		Tier:       tier,
		Rasterizer: chart.NewRenderer(series),
		Override:   mergeOverride(c, cfg.TierOverrideFor(tier)),
		Collector:  collector,
		ExportID:   exportID,
		Dataset:    ds.Name,
	}
	if c.Bool("quiet") {
		req.Logger = log.Nop()
	}

	// The observer target is picked after pipeline construction; the
	// indirection lets the TUI program receive the pipeline's export ID.
	var observe func(types.ProgressEvent)
	req.OnProgress = func(ev types.ProgressEvent) {
		if observe != nil {
			observe(ev)
		}
	}

	pipe, err := export.NewPipeline(req)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigInvalid)
	}

	var streamEnc *stream.Encoder
	if c.Bool("progress-stream") {
		streamEnc = stream.NewEncoder(os.Stdout)
		observe = func(ev types.ProgressEvent) {
			_ = streamEnc.WriteProgress(ev)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var result *export.Result
	if c.Bool("tui") {
		result = runWithTUI(ctx, pipe, c.String("tier"), &observe)
	} else {
		// Interrupt signals request cooperative cancellation; in-flight
		// frames finish, then the pipeline reports the cancelled outcome.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			<-sigCh
			pipe.Cancel()
		}()

		result, _ = pipe.Run(ctx)
	}

	storagePath := storeArtifact(ctx, c, cfg, result, collector, ds.Name)
	publishCompletion(ctx, c, cfg, result, ds.Name, storagePath)

	if streamEnc != nil {
		_ = streamEnc.WriteResult(&stream.ResultFrame{
			ExportID:   result.ExportID,
			Status:     string(result.Outcome.Status),
			Message:    result.Outcome.Message,
			SizeBytes:  artifactSize(result),
			FrameCount: result.FramesRendered,
			DurationMs: result.Duration.Milliseconds(),
		})
	} else if !c.Bool("quiet") && !c.Bool("tui") {
		r, rerr := render.NewRenderer(c)
		if rerr != nil {
			return rerr
		}
		resp := view.ExportResponse{
			ExportID:       result.ExportID,
			Dataset:        ds.Name,
			Tier:           string(result.Tier),
			Outcome:        string(result.Outcome.Status),
			FramesSelected: result.FramesSelected,
			FramesRendered: result.FramesRendered,
			SizeBytes:      int(artifactSize(result)),
			DurationMs:     result.Duration.Milliseconds(),
			StoragePath:    storagePath,
		}
		if err := r.Render(resp); err != nil {
			return err
		}
	}

	return cli.Exit("", outcomeToExitCode(result.Outcome.Status))
}

// runWithTUI runs the pipeline under the live progress view. The TUI loop
// is the single progress observer; Program.Send serializes events into it.
func runWithTUI(ctx context.Context, pipe *export.Pipeline, tier string, observe *func(types.ProgressEvent)) *export.Result {
	program := tui.NewExportProgram(pipe.ExportID(), tier, pipe.FramesSelected(), pipe.Cancel)
	*observe = func(ev types.ProgressEvent) {
		program.Send(tui.ProgressMsg(ev))
	}

	resultCh := make(chan *export.Result, 1)
	go func() {
		result, _ := pipe.Run(ctx)
		resultCh <- result
		program.Send(tui.DoneMsg{
			Outcome:   string(result.Outcome.Status),
			Message:   result.Outcome.Message,
			SizeBytes: int(artifactSize(result)),
		})
	}()

	// The program exits on DoneMsg; a TUI failure falls back to waiting
	// for the pipeline directly.
	if _, err := program.Run(); err != nil {
		pipe.Cancel()
	}
	return <-resultCh
}

// loadFileConfig reads the optional flightdeck.yaml config.
// A nil Config is valid; all accessors are nil-safe.
func loadFileConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		return nil, nil
	}
	return config.Load(path)
}

func loadDataset(c *cli.Context, cfg *config.Config) (*dataset.Dataset, error) {
	opts := dataset.LoadOptions{
		HeaderRow: c.Int("header-row"),
		SkipRows:  c.Int("skip-rows"),
	}
	if cfg != nil {
		if !c.IsSet("header-row") {
			opts.HeaderRow = cfg.Dataset.HeaderRow
		}
		if !c.IsSet("skip-rows") {
			opts.SkipRows = cfg.Dataset.SkipRows
		}
	}

	ds, err := dataset.Load(c.Args().First(), opts)
	if err != nil {
		return nil, err
	}

	fill := c.String("fill")
	if fill == "" && cfg != nil {
		fill = cfg.Dataset.Fill
	}
	cleaned, _, err := dataset.Clean(ds, dataset.CleanOptions{
		RemoveDuplicates: c.Bool("dedup"),
		Fill:             dataset.FillMethod(fill),
		HashColumns:      c.StringSlice("hash-column"),
	})
	if err != nil {
		return nil, err
	}
	return cleaned, nil
}

// buildSeries extracts the plotted columns. With no --column flags, every
// numeric column is plotted.
func buildSeries(c *cli.Context, ds *dataset.Dataset) ([]chart.Series, error) {
	columns := c.StringSlice("column")
	if len(columns) == 0 {
		columns = ds.NumericColumns()
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("dataset %s has no numeric columns to plot", ds.Name)
	}

	series := make([]chart.Series, 0, len(columns))
	for _, name := range columns {
		values, err := ds.NumericColumn(name)
		if err != nil {
			return nil, err
		}
		series = append(series, chart.Series{Name: name, Values: values})
	}
	return series, nil
}

// mergeOverride layers CLI override flags on top of the config-file
// override for the tier. CLI flags win.
func mergeOverride(c *cli.Context, base *types.ProfileOverride) *types.ProfileOverride {
	merged := types.ProfileOverride{}
	if base != nil {
		merged = *base
	}
	if w := c.Int("width"); w > 0 {
		merged.TargetWidth = w
	}
	if h := c.Int("height"); h > 0 {
		merged.TargetHeight = h
	}
	if s := c.Float64("scale"); s > 0 {
		merged.RasterScale = s
	}
	if d := c.Duration("delay"); d > 0 {
		merged.PerFrameDuration = d
	}
	if merged == (types.ProfileOverride{}) {
		return nil
	}
	return &merged
}

// storeArtifact persists a completed artifact and returns its storage
// path. Returns "" when there is nothing to store or storage fails;
// storage failure does not change the export outcome.
func storeArtifact(ctx context.Context, c *cli.Context, cfg *config.Config, result *export.Result, collector *metrics.Collector, datasetName string) string {
	if result.Artifact == nil {
		return ""
	}

	st, err := buildStore(ctx, c, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: artifact storage unavailable: %v\n", err)
		collector.IncStoreWriteFailure()
		return ""
	}
	defer func() { _ = st.Close() }()

	meta := &types.ExportMeta{
		ExportID: result.ExportID,
		Tier:     result.Tier,
		Dataset:  datasetName,
	}
	path, err := st.Put(ctx, store.ArtifactKey(meta, types.FormatGIF), result.Artifact)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: artifact write failed: %v\n", err)
		collector.IncStoreWriteFailure()
		return ""
	}
	collector.IncStoreWriteSuccess()
	return path
}

func buildStore(ctx context.Context, c *cli.Context, cfg *config.Config) (store.Store, error) {
	backend := c.String("store-backend")
	path := c.String("store-path")
	if cfg != nil {
		if !c.IsSet("store-backend") && cfg.Storage.Backend != "" {
			backend = cfg.Storage.Backend
		}
		if path == "" {
			path = cfg.Storage.Path
		}
	}

	switch backend {
	case "fs", "":
		if path == "" {
			path = "exports"
		}
		return store.NewFSStore(path)
	case "s3":
		bucket, prefix := store.ParseS3Path(path)
		s3cfg := store.S3Config{
			Bucket:       bucket,
			Prefix:       prefix,
			Region:       c.String("s3-region"),
			Endpoint:     c.String("s3-endpoint"),
			UsePathStyle: c.Bool("s3-path-style"),
		}
		if cfg != nil {
			if s3cfg.Region == "" {
				s3cfg.Region = cfg.Storage.Region
			}
			if s3cfg.Endpoint == "" {
				s3cfg.Endpoint = cfg.Storage.Endpoint
			}
			if !c.IsSet("s3-path-style") {
				s3cfg.UsePathStyle = cfg.Storage.S3PathStyle
			}
		}
		return store.NewS3Store(ctx, s3cfg)
	default:
		return nil, fmt.Errorf("unknown store-backend: %s (must be fs or s3)", backend)
	}
}

// publishCompletion emits the completion event to the configured adapter.
// Events go out on every terminal outcome, cancellation included.
func publishCompletion(ctx context.Context, c *cli.Context, cfg *config.Config, result *export.Result, datasetName, storagePath string) {
	ad, err := buildAdapter(c, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: notification adapter unavailable: %v\n", err)
		return
	}
	if ad == nil {
		return
	}
	defer func() { _ = ad.Close() }()

	event := &adapter.ExportCompletedEvent{
		EventType:   adapter.EventTypeExportCompleted,
		ExportID:    result.ExportID,
		Dataset:     datasetName,
		Tier:        string(result.Tier),
		Outcome:     string(result.Outcome.Status),
		SizeBytes:   artifactSize(result),
		FrameCount:  result.FramesRendered,
		DurationMs:  result.Duration.Milliseconds(),
		StoragePath: storagePath,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     types.Version,
	}
	if err := ad.Publish(ctx, event); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: completion event not delivered: %v\n", err)
	}
}

// buildAdapter returns nil without error when no adapter is configured.
func buildAdapter(c *cli.Context, cfg *config.Config) (adapter.Adapter, error) {
	kind := c.String("adapter")
	url := c.String("adapter-url")
	channel := c.String("adapter-channel")
	var headers map[string]string
	var timeout time.Duration
	retries := -1

	if cfg != nil {
		if kind == "" {
			kind = cfg.Adapter.Type
		}
		if url == "" {
			url = cfg.Adapter.URL
		}
		if channel == "" {
			channel = cfg.Adapter.Channel
		}
		headers = cfg.Adapter.Headers
		timeout = cfg.Adapter.Timeout.Duration
		if cfg.Adapter.Retries != nil {
			retries = *cfg.Adapter.Retries
		}
	}

	switch strings.ToLower(kind) {
	case "":
		return nil, nil
	case "webhook":
		wcfg := webhook.Config{URL: url, Headers: headers, Timeout: timeout}
		if retries >= 0 {
			wcfg.Retries = retries
		}
		return webhook.New(wcfg)
	case "redis":
		rcfg := redisadapter.Config{URL: url, Channel: channel, Timeout: timeout}
		if retries >= 0 {
			rcfg.Retries = retries
		}
		return redisadapter.New(rcfg)
	default:
		return nil, fmt.Errorf("unknown adapter: %s (must be webhook or redis)", kind)
	}
}

func artifactSize(result *export.Result) int64 {
	if result.Artifact == nil {
		return 0
	}
	return result.Artifact.SizeBytes
}

func outcomeToExitCode(status types.OutcomeStatus) int {
	switch status {
	case types.OutcomeCompleted:
		return exitCompleted
	case types.OutcomeRenderFailure:
		return exitRenderFailure
	case types.OutcomeEncodingError:
		return exitEncodingError
	case types.OutcomeConfigInvalid:
		return exitConfigInvalid
	case types.OutcomeCancelled:
		return exitCancelled
	default:
		return exitRenderFailure
	}
}
