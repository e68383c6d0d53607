package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/flightdeck-io/flightdeck/cli/render"
	"github.com/flightdeck-io/flightdeck/cli/view"
	"github.com/flightdeck-io/flightdeck/export"
	"github.com/flightdeck-io/flightdeck/types"
)

// TiersCommand returns the tiers command, listing the built-in quality
// profiles in display order.
func TiersCommand() *cli.Command {
	return &cli.Command{
		Name:   "tiers",
		Usage:  "List the built-in quality tiers",
		Flags:  ReadOnlyFlags(),
		Action: tiersAction,
	}
}

func tiersAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for tiers", 1)
	}

	profiles := export.Profiles()
	infos := make([]view.TierInfo, 0, len(profiles))
	for _, p := range profiles {
		infos = append(infos, view.TierInfo{
			Tier:           string(p.Tier),
			Width:          p.TargetWidth,
			Height:         p.TargetHeight,
			Scale:          p.RasterScale,
			FrameDelayMs:   int(p.PerFrameDuration / time.Millisecond),
			ReducedPalette: p.Encoding.Mode == types.ColorReducedPalette,
		})
	}

	return r.Render(infos)
}
