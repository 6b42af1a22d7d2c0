package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-replay/internal/demosource"
	"github.com/pable/go-cs-replay/internal/ingest"
	"github.com/pable/go-cs-replay/internal/playback"
	"github.com/pable/go-cs-replay/internal/radar"
)

var (
	replaySampleFPS float64
	replayRenderFPS float64
	replaySpeed     float64
	replayCanvas    int
	replayMaxFrames int
)

var replayCmd = &cobra.Command{
	Use:   "replay <demo.dem>",
	Short: "Stream interpolated 2D playback frames as JSON lines",
	Long: "Parse a CS2 demo and emit one JSON render frame per line on stdout,\n" +
		"with player positions already projected to canvas pixels.",
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Float64Var(&replaySampleFPS, "sample-fps", demosource.DefaultSampleFPS, "position samples per second")
	replayCmd.Flags().Float64Var(&replayRenderFPS, "fps", 60, "render frames per second")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "playback speed multiplier")
	replayCmd.Flags().IntVar(&replayCanvas, "canvas", 1024, "square canvas size in pixels")
	replayCmd.Flags().IntVar(&replayMaxFrames, "max-frames", 0, "stop after N frames (0 = until the end)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	feed, err := demosource.Extract(logger, args[0], replaySampleFPS)
	if err != nil {
		return err
	}

	frames := playback.BuildFrames(ingest.Ticks(logger, feed.Ticks), feed.TickRate, replaySampleFPS)
	if len(frames) == 0 {
		return fmt.Errorf("demo %s carries no position samples", args[0])
	}

	table, err := boundsTable()
	if err != nil {
		return err
	}
	bounds, err := table.Lookup(feed.MapName)
	if errors.Is(err, radar.ErrCalibrationMissing) {
		logger.Warn().Str("map", feed.MapName).Msg("no calibration for map, using default bounds")
	} else if err != nil {
		return err
	}
	mapper := radar.NewMapper(bounds, replayCanvas, replayCanvas)
	b := mapper.Bounds()
	logger.Debug().
		Float64("world_w", b.Width()).Float64("world_h", b.Height()).
		Float64("px_per_unit", mapper.Scale()).
		Msg("projection ready")

	ip := playback.NewInterpolator(frames, mapper, replaySampleFPS)
	ip.SetSpeed(replaySpeed)
	ip.Play()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if replayRenderFPS <= 0 {
		replayRenderFPS = 60
	}
	enc := json.NewEncoder(os.Stdout)
	dt := time.Second / time.Duration(replayRenderFPS)
	emitted := 0
	for ip.State() == playback.Playing {
		if ctx.Err() != nil {
			logger.Info().Int("frames", emitted).Msg("playback interrupted")
			return nil
		}
		frame := ip.Advance(dt)
		if err := enc.Encode(frame); err != nil {
			return fmt.Errorf("encode frame: %w", err)
		}
		emitted++
		if replayMaxFrames > 0 && emitted >= replayMaxFrames {
			break
		}
	}
	logger.Info().Int("frames", emitted).Float64("seconds", ip.Time()).Msg("playback finished")
	return nil
}
