package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-replay/internal/demosource"
	"github.com/pable/go-cs-replay/internal/ingest"
	"github.com/pable/go-cs-replay/internal/rebuild"
	"github.com/pable/go-cs-replay/internal/report"
	"github.com/pable/go-cs-replay/internal/stats"
	"github.com/pable/go-cs-replay/internal/storage"
)

var (
	parseSampleFPS float64
	parseFocus     string
)

var parseCmd = &cobra.Command{
	Use:   "parse <demo.dem>",
	Short: "Rebuild the match model from a CS2 demo file and store it",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Float64Var(&parseSampleFPS, "sample-fps", demosource.DefaultSampleFPS, "position samples per second")
	parseCmd.Flags().StringVar(&parseFocus, "focus", "", "steam id to mark in the leaderboard")
}

func runParse(cmd *cobra.Command, args []string) error {
	demoPath := args[0]

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	feed, err := demosource.Extract(logger, demoPath, parseSampleFPS)
	if err != nil {
		return err
	}

	exists, err := db.MatchExists(feed.DemoHash)
	if err != nil {
		return fmt.Errorf("check stored matches: %w", err)
	}
	if exists {
		logger.Info().Str("hash", feed.DemoHash[:12]).Msg("demo already stored, re-parse will replace it")
	}

	in := rebuild.Input{
		MapName:   feed.MapName,
		TickRate:  feed.TickRate,
		Ticks:     ingest.Ticks(logger, feed.Ticks),
		Deaths:    ingest.Deaths(logger, feed.Deaths),
		RoundEnds: ingest.RoundEnds(logger, feed.RoundEnds),
		Hurts:     ingest.Hurts(logger, feed.Hurts),
	}

	// Ctrl-C cancels between pipeline stages; no partial match is stored.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	match, _, err := rebuild.Build(ctx, logger, in)
	if err != nil {
		return fmt.Errorf("rebuild match: %w", err)
	}

	report.PrintSummary(os.Stdout, stats.Summarize(match))
	report.PrintLeaderboard(os.Stdout, stats.Leaderboard(match, "kills"), parseFocus)

	date := time.Now().Format("2006-01-02")
	if err := db.SaveMatch(feed.DemoHash, date, match); err != nil {
		return fmt.Errorf("store match: %w", err)
	}
	fmt.Printf("\nStored match %s\n", feed.DemoHash[:12])
	return nil
}
