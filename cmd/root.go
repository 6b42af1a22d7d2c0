package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pable/go-cs-replay/internal/radar"
)

var (
	dbPath   string
	mapsFile string
	verbose  bool

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "csreplay",
	Short: "CS2 demo match reconstruction and 2D playback tool",
	Long:  "Rebuild a consistent match model (players, rounds, kills) from CS2 .dem files and drive an interpolated 2D playback stream.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".csreplay", "matches.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&mapsFile, "maps-config", "", "path to a map calibration override file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(weaponsCmd)
	rootCmd.AddCommand(killfeedCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(mapsCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// boundsTable returns the builtin calibration table, with the override file
// layered on top when --maps-config is set.
func boundsTable() (radar.Table, error) {
	if mapsFile == "" {
		return radar.Builtin(), nil
	}
	return radar.LoadOverrides(mapsFile)
}
