package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-replay/internal/model"
	"github.com/pable/go-cs-replay/internal/report"
	"github.com/pable/go-cs-replay/internal/stats"
	"github.com/pable/go-cs-replay/internal/storage"
)

var (
	showSort  string
	showFocus string
)

var showCmd = &cobra.Command{
	Use:   "show <match-hash>",
	Short: "Show the scoreboard for a stored match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		match, err := loadMatch(db, args[0])
		if err != nil {
			return err
		}

		report.PrintSummary(os.Stdout, stats.Summarize(match))
		report.PrintLeaderboard(os.Stdout, stats.Leaderboard(match, showSort), showFocus)
		t, ct := stats.Teams(match)
		report.PrintTeams(os.Stdout, t, ct)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showSort, "sort", "kills",
		fmt.Sprintf("leaderboard sort field (%s)", strings.Join(stats.SortFields(), ", ")))
	showCmd.Flags().StringVar(&showFocus, "focus", "", "steam id to mark in the leaderboard")
}

// loadMatch resolves a possibly-abbreviated demo hash against the stored
// matches and loads the full model. A prefix is accepted as long as it is
// unambiguous.
func loadMatch(db *storage.DB, hash string) (*model.Match, error) {
	matches, err := db.ListMatches()
	if err != nil {
		return nil, err
	}
	var full string
	for _, m := range matches {
		if !strings.HasPrefix(m.DemoHash, hash) {
			continue
		}
		if full != "" && full != m.DemoHash {
			return nil, fmt.Errorf("ambiguous match hash %q", hash)
		}
		full = m.DemoHash
	}
	if full == "" {
		return nil, fmt.Errorf("no stored match with hash %q", hash)
	}
	return db.LoadMatch(full)
}
