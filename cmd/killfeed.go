package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-replay/internal/report"
	"github.com/pable/go-cs-replay/internal/stats"
	"github.com/pable/go-cs-replay/internal/storage"
)

var killfeedRound int

var killfeedCmd = &cobra.Command{
	Use:   "killfeed <match-hash>",
	Short: "Show the kill feed for a stored match",
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
		report.PrintKillFeed(os.Stdout, stats.KillFeed(match, killfeedRound))
		return nil
	},
}

func init() {
	killfeedCmd.Flags().IntVar(&killfeedRound, "round", 0, "restrict to a single round (0 = all)")
}
