package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-replay/internal/report"
	"github.com/pable/go-cs-replay/internal/stats"
	"github.com/pable/go-cs-replay/internal/storage"
)

var weaponsCmd = &cobra.Command{
	Use:   "weapons <match-hash>",
	Short: "Show per-weapon kill stats for a stored match",
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
		report.PrintWeapons(os.Stdout, stats.Weapons(match))
		return nil
	},
}
