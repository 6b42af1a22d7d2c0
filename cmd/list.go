package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-replay/internal/report"
	"github.com/pable/go-cs-replay/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		matches, err := db.ListMatches()
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			fmt.Println("No matches stored yet. Run `csreplay parse <demo.dem>` first.")
			return nil
		}
		report.PrintMatchList(os.Stdout, matches)
		return nil
	},
}
